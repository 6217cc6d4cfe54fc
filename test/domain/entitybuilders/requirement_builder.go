//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/pydist/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// RequirementBuilder helps create test requirements with a fluent interface.
type RequirementBuilder struct {
	*testkit.BaseBuilder
	name       string
	extras     []string
	constraint string
	marker     string
	line       int
}

// NewRequirementBuilder creates a new requirement builder with sensible defaults.
func NewRequirementBuilder() *RequirementBuilder {
	return &RequirementBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		name:        "requests",
		constraint:  "==2.32.0",
		line:        1,
	}
}

// WithName sets the distribution name.
func (b *RequirementBuilder) WithName(name string) *RequirementBuilder {
	b.name = name
	return b
}

// WithExtras sets the requirement extras.
func (b *RequirementBuilder) WithExtras(extras ...string) *RequirementBuilder {
	b.extras = extras
	return b
}

// WithConstraint sets the version specifier tail.
func (b *RequirementBuilder) WithConstraint(constraint string) *RequirementBuilder {
	b.constraint = constraint
	return b
}

// WithMarker sets the environment marker.
func (b *RequirementBuilder) WithMarker(marker string) *RequirementBuilder {
	b.marker = marker
	return b
}

// WithLine sets the manifest line number.
func (b *RequirementBuilder) WithLine(line int) *RequirementBuilder {
	b.line = line
	return b
}

// Build creates the requirement (satisfies testkit.Builder interface).
func (b *RequirementBuilder) Build() interface{} {
	return b.BuildRequirement()
}

// BuildRequirement creates the requirement with a concrete return type.
func (b *RequirementBuilder) BuildRequirement() entities.Requirement {
	raw := b.name
	if len(b.extras) > 0 {
		raw += "["
		for i, extra := range b.extras {
			if i > 0 {
				raw += ","
			}
			raw += extra
		}
		raw += "]"
	}
	raw += b.constraint
	if b.marker != "" {
		raw += " ; " + b.marker
	}

	return entities.Requirement{
		Name:       b.name,
		Extras:     b.extras,
		Constraint: b.constraint,
		Marker:     b.marker,
		Raw:        raw,
		Line:       b.line,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *RequirementBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "requests"
	b.extras = nil
	b.constraint = "==2.32.0"
	b.marker = ""
	b.line = 1
	return b
}

// Clone creates a deep copy of the RequirementBuilder.
func (b *RequirementBuilder) Clone() testkit.Builder {
	extras := make([]string, len(b.extras))
	copy(extras, b.extras)

	return &RequirementBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:        b.name,
		extras:      extras,
		constraint:  b.constraint,
		marker:      b.marker,
		line:        b.line,
	}
}
