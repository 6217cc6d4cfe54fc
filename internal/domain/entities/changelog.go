package entities

import (
	"fmt"
	"strings"
	"time"
)

const (
	unreleasedHeading = "## [Unreleased]"
	changedSubheading = "### Changed"
	h2Prefix          = "## ["
	bulletPrefix      = "- "
)

// Changelog is a Keep-a-Changelog formatted document, parsed line-wise so
// edits keep the surrounding text byte-for-byte intact.
type Changelog struct {
	lines []string
}

// ParseChangelog wraps raw changelog content for editing.
func ParseChangelog(content string) *Changelog {
	return &Changelog{lines: strings.Split(content, "\n")}
}

// String renders the document back to its textual form.
func (it *Changelog) String() string {
	return strings.Join(it.lines, "\n")
}

// HasUnreleased reports whether the document carries an Unreleased section.
func (it *Changelog) HasUnreleased() bool {
	return it.unreleasedIndex() >= 0
}

// InsertUnreleasedEntries inserts bullet entries into the "### Changed"
// subsection under "## [Unreleased]".
//
// Behaviour:
//   - Without an Unreleased section the document is left unchanged.
//   - With an existing "### Changed" subsection the entries are appended
//     after its last bullet line.
//   - Otherwise a new "### Changed" subsection is created right after the
//     "## [Unreleased]" line.
func (it *Changelog) InsertUnreleasedEntries(entries []string) {
	if len(entries) == 0 {
		return
	}

	unreleasedIdx := it.unreleasedIndex()
	if unreleasedIdx < 0 {
		return
	}

	sectionEnd := it.nextH2Index(unreleasedIdx)
	changedIdx := it.changedIndex(unreleasedIdx, sectionEnd)

	if changedIdx >= 0 {
		insertAfter := it.lastBulletIndex(changedIdx, sectionEnd)
		it.insertAt(insertAfter+1, entries)
		return
	}

	block := []string{"", changedSubheading, ""}
	block = append(block, entries...)
	it.insertAt(unreleasedIdx+1, block)
}

// PromoteUnreleased renames the Unreleased section to a released version
// heading dated at the given time, and opens a fresh empty Unreleased
// section above it. Promoting a document without an Unreleased section or
// with an empty one is an error.
func (it *Changelog) PromoteUnreleased(version string, date time.Time) error {
	unreleasedIdx := it.unreleasedIndex()
	if unreleasedIdx < 0 {
		return fmt.Errorf("changelog has no %q section", unreleasedHeading)
	}

	sectionEnd := it.nextH2Index(unreleasedIdx)
	if !it.sectionHasContent(unreleasedIdx, sectionEnd) {
		return fmt.Errorf("the %q section is empty, nothing to release", unreleasedHeading)
	}

	it.lines[unreleasedIdx] = fmt.Sprintf("## [%s] - %s", version, date.Format("2006-01-02"))
	it.insertAt(unreleasedIdx, []string{unreleasedHeading, ""})
	return nil
}

// unreleasedIndex returns the line index of the "## [Unreleased]" heading,
// or -1 if not found.
func (it *Changelog) unreleasedIndex() int {
	for i, line := range it.lines {
		if strings.TrimSpace(line) == unreleasedHeading {
			return i
		}
	}
	return -1
}

// nextH2Index returns the line index of the next "## [" heading after
// startIdx, or the line count if there is none.
func (it *Changelog) nextH2Index(startIdx int) int {
	for i := startIdx + 1; i < len(it.lines); i++ {
		if strings.HasPrefix(strings.TrimSpace(it.lines[i]), h2Prefix) {
			return i
		}
	}
	return len(it.lines)
}

// changedIndex returns the line index of the "### Changed" subsection
// between startIdx and endIdx, or -1 if not found.
func (it *Changelog) changedIndex(startIdx, endIdx int) int {
	for i := startIdx + 1; i < endIdx; i++ {
		if strings.TrimSpace(it.lines[i]) == changedSubheading {
			return i
		}
	}
	return -1
}

// lastBulletIndex returns the index of the last bullet line in the
// subsection starting at headingIdx.
func (it *Changelog) lastBulletIndex(headingIdx, endIdx int) int {
	insertAfter := headingIdx
	for i := headingIdx + 1; i < endIdx; i++ {
		trimmed := strings.TrimSpace(it.lines[i])
		if trimmed == "" {
			continue // skip blank lines between bullets
		}
		if strings.HasPrefix(trimmed, bulletPrefix) {
			insertAfter = i
			continue
		}
		// Hit a different subsection heading or non-bullet content.
		break
	}
	return insertAfter
}

// sectionHasContent reports whether any non-blank line exists between the
// section heading and the next H2.
func (it *Changelog) sectionHasContent(startIdx, endIdx int) bool {
	for i := startIdx + 1; i < endIdx; i++ {
		if strings.TrimSpace(it.lines[i]) != "" {
			return true
		}
	}
	return false
}

// insertAt inserts extra lines at the given index.
func (it *Changelog) insertAt(at int, extra []string) {
	result := make([]string, 0, len(it.lines)+len(extra))
	result = append(result, it.lines[:at]...)
	result = append(result, extra...)
	result = append(result, it.lines[at:]...)
	it.lines = result
}
