package scanner

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rios0rios0/pydist/internal/domain/entities"
)

// specifierOperators marks the first character of a PEP 440 version
// specifier. Everything before it is the requirement name (plus extras).
const specifierOperators = "=<>!~"

// ScanRequirements reads a pip requirements manifest and returns one
// requirement per surviving line, in manifest order.
//
// Every line is whitespace-trimmed. Blank lines and full-line comments are
// dropped, and inline comments are stripped. The file handle is released
// before the function returns, whatever the outcome.
func ScanRequirements(path string) ([]entities.Requirement, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %q: %w", path, err)
	}
	defer file.Close()

	var requirements []entities.Requirement

	lineNo := 0
	fileScanner := bufio.NewScanner(file)
	for fileScanner.Scan() {
		lineNo++

		line := strings.TrimSpace(fileScanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		line = stripInlineComment(line)
		if line == "" {
			continue
		}

		requirements = append(requirements, parseRequirementLine(line, lineNo))
	}

	if scanErr := fileScanner.Err(); scanErr != nil {
		return nil, fmt.Errorf("failed to scan manifest %q: %w", path, scanErr)
	}

	return requirements, nil
}

// stripInlineComment removes a trailing " #..." comment. pip only treats a
// hash preceded by whitespace as a comment, which keeps URL fragments intact.
func stripInlineComment(line string) string {
	if idx := strings.Index(line, " #"); idx >= 0 {
		line = line[:idx]
	}
	return strings.TrimSpace(line)
}

// parseRequirementLine splits one manifest line into its name, extras,
// version constraint and environment marker. Option lines ("-r", "--index-url")
// and direct URL references are carried raw with an empty name.
func parseRequirementLine(line string, lineNo int) entities.Requirement {
	req := entities.Requirement{
		Raw:  line,
		Line: lineNo,
	}

	if strings.HasPrefix(line, "-") || strings.Contains(line, "://") {
		return req
	}

	spec := line
	if idx := strings.Index(spec, ";"); idx >= 0 {
		req.Marker = strings.TrimSpace(spec[idx+1:])
		spec = strings.TrimSpace(spec[:idx])
	}

	namePart := spec
	if idx := strings.IndexAny(spec, specifierOperators); idx >= 0 {
		namePart = strings.TrimSpace(spec[:idx])
		req.Constraint = strings.TrimSpace(spec[idx:])
	}

	if idx := strings.Index(namePart, "["); idx >= 0 {
		inner := strings.TrimSuffix(namePart[idx+1:], "]")
		for _, extra := range strings.Split(inner, ",") {
			if extra = strings.TrimSpace(extra); extra != "" {
				req.Extras = append(req.Extras, extra)
			}
		}
		namePart = namePart[:idx]
	}

	req.Name = strings.TrimSpace(namePart)
	return req
}
