package entities

import (
	"strings"
)

// SetupScriptName is the file the build hand-off writes into the project.
const SetupScriptName = "setup.py"

// RenderSetupScript renders the descriptor as a complete setup.py. The
// emitted keyword order is fixed: name, url, version, author, author_email,
// description, packages, install_requires, include_package_data.
//
// Discovery already happened when the descriptor was assembled, so the
// script carries a static package list instead of calling find_packages()
// at install time.
func (it PackageDescriptor) RenderSetupScript() string {
	var sb strings.Builder

	sb.WriteString("# Generated by pydist. Do not edit by hand.\n")
	sb.WriteString("from setuptools import setup\n\n")
	sb.WriteString("setup(\n")
	sb.WriteString("    name=" + pyString(it.Name) + ",\n")
	sb.WriteString("    url=" + pyString(it.SourceURL) + ",\n")
	sb.WriteString("    version=" + pyString(it.Version) + ",\n")
	sb.WriteString("    author=" + pyString(it.Author) + ",\n")
	sb.WriteString("    author_email=" + pyString(it.AuthorEmail) + ",\n")
	sb.WriteString("    description=" + pyString(it.Description) + ",\n")
	sb.WriteString("    packages=" + pyStringList(it.Packages, false) + ",\n")
	sb.WriteString("    install_requires=" + pyStringList(it.Requirements, true) + ",\n")
	if it.IncludePackageData {
		sb.WriteString("    include_package_data=True,\n")
	} else {
		sb.WriteString("    include_package_data=False,\n")
	}
	sb.WriteString(")\n")

	return sb.String()
}

// pyString renders a Go string as a single-quoted Python string literal.
func pyString(s string) string {
	escaped := strings.ReplaceAll(s, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `'`, `\'`)
	return "'" + escaped + "'"
}

// pyStringList renders a slice as a Python list literal. Multiline lists put
// one element per line, which keeps install_requires diffs readable.
func pyStringList(items []string, multiline bool) string {
	if len(items) == 0 {
		return "[]"
	}

	if !multiline {
		quoted := make([]string, 0, len(items))
		for _, item := range items {
			quoted = append(quoted, pyString(item))
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	}

	var sb strings.Builder
	sb.WriteString("[\n")
	for _, item := range items {
		sb.WriteString("        " + pyString(item) + ",\n")
	}
	sb.WriteString("    ]")
	return sb.String()
}
