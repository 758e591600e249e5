// Package report renders the final analysis document and reads it back for
// the query path. The rendered file is the only input the query path ever
// sees, so its structure is part of the tool's contract.
package report

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"codedoctor/internal/analysis"
	"codedoctor/internal/arch"
)

// sectionDefaults supplies the text used when the model reply lacked a
// section.
var sectionDefaults = map[string]string{
	"overview":        "No overview available.",
	"patterns":        "No patterns detected.",
	"examples":        "No examples provided.",
	"best_practices":  "No best practices defined.",
	"recommendations": "No recommendations provided.",
}

// Render produces the markdown document: title, table of contents, then the
// fixed section order Overview, Project Structure, Code Patterns,
// Dependencies, Implementation Examples, Best Practices, Recommendations.
func Render(sum *arch.Summary, sections analysis.Sections) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s Codebase Analysis\n\n", sum.RepoName)

	b.WriteString("## Table of Contents\n\n")
	b.WriteString("1. [Overview](#overview)\n")
	b.WriteString("2. [Project Structure](#project-structure)\n")
	b.WriteString("3. [Code Patterns](#code-patterns)\n")
	b.WriteString("4. [Dependencies](#dependencies)\n")
	b.WriteString("5. [Implementation Examples](#implementation-examples)\n")
	b.WriteString("6. [Best Practices](#best-practices)\n")
	b.WriteString("7. [Recommendations](#recommendations)\n\n")

	b.WriteString("## Overview\n\n")
	b.WriteString(sectionOrDefault(sections, "overview"))
	b.WriteString("\n\n")

	b.WriteString("## Project Structure\n\n")
	fmt.Fprintf(&b, "```\n%s```\n\n", ensureNewline(sum.DirectoryTree))

	b.WriteString("### File Statistics\n\n")
	fmt.Fprintf(&b, "- Total files: %d\n", sum.Stats.TotalFiles)
	for _, ext := range sortedKeys(sum.Stats.FilesByType) {
		if n := sum.Stats.FilesByType[ext]; n > 0 {
			fmt.Fprintf(&b, "- %s files: %d\n", ext, n)
		}
	}
	b.WriteString("\n")

	if len(sum.EntryPoints) > 0 {
		b.WriteString("### Entry Points\n\n")
		for _, category := range arch.EntryPointCategories() {
			entries := sum.EntryPoints[category]
			if len(entries) == 0 {
				continue
			}
			fmt.Fprintf(&b, "#### %s\n\n", capitalize(category))
			for _, e := range entries {
				fmt.Fprintf(&b, "- `%s`\n", e)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("## Code Patterns\n\n")
	b.WriteString(sectionOrDefault(sections, "patterns"))
	b.WriteString("\n\n")

	b.WriteString("## Dependencies\n\n")
	if len(sum.Dependencies) > 0 {
		for _, eco := range sortedKeys(sum.Dependencies) {
			table := sum.Dependencies[eco]
			fmt.Fprintf(&b, "### %s\n\n", capitalize(eco))
			for _, name := range keysByCount(table) {
				fmt.Fprintf(&b, "- %s: %d occurrences\n", name, table[name])
			}
			b.WriteString("\n")
		}
	} else {
		b.WriteString("No dependencies detected.\n\n")
	}

	b.WriteString("## Implementation Examples\n\n")
	b.WriteString(sectionOrDefault(sections, "examples"))
	b.WriteString("\n\n")

	b.WriteString("## Best Practices\n\n")
	b.WriteString(sectionOrDefault(sections, "best_practices"))
	b.WriteString("\n\n")

	b.WriteString("## Recommendations\n\n")
	b.WriteString(sectionOrDefault(sections, "recommendations"))
	b.WriteString("\n")

	return b.String()
}

// WriteFile writes the rendered document to path.
func WriteFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

// Load reads a previously generated document for the query path.
func Load(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("report: reading documentation %s: %w", path, err)
	}
	return string(b), nil
}

func sectionOrDefault(sections analysis.Sections, key string) string {
	if v, ok := sections[key]; ok && v != "" {
		return v
	}
	return sectionDefaults[key]
}

// keysByCount orders a dependency table by descending count, then name.
func keysByCount(table map[string]int) []string {
	names := sortedKeys(table)
	sort.SliceStable(names, func(i, j int) bool {
		return table[names[i]] > table[names[j]]
	})
	return names
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func ensureNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
