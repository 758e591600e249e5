// Package prompt serializes an architecture summary into the bounded
// natural-language prompts sent to the model.
package prompt

import (
	"fmt"
	"sort"
	"strings"

	"codedoctor/internal/arch"
	"codedoctor/internal/utils"
)

// Options bounds how much of the summary the analysis prompt carries.
type Options struct {
	// TopDependencies caps how many packages per ecosystem are listed,
	// highest occurrence count first.
	TopDependencies int
	// TopPatterns caps how many names per pattern category are listed.
	TopPatterns int
}

const (
	DefaultTopDependencies = 15
	DefaultTopPatterns     = 10
)

func (o Options) withDefaults() Options {
	if o.TopDependencies <= 0 {
		o.TopDependencies = DefaultTopDependencies
	}
	if o.TopPatterns <= 0 {
		o.TopPatterns = DefaultTopPatterns
	}
	return o
}

// patternCategories is the fixed render order inside each file-type block.
var patternCategories = []struct{ key, heading string }{
	{"imports", "Common Imports"},
	{"exports", "Exports"},
	{"components", "Components"},
	{"classes", "Classes"},
	{"functions", "Functions"},
}

const analysisPreamble = `I need you to analyze a codebase and provide insights about its structure, patterns, and how to implement new features.
I'll provide information about the project structure and code patterns. Please analyze this and give me:

1. An overview of the codebase architecture and design
2. Common design patterns and coding conventions used
3. A guide on how to implement new features (like endpoints, database models, or frontend components)
4. Recommendations for best practices when working with this codebase

Here's data from the codebase analysis:
`

const analysisClosing = `
Please provide your analysis as structured sections:

# Overview
[Overall architecture and design of the codebase]

# Patterns
[Common design patterns and coding conventions]

# Examples
[Examples of implementing common features like:
- Adding a new API endpoint
- Creating a database model
- Adding a new frontend component
- Implementing a service or utility]

# Best Practices
[Best practices specific to this codebase]

# Recommendations
[Recommendations for working with this codebase effectively]
`

// BuildAnalysis renders the full-analysis prompt: preamble, statistics,
// directory tree, entry points, top dependencies per ecosystem, top pattern
// names per file type, and the closing section contract. Truncation to the
// top-N slices is silent.
func BuildAnalysis(sum *arch.Summary, opts Options) string {
	opts = opts.withDefaults()
	var b strings.Builder

	b.WriteString(analysisPreamble)
	b.WriteString("\n# Project Statistics\n")
	fmt.Fprintf(&b, "- Total files: %d\n", sum.Stats.TotalFiles)
	for _, ext := range sortedKeys(sum.Stats.FilesByType) {
		if n := sum.Stats.FilesByType[ext]; n > 0 {
			fmt.Fprintf(&b, "- %s files: %d\n", ext, n)
		}
	}

	fmt.Fprintf(&b, "\n# Directory Structure\n```\n%s```\n", ensureNewline(sum.DirectoryTree))

	if len(sum.EntryPoints) > 0 {
		b.WriteString("\n# Entry Points\n")
		for _, category := range arch.EntryPointCategories() {
			entries := sum.EntryPoints[category]
			if len(entries) == 0 {
				continue
			}
			fmt.Fprintf(&b, "\n## %s\n", capitalize(category))
			for _, e := range entries {
				fmt.Fprintf(&b, "- %s\n", e)
			}
		}
	}

	if len(sum.Dependencies) > 0 {
		b.WriteString("\n# Dependencies\n")
		for _, eco := range sortedKeys(sum.Dependencies) {
			table := sum.Dependencies[eco]
			if len(table) == 0 {
				continue
			}
			fmt.Fprintf(&b, "\n## %s\n", capitalize(eco))
			for _, d := range topByCount(table, opts.TopDependencies) {
				fmt.Fprintf(&b, "- %s: %d occurrences\n", d.name, d.count)
			}
		}
	}

	if len(sum.Patterns) > 0 {
		b.WriteString("\n# Code Patterns\n")
		for _, ext := range sortedKeys(sum.Patterns) {
			set := sum.Patterns[ext]
			if len(set) == 0 {
				continue
			}
			fmt.Fprintf(&b, "\n## %s Files\n", strings.ToUpper(ext))
			for _, cat := range patternCategories {
				names := set[cat.key]
				if len(names) == 0 {
					continue
				}
				fmt.Fprintf(&b, "\n### %s\n", cat.heading)
				for _, n := range headSlice(names, opts.TopPatterns) {
					fmt.Fprintf(&b, "- %s\n", n)
				}
			}
		}
	}

	b.WriteString(analysisClosing)
	return b.String()
}

// BuildQuery renders the documentation-grounded question prompt for the
// query path. The document text is cleaned (images, comments, blank-line
// runs) before embedding.
func BuildQuery(docContent, question string) string {
	var b strings.Builder
	b.WriteString("You are a helpful assistant that helps developers understand and work with a specific codebase.\n")
	b.WriteString("I'll provide you with documentation about the codebase structure, patterns, and implementation guidelines.\n")
	b.WriteString("\nHere's the codebase documentation:\n\n")
	b.WriteString(utils.MarkdownClean(docContent))
	b.WriteString("\n\nPlease use this documentation to answer the following question about the codebase:\n\n")
	b.WriteString(question)
	b.WriteString("\n\nProvide a detailed and specific answer based only on the information in the documentation.\n")
	b.WriteString("If the documentation doesn't contain enough information to answer the question, please say so.\n")
	return b.String()
}

type depCount struct {
	name  string
	count int
}

// topByCount returns up to n entries sorted by descending count, name
// ascending on ties so output is stable.
func topByCount(table map[string]int, n int) []depCount {
	out := make([]depCount, 0, len(table))
	for name, count := range table {
		out = append(out, depCount{name, count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].name < out[j].name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func headSlice(in []string, n int) []string {
	if len(in) > n {
		return in[:n]
	}
	return in
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
