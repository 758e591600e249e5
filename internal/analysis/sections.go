// Package analysis turns the model's free-form reply into the named
// narrative sections the document renderer consumes.
package analysis

import "strings"

// sectionHeaders pairs each section key with its canonical reply header, in
// report order. Matching is case-sensitive.
var sectionHeaders = []struct {
	key    string
	header string
}{
	{"overview", "# Overview"},
	{"patterns", "# Patterns"},
	{"examples", "# Examples"},
	{"best_practices", "# Best Practices"},
	{"recommendations", "# Recommendations"},
}

// Sections is a partial mapping: a key is present only when its header was
// found in the reply. Consumers must supply their own defaults for absent
// keys.
type Sections map[string]string

// SectionKeys returns the five section keys in report order.
func SectionKeys() []string {
	keys := make([]string, 0, len(sectionHeaders))
	for _, s := range sectionHeaders {
		keys = append(keys, s.key)
	}
	return keys
}

// ParseSections splits a reply into sections. Each section's body runs from
// its header to the first occurrence of any other canonical header, or to
// the end of the text. Parsing is total: arbitrary input (including empty)
// yields between zero and five keys and never an error.
func ParseSections(text string) Sections {
	out := Sections{}
	for i, s := range sectionHeaders {
		start := strings.Index(text, s.header)
		if start < 0 {
			continue
		}
		body := text[start+len(s.header):]

		end := len(body)
		for j, other := range sectionHeaders {
			if j == i {
				continue
			}
			if k := strings.Index(body, other.header); k >= 0 && k < end {
				end = k
			}
		}
		out[s.key] = strings.TrimSpace(body[:end])
	}
	return out
}

// ErrorSections pre-fills every section with the same error marker, used
// when the model call fails and the document must still render.
func ErrorSections(msg string) Sections {
	out := make(Sections, len(sectionHeaders))
	for _, s := range sectionHeaders {
		out[s.key] = msg
	}
	return out
}
