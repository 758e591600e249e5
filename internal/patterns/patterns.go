// Package patterns extracts identifier-level signals from sampled source
// files with per-language regex heuristics. The output is best-effort: it
// over- and under-matches by design and never resolves names semantically.
package patterns

import "codedoctor/internal/scan"

// Family tags one group of languages sharing extraction heuristics.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyJS
	FamilyPython
	FamilyJavaKotlin
	FamilyGo
)

// FamilyForType maps a FileRecord type (lowercase extension without dot) to
// its extraction family.
func FamilyForType(ext string) Family {
	switch ext {
	case "js", "jsx", "ts", "tsx":
		return FamilyJS
	case "py":
		return FamilyPython
	case "java", "kt":
		return FamilyJavaKotlin
	case "go":
		return FamilyGo
	default:
		return FamilyUnknown
	}
}

// Set maps a pattern category ("imports", "exports", "classes", "functions",
// "components") to deduplicated identifier names. Order carries no meaning.
type Set map[string][]string

// extractor is a stateless pass over one file's source text.
type extractor func(src string) []string

// categories lists, per family, the category name and its extractor in the
// order they appear in the report.
func categories(fam Family) []struct {
	name string
	fn   extractor
} {
	type cat = struct {
		name string
		fn   extractor
	}
	switch fam {
	case FamilyJS:
		return []cat{
			{"imports", jsImports},
			{"exports", jsExports},
			{"components", jsComponents},
		}
	case FamilyPython:
		return []cat{
			{"imports", pythonImports},
			{"classes", pythonClasses},
			{"functions", pythonFunctions},
		}
	case FamilyJavaKotlin:
		return []cat{
			{"imports", javaImports},
			{"classes", javaClasses},
		}
	case FamilyGo:
		return []cat{
			{"imports", goImports},
			{"functions", goFunctions},
		}
	default:
		return nil
	}
}

// Extract runs every category extractor of the family over all sampled files
// and unions the results. Categories always appear in the Set, possibly
// empty; duplicates across files collapse.
func Extract(fam Family, files []scan.SampledFile) Set {
	cats := categories(fam)
	if cats == nil {
		return nil
	}
	out := make(Set, len(cats))
	for _, c := range cats {
		var names []string
		for _, f := range files {
			names = append(names, c.fn(f.Content)...)
		}
		out[c.name] = dedupe(names)
	}
	return out
}

// Imports runs only the family's import extractor over one file,
// deduplicated within that file. The dependency aggregator calls this per
// sampled file: one occurrence per distinct specifier per file.
func Imports(fam Family, src string) []string {
	switch fam {
	case FamilyJS:
		return dedupe(jsImports(src))
	case FamilyPython:
		return dedupe(pythonImports(src))
	case FamilyJavaKotlin:
		return dedupe(javaImports(src))
	case FamilyGo:
		return dedupe(goImports(src))
	default:
		return nil
	}
}

func dedupe(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
