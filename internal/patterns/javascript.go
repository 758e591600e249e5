package patterns

import "regexp"

var (
	// String literal directly following an import or require token:
	// `import "y"`, `import("y")`, `require("y")`. Named ES imports with a
	// binding list before the specifier fall through; heuristic, accepted.
	reJSImport = regexp.MustCompile(`(?:import|require)\s*\(?['"]([^'"]*)['"]\)?`)

	reJSExportDecl    = regexp.MustCompile(`export\s+(?:default\s+)?(?:class|function|const|let|var)\s+([A-Za-z0-9_$]+)`)
	reJSExportDefault = regexp.MustCompile(`export\s+default\s+([A-Za-z0-9_$]+)`)

	// Component-like shapes: capitalized class extending a Component base,
	// capitalized arrow binding, capitalized function declaration. Permissive
	// on purpose.
	reJSComponentClass = regexp.MustCompile(`(?:export\s+)?(?:default\s+)?class\s+([A-Z][A-Za-z0-9_$]*)\s+extends\s+(?:React\.)?Component`)
	reJSComponentArrow = regexp.MustCompile(`(?:export\s+)?(?:const|let|var)\s+([A-Z][A-Za-z0-9_$]*)\s*=\s*(?:\([^)]*\)|[^=]*)\s*=>\s*\{`)
	reJSComponentFunc  = regexp.MustCompile(`function\s+([A-Z][A-Za-z0-9_$]*)\s*\(`)
)

func jsImports(src string) []string {
	return firstGroups(reJSImport, src)
}

func jsExports(src string) []string {
	out := firstGroups(reJSExportDecl, src)
	return append(out, firstGroups(reJSExportDefault, src)...)
}

func jsComponents(src string) []string {
	out := firstGroups(reJSComponentClass, src)
	out = append(out, firstGroups(reJSComponentArrow, src)...)
	return append(out, firstGroups(reJSComponentFunc, src)...)
}

// firstGroups collects capture group 1 of every match.
func firstGroups(re *regexp.Regexp, src string) []string {
	ms := re.FindAllStringSubmatch(src, -1)
	if len(ms) == 0 {
		return nil
	}
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m[1])
	}
	return out
}
