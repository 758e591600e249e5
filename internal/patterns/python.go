package patterns

import "regexp"

var (
	// Anchored so the trailing name of a `from X import Y` line is not
	// picked up as its own module.
	rePyImport     = regexp.MustCompile(`(?m)^\s*import\s+([A-Za-z0-9_.]+)`)
	rePyFromImport = regexp.MustCompile(`from\s+([A-Za-z0-9_.]+)\s+import`)
	rePyClass      = regexp.MustCompile(`class\s+([A-Za-z0-9_]+)(?:\([^)]*\))?:`)
	rePyFunction   = regexp.MustCompile(`def\s+([A-Za-z0-9_]+)\s*\(`)
)

func pythonImports(src string) []string {
	out := firstGroups(rePyImport, src)
	return append(out, firstGroups(rePyFromImport, src)...)
}

func pythonClasses(src string) []string {
	return firstGroups(rePyClass, src)
}

func pythonFunctions(src string) []string {
	return firstGroups(rePyFunction, src)
}
