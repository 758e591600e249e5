package patterns

import "regexp"

var (
	reJavaImport = regexp.MustCompile(`import\s+([A-Za-z0-9_.]+);`)
	reJavaClass  = regexp.MustCompile(`(?:public|private|protected)?\s+class\s+([A-Za-z0-9_]+)`)
)

func javaImports(src string) []string {
	return firstGroups(reJavaImport, src)
}

func javaClasses(src string) []string {
	return firstGroups(reJavaClass, src)
}
