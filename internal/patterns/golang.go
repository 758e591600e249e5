package patterns

import (
	"regexp"
	"strings"
)

var (
	reGoImportBlock  = regexp.MustCompile(`(?s)import\s+\(\s*(.*?)\s*\)`)
	reGoImportSingle = regexp.MustCompile(`import\s+"([^"]+)"`)
	reGoQuoted       = regexp.MustCompile(`"([^"]+)"`)
	reGoFunction     = regexp.MustCompile(`func\s+(?:\([^)]+\)\s+)?([A-Za-z0-9_]+)\s*\(`)
)

func goImports(src string) []string {
	var out []string
	for _, block := range firstGroups(reGoImportBlock, src) {
		for _, line := range strings.Split(block, "\n") {
			if m := reGoQuoted.FindStringSubmatch(line); m != nil {
				out = append(out, m[1])
			}
		}
	}
	return append(out, firstGroups(reGoImportSingle, src)...)
}

func goFunctions(src string) []string {
	return firstGroups(reGoFunction, src)
}
