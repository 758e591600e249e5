package arch

import "regexp"

// entryPointGroups holds, per category, the ordered alternative path shapes
// that mark a file as a likely entry point. A path is tested against every
// category; inside one category the first hit wins.
var entryPointGroups = []struct {
	name     string
	patterns []*regexp.Regexp
}{
	{"backend", []*regexp.Regexp{
		regexp.MustCompile(`(?i)(app\.py|server\.py|main\.py|index\.py|application\.py)$`),
		regexp.MustCompile(`(?i)(app\.js|server\.js|index\.js|main\.js)$`),
		regexp.MustCompile(`(?i)(app\.ts|server\.ts|index\.ts|main\.ts)$`),
		regexp.MustCompile(`(?i)(Program\.cs|Startup\.cs)$`),
	}},
	{"frontend", []*regexp.Regexp{
		regexp.MustCompile(`(?i)(index\.html)$`),
		regexp.MustCompile(`(?i)(index\.jsx?|App\.jsx?|main\.jsx?)$`),
		regexp.MustCompile(`(?i)(index\.tsx?|App\.tsx?|main\.tsx?)$`),
	}},
	{"cli", []*regexp.Regexp{
		regexp.MustCompile(`(?i)(cli\.py|__main__\.py|bin/.+)$`),
		regexp.MustCompile(`(?i)(cli\.js|bin/.+\.js)$`),
	}},
	{"config", []*regexp.Regexp{
		regexp.MustCompile(`(?i)(config\..+|.+\.config\..+)$`),
		regexp.MustCompile(`(?i)(package\.json|tsconfig\.json|poetry\.toml|pyproject\.toml)$`),
		regexp.MustCompile(`(?i)(Dockerfile|docker-compose\.yml)$`),
		regexp.MustCompile(`(?i)(.+\.yaml|.+\.yml)$`),
	}},
}

// ClassifyEntryPoints maps category names ("backend", "frontend", "cli",
// "config") to the paths matching that category, preserving input order.
// Categories with no matches are omitted; a path may land in several.
func ClassifyEntryPoints(paths []string) map[string][]string {
	out := map[string][]string{}
	for _, p := range paths {
		for _, group := range entryPointGroups {
			for _, re := range group.patterns {
				if re.MatchString(p) {
					out[group.name] = append(out[group.name], p)
					break
				}
			}
		}
	}
	return out
}

// EntryPointCategories lists the category names in report order.
func EntryPointCategories() []string {
	names := make([]string, 0, len(entryPointGroups))
	for _, g := range entryPointGroups {
		names = append(names, g.name)
	}
	return names
}
