package arch

import (
	"encoding/json"
	"log"
	"strings"

	"codedoctor/internal/patterns"
	"codedoctor/internal/safeio"
	"codedoctor/internal/scan"
)

// pythonManifests is the ordered candidate list probed for Python
// dependencies. Only requirements-style content is parsed; the other
// formats are probed but contribute nothing.
var pythonManifests = []string{"requirements.txt", "Pipfile", "pyproject.toml", "setup.py"}

type packageManifest struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// AggregateDependencies merges manifest-declared dependencies with
// import-derived tallies into one occurrence-count table per ecosystem.
// Manifest entries seed at 1; every sampled file then adds one occurrence
// per distinct top-level package it imports. Ecosystems that end up empty
// are omitted. Manifest failures degrade to the import tally alone.
func AggregateDependencies(rfs *safeio.RepoFS, samples map[string][]scan.SampledFile) map[string]map[string]int {
	deps := map[string]map[string]int{
		"javascript": {},
		"python":     {},
	}

	seedJavaScriptManifest(rfs, deps["javascript"])
	seedPythonManifests(rfs, deps["python"])

	for ext, files := range samples {
		switch patterns.FamilyForType(ext) {
		case patterns.FamilyJS:
			for _, f := range files {
				for _, imp := range patterns.Imports(patterns.FamilyJS, f.Content) {
					if strings.HasPrefix(imp, ".") || strings.HasPrefix(imp, "/") {
						continue
					}
					pkg, _, _ := strings.Cut(imp, "/")
					if pkg == "" {
						continue
					}
					deps["javascript"][pkg]++
				}
			}
		case patterns.FamilyPython:
			for _, f := range files {
				for _, imp := range patterns.Imports(patterns.FamilyPython, f.Content) {
					pkg, _, _ := strings.Cut(imp, ".")
					if pkg == "" {
						continue
					}
					deps["python"][pkg]++
				}
			}
		}
	}

	for eco, table := range deps {
		if len(table) == 0 {
			delete(deps, eco)
		}
	}
	return deps
}

// seedJavaScriptManifest reads package.json and seeds every declared runtime
// and development dependency at count 1. The two sections merge last-wins.
func seedJavaScriptManifest(rfs *safeio.RepoFS, table map[string]int) {
	raw, err := rfs.ReadFile("package.json")
	if err != nil {
		return
	}
	var m packageManifest
	if err := json.Unmarshal(raw, &m); err != nil {
		log.Printf("arch: error parsing package.json: %v", err)
		return
	}
	for name := range m.Dependencies {
		table[name] = 1
	}
	for name := range m.DevDependencies {
		table[name] = 1
	}
}

// seedPythonManifests walks the candidate list; requirements-style files
// contribute one count per non-comment line, stripped of == and >= pins.
// Candidates accumulate rather than shadow each other.
func seedPythonManifests(rfs *safeio.RepoFS, table map[string]int) {
	for _, name := range pythonManifests {
		raw, err := rfs.ReadFile(name)
		if err != nil {
			continue
		}
		if name != "requirements.txt" {
			continue
		}
		for _, line := range strings.Split(string(raw), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			pkg := strings.SplitN(line, "==", 2)[0]
			pkg = strings.SplitN(pkg, ">=", 2)[0]
			pkg = strings.TrimSpace(pkg)
			if pkg == "" {
				continue
			}
			table[pkg]++
		}
	}
}
