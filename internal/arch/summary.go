package arch

import (
	"log"
	"path/filepath"

	"codedoctor/internal/patterns"
	"codedoctor/internal/safeio"
	"codedoctor/internal/scan"
	"codedoctor/internal/utils"
)

// TreeUnavailable is the placeholder used when directory listing fails.
const TreeUnavailable = "Directory structure unavailable."

// DirLister abstracts the "list directories under the root, minus the
// ignore set" capability. The summary builder tolerates it failing.
type DirLister interface {
	ListDirs() ([]string, error)
}

// FSDirLister lists directories straight off the repository filesystem.
type FSDirLister struct {
	FS         *safeio.RepoFS
	IgnoreDirs []string
}

func (l FSDirLister) ListDirs() ([]string, error) {
	return scan.Dirs(l.FS, l.IgnoreDirs)
}

// Summary is the bounded, structured description of a repository: the one
// object prompt assembly and document rendering consume. Immutable once
// built.
type Summary struct {
	RepoName      string
	DirectoryTree string
	// Patterns is keyed by file type (lowercase extension without dot).
	Patterns    map[string]patterns.Set
	EntryPoints map[string][]string
	// Dependencies is keyed by ecosystem; counts conflate manifest seeding
	// (1 per declared package) with per-file import mentions.
	Dependencies map[string]map[string]int
	Stats        scan.Stats
}

// BuildSummary composes the scan result, pattern extraction, entry-point
// classification, dependency aggregation, and the directory tree into one
// Summary. Only the directory listing may degrade; everything else is pure.
func BuildSummary(rfs *safeio.RepoFS, res *scan.Result, lister DirLister) *Summary {
	tree := TreeUnavailable
	if lister != nil {
		if dirs, err := lister.ListDirs(); err != nil {
			log.Printf("arch: directory listing failed: %v", err)
		} else {
			tree = utils.PathsToTree(dirs)
		}
	}

	byType := map[string]patterns.Set{}
	for ext, files := range res.Samples {
		if len(files) == 0 {
			continue
		}
		fam := patterns.FamilyForType(ext)
		if fam == patterns.FamilyUnknown {
			continue
		}
		byType[ext] = patterns.Extract(fam, files)
	}

	return &Summary{
		RepoName:      filepath.Base(rfs.Root()),
		DirectoryTree: tree,
		Patterns:      byType,
		EntryPoints:   ClassifyEntryPoints(res.Paths()),
		Dependencies:  AggregateDependencies(rfs, res.Samples),
		Stats:         res.Stats,
	}
}
