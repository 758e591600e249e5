package scan

import (
	"io/fs"
	"log"
	"path/filepath"
	"sort"
	"strings"

	"codedoctor/internal/safeio"
)

// Options bounds a repository scan. Zero values fall back to the defaults
// the tool has always used.
type Options struct {
	// Directory basenames pruned before descending (e.g., ".git", "node_modules").
	IgnoreDirs []string
	// Per-extension sample cap; the first N files encountered are kept.
	MaxFilesPerType int
	// Files larger than this many bytes are skipped entirely.
	MaxFileSize int64
	// Sampled content is truncated to this many bytes.
	ContentLimit int
}

const (
	DefaultMaxFilesPerType = 25
	DefaultMaxFileSize     = 1_000_000
	DefaultContentLimit    = 100_000
)

// DefaultIgnoreDirs lists directory names never descended into.
func DefaultIgnoreDirs() []string {
	return []string{".git", "node_modules", "__pycache__", "venv", "dist", "build"}
}

func (o Options) withDefaults() Options {
	if o.IgnoreDirs == nil {
		o.IgnoreDirs = DefaultIgnoreDirs()
	}
	if o.MaxFilesPerType <= 0 {
		o.MaxFilesPerType = DefaultMaxFilesPerType
	}
	if o.MaxFileSize <= 0 {
		o.MaxFileSize = DefaultMaxFileSize
	}
	if o.ContentLimit <= 0 {
		o.ContentLimit = DefaultContentLimit
	}
	return o
}

// NoExtension is the type sentinel for files without an extension.
const NoExtension = "no_extension"

// FileRecord is the per-file index entry for every accepted file.
type FileRecord struct {
	// Repo-relative path using forward slashes.
	Path string
	// Lowercased extension without the leading dot, or NoExtension.
	Type string
	// File size in bytes.
	Size int64
}

// SampledFile carries truncated content for pattern extraction.
type SampledFile struct {
	Path    string
	Content string
}

// Stats are the running scan counters.
type Stats struct {
	TotalFiles  int
	FilesByType map[string]int
}

// Result is the sampler output: the full file index, a bounded
// per-extension content sample, and the counters.
type Result struct {
	Files   map[string]FileRecord
	Samples map[string][]SampledFile
	Stats   Stats
}

// Paths returns the indexed file paths in sorted order.
func (r *Result) Paths() []string {
	out := make([]string, 0, len(r.Files))
	for p := range r.Files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Sample walks the repository bound to rfs and builds the file index plus a
// capped per-extension content sample. Binary files and files over
// MaxFileSize are recorded nowhere. A file that fails the content read after
// being indexed stays in the index and counters but is excluded from the
// sample.
func Sample(rfs *safeio.RepoFS, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	res := &Result{
		Files:   map[string]FileRecord{},
		Samples: map[string][]SampledFile{},
		Stats:   Stats{FilesByType: map[string]int{}},
	}
	cache := newContentCache()

	ignore := make(map[string]struct{}, len(opts.IgnoreDirs))
	for _, d := range opts.IgnoreDirs {
		ignore[d] = struct{}{}
	}

	root := rfs.Root()
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path == root {
				return nil
			}
			if _, skip := ignore[d.Name()]; skip {
				return filepath.SkipDir
			}
			return nil
		}

		rel, rerr := filepath.Rel(root, path)
		if rerr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		info, ierr := d.Info()
		if ierr != nil {
			return nil
		}
		size := info.Size()
		if size > opts.MaxFileSize {
			return nil
		}

		probe, perr := cache.read(rfs, rel, binaryProbeLen)
		if perr != nil {
			log.Printf("scan: unreadable file %s: %v", rel, perr)
			return nil
		}
		if isBinary(probe, size > binaryProbeLen) {
			return nil
		}

		ext := extType(rel)
		res.Stats.TotalFiles++
		res.Stats.FilesByType[ext]++
		res.Files[rel] = FileRecord{Path: rel, Type: ext, Size: size}

		if len(res.Samples[ext]) < opts.MaxFilesPerType {
			content, cerr := cache.read(rfs, rel, opts.ContentLimit)
			if cerr != nil {
				log.Printf("scan: unable to read file as text: %s", rel)
				return nil
			}
			text, ok := textPrefix(content, int64(len(content)) < size)
			if !ok {
				log.Printf("scan: unable to read file as text: %s", rel)
				return nil
			}
			res.Samples[ext] = append(res.Samples[ext], SampledFile{Path: rel, Content: string(text)})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Dirs returns repo-relative directory paths under rfs, pruning the ignore
// set and hidden directories. This is the listing capability behind the
// rendered directory tree; callers tolerate it failing.
func Dirs(rfs *safeio.RepoFS, ignoreDirs []string) ([]string, error) {
	ignore := make(map[string]struct{}, len(ignoreDirs))
	for _, d := range ignoreDirs {
		ignore[d] = struct{}{}
	}

	root := rfs.Root()
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() || path == root {
			return nil
		}
		name := d.Name()
		if _, skip := ignore[name]; skip || strings.HasPrefix(name, ".") {
			return filepath.SkipDir
		}
		rel, rerr := filepath.Rel(root, path)
		if rerr != nil {
			return nil
		}
		dirs = append(dirs, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(dirs)
	return dirs, nil
}

func extType(rel string) string {
	ext := strings.ToLower(filepath.Ext(rel))
	if ext == "" {
		return NoExtension
	}
	return ext[1:]
}
