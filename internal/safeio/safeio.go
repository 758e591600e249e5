package safeio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// RepoFS provides read-only helpers that resolve paths relative to a fixed
// repository root. Every analysis read (file contents, manifests, directory
// listings) goes through a RepoFS so nothing outside the analyzed tree is
// ever opened.
type RepoFS struct {
	absRoot string // absolute root with symlinks resolved
}

// New locks all future operations to the given root directory.
func New(root string) (*RepoFS, error) {
	if root == "" {
		return nil, errors.New("safeio: empty root")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	abs, err = filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errors.New("safeio: root is not a directory")
	}
	return &RepoFS{absRoot: abs}, nil
}

// Root returns the absolute root directory bound to this RepoFS.
func (r *RepoFS) Root() string {
	if r == nil {
		return ""
	}
	return r.absRoot
}

// ReadFile reads a file relative to the root.
func (r *RepoFS) ReadFile(userPath string) ([]byte, error) {
	p, err := r.resolve(userPath)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(p)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, errors.New("safeio: path is a directory")
	}
	return os.ReadFile(p)
}

// Open opens a file relative to the root for reading.
func (r *RepoFS) Open(userPath string) (*os.File, error) {
	p, err := r.resolve(userPath)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(p)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, errors.New("safeio: path is a directory")
	}
	return os.Open(p)
}

// Stat returns metadata for a file or directory under the root.
func (r *RepoFS) Stat(userPath string) (fs.FileInfo, error) {
	p, err := r.resolve(userPath)
	if err != nil {
		return nil, err
	}
	return os.Stat(p)
}

func (r *RepoFS) resolve(userPath string) (string, error) {
	if r == nil {
		return "", errors.New("safeio: filesystem not configured")
	}
	if userPath == "" {
		return "", errors.New("safeio: empty path")
	}
	clean := filepath.Clean(userPath)
	if clean == "." {
		return r.absRoot, nil
	}

	isAbs := filepath.IsAbs(clean)
	if !isAbs {
		if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
			return "", errors.New("safeio: path traversal not allowed")
		}
	}

	joined := clean
	if !isAbs {
		joined = filepath.Join(r.absRoot, clean)
	}

	resolved, err := filepath.EvalSymlinks(joined)
	if err != nil {
		return "", err
	}
	if !hasPathPrefix(resolved, r.absRoot) {
		return "", fmt.Errorf("safeio: resolved outside root (root=%s, path=%s)", r.absRoot, resolved)
	}
	return resolved, nil
}

func hasPathPrefix(path, root string) bool {
	path = filepath.Clean(path)
	root = filepath.Clean(root)
	if runtime.GOOS == "windows" {
		path = strings.ToLower(path)
		root = strings.ToLower(root)
	}
	if root == "" {
		return true
	}
	if path == root {
		return true
	}
	sep := string(os.PathSeparator)
	if !strings.HasSuffix(root, sep) {
		root += sep
	}
	if !strings.HasSuffix(path, sep) {
		path += sep
	}
	return strings.HasPrefix(path, root)
}
