package scan

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"codedoctor/internal/safeio"
)

func write(t *testing.T, root, rel string, content []byte) {
	t.Helper()
	p := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, content, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func repoFS(t *testing.T, root string) *safeio.RepoFS {
	t.Helper()
	rfs, err := safeio.New(root)
	if err != nil {
		t.Fatalf("safeio.New: %v", err)
	}
	return rfs
}

func TestSampleIndexesAndCounts(t *testing.T) {
	root := t.TempDir()
	write(t, root, "main.go", []byte("package main\n"))
	write(t, root, "lib/util.go", []byte("package lib\n"))
	write(t, root, "README", []byte("hello\n"))
	write(t, root, "node_modules/x/dep.js", []byte("ignored"))

	res, err := Sample(repoFS(t, root), Options{})
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}

	if res.Stats.TotalFiles != 3 {
		t.Fatalf("TotalFiles=%d want 3", res.Stats.TotalFiles)
	}
	if got := res.Stats.FilesByType["go"]; got != 2 {
		t.Fatalf("go count=%d want 2", got)
	}
	if got := res.Stats.FilesByType[NoExtension]; got != 1 {
		t.Fatalf("no_extension count=%d want 1", got)
	}
	rec, ok := res.Files["lib/util.go"]
	if !ok {
		t.Fatal("lib/util.go missing from index")
	}
	if rec.Type != "go" {
		t.Fatalf("Type=%q want go", rec.Type)
	}
	if _, ok := res.Files["node_modules/x/dep.js"]; ok {
		t.Fatal("ignored dir was descended into")
	}
}

func TestSampleCapPerExtension(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 8; i++ {
		write(t, root, filepath.Join("src", string(rune('a'+i))+".py"), []byte("import os\n"))
	}

	res, err := Sample(repoFS(t, root), Options{MaxFilesPerType: 3})
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if got := len(res.Samples["py"]); got != 3 {
		t.Fatalf("sampled %d want 3", got)
	}
	// All eight still counted and indexed.
	if res.Stats.FilesByType["py"] != 8 {
		t.Fatalf("counted %d want 8", res.Stats.FilesByType["py"])
	}
	if len(res.Files) != 8 {
		t.Fatalf("indexed %d want 8", len(res.Files))
	}
}

func TestSampleSkipsOversizeEntirely(t *testing.T) {
	root := t.TempDir()
	write(t, root, "big.txt", bytes.Repeat([]byte("a"), 200))
	write(t, root, "small.txt", []byte("ok"))

	res, err := Sample(repoFS(t, root), Options{MaxFileSize: 100})
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if _, ok := res.Files["big.txt"]; ok {
		t.Fatal("oversize file indexed")
	}
	if res.Stats.TotalFiles != 1 {
		t.Fatalf("TotalFiles=%d want 1", res.Stats.TotalFiles)
	}
	if len(res.Samples["txt"]) != 1 || res.Samples["txt"][0].Path != "small.txt" {
		t.Fatalf("samples=%v", res.Samples["txt"])
	}
}

func TestSampleSkipsBinary(t *testing.T) {
	root := t.TempDir()
	write(t, root, "blob.bin", []byte{0x00, 0xff, 0xfe, 0x01})
	write(t, root, "text.txt", []byte("fine"))

	res, err := Sample(repoFS(t, root), Options{})
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if _, ok := res.Files["blob.bin"]; ok {
		t.Fatal("binary file indexed")
	}
	if res.Stats.TotalFiles != 1 {
		t.Fatalf("TotalFiles=%d want 1", res.Stats.TotalFiles)
	}
}

func TestSampleIndexesFileFailingLateTextCheck(t *testing.T) {
	root := t.TempDir()
	// Clean through the 1024-byte probe, NUL well past it: the file passes
	// the binary check but the full content read fails text decoding.
	content := append(bytes.Repeat([]byte("a"), 1400), 0x00)
	content = append(content, []byte("tail")...)
	write(t, root, "sneaky.txt", content)

	res, err := Sample(repoFS(t, root), Options{})
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if _, ok := res.Files["sneaky.txt"]; !ok {
		t.Fatal("file missing from index")
	}
	if res.Stats.TotalFiles != 1 || res.Stats.FilesByType["txt"] != 1 {
		t.Fatalf("stats=%+v want the file counted", res.Stats)
	}
	if got := len(res.Samples["txt"]); got != 0 {
		t.Fatalf("sampled %d files, want content excluded", got)
	}
}

func TestSampleTruncatesContent(t *testing.T) {
	root := t.TempDir()
	write(t, root, "long.txt", bytes.Repeat([]byte("x"), 500))

	res, err := Sample(repoFS(t, root), Options{ContentLimit: 64})
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	got := res.Samples["txt"]
	if len(got) != 1 {
		t.Fatalf("samples=%d want 1", len(got))
	}
	if len(got[0].Content) != 64 {
		t.Fatalf("content len=%d want 64", len(got[0].Content))
	}
	// Truncation does not shrink the recorded size.
	if res.Files["long.txt"].Size != 500 {
		t.Fatalf("Size=%d want 500", res.Files["long.txt"].Size)
	}
}

func TestSampleTruncationNeverSplitsRune(t *testing.T) {
	root := t.TempDir()
	// "é" is two bytes; a 5-byte limit cuts it in half.
	write(t, root, "accent.txt", []byte("abcdéfgh"))

	res, err := Sample(repoFS(t, root), Options{ContentLimit: 5})
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	got := res.Samples["txt"]
	if len(got) != 1 {
		t.Fatalf("samples=%d want 1", len(got))
	}
	if got[0].Content != "abcd" {
		t.Fatalf("content=%q want the dangling rune byte dropped", got[0].Content)
	}
	if !utf8.ValidString(got[0].Content) {
		t.Fatalf("content %q is not valid UTF-8", got[0].Content)
	}
}

func TestSampleIdempotent(t *testing.T) {
	root := t.TempDir()
	write(t, root, "a.go", []byte("package a\n"))
	write(t, root, "b/b.py", []byte("import os\n"))
	write(t, root, "c.txt", []byte("text\n"))

	first, err := Sample(repoFS(t, root), Options{})
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	second, err := Sample(repoFS(t, root), Options{})
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if !reflect.DeepEqual(first.Paths(), second.Paths()) {
		t.Fatalf("paths differ: %v vs %v", first.Paths(), second.Paths())
	}
	if !reflect.DeepEqual(first.Stats, second.Stats) {
		t.Fatalf("stats differ: %+v vs %+v", first.Stats, second.Stats)
	}
}

func TestDirs(t *testing.T) {
	root := t.TempDir()
	write(t, root, "src/app/main.go", []byte("package main"))
	write(t, root, "docs/guide.md", []byte("# hi"))
	write(t, root, ".git/config", []byte("x"))
	write(t, root, "node_modules/pkg/index.js", []byte("x"))

	dirs, err := Dirs(repoFS(t, root), DefaultIgnoreDirs())
	if err != nil {
		t.Fatalf("Dirs: %v", err)
	}
	want := []string{"docs", "src", "src/app"}
	if !reflect.DeepEqual(dirs, want) {
		t.Fatalf("dirs=%v want %v", dirs, want)
	}
	for _, d := range dirs {
		if strings.Contains(d, "node_modules") || strings.Contains(d, ".git") {
			t.Fatalf("ignored dir leaked: %s", d)
		}
	}
}
