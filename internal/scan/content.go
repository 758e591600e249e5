package scan

import (
	"io"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"

	"codedoctor/internal/safeio"
)

// binaryProbeLen is how many leading bytes the binary check inspects.
const binaryProbeLen = 1024

// contentCacheSize bounds how many file previews stay resident during a run.
const contentCacheSize = 4096

// contentCache keeps bounded file previews so the binary probe, the sampler
// read, and the dependency tally never hit the disk twice for the same file
// within one run.
type contentCache struct {
	entries *lru.Cache[string, cached]
}

type cached struct {
	data []byte
	// full is true when data holds the entire file, not a prefix.
	full bool
}

func newContentCache() *contentCache {
	entries, err := lru.New[string, cached](contentCacheSize)
	if err != nil {
		// Only reachable with a non-positive size constant.
		panic(err)
	}
	return &contentCache{entries: entries}
}

// read returns up to limit bytes of the file at rel, serving from cache when
// a long-enough preview is already resident.
func (c *contentCache) read(rfs *safeio.RepoFS, rel string, limit int) ([]byte, error) {
	if limit <= 0 {
		return nil, nil
	}
	if e, ok := c.entries.Get(rel); ok {
		if e.full || len(e.data) >= limit {
			if len(e.data) > limit {
				return e.data[:limit], nil
			}
			return e.data, nil
		}
	}

	f, err := rfs.Open(rel)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, limit)
	n, err := io.ReadFull(f, buf)
	full := false
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		full = true
	} else if err != nil {
		return nil, err
	}
	data := buf[:n]
	c.entries.Add(rel, cached{data: data, full: full})
	return data, nil
}

// isBinary reports whether a leading probe looks like non-text content.
// truncated means the file continues past the probe, so an incomplete
// trailing rune is tolerated.
func isBinary(probe []byte, truncated bool) bool {
	_, ok := textPrefix(probe, truncated)
	return !ok
}

// textPrefix validates b as UTF-8 without NUL bytes and returns the usable
// prefix. When truncated, up to utf8.UTFMax-1 dangling bytes at the end are
// dropped since the cut may have split a rune; the returned slice never ends
// mid-rune.
func textPrefix(b []byte, truncated bool) ([]byte, bool) {
	if truncated {
		for trim := 0; trim < utf8.UTFMax && trim < len(b); trim++ {
			if utf8.Valid(b[:len(b)-trim]) {
				b = b[:len(b)-trim]
				break
			}
		}
	}
	if !utf8.Valid(b) {
		return nil, false
	}
	for _, c := range b {
		if c == 0 {
			return nil, false
		}
	}
	return b, true
}
