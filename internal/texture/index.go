package texture

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Index resolves game-relative asset paths on case-sensitive filesystems.
// The game's data files reference assets with Windows casing and either
// slash direction; directory listings are cached per directory.
type Index struct {
	mu   sync.RWMutex
	dirs map[string]map[string]string // dir → lower(name) → name
}

func NewIndex() *Index {
	return &Index{dirs: make(map[string]map[string]string)}
}

// Resolve finds root/rel+ext for the first extension that exists, matching
// every path component case-insensitively when the exact path is missing.
// With no extensions rel is resolved as given.
func (idx *Index) Resolve(root, rel string, exts ...string) (string, bool) {
	rel = strings.ReplaceAll(rel, "\\", "/")
	rel = strings.TrimPrefix(rel, "/")
	if len(exts) == 0 {
		exts = []string{""}
	}

	for _, ext := range exts {
		exact := filepath.Join(root, filepath.FromSlash(rel+ext))
		if fileExists(exact) {
			return exact, true
		}
	}
	for _, ext := range exts {
		if p, ok := idx.fold(root, rel+ext); ok {
			return p, true
		}
	}
	return "", false
}

// Len returns the number of cached directory listings.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.dirs)
}

func (idx *Index) fold(root, rel string) (string, bool) {
	cur := root
	parts := strings.Split(rel, "/")
	for i, part := range parts {
		if part == "" || part == "." {
			continue
		}
		name, ok := idx.lookup(cur, part)
		if !ok {
			return "", false
		}
		cur = filepath.Join(cur, name)
		if i < len(parts)-1 {
			if info, err := os.Stat(cur); err != nil || !info.IsDir() {
				return "", false
			}
		}
	}
	if !fileExists(cur) {
		return "", false
	}
	return cur, true
}

func (idx *Index) lookup(dir, name string) (string, bool) {
	idx.mu.RLock()
	entries, cached := idx.dirs[dir]
	idx.mu.RUnlock()

	if !cached {
		entries = make(map[string]string)
		list, _ := os.ReadDir(dir)
		for _, e := range list {
			key := strings.ToLower(e.Name())
			// prefer an exact-case entry when two differ only by case
			if _, dup := entries[key]; !dup {
				entries[key] = e.Name()
			}
		}
		idx.mu.Lock()
		idx.dirs[dir] = entries
		idx.mu.Unlock()
	}

	if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
		return name, true
	}
	got, ok := entries[strings.ToLower(name)]
	return got, ok
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
