package finder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rkern/grin/internal/config"
	"github.com/rkern/grin/internal/fileutil"
	"github.com/rkern/grin/internal/walker"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("content\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func findAll(t *testing.T, glob string, roots ...string) []string {
	t.Helper()
	cfg := config.DefaultConfig()
	w := walker.New(cfg, fileutil.NewRecognizer(cfg), nil)
	w.AddRoots(roots...)
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	f, err := New(w, glob)
	if err != nil {
		t.Fatal(err)
	}
	var paths []string
	for {
		res, ok := f.Next()
		if !ok {
			break
		}
		paths = append(paths, res.Path)
	}
	return paths
}

func TestFindByGlob(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.py"))
	writeFile(t, filepath.Join(dir, "b.txt"))
	writeFile(t, filepath.Join(dir, "sub", "c.py"))

	paths := findAll(t, "*.py", dir)
	if len(paths) != 2 {
		t.Fatalf("found %v, want a.py and sub/c.py", paths)
	}
	bases := map[string]bool{}
	for _, p := range paths {
		bases[filepath.Base(p)] = true
	}
	if !bases["a.py"] || !bases["c.py"] {
		t.Errorf("found %v, want a.py and c.py", paths)
	}
}

func TestFindRespectsSkipPolicy(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "keep.py"))
	writeFile(t, filepath.Join(dir, ".svn", "hidden.py"))

	paths := findAll(t, "*.py", dir)
	if len(paths) != 1 || filepath.Base(paths[0]) != "keep.py" {
		t.Errorf("found %v, want only keep.py", paths)
	}
}

func TestFindQuestionMarkAndClass(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "v1.txt"))
	writeFile(t, filepath.Join(dir, "v2.txt"))
	writeFile(t, filepath.Join(dir, "v10.txt"))

	paths := findAll(t, "v?.txt", dir)
	if len(paths) != 2 {
		t.Errorf("v?.txt matched %v, want v1.txt and v2.txt", paths)
	}

	paths = findAll(t, "v[1].txt", dir)
	if len(paths) != 1 || filepath.Base(paths[0]) != "v1.txt" {
		t.Errorf("v[1].txt matched %v, want only v1.txt", paths)
	}
}

func TestFindInvalidGlob(t *testing.T) {
	cfg := config.DefaultConfig()
	w := walker.New(cfg, fileutil.NewRecognizer(cfg), nil)
	if _, err := New(w, "[unclosed"); err == nil {
		t.Error("expected an error for an unclosed character class")
	}
}
