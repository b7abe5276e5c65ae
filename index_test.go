package engine

import (
	"bytes"
	"io/fs"
	"log/slog"
	"path"
	"strings"
	"testing"
	"testing/fstest"
)

// brokenDirFS fails to list the directories named in bad.
type brokenDirFS struct {
	fstest.MapFS
	bad map[string]bool
}

func (b brokenDirFS) ReadDir(name string) ([]fs.DirEntry, error) {
	if b.bad[name] {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrPermission}
	}
	return b.MapFS.ReadDir(name)
}

func TestScanContinuesPastUnreadableDir(t *testing.T) {
	fsys := brokenDirFS{
		MapFS: fstest.MapFS{
			"a.png":          {},
			"locked/b.png":   {},
			"open/c.jpg":     {},
			"open/notes.txt": {},
		},
		bad: map[string]bool{"locked": true},
	}
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	ix := newPathIndex()

	scanFS(log, ix, fsys, "/assets/textures", IsImageFile)

	for _, name := range []string{"a.png", "c.jpg"} {
		p, ok := ix.lookup(name)
		if !ok {
			t.Errorf("expected %s indexed", name)
			continue
		}
		if !strings.HasPrefix(p, "/") || path.Base(p) != name {
			t.Errorf("unexpected path for %s: %q", name, p)
		}
	}
	if _, ok := ix.lookup("b.png"); ok {
		t.Error("b.png lives in an unreadable dir and should not be indexed")
	}
	if ix.len() != 2 {
		t.Errorf("expected 2 entries, got %d", ix.len())
	}
	if !strings.Contains(buf.String(), "asset scan failed") {
		t.Errorf("expected scan failure to be logged, got %q", buf.String())
	}
}

func TestScanMissingDirIsSilent(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	ix := newPathIndex()

	scanDir(log, ix, t.TempDir()+"/does-not-exist", IsImageFile)

	if ix.len() != 0 {
		t.Errorf("expected empty index, got %d", ix.len())
	}
	if buf.Len() != 0 {
		t.Errorf("expected no log output, got %q", buf.String())
	}
}

func TestPathIndexFirstWins(t *testing.T) {
	ix := newPathIndex()
	if !ix.add("a.png", "/x/a.png") {
		t.Fatal("first add rejected")
	}
	if ix.add("a.png", "/y/a.png") {
		t.Error("duplicate add accepted")
	}
	if p, _ := ix.lookup("A.PNG"); p != "/x/a.png" {
		t.Errorf("expected /x/a.png, got %q", p)
	}
}
