package engine

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Asset subfolders created and scanned under the assets root.
const (
	TexturesDir = "textures"
	ShadersDir  = "shaders"
)

var (
	imageExtensions = map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true, ".bmp": true, ".tga": true,
	}
	shaderExtensions = map[string]bool{
		".vert": true, ".frag": true, ".geom": true, ".comp": true,
	}
)

// IsImageFile reports whether name has a texture extension.
func IsImageFile(name string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(name))]
}

// IsShaderFile reports whether name has a shader stage extension.
func IsShaderFile(name string) bool {
	return shaderExtensions[strings.ToLower(filepath.Ext(name))]
}

// pathIndex maps bare filenames to slash-separated absolute paths.
type pathIndex struct {
	exact  map[string]string
	folded map[string]string
}

func newPathIndex() *pathIndex {
	return &pathIndex{
		exact:  make(map[string]string),
		folded: make(map[string]string),
	}
}

func (ix *pathIndex) len() int { return len(ix.exact) }

func (ix *pathIndex) clear() {
	clear(ix.exact)
	clear(ix.folded)
}

// add records name -> path. The first path recorded for a name wins.
func (ix *pathIndex) add(name, path string) bool {
	if _, ok := ix.exact[name]; ok {
		return false
	}
	ix.exact[name] = path
	key := strings.ToLower(name)
	if _, ok := ix.folded[key]; !ok {
		ix.folded[key] = path
	}
	return true
}

// lookup tries an exact match first, then a case-insensitive one.
func (ix *pathIndex) lookup(name string) (string, bool) {
	if p, ok := ix.exact[name]; ok {
		return p, true
	}
	p, ok := ix.folded[strings.ToLower(name)]
	return p, ok
}

// scanDir walks dir recursively and adds every file accepted by match.
// A missing dir is skipped silently; other walk errors are logged and the
// walk continues with the next entry.
func scanDir(log *slog.Logger, ix *pathIndex, dir string, match func(string) bool) {
	scanFS(log, ix, os.DirFS(dir), dir, match)
}

// scanFS indexes fsys, reporting paths joined onto dir.
func scanFS(log *slog.Logger, ix *pathIndex, fsys fs.FS, dir string, match func(string) bool) {
	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == "." && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipDir
			}
			log.Error("asset scan failed", "path", filepath.Join(dir, path), "err", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !match(d.Name()) {
			return nil
		}
		abs, err := filepath.Abs(filepath.Join(dir, filepath.FromSlash(path)))
		if err != nil {
			log.Error("asset path", "path", path, "err", err)
			return nil
		}
		abs = filepath.ToSlash(abs)
		if !ix.add(d.Name(), abs) {
			log.Warn("duplicate asset filename ignored", "name", d.Name(), "path", abs)
			return nil
		}
		log.Debug("asset indexed", "name", d.Name(), "path", abs)
		return nil
	})
	if err != nil {
		log.Error("asset scan aborted", "dir", dir, "err", err)
	}
}
