package engine

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// ResourceCache maps logical shader and texture names to GPU handles and
// resolves bare filenames against the scanned asset folders.
//
// Every load failure is logged and reported as InvalidHandle, so callers
// must check the returned handle. A ResourceCache is not safe for concurrent
// use; it belongs to the render thread.
type ResourceCache struct {
	device Device
	log    *slog.Logger

	root     string
	shaders  map[string]Handle
	textures map[string]*textureEntry // by resolved path
	names    map[string]string        // requested filename -> resolved path

	textureIndex *pathIndex
	shaderIndex  *pathIndex
}

// CacheOption configures a ResourceCache.
type CacheOption func(*ResourceCache)

// WithCacheLogger sets the logger used by the cache.
func WithCacheLogger(l *slog.Logger) CacheOption {
	return func(c *ResourceCache) {
		if l != nil {
			c.log = l
		}
	}
}

// NewResourceCache creates an empty cache backed by device.
func NewResourceCache(device Device, opts ...CacheOption) *ResourceCache {
	c := &ResourceCache{
		device:       device,
		log:          Logger(),
		shaders:      make(map[string]Handle),
		textures:     make(map[string]*textureEntry),
		names:        make(map[string]string),
		textureIndex: newPathIndex(),
		shaderIndex:  newPathIndex(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialize creates the assets root and its textures/shaders folders if
// absent, then indexes every recognised file below them.
// Scan failures are logged and never abort; the returned error only reports
// that a folder could not be created.
func (c *ResourceCache) Initialize(assetsRoot string) error {
	c.root = assetsRoot

	var firstErr error
	for _, dir := range []string{assetsRoot, c.texturesDir(), c.shadersDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			c.log.Error("create asset folder", "dir", dir, "err", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("create asset folder %s: %w", dir, err)
			}
		}
	}

	c.Rescan()
	c.log.Info("resource cache initialized", "root", assetsRoot,
		"textures", c.textureIndex.len(), "shaders", c.shaderIndex.len())
	return firstErr
}

// Rescan rebuilds both filename indexes from the assets root.
func (c *ResourceCache) Rescan() {
	c.textureIndex.clear()
	c.shaderIndex.clear()
	if c.root == "" {
		return
	}
	scanDir(c.log, c.textureIndex, c.texturesDir(), IsImageFile)
	scanDir(c.log, c.shaderIndex, c.shadersDir(), IsShaderFile)
}

// Root returns the assets root passed to Initialize.
func (c *ResourceCache) Root() string { return c.root }

func (c *ResourceCache) texturesDir() string { return filepath.Join(c.root, TexturesDir) }
func (c *ResourceCache) shadersDir() string  { return filepath.Join(c.root, ShadersDir) }

// ResolveTexture returns the indexed path for a texture filename.
func (c *ResourceCache) ResolveTexture(filename string) (string, bool) {
	return c.textureIndex.lookup(filename)
}

// ResolveShader returns the indexed path for a shader stage filename.
func (c *ResourceCache) ResolveShader(filename string) (string, bool) {
	return c.shaderIndex.lookup(filename)
}

// LoadShader compiles and caches a program under name. Loading a name that
// is already cached returns the cached handle.
func (c *ResourceCache) LoadShader(name, vertexSource, fragmentSource string) Handle {
	if h, ok := c.shaders[name]; ok {
		c.log.Warn("shader already loaded", "name", name)
		return h
	}

	h, err := c.device.CompileProgram(vertexSource, fragmentSource)
	if err != nil {
		c.log.Error("shader load failed", "name", name, "err", err)
		return InvalidHandle
	}
	if !h.Valid() {
		c.log.Error("shader load failed", "name", name, "err", "device returned no program")
		return InvalidHandle
	}

	c.shaders[name] = h
	c.log.Info("shader loaded and cached", "name", name)
	return h
}

// LoadShaderFiles resolves both stage filenames through the shader index,
// reads them and loads the program under name.
func (c *ResourceCache) LoadShaderFiles(name, vertexFile, fragmentFile string) Handle {
	if h, ok := c.shaders[name]; ok {
		c.log.Warn("shader already loaded", "name", name)
		return h
	}

	var sources [2]string
	for i, file := range [2]string{vertexFile, fragmentFile} {
		path, ok := c.shaderIndex.lookup(file)
		if !ok {
			c.log.Error("shader file not found", "name", name, "file", file)
			return InvalidHandle
		}
		src, err := ReadFile(path)
		if err != nil {
			c.log.Error("shader file unreadable", "name", name, "err", err)
			return InvalidHandle
		}
		sources[i] = src
	}
	return c.LoadShader(name, sources[0], sources[1])
}

// GetShader returns the cached program for name, or InvalidHandle.
func (c *ResourceCache) GetShader(name string) Handle {
	h, ok := c.shaders[name]
	if !ok {
		c.log.Error("shader not found", "name", name)
		return InvalidHandle
	}
	return h
}

// UnloadShader deletes the program cached under name.
// Unknown names only produce a warning.
func (c *ResourceCache) UnloadShader(name string) {
	h, ok := c.shaders[name]
	if !ok {
		c.log.Warn("shader not found for unloading", "name", name)
		return
	}
	c.device.DeleteProgram(h)
	delete(c.shaders, name)
	c.log.Info("shader unloaded", "name", name)
}

// textureEntry is one uploaded file, shared by every filename spelling
// that resolved to it.
type textureEntry struct {
	handle Handle
	refs   int
}

// LoadTexture resolves filename through the texture index, decodes it,
// uploads it and caches the handle. Spellings that resolve to the same
// file share one upload.
func (c *ResourceCache) LoadTexture(filename string) Handle {
	if path, ok := c.names[filename]; ok {
		c.log.Warn("texture already loaded", "name", filename)
		return c.textures[path].handle
	}

	path, ok := c.textureIndex.lookup(filename)
	if !ok {
		c.log.Error("texture not found", "name", filename, "err", ErrNotFound)
		return InvalidHandle
	}
	if e, ok := c.textures[path]; ok {
		e.refs++
		c.names[filename] = path
		c.log.Debug("texture shared", "name", filename, "path", path)
		return e.handle
	}

	px, err := DecodeFile(path)
	if err != nil {
		c.log.Error("failed to load texture", "name", filename, "path", path, "err", err)
		return InvalidHandle
	}

	h, err := c.device.UploadTexture(px)
	if err != nil || !h.Valid() {
		c.log.Error("texture upload failed", "name", filename, "err", err)
		return InvalidHandle
	}

	c.textures[path] = &textureEntry{handle: h, refs: 1}
	c.names[filename] = path
	c.log.Info("texture loaded", "name", filename,
		"width", px.Width, "height", px.Height, "channels", px.Format.Channels())
	return h
}

// GetTexture returns the cached texture for filename, or InvalidHandle.
func (c *ResourceCache) GetTexture(filename string) Handle {
	path, ok := c.names[filename]
	if !ok {
		c.log.Error("texture not found", "name", filename)
		return InvalidHandle
	}
	return c.textures[path].handle
}

// UnloadTexture drops filename from the cache. The GPU texture is deleted
// once no other loaded spelling refers to it.
// Unknown names only produce a warning.
func (c *ResourceCache) UnloadTexture(filename string) {
	path, ok := c.names[filename]
	if !ok {
		c.log.Warn("texture not found for unloading", "name", filename)
		return
	}
	delete(c.names, filename)

	e := c.textures[path]
	if e.refs--; e.refs > 0 {
		c.log.Debug("texture still referenced", "name", filename, "refs", e.refs)
		return
	}
	c.device.DeleteTexture(e.handle)
	delete(c.textures, path)
	c.log.Info("texture unloaded", "name", filename)
}

// CacheStats is a snapshot of the cache sizes. Textures counts uploaded
// files, not requested filenames.
type CacheStats struct {
	Shaders, Textures             int
	IndexedShaders, IndexedImages int
}

// Stats returns the current cache and index sizes.
func (c *ResourceCache) Stats() CacheStats {
	return CacheStats{
		Shaders:        len(c.shaders),
		Textures:       len(c.textures),
		IndexedShaders: c.shaderIndex.len(),
		IndexedImages:  c.textureIndex.len(),
	}
}

// Shutdown releases every cached program and texture and clears the
// indexes. It is safe to call more than once.
func (c *ResourceCache) Shutdown() {
	if len(c.shaders) == 0 && len(c.textures) == 0 &&
		c.shaderIndex.len() == 0 && c.textureIndex.len() == 0 {
		return
	}
	for _, h := range c.shaders {
		c.device.DeleteProgram(h)
	}
	clear(c.shaders)

	for _, e := range c.textures {
		c.device.DeleteTexture(e.handle)
	}
	clear(c.textures)
	clear(c.names)

	c.shaderIndex.clear()
	c.textureIndex.clear()
	c.log.Info("resource cache shutdown completed")
}

// ReadFile reads a text asset such as a shader source.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
