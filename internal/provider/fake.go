package provider

import (
	"path/filepath"
)

// FakeProvider implements the Provider interface for testing
type FakeProvider struct {
	files   map[string][]FileEntry
	content map[string]string
}

// NewFakeProvider creates a new fake provider
func NewFakeProvider() *FakeProvider {
	return &FakeProvider{
		files:   make(map[string][]FileEntry),
		content: make(map[string]string),
	}
}

// normalize anchors path under the conventional fake root "/", the
// same way filepath.Join(GetBasePath(), ...) does while walking, so
// keys built by AddFile/AddDir always match the paths ListDir/ReadFile
// are queried with later.
func normalize(path string) string {
	return filepath.Join("/", path)
}

// ensureDirEntry registers dir as a "dir"-type FileEntry under its own
// parent directory's listing, so a walk discovers it while recursing
// instead of only finding it if queried directly. It is idempotent:
// calling it twice for the same dir does not duplicate the entry.
func (p *FakeProvider) ensureDirEntry(dir string) {
	if dir == "/" {
		return
	}
	parent := filepath.Dir(dir)
	name := filepath.Base(dir)

	for _, e := range p.files[parent] {
		if e.Name == name && e.Type == "dir" {
			return
		}
	}

	if p.files[parent] == nil {
		p.files[parent] = make([]FileEntry, 0)
	}
	p.files[parent] = append(p.files[parent], FileEntry{
		Name: name,
		Path: dir,
		Type: "dir",
	})
	p.ensureDirEntry(parent)
}

// AddFile adds a file to the fake provider
func (p *FakeProvider) AddFile(path, content string) {
	full := normalize(path)
	dir := filepath.Dir(full)

	if p.files[dir] == nil {
		p.files[dir] = make([]FileEntry, 0)
	}

	filename := filepath.Base(full)
	p.files[dir] = append(p.files[dir], FileEntry{
		Name: filename,
		Path: full,
		Type: "file",
		Size: int64(len(content)),
	})

	p.content[full] = content
	p.ensureDirEntry(dir)
}

// AddDir adds a directory to the fake provider
func (p *FakeProvider) AddDir(path string) {
	full := normalize(path)
	if p.files[full] == nil {
		p.files[full] = make([]FileEntry, 0)
	}
	p.ensureDirEntry(full)
}

// ListDir returns the contents of a directory
func (p *FakeProvider) ListDir(path string) ([]FileEntry, error) {
	files, exists := p.files[normalize(path)]
	if !exists {
		return nil, nil // Directory doesn't exist
	}
	return files, nil
}

// Open returns the content of a file
func (p *FakeProvider) Open(path string) (string, error) {
	content, exists := p.content[normalize(path)]
	if !exists {
		return "", nil // File doesn't exist
	}
	return content, nil
}

// ReadFile reads file content as bytes
func (p *FakeProvider) ReadFile(path string) ([]byte, error) {
	content, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	return []byte(content), nil
}

// Exists checks if a file or directory exists
func (p *FakeProvider) Exists(path string) (bool, error) {
	full := normalize(path)
	_, fileExists := p.content[full]
	_, dirExists := p.files[full]
	return fileExists || dirExists, nil
}

// IsDir checks if a path is a directory
func (p *FakeProvider) IsDir(path string) (bool, error) {
	_, exists := p.files[normalize(path)]
	return exists, nil
}

// GetBasePath returns the fake root, matching FSProvider's convention
// for starting a walk. Files added without a containing directory
// (AddFile("main.go", ...)) land under "/".
func (p *FakeProvider) GetBasePath() string {
	return "/"
}
