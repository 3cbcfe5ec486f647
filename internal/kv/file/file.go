// Package file provides the default durable kv.Store: one file per key
// under a root directory, written atomically (tmp + rename) so a crash
// mid-write never leaves a torn value behind.
package file

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/kjunlab/authfront/internal/kv"
)

type File struct {
	root string
	mu   sync.Mutex
}

// New creates a file-backed store rooted at dir. The directory is created
// lazily on first write.
func New(dir string) kv.Store {
	return &File{root: filepath.Clean(dir)}
}

func (f *File) path(k string) string {
	return filepath.Join(f.root, k)
}

func (f *File) Get(k string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := os.ReadFile(f.path(k))
	if err != nil {
		return nil, false
	}
	return b, true
}

func (f *File) Set(k string, v []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(f.root, 0o700); err != nil {
		return err
	}
	return atomicWriteFile(f.path(k), v, 0o600)
}

func (f *File) Delete(k string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.path(k))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// atomicWriteFile writes to a sibling temp file and renames it over the
// target. Rename is atomic on POSIX filesystems.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
