package filesystem

import (
	"fmt"
	"os"
)

var (
	ErrFileNotFound      = fmt.Errorf("filesystem: file not found")
	ErrDirectoryNotFound = fmt.Errorf("filesystem: directory not found")
	ErrInvalidPath       = fmt.Errorf("filesystem: invalid path")
)

// Filesystem is the narrow surface the static-file handlers consume: open a
// file for streaming, probe paths, list directories.
type Filesystem interface {
	Open(path string) (*os.File, error)

	FileExists(path string) (bool, error)
	IsDirectory(path string) (bool, error)
	ListDirectory(path string) ([]os.FileInfo, error)
}

type localFileSystem struct{}

func NewLocalFileSystem() Filesystem {
	return &localFileSystem{}
}

func (filesystem *localFileSystem) Open(path string) (*os.File, error) {
	if path == "" {
		return nil, ErrInvalidPath
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return file, nil
}

func (filesystem *localFileSystem) FileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (filesystem *localFileSystem) IsDirectory(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

func (filesystem *localFileSystem) ListDirectory(path string) ([]os.FileInfo, error) {
	isDir, err := filesystem.IsDirectory(path)
	if err != nil {
		return nil, err
	}
	if !isDir {
		return nil, ErrDirectoryNotFound
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	infos := make([]os.FileInfo, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}
