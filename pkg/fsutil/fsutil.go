// Package fsutil reads and writes Markdown documents safely.
// It handles encoding detection, atomic writes, modification detection and backups.
package fsutil

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

var (
	ErrNotFound         = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrIsDirectory      = errors.New("path is a directory")
	ErrNilFileInfo      = errors.New("nil FileInfo")
)

// FileInfo records a file as it was when read, so a later write can tell
// whether someone else changed it in between.
type FileInfo struct {
	Path    string
	Mode    os.FileMode
	ModTime time.Time
	Size    int64
	Hash    [sha256.Size]byte // of the raw bytes
}

func (fi *FileInfo) sameStat(stat fs.FileInfo) bool {
	return stat.Size() == fi.Size && stat.ModTime().Equal(fi.ModTime)
}

// ReadFile returns the raw content of path and its FileInfo.
func ReadFile(ctx context.Context, path string) ([]byte, *FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read file: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}

	info := &FileInfo{Path: path, Mode: stat.Mode(), ModTime: stat.ModTime(), Size: stat.Size()}
	info.Hash = sha256.Sum256(raw)
	return raw, info, nil
}

// CheckModified reports whether the file at info.Path differs from info.
// A file that has disappeared counts as modified. Size and mod time are
// compared first; strict additionally compares content hashes.
func CheckModified(ctx context.Context, info *FileInfo, strict bool) (bool, error) {
	if info == nil {
		return false, ErrNilFileInfo
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("check modified: %w", err)
	}

	stat, err := os.Stat(info.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return true, nil
	case err != nil:
		return false, fmt.Errorf("stat %s: %w", info.Path, err)
	case !info.sameStat(stat):
		return true, nil
	case !strict:
		return false, nil
	}

	raw, err := os.ReadFile(info.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", info.Path, err)
	}
	sum := sha256.Sum256(raw)
	return !bytes.Equal(sum[:], info.Hash[:]), nil
}

func classify(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	}
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	}
	return fmt.Errorf("read %s: %w", path, err)
}
