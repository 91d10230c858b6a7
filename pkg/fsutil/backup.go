package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// BackupMode selects where backups go.
type BackupMode string

const (
	BackupModeSidecar BackupMode = "sidecar" // <file>.gomdfmt.bak next to the file
	BackupModeNone    BackupMode = "none"
)

// BackupSuffix is appended to a file path to form its sidecar backup.
const BackupSuffix = ".gomdfmt.bak"

// BackupConfig controls whether the pipeline backs files up before writing.
type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

// DefaultBackupConfig has backups off, in sidecar mode once enabled.
func DefaultBackupConfig() BackupConfig {
	return BackupConfig{Mode: BackupModeSidecar}
}

// BackupPath is the backup location of path, or "" when mode keeps none.
// Modes other than none use a sidecar.
func BackupPath(path string, mode BackupMode) string {
	if mode == BackupModeNone {
		return ""
	}
	return path + BackupSuffix
}

// BackupExists reports whether path has a backup.
func BackupExists(path string, mode BackupMode) bool {
	backup := BackupPath(path, mode)
	if backup == "" {
		return false
	}
	_, err := os.Stat(backup)
	return err == nil
}

// CreateBackup saves a copy of path before it is first formatted. An
// existing backup is kept, so it always holds the content from before any
// run. It reports whether a new backup was written; a missing source is
// not an error.
func CreateBackup(ctx context.Context, path string, cfg BackupConfig) (bool, error) {
	backup := BackupPath(path, cfg.Mode)
	if !cfg.Enabled || backup == "" {
		return false, nil
	}

	switch _, err := os.Stat(backup); {
	case err == nil:
		return false, nil
	case !errors.Is(err, fs.ErrNotExist):
		return false, fmt.Errorf("stat backup: %w", err)
	}
	return copyIfExists(ctx, path, backup, "create backup")
}

// RestoreBackup copies the backup of path over path. It reports false when
// there is no backup.
func RestoreBackup(ctx context.Context, path string, mode BackupMode) (bool, error) {
	backup := BackupPath(path, mode)
	if backup == "" {
		return false, nil
	}
	return copyIfExists(ctx, backup, path, "restore backup")
}

// RemoveBackup deletes the backup of path. It reports false when there was
// none.
func RemoveBackup(path string, mode BackupMode) (bool, error) {
	backup := BackupPath(path, mode)
	if backup == "" {
		return false, nil
	}
	err := os.Remove(backup)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("remove backup: %w", err)
	}
	return true, nil
}

// copyIfExists copies src to dst atomically, keeping src's mode. A missing
// src yields false without an error.
func copyIfExists(ctx context.Context, src, dst, op string) (bool, error) {
	stat, err := os.Stat(src)
	if err == nil {
		var content []byte
		if content, err = os.ReadFile(src); err == nil {
			err = WriteAtomic(ctx, dst, content, stat.Mode())
		}
	}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}
