// Package backup writes gzip snapshots of files about to be patched, under
// <work_dir>/.pypatch/backups/.
package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Snapshot compresses content into
// <workDir>/.pypatch/backups/<flattened rel path>.<runID>.gz and returns the
// snapshot path. relPath separators are flattened so one directory holds all
// snapshots of a run.
func Snapshot(workDir, relPath, content, runID string) (string, error) {
	dir := filepath.Join(workDir, ".pypatch", "backups")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}

	flat := strings.NewReplacer("/", "__", "\\", "__").Replace(relPath)
	path := filepath.Join(dir, fmt.Sprintf("%s.%s.gz", flat, runID))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating backup file: %w", err)
	}

	zw := gzip.NewWriter(f)
	zw.Name = relPath
	if _, err := zw.Write([]byte(content)); err != nil {
		zw.Close()
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("writing backup: %w", err)
	}
	if err := zw.Close(); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("finalizing backup: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("closing backup file: %w", err)
	}

	return path, nil
}

// Restore reads a snapshot back into its original content.
func Restore(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening backup file: %w", err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return "", fmt.Errorf("reading backup header: %w", err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return "", fmt.Errorf("decompressing backup: %w", err)
	}
	return string(data), nil
}
