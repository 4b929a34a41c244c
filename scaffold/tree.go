package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Written records one file handled by WriteTree.
type Written struct {
	Path string
	// Kept is set when an existing placeholder was left untouched.
	Kept bool
}

// WriteTree lays out the scaffold as a folder tree under base. Generated
// configs and uploaded assets are always written. Empty placeholders are
// only created when no file exists at their path.
func WriteTree(base string, ctx Context, assets Assets) ([]Written, error) {
	files, err := Files(ctx, assets)
	if err != nil {
		return nil, err
	}

	uiDir := filepath.Join(base, filepath.FromSlash(AddonPath(ctx)), "data", "UI")
	if err := os.MkdirAll(uiDir, 0o755); err != nil {
		return nil, err
	}

	written := make([]Written, 0, len(files))
	for _, f := range files {
		target := filepath.Join(base, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return written, err
		}

		if len(f.Content) > 0 {
			if err := os.WriteFile(target, f.Content, 0o644); err != nil {
				return written, err
			}
			written = append(written, Written{Path: target})
			continue
		}

		kept, err := touch(target)
		if err != nil {
			return written, err
		}
		written = append(written, Written{Path: target, Kept: kept})
	}
	return written, nil
}

// touch creates an empty file at path unless one exists. It reports
// whether the path already existed.
func touch(path string) (bool, error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("creating placeholder: %w", err)
	}
	return false, file.Close()
}
