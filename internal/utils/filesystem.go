package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyFile copies src to dst with the given permissions, creating parent
// directories as needed. The destination is truncated if it exists.
func CopyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0700); err != nil {
		return fmt.Errorf("creating directory for %s: %w", dst, err)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying to %s: %w", dst, err)
	}

	return out.Close()
}

// MoveFile moves src to dst, falling back to copy-and-remove when a rename
// crosses filesystems. Any existing dst is overwritten.
func MoveFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0700); err != nil {
		return fmt.Errorf("creating directory for %s: %w", dst, err)
	}

	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}
	if err := CopyFile(src, dst, info.Mode().Perm()); err != nil {
		return err
	}
	return os.Remove(src)
}
