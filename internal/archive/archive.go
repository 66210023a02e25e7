package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	kerrors "envault/internal/errors"
	"envault/internal/utils"
)

// Format identifies a supported container format.
type Format int

const (
	FormatZip Format = iota
	FormatTarGz
)

// String returns the format's display name.
func (f Format) String() string {
	switch f {
	case FormatZip:
		return "zip"
	case FormatTarGz:
		return "tar.gz"
	default:
		return "unknown"
	}
}

// Extension returns the format's canonical file extension.
func (f Format) Extension() string {
	switch f {
	case FormatZip:
		return ".zip"
	default:
		return ".tar.gz"
	}
}

// ParseFormat converts a user-supplied format name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "zip":
		return FormatZip, nil
	case "tar.gz", "tgz", "targz":
		return FormatTarGz, nil
	default:
		return 0, fmt.Errorf("%w: %q is not a supported format", kerrors.ErrUnrecognizedArchiveFormat, name)
	}
}

// Result describes a successful decompression.
type Result struct {
	// SourcePath is the file that actually opened as a valid container.
	// It differs from the requested path when a sibling was recovered.
	SourcePath string

	// Format is the container format that matched.
	Format Format

	// Extracted lists the relative paths merged into the store root.
	Extracted []string
}

// Compress walks storeRoot recursively and writes every regular file into
// a container at outputPath, preserving paths relative to the root. File
// contents pass through untouched, so plaintext and encrypted entries are
// handled identically. The output name is taken verbatim; it may carry
// any extension.
func Compress(storeRoot string, format Format, outputPath string) (int, error) {
	var files []string
	err := filepath.WalkDir(storeRoot, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walking store root: %w", err)
	}

	switch format {
	case FormatZip:
		err = writeZip(outputPath, storeRoot, files)
	default:
		err = writeTarGz(outputPath, storeRoot, files)
	}
	if err != nil {
		return 0, err
	}
	return len(files), nil
}

// Decompress restores an archive into storeRoot.
//
// The true container format cannot be inferred from the file's extension,
// so the ordered probe tries: the path as zip, the path as tar.gz, then
// the same two formats against sibling paths built by stripping the
// advertised extension and substituting the canonical ones. The sibling
// retry covers archives that were literally renamed on disk next to the
// advertised file. If no candidate extracts, ErrUnrecognizedArchiveFormat
// is returned and the store is left untouched.
//
// The merge into the store root happens only after one candidate has
// extracted fully into staging. A merge failure at that point is an I/O
// problem, not a format mismatch, and is returned as itself.
func Decompress(path, storeRoot string) (*Result, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	base := stripExtension(path)
	candidates := []struct {
		path   string
		format Format
	}{
		{path, FormatZip},
		{path, FormatTarGz},
		{base + ".zip", FormatZip},
		{base + ".tar.gz", FormatTarGz},
	}

	tried := make(map[string]bool)
	for _, c := range candidates {
		key := c.path + "\x00" + c.format.String()
		if tried[key] {
			continue
		}
		tried[key] = true

		if _, err := os.Stat(c.path); err != nil {
			continue
		}

		staging, err := probeExtract(c.path, c.format)
		if err != nil {
			continue
		}
		defer os.RemoveAll(staging)

		extracted, err := mergeStaging(staging, storeRoot)
		if err != nil {
			return nil, err
		}
		return &Result{SourcePath: c.path, Format: c.format, Extracted: extracted}, nil
	}

	return nil, fmt.Errorf("%w: %s did not open as zip or tar.gz", kerrors.ErrUnrecognizedArchiveFormat, path)
}

// probeExtract attempts one (path, format) pairing, extracting fully into
// a fresh staging directory without touching the store root. On failure
// the staging directory is removed and the caller may try the next
// candidate; on success the caller owns the returned directory.
func probeExtract(path string, format Format) (string, error) {
	staging, err := os.MkdirTemp("", "envault-staging-*")
	if err != nil {
		return "", fmt.Errorf("creating staging directory: %w", err)
	}

	switch format {
	case FormatZip:
		err = extractZip(path, staging)
	default:
		err = extractTarGz(path, staging)
	}
	if err != nil {
		os.RemoveAll(staging)
		return "", err
	}
	return staging, nil
}

// mergeStaging moves every staged entry into the store root name for
// name, overwriting existing entries at the same relative path.
func mergeStaging(staging, storeRoot string) ([]string, error) {
	if err := os.MkdirAll(storeRoot, 0700); err != nil {
		return nil, fmt.Errorf("creating store root: %w", err)
	}

	var merged []string
	err := filepath.WalkDir(staging, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(staging, path)
		if err != nil {
			return err
		}
		if err := utils.MoveFile(path, filepath.Join(storeRoot, rel)); err != nil {
			return err
		}
		merged = append(merged, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("merging staged files: %w", err)
	}
	return merged, nil
}

// stripExtension drops the advertised extension, treating ".tar.gz" as a
// single extension.
func stripExtension(path string) string {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	if strings.HasSuffix(base, ".tar") {
		base = strings.TrimSuffix(base, ".tar")
	}
	return base
}

// stagedTarget resolves an archive entry name inside the staging
// directory, rejecting entries that would escape it.
func stagedTarget(staging, name string) (string, error) {
	target := filepath.Join(staging, name)

	if !strings.HasPrefix(filepath.Clean(target), filepath.Clean(staging)+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %s", kerrors.ErrInvalidArchivePath, name)
	}
	return target, nil
}

func writeZip(outputPath, root string, files []string) error {
	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer outFile.Close()

	zw := zip.NewWriter(outFile)
	defer zw.Close()

	for _, filePath := range files {
		if err := addFileToZip(zw, root, filePath); err != nil {
			return fmt.Errorf("adding file %s to archive: %w", filePath, err)
		}
	}

	return zw.Close()
}

func addFileToZip(zw *zip.Writer, root, filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("creating zip header: %w", err)
	}

	rel, err := filepath.Rel(root, filePath)
	if err != nil {
		return fmt.Errorf("getting relative path: %w", err)
	}
	header.Name = filepath.ToSlash(rel)
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("writing zip header: %w", err)
	}

	if _, err := io.Copy(w, file); err != nil {
		return fmt.Errorf("writing file contents: %w", err)
	}

	return nil
}

func writeTarGz(outputPath, root string, files []string) error {
	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer outFile.Close()

	gzWriter := gzip.NewWriter(outFile)
	defer gzWriter.Close()

	tarWriter := tar.NewWriter(gzWriter)
	defer tarWriter.Close()

	for _, filePath := range files {
		if err := addFileToTar(tarWriter, root, filePath); err != nil {
			return fmt.Errorf("adding file %s to archive: %w", filePath, err)
		}
	}

	if err := tarWriter.Close(); err != nil {
		return err
	}
	return gzWriter.Close()
}

func addFileToTar(tw *tar.Writer, root, filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}

	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return fmt.Errorf("creating tar header: %w", err)
	}

	rel, err := filepath.Rel(root, filePath)
	if err != nil {
		return fmt.Errorf("getting relative path: %w", err)
	}
	header.Name = filepath.ToSlash(rel)

	if err := tw.WriteHeader(header); err != nil {
		return fmt.Errorf("writing tar header: %w", err)
	}

	if _, err := io.Copy(tw, file); err != nil {
		return fmt.Errorf("writing file contents: %w", err)
	}

	return nil
}

func extractZip(path, staging string) error {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("opening zip: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}

		target, err := stagedTarget(staging, f.Name)
		if err != nil {
			return err
		}

		if err := extractZipEntry(f, target); err != nil {
			return fmt.Errorf("extracting %s: %w", f.Name, err)
		}
	}

	return nil
}

func extractZipEntry(f *zip.File, target string) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("opening entry: %w", err)
	}
	defer rc.Close()

	if err := os.MkdirAll(filepath.Dir(target), 0700); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, entryMode(int64(f.Mode().Perm())))
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer out.Close()

	// #nosec G110 -- archives are produced by this tool's own export.
	if _, err := io.Copy(out, rc); err != nil {
		return fmt.Errorf("writing file contents: %w", err)
	}

	return out.Close()
}

func extractTarGz(path, staging string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer file.Close()

	gzReader, err := gzip.NewReader(file)
	if err != nil {
		return fmt.Errorf("creating gzip reader: %w", err)
	}
	defer gzReader.Close()

	tarReader := tar.NewReader(gzReader)

	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading tar header: %w", err)
		}

		if header.Typeflag == tar.TypeDir {
			continue
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}

		target, err := stagedTarget(staging, header.Name)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(filepath.Dir(target), 0700); err != nil {
			return fmt.Errorf("creating directory: %w", err)
		}

		if err := extractTarEntry(tarReader, target, header.Mode); err != nil {
			return fmt.Errorf("extracting %s: %w", header.Name, err)
		}
	}

	return nil
}

func extractTarEntry(tr *tar.Reader, target string, mode int64) error {
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, entryMode(mode))
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer out.Close()

	// #nosec G110 -- archives are produced by this tool's own export.
	if _, err := io.Copy(out, tr); err != nil {
		return fmt.Errorf("writing file contents: %w", err)
	}

	return out.Close()
}

// entryMode converts an archived mode, defaulting to 0600 for values
// outside the permission range.
func entryMode(mode int64) os.FileMode {
	if mode > 0 && mode <= 0777 {
		return os.FileMode(mode) // #nosec G115 -- range checked above.
	}
	return 0600
}
