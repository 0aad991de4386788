package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Upload subdirectories, one per record type.
const (
	SubdirIPReports = "ip_reports"
	SubdirOPReports = "op_reports"
	SubdirFollowUps = "followups"
)

// ErrDisallowedType is returned when an upload's extension is not in the
// allow-list for its record type.
var ErrDisallowedType = errors.New("only PDF, Word, JPG, and PNG files are allowed")

// AllowedFollowUpExts restricts follow-up attachments to document and image
// types.
var AllowedFollowUpExts = []string{".pdf", ".doc", ".docx", ".jpg", ".png"}

// Store is a filesystem blob sink for uploaded attachments. Files are
// addressed by generated filenames; only the filename (or a relative path
// containing it) is persisted in the database.
type Store struct {
	baseDir string
}

// NewStore creates the upload directory tree under baseDir.
func NewStore(baseDir string) (*Store, error) {
	for _, subdir := range []string{SubdirIPReports, SubdirOPReports, SubdirFollowUps} {
		if err := os.MkdirAll(filepath.Join(baseDir, subdir), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload directory %s: %w", subdir, err)
		}
	}
	return &Store{baseDir: baseDir}, nil
}

// Save writes the uploaded file into the given subdirectory under a generated
// unique name and returns that name. The write completes before the caller
// attempts any database insert.
func (s *Store) Save(file *multipart.FileHeader, subdir string) (string, error) {
	filename := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(file.Filename))

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.baseDir, subdir, filename))
	if err != nil {
		return "", fmt.Errorf("failed to create attachment file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write attachment file: %w", err)
	}
	return filename, nil
}

// SaveFiltered rejects the upload before writing anything when its extension
// is not in allowedExts.
func (s *Store) SaveFiltered(file *multipart.FileHeader, subdir string, allowedExts []string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	for _, allowed := range allowedExts {
		if ext == allowed {
			return s.Save(file, subdir)
		}
	}
	return "", ErrDisallowedType
}

// Remove deletes a previously saved file. Used to compensate a failed
// database insert after a successful blob write.
func (s *Store) Remove(subdir, filename string) error {
	return os.Remove(filepath.Join(s.baseDir, subdir, filepath.Base(filename)))
}

// Path returns the absolute location of a stored file. The filename is
// reduced to its base so a crafted name cannot escape the upload tree.
func (s *Store) Path(subdir, filename string) string {
	return filepath.Join(s.baseDir, subdir, filepath.Base(filename))
}

// Exists reports whether a stored file is present on disk.
func (s *Store) Exists(subdir, filename string) bool {
	info, err := os.Stat(s.Path(subdir, filename))
	return err == nil && !info.IsDir()
}

// BaseDir returns the root of the upload tree, for static file serving.
func (s *Store) BaseDir() string {
	return s.baseDir
}
