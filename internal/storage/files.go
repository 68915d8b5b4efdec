package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/PritamDhobale/data-entry-webapp/internal/dto"
)

// ErrFileNotFound indicates the requested attachment does not exist.
var ErrFileNotFound = errors.New("file not found")

// Categories an attachment may be filed under.
const (
	CategoryDocuments  = "documents"
	CategoryAgreements = "agreements"
)

// FileStore persists attachments per record. Implementations key files by
// record id, category, and filename.
type FileStore interface {
	Save(recordID int64, category, filename string, r io.Reader) (dto.FileInfo, error)
	List(recordID int64) ([]dto.FileInfo, error)
	Open(recordID int64, category, filename string) (io.ReadCloser, error)
	Delete(recordID int64, category, filename string) error
}

// DiskStore is a FileStore over a local directory laid out as
// {root}/{recordID}/{category}/{filename}.
type DiskStore struct {
	root string
}

// NewDiskStore creates the root directory if needed.
func NewDiskStore(root string) (*DiskStore, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("file store root must not be empty")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create file store root: %w", err)
	}
	return &DiskStore{root: root}, nil
}

// Save writes an attachment, overwriting any previous file with the same
// name.
func (s *DiskStore) Save(recordID int64, category, filename string, r io.Reader) (dto.FileInfo, error) {
	dir, err := s.categoryDir(recordID, category)
	if err != nil {
		return dto.FileInfo{}, err
	}
	name, err := cleanFilename(filename)
	if err != nil {
		return dto.FileInfo{}, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return dto.FileInfo{}, fmt.Errorf("create attachment dir: %w", err)
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return dto.FileInfo{}, fmt.Errorf("create attachment: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, r)
	if err != nil {
		os.Remove(path)
		return dto.FileInfo{}, fmt.Errorf("write attachment: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		return dto.FileInfo{}, fmt.Errorf("stat attachment: %w", err)
	}

	return dto.FileInfo{
		Name:     name,
		Size:     size,
		Category: category,
		Modified: info.ModTime(),
	}, nil
}

// List returns every attachment stored for a record across all categories.
func (s *DiskStore) List(recordID int64) ([]dto.FileInfo, error) {
	files := []dto.FileInfo{}
	for _, category := range []string{CategoryDocuments, CategoryAgreements} {
		dir := filepath.Join(s.root, strconv.FormatInt(recordID, 10), category)
		entries, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("list attachments: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				return nil, fmt.Errorf("stat attachment: %w", err)
			}
			files = append(files, dto.FileInfo{
				Name:     entry.Name(),
				Size:     info.Size(),
				Category: category,
				Modified: info.ModTime(),
			})
		}
	}
	return files, nil
}

// Open returns a reader over one attachment.
func (s *DiskStore) Open(recordID int64, category, filename string) (io.ReadCloser, error) {
	dir, err := s.categoryDir(recordID, category)
	if err != nil {
		return nil, err
	}
	name, err := cleanFilename(filename)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("open attachment: %w", err)
	}
	return f, nil
}

// Delete removes one attachment.
func (s *DiskStore) Delete(recordID int64, category, filename string) error {
	dir, err := s.categoryDir(recordID, category)
	if err != nil {
		return err
	}
	name, err := cleanFilename(filename)
	if err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(dir, name)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrFileNotFound
		}
		return fmt.Errorf("delete attachment: %w", err)
	}
	return nil
}

func (s *DiskStore) categoryDir(recordID int64, category string) (string, error) {
	if recordID <= 0 {
		return "", errors.New("invalid record id")
	}
	if !ValidCategory(category) {
		return "", fmt.Errorf("invalid category %q", category)
	}
	return filepath.Join(s.root, strconv.FormatInt(recordID, 10), category), nil
}

// ValidCategory reports whether the category is one of the allowed folders.
func ValidCategory(category string) bool {
	return category == CategoryDocuments || category == CategoryAgreements
}

// cleanFilename rejects empty names and anything that could escape the
// record's directory.
func cleanFilename(filename string) (string, error) {
	name := strings.TrimSpace(filename)
	if name == "" {
		return "", errors.New("filename must not be empty")
	}
	base := filepath.Base(name)
	if base != name || base == "." || base == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid filename %q", filename)
	}
	return base, nil
}
