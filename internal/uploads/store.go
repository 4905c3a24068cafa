package uploads

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrFileNotAllowed = errors.New("file type not allowed")
	ErrNotFound       = errors.New("file not found")
	ErrInvalidName    = errors.New("invalid file name")
)

// allowedExtensions mirrors what the portal accepts as grievance evidence.
var allowedExtensions = map[string]bool{
	".txt":  true,
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".doc":  true,
	".docx": true,
}

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".webp": true,
}

// Store writes uploaded files into a single restricted directory. Stored
// names are uuid-prefixed so concurrent uploads of the same filename never
// overwrite each other.
type Store struct {
	dir     string
	maxSize int64
}

// NewStore creates the upload directory once at process start.
func NewStore(dir string, maxSize int64) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir, maxSize: maxSize}, nil
}

func (s *Store) MaxSize() int64 {
	return s.maxSize
}

func Allowed(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

func IsImage(filename string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(filename))]
}

// sanitize strips any path components, keeping only a safe base name.
func sanitize(filename string) string {
	name := filepath.Base(filepath.Clean(filename))
	name = strings.ReplaceAll(name, "..", "")
	name = strings.ReplaceAll(name, string(os.PathSeparator), "")
	return name
}

// Save streams the upload to disk and returns the stored name used for
// later retrieval. The original name stays only in the attachment metadata.
func (s *Store) Save(originalName string, r io.Reader) (string, error) {
	if !Allowed(originalName) {
		return "", ErrFileNotAllowed
	}

	safe := sanitize(originalName)
	if safe == "" || safe == "." {
		return "", ErrInvalidName
	}

	storedName := fmt.Sprintf("%s_%s", uuid.NewString(), safe)

	f, err := os.Create(filepath.Join(s.dir, storedName))
	if err != nil {
		return "", err
	}
	defer f.Close()

	limited := io.LimitReader(r, s.maxSize+1)
	n, err := io.Copy(f, limited)
	if err != nil {
		os.Remove(f.Name())
		return "", err
	}
	if n > s.maxSize {
		os.Remove(f.Name())
		return "", fmt.Errorf("file exceeds maximum size of %d bytes", s.maxSize)
	}

	return storedName, nil
}

// Path resolves a stored name inside the upload directory, rejecting any
// name that would escape it.
func (s *Store) Path(storedName string) (string, error) {
	if sanitize(storedName) != storedName {
		return "", ErrInvalidName
	}

	p := filepath.Join(s.dir, storedName)

	info, err := os.Stat(p)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", err
	}
	if info.IsDir() {
		return "", ErrInvalidName
	}

	return p, nil
}
