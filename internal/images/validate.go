package images

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/rarefinebooks/backroom/internal/bookstore"
)

// MaxUploadBytes is the upper bound for a candidate file. A file of exactly
// this size is accepted; anything larger is rejected.
const MaxUploadBytes = 10 * 1024 * 1024

var allowedTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
	"image/gif":  {},
}

var (
	// ErrInvalidType rejects files whose declared content type is not an
	// accepted image format.
	ErrInvalidType = errors.New("invalid file type: only JPEG, PNG, WebP, and GIF allowed")
	// ErrTooLarge rejects files over MaxUploadBytes.
	ErrTooLarge = errors.New("file too large: maximum 10MB")
	// ErrNoFile signals a submit attempt with nothing staged.
	ErrNoFile = errors.New("no image selected")
)

// Validate checks a candidate's declared content type and size. This check
// is advisory; the backend re-enforces it authoritatively.
func Validate(contentType string, size int64) error {
	if _, ok := allowedTypes[strings.ToLower(strings.TrimSpace(contentType))]; !ok {
		return ErrInvalidType
	}
	if size > MaxUploadBytes {
		return ErrTooLarge
	}
	return nil
}

// File describes a candidate upload on disk.
type File struct {
	Path        string
	Name        string
	ContentType string
	Size        int64
}

// Describe stats a file and derives its declared content type from the
// extension. It does not validate; pass the result to Form.Stage.
func Describe(path string) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, fmt.Errorf("stat file: %w", err)
	}
	if info.IsDir() {
		return File{}, fmt.Errorf("%s is a directory", path)
	}
	name := filepath.Base(path)
	return File{
		Path:        path,
		Name:        name,
		ContentType: contentTypeFor(name),
		Size:        info.Size(),
	}, nil
}

func contentTypeFor(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	}
	return mime.TypeByExtension(ext)
}

// Form stages one candidate file plus its metadata for submission.
type Form struct {
	file    *File
	AltText string
	Primary bool
}

// Stage validates a candidate and, on acceptance, replaces the staged file.
// On rejection the previously staged file (if any) is left untouched.
func (f *Form) Stage(candidate File) error {
	if err := Validate(candidate.ContentType, candidate.Size); err != nil {
		return err
	}
	f.file = &candidate
	return nil
}

// File returns the currently staged file, or nil.
func (f *Form) File() *File {
	return f.file
}

// HasFile reports whether a file is staged.
func (f *Form) HasFile() bool {
	return f.file != nil
}

// Clear resets the form after a successful upload.
func (f *Form) Clear() {
	f.file = nil
	f.AltText = ""
	f.Primary = false
}

// Upload reads the staged file and packages it for the API client. The
// staged file stays in place so a failed submit can be retried without
// re-selecting it; call Clear after a successful upload.
func (f *Form) Upload() (bookstore.ImageUpload, error) {
	if f.file == nil {
		return bookstore.ImageUpload{}, ErrNoFile
	}
	data, err := os.ReadFile(f.file.Path)
	if err != nil {
		return bookstore.ImageUpload{}, fmt.Errorf("read file: %w", err)
	}
	return bookstore.ImageUpload{
		FileName:    f.file.Name,
		ContentType: f.file.ContentType,
		Data:        bytes.NewReader(data),
		AltText:     f.AltText,
		Primary:     f.Primary,
	}, nil
}
