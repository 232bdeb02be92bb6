package services

import (
	"encoding/hex"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// allowedImageExts is the upload allow-list. Matching is case-insensitive.
var allowedImageExts = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// UploadService validates incoming photos and writes them under dir with
// generated names. The overall request size ceiling is enforced at the
// HTTP boundary before a file ever reaches this service.
type UploadService struct {
	dir string
}

func NewUploadService(dir string) *UploadService {
	return &UploadService{dir: dir}
}

// SavePhoto stores an optional uploaded photo. A nil header or an empty
// declared filename means "no photo" and yields a nil name, not an error.
// The declared name is sanitized and then used only for its extension;
// the stored name is freshly generated, so identical concurrent uploads
// never collide and nothing user-controlled reaches the filesystem.
func (s *UploadService) SavePhoto(fh *multipart.FileHeader) (*string, error) {
	if fh == nil || fh.Filename == "" {
		return nil, nil
	}

	ext := strings.ToLower(filepath.Ext(sanitizeFilename(fh.Filename)))
	ext = strings.TrimPrefix(ext, ".")
	if !allowedImageExts[ext] {
		return nil, ErrUnsupportedFileType
	}

	id := uuid.New()
	stored := hex.EncodeToString(id[:]) + "." + ext

	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, stored))
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return nil, err
	}
	return &stored, nil
}

// Remove deletes a previously stored file. Used to roll back when the
// request record fails to persist after the file was written.
func (s *UploadService) Remove(filename string) error {
	return os.Remove(filepath.Join(s.dir, filename))
}

// sanitizeFilename strips path components and anything outside a safe
// character set from a client-declared filename.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	return unsafeNameChars.ReplaceAllString(name, "")
}
