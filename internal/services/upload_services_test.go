package services

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var storedNameRegex = regexp.MustCompile(`^[0-9a-f]{32}\.[a-z]+$`)

// makeFileHeader builds a real multipart.FileHeader so fh.Open works.
func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="photo"; filename="%s"`, filename))
	h.Set("Content-Type", "application/octet-stream")
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	files := form.File["photo"]
	require.Len(t, files, 1)
	return files[0]
}

func TestSavePhotoNoFile(t *testing.T) {
	svc := NewUploadService(t.TempDir())

	name, err := svc.SavePhoto(nil)
	require.NoError(t, err)
	assert.Nil(t, name)

	// an empty declared filename also counts as "no file"
	name, err = svc.SavePhoto(&multipart.FileHeader{Filename: ""})
	require.NoError(t, err)
	assert.Nil(t, name)
}

func TestSavePhotoRejectsDisallowedExtensions(t *testing.T) {
	svc := NewUploadService(t.TempDir())

	for _, filename := range []string{"malware.exe", "page.html", "noextension", "archive.tar.xz"} {
		fh := makeFileHeader(t, filename, []byte("data"))
		name, err := svc.SavePhoto(fh)
		assert.ErrorIs(t, err, ErrUnsupportedFileType, filename)
		assert.Nil(t, name)
	}
}

func TestSavePhotoGeneratesFreshName(t *testing.T) {
	dir := t.TempDir()
	svc := NewUploadService(dir)

	fh := makeFileHeader(t, "My Antique Vase.PNG", []byte("png-bytes"))
	name, err := svc.SavePhoto(fh)
	require.NoError(t, err)
	require.NotNil(t, name)

	assert.Regexp(t, storedNameRegex, *name)
	assert.True(t, len(*name) > 4 && (*name)[len(*name)-4:] == ".png", "extension lowercased and preserved")
	assert.NotContains(t, *name, "Vase", "stored name must not derive from the client name")

	data, err := os.ReadFile(filepath.Join(dir, *name))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestSavePhotoStripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	svc := NewUploadService(dir)

	fh := makeFileHeader(t, "../../etc/passwd.jpg", []byte("jpg-bytes"))
	name, err := svc.SavePhoto(fh)
	require.NoError(t, err)
	require.NotNil(t, name)

	assert.Regexp(t, storedNameRegex, *name)
	// the file lands inside the upload dir, nowhere else
	_, err = os.Stat(filepath.Join(dir, *name))
	assert.NoError(t, err)
}

func TestSavePhotoIdenticalNamesDoNotCollide(t *testing.T) {
	dir := t.TempDir()
	svc := NewUploadService(dir)

	first, err := svc.SavePhoto(makeFileHeader(t, "antique.jpg", []byte("one")))
	require.NoError(t, err)
	second, err := svc.SavePhoto(makeFileHeader(t, "antique.jpg", []byte("two")))
	require.NoError(t, err)

	assert.NotEqual(t, *first, *second)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()
	svc := NewUploadService(dir)

	name, err := svc.SavePhoto(makeFileHeader(t, "antique.gif", []byte("gif-bytes")))
	require.NoError(t, err)

	require.NoError(t, svc.Remove(*name))
	_, err = os.Stat(filepath.Join(dir, *name))
	assert.True(t, os.IsNotExist(err))
}
