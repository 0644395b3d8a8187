package filestore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/submission"
)

func TestLocal_Upload(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(filepath.Join(dir, "uploads"), "")
	l.newID = func() string { return "6f1c2a44-0000-4000-8000-000000000001" }

	url, err := l.Upload(context.Background(), submission.File{Name: "mijn dak.JPG", Body: strings.NewReader("jpegdata")})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/6f1c2a44-0000-4000-8000-000000000001.jpg", url)

	data, err := os.ReadFile(filepath.Join(dir, "uploads", "6f1c2a44-0000-4000-8000-000000000001.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpegdata", string(data))
}

func TestLocal_NamesAreNotGuessable(t *testing.T) {
	l := NewLocal(t.TempDir(), "/uploads")
	a, err := l.Upload(context.Background(), submission.File{Name: "dak.png", Body: strings.NewReader("a")})
	require.NoError(t, err)
	b, err := l.Upload(context.Background(), submission.File{Name: "dak.png", Body: strings.NewReader("b")})
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.NotContains(t, a, "dak")
}

func TestLocal_UnknownExtensionIsStoredAsBinary(t *testing.T) {
	l := NewLocal(t.TempDir(), "/uploads")
	url, err := l.Upload(context.Background(), submission.File{Name: "foto.html", Body: strings.NewReader("<script>")})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".bin"), url)
}

func TestLocal_CancelledContext(t *testing.T) {
	l := NewLocal(t.TempDir(), "/files/")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.Upload(ctx, submission.File{Name: "a.pdf", Body: strings.NewReader("x")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestObjectName(t *testing.T) {
	assert.Equal(t, "file.bin", objectName(""))
	assert.Equal(t, "plan.pdf", objectName("../../plan.pdf"))
	assert.Equal(t, "a_b.png", objectName("a b.PNG"))
	assert.Equal(t, "noext.bin", objectName("noext"))
	assert.Equal(t, "foto.bin", objectName("foto.HTML"))
	assert.Equal(t, "scan.pdf", objectName("scan.pdf"))
}

func TestMinIO_ObjectKeyAndURL(t *testing.T) {
	m := &MinIO{bucket: "leads", now: func() time.Time { return time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC) }}

	key := m.objectKey("foto 1.jpg")
	assert.True(t, strings.HasPrefix(key, "attachments/2026/04/05/"), key)
	assert.True(t, strings.HasSuffix(key, "_foto_1.jpg"), key)
	assert.Equal(t, "/leads/"+key, m.url(key))

	m.publicURL = "https://cdn.example.nl/a"
	assert.Equal(t, "https://cdn.example.nl/a/"+key, m.url(key))
}
