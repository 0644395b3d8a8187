// Package filestore keeps customer attachments, either on local disk served
// under /uploads or in a MinIO bucket.
package filestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jurrebakker123/refurbish-totaal-website-project-sub000/internal/submission"
)

// Local writes files into Dir under random names and returns
// "<PublicPrefix>/<name>".
type Local struct {
	Dir          string
	PublicPrefix string
	newID        func() string
}

func NewLocal(dir, publicPrefix string) *Local {
	if publicPrefix == "" {
		publicPrefix = "/uploads"
	}
	return &Local{Dir: dir, PublicPrefix: strings.TrimRight(publicPrefix, "/"), newID: uuid.NewString}
}

func (l *Local) Upload(ctx context.Context, f submission.File) (string, error) {
	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	filename := l.newID() + filepath.Ext(objectName(f.Name))
	dst, err := os.Create(filepath.Join(l.Dir, filename))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, readerWithContext(ctx, f.Body)); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("save file: %w", err)
	}
	return l.PublicPrefix + "/" + filename, nil
}

// objectName makes the base name safe for a path. Only attachment
// extensions survive; anything else is stored as .bin.
func objectName(original string) string {
	ext := filepath.Ext(original)
	name := strings.TrimSuffix(filepath.Base(original), ext)
	ext = strings.ToLower(ext)
	if _, ok := submission.AttachmentTypes[ext]; !ok {
		ext = ".bin"
	}
	return sanitizeFilename(name) + ext
}

func sanitizeFilename(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || s == "." || s == ".." {
		return "file"
	}
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func readerWithContext(ctx context.Context, r io.Reader) io.Reader {
	return &ctxReader{ctx: ctx, r: r}
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
