package storage

import (
	"fmt"
	"math/rand"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Saver writes uploaded file parts to a local directory and hands back the
// stored name. Callers treat the ref as opaque.
type Saver struct {
	Dir string
}

func NewSaver(dir string) *Saver { return &Saver{Dir: dir} }

// Save stores the uploaded part as <field>-<unixms>-<rand>.<ext> under Dir.
func (s *Saver) Save(c *gin.Context, field string, fh *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("upload dir: %w", err)
	}
	name := UniqueName(field, fh.Filename)
	if err := c.SaveUploadedFile(fh, filepath.Join(s.Dir, name)); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	return name, nil
}

// SaveOptional returns "" without error when the field is absent.
func (s *Saver) SaveOptional(c *gin.Context, field string) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", nil
	}
	return s.Save(c, field, fh)
}

func UniqueName(field, original string) string {
	ext := strings.TrimPrefix(filepath.Ext(original), ".")
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("%s-%d-%d.%s", field, time.Now().UnixMilli(), rand.Int63n(1_000_000_000), ext)
}
