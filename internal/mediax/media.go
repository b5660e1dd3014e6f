// Package mediax copies entry attachments into the application's own media
// directory so diary entries never reference files the user may later move
// or delete. Each import gets a fresh random name; the original file is left
// untouched.
package mediax

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/daybookapp/daybook/internal/logging"
)

// ErrUnsupportedMedia is returned for attachment types the diary does not
// render.
var ErrUnsupportedMedia = errors.New("unsupported media type")

// supportedExts are the image formats the entry view can display.
var supportedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Importer copies attachments into <dataDir>/media.
type Importer struct {
	mediaDir string
	log      logging.Logger
}

func NewImporter(dataDir string, log logging.Logger) *Importer {
	return &Importer{mediaDir: filepath.Join(dataDir, "media"), log: log}
}

// Import copies the file at src into the media directory under a random
// name and returns the file:// reference to store on the entry. The
// extension is preserved so viewers can infer the format.
func (i *Importer) Import(ctx context.Context, src string) (string, error) {
	ext := strings.ToLower(filepath.Ext(src))
	if !supportedExts[ext] {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMedia, ext)
	}

	if err := os.MkdirAll(i.mediaDir, 0o770); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("failed to open attachment: %w", err)
	}
	defer in.Close()

	dst := filepath.Join(i.mediaDir, uuid.NewString()+ext)
	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create media file: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		_ = os.Remove(dst)
		return "", fmt.Errorf("failed to copy attachment: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return "", fmt.Errorf("failed to flush media file: %w", err)
	}

	i.log.Debug(ctx, "attachment imported", "src", src, "dst", dst)
	return "file://" + dst, nil
}

// Path translates a stored file:// reference back to a filesystem path.
func Path(ref string) string {
	return strings.TrimPrefix(ref, "file://")
}

// Clear removes every imported attachment. Used by the full diary reset.
func (i *Importer) Clear() error {
	if err := os.RemoveAll(i.mediaDir); err != nil {
		return fmt.Errorf("failed to clear media directory: %w", err)
	}
	return nil
}
