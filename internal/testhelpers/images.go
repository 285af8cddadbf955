package testhelpers

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

// WriteImage saves a solid w x h image to dir/name, encoded by extension.
// dir is created if needed.
func WriteImage(t *testing.T, dir, name string, w, h int, c color.Color) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := imaging.Save(imaging.New(w, h, c), path); err != nil {
		t.Fatalf("Failed to write test image: %v", err)
	}
	return path
}
