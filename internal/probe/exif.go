package probe

import (
	"fmt"
	"os"
	"time"

	"github.com/rwcarlsen/goexif/exif"
)

// photoTaken reads the EXIF capture time (DateTimeOriginal, falling back to
// DateTime) from a photo file.
func photoTaken(path string) (time.Time, error) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	meta, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: no exif data in %s: %v", ErrUnsupported, path, err)
	}

	taken, err := meta.DateTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: no capture time in %s: %v", ErrUnsupported, path, err)
	}
	return taken, nil
}
