package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"snapvault/internal/logging"
)

// TimeLayout renders taken timestamps at second precision without a zone.
// This exact form is persisted in the destination cache, so it must not
// change without migrating cached documents.
const TimeLayout = "2006-01-02T15:04:05"

// ErrUnsupported marks files whose type carries no readable capture
// timestamp.
var ErrUnsupported = errors.New("unsupported media type")

// Metadata is the probe result: size plus the formatted taken timestamp.
type Metadata struct {
	Size  int64
	Taken string
}

// TakenTime parses the taken timestamp back into a time.Time.
func (m Metadata) TakenTime() (time.Time, error) {
	return time.Parse(TimeLayout, m.Taken)
}

// Prober resolves a file path to capture metadata.
type Prober interface {
	Probe(ctx context.Context, path string) (Metadata, error)
}

var photoExtensions = map[string]struct{}{
	".cr2":  {},
	".jpg":  {},
	".jpeg": {},
}

var videoExtensions = map[string]struct{}{
	".mov": {},
	".mp4": {},
}

// FileProber reads metadata from local files, dispatching on extension.
type FileProber struct {
	ffprobe string
	logger  *slog.Logger
}

// NewFileProber constructs a prober using the given ffprobe binary for
// video files. An empty binary falls back to "ffprobe" on PATH.
func NewFileProber(ffprobeBinary string, logger *slog.Logger) *FileProber {
	return &FileProber{
		ffprobe: strings.TrimSpace(ffprobeBinary),
		logger:  logging.NewComponentLogger(logger, "probe"),
	}
}

// Probe returns size and taken timestamp for path. Files with no readable
// timestamp return an error wrapping ErrUnsupported.
func (p *FileProber) Probe(ctx context.Context, path string) (Metadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("stat %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))

	var taken time.Time
	switch {
	case isPhotoExtension(ext):
		taken, err = photoTaken(path)
	case isVideoExtension(ext):
		taken, err = videoTaken(ctx, p.ffprobe, path)
	default:
		return Metadata{}, fmt.Errorf("%w: %s", ErrUnsupported, ext)
	}
	if err != nil {
		return Metadata{}, err
	}

	meta := Metadata{Size: info.Size(), Taken: taken.Format(TimeLayout)}
	p.logger.Debug("probed file",
		logging.String(logging.FieldPath, path),
		logging.Int64("size", meta.Size),
		logging.String("taken", meta.Taken))
	return meta, nil
}

func isPhotoExtension(ext string) bool {
	_, ok := photoExtensions[ext]
	return ok
}

func isVideoExtension(ext string) bool {
	_, ok := videoExtensions[ext]
	return ok
}
