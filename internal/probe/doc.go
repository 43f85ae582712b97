// Package probe extracts capture metadata from media files.
//
// A probe maps a file path to its byte size and taken timestamp. Photos are
// read in-process via EXIF; videos shell out to ffprobe and use the container
// creation time. Unsupported file types return ErrUnsupported so callers can
// skip them without failing a whole run.
package probe
