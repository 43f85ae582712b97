package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

type ffprobeResult struct {
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeStream struct {
	Index int         `json:"index"`
	Tags  ffprobeTags `json:"tags"`
}

type ffprobeTags struct {
	CreationTime string `json:"creation_time"`
}

// videoTaken executes ffprobe against the first video stream and decodes the
// container creation time from its JSON output.
func videoTaken(ctx context.Context, binary string, path string) (time.Time, error) {
	if binary == "" {
		binary = "ffprobe"
	}

	cmd := exec.CommandContext(ctx, binary,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_streams",
		"-of", "json",
		"--", path)
	output, err := cmd.Output()
	if err != nil {
		detail := strings.TrimSpace(stderrOf(err))
		if detail != "" {
			return time.Time{}, fmt.Errorf("ffprobe %s: %w: %s", path, err, detail)
		}
		return time.Time{}, fmt.Errorf("ffprobe %s: %w", path, err)
	}

	return parseCreationTime(output, path)
}

func parseCreationTime(output []byte, path string) (time.Time, error) {
	var result ffprobeResult
	if err := json.Unmarshal(output, &result); err != nil {
		return time.Time{}, fmt.Errorf("parse ffprobe output for %s: %w", path, err)
	}
	if len(result.Streams) == 0 {
		return time.Time{}, fmt.Errorf("%w: no video stream in %s", ErrUnsupported, path)
	}

	raw := strings.TrimSpace(result.Streams[0].Tags.CreationTime)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: no creation time in %s", ErrUnsupported, path)
	}

	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, TimeLayout} {
		if taken, err := time.Parse(layout, raw); err == nil {
			return taken, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse creation time %q from %s", raw, path)
}

func stderrOf(err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return string(exitErr.Stderr)
	}
	return ""
}
