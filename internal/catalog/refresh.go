package catalog

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"snapvault/internal/logging"
	"snapvault/internal/probe"
)

// Refresh rebuilds the entries for one destination root from the live
// filesystem. Entries from prev are reused when the file's current size
// matches the cached size (the timestamp is trusted without re-probing);
// everything else is probed. Files that fail to probe are reported and left
// out; a walk error aborts the refresh.
func Refresh(ctx context.Context, root string, prev Entries, pr probe.Prober, excludedExtensions []string, logger *slog.Logger) (Entries, error) {
	logger = logging.NewComponentLogger(logger, "catalog")

	excluded := make(map[string]struct{}, len(excludedExtensions))
	for _, ext := range excludedExtensions {
		excluded[strings.ToLower(ext)] = struct{}{}
	}

	next := make(Entries, len(prev))
	reused, probed := 0, 0

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("walk %s: %w", path, walkErr)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if _, ok := excluded[strings.ToLower(filepath.Ext(path))]; ok {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relativize %s: %w", path, err)
		}
		rel = filepath.ToSlash(rel)

		if old, ok := prev[rel]; ok && old.Size == info.Size() {
			next[rel] = old
			reused++
			return nil
		}

		meta, err := pr.Probe(ctx, path)
		if err != nil {
			logger.Warn("failed to parse file from destination",
				logging.String(logging.FieldPath, path),
				logging.Error(err))
			return nil
		}
		next[rel] = Fingerprint{Size: meta.Size, Taken: meta.Taken}
		probed++
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("refreshed destination root",
		logging.String(logging.FieldRoot, root),
		logging.Int("entries", len(next)),
		logging.Int("reused", reused),
		logging.Int("probed", probed))
	return next, nil
}
