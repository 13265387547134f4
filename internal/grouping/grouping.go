// internal/grouping/grouping.go

// Package grouping walks the storage tree and folds flat file listings
// into per-folder media groups, which are the batch runner's work items.
package grouping

import (
	"context"
	"path"
	"sort"
	"strings"

	"estate-pipeline/internal/common/logger"
	"estate-pipeline/internal/models"
	"estate-pipeline/internal/storage"
)

// imageExtensions marks entries that count as group content. Anything else
// under a folder is ignored, not an error.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
	".avif": true,
}

// prefixAliases are interchangeable top-level folder names that uploads
// historically landed under. Stripping them merges equivalent folders into
// one group key.
var prefixAliases = map[string]bool{
	"listings": true,
	"ilanlar":  true,
	"emlak":    true,
	"uploads":  true,
}

// Orchestrator lists the storage tree and builds media groups.
type Orchestrator struct {
	lister        storage.Lister
	minGroupFiles int
	logger        logger.Logger
}

func NewOrchestrator(lister storage.Lister, minGroupFiles int, log logger.Logger) *Orchestrator {
	if minGroupFiles <= 0 {
		minGroupFiles = 2
	}
	return &Orchestrator{
		lister:        lister,
		minGroupFiles: minGroupFiles,
		logger:        log,
	}
}

// ListAndGroup walks the tree from the root and returns the surviving
// groups sorted by key, plus how many groups the thresholds filtered out.
// Only a listing failure at the root is fatal; deeper failures skip that
// subtree.
func (o *Orchestrator) ListAndGroup(ctx context.Context) ([]models.MediaGroup, int, error) {
	files := make(map[string][]models.MediaFile)
	if err := o.walk(ctx, "", files, true); err != nil {
		return nil, 0, err
	}

	var groups []models.MediaGroup
	skipped := 0
	for key, groupFiles := range files {
		if key == "" || len(groupFiles) < o.minGroupFiles {
			skipped++
			o.logger.Debug("group filtered out", map[string]interface{}{
				"key":   key,
				"files": len(groupFiles),
			})
			continue
		}
		groups = append(groups, models.MediaGroup{FolderKey: key, Files: groupFiles})
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].FolderKey < groups[j].FolderKey })
	return groups, skipped, nil
}

func (o *Orchestrator) walk(ctx context.Context, dir string, files map[string][]models.MediaFile, root bool) error {
	entries, err := o.lister.List(ctx, dir)
	if err != nil {
		if root {
			return err
		}
		o.logger.WithError(err).Warn("listing subtree failed, skipping", map[string]interface{}{
			"path": dir,
		})
		return nil
	}

	for _, entry := range entries {
		full := path.Join(dir, entry.Name)
		if entry.IsFolder() {
			if err := o.walk(ctx, full, files, false); err != nil {
				return err
			}
			continue
		}
		if !imageExtensions[strings.ToLower(path.Ext(entry.Name))] {
			continue
		}
		// Group by the normalized key so equivalent folders under
		// different root aliases merge.
		key := normalizeKey(dir)
		files[key] = append(files[key], models.MediaFile{
			Path: full,
			Name: entry.Name,
			URL:  o.lister.PublicURL(full),
		})
	}
	return nil
}

// normalizeKey strips a leading prefix alias from the group key. A key
// that is empty or is nothing but an alias normalizes to "", which the
// caller filters out.
func normalizeKey(key string) string {
	key = strings.Trim(key, "/")
	if key == "" {
		return ""
	}
	segments := strings.Split(key, "/")
	for len(segments) > 0 && prefixAliases[strings.ToLower(segments[0])] {
		segments = segments[1:]
	}
	return strings.Join(segments, "/")
}
