package scanner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// WalkFunc is called for each entry selected by the walker. Returning an error
// wrapping ErrScanAborted stops the walk; other errors are counted and logged.
type WalkFunc func(path string, metadata *FileMetadata) error

// Options controls which entries are visited.
type Options struct {
	Recursive      bool // descend below the root's direct entries
	FollowSymlinks bool // visit symlink targets, cycle safe
	IncludeDirs    bool // also hand directories to the WalkFunc
}

// Walker handles directory traversal with exclusion filtering
type Walker struct {
	excluder *Excluder
	logger   *zap.Logger
	opts     Options
	visited  map[string]bool
	stats    *WalkStatistics
}

// WalkStatistics contains statistics about a walk operation
type WalkStatistics struct {
	TotalFiles      int // Files handed to the WalkFunc
	TotalDirs       int // Directories seen
	ExcludedFiles   int // Files excluded by patterns
	ExcludedDirs    int // Directories excluded by patterns
	SymlinksSkipped int // Symlinks not followed
	Placeholders    int // Cloud placeholders seen
	Errors          int // Errors encountered
}

// NewWalker creates a new Walker instance
func NewWalker(excluder *Excluder, opts Options, logger *zap.Logger) *Walker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if excluder == nil {
		excluder = NewExcluder(logger)
	}
	return &Walker{
		excluder: excluder,
		logger:   logger.With(zap.String("component", "walker")),
		opts:     opts,
		visited:  make(map[string]bool),
		stats:    &WalkStatistics{},
	}
}

// Walk visits root. A file root is handed to walkFn directly, bypassing
// exclusions; a directory root is traversed.
func (w *Walker) Walk(root string, walkFn WalkFunc) error {
	root = filepath.Clean(root)

	metadata, err := ExtractMetadata(root)
	if err != nil {
		return err
	}

	w.stats = &WalkStatistics{}
	w.visited = make(map[string]bool)

	if !metadata.IsDir && !metadata.IsSymlink {
		w.stats.TotalFiles++
		return w.call(walkFn, root, metadata)
	}

	if metadata.IsSymlink {
		realPath, err := filepath.EvalSymlinks(root)
		if err != nil {
			return fmt.Errorf("resolve %s: %w: %v", root, ErrInvalidPath, err)
		}
		return w.Walk(realPath, walkFn)
	}

	w.logger.Debug("starting directory walk", zap.String("root", root))

	if err := w.walkDir(root, walkFn); err != nil {
		return WrapError(err, "walk directory %s", root)
	}

	w.logger.Debug("directory walk completed",
		zap.String("root", root),
		zap.String("stats", w.stats.String()))
	return nil
}

func (w *Walker) walkDir(root string, walkFn WalkFunc) error {
	w.visited[root] = true
	w.markVisited(root)

	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			w.stats.Errors++
			w.logger.Warn("walk error",
				zap.String("path", path),
				zap.Error(err))
			return nil
		}

		metadata := ExtractMetadataWithStat(path, info)
		isRoot := path == root

		if !isRoot {
			result := w.excluder.ShouldExcludeUnder(root, path, metadata.IsDir)
			if result.Excluded {
				if metadata.IsDir {
					w.stats.ExcludedDirs++
					w.logger.Debug("excluding directory",
						zap.String("path", path),
						zap.String("pattern", result.Pattern))
					return filepath.SkipDir
				}
				w.stats.ExcludedFiles++
				w.logger.Debug("excluding file",
					zap.String("path", path),
					zap.String("pattern", result.Pattern))
				return nil
			}
		}

		if metadata.IsSymlink {
			return w.followSymlink(path, walkFn)
		}

		if !isRoot && w.opts.FollowSymlinks && !w.markVisited(path) {
			w.logger.Debug("already visited through a symlink", zap.String("path", path))
			if metadata.IsDir {
				return filepath.SkipDir
			}
			return nil
		}

		if metadata.IsPlaceholder {
			w.stats.Placeholders++
		}

		if metadata.IsDir {
			if !isRoot {
				w.stats.TotalDirs++
			}
			if w.opts.IncludeDirs {
				if err := w.call(walkFn, path, metadata); err != nil {
					return err
				}
			}
			if !isRoot && !w.opts.Recursive {
				return filepath.SkipDir
			}
			return nil
		}

		w.stats.TotalFiles++
		return w.call(walkFn, path, metadata)
	})
}

// followSymlink resolves a link met during a walk.
func (w *Walker) followSymlink(path string, walkFn WalkFunc) error {
	if !w.opts.FollowSymlinks {
		w.stats.SymlinksSkipped++
		w.logger.Debug("skipping symlink", zap.String("path", path))
		return nil
	}

	realPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		w.stats.Errors++
		w.logger.Warn("failed to resolve symlink",
			zap.String("path", path),
			zap.Error(err))
		return nil
	}
	if w.visited[realPath] {
		w.logger.Debug("cycle detected, skipping symlink",
			zap.String("path", path),
			zap.String("real_path", realPath))
		return nil
	}

	target, err := ExtractMetadata(realPath)
	if err != nil {
		w.stats.Errors++
		w.logger.Warn("failed to stat symlink target",
			zap.String("path", path),
			zap.Error(err))
		return nil
	}

	w.logger.Debug("following symlink",
		zap.String("path", path),
		zap.Stringer("target", target))

	if target.IsDir {
		if !w.opts.Recursive {
			return nil
		}
		return w.walkDir(realPath, walkFn)
	}

	w.visited[realPath] = true
	w.stats.TotalFiles++
	return w.call(walkFn, realPath, target)
}

// markVisited records the resolved path of path and reports whether it was
// new. Unresolvable paths are keyed by their own name.
func (w *Walker) markVisited(path string) bool {
	key := path
	if real, err := filepath.EvalSymlinks(path); err == nil {
		key = real
	}
	if w.visited[key] {
		return false
	}
	w.visited[key] = true
	return true
}

// call runs walkFn, turning everything but an abort into a counted warning.
func (w *Walker) call(walkFn WalkFunc, path string, metadata *FileMetadata) error {
	err := walkFn(path, metadata)
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrScanAborted) {
		return err
	}
	w.stats.Errors++
	w.logger.Warn("walk function error",
		zap.String("path", path),
		zap.Error(err))
	return nil
}

// GetStatistics returns the statistics from the last walk
func (w *Walker) GetStatistics() *WalkStatistics {
	return w.stats
}

func (s *WalkStatistics) String() string {
	return fmt.Sprintf("files=%d dirs=%d excluded_files=%d excluded_dirs=%d symlinks_skipped=%d placeholders=%d errors=%d",
		s.TotalFiles, s.TotalDirs, s.ExcludedFiles, s.ExcludedDirs, s.SymlinksSkipped, s.Placeholders, s.Errors)
}
