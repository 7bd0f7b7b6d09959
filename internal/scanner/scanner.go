// Package scanner discovers the sibling files of a Lightning Web Component.
//
// A lookup starts from one file, checks that it belongs to a component
// folder, lists that folder (plus its __tests__ folder), keeps the files
// that share the trigger's component name and ranks them by kind. Every
// lookup reads the filesystem afresh; nothing is cached between calls, so
// concurrent lookups need no locking.
//
// The scanner never returns errors to its callers. An unreadable folder, a
// file that is not part of a component, and a component without siblings
// all produce the same empty result.
package scanner

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/conneroisu/lwcswitch/internal/logging"
	"github.com/conneroisu/lwcswitch/internal/types"
)

// ComponentScanner runs component lookups. It holds no per-lookup state.
type ComponentScanner struct {
	logger      logging.Logger
	workerCount int
}

// NewComponentScanner creates a scanner that logs through logger. A nil
// logger discards output.
func NewComponentScanner(logger logging.Logger) *ComponentScanner {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	workerCount := runtime.NumCPU()
	if workerCount > 8 {
		workerCount = 8
	}

	return &ComponentScanner{
		logger:      logger.WithComponent("scanner"),
		workerCount: workerCount,
	}
}

// Lookup returns the ranked siblings of path. The result is never nil;
// Empty reports the "no related files" case.
func (s *ComponentScanner) Lookup(ctx context.Context, path string) *types.RankedFileList {
	result := &types.RankedFileList{Trigger: path, Files: []types.RelatedFile{}}
	if ctx.Err() != nil {
		return result
	}

	trigger := filepath.Clean(path)
	result.Trigger = trigger

	if !IsComponentFile(trigger) {
		s.logger.Debug(ctx, "Not a component file", "path", trigger)
		return result
	}

	name := ComponentName(trigger)
	if name == "" {
		return result
	}
	dir := filepath.Dir(trigger)
	result.Component = name
	result.Directory = dir

	op := logging.StartOperation(s.logger, "lookup")

	candidates, err := listCandidates(dir)
	if err != nil {
		if isNotExist(err) {
			s.logger.Debug(ctx, "Component directory vanished", "directory", dir)
		} else {
			s.logger.Warn(ctx, err, "Cannot read component directory", "directory", dir)
		}
	}
	if ctx.Err() != nil {
		return result
	}

	files := FilterComponentFiles(candidates, name, trigger)
	result.Files = Rank(files)

	op.End(ctx, "component", name, "candidates", len(candidates), "files", len(result.Files))
	return result
}

// ScanComponent returns every file of the component folder dir, metadata
// file included, in rank order. It returns nil when dir is not a component
// folder.
func (s *ComponentScanner) ScanComponent(ctx context.Context, dir string) *types.ComponentInfo {
	if ctx.Err() != nil {
		return nil
	}

	dir = filepath.Clean(dir)
	meta := MetaFilePath(dir)
	if !IsComponentFile(meta) {
		return nil
	}

	name := filepath.Base(dir)
	candidates, err := listCandidates(dir)
	if err != nil {
		s.logger.Warn(ctx, err, "Cannot read component directory", "directory", dir)
	}

	return &types.ComponentInfo{
		Name:      name,
		Directory: dir,
		MetaFile:  meta,
		Files:     Rank(FilterComponentFiles(candidates, name, "")),
	}
}

// scanJob is one component folder waiting for a worker.
type scanJob struct {
	index int
	dir   string
}

// ScanDirectory walks root and returns every component folder below it,
// sorted by folder path. Unreadable subtrees are skipped. Only an unusable
// root is reported as an error.
func (s *ComponentScanner) ScanDirectory(ctx context.Context, root string) ([]*types.ComponentInfo, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &fs.PathError{Op: "scan", Path: root, Err: fs.ErrInvalid}
	}

	var dirs []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			s.logger.Debug(ctx, "Skipping unreadable path", "path", path, "error", walkErr.Error())
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !d.IsDir() || d.Name() == types.TestsDirName {
			return nil
		}
		if IsComponentFile(MetaFilePath(path)) {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.processBatch(ctx, dirs), nil
}

// processBatch scans component folders on a bounded set of workers.
// Results keep the order of dirs.
func (s *ComponentScanner) processBatch(ctx context.Context, dirs []string) []*types.ComponentInfo {
	results := make([]*types.ComponentInfo, len(dirs))
	if len(dirs) == 0 {
		return results
	}

	if len(dirs) <= 5 {
		for i, dir := range dirs {
			results[i] = s.ScanComponent(ctx, dir)
		}
		return compact(results)
	}

	jobs := make(chan scanJob, s.workerCount*2)
	var wg sync.WaitGroup
	for w := 0; w < s.workerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				results[job.index] = s.ScanComponent(ctx, job.dir)
			}
		}()
	}

	for i, dir := range dirs {
		jobs <- scanJob{index: i, dir: dir}
	}
	close(jobs)
	wg.Wait()

	return compact(results)
}

func compact(infos []*types.ComponentInfo) []*types.ComponentInfo {
	out := infos[:0]
	for _, info := range infos {
		if info != nil {
			out = append(out, info)
		}
	}
	return out
}
