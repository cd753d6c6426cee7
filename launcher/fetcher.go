package launcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/leocov-dev/launchwiz/core"
	"github.com/leocov-dev/launchwiz/fileio"
)

// AssetFailure is one asset that could not be fetched
type AssetFailure struct {
	Name string
	Hash string
	Err  error
}

type AssetReport struct {
	Total   int
	Missing int
	Fetched int
	Failed  []AssetFailure
}

// DependencyFetcher brings the client jar, libraries and assets of a version into the cache
type DependencyFetcher struct {
	cache        *ArtifactCache
	reporter     core.Reporter
	assetBaseURL string
	concurrency  int
}

func NewDependencyFetcher(cache *ArtifactCache, reporter core.Reporter, assetBaseURL string, concurrency int) *DependencyFetcher {
	if reporter == nil {
		reporter = core.NopReporter
	}
	if assetBaseURL == "" {
		assetBaseURL = core.AssetBaseURL
	}
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	return &DependencyFetcher{
		cache:        cache,
		reporter:     reporter,
		assetBaseURL: assetBaseURL,
		concurrency:  concurrency,
	}
}

func (f *DependencyFetcher) FetchClient(ctx context.Context, descriptor core.VersionDescriptor, layout fileio.Layout) error {
	jar := layout.VersionJar(descriptor.ID)
	res, err := f.cache.Ensure(ctx, descriptor.Client.URL, jar, descriptor.Client.Checksum)
	if err != nil {
		return fmt.Errorf("client jar for %s: %w", descriptor.ID, err)
	}
	core.Logf(f.reporter, core.StageClient, "Client jar %s: %s", descriptor.ID, res)
	return nil
}

// FetchLibraries ensures every library in order and stops at the first failure.
// Libraries without a download URL are skipped.
func (f *DependencyFetcher) FetchLibraries(ctx context.Context, libraries []core.LibraryRef, layout fileio.Layout) error {
	fetched := 0
	for i, lib := range libraries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if lib.URL == "" {
			continue
		}

		rel, err := lib.RelativePath()
		if err != nil {
			return err
		}
		res, err := f.cache.Ensure(ctx, lib.URL, layout.Library(rel), lib.Checksum)
		if err != nil {
			return fmt.Errorf("library %s: %w", lib.Coordinate, err)
		}
		if res == Fetched {
			fetched++
		}
		core.Progress(f.reporter, core.StageLibraries, i+1, len(libraries))
	}
	core.Logf(f.reporter, core.StageLibraries, "Libraries ready (%d downloaded)", fetched)
	return nil
}

// FetchAssets ensures the asset index, then downloads every missing object with
// bounded concurrency. A failed object is reported and recorded but never stops the batch.
func (f *DependencyFetcher) FetchAssets(ctx context.Context, ref core.AssetIndexRef, layout fileio.Layout) (AssetReport, error) {
	var report AssetReport

	indexFile := layout.AssetIndex(ref.ID)
	if _, err := f.cache.Ensure(ctx, ref.URL, indexFile, ref.Checksum); err != nil {
		return report, fmt.Errorf("asset index %s: %w", ref.ID, err)
	}

	index, err := fileio.LoadAssetIndex(indexFile)
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return report, &core.StorageError{Path: indexFile, Err: err}
		}
		return report, &core.MalformedResponseError{URL: ref.URL, Reason: "invalid asset index", Err: err}
	}
	report.Total = len(index.Objects)

	// objects sharing a hash share a file; schedule each path once
	seen := make(map[string]struct{}, len(index.Objects))
	var missing []core.AssetObject
	for _, obj := range index.Objects {
		if _, ok := seen[obj.Hash]; ok {
			continue
		}
		seen[obj.Hash] = struct{}{}

		exists, err := fileio.FileExists(layout.AssetObject(obj.ObjectPath()))
		if err != nil || !exists {
			missing = append(missing, obj)
		}
	}
	report.Missing = len(missing)
	core.Logf(f.reporter, core.StageAssets, "%d of %d assets missing", report.Missing, report.Total)
	if len(missing) == 0 {
		return report, nil
	}

	// each task owns its slot, so no lock is needed
	errs := make([]error, len(missing))
	var done atomic.Int64

	var g errgroup.Group
	g.SetLimit(f.concurrency)
	for i, obj := range missing {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			_, err := f.cache.Ensure(ctx, obj.URL(f.assetBaseURL), layout.AssetObject(obj.ObjectPath()), obj.Hash)
			if err != nil {
				errs[i] = err
				if ctx.Err() == nil {
					core.Errorf(f.reporter, core.StageAssets, "failed to download asset %s: %v", obj.Name, err)
				}
			}
			core.Progress(f.reporter, core.StageAssets, int(done.Add(1)), len(missing))
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return report, err
	}

	for i, err := range errs {
		if err == nil {
			report.Fetched++
			continue
		}
		report.Failed = append(report.Failed, AssetFailure{
			Name: missing[i].Name,
			Hash: missing[i].Hash,
			Err:  err,
		})
	}
	return report, nil
}
