package launcher

import (
	"context"
	"fmt"

	"github.com/leocov-dev/launchwiz/core"
	"github.com/leocov-dev/launchwiz/fileio"
)

// LoaderState tracks how far a loader installation has progressed
type LoaderState int

const (
	LoaderAbsent LoaderState = iota
	LoaderMetadataFetched
	LoaderProfileWritten
	LoaderLibrariesVerifying
	LoaderReady
)

func (s LoaderState) String() string {
	switch s {
	case LoaderAbsent:
		return "absent"
	case LoaderMetadataFetched:
		return "metadata fetched"
	case LoaderProfileWritten:
		return "profile written"
	case LoaderLibrariesVerifying:
		return "verifying libraries"
	case LoaderReady:
		return "ready"
	}
	return fmt.Sprintf("LoaderState(%d)", int(s))
}

// MojangLibrariesURL is used for loader libraries that do not name a repository
const MojangLibrariesURL = "https://libraries.minecraft.net/"

// LoaderBootstrapper detects or installs a mod loader profile for a game version.
// An installation counts only when the profile and every library it names are valid;
// anything less is reinstalled from scratch.
type LoaderBootstrapper struct {
	meta     *core.LoaderMeta
	cache    *ArtifactCache
	reporter core.Reporter
	state    LoaderState
}

func NewLoaderBootstrapper(meta *core.LoaderMeta, cache *ArtifactCache, reporter core.Reporter) *LoaderBootstrapper {
	if reporter == nil {
		reporter = core.NopReporter
	}
	return &LoaderBootstrapper{
		meta:     meta,
		cache:    cache,
		reporter: reporter,
	}
}

func (b *LoaderBootstrapper) Kind() core.LoaderKind {
	return b.meta.Kind()
}

func (b *LoaderBootstrapper) State() LoaderState {
	return b.state
}

func (b *LoaderBootstrapper) setState(s LoaderState) {
	b.state = s
	core.Logf(b.reporter, core.StageLoader, "%s: %s", b.Kind().FriendlyName, s)
}

// DetectExisting returns the newest installed profile for mcVersion whose libraries are
// all valid, or nil when there is none.
func (b *LoaderBootstrapper) DetectExisting(ctx context.Context, mcVersion string, layout fileio.Layout) (*core.LoaderProfile, error) {
	kind := b.Kind()
	versions, err := fileio.FindLoaderProfiles(layout, kind, mcVersion)
	if err != nil {
		return nil, &core.StorageError{Path: layout.VersionsDir(), Err: err}
	}

	for _, lv := range versions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := kind.ProfileName(lv, mcVersion)
		profile, err := fileio.LoadLoaderProfile(kind, layout.VersionJson(name))
		if err != nil {
			core.Logf(b.reporter, core.StageLoader, "Ignoring %s: %v", name, err)
			continue
		}

		ok, err := b.librariesValid(ctx, profile, layout)
		if err != nil {
			return nil, err
		}
		if ok {
			b.state = LoaderReady
			core.Logf(b.reporter, core.StageLoader, "Found installed %s %s", kind.FriendlyName, profile.LoaderVersion)
			return &profile, nil
		}
		core.Logf(b.reporter, core.StageLoader, "Installed %s %s is missing libraries", kind.FriendlyName, profile.LoaderVersion)
	}

	b.state = LoaderAbsent
	return nil, nil
}

func (b *LoaderBootstrapper) librariesValid(ctx context.Context, profile core.LoaderProfile, layout fileio.Layout) (bool, error) {
	for _, lib := range profile.Libraries {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		rel, err := core.MavenPath(lib.Coordinate)
		if err != nil {
			return false, nil
		}
		valid, err := b.cache.Valid(layout.Library(rel), lib.Checksum)
		if err != nil {
			return false, err
		}
		if !valid {
			return false, nil
		}
	}
	return true, nil
}

// Install fetches the latest loader version's profile for mcVersion, persists it and
// downloads all of its libraries. Any failure aborts the installation.
func (b *LoaderBootstrapper) Install(ctx context.Context, mcVersion string, layout fileio.Layout) (*core.LoaderProfile, error) {
	b.state = LoaderAbsent
	kind := b.Kind()

	loaderVersion, err := b.meta.LatestLoaderVersion(ctx)
	if err != nil {
		return nil, err
	}
	b.setState(LoaderMetadataFetched)

	raw, profile, err := b.meta.FetchProfile(ctx, mcVersion, loaderVersion)
	if err != nil {
		return nil, err
	}
	if profile.InheritsFrom != mcVersion {
		return nil, &core.MalformedResponseError{
			Reason: fmt.Sprintf("profile %s inherits from %s, expected %s", profile.ID, profile.InheritsFrom, mcVersion),
		}
	}

	name := kind.ProfileName(profile.LoaderVersion, mcVersion)
	profileFile := layout.VersionJson(name)
	if err := fileio.WriteFileAtomic(profileFile, raw); err != nil {
		return nil, &core.StorageError{Path: profileFile, Err: err}
	}
	b.setState(LoaderProfileWritten)

	b.setState(LoaderLibrariesVerifying)
	for i, lib := range profile.Libraries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		repo := lib.URL
		if repo == "" {
			repo = MojangLibrariesURL
		}
		libURL, err := core.MavenURL(repo, lib.Coordinate)
		if err != nil {
			return nil, err
		}
		rel, err := core.MavenPath(lib.Coordinate)
		if err != nil {
			return nil, err
		}
		if _, err := b.cache.Ensure(ctx, libURL, layout.Library(rel), lib.Checksum); err != nil {
			return nil, fmt.Errorf("loader library %s: %w", lib.Coordinate, err)
		}
		core.Progress(b.reporter, core.StageLoader, i+1, len(profile.Libraries))
	}

	b.setState(LoaderReady)
	return &profile, nil
}

// Ensure returns the installed profile, installing the loader when none is valid
func (b *LoaderBootstrapper) Ensure(ctx context.Context, mcVersion string, layout fileio.Layout) (*core.LoaderProfile, error) {
	profile, err := b.DetectExisting(ctx, mcVersion, layout)
	if err != nil || profile != nil {
		return profile, err
	}
	core.Logf(b.reporter, core.StageLoader, "Installing %s for %s...", b.Kind().FriendlyName, mcVersion)
	return b.Install(ctx, mcVersion, layout)
}
