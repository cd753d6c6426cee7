package launcher

import (
	"context"
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"

	"github.com/leocov-dev/launchwiz/config"
	"github.com/leocov-dev/launchwiz/core"
	"github.com/leocov-dev/launchwiz/fileio"
)

// Launcher runs the resolve, fetch, compose and launch stages for one game directory
// at a time. It holds no configuration of its own; each call receives it.
type Launcher struct {
	client     *resty.Client
	endpoints  Endpoints
	reporter   core.Reporter
	hashFormat string
	osName     string

	// Composer is used for Compose and Launch; its output writers may be replaced
	Composer *LaunchComposer
}

func New(opts ...Option) *Launcher {
	l := &Launcher{
		reporter:   core.NopReporter,
		hashFormat: core.DefaultHashFormat,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.osName == "" {
		l.osName = core.CurrentOS()
	}
	l.Composer = NewLaunchComposer(l.osName)
	return l
}

func (l *Launcher) httpClient(cfg config.LauncherConfig) *resty.Client {
	if l.client != nil {
		return l.client
	}
	return core.NewHTTPClient(cfg.Timeout(), cfg.MaxRetries)
}

func (l *Launcher) Resolver(cfg config.LauncherConfig) *core.ManifestResolver {
	return core.NewManifestResolver(l.httpClient(cfg), l.endpoints.VersionManifest)
}

// Bootstrapper returns a loader bootstrapper for the configured mod loader
func (l *Launcher) Bootstrapper(cfg config.LauncherConfig) *LoaderBootstrapper {
	client := l.httpClient(cfg)
	kind := cfg.Loader()
	meta := core.NewLoaderMeta(client, kind, l.endpoints.LoaderMeta[kind.Name])
	return NewLoaderBootstrapper(meta, NewArtifactCache(client, l.hashFormat), l.reporter)
}

// Prepare resolves versionID and brings every artifact needed to launch it into the
// game directory, installing the mod loader when mods are present.
func (l *Launcher) Prepare(ctx context.Context, cfg config.LauncherConfig, versionID string) (LaunchPlan, error) {
	if err := cfg.Validate(); err != nil {
		return LaunchPlan{}, fmt.Errorf("invalid configuration: %w", err)
	}

	client := l.httpClient(cfg)
	layout := fileio.NewLayout(cfg.GameDirectory)
	cache := NewArtifactCache(client, l.hashFormat)
	fetcher := NewDependencyFetcher(cache, l.reporter, l.endpoints.AssetBase, cfg.ConcurrentDownloads)

	core.Logf(l.reporter, core.StageManifest, "Resolving version %s...", versionID)
	resolved, err := core.NewManifestResolver(client, l.endpoints.VersionManifest).Resolve(ctx, versionID)
	if err != nil {
		return LaunchPlan{}, core.WrapStage(core.StageManifest, err)
	}
	mcVersion := resolved.Entry.ID
	if resolved.Descriptor.ID == "" {
		resolved.Descriptor.ID = mcVersion
	}
	descriptorFile := layout.VersionJson(mcVersion)
	if err := fileio.WriteFileAtomic(descriptorFile, resolved.Raw); err != nil {
		return LaunchPlan{}, core.WrapStage(core.StageManifest, &core.StorageError{Path: descriptorFile, Err: err})
	}

	core.Logf(l.reporter, core.StageClient, "Ensuring client jar...")
	if err := fetcher.FetchClient(ctx, resolved.Descriptor, layout); err != nil {
		return LaunchPlan{}, core.WrapStage(core.StageClient, err)
	}

	libraries := resolved.Descriptor.LibrariesFor(l.osName)
	core.Logf(l.reporter, core.StageLibraries, "Ensuring %d libraries...", len(libraries))
	if err := fetcher.FetchLibraries(ctx, libraries, layout); err != nil {
		return LaunchPlan{}, core.WrapStage(core.StageLibraries, err)
	}

	core.Logf(l.reporter, core.StageAssets, "Ensuring assets (index %s)...", resolved.Descriptor.AssetIndex.ID)
	report, err := fetcher.FetchAssets(ctx, resolved.Descriptor.AssetIndex, layout)
	if err != nil {
		return LaunchPlan{}, core.WrapStage(core.StageAssets, err)
	}
	if len(report.Failed) > 0 {
		core.Logf(l.reporter, core.StageAssets, "%d assets could not be downloaded; continuing", len(report.Failed))
	}

	var strategy LaunchStrategy = VanillaStrategy{}
	hasMods, err := fileio.HasMods(layout.ModsDir())
	if err != nil {
		return LaunchPlan{}, core.WrapStage(core.StageLoader, &core.StorageError{Path: layout.ModsDir(), Err: err})
	}
	if hasMods {
		bootstrapper := l.Bootstrapper(cfg)
		core.Logf(l.reporter, core.StageLoader, "Mods found, preparing %s...", bootstrapper.Kind().FriendlyName)
		profile, err := bootstrapper.Ensure(ctx, mcVersion, layout)
		if err != nil {
			return LaunchPlan{}, core.WrapStage(core.StageLoader, err)
		}
		strategy = LoaderStrategy{Profile: *profile}
	}

	plan, err := l.Composer.Compose(cfg, resolved.Entry, resolved.Descriptor, strategy, layout)
	if err != nil {
		return LaunchPlan{}, core.WrapStage(core.StageCompose, err)
	}
	core.Logf(l.reporter, core.StageCompose, "Launch plan ready, main class %s", plan.MainClass)
	return plan, nil
}

// Run prepares versionID and starts the game. The process is not supervised.
func (l *Launcher) Run(ctx context.Context, cfg config.LauncherConfig, versionID string) (LaunchPlan, *os.Process, error) {
	plan, err := l.Prepare(ctx, cfg, versionID)
	if err != nil {
		return plan, nil, err
	}
	if err := ctx.Err(); err != nil {
		return plan, nil, core.WrapStage(core.StageLaunch, err)
	}
	proc, err := l.Composer.Launch(plan)
	if err != nil {
		return plan, nil, core.WrapStage(core.StageLaunch, err)
	}
	core.Logf(l.reporter, core.StageLaunch, "Started %s (pid %d)", plan.MainClass, proc.Pid)
	return plan, proc, nil
}
