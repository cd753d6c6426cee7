package launcher

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/leocov-dev/launchwiz/config"
	"github.com/leocov-dev/launchwiz/core"
	"github.com/leocov-dev/launchwiz/fileio"
)

// VerifyReport lists the cached files of an installed version that are missing or corrupt
type VerifyReport struct {
	Checked int
	Invalid []string
}

func (r VerifyReport) OK() bool {
	return len(r.Invalid) == 0
}

// Verify checks an installed version against its persisted descriptor. It never uses
// the network; files without a declared checksum only need to exist.
func (l *Launcher) Verify(ctx context.Context, cfg config.LauncherConfig, versionID string) (VerifyReport, error) {
	var report VerifyReport
	layout := fileio.NewLayout(cfg.GameDirectory)
	cache := NewArtifactCache(nil, l.hashFormat)

	descriptorFile := layout.VersionJson(versionID)
	raw, err := os.ReadFile(descriptorFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return report, &core.VersionNotFoundError{ID: versionID}
		}
		return report, &core.StorageError{Path: descriptorFile, Err: err}
	}
	descriptor, err := core.ParseVersionDescriptor(raw)
	if err != nil {
		return report, &core.MalformedResponseError{URL: descriptorFile, Reason: "invalid version descriptor", Err: err}
	}
	if descriptor.ID == "" {
		descriptor.ID = versionID
	}

	check := func(path, checksum string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		report.Checked++
		valid, err := cache.Valid(path, checksum)
		if err != nil {
			return err
		}
		if !valid {
			report.Invalid = append(report.Invalid, path)
		}
		return nil
	}

	if err := check(layout.VersionJar(descriptor.ID), descriptor.Client.Checksum); err != nil {
		return report, err
	}
	for _, lib := range descriptor.LibrariesFor(l.osName) {
		if lib.URL == "" {
			continue
		}
		rel, err := lib.RelativePath()
		if err != nil {
			return report, err
		}
		if err := check(layout.Library(rel), lib.Checksum); err != nil {
			return report, err
		}
	}

	indexFile := layout.AssetIndex(descriptor.AssetIndex.ID)
	invalidBefore := len(report.Invalid)
	if err := check(indexFile, descriptor.AssetIndex.Checksum); err != nil {
		return report, err
	}
	if len(report.Invalid) > invalidBefore {
		return report, nil
	}
	index, err := fileio.LoadAssetIndex(indexFile)
	if err != nil {
		report.Invalid = append(report.Invalid, indexFile)
		return report, nil
	}
	for _, obj := range index.Objects {
		if err := check(layout.AssetObject(obj.ObjectPath()), obj.Hash); err != nil {
			return report, err
		}
	}
	return report, nil
}

// Repair removes every file Verify rejects and prepares the version again. Assets are
// only fetched when absent, so corrupt objects have to go before the fetch stages run.
func (l *Launcher) Repair(ctx context.Context, cfg config.LauncherConfig, versionID string) (VerifyReport, LaunchPlan, error) {
	report, err := l.Verify(ctx, cfg, versionID)
	if err != nil {
		return report, LaunchPlan{}, err
	}
	for _, path := range report.Invalid {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return report, LaunchPlan{}, &core.StorageError{Path: path, Err: err}
		}
	}
	core.Logf(l.reporter, core.StageManifest, "Removed %d invalid files, preparing %s again...", len(report.Invalid), versionID)

	plan, err := l.Prepare(ctx, cfg, versionID)
	return report, plan, err
}
