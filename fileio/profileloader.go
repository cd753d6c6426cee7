package fileio

import (
	"fmt"
	"os"

	"github.com/leocov-dev/launchwiz/core"
)

// LoadLoaderProfile attempts to load an installed loader profile from a path
func LoadLoaderProfile(kind core.LoaderKind, profileFile string) (core.LoaderProfile, error) {
	raw, err := os.ReadFile(profileFile)
	if err != nil {
		return core.LoaderProfile{}, err
	}
	profile, err := core.ParseLoaderProfile(kind, raw)
	if err != nil {
		return core.LoaderProfile{}, fmt.Errorf("failed to read loader profile %s: %w", profileFile, err)
	}
	return profile, nil
}

// FindLoaderProfiles lists the loader versions that have a profile folder for mcVersion,
// newest first.
func FindLoaderProfiles(layout Layout, kind core.LoaderKind, mcVersion string) ([]string, error) {
	entries, err := os.ReadDir(layout.VersionsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var versions []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if v, ok := kind.LoaderVersionFromName(entry.Name(), mcVersion); ok {
			versions = append(versions, v)
		}
	}
	return core.SortDescending(versions), nil
}
