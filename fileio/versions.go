package fileio

import (
	"os"

	"golang.org/x/exp/slices"

	"github.com/leocov-dev/launchwiz/core"
)

// InstalledVersions lists the folders under versions/ that hold a version document,
// loader profiles included.
func InstalledVersions(layout Layout) ([]string, error) {
	entries, err := os.ReadDir(layout.VersionsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var ids []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		exists, err := FileExists(layout.VersionJson(entry.Name()))
		if err != nil {
			return nil, err
		}
		if exists {
			ids = append(ids, entry.Name())
		}
	}
	slices.Sort(ids)
	return ids, nil
}

// RemoveVersion deletes the folder of mcVersion and every loader profile built on it.
// Libraries and assets are shared between versions and stay in place.
func RemoveVersion(layout Layout, mcVersion string) ([]string, error) {
	entries, err := os.ReadDir(layout.VersionsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var removed []string
	for _, entry := range entries {
		if !entry.IsDir() || !isVersionFolder(entry.Name(), mcVersion) {
			continue
		}
		if err := os.RemoveAll(layout.VersionDir(entry.Name())); err != nil {
			return removed, err
		}
		removed = append(removed, entry.Name())
	}
	return removed, nil
}

func isVersionFolder(name, mcVersion string) bool {
	if name == mcVersion {
		return true
	}
	for _, kind := range core.LoaderKinds {
		if _, ok := kind.LoaderVersionFromName(name, mcVersion); ok {
			return true
		}
	}
	return false
}
