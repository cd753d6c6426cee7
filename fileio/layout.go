package fileio

import (
	"path/filepath"
)

// Layout resolves the on-disk locations inside a game directory
type Layout struct {
	GameDir string
}

func NewLayout(gameDir string) Layout {
	return Layout{GameDir: gameDir}
}

func (l Layout) VersionsDir() string {
	return filepath.Join(l.GameDir, "versions")
}

func (l Layout) VersionDir(id string) string {
	return filepath.Join(l.VersionsDir(), id)
}

// VersionJar is versions/<id>/<id>.jar
func (l Layout) VersionJar(id string) string {
	return filepath.Join(l.VersionDir(id), id+".jar")
}

// VersionJson is versions/<id>/<id>.json, used for vanilla descriptors and loader profiles alike
func (l Layout) VersionJson(id string) string {
	return filepath.Join(l.VersionDir(id), id+".json")
}

// Library converts a forward-slash repository path into its location under libraries/
func (l Layout) Library(relPath string) string {
	return filepath.Join(l.GameDir, "libraries", filepath.FromSlash(relPath))
}

func (l Layout) AssetsDir() string {
	return filepath.Join(l.GameDir, "assets")
}

func (l Layout) AssetIndex(id string) string {
	return filepath.Join(l.AssetsDir(), "indexes", id+".json")
}

// AssetObject takes the shard-relative object path (<hh>/<hash>)
func (l Layout) AssetObject(objectPath string) string {
	return filepath.Join(l.AssetsDir(), "objects", filepath.FromSlash(objectPath))
}

func (l Layout) ModsDir() string {
	return filepath.Join(l.GameDir, "mods")
}
