package fileio

import (
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slices"
)

// ListModJars returns the file names of enabled mods (*.jar) in the mods directory.
// Disabled mods keep a .disabled suffix and are not listed.
func ListModJars(modsDir string) ([]string, error) {
	entries, err := os.ReadDir(modsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var jars []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".jar") {
			jars = append(jars, entry.Name())
		}
	}
	slices.Sort(jars)
	return jars, nil
}

func HasMods(modsDir string) (bool, error) {
	jars, err := ListModJars(modsDir)
	return len(jars) > 0, err
}
