package cmdshared

import (
	"errors"
	"fmt"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/viper"
	"gopkg.in/dixonwille/wmenu.v4"

	"github.com/leocov-dev/launchwiz/core"
)

const pickerSize = 10

// Used to implement interface for fuzzy matching
type VersionList []core.VersionCatalogEntry

func (v VersionList) String(i int) string {
	return v[i].ID
}

func (v VersionList) Len() int {
	return len(v)
}

// SuggestVersions returns up to max catalog ids that look like id
func SuggestVersions(id string, catalog core.VersionCatalog, max int) []string {
	matches := fuzzy.FindFrom(id, VersionList(catalog.Versions))
	var out []string
	for _, m := range matches {
		if len(out) == max {
			break
		}
		out = append(out, catalog.Versions[m.Index].ID)
	}
	return out
}

// PickVersion asks the user to choose among the newest entries of the given kinds.
// In non-interactive mode the latest release is returned. The bool result is true when
// the user cancelled.
func PickVersion(catalog core.VersionCatalog, kinds []core.VersionKind) (bool, string, error) {
	if viper.GetBool("non-interactive") {
		if catalog.Latest.Release == "" {
			return false, "", errors.New("the version manifest does not name a latest release")
		}
		fmt.Printf("Using latest release %s (non-interactive mode)\n", catalog.Latest.Release)
		return false, catalog.Latest.Release, nil
	}

	entries := catalog.Filter(kinds...)
	if len(entries) == 0 {
		return false, "", errors.New("no versions available")
	}
	if len(entries) > pickerSize {
		entries = entries[:pickerSize]
	}

	menu := wmenu.NewMenu("Choose a version:")
	menu.Option("Cancel", nil, false, nil)
	for i, v := range entries {
		menu.Option(fmt.Sprintf("%s (%s)", v.ID, v.Kind), v.ID, i == 0, nil)
	}

	var picked string
	var cancelled bool
	menu.Action(func(menuRes []wmenu.Opt) error {
		if len(menuRes) != 1 || menuRes[0].Value == nil {
			fmt.Println("Cancelled!")
			cancelled = true
			return nil
		}
		var ok bool
		picked, ok = menuRes[0].Value.(string)
		if !ok {
			return errors.New("error converting interface from wmenu")
		}
		return nil
	})
	if err := menu.Run(); err != nil {
		return false, "", err
	}
	return cancelled, picked, nil
}
