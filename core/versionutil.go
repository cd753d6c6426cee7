package core

import (
	"github.com/unascribed/FlexVer/go/flexver"
)

// SortAndDedupeVersions sorts ascending with FlexVer ordering and drops duplicates
func SortAndDedupeVersions(versions []string) []string {
	flexver.VersionSlice(versions).Sort()
	// Deduplicate the sorted array
	if len(versions) > 0 {
		j := 0
		for i := 1; i < len(versions); i++ {
			if versions[i] != versions[j] {
				j++
				versions[j] = versions[i]
			}
		}
		versions = versions[:j+1]
	}
	return versions
}

// SortDescending returns a new slice, newest version first
func SortDescending(versions []string) []string {
	sorted := SortAndDedupeVersions(append([]string(nil), versions...))
	for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
		sorted[i], sorted[j] = sorted[j], sorted[i]
	}
	return sorted
}
