package fileio

import (
	"fmt"
	"os"

	"github.com/leocov-dev/launchwiz/core"
)

// LoadAssetIndex attempts to load an asset index document from a path
func LoadAssetIndex(indexFile string) (core.AssetIndex, error) {
	raw, err := os.ReadFile(indexFile)
	if err != nil {
		return core.AssetIndex{}, err
	}
	index, err := core.ParseAssetIndex(raw)
	if err != nil {
		return core.AssetIndex{}, fmt.Errorf("failed to read asset index %s: %w", indexFile, err)
	}
	return index, nil
}
