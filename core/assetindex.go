package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"golang.org/x/exp/slices"
)

const AssetBaseURL = "https://resources.download.minecraft.net"

type assetIndexJson struct {
	Objects map[string]struct {
		Hash string `json:"hash"`
		Size int64  `json:"size"`
	} `json:"objects"`
}

type AssetObject struct {
	Name string
	Hash string
	Size int64
}

// ObjectPath is the shard-relative storage path of the object: <hh>/<hash>
func (a AssetObject) ObjectPath() string {
	return path.Join(a.Hash[:2], a.Hash)
}

func (a AssetObject) URL(base string) string {
	return strings.TrimSuffix(base, "/") + "/" + a.ObjectPath()
}

// AssetIndex holds the objects of an asset index, sorted by logical name
type AssetIndex struct {
	Objects []AssetObject
}

func ParseAssetIndex(raw []byte) (AssetIndex, error) {
	var index AssetIndex

	var doc assetIndexJson
	if err := json.Unmarshal(raw, &doc); err != nil {
		return index, err
	}
	if doc.Objects == nil {
		return index, errors.New("missing objects")
	}

	index.Objects = make([]AssetObject, 0, len(doc.Objects))
	for name, obj := range doc.Objects {
		hash := strings.ToLower(obj.Hash)
		if !isHexHash(hash) {
			return AssetIndex{}, fmt.Errorf("asset %s has an invalid hash %q", name, obj.Hash)
		}
		index.Objects = append(index.Objects, AssetObject{
			Name: name,
			Hash: hash,
			Size: obj.Size,
		})
	}
	slices.SortFunc(index.Objects, func(a, b AssetObject) int {
		return strings.Compare(a.Name, b.Name)
	})

	return index, nil
}

// isHexHash keeps object paths inside the objects directory
func isHexHash(h string) bool {
	if len(h) < 2 {
		return false
	}
	for _, c := range h {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
