package core

import (
	"encoding/json"
	"errors"
	"runtime"
)

type descriptorJson struct {
	ID        string        `json:"id"`
	Type      string        `json:"type"`
	MainClass string        `json:"mainClass"`
	Libraries []libraryJson `json:"libraries"`
	Downloads struct {
		Client *downloadJson `json:"client"`
	} `json:"downloads"`
	AssetIndex *struct {
		ID   string `json:"id"`
		URL  string `json:"url"`
		Sha1 string `json:"sha1"`
	} `json:"assetIndex"`
}

type libraryJson struct {
	Name      string `json:"name"`
	Downloads *struct {
		Artifact *downloadJson `json:"artifact"`
	} `json:"downloads"`
	Rules []ruleJson `json:"rules"`
}

type downloadJson struct {
	URL  string `json:"url"`
	Path string `json:"path"`
	Sha1 string `json:"sha1"`
	Size int64  `json:"size"`
}

type ruleJson struct {
	Action string `json:"action"`
	OS     *struct {
		Name string `json:"name"`
	} `json:"os"`
}

// Download is a single downloadable file declared by a descriptor
type Download struct {
	URL      string
	Path     string
	Checksum string
	Size     int64
}

type AssetIndexRef struct {
	ID       string
	URL      string
	Checksum string
}

// LibraryRule is a Mojang library rule. An empty OS matches every platform.
type LibraryRule struct {
	Action string
	OS     string
}

type LibraryRef struct {
	Coordinate string
	// URL is empty for libraries that carry nothing to download (natives-only entries)
	URL      string
	Path     string
	Checksum string
	Rules    []LibraryRule
}

// RelativePath is the declared artifact path, or the maven path of the coordinate
func (l LibraryRef) RelativePath() (string, error) {
	if l.Path != "" {
		return l.Path, nil
	}
	return MavenPath(l.Coordinate)
}

// AllowedOn evaluates the library rules for a Mojang OS name (windows, osx, linux)
func (l LibraryRef) AllowedOn(osName string) bool {
	if len(l.Rules) == 0 {
		return true
	}
	allowed := false
	for _, rule := range l.Rules {
		if rule.OS == "" || rule.OS == osName {
			allowed = rule.Action == "allow"
		}
	}
	return allowed
}

type VersionDescriptor struct {
	ID         string
	Type       string
	MainClass  string
	Libraries  []LibraryRef
	Client     Download
	AssetIndex AssetIndexRef
}

// LibrariesFor returns the libraries whose rules allow osName, in declaration order
func (d VersionDescriptor) LibrariesFor(osName string) []LibraryRef {
	libs := make([]LibraryRef, 0, len(d.Libraries))
	for _, lib := range d.Libraries {
		if lib.AllowedOn(osName) {
			libs = append(libs, lib)
		}
	}
	return libs
}

// CurrentOS maps runtime.GOOS to the name used in library rules
func CurrentOS() string {
	switch runtime.GOOS {
	case "darwin":
		return "osx"
	default:
		return runtime.GOOS
	}
}

func ParseVersionDescriptor(raw []byte) (VersionDescriptor, error) {
	var descriptor VersionDescriptor

	var doc descriptorJson
	if err := json.Unmarshal(raw, &doc); err != nil {
		return descriptor, err
	}
	if doc.MainClass == "" {
		return descriptor, errors.New("missing mainClass")
	}
	if doc.Downloads.Client == nil || doc.Downloads.Client.URL == "" {
		return descriptor, errors.New("missing downloads.client.url")
	}
	if doc.AssetIndex == nil || doc.AssetIndex.URL == "" || doc.AssetIndex.ID == "" {
		return descriptor, errors.New("missing assetIndex")
	}

	descriptor.ID = doc.ID
	descriptor.Type = doc.Type
	descriptor.MainClass = doc.MainClass
	descriptor.Client = Download{
		URL:      doc.Downloads.Client.URL,
		Path:     doc.Downloads.Client.Path,
		Checksum: doc.Downloads.Client.Sha1,
		Size:     doc.Downloads.Client.Size,
	}
	descriptor.AssetIndex = AssetIndexRef{
		ID:       doc.AssetIndex.ID,
		URL:      doc.AssetIndex.URL,
		Checksum: doc.AssetIndex.Sha1,
	}

	descriptor.Libraries = make([]LibraryRef, 0, len(doc.Libraries))
	for _, lib := range doc.Libraries {
		ref := LibraryRef{Coordinate: lib.Name}
		if lib.Downloads != nil && lib.Downloads.Artifact != nil {
			ref.URL = lib.Downloads.Artifact.URL
			ref.Path = lib.Downloads.Artifact.Path
			ref.Checksum = lib.Downloads.Artifact.Sha1
		}
		for _, r := range lib.Rules {
			rule := LibraryRule{Action: r.Action}
			if r.OS != nil {
				rule.OS = r.OS.Name
			}
			ref.Rules = append(ref.Rules, rule)
		}
		descriptor.Libraries = append(descriptor.Libraries, ref)
	}

	return descriptor, nil
}
