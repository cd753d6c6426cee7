package core

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
	"golang.org/x/exp/slices"
)

const VersionManifestURL = "https://launchermeta.mojang.com/mc/game/version_manifest.json"

// Aliases accepted by ManifestResolver.Resolve in place of a version id
const (
	LatestRelease  = "latest"
	LatestSnapshot = "latest-snapshot"
)

type VersionKind string

const (
	KindRelease  VersionKind = "release"
	KindSnapshot VersionKind = "snapshot"
	KindOldBeta  VersionKind = "old_beta"
	KindOldAlpha VersionKind = "old_alpha"
)

type versionJson struct {
	Latest struct {
		Release  string `json:"release"`
		Snapshot string `json:"snapshot"`
	} `json:"latest"`
	Versions []versionDef `json:"versions"`
}

type versionDef struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	URL         string `json:"url"`
	Time        string `json:"time"`
	ReleaseTime string `json:"releaseTime"`
}

type VersionCatalogEntry struct {
	ID   string
	Kind VersionKind
	URL  string
}

type VersionCatalog struct {
	Latest struct {
		Release  string
		Snapshot string
	}
	Versions []VersionCatalogEntry
}

// IDs returns every version id in catalog order
func (c VersionCatalog) IDs() []string {
	ids := make([]string, len(c.Versions))
	for i, v := range c.Versions {
		ids[i] = v.ID
	}
	return ids
}

// Filter keeps entries whose kind is in kinds, preserving order
func (c VersionCatalog) Filter(kinds ...VersionKind) []VersionCatalogEntry {
	var out []VersionCatalogEntry
	for _, v := range c.Versions {
		if slices.Contains(kinds, v.Kind) {
			out = append(out, v)
		}
	}
	return out
}

// ResolvedVersion is a catalog entry together with its parsed descriptor and the
// raw document it was parsed from.
type ResolvedVersion struct {
	Entry      VersionCatalogEntry
	Descriptor VersionDescriptor
	Raw        []byte
}

// ManifestResolver turns version ids into version descriptors. It never retries on
// its own; the resty client carries the retry policy.
type ManifestResolver struct {
	client      *resty.Client
	manifestURL string
}

func NewManifestResolver(client *resty.Client, manifestURL string) *ManifestResolver {
	if manifestURL == "" {
		manifestURL = VersionManifestURL
	}
	return &ManifestResolver{
		client:      client,
		manifestURL: manifestURL,
	}
}

func (m *ManifestResolver) FetchCatalog(ctx context.Context) (VersionCatalog, error) {
	var catalog VersionCatalog

	body, err := fetchDocument(ctx, m.client, m.manifestURL)
	if err != nil {
		return catalog, err
	}

	var info versionJson
	if err := json.Unmarshal(body, &info); err != nil {
		return catalog, &MalformedResponseError{URL: m.manifestURL, Reason: "invalid version manifest", Err: err}
	}

	catalog.Latest.Release = info.Latest.Release
	catalog.Latest.Snapshot = info.Latest.Snapshot
	catalog.Versions = make([]VersionCatalogEntry, 0, len(info.Versions))
	for _, v := range info.Versions {
		catalog.Versions = append(catalog.Versions, VersionCatalogEntry{
			ID:   v.ID,
			Kind: VersionKind(v.Type),
			URL:  v.URL,
		})
	}

	return catalog, nil
}

// ListVersions returns the catalog entries in server order (newest first)
func (m *ManifestResolver) ListVersions(ctx context.Context) ([]VersionCatalogEntry, error) {
	catalog, err := m.FetchCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Versions, nil
}

// Resolve re-fetches the catalog, finds versionID in it and fetches its descriptor
func (m *ManifestResolver) Resolve(ctx context.Context, versionID string) (ResolvedVersion, error) {
	var resolved ResolvedVersion

	catalog, err := m.FetchCatalog(ctx)
	if err != nil {
		return resolved, err
	}

	wanted := versionID
	switch versionID {
	case LatestRelease:
		wanted = catalog.Latest.Release
	case LatestSnapshot:
		wanted = catalog.Latest.Snapshot
	}

	i := slices.IndexFunc(catalog.Versions, func(v VersionCatalogEntry) bool {
		return v.ID == wanted
	})
	if wanted == "" || i < 0 {
		return resolved, &VersionNotFoundError{ID: versionID}
	}
	entry := catalog.Versions[i]

	body, err := fetchDocument(ctx, m.client, entry.URL)
	if err != nil {
		return resolved, err
	}

	descriptor, err := ParseVersionDescriptor(body)
	if err != nil {
		return resolved, &MalformedResponseError{URL: entry.URL, Reason: "invalid version descriptor", Err: err}
	}

	resolved.Entry = entry
	resolved.Descriptor = descriptor
	resolved.Raw = body
	return resolved, nil
}

func fetchDocument(ctx context.Context, client *resty.Client, url string) ([]byte, error) {
	resp, err := client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(url)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	if !resp.IsSuccess() {
		return nil, &NetworkError{URL: url, Err: fmt.Errorf("unexpected status %s", resp.Status())}
	}
	return resp.Body(), nil
}
