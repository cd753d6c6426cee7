package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
)

type LoaderKind struct {
	Name          string
	FriendlyName  string
	ProfilePrefix string
	MetaURL       string
}

// LoaderKinds lists the mod loaders that can be bootstrapped, keyed by configuration name
var LoaderKinds = map[string]LoaderKind{
	"fabric": {
		Name:          "fabric",
		FriendlyName:  "Fabric loader",
		ProfilePrefix: "fabric-loader",
		MetaURL:       "https://meta.fabricmc.net/v2",
	},
	"quilt": {
		Name:          "quilt",
		FriendlyName:  "Quilt loader",
		ProfilePrefix: "quilt-loader",
		MetaURL:       "https://meta.quiltmc.org/v3",
	},
}

const DefaultLoader = "fabric"

// ProfileName is the deterministic folder and file name of an installed loader profile
func (k LoaderKind) ProfileName(loaderVersion, mcVersion string) string {
	return k.ProfilePrefix + "-" + loaderVersion + "-" + mcVersion
}

// LoaderVersionFromName extracts the loader version from a profile name built for mcVersion
func (k LoaderKind) LoaderVersionFromName(name, mcVersion string) (string, bool) {
	prefix := k.ProfilePrefix + "-"
	suffix := "-" + mcVersion
	if len(name) <= len(prefix)+len(suffix) {
		return "", false
	}
	if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, suffix) {
		return "", false
	}
	return name[len(prefix) : len(name)-len(suffix)], true
}

// LoaderProfile is the typed form of a loader profile document. Libraries carry the
// repository base URL in URL; the artifact location is MavenURL(URL, Coordinate).
type LoaderProfile struct {
	ID            string
	InheritsFrom  string
	LoaderVersion string
	MainClass     string
	Libraries     []LibraryRef
	ExtraJvmArgs  []string
}

type loaderProfileJson struct {
	ID           string `json:"id"`
	InheritsFrom string `json:"inheritsFrom"`
	MainClass    string `json:"mainClass"`
	Arguments    struct {
		Jvm []json.RawMessage `json:"jvm"`
	} `json:"arguments"`
	Libraries []struct {
		Name string `json:"name"`
		URL  string `json:"url"`
		Sha1 string `json:"sha1"`
	} `json:"libraries"`
}

// ParseLoaderProfile parses a profile document once; nothing downstream looks at the JSON again.
// Conditional (object) JVM arguments are not supported by loader profiles and are skipped.
func ParseLoaderProfile(kind LoaderKind, raw []byte) (LoaderProfile, error) {
	var profile LoaderProfile

	var doc loaderProfileJson
	if err := json.Unmarshal(raw, &doc); err != nil {
		return profile, err
	}
	if doc.MainClass == "" {
		return profile, errors.New("missing mainClass")
	}
	if doc.InheritsFrom == "" {
		return profile, errors.New("missing inheritsFrom")
	}
	loaderVersion, ok := kind.LoaderVersionFromName(doc.ID, doc.InheritsFrom)
	if !ok {
		return profile, fmt.Errorf("profile id %q is not a %s profile for %s", doc.ID, kind.FriendlyName, doc.InheritsFrom)
	}

	profile.ID = doc.ID
	profile.InheritsFrom = doc.InheritsFrom
	profile.LoaderVersion = loaderVersion
	profile.MainClass = doc.MainClass

	for _, arg := range doc.Arguments.Jvm {
		var s string
		if err := json.Unmarshal(arg, &s); err == nil {
			profile.ExtraJvmArgs = append(profile.ExtraJvmArgs, s)
		}
	}

	for _, lib := range doc.Libraries {
		if _, err := MavenPath(lib.Name); err != nil {
			return LoaderProfile{}, err
		}
		profile.Libraries = append(profile.Libraries, LibraryRef{
			Coordinate: lib.Name,
			URL:        lib.URL,
			Checksum:   lib.Sha1,
		})
	}

	return profile, nil
}

type loaderVersionJson struct {
	Version string `json:"version"`
	Stable  bool   `json:"stable"`
}

// LoaderMeta talks to a loader metadata service (meta.fabricmc.net and compatible)
type LoaderMeta struct {
	client  *resty.Client
	kind    LoaderKind
	metaURL string
}

func NewLoaderMeta(client *resty.Client, kind LoaderKind, metaURL string) *LoaderMeta {
	if metaURL == "" {
		metaURL = kind.MetaURL
	}
	return &LoaderMeta{
		client:  client,
		kind:    kind,
		metaURL: strings.TrimSuffix(metaURL, "/"),
	}
}

func (m *LoaderMeta) Kind() LoaderKind {
	return m.kind
}

// LatestLoaderVersion returns the first entry of the loader version list. The service
// orders the list newest first; no other recency check is made.
func (m *LoaderMeta) LatestLoaderVersion(ctx context.Context) (string, error) {
	listURL := m.metaURL + "/versions/loader"
	body, err := m.fetch(ctx, listURL)
	if err != nil {
		return "", err
	}

	var versions []loaderVersionJson
	if err := json.Unmarshal(body, &versions); err != nil {
		return "", &MalformedResponseError{URL: listURL, Reason: "invalid loader version list", Err: err}
	}
	if len(versions) == 0 || versions[0].Version == "" {
		return "", &MalformedResponseError{URL: listURL, Reason: "empty loader version list"}
	}
	return versions[0].Version, nil
}

// FetchProfile downloads the profile document for (mcVersion, loaderVersion) and
// returns both the raw bytes and the parsed profile.
func (m *LoaderMeta) FetchProfile(ctx context.Context, mcVersion, loaderVersion string) ([]byte, LoaderProfile, error) {
	profileURL := fmt.Sprintf("%s/versions/loader/%s/%s/profile/json",
		m.metaURL, url.PathEscape(mcVersion), url.PathEscape(loaderVersion))

	body, err := m.fetch(ctx, profileURL)
	if err != nil {
		return nil, LoaderProfile{}, err
	}

	profile, err := ParseLoaderProfile(m.kind, body)
	if err != nil {
		return nil, LoaderProfile{}, &MalformedResponseError{URL: profileURL, Reason: "invalid loader profile", Err: err}
	}
	return body, profile, nil
}

// fetch reports unreachable or failing loader endpoints as download failures
func (m *LoaderMeta) fetch(ctx context.Context, docURL string) ([]byte, error) {
	body, err := fetchDocument(ctx, m.client, docURL)
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &DownloadFailedError{URL: docURL, Reason: netErr.Err.Error()}
	}
	return body, err
}
