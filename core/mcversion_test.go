package core

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDescriptor = `{
	"id": "1.20.1",
	"type": "release",
	"mainClass": "net.minecraft.client.main.Main",
	"downloads": {"client": {"url": "https://example.invalid/client.jar", "sha1": "abc", "size": 3}},
	"assetIndex": {"id": "5", "url": "https://example.invalid/5.json", "sha1": "def"},
	"libraries": [
		{"name": "com.mojang:logging:1.1.1", "downloads": {"artifact": {"path": "com/mojang/logging/1.1.1/logging-1.1.1.jar", "url": "https://libraries.minecraft.net/com/mojang/logging/1.1.1/logging-1.1.1.jar", "sha1": "832b8e6674a9b325a5175a3a6267dfaf34c85139"}}},
		{"name": "org.lwjgl:lwjgl:3.3.1:natives-macos", "downloads": {"artifact": {"path": "org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1-natives-macos.jar", "url": "https://libraries.minecraft.net/lwjgl-natives-macos.jar"}}, "rules": [{"action": "allow", "os": {"name": "osx"}}]}
	]
}`

func newManifestServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	hits := &atomic.Int32{}
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/manifest.json", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{
			"latest": {"release": "1.20.1", "snapshot": "23w31a"},
			"versions": [
				{"id": "23w31a", "type": "snapshot", "url": "` + srv.URL + `/v/23w31a.json"},
				{"id": "1.20.1", "type": "release", "url": "` + srv.URL + `/v/1.20.1.json"},
				{"id": "b1.7.3", "type": "old_beta", "url": "` + srv.URL + `/v/b1.7.3.json"}
			]
		}`))
	})
	mux.HandleFunc("/v/1.20.1.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testDescriptor))
	})
	mux.HandleFunc("/v/23w31a.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": "23w31a", "libraries": []}`))
	})
	mux.HandleFunc("/v/b1.7.3.json", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, hits
}

func TestListVersions(t *testing.T) {
	srv, hits := newManifestServer(t)
	resolver := NewManifestResolver(NewHTTPClient(5*time.Second, 0), srv.URL+"/manifest.json")

	versions, err := resolver.ListVersions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())

	assert.Equal(t, []VersionCatalogEntry{
		{ID: "23w31a", Kind: KindSnapshot, URL: srv.URL + "/v/23w31a.json"},
		{ID: "1.20.1", Kind: KindRelease, URL: srv.URL + "/v/1.20.1.json"},
		{ID: "b1.7.3", Kind: KindOldBeta, URL: srv.URL + "/v/b1.7.3.json"},
	}, versions)
}

func TestCatalogFilter(t *testing.T) {
	srv, _ := newManifestServer(t)
	resolver := NewManifestResolver(NewHTTPClient(5*time.Second, 0), srv.URL+"/manifest.json")

	catalog, err := resolver.FetchCatalog(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "1.20.1", catalog.Latest.Release)
	assert.Equal(t, []string{"23w31a", "1.20.1", "b1.7.3"}, catalog.IDs())

	releases := catalog.Filter(KindRelease)
	require.Len(t, releases, 1)
	assert.Equal(t, "1.20.1", releases[0].ID)
	assert.Len(t, catalog.Filter(KindRelease, KindSnapshot), 2)
}

func TestResolve(t *testing.T) {
	srv, hits := newManifestServer(t)
	resolver := NewManifestResolver(NewHTTPClient(5*time.Second, 0), srv.URL+"/manifest.json")

	resolved, err := resolver.Resolve(context.Background(), "1.20.1")
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())

	assert.Equal(t, KindRelease, resolved.Entry.Kind)
	assert.Equal(t, "net.minecraft.client.main.Main", resolved.Descriptor.MainClass)
	assert.Equal(t, "5", resolved.Descriptor.AssetIndex.ID)
	assert.Equal(t, "abc", resolved.Descriptor.Client.Checksum)
	assert.Len(t, resolved.Descriptor.Libraries, 2)
	assert.JSONEq(t, testDescriptor, string(resolved.Raw))
}

func TestResolveLatestAlias(t *testing.T) {
	srv, _ := newManifestServer(t)
	resolver := NewManifestResolver(NewHTTPClient(5*time.Second, 0), srv.URL+"/manifest.json")

	resolved, err := resolver.Resolve(context.Background(), LatestRelease)
	require.NoError(t, err)
	assert.Equal(t, "1.20.1", resolved.Entry.ID)
}

func TestResolveErrors(t *testing.T) {
	srv, _ := newManifestServer(t)
	resolver := NewManifestResolver(NewHTTPClient(5*time.Second, 0), srv.URL+"/manifest.json")

	t.Run("Unknown version", func(t *testing.T) {
		_, err := resolver.Resolve(context.Background(), "1.99")
		var notFound *VersionNotFoundError
		require.True(t, errors.As(err, &notFound))
		assert.Equal(t, "1.99", notFound.ID)
	})

	t.Run("Descriptor missing fields", func(t *testing.T) {
		_, err := resolver.Resolve(context.Background(), "23w31a")
		var malformed *MalformedResponseError
		assert.True(t, errors.As(err, &malformed))
	})

	t.Run("Descriptor not found", func(t *testing.T) {
		_, err := resolver.Resolve(context.Background(), "b1.7.3")
		var network *NetworkError
		require.True(t, errors.As(err, &network))
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("Catalog unreachable", func(t *testing.T) {
		broken := NewManifestResolver(NewHTTPClient(5*time.Second, 0), "http://127.0.0.1:1/manifest.json")
		_, err := broken.ListVersions(context.Background())
		var network *NetworkError
		assert.True(t, errors.As(err, &network))
	})
}

func TestFetchCatalogMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"versions": "nope"}`))
	}))
	defer srv.Close()

	resolver := NewManifestResolver(NewHTTPClient(5*time.Second, 0), srv.URL)
	_, err := resolver.FetchCatalog(context.Background())

	var malformed *MalformedResponseError
	assert.True(t, errors.As(err, &malformed))
}
