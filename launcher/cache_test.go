package launcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leocov-dev/launchwiz/core"
)

func TestEnsureIsIdempotent(t *testing.T) {
	u := newFakeUpstream(t)
	u.serve("/a.jar", "hello")
	cache := NewArtifactCache(u.client(), "")
	dest := filepath.Join(t.TempDir(), "nested", "dir", "a.jar")

	res, err := cache.Ensure(context.Background(), u.url("/a.jar"), dest, sha1Hex("hello"))
	require.NoError(t, err)
	assert.Equal(t, Fetched, res)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	res, err = cache.Ensure(context.Background(), u.url("/a.jar"), dest, sha1Hex("hello"))
	require.NoError(t, err)
	assert.Equal(t, AlreadyValid, res)
	assert.Equal(t, 1, u.hitCount("/a.jar"))
}

func TestEnsureExistingFileWithoutChecksum(t *testing.T) {
	u := newFakeUpstream(t)
	u.serve("/a.jar", "hello")
	cache := NewArtifactCache(u.client(), "")
	dest := filepath.Join(t.TempDir(), "a.jar")
	require.NoError(t, os.WriteFile(dest, []byte("anything"), 0o644))

	res, err := cache.Ensure(context.Background(), u.url("/a.jar"), dest, "")
	require.NoError(t, err)
	assert.Equal(t, AlreadyValid, res)
	assert.Equal(t, 0, u.hitCount("/a.jar"))
}

func TestEnsureRefetchesCorruptFile(t *testing.T) {
	u := newFakeUpstream(t)
	u.serve("/a.jar", "hello")
	cache := NewArtifactCache(u.client(), "")
	dest := filepath.Join(t.TempDir(), "a.jar")
	require.NoError(t, os.WriteFile(dest, []byte("corrupt"), 0o644))

	res, err := cache.Ensure(context.Background(), u.url("/a.jar"), dest, sha1Hex("hello"))
	require.NoError(t, err)
	assert.Equal(t, Fetched, res)
	assert.Equal(t, 1, u.hitCount("/a.jar"))

	valid, err := cache.Valid(dest, sha1Hex("hello"))
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestEnsureRejectsMismatchedBody(t *testing.T) {
	u := newFakeUpstream(t)
	u.serve("/a.jar", "tampered")
	cache := NewArtifactCache(u.client(), "")
	dir := t.TempDir()
	dest := filepath.Join(dir, "a.jar")

	_, err := cache.Ensure(context.Background(), u.url("/a.jar"), dest, sha1Hex("hello"))
	var dlErr *core.DownloadFailedError
	require.ErrorAs(t, err, &dlErr)
	assert.Contains(t, dlErr.Reason, "checksum mismatch")

	// neither the target nor a temp file is left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEnsureDownloadErrors(t *testing.T) {
	u := newFakeUpstream(t)
	cache := NewArtifactCache(u.client(), "")
	dest := filepath.Join(t.TempDir(), "a.jar")

	_, err := cache.Ensure(context.Background(), u.url("/missing.jar"), dest, "")
	var dlErr *core.DownloadFailedError
	require.ErrorAs(t, err, &dlErr)
	assert.Equal(t, u.url("/missing.jar"), dlErr.URL)
	assert.Contains(t, dlErr.Reason, "404")

	_, err = cache.Ensure(context.Background(), "", dest, "")
	assert.ErrorAs(t, err, &dlErr)

	_, err = cache.Ensure(context.Background(), "http://127.0.0.1:1/unreachable.jar", dest, "")
	assert.ErrorAs(t, err, &dlErr)
}

func TestEnsureStorageError(t *testing.T) {
	u := newFakeUpstream(t)
	u.serve("/a.jar", "hello")
	cache := NewArtifactCache(u.client(), "")

	// a regular file where the parent directory should be
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := cache.Ensure(context.Background(), u.url("/a.jar"), filepath.Join(blocker, "a.jar"), "")
	var storageErr *core.StorageError
	assert.ErrorAs(t, err, &storageErr)
	assert.Equal(t, 0, u.hitCount("/a.jar"))
}

func TestEnsureCancelledBeforeNetwork(t *testing.T) {
	u := newFakeUpstream(t)
	u.serve("/a.jar", "hello")
	cache := NewArtifactCache(u.client(), "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := cache.Ensure(ctx, u.url("/a.jar"), filepath.Join(t.TempDir(), "a.jar"), "")
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, u.hitCount("/a.jar"))
}

func TestEnsureCancelledDuringBody(t *testing.T) {
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1000")
		_, _ = w.Write([]byte("partial"))
		w.(http.Flusher).Flush()
		close(started)
		<-r.Context().Done()
	}))
	defer srv.Close()

	cache := NewArtifactCache(core.NewHTTPClient(5*time.Second, 0), "")
	dir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := cache.Ensure(ctx, srv.URL+"/big.jar", filepath.Join(dir, "big.jar"), "")
	require.ErrorIs(t, err, context.Canceled)
	var dlErr *core.DownloadFailedError
	assert.False(t, errors.As(err, &dlErr))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestValid(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "present")
	require.NoError(t, os.WriteFile(present, []byte("hello"), 0o644))

	cache := NewArtifactCache(nil, "")
	tests := []struct {
		name     string
		path     string
		checksum string
		want     bool
	}{
		{"Missing", filepath.Join(dir, "missing"), "", false},
		{"Present without checksum", present, "", true},
		{"Matching checksum", present, sha1Hex("hello"), true},
		{"Uppercase checksum", present, "AAF4C61DDCC5E8A2DABEDE0F3B482CD9AEA9434D", true},
		{"Wrong checksum", present, sha1Hex("other"), false},
		{"Directory", dir, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cache.Valid(tt.path, tt.checksum)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
