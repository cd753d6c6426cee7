package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-resty/resty/v2"

	"github.com/leocov-dev/launchwiz/core"
	"github.com/leocov-dev/launchwiz/fileio"
)

type EnsureResult int

const (
	AlreadyValid EnsureResult = iota
	Fetched
)

func (r EnsureResult) String() string {
	if r == Fetched {
		return "fetched"
	}
	return "already valid"
}

// ArtifactCache keeps files at computed paths valid. A file is valid when it exists
// and, if a checksum is declared, its digest matches. Without a checksum, existence
// alone counts, so corruption of such files goes unnoticed.
type ArtifactCache struct {
	client     *resty.Client
	hashFormat string
}

func NewArtifactCache(client *resty.Client, hashFormat string) *ArtifactCache {
	if hashFormat == "" {
		hashFormat = core.DefaultHashFormat
	}
	return &ArtifactCache{
		client:     client,
		hashFormat: hashFormat,
	}
}

// Valid never touches the network. Unreadable files are reported as invalid so
// they get replaced.
func (c *ArtifactCache) Valid(path, checksum string) (bool, error) {
	exists, err := fileio.FileExists(path)
	if err != nil {
		return false, &core.StorageError{Path: path, Err: err}
	}
	if !exists {
		return false, nil
	}
	if checksum == "" {
		return true, nil
	}

	actual, err := core.HashFile(path, c.hashFormat)
	if err != nil {
		return false, nil
	}
	return core.ChecksumMatches(checksum, actual), nil
}

// Ensure makes sure a valid copy of url is present at path, downloading it if needed
func (c *ArtifactCache) Ensure(ctx context.Context, url, path, checksum string) (EnsureResult, error) {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return AlreadyValid, &core.StorageError{Path: filepath.Dir(path), Err: err}
	}

	valid, err := c.Valid(path, checksum)
	if err != nil {
		return AlreadyValid, err
	}
	if valid {
		return AlreadyValid, nil
	}

	if err := ctx.Err(); err != nil {
		return AlreadyValid, err
	}
	if url == "" {
		return AlreadyValid, &core.DownloadFailedError{URL: url, Reason: "no download url for " + path}
	}
	if err := c.fetch(ctx, url, path, checksum); err != nil {
		return AlreadyValid, err
	}
	return Fetched, nil
}

func (c *ArtifactCache) fetch(ctx context.Context, url, path, checksum string) error {
	hasher, err := core.GetHashImpl(c.hashFormat)
	if err != nil {
		return err
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(url)
	if resp != nil && resp.RawBody() != nil {
		defer resp.RawBody().Close()
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &core.DownloadFailedError{URL: url, Reason: err.Error()}
	}
	if !resp.IsSuccess() {
		return &core.DownloadFailedError{URL: url, Reason: "HTTP " + resp.Status()}
	}

	f, err := fileio.CreateTemp(path)
	if err != nil {
		return &core.StorageError{Path: path, Err: err}
	}
	tmp := f.Name()

	if _, err := io.Copy(io.MultiWriter(f, hasher), resp.RawBody()); err != nil {
		f.Close()
		os.Remove(tmp)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return &core.StorageError{Path: path, Err: err}
		}
		return &core.DownloadFailedError{URL: url, Reason: err.Error()}
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return &core.StorageError{Path: path, Err: err}
	}

	if checksum != "" && !core.ChecksumMatches(checksum, hasher.String()) {
		os.Remove(tmp)
		return &core.DownloadFailedError{
			URL:    url,
			Reason: fmt.Sprintf("checksum mismatch: expected %s, got %s", checksum, hasher.String()),
		}
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return &core.StorageError{Path: path, Err: err}
	}
	return nil
}
