package launcher

import (
	"github.com/go-resty/resty/v2"

	"github.com/leocov-dev/launchwiz/core"
)

// Endpoints overrides the upstream services; empty fields keep the defaults
type Endpoints struct {
	VersionManifest string
	AssetBase       string
	// LoaderMeta is keyed by loader name (fabric, quilt)
	LoaderMeta map[string]string
}

type Option func(*Launcher)

// WithHTTPClient replaces the client that would otherwise be built from the config
func WithHTTPClient(client *resty.Client) Option {
	return func(l *Launcher) {
		l.client = client
	}
}

func WithEndpoints(endpoints Endpoints) Option {
	return func(l *Launcher) {
		l.endpoints = endpoints
	}
}

func WithReporter(reporter core.Reporter) Option {
	return func(l *Launcher) {
		if reporter != nil {
			l.reporter = reporter
		}
	}
}

func WithHashFormat(hashFormat string) Option {
	return func(l *Launcher) {
		l.hashFormat = hashFormat
	}
}

// WithOS sets the platform used to evaluate library rules
func WithOS(osName string) Option {
	return func(l *Launcher) {
		l.osName = osName
	}
}
