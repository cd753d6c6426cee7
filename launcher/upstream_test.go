package launcher

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/leocov-dev/launchwiz/config"
	"github.com/leocov-dev/launchwiz/core"
)

func sha1Hex(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// fakeUpstream serves fixed documents and counts requests per path
type fakeUpstream struct {
	srv *httptest.Server

	mu    sync.Mutex
	files map[string][]byte
	hits  map[string]int
}

func newFakeUpstream(t *testing.T) *fakeUpstream {
	t.Helper()
	u := &fakeUpstream{
		files: map[string][]byte{},
		hits:  map[string]int{},
	}
	u.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.mu.Lock()
		u.hits[r.URL.Path]++
		body, ok := u.files[r.URL.Path]
		u.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(body)
	}))
	t.Cleanup(u.srv.Close)
	return u
}

func (u *fakeUpstream) serve(path, body string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.files[path] = []byte(body)
}

func (u *fakeUpstream) remove(path string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.files, path)
}

func (u *fakeUpstream) url(path string) string {
	return u.srv.URL + path
}

func (u *fakeUpstream) hitCount(path string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.hits[path]
}

// hitsWithPrefix sums the requests made to paths starting with prefix
func (u *fakeUpstream) hitsWithPrefix(prefix string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	total := 0
	for p, n := range u.hits {
		if strings.HasPrefix(p, prefix) {
			total += n
		}
	}
	return total
}

func (u *fakeUpstream) client() *resty.Client {
	return core.NewHTTPClient(5*time.Second, 0)
}

type testAsset struct {
	name    string
	content string
}

var testAssets = []testAsset{
	{"minecraft/lang/en_us.json", "lang"},
	{"minecraft/sounds/ambient/cave1.ogg", "cave"},
	{"minecraft/textures/block/stone.png", "stone"},
}

func assetPath(content string) string {
	h := sha1Hex(content)
	return "/objects/" + h[:2] + "/" + h
}

func loggingLibPath() string {
	return "/libraries/com/mojang/logging/1.1.1/logging-1.1.1.jar"
}

const (
	asmMavenPath    = "/maven/org/ow2/asm/asm/9.6/asm-9.6.jar"
	loaderMavenPath = "/maven/net/fabricmc/fabric-loader/0.15.11/fabric-loader-0.15.11.jar"
)

// newGameUpstream serves a complete 1.20.1 release: catalog, descriptor, client jar,
// two libraries (one restricted to osx), an asset index with three objects and fabric meta.
func newGameUpstream(t *testing.T) *fakeUpstream {
	t.Helper()
	u := newFakeUpstream(t)

	u.serve("/manifest.json", fmt.Sprintf(`{
		"latest": {"release": "1.20.1", "snapshot": "23w31a"},
		"versions": [
			{"id": "23w31a", "type": "snapshot", "url": "%[1]s/v/23w31a.json"},
			{"id": "1.20.1", "type": "release", "url": "%[1]s/v/1.20.1.json"}
		]
	}`, u.srv.URL))

	u.serve("/client.jar", "client")
	u.serve(loggingLibPath(), "logging")
	u.serve("/libraries/lwjgl-natives-macos.jar", "natives")

	var objects []string
	for _, a := range testAssets {
		u.serve(assetPath(a.content), a.content)
		objects = append(objects, fmt.Sprintf(`%q: {"hash": %q, "size": %d}`, a.name, sha1Hex(a.content), len(a.content)))
	}
	index := `{"objects": {` + strings.Join(objects, ",") + `}}`
	u.serve("/indexes/5.json", index)

	u.serve("/v/1.20.1.json", fmt.Sprintf(`{
		"id": "1.20.1",
		"type": "release",
		"mainClass": "net.minecraft.client.main.Main",
		"downloads": {"client": {"url": "%[1]s/client.jar", "sha1": %[2]q, "size": 6}},
		"assetIndex": {"id": "5", "url": "%[1]s/indexes/5.json", "sha1": %[3]q},
		"libraries": [
			{"name": "com.mojang:logging:1.1.1", "downloads": {"artifact": {"path": "com/mojang/logging/1.1.1/logging-1.1.1.jar", "url": "%[1]s%[4]s", "sha1": %[5]q}}},
			{"name": "org.lwjgl:lwjgl:3.3.1:natives-macos", "downloads": {"artifact": {"path": "org/lwjgl/lwjgl/3.3.1/lwjgl-3.3.1-natives-macos.jar", "url": "%[1]s/libraries/lwjgl-natives-macos.jar"}}, "rules": [{"action": "allow", "os": {"name": "osx"}}]},
			{"name": "net.java.jinput:jinput-platform:2.0.5"}
		]
	}`, u.srv.URL, sha1Hex("client"), sha1Hex(index), loggingLibPath(), sha1Hex("logging")))

	u.serve("/fabric/versions/loader", `[
		{"separator": ".", "build": 11, "version": "0.15.11", "stable": true},
		{"separator": ".", "build": 10, "version": "0.15.10", "stable": true}
	]`)
	u.serve("/fabric/versions/loader/1.20.1/0.15.11/profile/json", fmt.Sprintf(`{
		"id": "fabric-loader-0.15.11-1.20.1",
		"inheritsFrom": "1.20.1",
		"type": "release",
		"mainClass": "net.fabricmc.loader.impl.launch.knot.KnotClient",
		"arguments": {"game": [], "jvm": ["-DFabricMcEmu= net.minecraft.client.main.Main "]},
		"libraries": [
			{"name": "org.ow2.asm:asm:9.6", "url": "%[1]s/maven/", "sha1": %[2]q},
			{"name": "net.fabricmc:fabric-loader:0.15.11", "url": "%[1]s/maven"}
		]
	}`, u.srv.URL, sha1Hex("asm")))
	u.serve(asmMavenPath, "asm")
	u.serve(loaderMavenPath, "fabric-loader")

	return u
}

func (u *fakeUpstream) launcher(reporter core.Reporter) *Launcher {
	return New(
		WithHTTPClient(u.client()),
		WithEndpoints(Endpoints{
			VersionManifest: u.url("/manifest.json"),
			AssetBase:       u.url("/objects"),
			LoaderMeta:      map[string]string{"fabric": u.url("/fabric")},
		}),
		WithReporter(reporter),
		WithOS("linux"),
	)
}

func testConfig(gameDir string) config.LauncherConfig {
	cfg := config.Default()
	cfg.GameDirectory = gameDir
	cfg.PlayerName = "Steve"
	cfg.ConcurrentDownloads = 2
	return cfg
}

// eventLog collects events from concurrent senders
type eventLog struct {
	mu     sync.Mutex
	events []core.Event
}

func (l *eventLog) Report(e core.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *eventLog) ofKind(stage core.Stage, kind core.EventKind) []core.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []core.Event
	for _, e := range l.events {
		if e.Stage == stage && e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
