package launcher

import (
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/leocov-dev/launchwiz/config"
	"github.com/leocov-dev/launchwiz/core"
	"github.com/leocov-dev/launchwiz/fileio"
)

// Sent in place of a real token; offline launches accept any value.
const placeholderAccessToken = "N/A"

// LaunchStrategy selects between a vanilla launch and one through an installed loader
type LaunchStrategy interface {
	loaderProfile() *core.LoaderProfile
}

type VanillaStrategy struct{}

func (VanillaStrategy) loaderProfile() *core.LoaderProfile {
	return nil
}

type LoaderStrategy struct {
	Profile core.LoaderProfile
}

func (s LoaderStrategy) loaderProfile() *core.LoaderProfile {
	return &s.Profile
}

// LaunchPlan is everything needed to start the game process
type LaunchPlan struct {
	JavaExecutable string
	JvmArgs        []string
	Classpath      []string
	MainClass      string
	GameArgs       []string
	WorkDir        string
}

func (p LaunchPlan) ClasspathString() string {
	return strings.Join(p.Classpath, string(os.PathListSeparator))
}

// Args is the argument list passed to the java executable
func (p LaunchPlan) Args() []string {
	args := make([]string, 0, len(p.JvmArgs)+len(p.GameArgs)+3)
	args = append(args, p.JvmArgs...)
	args = append(args, "-cp", p.ClasspathString(), p.MainClass)
	return append(args, p.GameArgs...)
}

// CommandLine renders the plan for display, quoting arguments that contain spaces
func (p LaunchPlan) CommandLine() string {
	parts := append([]string{p.JavaExecutable}, p.Args()...)
	for i, part := range parts {
		if part == "" || strings.ContainsAny(part, " \t\"") {
			parts[i] = `"` + strings.ReplaceAll(part, `"`, `\"`) + `"`
		}
	}
	return strings.Join(parts, " ")
}

type LaunchComposer struct {
	osName string
	// Stdout and Stderr receive the game's output; nil discards it
	Stdout io.Writer
	Stderr io.Writer
}

func NewLaunchComposer(osName string) *LaunchComposer {
	if osName == "" {
		osName = core.CurrentOS()
	}
	return &LaunchComposer{osName: osName}
}

// Compose builds the launch plan from artifacts the fetch stages already placed;
// nothing is re-verified on disk here.
func (c *LaunchComposer) Compose(cfg config.LauncherConfig, entry core.VersionCatalogEntry, descriptor core.VersionDescriptor, strategy LaunchStrategy, layout fileio.Layout) (LaunchPlan, error) {
	if strategy == nil {
		strategy = VanillaStrategy{}
	}
	profile := strategy.loaderProfile()

	var classpath []string
	seen := map[string]struct{}{}
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		classpath = append(classpath, p)
	}

	if profile != nil {
		for _, lib := range profile.Libraries {
			rel, err := core.MavenPath(lib.Coordinate)
			if err != nil {
				return LaunchPlan{}, err
			}
			add(layout.Library(rel))
		}
	}
	for _, lib := range descriptor.LibrariesFor(c.osName) {
		if lib.URL == "" {
			continue
		}
		rel, err := lib.RelativePath()
		if err != nil {
			return LaunchPlan{}, err
		}
		add(layout.Library(rel))
	}
	add(layout.VersionJar(descriptor.ID))

	mainClass := descriptor.MainClass
	jvmArgs := cfg.HeapArgs()
	if profile != nil {
		mainClass = profile.MainClass
		jvmArgs = append(jvmArgs, profile.ExtraJvmArgs...)
	}

	versionID := descriptor.ID
	if versionID == "" {
		versionID = entry.ID
	}
	versionType := string(entry.Kind)
	if versionType == "" {
		versionType = descriptor.Type
	}

	gameArgs := []string{
		"--username", cfg.PlayerName,
		"--version", versionID,
		"--gameDir", layout.GameDir,
		"--assetsDir", layout.AssetsDir(),
		"--assetIndex", descriptor.AssetIndex.ID,
		"--uuid", cfg.PlayerUUID,
		"--accessToken", placeholderAccessToken,
		"--userType", "legacy",
		"--versionType", versionType,
	}

	return LaunchPlan{
		JavaExecutable: cfg.Java(),
		JvmArgs:        jvmArgs,
		Classpath:      classpath,
		MainClass:      mainClass,
		GameArgs:       gameArgs,
		WorkDir:        layout.GameDir,
	}, nil
}

// Launch starts the game and returns without waiting on it
func (c *LaunchComposer) Launch(plan LaunchPlan) (*os.Process, error) {
	if err := os.MkdirAll(plan.WorkDir, os.ModePerm); err != nil {
		return nil, &core.LaunchFailedError{Reason: "cannot create game directory " + plan.WorkDir, Err: err}
	}

	cmd := exec.Command(plan.JavaExecutable, plan.Args()...)
	cmd.Dir = filepath.Clean(plan.WorkDir)
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	if err := cmd.Start(); err != nil {
		return nil, &core.LaunchFailedError{Reason: err.Error(), Err: err}
	}
	return cmd.Process, nil
}
