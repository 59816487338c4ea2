package version

import (
	"runtime/debug"
	"strings"
)

// ModulePath is the import path looked up in the build info.
const ModulePath = "github.com/kbukum/sylph"

var (
	// These variables are set at build time using -ldflags
	Version   = "dev"
	GitCommit = ""
)

// Info describes the running sylph build.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	GoVersion string `json:"go_version"`
	IsRelease bool   `json:"is_release"`
	IsDirty   bool   `json:"is_dirty"`
}

// Get returns the version information. Stamped values win over the build
// info; the build info wins over the "dev" default.
func Get() Info {
	info := Info{Version: Version, GitCommit: GitCommit}
	if bi, ok := debug.ReadBuildInfo(); ok {
		fromBuildInfo(&info, bi)
	}
	info.IsRelease = info.Version != "dev" && !info.IsDirty &&
		!strings.Contains(info.Version, "devel") && !strings.Contains(info.Version, "dirty")
	return info
}

func fromBuildInfo(info *Info, bi *debug.BuildInfo) {
	info.GoVersion = bi.GoVersion
	if info.Version == "dev" {
		if bi.Main.Path == ModulePath && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
		for _, dep := range bi.Deps {
			if dep.Path == ModulePath {
				info.Version = dep.Version
				if dep.Replace != nil && dep.Replace.Version != "" {
					info.Version = dep.Replace.Version
				}
				break
			}
		}
	}
	if bi.Main.Path != ModulePath {
		return
	}
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			if info.GitCommit == "" {
				info.GitCommit = setting.Value
				if len(info.GitCommit) > 7 {
					info.GitCommit = info.GitCommit[:7]
				}
			}
		case "vcs.modified":
			info.IsDirty = setting.Value == "true"
		}
	}
}

// Short returns the version with the commit appended when known,
// e.g. "v1.2.0" or "dev-3f2a1bc-dirty".
func Short() string {
	info := Get()
	parts := []string{info.Version}
	if info.GitCommit != "" && !info.IsRelease {
		parts = append(parts, info.GitCommit)
	}
	if info.IsDirty {
		parts = append(parts, "dirty")
	}
	return strings.Join(parts, "-")
}

// UserAgent returns product/version, the form sent in the User-Agent header.
func UserAgent(product string) string {
	return product + "/" + strings.TrimPrefix(Short(), "v")
}
