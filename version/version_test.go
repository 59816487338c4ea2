package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func saveAndRestore() func() {
	origVersion, origCommit := Version, GitCommit
	return func() {
		Version = origVersion
		GitCommit = origCommit
	}
}

func TestGet_Stamped(t *testing.T) {
	defer saveAndRestore()()
	Version = "v1.2.0"
	GitCommit = "abc1234"

	info := Get()
	if info.Version != "v1.2.0" || info.GitCommit != "abc1234" {
		t.Errorf("stamped values should win, got %+v", info)
	}
	if info.GoVersion == "" {
		t.Error("go version should come from the build info")
	}
}

func TestFromBuildInfo(t *testing.T) {
	tests := []struct {
		name    string
		bi      debug.BuildInfo
		version string
		commit  string
		dirty   bool
	}{
		{
			name:    "dependency",
			bi:      debug.BuildInfo{Main: debug.Module{Path: "example.com/app"}, Deps: []*debug.Module{{Path: ModulePath, Version: "v0.4.1"}}},
			version: "v0.4.1",
		},
		{
			name: "replaced dependency",
			bi: debug.BuildInfo{Main: debug.Module{Path: "example.com/app"}, Deps: []*debug.Module{
				{Path: ModulePath, Version: "v0.4.1", Replace: &debug.Module{Path: "../sylph", Version: "v0.5.0"}},
			}},
			version: "v0.5.0",
		},
		{
			name: "main module checkout",
			bi: debug.BuildInfo{
				Main:     debug.Module{Path: ModulePath, Version: "(devel)"},
				Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "3f2a1bc9d0"}, {Key: "vcs.modified", Value: "true"}},
			},
			version: "dev",
			commit:  "3f2a1bc",
			dirty:   true,
		},
		{
			name: "other main module ignores vcs",
			bi: debug.BuildInfo{
				Main:     debug.Module{Path: "example.com/app"},
				Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "ffffffff"}},
			},
			version: "dev",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := Info{Version: "dev"}
			fromBuildInfo(&info, &tt.bi)
			if info.Version != tt.version || info.GitCommit != tt.commit || info.IsDirty != tt.dirty {
				t.Errorf("got %+v, want version=%s commit=%s dirty=%v", info, tt.version, tt.commit, tt.dirty)
			}
		})
	}
}

func TestUserAgent(t *testing.T) {
	defer saveAndRestore()()
	Version = "v1.2.0"
	GitCommit = ""

	ua := UserAgent("sylph-httpclient")
	if !strings.HasPrefix(ua, "sylph-httpclient/1.2.0") {
		t.Errorf("unexpected user agent %q", ua)
	}
}
