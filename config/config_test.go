package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/kbukum/sylph/errors"
)

type clientConfig struct {
	BaseURL string            `mapstructure:"base_url"`
	Timeout time.Duration     `mapstructure:"timeout"`
	Parser  string            `mapstructure:"parser"`
	Headers map[string]string `mapstructure:"headers"`
	HTTP    struct {
		StrictStatus bool `mapstructure:"strict_status"`
	} `mapstructure:"http"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_YAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "todos.yml", `
base_url: https://jsonplaceholder.typicode.com
timeout: 5s
parser: json
headers:
  Accept: application/json
http:
  strict_status: true
`)

	var cfg clientConfig
	if err := Load("todos", &cfg, WithConfigFile(path), WithEnvPrefix("SYLPH_TEST_NONE_")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != "https://jsonplaceholder.typicode.com" {
		t.Errorf("base_url = %q", cfg.BaseURL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("timeout = %v", cfg.Timeout)
	}
	if cfg.Headers["accept"] != "application/json" {
		t.Errorf("headers = %v", cfg.Headers)
	}
	if !cfg.HTTP.StrictStatus {
		t.Error("expected strict_status from nested section")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "todos.yml", "base_url: http://file\ntimeout: 5s\n")
	t.Setenv("TODOS_BASE_URL", "http://env")
	t.Setenv("TODOS_HTTP_STRICT_STATUS", "true")

	var cfg clientConfig
	if err := Load("todos", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != "http://env" {
		t.Errorf("env should win, got %q", cfg.BaseURL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("file value should remain, got %v", cfg.Timeout)
	}
	if !cfg.HTTP.StrictStatus {
		t.Error("nested env key should bind")
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	env := writeFile(t, dir, ".env.dotenvclient", "DOTENVCLIENT_PARSER=yaml\n")
	t.Cleanup(func() { _ = os.Unsetenv("DOTENVCLIENT_PARSER") })

	var cfg clientConfig
	if err := Load("dotenvclient", &cfg, WithEnvFile(env), WithSearchPaths(dir)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Parser != "yaml" {
		t.Errorf("parser = %q", cfg.Parser)
	}
}

func TestLoad_SearchPaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "search.yaml", "parser: yaml\n")

	var cfg clientConfig
	if err := Load("search", &cfg, WithSearchPaths(dir)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Parser != "yaml" {
		t.Errorf("expected file found by search, got %q", cfg.Parser)
	}
}

func TestLoad_NoFiles(t *testing.T) {
	var cfg clientConfig
	if err := Load("nothing", &cfg, WithSearchPaths(t.TempDir())); err != nil {
		t.Fatalf("missing files should not be an error: %v", err)
	}
	if cfg.BaseURL != "" {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

func TestLoad_UnreadableFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "broken.yml", "base_url: [unterminated\n")

	var cfg clientConfig
	err := Load("broken", &cfg, WithConfigFile(path))
	if !errors.IsConfiguration(err) {
		t.Errorf("expected configuration error, got %v", err)
	}
}

type mockFS struct {
	files  map[string]bool
	loaded []string
}

func (m *mockFS) Exists(path string) bool { return m.files[path] }

func (m *mockFS) LoadEnv(path string) error {
	m.loaded = append(m.loaded, path)
	return nil
}

func TestResolver(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"config/config.yml":  true,
		"config/.env.todos":  true,
		".env":               true,
		"config/todos.yml":   false,
		"todos.yml":          false,
		"config/todos.yaml":  false,
		"todos.yaml":         false,
		"config.yml":         false,
		"config/config.yaml": false,
	}}
	r := &Resolver{FileSystem: fs}

	got := r.ResolveFiles("todos", LoaderConfig{SearchPaths: []string{".", "config"}})
	if got.ConfigFile != "config/config.yml" {
		t.Errorf("config file = %q", got.ConfigFile)
	}
	if got.EnvFile != "config/.env.todos" {
		t.Errorf("client-specific env file should win, got %q", got.EnvFile)
	}

	got = r.ResolveFiles("todos", LoaderConfig{ConfigFile: "explicit.yml", EnvFile: "explicit.env"})
	if got.ConfigFile != "explicit.yml" || got.EnvFile != "explicit.env" {
		t.Errorf("explicit paths should be kept, got %+v", got)
	}
}

func TestLoad_UsesFileSystem(t *testing.T) {
	fs := &mockFS{files: map[string]bool{"custom.env": true}}
	var cfg clientConfig
	if err := Load("fsclient", &cfg, WithFileSystem(fs), WithEnvFile("custom.env"), WithSearchPaths()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(fs.loaded, []string{"custom.env"}) {
		t.Errorf("expected env file loaded through FileSystem, got %v", fs.loaded)
	}
}

func TestGenerateEnvKeyVariants(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"PARSER", []string{"parser"}},
		{"BASE_URL", []string{"base_url", "base.url"}},
		{"HTTP_STRICT_STATUS", []string{"http.strict_status", "http_strict.status", "http.strict.status"}},
	}
	for _, tt := range tests {
		got := generateEnvKeyVariants(tt.in)
		for _, w := range tt.want {
			if !slices.Contains(got, w) {
				t.Errorf("%s: expected variant %q in %v", tt.in, w, got)
			}
		}
	}
}

func TestEnvPrefix(t *testing.T) {
	if got := envPrefix("todo-api.v2"); got != "TODO_API_V2_" {
		t.Errorf("got %q", got)
	}
}
