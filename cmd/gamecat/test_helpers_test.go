package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"gamecat/internal/config"
	"gamecat/internal/services"
	"gamecat/internal/testsupport"
)

type steamApp struct {
	AppID int64  `json:"appid"`
	Name  string `json:"name"`
}

// steamStub serves a fixed app list and a declared type per app.
type steamStub struct {
	mu    sync.Mutex
	apps  []steamApp
	types map[string]string
}

func (s *steamStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case strings.HasSuffix(r.URL.Path, "/GetAppList/v2/"):
		_ = json.NewEncoder(w).Encode(map[string]any{"applist": map[string]any{"apps": s.apps}})
	case r.URL.Path == "/api/appdetails":
		key := r.URL.Query().Get("appids")
		declared, ok := s.types[key]
		if !ok {
			fmt.Fprintf(w, `{%q:{"success":false}}`, key)
			return
		}
		fmt.Fprintf(w, `{%q:{"success":true,"data":{"type":%q,"name":"app %s","is_free":true}}}`, key, declared, key)
	default:
		http.NotFound(w, r)
	}
}

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	steam      *steamStub
}

func setupCLITestEnv(t *testing.T, apps []steamApp, types map[string]string) *cliTestEnv {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	t.Setenv("GAMECAT_DATA_DIR", "")
	t.Setenv("STEAM_API_KEY", "")

	stub := &steamStub{apps: apps, types: types}
	server := httptest.NewServer(stub)
	t.Cleanup(server.Close)

	cfg := testsupport.NewConfig(t, testsupport.WithSteamServer(server.URL))
	cfg.Metrics.TextfilePath = filepath.Join(testsupport.BaseDir(cfg), "metrics", "gamecat.prom")

	configPath := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	writeTestConfig(t, configPath, cfg)
	return &cliTestEnv{cfg: cfg, configPath: configPath, steam: stub}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	full := args
	if configPath != "" {
		full = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(full)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

type jsonResult struct {
	Outcome services.Outcome `json:"outcome"`
	Result  json.RawMessage  `json:"result"`
}

func runJSON(t *testing.T, configPath string, target any, args ...string) services.Outcome {
	t.Helper()
	out, stderr, err := runCLI(t, configPath, append(args, "--json")...)
	if err != nil {
		t.Fatalf("%v: %v\nstderr: %s", args, err, stderr)
	}
	var decoded jsonResult
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("decode %v output %q: %v", args, out, err)
	}
	if target != nil {
		if err := json.Unmarshal(decoded.Result, target); err != nil {
			t.Fatalf("decode %v result: %v", args, err)
		}
	}
	return decoded.Outcome
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}
