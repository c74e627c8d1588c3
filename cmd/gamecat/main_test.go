package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gamecat/internal/catalog"
	"gamecat/internal/pipeline"
	"gamecat/internal/services"
)

func defaultApps() []steamApp {
	return []steamApp{
		{AppID: 10, Name: "Alpha Quest"},
		{AppID: 20, Name: "Alpha Quest Soundtrack"},
		{AppID: 30, Name: "Beta Racer"},
		{AppID: 0, Name: "broken"},
	}
}

func defaultTypes() map[string]string {
	return map[string]string{"10": "game", "20": "music", "30": "game"}
}

func TestSyncThenListJSON(t *testing.T) {
	env := setupCLITestEnv(t, defaultApps(), defaultTypes())

	out, _, err := runCLI(t, env.configPath, "sync")
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	requireContains(t, out, "[OK]")
	requireContains(t, out, "inserted 3")
	requireContains(t, out, "skipped 1")

	var report pipeline.SyncReport
	outcome := runJSON(t, env.configPath, &report, "sync")
	if !outcome.OK() {
		t.Fatalf("second sync outcome = %+v", outcome)
	}
	if report.Inserted != 0 || report.Existing != 3 {
		t.Fatalf("second sync should only see existing entries, got %+v", report)
	}

	var entries []catalog.Entry
	runJSON(t, env.configPath, &entries, "list")
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for _, entry := range entries {
		if entry.Enriched {
			t.Fatalf("sync must not enrich entries: %+v", entry)
		}
	}

	if _, err := os.Stat(env.cfg.Metrics.TextfilePath); err != nil {
		t.Fatalf("expected metrics textfile: %v", err)
	}
}

func TestSearchEnrichesAndDropsNonGames(t *testing.T) {
	env := setupCLITestEnv(t, defaultApps(), defaultTypes())
	if _, _, err := runCLI(t, env.configPath, "sync"); err != nil {
		t.Fatalf("sync: %v", err)
	}

	var result pipeline.SearchResult
	outcome := runJSON(t, env.configPath, &result, "search", "alpha")
	if !outcome.OK() {
		t.Fatalf("search outcome = %+v", outcome)
	}
	if len(result.Entries) != 1 || result.Entries[0].ID != 10 {
		t.Fatalf("expected only the game to remain, got %+v", result.Entries)
	}
	if !result.Entries[0].Enriched {
		t.Fatal("expected the match to be enriched")
	}
	if result.Removed != 1 {
		t.Fatalf("expected one removal, got %d", result.Removed)
	}

	var pending []catalog.Entry
	runJSON(t, env.configPath, &pending, "list", "--pending")
	if len(pending) != 1 || pending[0].ID != 30 {
		t.Fatalf("expected only Beta Racer pending, got %+v", pending)
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	env := setupCLITestEnv(t, defaultApps(), defaultTypes())
	out, _, err := runCLI(t, env.configPath, "search", "   ")
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	requireContains(t, out, "[WARN]")
}

func TestEnrichSingleAndPending(t *testing.T) {
	env := setupCLITestEnv(t, defaultApps(), defaultTypes())
	if _, _, err := runCLI(t, env.configPath, "sync"); err != nil {
		t.Fatalf("sync: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "enrich", "30")
	if err != nil {
		t.Fatalf("enrich 30: %v", err)
	}
	requireContains(t, out, "entry 30 enriched")

	var report pipeline.PendingReport
	runJSON(t, env.configPath, &report, "enrich", "pending")
	if report.Scanned != 2 || report.Enriched != 1 || report.Removed != 1 {
		t.Fatalf("unexpected pending report %+v", report)
	}

	var stats struct {
		Stats catalog.Stats `json:"stats"`
	}
	runJSON(t, env.configPath, &stats, "status")
	if stats.Stats.Entries != 2 || stats.Stats.Pending != 0 || stats.Stats.Enriched != 2 {
		t.Fatalf("unexpected stats %+v", stats.Stats)
	}
}

func TestEnrichRejectsInvalidID(t *testing.T) {
	env := setupCLITestEnv(t, nil, nil)
	for _, arg := range []string{"abc", "0", "-5"} {
		_, _, err := runCLI(t, env.configPath, "enrich", "--", arg)
		if !errors.Is(err, services.ErrValidation) {
			t.Fatalf("enrich %q: expected validation error, got %v", arg, err)
		}
	}
}

func TestEnrichUnknownEntryIsNotFound(t *testing.T) {
	env := setupCLITestEnv(t, nil, nil)
	out, _, err := runCLI(t, env.configPath, "enrich", "999")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	requireContains(t, out, "[WARN]")
}

func TestCleanupKeywords(t *testing.T) {
	env := setupCLITestEnv(t, defaultApps(), defaultTypes())
	if _, _, err := runCLI(t, env.configPath, "sync"); err != nil {
		t.Fatalf("sync: %v", err)
	}

	var report pipeline.CleanupReport
	runJSON(t, env.configPath, &report, "cleanup", "keywords")
	if report.Removed != 1 {
		t.Fatalf("expected the soundtrack to be removed, got %+v", report)
	}

	runJSON(t, env.configPath, &report, "cleanup", "keywords", "--keyword", "racer")
	if report.Removed != 1 {
		t.Fatalf("expected custom keyword to remove Beta Racer, got %+v", report)
	}

	var entries []catalog.Entry
	runJSON(t, env.configPath, &entries, "list")
	if len(entries) != 1 || entries[0].ID != 10 {
		t.Fatalf("expected only Alpha Quest to remain, got %+v", entries)
	}
}

func TestCleanupKeywordsLogsKeywordAttribute(t *testing.T) {
	env := setupCLITestEnv(t, defaultApps(), defaultTypes())
	env.cfg.Logging.Level = "debug"
	env.cfg.Logging.Format = "json"
	writeTestConfig(t, env.configPath, env.cfg)

	_, stderr, err := runCLI(t, env.configPath, "cleanup", "keywords", "--keyword", "racer")
	if err != nil {
		t.Fatalf("cleanup keywords: %v\nstderr: %s", err, stderr)
	}
	for _, line := range strings.Split(strings.TrimSpace(stderr), "\n") {
		var record map[string]any
		if json.Unmarshal([]byte(line), &record) != nil || record["msg"] != "keyword cleanup" {
			continue
		}
		if record["keywords"] != "racer" {
			t.Fatalf("keywords attribute = %v, record %v", record["keywords"], record)
		}
		return
	}
	t.Fatalf("no keyword cleanup record in stderr:\n%s", stderr)
}

func TestCleanupVerdictOnEmptyCatalog(t *testing.T) {
	env := setupCLITestEnv(t, nil, nil)
	out, _, err := runCLI(t, env.configPath, "cleanup", "verdict")
	if err != nil {
		t.Fatalf("cleanup verdict: %v", err)
	}
	requireContains(t, out, "scanned 0, removed 0")
}

func TestShowEntry(t *testing.T) {
	env := setupCLITestEnv(t, defaultApps(), defaultTypes())
	if _, _, err := runCLI(t, env.configPath, "sync"); err != nil {
		t.Fatalf("sync: %v", err)
	}
	if _, _, err := runCLI(t, env.configPath, "enrich", "10"); err != nil {
		t.Fatalf("enrich: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "show", "10")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	requireContains(t, out, "Alpha Quest")
	requireContains(t, out, "Free")

	out, _, err = runCLI(t, env.configPath, "show", "404")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	requireContains(t, out, "[WARN]")
}

func TestStatusHealthy(t *testing.T) {
	env := setupCLITestEnv(t, nil, nil)
	out, _, err := runCLI(t, env.configPath, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "[OK]")
	requireContains(t, out, env.cfg.DatabasePath())
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t, nil, nil)

	out, _, err := runCLI(t, env.configPath, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "configuration is valid")

	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	out, _, err = runCLI(t, "", "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "wrote "+target)
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, "", "config", "init", "--path", target); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected refusal to overwrite, got %v", err)
	}
	if _, _, err := runCLI(t, "", "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigValidateRejectsBadFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[steam]\napp_list_url = \"ftp://nope\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, _, err := runCLI(t, path, "config", "validate")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if !strings.Contains(out, "app_list_url") {
		t.Fatalf("expected the failing field in output, got %q", out)
	}
}
