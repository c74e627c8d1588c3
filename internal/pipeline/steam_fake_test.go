package pipeline_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"gamecat/internal/steam"
)

// fakeSteam serves the two Steam endpoints from in-memory fixtures.
type fakeSteam struct {
	mu            sync.Mutex
	apps          []steam.App
	appListStatus int
	// details maps an appid to the raw JSON of its data object.
	details     map[int64]string
	failIDs     map[int64]int
	detailCalls map[int64]int
}

func newFakeSteam(t *testing.T) (*fakeSteam, *steam.Client) {
	t.Helper()
	fake := &fakeSteam{
		details:     make(map[int64]string),
		failIDs:     make(map[int64]int),
		detailCalls: make(map[int64]int),
	}
	server := httptest.NewServer(http.HandlerFunc(fake.serve))
	t.Cleanup(server.Close)

	client, err := steam.New(server.URL+"/ISteamApps/GetAppList/v2/", server.URL+"/api/appdetails")
	if err != nil {
		t.Fatalf("steam.New: %v", err)
	}
	return fake, client
}

func (f *fakeSteam) setApps(apps ...steam.App) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.apps = apps
}

func (f *fakeSteam) setDetail(id int64, declaredType, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.details[id] = fmt.Sprintf(`{"type":%q,"name":%q,"required_age":0,"is_free":false,
		"short_description":"about %s","developers":["Studio"],"genres":[{"id":"1","description":"Action"}],
		"release_date":{"coming_soon":false,"date":"1 Jan, 2000"},
		"price_overview":{"currency":"USD","final_formatted":"$4.99"}}`, declaredType, name, name)
}

func (f *fakeSteam) failDetail(id int64, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failIDs[id] = status
}

func (f *fakeSteam) calls(id int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.detailCalls[id]
}

func (f *fakeSteam) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.detailCalls {
		total += n
	}
	return total
}

func (f *fakeSteam) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case strings.HasSuffix(r.URL.Path, "/GetAppList/v2/"):
		if f.appListStatus != 0 {
			w.WriteHeader(f.appListStatus)
			return
		}
		payload := map[string]any{"applist": map[string]any{"apps": f.apps}}
		_ = json.NewEncoder(w).Encode(payload)
	case r.URL.Path == "/api/appdetails":
		key := r.URL.Query().Get("appids")
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.detailCalls[id]++
		if status, ok := f.failIDs[id]; ok {
			w.WriteHeader(status)
			return
		}
		data, ok := f.details[id]
		if !ok {
			fmt.Fprintf(w, `{%q:{"success":false}}`, key)
			return
		}
		fmt.Fprintf(w, `{%q:{"success":true,"data":%s}}`, key, data)
	default:
		http.NotFound(w, r)
	}
}
