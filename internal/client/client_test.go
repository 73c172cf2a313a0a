package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mannit-co/albayan/internal/engine"
	"github.com/mannit-co/albayan/internal/engine/cache"
)

type apiFixture struct {
	server *httptest.Server
	hits   map[string]*atomic.Int32
}

func newAPIFixture(t *testing.T, routes map[string]func(w http.ResponseWriter, r *http.Request)) *apiFixture {
	t.Helper()
	f := &apiFixture{hits: map[string]*atomic.Int32{}}
	mux := http.NewServeMux()
	for path, handler := range routes {
		counter := &atomic.Int32{}
		f.hits[path] = counter
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			counter.Add(1)
			handler(w, r)
		})
	}
	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func jsonHandler(body string) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{name: "empty", baseURL: "", wantErr: true},
		{name: "no scheme", baseURL: "api.example.com", wantErr: true},
		{name: "ftp", baseURL: "ftp://api.example.com", wantErr: true},
		{name: "https", baseURL: "https://api.example.com/v1"},
		{name: "trailing slash", baseURL: "https://api.example.com/v1/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(Options{BaseURL: tt.baseURL})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "https://api.example.com/v1/", c.BaseURL())
			assert.Equal(t, "https://api.example.com/v1/tests", c.endpoint(PathTests))
		})
	}

	_, err := New(Options{})
	require.ErrorIs(t, err, ErrNoBaseURL)
}

func TestClient_ListTests(t *testing.T) {
	var gotAuth, gotAccept string
	f := newAPIFixture(t, map[string]func(http.ResponseWriter, *http.Request){
		"/api/tests": func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotAccept = r.Header.Get("Accept")
			jsonHandler(`{"data":[{"_id":"t1","title":"Algebra"},{"_id":"t2","title":"Physics"}]}`)(w, r)
		},
	})

	c, err := New(Options{BaseURL: f.server.URL + "/api", Token: "secret"})
	require.NoError(t, err)

	tests, err := c.ListTests(context.Background())
	require.NoError(t, err)
	require.Len(t, tests, 2)
	assert.Equal(t, "Physics", tests[1].Title)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
}

func TestClient_APIError(t *testing.T) {
	f := newAPIFixture(t, map[string]func(http.ResponseWriter, *http.Request){
		"/candidates": func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, `{"message":"token expired"}`, http.StatusUnauthorized)
		},
		"/questions": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
	})
	c, err := New(Options{BaseURL: f.server.URL})
	require.NoError(t, err)

	_, err = c.ListCandidates(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.True(t, apiErr.IsUnauthorized())
	assert.Contains(t, apiErr.Error(), "token expired")
	assert.Contains(t, apiErr.Error(), "401 Unauthorized")

	_, err = c.ListQuestions(context.Background())
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.False(t, apiErr.IsUnauthorized())
}

func TestClient_ResponseTooLarge(t *testing.T) {
	const limit = 64
	payload := `[{"id":"t1","title":"Algebra I"}]`
	padded := payload + strings.Repeat(" ", limit-len(payload))
	require.Len(t, padded, limit)

	f := newAPIFixture(t, map[string]func(http.ResponseWriter, *http.Request){
		"/tests":     jsonHandler(padded),
		"/questions": jsonHandler(padded + " "),
	})
	c, err := New(Options{BaseURL: f.server.URL, MaxResponseBytes: limit})
	require.NoError(t, err)

	tests, err := c.ListTests(context.Background())
	require.NoError(t, err, "a body exactly at the limit is accepted")
	require.Len(t, tests, 1)

	_, err = c.ListQuestions(context.Background())
	require.ErrorIs(t, err, ErrResponseTooLarge)
	assert.Contains(t, err.Error(), "exceeds 64 bytes")
}

func TestClient_DecodeError(t *testing.T) {
	f := newAPIFixture(t, map[string]func(http.ResponseWriter, *http.Request){
		"/questions": jsonHandler(`{"message":"ok"}`),
	})
	c, err := New(Options{BaseURL: f.server.URL})
	require.NoError(t, err)

	_, err = c.ListQuestions(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unrecognized")
}

func TestClient_Cache(t *testing.T) {
	f := newAPIFixture(t, map[string]func(http.ResponseWriter, *http.Request){
		"/questions": jsonHandler(`[{"id":"q1","text":"2+2?"}]`),
	})

	store, err := cache.NewFileStore(cache.Options{Directory: t.TempDir(), Enabled: true, TTL: time.Minute})
	require.NoError(t, err)

	c, err := New(Options{BaseURL: f.server.URL, Cache: store})
	require.NoError(t, err)

	for range 3 {
		questions, listErr := c.ListQuestions(context.Background())
		require.NoError(t, listErr)
		require.Len(t, questions, 1)
	}
	assert.Equal(t, int32(1), f.hits["/questions"].Load(), "later calls are served from cache")

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

type brokenCache struct{}

func (brokenCache) Get(string) (*cache.Entry, error)          { return nil, errors.New("disk on fire") }
func (brokenCache) Set(string, string, json.RawMessage) error { return errors.New("disk on fire") }

func TestClient_CacheFailureFallsBackToAPI(t *testing.T) {
	f := newAPIFixture(t, map[string]func(http.ResponseWriter, *http.Request){
		"/tests": jsonHandler(`[]`),
	})
	c, err := New(Options{BaseURL: f.server.URL, Cache: brokenCache{}})
	require.NoError(t, err)

	tests, err := c.ListTests(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tests)
}

func TestClient_CheckServerVersion(t *testing.T) {
	tests := []struct {
		name    string
		handler func(http.ResponseWriter, *http.Request)
		want    string
		wantErr error
	}{
		{name: "current", handler: jsonHandler(`{"version":"1.4.2"}`), want: "1.4.2"},
		{name: "enveloped", handler: jsonHandler(`{"data":{"version":"v2.0.0"}}`), want: "2.0.0"},
		{name: "api version key", handler: jsonHandler(`{"apiVersion":"1.2.0"}`), want: "1.2.0"},
		{name: "too old", handler: jsonHandler(`{"version":"1.1.9"}`), wantErr: ErrIncompatibleServer},
		{name: "missing", handler: jsonHandler(`{}`), wantErr: ErrNoServerVersion},
		{name: "no endpoint", handler: http.NotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAPIFixture(t, map[string]func(http.ResponseWriter, *http.Request){"/version": tt.handler})
			c, err := New(Options{BaseURL: f.server.URL})
			require.NoError(t, err)

			v, err := c.CheckServerVersion(context.Background())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if tt.want == "" {
				assert.Nil(t, v)
				return
			}
			require.NotNil(t, v)
			assert.Equal(t, tt.want, v.String())
		})
	}
}

func TestCompareServerVersion_Invalid(t *testing.T) {
	_, err := CompareServerVersion("latest")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrIncompatibleServer)
}

func writeExport(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	writeExport(t, dir, CandidatesFile, `[{"id":"c1","name":"Amina","status":"completed","score":90}]`)
	writeExport(t, dir, TestsFile, `{"items":[{"id":"t1","title":"Algebra"}]}`)
	writeExport(t, dir, QuestionsFile, `{"data":{"results":[{"id":"q1"},{"id":"q2"}]}}`)

	src, err := NewFileSource(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, src.Dir())

	all, err := FetchAll(context.Background(), src)
	require.NoError(t, err)
	assert.Len(t, all.Candidates, 1)
	assert.Equal(t, engine.CandidateCompleted, all.Candidates[0].Status)
	assert.Len(t, all.Tests, 1)
	assert.Len(t, all.Questions, 2)
}

func TestNewFileSource_Errors(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)

	file := filepath.Join(t.TempDir(), "file.json")
	require.NoError(t, os.WriteFile(file, []byte("[]"), 0o600))
	_, err = NewFileSource(file)
	require.ErrorIs(t, err, ErrSourceNotDirectory)
}

func TestFetchAll_Error(t *testing.T) {
	dir := t.TempDir()
	writeExport(t, dir, CandidatesFile, `[]`)
	writeExport(t, dir, QuestionsFile, `[]`)

	src, err := NewFileSource(dir)
	require.NoError(t, err)

	_, err = FetchAll(context.Background(), src)
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "listing tests")
}

func TestFetchAll_API(t *testing.T) {
	f := newAPIFixture(t, map[string]func(http.ResponseWriter, *http.Request){
		"/candidates": jsonHandler(`[{"id":"c1"},{"id":"c2"}]`),
		"/tests":      jsonHandler(`[{"id":"t1"}]`),
		"/questions":  jsonHandler(`[]`),
	})
	c, err := New(Options{BaseURL: f.server.URL})
	require.NoError(t, err)

	var src Source = c
	all, err := FetchAll(context.Background(), src)
	require.NoError(t, err)
	assert.Len(t, all.Candidates, 2)
	assert.Len(t, all.Tests, 1)
	assert.Empty(t, all.Questions)
}
