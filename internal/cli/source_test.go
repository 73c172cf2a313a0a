package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mannit-co/albayan/internal/client"
	"github.com/mannit-co/albayan/internal/config"
	"github.com/mannit-co/albayan/internal/engine"
)

func newAPIServer(t *testing.T, serverVersion string, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"version":"` + serverVersion + `"}`))
	})
	mux.HandleFunc("/candidates", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data":[{"_id":"a1","name":"Aisha","status":"completed","score":"88%"}]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCandidates_FromAPIWithCache(t *testing.T) {
	isolateEnv(t)
	var hits atomic.Int32
	srv := newAPIServer(t, "1.4.0", &hits)
	t.Setenv(config.EnvAPIURL, srv.URL)
	t.Setenv(config.EnvAPIToken, "tok")

	for range 2 {
		out, _, err := runCLI(t, "candidates", "--output", "json")
		require.NoError(t, err)

		var got pageJSON[engine.Candidate]
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		require.Len(t, got.Items, 1)
		assert.Equal(t, "Aisha", got.Items[0].Name)
		require.NotNil(t, got.Items[0].Score)
		assert.InDelta(t, 88.0, *got.Items[0].Score, 0.001)
	}
	assert.Equal(t, int32(1), hits.Load(), "second run served from cache")

	_, _, err := runCLI(t, "--no-cache", "candidates", "--output", "json")
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestCandidates_IncompatibleServer(t *testing.T) {
	isolateEnv(t)
	var hits atomic.Int32
	srv := newAPIServer(t, "0.9.0", &hits)
	t.Setenv(config.EnvAPIURL, srv.URL)

	_, _, err := runCLI(t, "candidates", "--output", "json")
	require.ErrorIs(t, err, client.ErrIncompatibleServer)
	assert.Zero(t, hits.Load())
}
