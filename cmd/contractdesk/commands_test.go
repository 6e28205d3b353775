package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/contractdesk/internal/config"
)

type recorded struct {
	method string
	path   string
	body   map[string]any
}

func contractsServer(t *testing.T, requests *[]recorded) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{method: r.Method, path: r.URL.Path}
		if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
			_ = json.Unmarshal(raw, &rec.body)
		}
		*requests = append(*requests, rec)

		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/contracts/":
			_, _ = w.Write([]byte(`[
				{"id":1,"number":"A-1","name":"Bridge","contract_date":"2023-01-10","planned_amount":"100"},
				{"id":2,"number":"A-2","name":"Road","contract_date":"2023-06-01","planned_amount":"5000","readiness_description":"работы завершены"}
			]`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/contracts/2":
			_, _ = w.Write([]byte(`{"id":2,"number":"A-2","name":"Road","contract_date":"2023-06-01","versions":[{"id":9,"contract_id":2,"version_number":3,"changes_description":"Deadline moved"}]}`))
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/contracts/":
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":3,"number":"N-3","name":"Tunnel","contract_date":"2024-02-03"}`))
		case r.Method == http.MethodPatch && r.URL.Path == "/api/v1/contracts/2":
			_, _ = w.Write([]byte(`{"id":2,"number":"A-2","name":"Road","contract_date":"2023-06-01","actual_amount":"42"}`))
		case r.Method == http.MethodPatch:
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"detail":"contract is locked"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

// execute runs the CLI against server with an isolated HOME.
func execute(t *testing.T, server *httptest.Server, args ...string) (string, error) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvLogLevel, "")
	t.Setenv(config.EnvLogFile, "")

	base := []string{
		"--config", filepath.Join(home, "missing.toml"),
		"--prefs", filepath.Join(home, "prefs.toml"),
		"--env-file", "",
	}
	if server != nil {
		base = append(base, "--api", server.URL+"/api/v1/contracts/")
	}

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append(args, base...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestList_PrintsTable(t *testing.T) {
	var requests []recorded
	server := contractsServer(t, &requests)

	out, err := execute(t, server, "list")
	require.NoError(t, err)

	assert.Contains(t, out, "NUMBER")
	assert.Contains(t, out, "Bridge")
	assert.Contains(t, out, "Road")
	assert.Contains(t, out, "Completed")
	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodGet, requests[0].method)
}

func TestList_FiltersAndJSON(t *testing.T) {
	var requests []recorded
	server := contractsServer(t, &requests)

	out, err := execute(t, server, "list", "--date-from", "2023-03-01", "--amount-from", "1000", "--json")
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Road", got[0]["name"])
}

func TestList_RejectsBadFilterWithoutRequest(t *testing.T) {
	var requests []recorded
	server := contractsServer(t, &requests)

	_, err := execute(t, server, "list", "--date-from", "yesterday")
	require.Error(t, err)
	assert.Empty(t, requests)
}

func TestShow_RendersMarkdown(t *testing.T) {
	var requests []recorded
	server := contractsServer(t, &requests)

	out, err := execute(t, server, "show", "2", "--raw")
	require.NoError(t, err)
	assert.Contains(t, out, "Road")
	assert.Contains(t, out, "Deadline moved")

	out, err = execute(t, server, "show", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Road")
}

func TestShow_InvalidID(t *testing.T) {
	_, err := execute(t, nil, "show", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid contract id")
}

func TestCreate_SendsPayload(t *testing.T) {
	var requests []recorded
	server := contractsServer(t, &requests)

	out, err := execute(t, server, "create",
		"--number", "N-3", "--name", "Tunnel", "--date", "2024-02-03", "--planned", "1500,5")
	require.NoError(t, err)
	assert.Contains(t, out, "Created contract 3 (Tunnel)")

	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodPost, requests[0].method)
	assert.Equal(t, map[string]any{
		"number":         "N-3",
		"name":           "Tunnel",
		"contract_date":  "2024-02-03",
		"planned_amount": 1500.5,
	}, requests[0].body)
}

func TestCreate_MissingRequiredSendsNothing(t *testing.T) {
	var requests []recorded
	server := contractsServer(t, &requests)

	_, err := execute(t, server, "create", "--name", "Tunnel")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "required"))
	assert.Empty(t, requests)
}

func TestUpdate_SendsOnlyGivenFields(t *testing.T) {
	var requests []recorded
	server := contractsServer(t, &requests)

	out, err := execute(t, server, "update", "2", "--actual", "42")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated contract 2")

	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodPatch, requests[0].method)
	assert.Equal(t, "/api/v1/contracts/2", requests[0].path)
	assert.Equal(t, map[string]any{"actual_amount": 42.0}, requests[0].body)
}

func TestUpdate_SurfacesServerDetail(t *testing.T) {
	var requests []recorded
	server := contractsServer(t, &requests)

	_, err := execute(t, server, "update", "5", "--name", "X")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contract is locked")
}

func TestUpdate_NothingToSend(t *testing.T) {
	var requests []recorded
	server := contractsServer(t, &requests)

	_, err := execute(t, server, "update", "2")
	require.Error(t, err)
	assert.Empty(t, requests)
}

func TestLogs_ShowsRecordedRequests(t *testing.T) {
	var requests []recorded
	server := contractsServer(t, &requests)

	home := t.TempDir()
	logFile := filepath.Join(home, "desk.log")
	t.Setenv(config.EnvLogFile, logFile)

	run := func(args ...string) (string, error) {
		root := newRootCmd()
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetErr(io.Discard)
		root.SetArgs(append(args,
			"--config", filepath.Join(home, "missing.toml"),
			"--env-file", "",
			"--api", server.URL+"/api/v1/contracts/",
		))
		err := root.ExecuteContext(context.Background())
		return out.String(), err
	}

	t.Setenv("HOME", home)
	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvLogLevel, "")

	_, err := run("list", "-v")
	require.NoError(t, err)

	out, err := run("logs", "--level", "debug")
	require.NoError(t, err)
	assert.Contains(t, out, "request completed")

	_, err = run("logs", "--level", "loud")
	require.Error(t, err)
}
