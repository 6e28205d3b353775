package contracts

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != DefaultAPIURL {
		t.Fatalf("url = %q, want %q", u.String(), DefaultAPIURL)
	}

	u, err = parseBaseURL("example.com:8080/api/v1/contracts?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Path != "/api/v1/contracts/" {
		t.Fatalf("path = %q, want trailing slash", u.Path)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}
}

func TestParseBaseURL_RejectsMissingHost(t *testing.T) {
	if _, err := parseBaseURL("http:///api"); err == nil {
		t.Fatalf("parseBaseURL returned nil error, want missing host error")
	}
}

func TestClient_ListGetCreateUpdate(t *testing.T) {
	t.Parallel()

	type seen struct {
		method      string
		path        string
		contentType string
		requestID   string
		body        map[string]any
	}
	var requests []seen

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := seen{
			method:      r.Method,
			path:        r.URL.Path,
			contentType: r.Header.Get("Content-Type"),
			requestID:   r.Header.Get("X-Request-ID"),
		}
		if r.Body != nil {
			raw, _ := io.ReadAll(r.Body)
			if len(raw) > 0 {
				_ = json.Unmarshal(raw, &rec.body)
			}
		}
		requests = append(requests, rec)

		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/contracts/":
			_, _ = w.Write([]byte(`[{"id":1,"number":"A-1","name":"Bridge","contract_date":"2023-01-01","planned_amount":"100.50"},{"id":2,"name":"Road","planned_amount":200}]`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/contracts/7":
			_, _ = w.Write([]byte(`{"id":7,"name":"Tunnel","versions":[{"id":1,"contract_id":7,"version_number":2}]}`))
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/contracts/":
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":3,"number":"N","name":"Created","contract_date":"2024-02-03"}`))
		case r.Method == http.MethodPatch && r.URL.Path == "/api/v1/contracts/3":
			_, _ = w.Write([]byte(`{"id":3,"number":"N","name":"Renamed","contract_date":"2024-02-03"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL + "/api/v1/contracts/")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	list, err := c.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 2 || list[0].ID != 1 || list[1].ID != 2 {
		t.Fatalf("List = %#v, want ids 1 and 2", list)
	}
	if list[0].PlannedAmount == nil || list[0].PlannedAmount.Float() != 100.5 {
		t.Fatalf("string amount decoded as %v, want 100.5", list[0].PlannedAmount)
	}
	if list[1].PlannedAmount == nil || list[1].PlannedAmount.Float() != 200 {
		t.Fatalf("numeric amount decoded as %v, want 200", list[1].PlannedAmount)
	}

	one, err := c.Get(ctx, 7)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if one.Name != "Tunnel" || len(one.Versions) != 1 || one.Versions[0].VersionNumber != 2 {
		t.Fatalf("Get = %#v, want Tunnel with one version", one)
	}

	name := "Created"
	created, err := c.Create(ctx, Payload{Name: &name})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID != 3 {
		t.Fatalf("Create id = %d, want 3", created.ID)
	}

	renamed := "Renamed"
	updated, err := c.Update(ctx, 3, Payload{Name: &renamed})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Fatalf("Update name = %q, want Renamed", updated.Name)
	}

	if len(requests) != 4 {
		t.Fatalf("server saw %d requests, want 4", len(requests))
	}
	post := requests[2]
	if post.method != http.MethodPost || post.contentType != "application/json" {
		t.Fatalf("POST request = %#v, want json POST", post)
	}
	if len(post.body) != 1 || post.body["name"] != "Created" {
		t.Fatalf("POST body = %#v, want only name", post.body)
	}
	patch := requests[3]
	if patch.method != http.MethodPatch || len(patch.body) != 1 || patch.body["name"] != "Renamed" {
		t.Fatalf("PATCH request = %#v, want sparse name update", patch)
	}
	if requests[0].contentType != "" {
		t.Fatalf("GET Content-Type = %q, want none", requests[0].contentType)
	}
	for _, r := range requests {
		if r.requestID == "" {
			t.Fatalf("%s %s missing X-Request-ID", r.method, r.path)
		}
	}
	if requests[0].requestID == requests[1].requestID {
		t.Fatalf("request ids should be unique per request")
	}
}

func TestClient_RequiresID(t *testing.T) {
	c, err := NewClient("127.0.0.1:1")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.Get(context.Background(), 0); err == nil {
		t.Fatalf("Get(0) returned nil error, want error")
	}
	if _, err := c.Update(context.Background(), -1, Payload{}); err == nil {
		t.Fatalf("Update(-1) returned nil error, want error")
	}
}

func TestClient_ErrorDetailAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/":
			_, _ = w.Write([]byte("{not-json"))
		case "/9":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"Contract not found"}`))
		case "/10":
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"detail":[{"loc":["body","planned_amount"],"msg":"must be non-negative"}]}`))
		default:
			http.Error(w, "nope", http.StatusInternalServerError)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.List(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("List error = %v, want decode response error", err)
	}

	_, err = c.Get(context.Background(), 9)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Get error = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusNotFound || apiErr.Detail != "Contract not found" {
		t.Fatalf("APIError = %#v, want 404 Contract not found", apiErr)
	}
	if got := Message(err, "fallback"); got != "Contract not found" {
		t.Fatalf("Message = %q, want server detail", got)
	}

	_, err = c.Update(context.Background(), 10, Payload{})
	if got := Message(err, "fallback"); got != "planned_amount: must be non-negative" {
		t.Fatalf("Message = %q, want flattened validation detail", got)
	}

	_, err = c.Get(context.Background(), 11)
	if err == nil || !strings.Contains(err.Error(), "returned status 500") {
		t.Fatalf("Get error = %v, want status 500 error", err)
	}
	if got := Message(err, "fallback"); got != "fallback" {
		t.Fatalf("Message = %q, want fallback for plain-text error body", got)
	}
}

func TestMessage_NetworkErrorFallsBack(t *testing.T) {
	if got := Message(errors.New("dial tcp: connection refused"), "could not save"); got != "could not save" {
		t.Fatalf("Message = %q, want fallback", got)
	}
}
