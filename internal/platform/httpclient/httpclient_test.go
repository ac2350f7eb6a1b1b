package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDoJSON_SendsHeadersAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "k" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		_ = json.NewEncoder(w).Encode(map[string]string{"echo": in["v"], "path": r.URL.Path})
	}))
	defer srv.Close()

	c, err := New(srv.URL+"/", time.Second)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	c.Headers["X-Api-Key"] = "k"

	var out map[string]string
	if err := c.DoJSON(context.Background(), http.MethodPost, "v1/echo", nil, map[string]string{"v": "hi"}, &out); err != nil {
		t.Fatalf("DoJSON error: %v", err)
	}
	if out["echo"] != "hi" || out["path"] != "/v1/echo" {
		t.Fatalf("unexpected response: %#v", out)
	}
}

func TestDoJSON_Non2xxIsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	c, _ := New("", time.Second)
	err := c.DoJSON(context.Background(), http.MethodGet, srv.URL, nil, nil, nil)
	if StatusCode(err) != http.StatusForbidden {
		t.Fatalf("expected 403 HTTPError, got %v", err)
	}
}

func TestDoJSON_RelativeWithoutBaseURL(t *testing.T) {
	c, _ := New("", time.Second)
	if err := c.DoJSON(context.Background(), http.MethodGet, "/x", nil, nil, nil); err == nil {
		t.Fatalf("expected error for relative path without BaseURL")
	}
}
