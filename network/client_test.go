package network_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/offerboard/network"
)

func newTestClient(srv *httptest.Server) *network.Client {
	cfg := network.DefaultConfig()
	cfg.BaseURL = srv.URL + "/"
	return network.NewClient(srv.Client(), cfg, zerolog.Nop())
}

func TestClient_Roll_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/roll" {
			t.Errorf("expected /roll, got %s", r.URL.Path)
		}
		if r.Header.Get("X-Game-Session") != "sess-1" {
			t.Errorf("session header = %q", r.Header.Get("X-Game-Session"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"pos":7,"pos_prev":4,"path":[5,6,7],"d1":1,"d2":2}`)
	}))
	defer srv.Close()

	client := newTestClient(srv)
	client.BindSession("sess-1")

	res, err := client.Roll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Position != 7 || len(res.Path) != 3 || len(res.Dice) != 2 {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestClient_Prefetch_SendsPosition(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/prefetch" {
			t.Errorf("expected /prefetch, got %s", r.URL.Path)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("bad content-type: %s", r.Header.Get("Content-Type"))
		}
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		_, _ = io.WriteString(w, `whatever, not even json`)
	}))
	defer srv.Close()

	if err := newTestClient(srv).Prefetch(context.Background(), 21); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["pos"] != float64(21) {
		t.Errorf("request pos = %v, want 21", got["pos"])
	}
}

func TestClient_Submit(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/submit_answer" {
			t.Errorf("expected /submit_answer, got %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		_, _ = io.WriteString(w, `{"ok":true,"cash":1200,"offers":1,"turns":9,"last_outcome":{"kind":"PASS","title":"Passed","feedback":"good"}}`)
	}))
	defer srv.Close()

	res, err := newTestClient(srv).Submit(context.Background(), "my answer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["text"] != "my answer" {
		t.Errorf("request text = %v", got["text"])
	}
	if !res.OK || res.LastOutcome == nil || res.LastOutcome.Title != "Passed" {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestClient_Resolve_Pending(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"pending":{"type":"LC_EASY","question":{"title":"Two Sum"}}}`)
	}))
	defer srv.Close()

	res, err := newTestClient(srv).Resolve(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Pending == nil || res.Pending.Kind != "LC_EASY" {
		t.Errorf("pending = %+v", res.Pending)
	}
}

func TestClient_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `boom`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Snapshot(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, network.ErrUpstream) {
		t.Errorf("expected ErrUpstream, got %v", err)
	}
}

func TestClient_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"pos": "not a number"`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Snapshot(context.Background())
	if !errors.Is(err, network.ErrDecode) {
		t.Errorf("expected ErrDecode, got %v", err)
	}
}

func TestClient_NoSessionHeaderWhenUnbound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if v := r.Header.Get("X-Game-Session"); v != "" {
			t.Errorf("unexpected session header %q", v)
		}
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	if err := newTestClient(srv).Reset(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
