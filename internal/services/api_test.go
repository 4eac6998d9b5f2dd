package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/desertthunder/algox/internal/session"
	"github.com/desertthunder/algox/internal/shared"
	tu "github.com/desertthunder/algox/internal/testing"
	"golang.org/x/time/rate"
)

func newTestService(t *testing.T, url string, store *session.Store) *APIService {
	t.Helper()

	opts := Options{BaseURL: url, Timeout: 5 * time.Second, Logger: shared.NewLogger(io.Discard)}
	if store != nil {
		opts.Session = store
	}
	return NewAPIService(opts)
}

func TestAPIService(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		t.Run("With Custom BaseURL and Client", func(t *testing.T) {
			customClient := &http.Client{}
			srv := NewAPIService(Options{BaseURL: "http://example.com/", Client: customClient})

			if srv.BaseURL() != "http://example.com" {
				t.Errorf("expected baseURL 'http://example.com', got %s", srv.BaseURL())
			}
			if srv.httpClient != customClient {
				t.Error("expected custom client to be used")
			}
		})

		t.Run("With Empty BaseURL", func(t *testing.T) {
			srv := NewAPIService(Options{})

			if srv.BaseURL() != defaultBaseURL {
				t.Errorf("expected default baseURL %s, got %s", defaultBaseURL, srv.BaseURL())
			}
		})

		t.Run("Applies Timeout", func(t *testing.T) {
			srv := NewAPIService(Options{Timeout: 3 * time.Second})

			if srv.httpClient.Timeout != 3*time.Second {
				t.Errorf("expected 3s timeout, got %v", srv.httpClient.Timeout)
			}
		})

		t.Run("Unlimited Rate By Default", func(t *testing.T) {
			srv := NewAPIService(Options{})

			if srv.limiter.Limit() != rate.Inf {
				t.Errorf("expected unlimited rate, got %v", srv.limiter.Limit())
			}
		})
	})

	t.Run("Do", func(t *testing.T) {
		t.Run("Sets Headers", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if ct := r.Header.Get("Content-Type"); ct != "application/json" {
					t.Errorf("expected JSON content type, got %q", ct)
				}
				if r.Header.Get("X-Request-ID") == "" {
					t.Error("expected X-Request-ID header")
				}
				w.Write([]byte(`[]`))
			}))
			defer server.Close()

			resp, err := newTestService(t, server.URL, nil).Do(context.Background(), Request{Method: http.MethodGet, Path: "/api/algorithms"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.RequestID == "" {
				t.Error("expected request id on response")
			}
		})

		t.Run("Attaches Bearer From Store At Call Time", func(t *testing.T) {
			var got atomic.Value
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got.Store(r.Header.Get("Authorization"))
				w.Write([]byte(`[]`))
			}))
			defer server.Close()

			store := session.NewStore(nil, shared.NewLogger(io.Discard))
			srv := newTestService(t, server.URL, store)
			req := Request{Method: http.MethodGet, Path: "/api/algorithms", Auth: true}

			if _, err := srv.Do(context.Background(), req); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if h := got.Load().(string); h != "" {
				t.Errorf("expected no Authorization header without a credential, got %q", h)
			}

			_ = store.Set(context.Background(), "t1", "42")
			if _, err := srv.Do(context.Background(), req); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if h := got.Load().(string); h != "Bearer t1" {
				t.Errorf("expected 'Bearer t1', got %q", h)
			}

			_ = store.Set(context.Background(), "t2", "42")
			if _, err := srv.Do(context.Background(), req); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if h := got.Load().(string); h != "Bearer t2" {
				t.Errorf("expected 'Bearer t2', got %q", h)
			}
		})

		t.Run("Unauthenticated Request Omits Bearer", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if h := r.Header.Get("Authorization"); h != "" {
					t.Errorf("expected no Authorization header, got %q", h)
				}
				w.Write([]byte(`{}`))
			}))
			defer server.Close()

			store := session.NewStore(nil, nil)
			_ = store.Set(context.Background(), "t1", "42")

			_, err := newTestService(t, server.URL, store).Do(context.Background(), Request{Method: http.MethodPost, Path: "/login"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})

		t.Run("Encodes Body As JSON", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var body map[string]string
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					t.Errorf("failed to decode body: %v", err)
				}
				if body["username"] != "ada" {
					t.Errorf("expected username ada, got %v", body)
				}
				w.WriteHeader(http.StatusCreated)
			}))
			defer server.Close()

			body := map[string]string{"username": "ada"}
			_, err := newTestService(t, server.URL, nil).Do(context.Background(), Request{Method: http.MethodPost, Path: "/register", Body: body})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})

		t.Run("Non-2xx Is A Status Error", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			}))
			defer server.Close()

			resp, err := newTestService(t, server.URL, nil).Do(context.Background(), Request{Method: http.MethodGet, Path: "/api/algorithms"})

			var statusErr *shared.StatusError
			if !errors.As(err, &statusErr) {
				t.Fatalf("expected StatusError, got %v", err)
			}
			if statusErr.StatusCode != http.StatusInternalServerError {
				t.Errorf("expected status 500, got %d", statusErr.StatusCode)
			}
			if !errors.Is(err, shared.ErrTransport) || errors.Is(err, shared.ErrUnauthorized) {
				t.Errorf("expected plain transport error, got %v", err)
			}
			if resp == nil || !strings.Contains(string(resp.Body), "boom") {
				t.Error("expected response body to be returned with the error")
			}
		})

		t.Run("401 And 403 Are Unauthorized", func(t *testing.T) {
			for _, code := range []int{http.StatusUnauthorized, http.StatusForbidden} {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(code)
				}))

				_, err := newTestService(t, server.URL, nil).Do(context.Background(), Request{Method: http.MethodGet, Path: "/api/algorithms"})
				server.Close()

				if !errors.Is(err, shared.ErrUnauthorized) {
					t.Errorf("status %d: expected ErrUnauthorized, got %v", code, err)
				}
				if !errors.Is(err, shared.ErrTransport) {
					t.Errorf("status %d: expected ErrTransport, got %v", code, err)
				}
			}
		})

		t.Run("Failed HTTP Request", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(nil, errors.New("connection failed")),
			}
			srv := NewAPIService(Options{BaseURL: "http://example.com", Client: client, Logger: shared.NewLogger(io.Discard)})

			_, err := srv.Do(context.Background(), Request{Method: http.MethodGet, Path: "/api/algorithms"})
			if !errors.Is(err, shared.ErrTransport) {
				t.Errorf("expected ErrTransport, got %v", err)
			}
		})

		t.Run("Failed Response Body Read", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(&http.Response{
					StatusCode: http.StatusOK,
					Body:       &tu.FCloser{},
					Header:     make(http.Header),
				}, nil),
			}
			srv := NewAPIService(Options{BaseURL: "http://example.com", Client: client, Logger: shared.NewLogger(io.Discard)})

			_, err := srv.Do(context.Background(), Request{Method: http.MethodGet, Path: "/api/algorithms"})
			if !errors.Is(err, shared.ErrTransport) {
				t.Errorf("expected ErrTransport, got %v", err)
			}
		})

		t.Run("With Canceled Context", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`[]`))
			}))
			defer server.Close()

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := newTestService(t, server.URL, nil).Do(ctx, Request{Method: http.MethodGet, Path: "/api/algorithms"})
			if !errors.Is(err, shared.ErrTransport) {
				t.Errorf("expected ErrTransport, got %v", err)
			}
		})

		t.Run("Timeout", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(time.Second):
				}
			}))
			defer server.Close()

			srv := NewAPIService(Options{BaseURL: server.URL, Timeout: 20 * time.Millisecond, Logger: shared.NewLogger(io.Discard)})
			_, err := srv.Do(context.Background(), Request{Method: http.MethodGet, Path: "/api/algorithms"})
			if !errors.Is(err, shared.ErrTransport) {
				t.Errorf("expected ErrTransport on timeout, got %v", err)
			}
		})
	})

	t.Run("Get", func(t *testing.T) {
		t.Run("Returns Raw Response Regardless Of Status", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-Custom", "yes")
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(`{"error":"missing"}`))
			}))
			defer server.Close()

			resp, err := newTestService(t, server.URL, nil).Get(context.Background(), "/api/algorithms/9")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.StatusCode != http.StatusNotFound {
				t.Errorf("expected status 404, got %d", resp.StatusCode)
			}
			if !resp.IsJSON || resp.JSONData == nil {
				t.Error("expected JSON response")
			}
			if resp.Headers.Get("X-Custom") != "yes" {
				t.Error("expected headers to be preserved")
			}
		})

		t.Run("Non-JSON Response", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("plain text"))
			}))
			defer server.Close()

			resp, err := newTestService(t, server.URL, nil).Get(context.Background(), "/")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if resp.IsJSON {
				t.Error("expected non-JSON response")
			}
			if string(resp.Body) != "plain text" {
				t.Errorf("unexpected body %q", resp.Body)
			}
		})
	})

	t.Run("Post", func(t *testing.T) {
		t.Run("Sends Raw Bytes", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST method, got %s", r.Method)
				}
				body, _ := io.ReadAll(r.Body)
				if string(body) != `{"raw":true}` {
					t.Errorf("unexpected body %s", body)
				}
				w.Write([]byte(`{"ok":true}`))
			}))
			defer server.Close()

			resp, err := newTestService(t, server.URL, nil).Post(context.Background(), "/echo", []byte(`{"raw":true}`))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !resp.IsJSON {
				t.Error("expected JSON response")
			}
		})
	})
}
