// Transport for the catalog service
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/algox/internal/models"
	"github.com/desertthunder/algox/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "http://localhost:8081"

// CredentialSource supplies the bearer credential at call time.
type CredentialSource interface {
	Get() (models.Credential, bool)
}

// Options configures an [APIService].
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64 // requests per second, 0 = unlimited
	Burst     int
	Client    *http.Client
	Session   CredentialSource
	Logger    *log.Logger
}

// Request describes one call against the catalog.
//
// Body is sent as-is when it is a []byte and JSON encoded otherwise.
// When Auth is set, the current credential is attached if one is present.
type Request struct {
	Method string
	Path   string
	Body   any
	Query  url.Values
	Auth   bool
}

// APIService is the single point through which every catalog call flows.
type APIService struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	session    CredentialSource
	logger     *log.Logger
}

// NewAPIService creates a new catalog transport.
func NewAPIService(opts Options) *APIService {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}
	burst := opts.Burst
	if burst < 1 {
		burst = 1
	}

	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &APIService{
		baseURL:    baseURL,
		httpClient: client,
		limiter:    rate.NewLimiter(limit, burst),
		session:    opts.Session,
		logger:     logger,
	}
}

// BaseURL returns the configured catalog endpoint.
func (a *APIService) BaseURL() string { return a.baseURL }

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
	RequestID  string
}

// Do issues req and fails with a [*shared.StatusError] on any non-2xx status.
//
// The response is returned alongside a status error so callers can inspect the body.
func (a *APIService) Do(ctx context.Context, req Request) (*APIResponse, error) {
	resp, err := a.send(ctx, req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &shared.StatusError{
			Method:     req.Method,
			Path:       req.Path,
			StatusCode: resp.StatusCode,
			Body:       resp.Body,
		}
		a.logger.Warn("catalog request rejected",
			"method", req.Method, "path", req.Path, "status", resp.StatusCode, "request_id", resp.RequestID)
		return resp, statusErr
	}
	return resp, nil
}

// Get performs an authenticated GET request to the specified path and returns the raw response regardless of status.
func (a *APIService) Get(ctx context.Context, path string) (*APIResponse, error) {
	return a.send(ctx, Request{Method: http.MethodGet, Path: path, Auth: true})
}

// Post performs an authenticated POST request with the given JSON data and returns the raw response regardless of status.
func (a *APIService) Post(ctx context.Context, path string, data []byte) (*APIResponse, error) {
	return a.send(ctx, Request{Method: http.MethodPost, Path: path, Body: data, Auth: true})
}

func (a *APIService) send(ctx context.Context, r Request) (*APIResponse, error) {
	req, err := a.newRequest(ctx, r)
	if err != nil {
		return nil, err
	}

	if err := a.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrTransport, err)
	}

	requestID := req.Header.Get("X-Request-ID")
	start := time.Now()

	resp, err := a.httpClient.Do(req)
	if err != nil {
		a.logger.Warn("catalog request failed", "method", r.Method, "path", r.Path, "request_id", requestID, "error", err)
		return nil, fmt.Errorf("%w: %v", shared.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", shared.ErrTransport, err)
	}

	a.logger.Debug("catalog request",
		"method", r.Method, "path", r.Path, "status", resp.StatusCode,
		"duration", time.Since(start), "request_id", requestID)

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
		RequestID:  requestID,
	}

	var jsonData any
	if err := json.Unmarshal(body, &jsonData); err == nil {
		apiResp.IsJSON = true
		apiResp.JSONData = jsonData
	}

	return apiResp, nil
}

func (a *APIService) newRequest(ctx context.Context, r Request) (*http.Request, error) {
	fullURL := a.baseURL + r.Path
	if len(r.Query) > 0 {
		fullURL += "?" + r.Query.Encode()
	}

	var body io.Reader
	switch b := r.Body.(type) {
	case nil:
	case []byte:
		body = bytes.NewReader(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", shared.GenerateID())

	if r.Auth && a.session != nil {
		if cred, ok := a.session.Get(); ok && cred.Token != "" {
			(&oauth2.Token{AccessToken: cred.Token, TokenType: "Bearer"}).SetAuthHeader(req)
		}
	}

	return req, nil
}
