// Package e2e boots the whole admin API in-process and drives it over HTTP,
// with outgoing webhook traffic captured instead of sent.
package e2e

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"newsletter-admin-go/pkg/api"
	"newsletter-admin-go/pkg/config"
	"newsletter-admin-go/pkg/db"
	"newsletter-admin-go/pkg/server"
)

// AgentProvider builds API agents backed by a fresh in-memory database.
type AgentProvider struct {
	configure func(*config.Config)
}

// NewAgentProvider returns a provider. configure, when given, adjusts the
// config before the server is built.
func NewAgentProvider(configure ...func(*config.Config)) *AgentProvider {
	p := &AgentProvider{}
	if len(configure) > 0 {
		p.configure = configure[0]
	}
	return p
}

// GetAdminAPIAgent starts the app on an httptest server. Everything is torn
// down when t finishes.
func (p *AgentProvider) GetAdminAPIAgent(t testing.TB) *AdminAPIAgent {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := db.NewMemory(context.Background())
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	cfg.Webhooks.InitialBackoff = 10
	cfg.Webhooks.MaxBackoff = 50
	if p.configure != nil {
		p.configure(cfg)
	}

	srv := server.NewWithDB(database, cfg, nil)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Close(ctx)
	})

	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)

	return &AdminAPIAgent{
		t:      t,
		server: srv,
		http:   ts,
		client: ts.Client(),
	}
}

// AdminAPIAgent issues authenticated requests against the admin API.
type AdminAPIAgent struct {
	t      testing.TB
	server *server.Server
	http   *httptest.Server
	client *http.Client
	apiKey string
}

// Server exposes the running app for fixtures and mocks.
func (a *AdminAPIAgent) Server() *server.Server {
	return a.server
}

// URL resolves a path relative to the admin API root. Leading and trailing
// slashes are ignored.
func (a *AdminAPIAgent) URL(path string) string {
	return a.http.URL + api.AdminBasePath + "/" + strings.Trim(path, "/")
}

// LoginAsOwner authenticates every following request as the owner seeded by
// FixtureManager.Init.
func (a *AdminAPIAgent) LoginAsOwner() *AdminAPIAgent {
	a.t.Helper()
	owner, err := a.server.DB.GetUserByEmail(context.Background(), OwnerEmail)
	require.NoError(a.t, err, "owner fixture missing, call FixtureManager.Init first")
	a.apiKey = owner.APIKey
	return a
}

func (a *AdminAPIAgent) Get(path string) *Request    { return a.newRequest(http.MethodGet, path) }
func (a *AdminAPIAgent) Post(path string) *Request   { return a.newRequest(http.MethodPost, path) }
func (a *AdminAPIAgent) Put(path string) *Request    { return a.newRequest(http.MethodPut, path) }
func (a *AdminAPIAgent) Delete(path string) *Request { return a.newRequest(http.MethodDelete, path) }

func (a *AdminAPIAgent) newRequest(method, path string) *Request {
	return &Request{agent: a, method: method, path: path, header: http.Header{}}
}

// Request is a pending API call built fluently.
type Request struct {
	agent  *AdminAPIAgent
	method string
	path   string
	body   any
	header http.Header
}

// Body sets a value to be sent as JSON.
func (r *Request) Body(v any) *Request {
	r.body = v
	return r
}

// Header adds a request header.
func (r *Request) Header(key, value string) *Request {
	r.header.Add(key, value)
	return r
}

// ExpectStatus sends the request and fails the test unless the response has
// the given status.
func (r *Request) ExpectStatus(status int) *Response {
	t := r.agent.t
	t.Helper()

	resp, err := r.Do(context.Background())
	require.NoError(t, err)
	require.Equalf(t, status, resp.StatusCode, "%s %s: %s", r.method, r.path, resp.Body)
	return resp
}

// Do sends the request.
func (r *Request) Do(ctx context.Context) (*Response, error) {
	var body io.Reader
	if r.body != nil {
		data, err := sonic.ConfigStd.Marshal(r.body)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode request body")
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, r.agent.URL(r.path), body)
	if err != nil {
		return nil, err
	}
	for key, values := range r.header {
		req.Header[key] = values
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.agent.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.agent.apiKey)
	}

	resp, err := r.agent.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", r.method, r.path)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

// Response is a fully read API response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	return sonic.ConfigStd.Unmarshal(r.Body, v)
}
