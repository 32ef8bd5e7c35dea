package e2e

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"

	"newsletter-admin-go/pkg/e2e/matchers"
	"newsletter-admin-go/pkg/webhooks"
)

// ReceiveTimeout bounds ReceivedRequest when the caller's context has no
// deadline.
const ReceiveTimeout = 5 * time.Second

// ErrNoRequest is returned when no webhook arrived in time.
var ErrNoRequest = errors.New("no webhook request received")

// MockManager swaps the dispatcher's transport for a recording receiver.
type MockManager struct {
	t          testing.TB
	dispatcher *webhooks.Dispatcher
	receiver   *WebhookMockReceiver
}

func NewMockManager(t testing.TB, agent *AdminAPIAgent) *MockManager {
	return &MockManager{t: t, dispatcher: agent.Server().Dispatcher}
}

// MockWebhookRequests routes every webhook delivery to a new receiver.
func (m *MockManager) MockWebhookRequests() *WebhookMockReceiver {
	m.receiver = newWebhookMockReceiver(m.t)
	m.dispatcher.SetTransport(m.receiver)
	return m.receiver
}

// Restore waits for in-flight deliveries, reinstalls the default transport
// and fails the test if anything tried to reach an unmocked URL.
func (m *MockManager) Restore() {
	m.t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), ReceiveTimeout)
	defer cancel()
	if err := m.dispatcher.Flush(ctx); err != nil {
		m.t.Errorf("webhook deliveries still running: %v", err)
	}
	m.dispatcher.SetTransport(nil)

	if m.receiver != nil {
		if missed := m.receiver.Unmatched(); len(missed) > 0 {
			m.t.Errorf("webhook requests to unmocked URLs: %s", strings.Join(missed, ", "))
		}
		m.receiver = nil
	}
}

// RecordedRequest is one captured delivery.
type RecordedRequest struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// WebhookMockReceiver is an http.RoundTripper answering mocked URLs with 200
// and refusing everything else.
type WebhookMockReceiver struct {
	t testing.TB

	mu        sync.Mutex
	targets   map[string]struct{}
	requests  []RecordedRequest
	unmatched []string

	arrived     chan struct{}
	arrivedOnce sync.Once
}

func newWebhookMockReceiver(t testing.TB) *WebhookMockReceiver {
	return &WebhookMockReceiver{
		t:       t,
		targets: make(map[string]struct{}),
		arrived: make(chan struct{}),
	}
}

// Mock accepts deliveries to rawURL.
func (r *WebhookMockReceiver) Mock(rawURL string) *WebhookMockReceiver {
	r.t.Helper()
	u, err := url.Parse(rawURL)
	if err != nil {
		r.t.Fatalf("invalid mock URL %q: %v", rawURL, err)
	}

	r.mu.Lock()
	r.targets[u.String()] = struct{}{}
	r.mu.Unlock()
	return r
}

func (r *WebhookMockReceiver) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		data, err := io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, err
		}
		body = data
	}

	target := req.URL.String()

	r.mu.Lock()
	_, mocked := r.targets[target]
	if !mocked {
		r.unmatched = append(r.unmatched, target)
		r.mu.Unlock()
		return nil, errors.Errorf("connection to unmocked URL %s refused", target)
	}
	r.requests = append(r.requests, RecordedRequest{
		Method: req.Method,
		URL:    target,
		Header: req.Header.Clone(),
		Body:   body,
	})
	r.mu.Unlock()

	r.arrivedOnce.Do(func() { close(r.arrived) })

	return &http.Response{
		StatusCode: http.StatusOK,
		Status:     "200 OK",
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader("")),
		Request:    req,
	}, nil
}

// ReceivedRequest blocks until a mocked URL has been hit and returns the
// latest request.
func (r *WebhookMockReceiver) ReceivedRequest(ctx context.Context) (RecordedRequest, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ReceiveTimeout)
		defer cancel()
	}

	select {
	case <-r.arrived:
	case <-ctx.Done():
		return RecordedRequest{}, errors.Wrap(ErrNoRequest, ctx.Err().Error())
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.requests[len(r.requests)-1], nil
}

// Requests returns every captured delivery in arrival order.
func (r *WebhookMockReceiver) Requests() []RecordedRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RecordedRequest(nil), r.requests...)
}

// Unmatched lists URLs that were hit without being mocked.
func (r *WebhookMockReceiver) Unmatched() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.unmatched...)
}

func (r *WebhookMockReceiver) last() (RecordedRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.requests) == 0 {
		return RecordedRequest{}, ErrNoRequest
	}
	return r.requests[len(r.requests)-1], nil
}

// VerifyHeaders compares the latest request's headers, keyed in lower case,
// against expected.
func (r *WebhookMockReceiver) VerifyHeaders(expected matchers.Object) error {
	req, err := r.last()
	if err != nil {
		return err
	}

	actual := make(map[string]any, len(req.Header))
	for key, values := range req.Header {
		if len(values) > 0 {
			actual[strings.ToLower(key)] = values[0]
		}
	}
	return errors.Wrap(matchers.Compare(expected, actual), "header snapshot")
}

// VerifyBody compares the latest request's JSON body against expected.
func (r *WebhookMockReceiver) VerifyBody(expected matchers.Object) error {
	req, err := r.last()
	if err != nil {
		return err
	}

	var actual map[string]any
	if err := sonic.ConfigStd.Unmarshal(req.Body, &actual); err != nil {
		return errors.Wrap(err, "webhook body is not a JSON object")
	}
	return errors.Wrap(matchers.Compare(expected, actual), "body snapshot")
}

// MatchHeaderSnapshot records a test error when VerifyHeaders fails.
func (r *WebhookMockReceiver) MatchHeaderSnapshot(expected matchers.Object) *WebhookMockReceiver {
	r.t.Helper()
	if err := r.VerifyHeaders(expected); err != nil {
		r.t.Error(err)
	}
	return r
}

// MatchBodySnapshot records a test error when VerifyBody fails.
func (r *WebhookMockReceiver) MatchBodySnapshot(expected matchers.Object) *WebhookMockReceiver {
	r.t.Helper()
	if err := r.VerifyBody(expected); err != nil {
		r.t.Error(err)
	}
	return r
}
