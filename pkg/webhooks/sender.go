package webhooks

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"newsletter-admin-go/pkg/models"
)

// Sender posts webhook payloads to their targets.
type Sender struct {
	client         atomic.Pointer[http.Client]
	timeout        time.Duration
	userAgent      string
	contentVersion string
}

// NewSender returns a Sender with a per-request timeout.
func NewSender(timeout time.Duration, userAgent, contentVersion string) *Sender {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	s := &Sender{
		timeout:        timeout,
		userAgent:      userAgent,
		contentVersion: contentVersion,
	}
	s.SetTransport(nil)
	return s
}

// SetTransport swaps the transport used for deliveries. nil restores the
// default transport.
func (s *Sender) SetTransport(rt http.RoundTripper) {
	s.client.Store(&http.Client{
		Timeout:   s.timeout,
		Transport: rt,
	})
}

// Send delivers body to hook's target URL. Any non-2xx response is returned
// as a *DeliveryError carrying the status code.
func (s *Sender) Send(ctx context.Context, hook models.Webhook, body []byte) (int, error) {
	target, err := url.Parse(hook.TargetURL)
	if err != nil || (target.Scheme != "http" && target.Scheme != "https") || target.Host == "" {
		return 0, newInvalidTargetError(hook.TargetURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), bytes.NewReader(body))
	if err != nil {
		return 0, newInvalidTargetError(hook.TargetURL, err)
	}

	contentVersion := s.contentVersion
	if hook.APIVersion != "" {
		contentVersion = hook.APIVersion
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Version", contentVersion)
	req.Header.Set("Content-Length", strconv.Itoa(len(body)))
	req.Header.Set("User-Agent", s.userAgent)
	if hook.Secret != "" {
		req.Header.Set(SignatureHeader, Sign(hook.Secret, body, time.Now()))
	}

	resp, err := s.client.Load().Do(req)
	if err != nil {
		return 0, classify(ctx, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, newStatusError(resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	return resp.StatusCode, nil
}

func classify(ctx context.Context, err error) *DeliveryError {
	if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		return newCancelledError(err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return newTimeoutError(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return newTimeoutError(err)
	}
	return newNetworkError(err)
}
