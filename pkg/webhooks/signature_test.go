package webhooks

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSignature_RoundTrip(t *testing.T) {
	body := []byte(`{"member":{"current":{}}}`)
	ts := time.UnixMilli(1714557600123)

	header := Sign("s3cret", body, ts)
	assert.True(t, strings.HasPrefix(header, "sha256="))
	assert.True(t, strings.HasSuffix(header, ", t=1714557600123"))

	assert.NoError(t, VerifySignature("s3cret", body, header))
	assert.ErrorIs(t, VerifySignature("other", body, header), ErrInvalidSignature)
	assert.ErrorIs(t, VerifySignature("s3cret", []byte(`{}`), header), ErrInvalidSignature)
	assert.ErrorIs(t, VerifySignature("s3cret", body, "garbage"), ErrInvalidSignature)
}

func TestExponentialRetryPolicy(t *testing.T) {
	p := ExponentialRetryPolicy{Initial: 100 * time.Millisecond, Max: time.Second}

	assert.Equal(t, 100*time.Millisecond, p.NextDelay(1))
	assert.Equal(t, 200*time.Millisecond, p.NextDelay(2))
	assert.Equal(t, 800*time.Millisecond, p.NextDelay(4))
	assert.Equal(t, time.Second, p.NextDelay(5))
	assert.Equal(t, time.Second, p.NextDelay(50))
}

func TestDeliveryError_IsRetryable(t *testing.T) {
	assert.True(t, newStatusError(503, "Service Unavailable").IsRetryable())
	assert.True(t, newTimeoutError(nil).IsRetryable())
	assert.True(t, newNetworkError(nil).IsRetryable())
	assert.False(t, newStatusError(400, "Bad Request").IsRetryable())
	assert.False(t, newStatusError(410, "Gone").IsRetryable())
	assert.Equal(t, ErrorTypeGone, newStatusError(410, "Gone").Type)
	assert.Equal(t, "503", newStatusError(503, "Service Unavailable").Status())
	assert.Equal(t, "timeout", newTimeoutError(nil).Status())
}
