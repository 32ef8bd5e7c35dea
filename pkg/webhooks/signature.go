package webhooks

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// SignatureHeader carries the HMAC of a delivery when the webhook has a secret.
const SignatureHeader = "X-Webhook-Signature"

// ErrInvalidSignature is returned by VerifySignature on a mismatch.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// Sign returns the signature header value for body sent at ts:
// "sha256=<hex hmac of body+ts>, t=<unix ms>".
func Sign(secret string, body []byte, ts time.Time) string {
	ms := strconv.FormatInt(ts.UnixMilli(), 10)
	return fmt.Sprintf("sha256=%s, t=%s", digest(secret, body, ms), ms)
}

// VerifySignature checks a signature header produced by Sign.
func VerifySignature(secret string, body []byte, header string) error {
	var sum, ms string
	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "sha256":
			sum = v
		case "t":
			ms = v
		}
	}
	if sum == "" || ms == "" {
		return errors.Wrap(ErrInvalidSignature, "malformed header")
	}
	if !hmac.Equal([]byte(sum), []byte(digest(secret, body, ms))) {
		return ErrInvalidSignature
	}
	return nil
}

func digest(secret string, body []byte, ms string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	mac.Write([]byte(ms))
	return hex.EncodeToString(mac.Sum(nil))
}
