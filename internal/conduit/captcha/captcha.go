// Package captcha verifies Cloudflare Turnstile response tokens via the
// siteverify endpoint.
package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultEndpoint = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

type Verifier struct {
	client   *http.Client
	secret   string
	endpoint string
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{
		client:   &http.Client{Timeout: 10 * time.Second},
		secret:   secret,
		endpoint: defaultEndpoint,
	}
}

// NewVerifierWithEndpoint points the verifier at a custom siteverify URL,
// used by tests to stub the Turnstile API.
func NewVerifierWithEndpoint(secret, endpoint string) *Verifier {
	v := NewVerifier(secret)
	v.endpoint = endpoint
	return v
}

// Verify reports whether the given response token passes Turnstile
// validation. A network or decode failure is an error, not a rejection.
func (v *Verifier) Verify(ctx context.Context, token string) (bool, error) {
	form := url.Values{
		"secret":   {v.secret},
		"response": {token},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("captcha: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("captcha: siteverify request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("captcha: siteverify returned status %d", resp.StatusCode)
	}

	var body struct {
		Success    bool     `json:"success"`
		ErrorCodes []string `json:"error-codes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("captcha: decode siteverify response: %w", err)
	}

	return body.Success, nil
}
