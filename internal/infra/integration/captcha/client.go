package captcha

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client verifies challenge tokens against the provider's siteverify
// endpoint. It FAILS CLOSED: any transport or parsing failure reads as an
// invalid token. Opposite policy to the rate limiter, because this gate
// exists to stop automated abuse and a false negative only costs a genuine
// user one retry.
type Client struct {
	secret    string
	verifyURL string
	http      *http.Client
}

func NewClient(secret, verifyURL string) *Client {
	return &Client{
		secret:    secret,
		verifyURL: verifyURL,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Verify(ctx context.Context, token string) bool {
	if c.secret == "" {
		log.Println("⚠️ captcha secret not configured, rejecting token")
		return false
	}

	form := url.Values{}
	form.Set("secret", c.secret)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, "POST", c.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("❌ captcha verify request failed: %v", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("❌ captcha verify returned status %d", resp.StatusCode)
		return false
	}

	var result verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("❌ captcha verify decode failed: %v", err)
		return false
	}

	if !result.Success && len(result.ErrorCodes) > 0 {
		log.Printf("captcha rejected: %v", result.ErrorCodes)
	}

	return result.Success
}
