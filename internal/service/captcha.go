package queue_publisher

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// CaptchaVerifier scores form submissions against a bot-verification
// service. A submission is accepted when the returned score is at or above
// Threshold. An empty Secret disables the check entirely, which keeps local
// development and tests independent of the external service.
type CaptchaVerifier struct {
	Secret    string
	URL       string
	Threshold float64
	Client    *http.Client
}

// NewCaptchaVerifier builds a verifier with a bounded request timeout.
func NewCaptchaVerifier(secret, endpoint string, threshold float64) *CaptchaVerifier {
	return &CaptchaVerifier{
		Secret:    secret,
		URL:       endpoint,
		Threshold: threshold,
		Client:    &http.Client{Timeout: 5 * time.Second},
	}
}

type captchaResp struct {
	Success bool    `json:"success"`
	Score   float64 `json:"score"`
}

// Verify posts the client token to the scoring endpoint and reports whether
// the submission passes. Network or decode errors are returned so the
// caller can decide whether to fail open or closed.
func (v *CaptchaVerifier) Verify(ctx context.Context, token, remoteIP string) (bool, error) {
	if v.Secret == "" {
		return true, nil
	}
	form := url.Values{}
	form.Set("secret", v.Secret)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.URL, strings.NewReader(form.Encode()))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.Client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	var out captchaResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, err
	}
	return out.Success && out.Score >= v.Threshold, nil
}
