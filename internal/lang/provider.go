package lang

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrProviderUnavailable indicates the translation provider is unreachable.
var ErrProviderUnavailable = errors.New("translation provider unavailable")

const defaultProviderTimeout = 30 * time.Second

// HTTPTranslator is an HTTP client for a LibreTranslate-compatible
// translation provider.
type HTTPTranslator struct {
	baseURL string
	client  *http.Client
}

// NewHTTPTranslator creates a provider client. timeout <= 0 uses the
// default.
func NewHTTPTranslator(baseURL string, timeout time.Duration) *HTTPTranslator {
	if timeout <= 0 {
		timeout = defaultProviderTimeout
	}
	return &HTTPTranslator{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

// Translate sends POST /translate and returns the translated text.
func (t *HTTPTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	body, err := json.Marshal(translateRequest{
		Q:      text,
		Source: sourceLang,
		Target: targetLang,
		Format: "text",
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/translate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("provider returned %d", resp.StatusCode)
	}

	var result translateResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&result); decodeErr != nil {
		return "", fmt.Errorf("decode response: %w", decodeErr)
	}
	if result.TranslatedText == "" {
		return "", errors.New("provider returned empty translation")
	}
	return result.TranslatedText, nil
}

// Health calls GET /languages, the cheapest endpoint a
// LibreTranslate-compatible provider exposes.
func (t *HTTPTranslator) Health(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"/languages", http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy status: %d", resp.StatusCode)
	}
	return nil
}
