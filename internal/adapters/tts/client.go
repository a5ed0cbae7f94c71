package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	portssvc "github.com/hnv-dev/product_desc_app/internal/core/ports/services"
)

// Client synthesizes speech through an external HTTP TTS service.
type Client struct {
	baseURL      string
	defaultVoice string
	httpClient   *http.Client
}

var _ portssvc.SpeechSynthesizer = (*Client)(nil)

func NewClient(baseURL, defaultVoice string, timeout time.Duration) *Client {
	return &Client{
		baseURL:      baseURL,
		defaultVoice: defaultVoice,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

type synthesizeRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
}

func (c *Client) Synthesize(ctx context.Context, text, voice string) ([]byte, string, error) {
	if c.baseURL == "" {
		return nil, "", fmt.Errorf("tts service is not configured")
	}
	if voice == "" {
		voice = c.defaultVoice
	}

	body, err := json.Marshal(synthesizeRequest{Text: text, Voice: voice})
	if err != nil {
		return nil, "", fmt.Errorf("failed to encode tts request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/synthesize", bytes.NewReader(body))
	if err != nil {
		return nil, "", fmt.Errorf("failed to build tts request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("tts request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("tts service returned status %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read tts response: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/mpeg"
	}
	return audio, contentType, nil
}
