package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Generator sends a prompt to a generative language model and returns the
// raw text of its response.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const (
	defaultModel   = "gemini-2.5-flash"
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
)

// secureHTTPClient is a configured HTTP client with proper timeouts
var secureHTTPClient = &http.Client{
	Timeout: 60 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	},
}

// GeminiClient implements Generator against the Gemini generateContent REST API
type GeminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// GeminiOption configures a GeminiClient
type GeminiOption func(*GeminiClient)

// WithModel overrides the default model
func WithModel(model string) GeminiOption {
	return func(c *GeminiClient) {
		c.model = model
	}
}

// WithBaseURL overrides the API endpoint, mainly for tests
func WithBaseURL(baseURL string) GeminiOption {
	return func(c *GeminiClient) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient overrides the HTTP client
func WithHTTPClient(client *http.Client) GeminiOption {
	return func(c *GeminiClient) {
		c.httpClient = client
	}
}

// NewGeminiClient creates a Gemini client using the GEMINI_API_KEY environment
// variable. A missing key is an unrecoverable configuration error.
func NewGeminiClient(opts ...GeminiOption) (*GeminiClient, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("missing Gemini credentials: set GEMINI_API_KEY")
	}

	c := &GeminiClient{
		apiKey:     apiKey,
		model:      defaultModel,
		baseURL:    defaultBaseURL,
		httpClient: secureHTTPClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Model returns the model identifier this client generates with
func (c *GeminiClient) Model() string {
	return c.model
}

// generateContent request/response shapes, reduced to the fields we use
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate sends the prompt to the model and returns the first candidate's text
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		slurp, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return "", fmt.Errorf("generation request failed with status %d: %s", res.StatusCode, slurp)
	}

	var parsed generateResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode generation response: %w", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("generation response contained no candidates")
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
