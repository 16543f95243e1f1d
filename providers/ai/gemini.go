package ai

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Amity808/crypt-bappgift/providers"
	"github.com/Amity808/crypt-bappgift/utils"
)

var (
	// ErrServiceUnavailable means no credential is configured. The message
	// assist feature degrades gracefully, no request is attempted.
	ErrServiceUnavailable = fmt.Errorf("ai service is not configured")
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.0-flash"
)

type GeminiProvider struct {
	providers.BaseProvider
	config *GeminiConfig
}

type GeminiConfig struct {
	GeminiProviderName string `mapstructure:"GEMINI_PROVIDER_NAME"`
	BaseURL            string `mapstructure:"GEMINI_BASE_URL"`
	APIKey             string `mapstructure:"GEMINI_API_KEY"`
	Model              string `mapstructure:"GEMINI_MODEL"`
}

func NewGeminiProvider() *GeminiProvider {

	var c GeminiConfig

	err := utils.LoadCustomConfig(utils.EnvPath, &c)
	if err != nil {
		panic(fmt.Sprintf("Could not load config: %v", err))
	}

	if c.GeminiProviderName == "" {
		c.GeminiProviderName = providers.Gemini
	}
	if c.BaseURL == "" {
		c.BaseURL = defaultBaseURL
	}
	if c.Model == "" {
		c.Model = defaultModel
	}

	return &GeminiProvider{
		BaseProvider: providers.BaseProvider{
			Name:    c.GeminiProviderName,
			BaseURL: c.BaseURL,
			APIKey:  c.APIKey,
			Client: &http.Client{
				Timeout: time.Second * 30,
			},
		},
		config: &c,
	}
}

// Available reports whether a credential is configured.
func (p *GeminiProvider) Available() bool {
	return p.APIKey != ""
}

// GenerateContent sends the prompt to the model and returns the generated
// text, or an empty string when the model returns no candidates.
func (p *GeminiProvider) GenerateContent(prompt string) (string, error) {
	if !p.Available() {
		return "", ErrServiceUnavailable
	}

	request := GenerateContentRequest{
		Contents: []Content{
			{Parts: []Part{{Text: prompt}}},
		},
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", p.BaseURL, p.config.Model)
	resp, err := p.MakeRequest("POST", url, request, map[string]string{
		"x-goog-api-key": p.APIKey,
	})
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, string(body))
	}

	var generated GenerateContentResponse
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(&generated); err != nil {
		return "", fmt.Errorf("error decoding response body: %w", err)
	}

	return generated.Text(), nil
}
