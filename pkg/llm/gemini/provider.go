package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-storevision-be/pkg/llm"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

type GeminiProvider struct {
	BaseURL    string
	APIKey     string
	ModelName  string
	ImageModel string
	Client     *http.Client
}

// Ensure GeminiProvider implements LLMProvider
var _ llm.LLMProvider = &GeminiProvider{}

func NewGeminiProvider(apiKey, modelName string) *GeminiProvider {
	return &GeminiProvider{
		BaseURL:    defaultBaseURL,
		APIKey:     apiKey,
		ModelName:  modelName,
		ImageModel: "imagen-3.0-generate-002",
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"` // base64
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiCandidate struct {
	Content *geminiContent `json:"content"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type imagenRequest struct {
	Instances  []imagenInstance `json:"instances"`
	Parameters imagenParameters `json:"parameters"`
}

type imagenInstance struct {
	Prompt string `json:"prompt"`
}

type imagenParameters struct {
	SampleCount int `json:"sampleCount"`
}

type imagenResponse struct {
	Predictions []imagenPrediction `json:"predictions"`
}

type imagenPrediction struct {
	BytesBase64Encoded string `json:"bytesBase64Encoded"`
	MimeType           string `json:"mimeType"`
}

// geminiAPIError mirrors the error envelope of the Generative Language API:
// {"error": {"code": 429, "message": "...", "status": "RESOURCE_EXHAUSTED"}}
type geminiAPIError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// --- Interface Implementation ---

func (g *GeminiProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := applyOptions(opts)

	contents := make([]geminiContent, 0, len(history))
	for _, msg := range history {
		role := msg.Role
		// Gemini uses "model" where others use "assistant"
		if role == "assistant" {
			role = "model"
		}
		contents = append(contents, geminiContent{
			Parts: []geminiPart{{Text: msg.Content}},
			Role:  role,
		})
	}

	return g.generateContent(ctx, g.model(options), contents, options)
}

func (g *GeminiProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return g.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func (g *GeminiProvider) GenerateVision(ctx context.Context, prompt string, image *llm.ImagePayload, opts ...llm.Option) (string, error) {
	options := applyOptions(opts)

	parts := []geminiPart{{Text: prompt}}
	if image != nil {
		parts = append(parts, geminiPart{
			InlineData: &geminiInlineData{
				MimeType: image.MediaType,
				Data:     base64.StdEncoding.EncodeToString(image.Data),
			},
		})
	}

	contents := []geminiContent{{Parts: parts, Role: "user"}}
	return g.generateContent(ctx, g.model(options), contents, options)
}

func (g *GeminiProvider) GenerateImage(ctx context.Context, prompt string, opts ...llm.Option) (*llm.ImagePayload, error) {
	payload := imagenRequest{
		Instances:  []imagenInstance{{Prompt: prompt}},
		Parameters: imagenParameters{SampleCount: 1},
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:predict", g.BaseURL, g.ImageModel)
	body, err := g.post(ctx, url, payload)
	if err != nil {
		return nil, err
	}

	var res imagenResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("unmarshal imagen response: %w", err)
	}
	if len(res.Predictions) == 0 {
		return nil, &llm.APIError{
			StatusCode: http.StatusInternalServerError,
			Status:     "EMPTY_RESPONSE",
			Message:    "imagen returned no predictions",
		}
	}

	data, err := base64.StdEncoding.DecodeString(res.Predictions[0].BytesBase64Encoded)
	if err != nil {
		return nil, fmt.Errorf("decode imagen payload: %w", err)
	}

	mime := res.Predictions[0].MimeType
	if mime == "" {
		mime = "image/png"
	}
	return &llm.ImagePayload{MediaType: mime, Data: data}, nil
}

// --- Helpers ---

func (g *GeminiProvider) generateContent(ctx context.Context, model string, contents []geminiContent, options *llm.Options) (string, error) {
	payload := geminiRequest{Contents: contents}
	if options.Temperature > 0 || options.MaxTokens > 0 {
		payload.GenerationConfig = &geminiGenerationConfig{
			Temperature:     options.Temperature,
			MaxOutputTokens: options.MaxTokens,
		}
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.BaseURL, model)
	body, err := g.post(ctx, url, payload)
	if err != nil {
		return "", err
	}

	var res geminiResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return "", fmt.Errorf("unmarshal gemini response: %w", err)
	}
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil || len(res.Candidates[0].Content.Parts) == 0 {
		return "", &llm.APIError{
			StatusCode: http.StatusBadRequest,
			Status:     "SAFETY",
			Message:    "gemini returned no candidates, likely blocked by safety filters",
		}
	}

	return res.Candidates[0].Content.Parts[0].Text, nil
}

func (g *GeminiProvider) post(ctx context.Context, url string, payload any) ([]byte, error) {
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadJson))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-goog-api-key", g.APIKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := g.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		apiErr := &llm.APIError{
			StatusCode: res.StatusCode,
			Message:    string(resBody),
		}
		var envelope geminiAPIError
		if err := json.Unmarshal(resBody, &envelope); err == nil && envelope.Error.Status != "" {
			apiErr.Status = envelope.Error.Status
			apiErr.Message = envelope.Error.Message
		}
		return nil, apiErr
	}

	return resBody, nil
}

func (g *GeminiProvider) model(options *llm.Options) string {
	if options.Model != "" {
		return options.Model
	}
	return g.ModelName
}

func applyOptions(opts []llm.Option) *llm.Options {
	options := &llm.Options{}
	for _, opt := range opts {
		opt(options)
	}
	return options
}
