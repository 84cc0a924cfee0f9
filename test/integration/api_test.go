package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-storevision-be/internal/bootstrap"
	"ai-storevision-be/internal/config"
	"ai-storevision-be/internal/controller"
	"ai-storevision-be/internal/server"
	"ai-storevision-be/internal/service"
	"ai-storevision-be/pkg/filestore"
	"ai-storevision-be/pkg/llm"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const onePixelPNG = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

type quietLogger struct{}

func (quietLogger) Debug(module, message string, details map[string]interface{}) {}
func (quietLogger) Info(module, message string, details map[string]interface{})  {}
func (quietLogger) Warn(module, message string, details map[string]interface{})  {}
func (quietLogger) Error(module, message string, details map[string]interface{}) {}
func (quietLogger) Sync() error                                                  { return nil }

// scriptedProvider answers every text call with one canned reply.
type scriptedProvider struct {
	reply string
	err   error
}

func (p *scriptedProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return p.reply, p.err
}

func (p *scriptedProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.reply, p.err
}

func (p *scriptedProvider) GenerateVision(ctx context.Context, prompt string, image *llm.ImagePayload, opts ...llm.Option) (string, error) {
	return p.reply, p.err
}

func (p *scriptedProvider) GenerateImage(ctx context.Context, prompt string, opts ...llm.Option) (*llm.ImagePayload, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &llm.ImagePayload{MediaType: "image/png", Data: []byte{1, 2, 3}}, nil
}

func newTestApp(t *testing.T, provider llm.LLMProvider) (*fiber.App, string) {
	t.Helper()
	dir := t.TempDir()

	cfg := &config.Config{
		App: config.AppConfig{
			Port:               "0",
			CorsAllowedOrigins: "*",
			LogFilePath:        filepath.Join(dir, "test.log"),
		},
		Store: config.StoreConfig{DataDir: dir},
	}

	lg := quietLogger{}
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	publisher := service.NewPublisherService(pubSub, lg)
	storeService := service.NewStoreService(filestore.New(dir), publisher, lg)
	assistantService := service.NewAssistantService(provider, "", lg)

	container := &bootstrap.Container{
		StoreController:     controller.NewStoreController(storeService),
		AssistantController: controller.NewAssistantController(assistantService),
		ConsumerService:     service.NewConsumerService(pubSub, lg),
		Logger:              lg,
	}

	return server.New(cfg, container).GetApp(), dir
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	return res
}

func decodeBody(t *testing.T, res *http.Response, v any) {
	t.Helper()
	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, v), "body: %s", raw)
}

func TestVisionSaveAndListFlow(t *testing.T) {
	app, _ := newTestApp(t, &scriptedProvider{})

	res := postJSON(t, app, "/api/data/vision", map[string]any{
		"cameraName": "Frente de Caixa",
		"imageData":  onePixelPNG,
		"task":       "count people",
		"result":     map[string]any{"summary": "1 person", "charts": []any{}},
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var saved struct {
		Id        string  `json:"id"`
		ImageFile *string `json:"imageFile"`
	}
	decodeBody(t, res, &saved)
	assert.True(t, strings.HasPrefix(saved.Id, "vision_"))
	require.NotNil(t, saved.ImageFile)

	// The saved analysis is listed first in the store document
	req := httptest.NewRequest(http.MethodGet, "/api/data", nil)
	listRes, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, listRes.StatusCode)

	var doc struct {
		VisionAnalyses []struct {
			Id string `json:"id"`
		} `json:"visionAnalyses"`
	}
	decodeBody(t, listRes, &doc)
	require.NotEmpty(t, doc.VisionAnalyses)
	assert.Equal(t, saved.Id, doc.VisionAnalyses[0].Id)

	// And its image is servable
	imgReq := httptest.NewRequest(http.MethodGet, "/api/data/images/"+*saved.ImageFile, nil)
	imgRes, err := app.Test(imgReq, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, imgRes.StatusCode)
	assert.Contains(t, imgRes.Header.Get("Content-Type"), "image/png")
}

func TestDeleteUnknownIdLeavesStoreUnchanged(t *testing.T) {
	app, _ := newTestApp(t, &scriptedProvider{})

	res := postJSON(t, app, "/api/data/vision", map[string]any{
		"cameraName": "Entrada",
		"task":       "check queue",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	req := httptest.NewRequest(http.MethodDelete, "/api/data/vision/vision_missing", nil)
	delRes, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, delRes.StatusCode)

	var errBody struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	decodeBody(t, delRes, &errBody)
	assert.Equal(t, "not_found", errBody.Code)
	assert.NotEmpty(t, errBody.Error)

	listReq := httptest.NewRequest(http.MethodGet, "/api/data", nil)
	listRes, err := app.Test(listReq, -1)
	require.NoError(t, err)

	var doc struct {
		VisionAnalyses []any `json:"visionAnalyses"`
	}
	decodeBody(t, listRes, &doc)
	assert.Len(t, doc.VisionAnalyses, 1, "failed delete must not change the store")
}

func TestServeUnknownImage(t *testing.T) {
	app, dir := newTestApp(t, &scriptedProvider{})

	req := httptest.NewRequest(http.MethodGet, "/api/data/images/nonexistent.png", nil)
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	_, statErr := os.Stat(filepath.Join(dir, "images", "nonexistent.png"))
	assert.True(t, os.IsNotExist(statErr), "lookup must not create the file")
}

func TestGeneratedImageRejectsMalformedPayload(t *testing.T) {
	app, _ := newTestApp(t, &scriptedProvider{})

	res := postJSON(t, app, "/api/data/generated-image", map[string]any{
		"cameraName": "Entrada",
		"imageData":  "not a data uri",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var errBody struct {
		Code string `json:"code"`
	}
	decodeBody(t, res, &errBody)
	assert.Equal(t, "validation_error", errBody.Code)
}

func TestChatUpsertFlow(t *testing.T) {
	app, _ := newTestApp(t, &scriptedProvider{})

	res := postJSON(t, app, "/api/data/chat", map[string]any{
		"messages": []map[string]any{{"role": "user", "content": "oi"}},
	})
	require.Equal(t, http.StatusOK, res.StatusCode)

	var first struct {
		Id        string `json:"id"`
		StartedAt string `json:"startedAt"`
	}
	decodeBody(t, res, &first)
	require.NotEmpty(t, first.Id)

	res = postJSON(t, app, "/api/data/chat", map[string]any{
		"id": first.Id,
		"messages": []map[string]any{
			{"role": "user", "content": "oi"},
			{"role": "model", "content": "olá!"},
		},
	})
	require.Equal(t, http.StatusOK, res.StatusCode)

	var second struct {
		Id        string `json:"id"`
		StartedAt string `json:"startedAt"`
		Messages  []any  `json:"messages"`
	}
	decodeBody(t, res, &second)
	assert.Equal(t, first.Id, second.Id)
	assert.Equal(t, first.StartedAt, second.StartedAt)
	assert.Len(t, second.Messages, 2)
}

func TestAnalyzeImageEndpoint(t *testing.T) {
	app, _ := newTestApp(t, &scriptedProvider{
		reply: `{"objects":["pessoa"],"summary":"1 pessoa no caixa","charts":[]}`,
	})

	res := postJSON(t, app, "/api/analyze-image", map[string]any{
		"imageData": onePixelPNG,
		"task":      "count people",
	})
	require.Equal(t, http.StatusOK, res.StatusCode)

	var body struct {
		Objects []string `json:"objects"`
		Summary string   `json:"summary"`
	}
	decodeBody(t, res, &body)
	assert.Equal(t, []string{"pessoa"}, body.Objects)
	assert.Equal(t, "1 pessoa no caixa", body.Summary)
}

func TestGatewayErrorTaxonomyOverHTTP(t *testing.T) {
	app, _ := newTestApp(t, &scriptedProvider{
		err: &llm.APIError{StatusCode: 429, Status: "RESOURCE_EXHAUSTED", Message: "upstream detail"},
	})

	res := postJSON(t, app, "/api/store-insights", map[string]any{
		"query": "como está a loja?",
	})
	assert.Equal(t, http.StatusTooManyRequests, res.StatusCode)

	var errBody struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	decodeBody(t, res, &errBody)
	assert.Equal(t, "rate_limited", errBody.Code)
	assert.NotContains(t, errBody.Error, "upstream detail")
}

func TestHealthEndpoint(t *testing.T) {
	app, _ := newTestApp(t, &scriptedProvider{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}
