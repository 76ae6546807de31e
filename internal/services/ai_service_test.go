package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gemblog/internal/config"
	"gemblog/internal/logger"
	"gemblog/internal/models"
	"gemblog/internal/services"

	"github.com/stretchr/testify/require"
)

// fakeGemini records the last request and answers with a canned response.
type fakeGemini struct {
	status int
	body   string

	path    string
	apiKey  string
	payload map[string]any
}

func (f *fakeGemini) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.path = r.URL.Path
	f.apiKey = r.Header.Get("x-goog-api-key")
	raw, _ := io.ReadAll(r.Body)
	f.payload = map[string]any{}
	_ = json.Unmarshal(raw, &f.payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(f.status)
	_, _ = io.WriteString(w, f.body)
}

func newAIService(t *testing.T, status int, body string) (*services.AIService, *fakeGemini) {
	t.Helper()
	fake := &fakeGemini{status: status, body: body}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	svc := services.NewAIService(config.Gemini{
		APIKey:     "secret",
		BaseURL:    srv.URL + "/",
		TextModel:  "gemini-2.5-flash",
		ImageModel: "imagen-4.0-generate-001",
		Timeout:    5 * time.Second,
	}, logger.Discard())
	return svc, fake
}

func requireReason(t *testing.T, err error, reason services.FailureReason) *services.GenerationError {
	t.Helper()
	var genErr *services.GenerationError
	require.True(t, errors.As(err, &genErr), "expected GenerationError, got %T", err)
	require.Equal(t, reason, genErr.Reason)
	return genErr
}

func TestGenerateArticle(t *testing.T) {
	svc, fake := newAIService(t, http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"thinking","thought":true},{"text":"Hello "},{"text":"world"}]}}]}`)

	text, err := svc.GenerateArticle(context.Background(), "write about Go")
	require.NoError(t, err)
	require.Equal(t, "Hello world", text)

	require.Equal(t, "/v1beta/models/gemini-2.5-flash:generateContent", fake.path)
	require.Equal(t, "secret", fake.apiKey)
	require.Contains(t, fake.payload, "systemInstruction")
	require.NotContains(t, fake.payload, "tools")
	contents := fake.payload["contents"].([]any)
	first := contents[0].(map[string]any)
	require.Equal(t, "write about Go", first["parts"].([]any)[0].(map[string]any)["text"])
}

func TestGenerateArticleEmptyResponse(t *testing.T) {
	for name, body := range map[string]string{
		"no candidates": `{"candidates":[]}`,
		"empty text":    `{"candidates":[{"content":{"parts":[{"text":""}]}}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			svc, _ := newAIService(t, http.StatusOK, body)

			text, err := svc.GenerateArticle(context.Background(), "p")
			require.Empty(t, text)
			requireReason(t, err, services.ReasonEmptyResponse)
			require.Equal(t, "Error: The AI returned an empty response.", err.Error())
			require.True(t, services.HasErrorMarker(err.Error()))
		})
	}
}

func TestGenerateArticleAPIError(t *testing.T) {
	svc, _ := newAIService(t, http.StatusBadRequest, `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`)

	_, err := svc.GenerateArticle(context.Background(), "p")
	genErr := requireReason(t, err, services.ReasonAPI)
	require.Equal(t, http.StatusBadRequest, genErr.StatusCode)
	require.Equal(t, "Error: Failed to generate content. AI API returned status 400: API key not valid", err.Error())
}

func TestGenerateArticleTransportError(t *testing.T) {
	svc, _ := newAIService(t, http.StatusOK, `{}`)
	svc.Client = &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})}

	_, err := svc.GenerateArticle(context.Background(), "p")
	requireReason(t, err, services.ReasonTransport)
	require.True(t, services.HasErrorMarker(err.Error()))
	require.Contains(t, err.Error(), "connection refused")
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestGenerateImage(t *testing.T) {
	svc, fake := newAIService(t, http.StatusOK, `{"predictions":[{"bytesBase64Encoded":"iVBORw0KGgo=","mimeType":"image/jpeg"}]}`)

	uri, err := svc.GenerateImage(context.Background(), "a developer coding")
	require.NoError(t, err)
	require.Equal(t, "data:image/jpeg;base64,iVBORw0KGgo=", uri)

	require.Equal(t, "/v1beta/models/imagen-4.0-generate-001:predict", fake.path)
	params := fake.payload["parameters"].(map[string]any)
	require.EqualValues(t, 1, params["sampleCount"])
	require.Equal(t, "16:9", params["aspectRatio"])
}

func TestGenerateImageDefaultsMimeType(t *testing.T) {
	svc, _ := newAIService(t, http.StatusOK, `{"predictions":[{"bytesBase64Encoded":"AAAA"}]}`)

	uri, err := svc.GenerateImage(context.Background(), "p")
	require.NoError(t, err)
	require.Equal(t, "data:image/png;base64,AAAA", uri)
}

func TestGenerateImageNoImage(t *testing.T) {
	svc, _ := newAIService(t, http.StatusOK, `{"predictions":[{"raiFilteredReason":"blocked"}]}`)

	uri, err := svc.GenerateImage(context.Background(), "p")
	require.Empty(t, uri)
	requireReason(t, err, services.ReasonNoImage)
	require.Equal(t, "Error: No image was generated.", err.Error())
}

func TestFetchNewsDeduplicatesSources(t *testing.T) {
	svc, fake := newAIService(t, http.StatusOK, `{"candidates":[{
		"content":{"parts":[{"text":"Big things happened."}]},
		"groundingMetadata":{"groundingChunks":[
			{"web":{"uri":"https://a.example","title":"A"}},
			{"web":{"uri":"https://b.example","title":"B"}},
			{"web":{"uri":"https://a.example","title":"A again"}},
			{"web":{"uri":"https://c.example"}},
			{"web":{"title":"no uri"}},
			{}
		]}
	}]}`)

	result, err := svc.FetchNews(context.Background(), "tech")
	require.NoError(t, err)
	require.Equal(t, models.NewsResult{
		Summary: "Big things happened.",
		Sources: []models.NewsSource{
			{URI: "https://a.example", Title: "A"},
			{URI: "https://b.example", Title: "B"},
		},
	}, result)

	tools := fake.payload["tools"].([]any)
	require.Contains(t, tools[0].(map[string]any), "google_search")
	contents := fake.payload["contents"].([]any)
	prompt := contents[0].(map[string]any)["parts"].([]any)[0].(map[string]any)["text"]
	require.Equal(t, `Provide a concise summary of the latest news about "tech".`, prompt)
}

func TestFetchNewsSummaryWithoutSources(t *testing.T) {
	svc, _ := newAIService(t, http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"Quiet week."}]}}]}`)

	result, err := svc.FetchNews(context.Background(), "x")
	require.NoError(t, err)
	require.Equal(t, "Quiet week.", result.Summary)
	require.NotNil(t, result.Sources)
	require.Empty(t, result.Sources)
}

func TestFetchNewsNothingFound(t *testing.T) {
	svc, _ := newAIService(t, http.StatusOK, `{"candidates":[]}`)

	result, err := svc.FetchNews(context.Background(), "x")
	require.NoError(t, err)
	require.Equal(t, "Could not find any news on this topic.", result.Summary)
	require.Empty(t, result.Sources)
}

func TestFetchNewsSourcesWithoutSummary(t *testing.T) {
	svc, _ := newAIService(t, http.StatusOK, `{"candidates":[{"content":{"parts":[]},"groundingMetadata":{"groundingChunks":[{"web":{"uri":"u","title":"t"}}]}}]}`)

	result, err := svc.FetchNews(context.Background(), "x")
	require.NoError(t, err)
	require.Empty(t, result.Summary)
	require.Len(t, result.Sources, 1)
}

func TestFetchNewsFailure(t *testing.T) {
	svc, _ := newAIService(t, http.StatusInternalServerError, `upstream exploded`)

	_, err := svc.FetchNews(context.Background(), "x")
	requireReason(t, err, services.ReasonAPI)
	require.Equal(t, "Failed to fetch news. AI API returned status 500: upstream exploded", err.Error())
	require.False(t, services.HasErrorMarker(err.Error()))
}

func TestFetchNewsUndecodableBody(t *testing.T) {
	svc, _ := newAIService(t, http.StatusOK, `<html>`)

	_, err := svc.FetchNews(context.Background(), "x")
	requireReason(t, err, services.ReasonAPI)
}
