package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"gemblog/internal/config"
	"gemblog/internal/metrics"
	"gemblog/internal/models"
)

const (
	bloggerInstruction = "You are an expert blogger. Write a compelling, well-structured, and engaging blog post based on the user's prompt. The tone should be informative yet accessible. Use paragraphs for readability. Do not use markdown formatting."
	newsPromptFormat   = `Provide a concise summary of the latest news about "%s".`
	noNewsSummary      = "Could not find any news on this topic."
	imageAspectRatio   = "16:9"
	defaultImageMIME   = "image/png"
)

// AIService handles interactions with the Gemini REST API. Calls are not
// cached, deduplicated or retried.
type AIService struct {
	Client *http.Client

	baseURL    string
	apiKey     string
	textModel  string
	imageModel string
	log        *slog.Logger
}

// NewAIService creates a new AIService.
func NewAIService(cfg config.Gemini, log *slog.Logger) *AIService {
	return &AIService{
		Client:     &http.Client{Timeout: cfg.Timeout}, // image generation can take a while
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		textModel:  cfg.TextModel,
		imageModel: cfg.ImageModel,
		log:        log,
	}
}

// generateContent request structure
type generateRequest struct {
	Contents          []content `json:"contents"`
	SystemInstruction *content  `json:"systemInstruction,omitempty"`
	Tools             []tool    `json:"tools,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text    string `json:"text,omitempty"`
	Thought bool   `json:"thought,omitempty"`
}

type tool struct {
	GoogleSearch *struct{} `json:"google_search,omitempty"`
}

// generateContent response structure
type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content           content            `json:"content"`
	GroundingMetadata *groundingMetadata `json:"groundingMetadata,omitempty"`
}

type groundingMetadata struct {
	GroundingChunks []groundingChunk `json:"groundingChunks"`
}

type groundingChunk struct {
	Web *webChunk `json:"web,omitempty"`
}

type webChunk struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// predict (image generation) request and response structures
type predictRequest struct {
	Instances  []imageInstance `json:"instances"`
	Parameters imageParameters `json:"parameters"`
}

type imageInstance struct {
	Prompt string `json:"prompt"`
}

type imageParameters struct {
	SampleCount int    `json:"sampleCount"`
	AspectRatio string `json:"aspectRatio"`
}

type predictResponse struct {
	Predictions []prediction `json:"predictions"`
}

type prediction struct {
	BytesBase64Encoded string `json:"bytesBase64Encoded"`
	MimeType           string `json:"mimeType"`
}

type apiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// GenerateArticle writes a blog post for the prompt.
func (s *AIService) GenerateArticle(ctx context.Context, prompt string) (text string, err error) {
	defer s.observe(OpGenerateContent, &err)

	reqBody := generateRequest{
		Contents:          []content{userText(prompt)},
		SystemInstruction: &content{Parts: []part{{Text: bloggerInstruction}}},
	}

	var apiResp generateResponse
	if err := s.post(ctx, OpGenerateContent, s.modelURL(s.textModel, "generateContent"), reqBody, &apiResp); err != nil {
		return "", err
	}

	text = apiResp.text()
	if text == "" {
		return "", &GenerationError{Op: OpGenerateContent, Reason: ReasonEmptyResponse}
	}
	return text, nil
}

// GenerateImage renders one 16:9 image for the prompt and returns it as a
// data URI.
func (s *AIService) GenerateImage(ctx context.Context, prompt string) (dataURI string, err error) {
	defer s.observe(OpGenerateImage, &err)

	reqBody := predictRequest{
		Instances:  []imageInstance{{Prompt: prompt}},
		Parameters: imageParameters{SampleCount: 1, AspectRatio: imageAspectRatio},
	}

	var apiResp predictResponse
	if err := s.post(ctx, OpGenerateImage, s.modelURL(s.imageModel, "predict"), reqBody, &apiResp); err != nil {
		return "", err
	}

	for _, p := range apiResp.Predictions {
		if p.BytesBase64Encoded == "" {
			continue
		}
		mimeType := p.MimeType
		if mimeType == "" {
			mimeType = defaultImageMIME
		}
		return fmt.Sprintf("data:%s;base64,%s", mimeType, p.BytesBase64Encoded), nil
	}
	return "", &GenerationError{Op: OpGenerateImage, Reason: ReasonNoImage}
}

// FetchNews summarises the latest news about topic, grounded in Google
// Search. An empty answer is a successful "nothing found" result.
func (s *AIService) FetchNews(ctx context.Context, topic string) (result models.NewsResult, err error) {
	defer s.observe(OpFetchNews, &err)

	reqBody := generateRequest{
		Contents: []content{userText(fmt.Sprintf(newsPromptFormat, topic))},
		Tools:    []tool{{GoogleSearch: &struct{}{}}},
	}

	var apiResp generateResponse
	if err := s.post(ctx, OpFetchNews, s.modelURL(s.textModel, "generateContent"), reqBody, &apiResp); err != nil {
		return models.NewsResult{}, err
	}

	summary := apiResp.text()
	sources := apiResp.sources()
	if summary == "" && len(sources) == 0 {
		return models.NewsResult{Summary: noNewsSummary, Sources: []models.NewsSource{}}, nil
	}
	return models.NewsResult{Summary: summary, Sources: sources}, nil
}

func (s *AIService) modelURL(model, method string) string {
	return fmt.Sprintf("%s/v1beta/models/%s:%s", s.baseURL, model, method)
}

// post sends one JSON request and decodes the response into out. Every
// failure comes back as a *GenerationError.
func (s *AIService) post(ctx context.Context, op Operation, url string, body, out any) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return &GenerationError{Op: op, Reason: ReasonTransport, Err: fmt.Errorf("failed to marshal request body: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return &GenerationError{Op: op, Reason: ReasonTransport, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.Client.Do(req)
	if err != nil {
		return &GenerationError{Op: op, Reason: ReasonTransport, Err: fmt.Errorf("failed to send request to AI API: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return &GenerationError{
			Op:         op,
			Reason:     ReasonAPI,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("AI API returned status %d: %s", resp.StatusCode, apiErrorMessage(bodyBytes)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &GenerationError{Op: op, Reason: ReasonAPI, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode AI API response: %w", err)}
	}
	return nil
}

func (s *AIService) observe(op Operation, errp *error) {
	status := "ok"
	if *errp != nil {
		status = "error"
		var genErr *GenerationError
		if errors.As(*errp, &genErr) {
			status = genErr.Reason.String()
		}
		s.log.Error("AI request failed", slog.String("operation", string(op)), slog.Any("err", *errp))
	}
	metrics.AIRequestsTotal.WithLabelValues(string(op), status).Inc()
}

func userText(text string) content {
	return content{Role: "user", Parts: []part{{Text: text}}}
}

// text joins the non-thought text parts of the first candidate.
func (r *generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		if p.Thought {
			continue
		}
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// sources collects web citations carrying both a URI and a title, first
// occurrence of each URI wins.
func (r *generateResponse) sources() []models.NewsSource {
	sources := []models.NewsSource{}
	if len(r.Candidates) == 0 || r.Candidates[0].GroundingMetadata == nil {
		return sources
	}
	seen := make(map[string]bool)
	for _, chunk := range r.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk.Web == nil || chunk.Web.URI == "" || chunk.Web.Title == "" {
			continue
		}
		if seen[chunk.Web.URI] {
			continue
		}
		seen[chunk.Web.URI] = true
		sources = append(sources, models.NewsSource{URI: chunk.Web.URI, Title: chunk.Web.Title})
	}
	return sources
}

func apiErrorMessage(body []byte) string {
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return apiErr.Error.Message
	}
	return strings.TrimSpace(string(body))
}
