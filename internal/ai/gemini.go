package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxGeminiBody ограничивает размер читаемого ответа API.
const maxGeminiBody = 1 << 20

var errGeminiNoContent = errors.New("gemini request has no user content")

// GeminiClient вызывает generateContent в Google Generative Language API.
type GeminiClient struct {
	apiKey     string
	baseURL    string
	model      string
	maxTokens  int
	httpClient *http.Client
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  *geminiConfig   `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiConfig struct {
	MaxOutputTokens int `json:"maxOutputTokens,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewGeminiClient создает клиент Gemini с заданными параметрами.
func NewGeminiClient(apiKey, baseURL, model string, timeout time.Duration, maxTokens int) *GeminiClient {
	return &GeminiClient{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		maxTokens:  maxTokens,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// newGeminiRequest раскладывает историю чата на системную инструкцию и
// реплики. Роль assistant в Gemini называется model.
func newGeminiRequest(messages []Message, maxTokens int) (geminiRequest, error) {
	request := geminiRequest{
		Contents:         make([]geminiContent, 0, len(messages)),
		GenerationConfig: &geminiConfig{MaxOutputTokens: resolveMaxTokens(maxTokens)},
	}

	var system []geminiPart
	for _, message := range messages {
		part := geminiPart{Text: strings.TrimSpace(message.Content)}
		if part.Text == "" {
			continue
		}

		role := strings.ToLower(strings.TrimSpace(message.Role))
		if role == roleSystem {
			system = append(system, part)
			continue
		}
		if role == "assistant" {
			role = "model"
		}
		if role != "model" {
			role = roleUser
		}
		request.Contents = append(request.Contents, geminiContent{Role: role, Parts: []geminiPart{part}})
	}

	if len(request.Contents) == 0 {
		return geminiRequest{}, errGeminiNoContent
	}
	if len(system) > 0 {
		request.SystemInstruction = &geminiContent{Parts: system}
	}

	return request, nil
}

// text склеивает части первого кандидата. Пустой список кандидатов дает "".
func (r geminiResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}

	var builder strings.Builder
	for _, part := range r.Candidates[0].Content.Parts {
		builder.WriteString(part.Text)
	}
	return builder.String()
}

func geminiStatusError(status int, body []byte) error {
	var apiErr geminiResponse
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != nil {
		return fmt.Errorf("gemini api error: %s", apiErr.Error.Message)
	}
	return fmt.Errorf("gemini api error: status %d", status)
}

func (c *GeminiClient) endpoint() string {
	return c.baseURL + "/models/" + url.PathEscape(c.model) + ":generateContent"
}

// Chat отправляет промпт и системную инструкцию в Gemini и возвращает текст ответа.
func (c *GeminiClient) Chat(ctx context.Context, messages []Message) (string, []byte, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return "", nil, ErrNoCredential
	}

	request, err := newGeminiRequest(messages, c.maxTokens)
	if err != nil {
		return "", nil, err
	}

	var payload bytes.Buffer
	if err := json.NewEncoder(&payload).Encode(request); err != nil {
		return "", nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), &payload)
	if err != nil {
		return "", nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxGeminiBody))
	if err != nil {
		return "", nil, err
	}
	if resp.StatusCode/100 != 2 {
		return "", body, geminiStatusError(resp.StatusCode, body)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", body, fmt.Errorf("decode gemini response: %w", err)
	}

	return parsed.text(), body, nil
}
