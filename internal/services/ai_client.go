package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/yungbote/habitloop-backend/internal/logger"
	"github.com/yungbote/habitloop-backend/internal/utils"
)

type AIClient interface {
	Chat(ctx context.Context, messages []AIMessage, opts *AIOptions) (*AICompletion, error)
}

type AIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type AIOptions struct {
	Temperature float32
	MaxTokens   int
}

type AICompletion struct {
	Content string
}

type aiClient struct {
	httpClient *http.Client
	log        *logger.Logger
	apiKey     string
	baseURL    string
	chatModel  string
}

func NewAIClient(log *logger.Logger) (AIClient, error) {
	serviceLog := log.With("service", "AIClient")
	apiKey := utils.GetEnv("OPENAI_API_KEY", "", log)
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	baseURL := utils.GetEnv("OPENAI_BASE_URL", "https://api.openai.com/v1", log)
	chatModel := utils.GetEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini", log)
	return &aiClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log:       serviceLog,
		apiKey:    apiKey,
		baseURL:   baseURL,
		chatModel: chatModel,
	}, nil
}

type chatRequest struct {
	Model       string      `json:"model"`
	Messages    []AIMessage `json:"messages"`
	Temperature float32     `json:"temperature,omitempty"`
	MaxTokens   int         `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *aiClient) Chat(ctx context.Context, messages []AIMessage, opts *AIOptions) (*AICompletion, error) {
	payload := chatRequest{
		Model:    c.chatModel,
		Messages: messages,
	}
	if opts != nil {
		payload.Temperature = opts.Temperature
		payload.MaxTokens = opts.MaxTokens
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read chat response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chat request failed with status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode chat response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("chat completion error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}
	return &AICompletion{Content: parsed.Choices[0].Message.Content}, nil
}
