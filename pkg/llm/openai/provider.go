package openai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"doc-collab-be/pkg/llm"
)

// OpenAIProvider speaks the OpenAI-compatible /chat/completions protocol,
// which most hosted routers (HuggingFace, vLLM, LiteLLM) also expose.
type OpenAIProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

var _ llm.LLMProvider = &OpenAIProvider{}

func NewOpenAIProvider(apiKey, baseURL, model string) *OpenAIProvider {
	if baseURL == "" {
		baseURL = "https://router.huggingface.co/v1"
	}
	return &OpenAIProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
	Stream      bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
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

type streamEvent struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

const (
	dataPrefix   = "data:"
	doneSentinel = "[DONE]"
)

func (p *OpenAIProvider) buildRequest(ctx context.Context, history []llm.Message, stream bool, options ...llm.Option) (*http.Request, error) {
	opts := &llm.Options{
		Model:     p.model,
		MaxTokens: 1024,
	}
	for _, o := range options {
		o(opts)
	}

	messages := make([]chatMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = "assistant"
		}
		messages[i] = chatMessage{Role: role, Content: msg.Content}
	}

	reqBody := chatRequest{
		Model:       opts.Model,
		Messages:    messages,
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
		Stream:      stream,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", p.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))
	}
	return req, nil
}

func (p *OpenAIProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	req, err := p.buildRequest(ctx, history, false, options...)
	if err != nil {
		return "", err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion api error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("completion api returned error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("empty choices from completion api")
	}

	return chatResp.Choices[0].Message.Content, nil
}

// ChatStream issues a streaming completion and decodes the SSE frames. The
// decoder is a line-oriented state machine: bufio reassembles arbitrary byte
// chunks into lines, lines carrying the data prefix are parsed as JSON delta
// events, the [DONE] sentinel ends the stream, and malformed frames are
// skipped rather than aborting (the transport does not align chunk
// boundaries with events).
func (p *OpenAIProvider) ChatStream(ctx context.Context, history []llm.Message, options ...llm.Option) (<-chan llm.Delta, error) {
	req, err := p.buildRequest(ctx, history, true, options...)
	if err != nil {
		return nil, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("completion request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("completion api error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	deltas := make(chan llm.Delta)

	go func() {
		defer close(deltas)
		defer resp.Body.Close()

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		terminated := false
		for scanner.Scan() {
			select {
			case <-ctx.Done():
				// Client went away: stop reading and release the upstream.
				return
			default:
			}

			line := strings.TrimSpace(scanner.Text())
			if line == "" || !strings.HasPrefix(line, dataPrefix) {
				continue
			}
			payload := strings.TrimSpace(strings.TrimPrefix(line, dataPrefix))
			if payload == doneSentinel {
				terminated = true
				break
			}

			var event streamEvent
			if err := json.Unmarshal([]byte(payload), &event); err != nil {
				// Partial or corrupt frame; skip it and keep decoding.
				continue
			}
			if len(event.Choices) == 0 {
				continue
			}
			content := event.Choices[0].Delta.Content
			if content == "" {
				continue
			}

			select {
			case deltas <- llm.Delta{Content: content}:
			case <-ctx.Done():
				return
			}
		}

		if terminated {
			return
		}
		if ctx.Err() != nil {
			return
		}

		// EOF or read error before the terminal marker means the generation
		// did not complete.
		err := scanner.Err()
		if err == nil {
			err = fmt.Errorf("stream ended without terminal marker")
		}
		select {
		case deltas <- llm.Delta{Err: err}:
		case <-ctx.Done():
		}
	}()

	return deltas, nil
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}
