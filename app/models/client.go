package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"NexiAssistant/app/configs"
	"NexiAssistant/app/utils/restclient"
)

const (
	chatEndpoint      = "/v1/chat/completions"
	embeddingEndpoint = "/v1/embeddings"

	maxRetries = 3
)

var _ Interface = &LLMClient{}

// LLMClient talks to two OpenAI-compatible providers: one for chat
// completions, one for embeddings. They may be the same server.
type LLMClient struct {
	chat  *restclient.RestClient
	embed *restclient.RestClient

	model           string
	embeddingsModel string
	cache           embeddingCache
}

func NewLLMClient(model configs.ModelConfig, embeddings configs.EmbeddingsConfig) *LLMClient {
	return &LLMClient{
		chat:            restclient.NewRestClient(model.BaseURL, authHeaders(model.APIKey)),
		embed:           restclient.NewRestClient(embeddings.BaseURL, authHeaders(embeddings.APIKey)),
		model:           model.Model,
		embeddingsModel: embeddings.Model,
	}
}

func authHeaders(apiKey string) map[string]string {
	if apiKey == "" {
		return nil
	}
	return map[string]string{"Authorization": "Bearer " + apiKey}
}

// Think runs a single chat completion and returns the assistant message.
func (mc *LLMClient) Think(ctx context.Context, messages []Message, temp float64, maxTokens int) (string, error) {
	payload := requestPayload{
		Model:       mc.model,
		Messages:    messages,
		Temperature: temp,
	}
	if maxTokens > 0 {
		payload.MaxTokens = maxTokens
	}

	response, err := mc.sendRequestAndParse(ctx, payload)
	if err != nil {
		return "", err
	}
	if len(response.Choices) == 0 {
		return "", errors.New("empty LLM response")
	}
	return response.Choices[0].Message.Content, nil
}

func (mc *LLMClient) sendRequestAndParse(ctx context.Context, payload requestPayload) (*ResponseLLM, error) {
	var err error
	var response []byte
	var status int
	var generatedResponse ResponseLLM

	for i := 0; i < maxRetries; i++ {
		select {
		case <-ctx.Done():
			log.Println("🚨 Request canceled before execution")
			return nil, ctx.Err()
		default:
			if err != nil {
				time.Sleep(time.Duration(math.Pow(2, float64(i))) * 100 * time.Millisecond)
			}
			response, status, err = mc.chat.Post(ctx, chatEndpoint, payload, nil)
			if err != nil {
				log.Printf("⚠️ Attempt %d failed: HTTP %d | Error: %v", i+1, status, err)
				continue
			}
			if status < 200 || status >= 300 {
				err = fmt.Errorf("http %d: %s", status, string(response))
				log.Printf("⚠️ Attempt %d failed: %v", i+1, err)
				continue
			}

			if err = json.Unmarshal(response, &generatedResponse); err != nil {
				log.Printf("⚠️ Error parsing response: %v", err)
				continue
			}

			return &generatedResponse, nil
		}
	}

	return nil, fmt.Errorf("request failed after %d retries: %w", maxRetries, err)
}
