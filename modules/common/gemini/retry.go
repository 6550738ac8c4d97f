package gemini

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"
)

const maxRetriesPerKey = 3

// ClientFactory - API 키로 ContentGenerator 생성
type ClientFactory func(ctx context.Context, apiKey string) (ContentGenerator, error)

// NewGenAIGenerator - genai 클라이언트의 Models 서비스를 ContentGenerator로 사용
func NewGenAIGenerator(ctx context.Context, apiKey string) (ContentGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return client.Models, nil
}

// RetryGenerator - 429 에러 시 여러 API 키로 재시도하는 ContentGenerator
// 각 키당 최대 3번 재시도, 429가 아닌 에러는 바로 반환
type RetryGenerator struct {
	apiKeys    []string
	newClient  ClientFactory
	retryDelay time.Duration

	mu      sync.Mutex
	clients map[string]ContentGenerator
}

// NewRetryGenerator - RetryGenerator 생성
func NewRetryGenerator(apiKeys []string, newClient ClientFactory) *RetryGenerator {
	if newClient == nil {
		newClient = NewGenAIGenerator
	}
	return &RetryGenerator{
		apiKeys:    apiKeys,
		newClient:  newClient,
		retryDelay: 2 * time.Second,
		clients:    map[string]ContentGenerator{},
	}
}

func (g *RetryGenerator) clientFor(ctx context.Context, apiKey string) (ContentGenerator, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if c, ok := g.clients[apiKey]; ok {
		return c, nil
	}
	c, err := g.newClient(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	g.clients[apiKey] = c
	return c, nil
}

// GenerateContent - ContentGenerator 구현
func (g *RetryGenerator) GenerateContent(
	ctx context.Context,
	model string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {

	if len(g.apiKeys) == 0 {
		return nil, fmt.Errorf("no API keys provided")
	}

	var lastErr error

	// 각 API 키로 시도
	for keyIndex, apiKey := range g.apiKeys {
		client, err := g.clientFor(ctx, apiKey)
		if err != nil {
			log.Printf("⚠️  [Gemini Retry] Failed to create client with key #%d: %v", keyIndex+1, err)
			lastErr = err
			continue
		}

		for attempt := 1; attempt <= maxRetriesPerKey; attempt++ {
			if attempt > 1 {
				log.Printf("   🔄 Retry attempt %d/%d for key #%d", attempt, maxRetriesPerKey, keyIndex+1)
			}

			result, err := client.GenerateContent(ctx, model, contents, config)
			if err == nil {
				if keyIndex > 0 || attempt > 1 {
					log.Printf("✅ [Gemini Retry] Success with API key #%d (attempt %d/%d)", keyIndex+1, attempt, maxRetriesPerKey)
				}
				return result, nil
			}
			lastErr = err

			// 429가 아닌 다른 에러면 바로 반환 (재시도 안 함)
			if !is429Error(err) {
				return nil, err
			}

			log.Printf("⚠️  [Gemini Retry] Key #%d hit rate limit (429) on attempt %d/%d", keyIndex+1, attempt, maxRetriesPerKey)

			if attempt < maxRetriesPerKey {
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(g.retryDelay):
				}
			}
		}

		log.Printf("⚠️  [Gemini Retry] Key #%d exhausted all %d attempts, trying next key...", keyIndex+1, maxRetriesPerKey)
	}

	return nil, fmt.Errorf("all %d API keys exhausted (%d attempts each), last error: %w", len(g.apiKeys), maxRetriesPerKey, lastErr)
}

// is429Error - 429 Rate Limit 에러인지 확인
func is429Error(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "quota")
}
