package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"

	"ai-fashion-hub/modules/common/config"
	"ai-fashion-hub/modules/common/utils"
	"ai-fashion-hub/modules/common/vertexai"
)

// 이미지 해상도 티어
const (
	Size1K = "1K"
	Size2K = "2K"
	Size4K = "4K"
)

// ContentGenerator - genai Models 서비스 추상화 (테스트에서 mock)
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client - 이미지/텍스트 생성 클라이언트
type Client struct {
	generator  ContentGenerator
	imageModel string
	textModel  string
}

// NewClient - 설정의 API 키들로 재시도 가능한 클라이언트 생성 (Vertex 프로젝트가 있으면 Vertex AI)
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.UseVertex() {
		models, err := vertexai.NewGenerator(context.Background(), cfg.VertexProject, cfg.VertexLocation)
		if err != nil {
			return nil, err
		}
		return NewClientWithGenerator(models, cfg.GeminiImageModel, cfg.GeminiTextModel), nil
	}
	if len(cfg.GeminiAPIKeys) == 0 {
		return nil, config.ErrAPIKeyNotFound
	}
	return NewClientWithGenerator(NewRetryGenerator(cfg.GeminiAPIKeys, nil), cfg.GeminiImageModel, cfg.GeminiTextModel), nil
}

// NewClientWithGenerator - 임의의 ContentGenerator로 클라이언트 생성
func NewClientWithGenerator(generator ContentGenerator, imageModel, textModel string) *Client {
	return &Client{
		generator:  generator,
		imageModel: imageModel,
		textModel:  textModel,
	}
}

// ImageRequest - 이미지 생성 요청
type ImageRequest struct {
	Prompt  string
	Images  []Image
	Labeled []LabeledImage // 비어있지 않으면 라벨 인터리브 배치 사용
	Layout  Layout
	// TrailingImages - 프롬프트 뒤에 붙는 참조 이미지 (색상 참조 등)
	TrailingImages []Image

	AspectRatio string
	ImageSize   string
	ImageOnly   bool // responseModalities = [IMAGE]
	SafetyHigh  bool // 4개 카테고리 BLOCK_ONLY_HIGH
	Temperature *float32
	TopP        *float32
	Model       string
}

// ChatTurn - 채팅 히스토리 한 턴 (role: user | model)
type ChatTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// TextRequest - 텍스트 생성 요청
type TextRequest struct {
	Prompt           string
	Images           []Image
	History          []ChatTurn
	MaxOutputTokens  int32
	ResponseMIMEType string
	Model            string
}

// SafetyBlockOnlyHigh - 얼굴 생성용 안전 설정
func SafetyBlockOnlyHigh() []*genai.SafetySetting {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}
	settings := make([]*genai.SafetySetting, 0, len(categories))
	for _, c := range categories {
		settings = append(settings, &genai.SafetySetting{
			Category:  c,
			Threshold: genai.HarmBlockThresholdBlockOnlyHigh,
		})
	}
	return settings
}

// Float32 - *float32 헬퍼
func Float32(f float32) *float32 {
	return &f
}

func (r ImageRequest) parts() []*genai.Part {
	if len(r.Labeled) > 0 {
		return BuildLabeledParts(r.Prompt, r.Labeled)
	}
	parts := BuildParts(r.Layout, r.Prompt, r.Images)
	for _, img := range r.TrailingImages {
		parts = append(parts, inlinePart(img))
	}
	return parts
}

func (r ImageRequest) config() *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature: r.Temperature,
		TopP:        r.TopP,
	}
	if r.AspectRatio != "" || r.ImageSize != "" {
		cfg.ImageConfig = &genai.ImageConfig{
			AspectRatio: r.AspectRatio,
			ImageSize:   r.ImageSize,
		}
	}
	if r.ImageOnly {
		cfg.ResponseModalities = []string{"IMAGE"}
	}
	if r.SafetyHigh {
		cfg.SafetySettings = SafetyBlockOnlyHigh()
	}
	return cfg
}

// GenerateImage - 이미지 생성 후 첫 번째 inline 이미지를 data URL로 반환
func (c *Client) GenerateImage(ctx context.Context, req ImageRequest) (string, error) {
	modelName := req.Model
	if modelName == "" {
		modelName = c.imageModel
	}
	parts := req.parts()
	contents := []*genai.Content{{Role: "user", Parts: parts}}

	log.Printf("📤 [Gemini] Sending image request to %s with %d parts (aspect: %s, size: %s)",
		modelName, len(parts), req.AspectRatio, req.ImageSize)

	resp, err := c.generator.GenerateContent(ctx, modelName, contents, req.config())
	if err != nil {
		log.Printf("❌ [Gemini] Request failed: %v", err)
		return "", network(err)
	}
	return ExtractImage(resp)
}

// ExtractImage - 응답에서 이미지 추출. blockReason을 후보보다 먼저 확인
func ExtractImage(resp *genai.GenerateContentResponse) (string, error) {
	if err := checkBlocked(resp); err != nil {
		return "", err
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", noImage("no candidates in response")
	}

	finishReason := ""
	for _, candidate := range resp.Candidates {
		if candidate == nil {
			continue
		}
		if candidate.FinishReason != "" && candidate.FinishReason != genai.FinishReasonStop {
			finishReason = string(candidate.FinishReason)
		}
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				log.Printf("✅ [Gemini] Received image: %d bytes", len(part.InlineData.Data))
				return utils.ToDataURL(part.InlineData.MIMEType, part.InlineData.Data), nil
			}
		}
	}

	if finishReason != "" {
		return "", noImage("finish reason: " + finishReason)
	}
	return "", noImage("")
}

func checkBlocked(resp *genai.GenerateContentResponse) error {
	if resp == nil || resp.PromptFeedback == nil {
		return nil
	}
	reason := resp.PromptFeedback.BlockReason
	if reason == "" || reason == genai.BlockedReasonUnspecified {
		return nil
	}
	log.Printf("🚫 [Gemini] Prompt blocked: %s", reason)
	return blocked(string(reason))
}

// GenerateText - 텍스트 응답 생성 (채팅 히스토리 지원)
func (c *Client) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	modelName := req.Model
	if modelName == "" {
		modelName = c.textModel
	}

	contents := make([]*genai.Content, 0, len(req.History)+1)
	for _, turn := range req.History {
		role := "user"
		if turn.Role == "model" {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{genai.NewPartFromText(turn.Text)},
		})
	}
	contents = append(contents, &genai.Content{
		Role:  "user",
		Parts: BuildParts(ImagesFirst, req.Prompt, req.Images),
	})

	cfg := &genai.GenerateContentConfig{
		MaxOutputTokens:  req.MaxOutputTokens,
		ResponseMIMEType: req.ResponseMIMEType,
	}

	resp, err := c.generator.GenerateContent(ctx, modelName, contents, cfg)
	if err != nil {
		log.Printf("❌ [Gemini] Text request failed: %v", err)
		return "", network(err)
	}
	if err := checkBlocked(resp); err != nil {
		return "", err
	}
	return extractText(resp)
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("empty text response")
	}
	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part != nil && !part.Thought {
				sb.WriteString(part.Text)
			}
		}
		if sb.Len() > 0 {
			break
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("empty text response")
	}
	return sb.String(), nil
}

// GenerateJSON - application/json 응답을 out으로 파싱
func (c *Client) GenerateJSON(ctx context.Context, images []Image, prompt string, out interface{}) error {
	text, err := c.GenerateText(ctx, TextRequest{
		Prompt:           prompt,
		Images:           images,
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(stripCodeFence(text)), out); err != nil {
		log.Printf("❌ [Gemini] Failed to parse JSON response: %s", text)
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return nil
}

// stripCodeFence - ```json ... ``` 감싸기 제거
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
