package shoeeditor

import (
	"context"
	"errors"
	"log"

	"ai-fashion-hub/modules/common/fallback"
	"ai-fashion-hub/modules/common/gemini"
	"ai-fashion-hub/modules/common/model"
	"ai-fashion-hub/modules/content"
	"ai-fashion-hub/modules/prompt"
	"ai-fashion-hub/modules/workspace"
)

var (
	ErrNoImages     = errors.New("신발 이미지를 업로드해주세요.")
	ErrNoColor      = errors.New("색상을 선택하거나 참조 이미지를 업로드해주세요.")
	ErrInvalidColor = errors.New("올바른 HEX 색상이 아닙니다.")
	ErrItemNotFound = errors.New("이미지 아이템을 찾을 수 없습니다.")
)

const (
	effectAspectRatio  = "4:3"
	recolorAspectRatio = "1:1"
	imageSize2K        = "2K"
)

// ImageGenerator - 이미지 생성 (gemini.Client)
type ImageGenerator interface {
	GenerateImage(ctx context.Context, req gemini.ImageRequest) (string, error)
}

type Service struct {
	generator  ImageGenerator
	workspaces *workspace.Manager
}

func NewService(generator ImageGenerator, workspaces *workspace.Manager) *Service {
	return &Service{
		generator:  generator,
		workspaces: workspaces,
	}
}

// ApplyEffect - 커스텀 배경(있으면) → 신발 이미지 → 프롬프트 순서로 2K 렌더링 (기본 4:3)
func (s *Service) ApplyEffect(ctx context.Context, req EffectRequest) (string, error) {
	if len(req.Images) == 0 {
		return "", ErrNoImages
	}
	effect := prompt.NormalizeEffect(req.Effect)

	var images []gemini.Image
	if effect == prompt.EffectCustom && req.CustomBackground != nil {
		bg, err := gemini.ImageFromUpload(*req.CustomBackground)
		if err != nil {
			return "", err
		}
		images = append(images, bg)
	}
	shoes, err := gemini.ImagesFromUploads(req.Images)
	if err != nil {
		return "", err
	}
	images = append(images, shoes...)

	aspect := fallback.SafeAspectRatio(req.AspectRatio, effectAspectRatio)
	log.Printf("🎨 [ShoeEditor] Applying effect %s (pose: %s, %d images, %s)", effect, req.PoseID, len(shoes), aspect)
	return s.generator.GenerateImage(ctx, gemini.ImageRequest{
		Prompt:      prompt.ForContext(prompt.Context{Effect: effect, PoseID: req.PoseID}),
		Images:      images,
		Layout:      gemini.ImagesFirst,
		AspectRatio: aspect,
		ImageSize:   imageSize2K,
		ImageOnly:   true,
	})
}

// Recolor - 갑피만 재색상. 기본 이미지 → 프롬프트 → 참조 색상 이미지 순서, 2K (기본 1:1)
func (s *Service) Recolor(ctx context.Context, req RecolorRequest) (string, error) {
	useReference := req.ColorImage != nil
	hex := ""
	if !useReference {
		if req.Color == "" {
			return "", ErrNoColor
		}
		normalized, ok := fallback.NormalizeHex(req.Color)
		if !ok {
			return "", ErrInvalidColor
		}
		hex = normalized
	}

	base, err := gemini.ImageFromUpload(req.Image)
	if err != nil {
		return "", err
	}
	imgReq := gemini.ImageRequest{
		Prompt:      prompt.Recolor(hex, useReference),
		Images:      []gemini.Image{base},
		Layout:      gemini.ImagesFirst,
		AspectRatio: fallback.SafeAspectRatio(req.AspectRatio, recolorAspectRatio),
		ImageSize:   imageSize2K,
		ImageOnly:   true,
	}
	if useReference {
		ref, err := gemini.ImageFromUpload(*req.ColorImage)
		if err != nil {
			return "", err
		}
		imgReq.TrailingImages = []gemini.Image{ref}
	}

	log.Printf("🎨 [ShoeEditor] Recolor (color: %s, reference: %v)", hex, useReference)
	return s.generator.GenerateImage(ctx, imgReq)
}

// Enhance - 레거시 효과 이름('standard')을 매핑한 단일 이미지 효과
func (s *Service) Enhance(ctx context.Context, req EnhanceRequest) (string, error) {
	return s.ApplyEffect(ctx, EffectRequest{
		Images:      []model.UploadedImage{req.Image},
		Effect:      req.Effect,
		PoseID:      req.PoseID,
		AspectRatio: req.AspectRatio,
	})
}

// AddToPreview - 결과 이미지를 세션 목록 끝에 추가
func (s *Service) AddToPreview(ctx context.Context, sessionID, url string) (content.Item, error) {
	var added content.Item
	_, err := s.workspaces.Update(ctx, sessionID, func(ws *workspace.Workspace) error {
		item, err := ws.Items.Append(content.NewImage(url))
		if err != nil {
			return err
		}
		added = item
		return nil
	})
	return added, err
}

// ReplaceItemImage - 기존 이미지 아이템의 payload 교체
func (s *Service) ReplaceItemImage(ctx context.Context, sessionID, itemID, url string) (content.Item, error) {
	var updated content.Item
	_, err := s.workspaces.Update(ctx, sessionID, func(ws *workspace.Workspace) error {
		item, ok := ws.Items.Get(itemID)
		if !ok || item.Kind != content.KindImage {
			return ErrItemNotFound
		}
		ws.Items.UpdatePayload(itemID, url)
		updated, _ = ws.Items.Get(itemID)
		return nil
	})
	return updated, err
}
