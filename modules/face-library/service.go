package facelibrary

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"ai-fashion-hub/modules/common/database"
	"ai-fashion-hub/modules/common/gemini"
	"ai-fashion-hub/modules/common/storage"
	"ai-fashion-hub/modules/common/utils"
	"ai-fashion-hub/modules/prompt"
)

var (
	ErrImageRequired = errors.New("이미지를 선택해주세요.")
	ErrSwapInputs    = errors.New("소스 얼굴과 대상 이미지를 모두 업로드해주세요.")
)

const (
	faceAspectRatio = "1:1"
	faceBatchSize   = "1K"
	upscaleSize     = "4K"
	facesDir        = "faces"
)

// ImageGenerator - 이미지 생성 (gemini.Client)
type ImageGenerator interface {
	GenerateImage(ctx context.Context, req gemini.ImageRequest) (string, error)
}

// FaceIndex - 저장된 얼굴 인덱스 (database.Client)
type FaceIndex interface {
	InsertFace(ctx context.Context, rec database.FaceRecord) error
	ListFaces(ctx context.Context, gender string) ([]database.FaceRecord, error)
}

type Service struct {
	generator ImageGenerator
	index     FaceIndex
	storage   storage.Backend
	convert   func([]byte, float32) ([]byte, error)
	now       func() time.Time
}

// NewService - index/backend가 nil이면 저장 기능은 ErrNotConfigured
func NewService(generator ImageGenerator, index FaceIndex, backend storage.Backend) *Service {
	return &Service{
		generator: generator,
		index:     index,
		storage:   backend,
		convert:   utils.ConvertToWebP,
		now:       time.Now,
	}
}

// GenerateBatch - 슬롯 5개 병렬 생성. 슬롯별 실패는 버리고 성공만 슬롯 순서대로 반환
// 전부 실패하면 첫 번째 에러 반환
func (s *Service) GenerateBatch(ctx context.Context, req BatchRequest) ([]string, int, error) {
	gender := prompt.ParseGender(req.Gender)
	log.Printf("👤 [FaceLibrary] Generating %d faces (gender: %s, race: %s, age: %s)", prompt.FaceBatchSize, gender, req.Race, req.Age)

	results := make([]string, prompt.FaceBatchSize)
	errs := make([]error, prompt.FaceBatchSize)

	g, gctx := errgroup.WithContext(ctx)
	for slot := 0; slot < prompt.FaceBatchSize; slot++ {
		g.Go(func() error {
			url, err := s.generator.GenerateImage(gctx, gemini.ImageRequest{
				Prompt:      prompt.ForContext(prompt.Context{Gender: gender, Race: req.Race, Age: req.Age, Slot: slot}),
				AspectRatio: faceAspectRatio,
				ImageSize:   faceBatchSize,
				SafetyHigh:  true,
			})
			if err != nil {
				log.Printf("⚠️  [FaceLibrary] Face generation error for image %d: %v", slot, err)
				errs[slot] = err
				return nil
			}
			results[slot] = url
			return nil
		})
	}
	_ = g.Wait()

	images := make([]string, 0, len(results))
	var firstErr error
	for i, url := range results {
		if url != "" {
			images = append(images, url)
		} else if firstErr == nil {
			firstErr = errs[i]
		}
	}
	failed := prompt.FaceBatchSize - len(images)
	if len(images) == 0 && firstErr != nil {
		return nil, failed, firstErr
	}

	log.Printf("✅ [FaceLibrary] Batch done: %d/%d faces", len(images), prompt.FaceBatchSize)
	return images, failed, nil
}

// Upscale - 같은 얼굴을 1:1 4K로 재생성
func (s *Service) Upscale(ctx context.Context, imageURL string) (string, error) {
	if imageURL == "" {
		return "", ErrImageRequired
	}
	img, err := gemini.ImageFromDataURL(imageURL)
	if err != nil {
		return "", err
	}
	return s.generator.GenerateImage(ctx, gemini.ImageRequest{
		Prompt:      prompt.Upscale(),
		Images:      []gemini.Image{img},
		Layout:      gemini.ImagesFirst,
		AspectRatio: faceAspectRatio,
		ImageSize:   upscaleSize,
		SafetyHigh:  true,
	})
}

// Swap - SOURCE FACE / TARGET IMAGE 라벨 배치로 얼굴 교체
func (s *Service) Swap(ctx context.Context, req SwapRequest) (string, error) {
	if req.SourceFace == "" || req.TargetImage == "" {
		return "", ErrSwapInputs
	}
	source, err := gemini.ImageFromDataURL(req.SourceFace)
	if err != nil {
		return "", fmt.Errorf("source face: %w", err)
	}
	target, err := gemini.ImageFromDataURL(req.TargetImage)
	if err != nil {
		return "", fmt.Errorf("target image: %w", err)
	}

	return s.generator.GenerateImage(ctx, gemini.ImageRequest{
		Prompt: prompt.FaceSwap(),
		Labeled: []gemini.LabeledImage{
			{Label: prompt.LabelSourceFace, Image: source},
			{Label: prompt.LabelTargetImage, Image: target},
		},
		Temperature: gemini.Float32(0.4),
		TopP:        gemini.Float32(0.95),
	})
}

// Save - WebP 변환 후 스토리지 업로드, face_library에 행 추가
func (s *Service) Save(ctx context.Context, req SaveRequest) (*database.FaceRecord, error) {
	if req.Image == "" {
		return nil, ErrImageRequired
	}
	if s.storage == nil || s.index == nil {
		return nil, storage.ErrNotConfigured
	}
	_, data, err := utils.ParseDataURL(req.Image)
	if err != nil {
		return nil, err
	}

	gender := string(prompt.ParseGender(req.Gender))
	objectPath, url, err := storage.UploadWebP(ctx, s.storage, data, facesDir+"/"+gender, s.convert)
	if err != nil {
		return nil, err
	}

	rec := database.FaceRecord{
		ID:         uuid.NewString(),
		Gender:     gender,
		Race:       req.Race,
		Age:        req.Age,
		ObjectPath: objectPath,
		URL:        url,
		CreatedAt:  s.now(),
	}
	if err := s.index.InsertFace(ctx, rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// List - 저장된 얼굴 (gender 빈 값이면 전체)
func (s *Service) List(ctx context.Context, gender string) ([]database.FaceRecord, error) {
	if s.index == nil {
		return nil, storage.ErrNotConfigured
	}
	if gender != "" {
		gender = string(prompt.ParseGender(gender))
	}
	return s.index.ListFaces(ctx, gender)
}
