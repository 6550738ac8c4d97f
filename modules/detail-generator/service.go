package detailgenerator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"mime"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"ai-fashion-hub/modules/common/fallback"
	"ai-fashion-hub/modules/common/gemini"
	"ai-fashion-hub/modules/common/model"
	"ai-fashion-hub/modules/common/utils"
	"ai-fashion-hub/modules/content"
	"ai-fashion-hub/modules/export"
	"ai-fashion-hub/modules/prompt"
	"ai-fashion-hub/modules/workspace"
)

var (
	ErrUnknownMode = errors.New("unknown generation mode")
	ErrNoProducts  = errors.New("최소 1개 이상의 제품 이미지를 업로드해주세요.")
	ErrNoModels    = errors.New("최소 1개 이상의 모델 이미지를 업로드해주세요.")
	ErrNotHTML     = errors.New("HTML 파일만 업로드할 수 있습니다.")
)

// frame 모드 기본 블록
var frameTemplates = []string{
	export.TemplateSizeGuide,
	export.TemplateCare,
	export.TemplateShipping,
	export.TemplateCaution,
}

// Generator - 이미지 생성과 제품 분석 (gemini.Client)
type Generator interface {
	GenerateImage(ctx context.Context, req gemini.ImageRequest) (string, error)
	GenerateJSON(ctx context.Context, images []gemini.Image, prompt string, out interface{}) error
}

type Service struct {
	generator  Generator
	workspaces *workspace.Manager
	now        func() time.Time
}

func NewService(generator Generator, workspaces *workspace.Manager) *Service {
	return &Service{
		generator:  generator,
		workspaces: workspaces,
		now:        time.Now,
	}
}

var firstNumber = regexp.MustCompile(`\d+`)

// nameNumber - 파일명의 첫 번째 숫자. 없으면 +Inf
func nameNumber(name string) float64 {
	m := firstNumber.FindString(name)
	if m == "" {
		return math.Inf(1)
	}
	n, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return math.Inf(1)
	}
	return n
}

// SortByNumberInName - 파일명의 첫 숫자 기준 정렬 (숫자 없으면 뒤로, 같으면 입력 순서)
func SortByNumberInName(images []model.UploadedImage) []model.UploadedImage {
	sorted := append([]model.UploadedImage(nil), images...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return nameNumber(sorted[i].Name) < nameNumber(sorted[j].Name)
	})
	return sorted
}

// onlyImages - image/* 업로드만 남김
func onlyImages(images []model.UploadedImage) []model.UploadedImage {
	out := make([]model.UploadedImage, 0, len(images))
	for _, img := range images {
		mimeType := img.MimeType
		if mimeType == "" {
			mimeType, _ = utils.SplitDataURL(img.Base64)
		}
		if strings.HasPrefix(mimeType, "image/") {
			out = append(out, img)
		}
	}
	return out
}

func previewURL(img model.UploadedImage) string {
	if img.PreviewURL != "" {
		return img.PreviewURL
	}
	if strings.HasPrefix(img.Base64, "data:") {
		return img.Base64
	}
	mimeType := img.MimeType
	if mimeType == "" {
		mimeType = utils.DefaultImageMime
	}
	return "data:" + mimeType + ";base64," + img.Base64
}

func imageItem(img model.UploadedImage) content.Item {
	item := content.NewImage(previewURL(img))
	if img.Name != "" {
		item.Title = img.Name
	}
	return item
}

// Generate - 시작 화면 생성. 세션 목록을 새 구성으로 교체
func (s *Service) Generate(ctx context.Context, sessionID string, req GenerateRequest) (*GenerateResponse, error) {
	products := SortByNumberInName(onlyImages(req.Products))
	models := onlyImages(req.Models)

	switch req.Mode {
	case ModeOriginal, ModeStudio, ModeFrame:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, req.Mode)
	}
	if len(products) == 0 {
		return nil, ErrNoProducts
	}
	if req.Mode == ModeStudio && len(models) == 0 {
		return nil, ErrNoModels
	}

	log.Printf("🚀 [DetailGenerator] Generate mode=%s products=%d models=%d", req.Mode, len(products), len(models))

	resp := &GenerateResponse{Success: true, Mode: req.Mode}
	var items []content.Item

	switch req.Mode {
	case ModeOriginal:
		for _, p := range products {
			items = append(items, imageItem(p))
		}
		for _, m := range fallback.Limit(models, MaxOriginalModels) {
			items = append(items, imageItem(m))
		}
		if req.Autofill {
			info, blocks, err := s.analyze(ctx, products)
			if err != nil {
				return nil, err
			}
			resp.Info = &info
			items = append(items, blocks...)
		}

	case ModeStudio:
		shots, errs, err := s.studioShots(ctx, products, models)
		if err != nil {
			return nil, err
		}
		resp.Models = shots
		resp.Errors = errs
		for _, shot := range shots {
			item := content.NewImage(shot.URL)
			item.Title = "Studio Model"
			items = append(items, item)
		}
		for _, p := range products {
			items = append(items, imageItem(p))
		}

	case ModeFrame:
		for _, p := range products {
			items = append(items, imageItem(p))
		}
		for _, typ := range frameTemplates {
			block, err := export.Template(typ, export.TemplateData{})
			if err != nil {
				return nil, err
			}
			items = append(items, content.Item{
				Kind:        content.KindSection,
				Payload:     block.HTML,
				Title:       block.Title,
				SectionType: block.Type,
			})
		}
	}

	ws, err := s.workspaces.Update(ctx, sessionID, func(ws *workspace.Workspace) error {
		list, err := content.NewList(items...)
		if err != nil {
			return err
		}
		ws.Items = list
		ws.Drag = content.NewDrag()
		ws.Uploads[workspace.SlotProduct] = products
		if len(resp.Models) > 0 {
			ws.Models = append(ws.Models, resp.Models...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp.Items = ws.Items.Items()

	log.Printf("✅ [DetailGenerator] %s page ready: %d items", req.Mode, len(resp.Items))
	return resp, nil
}

// analyze - 제품 정보 JSON → info/intro/tech/size/care 섹션
func (s *Service) analyze(ctx context.Context, products []model.UploadedImage) (export.ProductInfo, []content.Item, error) {
	images, err := gemini.ImagesFromUploads(products)
	if err != nil {
		return export.ProductInfo{}, nil, err
	}
	var info export.ProductInfo
	if err := s.generator.GenerateJSON(ctx, images, prompt.ProductInfo(), &info); err != nil {
		return export.ProductInfo{}, nil, err
	}
	blocks, err := export.ProductBlocks(info)
	if err != nil {
		return export.ProductInfo{}, nil, err
	}
	items := make([]content.Item, 0, len(blocks))
	for _, b := range blocks {
		items = append(items, content.Item{Kind: content.KindSection, Payload: b.HTML, Title: b.Title, SectionType: b.Type})
	}
	return info, items, nil
}

// studioShots - 모델 레퍼런스마다 한 장씩 순차 생성. 일부 실패는 errs로, 전부 실패하면 첫 에러
func (s *Service) studioShots(ctx context.Context, products, references []model.UploadedImage) ([]model.GeneratedModel, []string, error) {
	productImages, err := gemini.ImagesFromUploads(products)
	if err != nil {
		return nil, nil, err
	}

	var (
		shots    []model.GeneratedModel
		errs     []string
		firstErr error
	)
	for i, ref := range references {
		refImage, err := gemini.ImageFromUpload(ref)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("🎨 [DetailGenerator] Studio shot %d/%d", i+1, len(references))

		url, err := s.generator.GenerateImage(ctx, gemini.ImageRequest{
			Prompt:      prompt.StudioModel(),
			Images:      append([]gemini.Image{refImage}, productImages...),
			Layout:      gemini.PromptFirst,
			AspectRatio: prompt.CampaignAspectRatio,
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil, nil, ctx.Err()
			}
			if firstErr == nil {
				firstErr = err
			}
			errs = append(errs, gemini.FriendlyMessage(err, fmt.Sprintf("%d번 모델", i+1)))
			continue
		}
		shots = append(shots, model.GeneratedModel{
			ID:   fmt.Sprintf("detail-%d-%d", s.now().UnixMilli(), i),
			URL:  utils.EnforceAspectDataURL(url, prompt.CampaignWidth, prompt.CampaignHeight),
			Type: model.GeneratedDetail,
		})
	}
	if len(shots) == 0 {
		return nil, errs, firstErr
	}
	return shots, errs, nil
}

// IsHTML - 파일명 확장자 또는 Content-Type이 HTML인지
func IsHTML(filename, contentType string) bool {
	if contentType != "" {
		if mediaType, _, err := mime.ParseMediaType(contentType); err == nil && mediaType == "text/html" {
			return true
		}
	}
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".html" || ext == ".htm"
}

// Import - 내보냈던 HTML을 세션 목록으로 가져옴 (기존 목록 교체)
func (s *Service) Import(ctx context.Context, sessionID, filename, contentType string, r io.Reader) ([]content.Item, error) {
	if !IsHTML(filename, contentType) {
		return nil, ErrNotHTML
	}
	items, err := export.ImportHTML(r)
	if err != nil {
		return nil, err
	}

	ws, err := s.workspaces.Update(ctx, sessionID, func(ws *workspace.Workspace) error {
		list, err := content.NewList(items...)
		if err != nil {
			return err
		}
		ws.Items = list
		ws.Drag = content.NewDrag()
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("📥 [DetailGenerator] Imported %d items from %s", ws.Items.Len(), filename)
	return ws.Items.Items(), nil
}
