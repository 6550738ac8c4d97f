package detailstorage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"ai-fashion-hub/modules/common/gemini"
	"ai-fashion-hub/modules/content"
	"ai-fashion-hub/modules/export"
	"ai-fashion-hub/modules/prompt"
	"ai-fashion-hub/modules/viewport"
	"ai-fashion-hub/modules/workspace"
)

var (
	ErrItemNotFound     = errors.New("item not found")
	ErrInvalidMove      = errors.New("invalid move index")
	ErrUnknownAction    = errors.New("unknown action")
	ErrNoProductImages  = errors.New("제품 이미지를 업로드해주세요.")
	ErrNotSectionItem   = errors.New("typography applies to section items only")
	ErrEmptyItemPayload = errors.New("payload is required")
)

// JSONGenerator - 이미지 분석 JSON 생성 (gemini.Client)
type JSONGenerator interface {
	GenerateJSON(ctx context.Context, images []gemini.Image, prompt string, out interface{}) error
}

type Service struct {
	generator  JSONGenerator
	workspaces *workspace.Manager
	fetch      export.Fetcher
	now        func() time.Time
}

// NewService - fetch는 JPEG 내보내기에서 data URL이 아닌 이미지를 가져올 때 사용
func NewService(generator JSONGenerator, workspaces *workspace.Manager, fetch export.Fetcher) *Service {
	return &Service{
		generator:  generator,
		workspaces: workspaces,
		fetch:      fetch,
		now:        time.Now,
	}
}

func (s *Service) update(ctx context.Context, sessionID string, fn func(ws *workspace.Workspace) error) (*workspace.Workspace, error) {
	return s.workspaces.Update(ctx, sessionID, fn)
}

// Items - 현재 목록
func (s *Service) Items(ctx context.Context, sessionID string) (*content.List, error) {
	ws, err := s.workspaces.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return ws.Items, nil
}

// AddItem - 끝에 추가하거나 AfterID 뒤에 삽입
func (s *Service) AddItem(ctx context.Context, sessionID string, req AddItemRequest) (content.Item, error) {
	if req.Payload == "" {
		return content.Item{}, ErrEmptyItemPayload
	}
	item := content.Item{Kind: req.Kind, Payload: req.Payload, Title: req.Title, SectionType: req.SectionType}
	if item.Title == "" {
		switch req.Kind {
		case content.KindImage:
			item.Title = "Image"
		case content.KindSection:
			item.Title = "Section"
		}
	}

	var added content.Item
	_, err := s.update(ctx, sessionID, func(ws *workspace.Workspace) error {
		var err error
		if req.AfterID != "" {
			added, err = ws.Items.InsertAfter(req.AfterID, item)
		} else {
			added, err = ws.Items.Append(item)
		}
		return err
	})
	return added, err
}

// Duplicate - 복제본을 원본 바로 뒤에 삽입
func (s *Service) Duplicate(ctx context.Context, sessionID, id string) (content.Item, error) {
	var dup content.Item
	_, err := s.update(ctx, sessionID, func(ws *workspace.Workspace) error {
		d, ok := ws.Items.Duplicate(id)
		if !ok {
			return ErrItemNotFound
		}
		dup = d
		return nil
	})
	return dup, err
}

// Remove - 아이템 삭제
func (s *Service) Remove(ctx context.Context, sessionID, id string) (*content.List, error) {
	ws, err := s.update(ctx, sessionID, func(ws *workspace.Workspace) error {
		if !ws.Items.Remove(id) {
			return ErrItemNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ws.Items, nil
}

// UpdatePayload - 내용 교체
func (s *Service) UpdatePayload(ctx context.Context, sessionID, id, payload string) (content.Item, error) {
	var updated content.Item
	_, err := s.update(ctx, sessionID, func(ws *workspace.Workspace) error {
		if !ws.Items.UpdatePayload(id, payload) {
			return ErrItemNotFound
		}
		updated, _ = ws.Items.Get(id)
		return nil
	})
	return updated, err
}

// Move - from 아이템을 to 위치로 이동
func (s *Service) Move(ctx context.Context, sessionID string, from, to int) (*content.List, error) {
	ws, err := s.update(ctx, sessionID, func(ws *workspace.Workspace) error {
		if !ws.Items.Move(from, to) {
			return ErrInvalidMove
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ws.Items, nil
}

// ToggleSelection - 선택 반전
func (s *Service) ToggleSelection(ctx context.Context, sessionID, id string) (*content.List, error) {
	ws, err := s.update(ctx, sessionID, func(ws *workspace.Workspace) error {
		if !ws.Items.ToggleSelection(id) {
			return ErrItemNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ws.Items, nil
}

// SetTypography - section 아이템 글꼴 설정
func (s *Service) SetTypography(ctx context.Context, sessionID, id string, patch content.TypographyPatch) (content.Item, error) {
	var updated content.Item
	_, err := s.update(ctx, sessionID, func(ws *workspace.Workspace) error {
		item, ok := ws.Items.Get(id)
		if !ok {
			return ErrItemNotFound
		}
		if item.Kind != content.KindSection {
			return ErrNotSectionItem
		}
		ws.Items.SetTypography(id, patch)
		updated, _ = ws.Items.Get(id)
		return nil
	})
	return updated, err
}

// Clear - 목록 비우기
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	_, err := s.update(ctx, sessionID, func(ws *workspace.Workspace) error {
		ws.Items.Clear()
		ws.Drag = content.NewDrag()
		return nil
	})
	return err
}

// Drag - 드래그 제스처 이벤트 적용. drop은 이동 여부를 함께 반환
func (s *Service) Drag(ctx context.Context, sessionID string, req DragRequest) (*workspace.Workspace, bool, error) {
	moved := false
	ws, err := s.update(ctx, sessionID, func(ws *workspace.Workspace) error {
		switch req.Action {
		case DragStart:
			if req.Index < 0 || req.Index >= ws.Items.Len() {
				return ErrInvalidMove
			}
			ws.Drag.Start(req.Index)
		case DragOver:
			ws.Drag.Over(req.Index)
		case DragLeave:
			ws.Drag.Leave()
		case DragDrop:
			moved = ws.Drag.Drop(ws.Items, req.Index)
		case DragCancel:
			ws.Drag.Cancel()
		default:
			return fmt.Errorf("%w: %s", ErrUnknownAction, req.Action)
		}
		return nil
	})
	return ws, moved, err
}

func viewportState(v viewport.Viewport) ViewportState {
	return ViewportState{
		Viewport:    v,
		ZoomPercent: v.ZoomPercent(),
		Transform:   v.Transform(),
		Width:       v.Mode.Width(),
	}
}

// Viewport - 현재 뷰포트
func (s *Service) Viewport(ctx context.Context, sessionID string) (ViewportState, error) {
	ws, err := s.workspaces.Get(ctx, sessionID)
	if err != nil {
		return ViewportState{}, err
	}
	return viewportState(ws.Viewport), nil
}

// UpdateViewport - 휠/버튼/팬/리셋/모드 변경
func (s *Service) UpdateViewport(ctx context.Context, sessionID string, req ViewportRequest) (ViewportState, error) {
	ws, err := s.update(ctx, sessionID, func(ws *workspace.Workspace) error {
		v := &ws.Viewport
		switch req.Action {
		case ViewportWheel:
			v.Wheel(req.DeltaY)
		case ViewportZoomIn:
			v.ZoomIn()
		case ViewportZoomOut:
			v.ZoomOut()
		case ViewportPan:
			v.PanBy(req.DX, req.DY)
		case ViewportReset:
			v.Reset()
		case ViewportMode:
			v.SetMode(req.Mode)
		default:
			return fmt.Errorf("%w: %s", ErrUnknownAction, req.Action)
		}
		return nil
	})
	if err != nil {
		return ViewportState{}, err
	}
	return viewportState(ws.Viewport), nil
}

// ExportHTML - 정적 HTML 문서
func (s *Service) ExportHTML(ctx context.Context, sessionID string) (string, error) {
	list, err := s.Items(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return export.HTML(list.Items()), nil
}

// ExportJPEG - 860px x2 JPEG와 파일명
func (s *Service) ExportJPEG(ctx context.Context, sessionID string) ([]byte, string, error) {
	list, err := s.Items(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}
	opts := export.DefaultRasterOptions()
	opts.Fetch = s.fetch

	log.Printf("🖼️  [DetailStorage] Rendering JPEG (%d items)", list.Len())
	data, err := export.JPEG(ctx, list.Items(), opts)
	if err != nil {
		return nil, "", err
	}
	return data, export.JPEGFilename(s.now()), nil
}

// AddTemplate - 이름 있는 템플릿을 섹션으로 추가
func (s *Service) AddTemplate(ctx context.Context, sessionID, typ string, data export.TemplateData) (content.Item, error) {
	block, err := export.Template(typ, data)
	if err != nil {
		return content.Item{}, err
	}
	return s.AddItem(ctx, sessionID, AddItemRequest{
		Kind:        content.KindSection,
		Payload:     block.HTML,
		Title:       block.Title,
		SectionType: block.Type,
	})
}

// Autofill - 제품 이미지 분석 후 info/intro/tech/size/care 섹션을 순서대로 추가
func (s *Service) Autofill(ctx context.Context, sessionID string, req AutofillRequest) (export.ProductInfo, []content.Item, error) {
	if len(req.Images) == 0 {
		return export.ProductInfo{}, nil, ErrNoProductImages
	}
	images, err := gemini.ImagesFromUploads(req.Images)
	if err != nil {
		return export.ProductInfo{}, nil, err
	}

	log.Printf("🔍 [DetailStorage] Analyzing %d product images", len(images))
	var info export.ProductInfo
	if err := s.generator.GenerateJSON(ctx, images, prompt.ProductInfo(), &info); err != nil {
		return export.ProductInfo{}, nil, err
	}

	blocks, err := export.ProductBlocks(info)
	if err != nil {
		return export.ProductInfo{}, nil, err
	}

	added := make([]content.Item, 0, len(blocks))
	_, err = s.update(ctx, sessionID, func(ws *workspace.Workspace) error {
		added = added[:0]
		for _, b := range blocks {
			item, err := ws.Items.Append(content.Item{
				Kind:        content.KindSection,
				Payload:     b.HTML,
				Title:       b.Title,
				SectionType: b.Type,
			})
			if err != nil {
				return err
			}
			added = append(added, item)
		}
		return nil
	})
	if err != nil {
		return export.ProductInfo{}, nil, err
	}

	log.Printf("✅ [DetailStorage] Auto-fill added %d sections", len(added))
	return info, added, nil
}
