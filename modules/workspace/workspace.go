package workspace

import (
	"time"

	"ai-fashion-hub/modules/common/gemini"
	"ai-fashion-hub/modules/common/model"
	"ai-fashion-hub/modules/content"
	"ai-fashion-hub/modules/viewport"
)

// 업로드 슬롯
const (
	SlotShoes   = "shoes"
	SlotFace    = "face"
	SlotModels  = "models"
	SlotProduct = "product"
)

// Workspace - 세션 하나가 소유하는 상태 전체
type Workspace struct {
	ID        string                           `json:"id"`
	Items     *content.List                    `json:"items"`
	Viewport  viewport.Viewport                `json:"viewport"`
	Drag      content.Drag                     `json:"drag"`
	Models    []model.GeneratedModel           `json:"models"`
	Uploads   map[string][]model.UploadedImage `json:"uploads,omitempty"`
	Chat      []gemini.ChatTurn                `json:"chat,omitempty"`
	Jobs      map[string]*model.CampaignJob    `json:"jobs,omitempty"`
	UpdatedAt time.Time                        `json:"updatedAt"`
}

// New - 빈 워크스페이스
func New(id string) *Workspace {
	ws := &Workspace{ID: id}
	ws.normalize()
	return ws
}

// normalize - 역직렬화 후 nil 필드 채움
func (ws *Workspace) normalize() {
	if ws.Items == nil {
		ws.Items = &content.List{}
	}
	if ws.Viewport.Zoom == 0 {
		ws.Viewport = viewport.New()
	}
	if ws.Drag.Phase == "" {
		ws.Drag = content.NewDrag()
	}
	if ws.Models == nil {
		ws.Models = []model.GeneratedModel{}
	}
	if ws.Uploads == nil {
		ws.Uploads = map[string][]model.UploadedImage{}
	}
	if ws.Jobs == nil {
		ws.Jobs = map[string]*model.CampaignJob{}
	}
}

// FindModel - id로 생성 모델 인덱스 조회, 없으면 -1
func (ws *Workspace) FindModel(id string) int {
	for i, m := range ws.Models {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// Reset - 생성 결과와 업로드 초기화 (콘텐츠 목록과 뷰포트는 유지)
func (ws *Workspace) Reset() {
	ws.Models = []model.GeneratedModel{}
	ws.Uploads = map[string][]model.UploadedImage{}
	ws.Jobs = map[string]*model.CampaignJob{}
}
