package detailstorage

import (
	"ai-fashion-hub/modules/common/model"
	"ai-fashion-hub/modules/content"
	"ai-fashion-hub/modules/export"
	"ai-fashion-hub/modules/viewport"
)

// AddItemRequest - POST /api/detail/items
type AddItemRequest struct {
	Kind        content.Kind `json:"kind"`
	Payload     string       `json:"payload"`
	Title       string       `json:"title,omitempty"`
	SectionType string       `json:"sectionType,omitempty"`
	// AfterID - 있으면 해당 아이템 바로 뒤에 삽입
	AfterID string `json:"afterId,omitempty"`
}

// UpdateItemRequest - PUT /api/detail/items/{id}
type UpdateItemRequest struct {
	Payload string `json:"payload"`
}

// MoveRequest - POST /api/detail/items/move
type MoveRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// 드래그 액션
const (
	DragStart  = "start"
	DragOver   = "over"
	DragLeave  = "leave"
	DragDrop   = "drop"
	DragCancel = "cancel"
)

// DragRequest - POST /api/detail/drag
type DragRequest struct {
	Action string `json:"action"`
	Index  int    `json:"index"`
}

// 뷰포트 액션
const (
	ViewportWheel   = "wheel"
	ViewportZoomIn  = "zoomIn"
	ViewportZoomOut = "zoomOut"
	ViewportPan     = "pan"
	ViewportReset   = "reset"
	ViewportMode    = "mode"
)

// ViewportRequest - POST /api/detail/viewport
type ViewportRequest struct {
	Action string            `json:"action"`
	DeltaY float64           `json:"deltaY,omitempty"`
	DX     float64           `json:"dx,omitempty"`
	DY     float64           `json:"dy,omitempty"`
	Mode   viewport.ViewMode `json:"mode,omitempty"`
}

// AutofillRequest - POST /api/detail/autofill
type AutofillRequest struct {
	Images []model.UploadedImage `json:"images"`
}

// ListResponse - 목록 상태
type ListResponse struct {
	Success     bool           `json:"success"`
	Items       []content.Item `json:"items"`
	SelectedIDs []string       `json:"selectedIds"`
}

// ItemResponse - 단일 아이템 결과
type ItemResponse struct {
	Success bool          `json:"success"`
	Item    *content.Item `json:"item,omitempty"`
}

// DragResponse - 드래그 상태와 현재 목록
type DragResponse struct {
	Success bool           `json:"success"`
	Drag    content.Drag   `json:"drag"`
	Moved   bool           `json:"moved"`
	Items   []content.Item `json:"items"`
}

// ViewportState - 뷰포트 + 표시용 값
type ViewportState struct {
	viewport.Viewport
	ZoomPercent int    `json:"zoomPercent"`
	Transform   string `json:"transform"`
	Width       int    `json:"width"`
}

// ViewportResponse - 뷰포트 결과
type ViewportResponse struct {
	Success  bool          `json:"success"`
	Viewport ViewportState `json:"viewport"`
}

// AutofillResponse - 분석 결과와 추가된 섹션
type AutofillResponse struct {
	Success bool               `json:"success"`
	Info    export.ProductInfo `json:"info"`
	Items   []content.Item     `json:"items"`
}
