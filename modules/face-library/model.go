package facelibrary

import "ai-fashion-hub/modules/common/database"

// BatchRequest - POST /api/faces/batch
type BatchRequest struct {
	Gender string `json:"gender"`
	Race   string `json:"race"`
	Age    string `json:"age"`
}

// BatchResponse - 성공한 슬롯만 순서대로
type BatchResponse struct {
	Success bool     `json:"success"`
	Images  []string `json:"images"`
	Failed  int      `json:"failed"`
}

// UpscaleRequest - POST /api/faces/upscale
type UpscaleRequest struct {
	Image string `json:"image"` // data URL 또는 base64
}

// SwapRequest - POST /api/faces/swap
type SwapRequest struct {
	SourceFace  string `json:"sourceFace"`
	TargetImage string `json:"targetImage"`
}

// SaveRequest - POST /api/faces
type SaveRequest struct {
	Image  string `json:"image"`
	Gender string `json:"gender"`
	Race   string `json:"race"`
	Age    string `json:"age"`
}

// ImageResponse - 단일 이미지 결과
type ImageResponse struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"imageUrl"`
}

// FaceResponse - 저장 결과
type FaceResponse struct {
	Success bool                 `json:"success"`
	Face    *database.FaceRecord `json:"face,omitempty"`
}

// FacesResponse - 저장된 얼굴 목록
type FacesResponse struct {
	Success bool                  `json:"success"`
	Faces   []database.FaceRecord `json:"faces"`
}
