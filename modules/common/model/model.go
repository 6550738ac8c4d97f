package model

import "time"

// UploadedImage - 사용자가 업로드한 이미지 (세션 메모리에만 존재)
type UploadedImage struct {
	Name       string `json:"name,omitempty"`
	MimeType   string `json:"mimeType"`
	Base64     string `json:"base64"`
	PreviewURL string `json:"previewUrl,omitempty"`
}

// GeneratedModel type 태그
const (
	GeneratedCampaign      = "campaign"
	GeneratedDetail        = "detail"
	GeneratedPoseVariation = "pose-variation"
)

// GeneratedModel - 모델 생성기 결과. refine 시 같은 ID로 URL만 교체
type GeneratedModel struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

// Job Status 상수
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// CampaignJob - 캠페인 배치 작업 (모델 이미지 한 장당 한 번씩 순차 호출)
type CampaignJob struct {
	ID        string           `json:"id"`
	SessionID string           `json:"sessionId"`
	Status    string           `json:"status"`
	Current   int              `json:"current"`
	Total     int              `json:"total"`
	Results   []GeneratedModel `json:"results"`
	Errors    []string         `json:"errors,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`

	Input *CampaignInput `json:"input,omitempty"`
}

// CampaignInput - 캠페인 배치 입력
type CampaignInput struct {
	Shoes  []UploadedImage `json:"shoes"`
	Face   *UploadedImage  `json:"face"`
	Models []UploadedImage `json:"models"`
}

// Done - 완료 또는 실패 여부
func (j *CampaignJob) Done() bool {
	return j.Status == StatusCompleted || j.Status == StatusFailed
}
