package modelgenerator

import (
	"ai-fashion-hub/modules/common/model"
)

// MaxShoeImages - 신발 이미지 최대 장수
const MaxShoeImages = 10

// CampaignRequest - POST /api/model-generator/campaign
type CampaignRequest struct {
	Shoes  []model.UploadedImage `json:"shoes"`
	Face   *model.UploadedImage  `json:"face"`
	Models []model.UploadedImage `json:"models"`
}

// PoseRequest - POST /api/model-generator/pose/{id}
type PoseRequest struct {
	PoseID string `json:"poseId"`
}

// CampaignResponse - 작업 등록 응답
type CampaignResponse struct {
	Success bool               `json:"success"`
	Job     *model.CampaignJob `json:"job,omitempty"`
}

// ModelResponse - 단일 결과 응답
type ModelResponse struct {
	Success bool                  `json:"success"`
	Model   *model.GeneratedModel `json:"model,omitempty"`
}

// ModelsResponse - 세션의 생성 결과 목록
type ModelsResponse struct {
	Success bool                   `json:"success"`
	Models  []model.GeneratedModel `json:"models"`
}

// jobRef - 큐에 들어가는 작업 참조
type jobRef struct {
	SessionID string `json:"sessionId"`
	JobID     string `json:"jobId"`
}
