package shoeeditor

import (
	"ai-fashion-hub/modules/common/model"
	"ai-fashion-hub/modules/content"
)

// EffectRequest - POST /api/gemini/effect
type EffectRequest struct {
	Images           []model.UploadedImage `json:"images"`
	Effect           string                `json:"effect"`
	PoseID           string                `json:"poseId,omitempty"`
	CustomBackground *model.UploadedImage  `json:"customBackground,omitempty"`
	// AspectRatio - 미지정 또는 미지원 비율이면 4:3
	AspectRatio string `json:"aspectRatio,omitempty"`
	// AddToPreview - 결과를 세션 상세페이지 목록에 이미지 아이템으로 추가
	AddToPreview bool `json:"addToPreview,omitempty"`
}

// RecolorRequest - POST /api/gemini/recolor
type RecolorRequest struct {
	Image        model.UploadedImage  `json:"image"`
	Color        string               `json:"color,omitempty"`
	ColorImage   *model.UploadedImage `json:"colorImage,omitempty"`
	AspectRatio  string               `json:"aspectRatio,omitempty"`
	AddToPreview bool                 `json:"addToPreview,omitempty"`
}

// EnhanceRequest - POST /api/gemini/enhance (레거시 효과 이름 허용)
type EnhanceRequest struct {
	Image       model.UploadedImage `json:"image"`
	Effect      string              `json:"effect"`
	PoseID      string              `json:"poseId,omitempty"`
	AspectRatio string              `json:"aspectRatio,omitempty"`
	// ItemID - 있으면 해당 이미지 아이템의 payload를 결과로 교체
	ItemID string `json:"itemId,omitempty"`
}

// ImageResponse - 생성 결과
type ImageResponse struct {
	Success  bool          `json:"success"`
	ImageURL string        `json:"imageUrl"`
	Item     *content.Item `json:"item,omitempty"`
}
