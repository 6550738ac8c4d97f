package detailgenerator

import (
	"ai-fashion-hub/modules/common/model"
	"ai-fashion-hub/modules/content"
	"ai-fashion-hub/modules/export"
)

// Mode - 시작 화면 생성 방식
type Mode string

const (
	ModeOriginal Mode = "original"
	ModeStudio   Mode = "studio"
	ModeFrame    Mode = "frame"
)

// MaxOriginalModels - original 모드 모델 이미지 최대 장수
const MaxOriginalModels = 5

// Device - 모바일 프리뷰 기기 프리셋
type Device struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Devices - 지원 기기 (폭 기준 프리뷰)
var Devices = []Device{
	{ID: "iphone16", Name: "iPhone 16", Width: 393, Height: 852},
	{ID: "iphone16pro", Name: "iPhone 16 Pro", Width: 402, Height: 874},
	{ID: "iphone16promax", Name: "iPhone 16 Pro Max", Width: 440, Height: 956},
}

// GenerateRequest - POST /api/detail-generator/generate
type GenerateRequest struct {
	Mode     Mode                  `json:"mode"`
	Products []model.UploadedImage `json:"products"`
	Models   []model.UploadedImage `json:"models"`
	// Autofill - original 모드에서 제품 정보 섹션도 추가
	Autofill bool `json:"autofill,omitempty"`
}

// GenerateResponse - 새로 구성된 목록
type GenerateResponse struct {
	Success bool                   `json:"success"`
	Mode    Mode                   `json:"mode"`
	Items   []content.Item         `json:"items"`
	Models  []model.GeneratedModel `json:"models,omitempty"`
	Info    *export.ProductInfo    `json:"info,omitempty"`
	Errors  []string               `json:"errors,omitempty"`
}

// ImportResponse - HTML 가져오기 결과
type ImportResponse struct {
	Success bool           `json:"success"`
	Items   []content.Item `json:"items"`
}
