package gemini

import (
	"fmt"

	"google.golang.org/genai"

	"ai-fashion-hub/modules/common/model"
	"ai-fashion-hub/modules/common/utils"
)

// Image - base64로 전달 가능한 입력 이미지
type Image struct {
	MimeType string
	Data     []byte
}

// LabeledImage - 역할 라벨이 앞에 붙는 이미지 (face swap 등)
type LabeledImage struct {
	Label string
	Image Image
}

// Layout - 파트 배치 순서
type Layout int

const (
	// ImagesFirst - 이미지들 다음 프롬프트 (기본)
	ImagesFirst Layout = iota
	// PromptFirst - 프롬프트 다음 이미지들 (캠페인 합성)
	PromptFirst
)

// ImageFromDataURL - data URL 또는 순수 base64에서 Image 생성
func ImageFromDataURL(s string) (Image, error) {
	mimeType, data, err := utils.ParseDataURL(s)
	if err != nil {
		return Image{}, err
	}
	return Image{MimeType: mimeType, Data: data}, nil
}

// ImageFromUpload - UploadedImage에서 Image 생성
func ImageFromUpload(u model.UploadedImage) (Image, error) {
	src := u.Base64
	if src == "" {
		src = u.PreviewURL
	}
	mimeType, data, err := utils.ParseDataURL(src)
	if err != nil {
		return Image{}, fmt.Errorf("image %q: %w", u.Name, err)
	}
	if u.MimeType != "" {
		mimeType = utils.ResolveImageMime(u.MimeType, data)
	}
	return Image{MimeType: mimeType, Data: data}, nil
}

// ImagesFromUploads - 여러 업로드를 순서대로 변환
func ImagesFromUploads(uploads []model.UploadedImage) ([]Image, error) {
	images := make([]Image, 0, len(uploads))
	for _, u := range uploads {
		img, err := ImageFromUpload(u)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

func inlinePart(img Image) *genai.Part {
	mimeType := img.MimeType
	if mimeType == "" {
		mimeType = utils.DefaultImageMime
	}
	return &genai.Part{
		InlineData: &genai.Blob{
			MIMEType: mimeType,
			Data:     img.Data,
		},
	}
}

// BuildParts - 이미지와 프롬프트를 layout 순서로 배치
func BuildParts(layout Layout, prompt string, images []Image) []*genai.Part {
	parts := make([]*genai.Part, 0, len(images)+1)
	if layout == PromptFirst {
		parts = append(parts, genai.NewPartFromText(prompt))
	}
	for _, img := range images {
		parts = append(parts, inlinePart(img))
	}
	if layout != PromptFirst {
		parts = append(parts, genai.NewPartFromText(prompt))
	}
	return parts
}

// BuildLabeledParts - "LABEL:", 이미지, ..., 프롬프트
func BuildLabeledParts(prompt string, images []LabeledImage) []*genai.Part {
	parts := make([]*genai.Part, 0, len(images)*2+1)
	for _, li := range images {
		parts = append(parts, genai.NewPartFromText(li.Label))
		parts = append(parts, inlinePart(li.Image))
	}
	return append(parts, genai.NewPartFromText(prompt))
}
