package content

import (
	"errors"

	"github.com/google/uuid"
)

// Kind - 콘텐츠 아이템 종류 (생성 후 변경 불가)
type Kind string

const (
	KindImage   Kind = "image"
	KindSection Kind = "section"
)

// Valid - 지원하는 종류인지 확인
func (k Kind) Valid() bool {
	return k == KindImage || k == KindSection
}

var ErrInvalidKind = errors.New("invalid content kind")

// Typography - section 아이템 전용 글꼴 설정
type Typography struct {
	FontSize   int    `json:"fontSize,omitempty"` // 퍼센트, 0이면 100
	FontFamily string `json:"fontFamily,omitempty"`
	TextAlign  string `json:"textAlign,omitempty"`
}

// Scale - 실제 적용할 퍼센트 (기본 100)
func (t Typography) Scale() int {
	if t.FontSize <= 0 {
		return 100
	}
	return t.FontSize
}

// TypographyPatch - nil 필드는 유지
type TypographyPatch struct {
	FontSize   *int    `json:"fontSize,omitempty"`
	FontFamily *string `json:"fontFamily,omitempty"`
	TextAlign  *string `json:"textAlign,omitempty"`
}

// Item - 상세페이지의 이미지/섹션 블록
type Item struct {
	ID          string     `json:"id"`
	Kind        Kind       `json:"kind"`
	Payload     string     `json:"payload"` // image: URL 또는 data URL, section: HTML
	Title       string     `json:"title,omitempty"`
	SectionType string     `json:"sectionType,omitempty"`
	Typography  Typography `json:"typography"`
	Selected    bool       `json:"selected"`
}

// NewImage - 이미지 아이템 생성 (id는 List에 추가될 때 부여)
func NewImage(url string) Item {
	return Item{Kind: KindImage, Payload: url, Title: "Image"}
}

// NewSection - 섹션 아이템 생성
func NewSection(html string) Item {
	return Item{Kind: KindSection, Payload: html, Title: "Section"}
}

// Rendered - export/프리뷰에 사용하는 최종 마크업 (section은 타이포그래피 래퍼 적용)
func (it Item) Rendered() string {
	if it.Kind != KindSection {
		return it.Payload
	}
	return ApplyTypography(it.Payload, it.Typography)
}

func newID() string {
	return uuid.NewString()
}
