package viewport

import (
	"fmt"
	"math"
)

// 줌 범위. 휠은 0.25까지, 버튼은 0.5까지 축소 가능
const (
	WheelMinZoom  = 0.25
	ButtonMinZoom = 0.5
	MaxZoom       = 3.0
	ZoomStep      = 0.1
)

// ViewMode - 프리뷰 캔버스 폭
type ViewMode string

const (
	ViewMain    ViewMode = "main"
	ViewMobile  ViewMode = "mobile"
	ViewDesktop ViewMode = "desktop"
)

// Width - 모드별 캔버스 폭(px)
func (m ViewMode) Width() int {
	switch m {
	case ViewMobile:
		return 375
	case ViewDesktop:
		return 1200
	default:
		return 860
	}
}

// Viewport - 콘텐츠와 무관한 줌/팬 상태
type Viewport struct {
	Zoom float64  `json:"zoom"`
	PanX float64  `json:"panX"`
	PanY float64  `json:"panY"`
	Mode ViewMode `json:"mode"`
}

// New - 1배율, 원점
func New() Viewport {
	return Viewport{Zoom: 1, Mode: ViewMain}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// round2 - 0.1 단위 누적 오차 제거
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Wheel - deltaY > 0 이면 축소, 아니면 확대 (이벤트당 0.1)
func (v *Viewport) Wheel(deltaY float64) {
	delta := ZoomStep
	if deltaY > 0 {
		delta = -ZoomStep
	}
	v.Zoom = clamp(round2(v.Zoom+delta), WheelMinZoom, MaxZoom)
}

// ZoomIn - 확대 버튼
func (v *Viewport) ZoomIn() {
	v.Zoom = math.Min(MaxZoom, round2(v.Zoom+ZoomStep))
}

// ZoomOut - 축소 버튼
func (v *Viewport) ZoomOut() {
	v.Zoom = math.Max(ButtonMinZoom, round2(v.Zoom-ZoomStep))
}

// PanBy - 마우스 드래그 이동량 반영 (제한 없음)
func (v *Viewport) PanBy(dx, dy float64) {
	v.PanX += dx
	v.PanY += dy
}

// Reset - 줌 1, 팬 원점
func (v *Viewport) Reset() {
	v.Zoom = 1
	v.PanX = 0
	v.PanY = 0
}

// SetMode - 알 수 없는 모드는 main
func (v *Viewport) SetMode(mode ViewMode) {
	switch mode {
	case ViewMobile, ViewDesktop:
		v.Mode = mode
	default:
		v.Mode = ViewMain
	}
}

// ZoomPercent - 표시용 퍼센트
func (v Viewport) ZoomPercent() int {
	return int(math.Round(v.Zoom * 100))
}

// Transform - 프리뷰 캔버스에 적용하는 CSS transform
func (v Viewport) Transform() string {
	return fmt.Sprintf("translate(calc(-50%% + %gpx), %gpx) scale(%g)", v.PanX, v.PanY, v.Zoom)
}
