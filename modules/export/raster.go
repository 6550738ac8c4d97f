package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"ai-fashion-hub/modules/common/utils"
	"ai-fashion-hub/modules/content"
)

// ErrPreviewNotFound - 렌더링할 프리뷰가 없음
var ErrPreviewNotFound = errors.New("preview area not found")

const (
	textPadding    = 20
	textLineHeight = 18
	maxJPEGHeight  = 65535
)

// Fetcher - data URL이 아닌 이미지 주소를 가져오는 함수
type Fetcher func(ctx context.Context, url string) ([]byte, error)

// RasterOptions - JPEG 내보내기 옵션
type RasterOptions struct {
	Width   int // CSS px
	Scale   int // 슈퍼샘플링 배율
	Quality int
	Fetch   Fetcher
}

// DefaultRasterOptions - 860px, 2배, 품질 95
func DefaultRasterOptions() RasterOptions {
	return RasterOptions{Width: 860, Scale: 2, Quality: 95}
}

// JPEGFilename - detail-page-<unix ms>.jpg
func JPEGFilename(now time.Time) string {
	return fmt.Sprintf("detail-page-%d.jpg", now.UnixMilli())
}

// JPEG - 목록을 흰 배경 위에 세로로 렌더링해서 JPEG로 인코딩
// 하나라도 실패하면 부분 결과 없이 에러
func JPEG(ctx context.Context, items []content.Item, opts RasterOptions) ([]byte, error) {
	if len(items) == 0 {
		return nil, ErrPreviewNotFound
	}
	def := DefaultRasterOptions()
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Scale <= 0 {
		opts.Scale = def.Scale
	}
	if opts.Quality <= 0 {
		opts.Quality = def.Quality
	}
	outWidth := opts.Width * opts.Scale

	blocks := make([]image.Image, 0, len(items))
	totalHeight := 0
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var (
			img image.Image
			err error
		)
		if item.Kind == content.KindImage {
			img, err = rasterImage(ctx, item.Payload, outWidth, opts.Fetch)
		} else {
			img = rasterText(item.Rendered(), opts.Width, outWidth)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to render item %d (%s): %w", i, item.ID, err)
		}
		blocks = append(blocks, img)
		totalHeight += img.Bounds().Dy()
	}

	if totalHeight > maxJPEGHeight {
		return nil, fmt.Errorf("rendered preview too tall: %dpx", totalHeight)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, outWidth, totalHeight))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	y := 0
	for _, b := range blocks {
		r := image.Rect(0, y, b.Bounds().Dx(), y+b.Bounds().Dy())
		draw.Draw(canvas, r, b, b.Bounds().Min, draw.Over)
		y += b.Bounds().Dy()
	}

	return utils.EncodeJPEG(canvas, opts.Quality)
}

func rasterImage(ctx context.Context, src string, width int, fetch Fetcher) (image.Image, error) {
	var data []byte
	switch {
	case strings.HasPrefix(src, "data:"):
		_, decoded, err := utils.ParseDataURL(src)
		if err != nil {
			return nil, err
		}
		data = decoded
	case fetch != nil && src != "":
		fetched, err := fetch(ctx, src)
		if err != nil {
			return nil, err
		}
		data = fetched
	default:
		return nil, fmt.Errorf("unsupported image source")
	}

	img, err := utils.DecodeImage(data)
	if err != nil {
		return nil, err
	}
	return utils.ScaleToWidth(img, width), nil
}

// rasterText - 섹션 텍스트를 cssWidth 폭으로 줄바꿈 렌더링 후 outWidth로 확대
func rasterText(markup string, cssWidth, outWidth int) image.Image {
	face := basicfont.Face7x13
	advance := face.Advance
	perLine := (cssWidth - 2*textPadding) / advance
	if perLine < 1 {
		perLine = 1
	}

	var lines []string
	for _, para := range TextLines(markup) {
		lines = append(lines, wrap(para, perLine)...)
	}

	height := 2*textPadding + len(lines)*textLineHeight
	strip := image.NewRGBA(image.Rect(0, 0, cssWidth, height))
	draw.Draw(strip, strip.Bounds(), image.White, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  strip,
		Src:  image.NewUniform(color.Black),
		Face: face,
	}
	for i, line := range lines {
		d.Dot = fixed.P(textPadding, textPadding+face.Ascent+i*textLineHeight)
		d.DrawString(line)
	}
	return utils.ScaleToWidth(strip, outWidth)
}

// wrap - 단어 단위 줄바꿈, 긴 단어는 강제로 자름
func wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var (
		lines []string
		cur   []rune
	)
	flush := func() {
		lines = append(lines, string(cur))
		cur = cur[:0]
	}
	for _, w := range words {
		wr := []rune(w)
		for len(wr) > width {
			if len(cur) > 0 {
				flush()
			}
			lines = append(lines, string(wr[:width]))
			wr = wr[width:]
		}
		need := len(wr)
		if len(cur) > 0 {
			need++
		}
		if len(cur)+need > width {
			flush()
		}
		if len(cur) > 0 {
			cur = append(cur, ' ')
		}
		cur = append(cur, wr...)
	}
	if len(cur) > 0 {
		flush()
	}
	return lines
}
