package utils

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"log"
	"math"

	_ "github.com/kolesa-team/go-webp/decoder" // WebP 디코더 등록
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
	xdraw "golang.org/x/image/draw"
)

// DecodeImage - 이미지 디코딩 (WebP, PNG, JPEG 자동 감지)
func DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// ConvertToWebP - 이미지 바이너리를 WebP로 변환
func ConvertToWebP(data []byte, quality float32) ([]byte, error) {
	log.Printf("🔄 Converting image to WebP (quality: %.1f)", quality)

	img, err := DecodeImage(data)
	if err != nil {
		return nil, err
	}

	options, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, quality)
	if err != nil {
		return nil, fmt.Errorf("failed to create WebP encoder options: %w", err)
	}

	var webpBuffer bytes.Buffer
	if err := webp.Encode(&webpBuffer, img, options); err != nil {
		return nil, fmt.Errorf("failed to encode WebP: %w", err)
	}

	webpData := webpBuffer.Bytes()
	log.Printf("✅ Image converted to WebP: %d bytes → %d bytes", len(data), len(webpData))
	return webpData, nil
}

// EncodeJPEG - 흰 배경 위에 합성 후 JPEG 인코딩 (투명 영역 제거)
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	bounds := img.Bounds()
	flat := image.NewRGBA(bounds)
	xdraw.Draw(flat, bounds, image.NewUniform(color.White), image.Point{}, xdraw.Src)
	xdraw.Draw(flat, bounds, img, bounds.Min, xdraw.Over)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flat, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodePNG - PNG 인코딩
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// ScaleToWidth - 비율 유지하며 가로폭 맞춤
func ScaleToWidth(src image.Image, width int) image.Image {
	b := src.Bounds()
	if b.Dx() == 0 || width <= 0 {
		return src
	}
	height := int(math.Round(float64(b.Dy()) * float64(width) / float64(b.Dx())))
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}

// CropToAspect - 목표 비율로 중앙 크롭 후 목표 크기로 스케일
func CropToAspect(src image.Image, targetWidth, targetHeight int) (image.Image, error) {
	if targetWidth <= 0 || targetHeight <= 0 {
		return nil, fmt.Errorf("invalid target size %dx%d", targetWidth, targetHeight)
	}
	b := src.Bounds()
	srcW, srcH := b.Dx(), b.Dy()
	if srcW == 0 || srcH == 0 {
		return nil, fmt.Errorf("empty source image")
	}

	targetRatio := float64(targetWidth) / float64(targetHeight)
	cropW, cropH := srcW, srcH
	if float64(srcW)/float64(srcH) > targetRatio {
		cropW = int(math.Round(float64(srcH) * targetRatio))
	} else {
		cropH = int(math.Round(float64(srcW) / targetRatio))
	}
	x0 := b.Min.X + (srcW-cropW)/2
	y0 := b.Min.Y + (srcH-cropH)/2
	crop := image.Rect(x0, y0, x0+cropW, y0+cropH)

	dst := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, xdraw.Src, nil)
	return dst, nil
}

// EnforceAspectRatio - 이미지 바이너리를 목표 크기로 크롭/스케일 (PNG 반환)
func EnforceAspectRatio(data []byte, targetWidth, targetHeight int) ([]byte, error) {
	img, err := DecodeImage(data)
	if err != nil {
		return nil, err
	}
	out, err := CropToAspect(img, targetWidth, targetHeight)
	if err != nil {
		return nil, err
	}
	return EncodePNG(out)
}

// EnforceAspectDataURL - data URL 버전. 실패하면 원본 그대로 반환 (에러 없음)
func EnforceAspectDataURL(dataURL string, targetWidth, targetHeight int) string {
	_, data, err := ParseDataURL(dataURL)
	if err != nil {
		log.Printf("⚠️  Aspect enforcement skipped: %v", err)
		return dataURL
	}
	out, err := EnforceAspectRatio(data, targetWidth, targetHeight)
	if err != nil {
		log.Printf("⚠️  Aspect enforcement skipped: %v", err)
		return dataURL
	}
	return ToDataURL("image/png", out)
}
