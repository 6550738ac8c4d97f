package utils

import (
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"strings"
)

// DefaultImageMime - mime 정보가 없는 이미지 페이로드의 기본값
const DefaultImageMime = "image/png"

// ToDataURL - data:<mime>;base64,<payload>
func ToDataURL(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = DefaultImageMime
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// SplitDataURL - data URL을 mime과 base64 페이로드로 분리
// data URL이 아니면 전체 문자열을 base64로 보고 기본 mime 사용
func SplitDataURL(s string) (mimeType, payload string) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "data:") {
		return DefaultImageMime, s
	}
	header, body, ok := strings.Cut(s, ",")
	if !ok {
		return DefaultImageMime, ""
	}
	meta := strings.TrimPrefix(header, "data:")
	mimeType, _, _ = strings.Cut(meta, ";")
	if !strings.Contains(mimeType, "/") {
		mimeType = DefaultImageMime
	}
	return mimeType, body
}

// ParseDataURL - data URL (또는 순수 base64) 디코딩
func ParseDataURL(s string) (string, []byte, error) {
	mimeType, payload := SplitDataURL(s)
	if payload == "" {
		return "", nil, fmt.Errorf("empty image payload")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode base64 payload: %w", err)
	}
	return ResolveImageMime(mimeType, data), data, nil
}

// DetectImageMime - 바이트 스니핑으로 이미지 mime 확인
func DetectImageMime(data []byte) (string, error) {
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return "", fmt.Errorf("unsupported content type: %s", mimeType)
	}
	return mimeType, nil
}

// ResolveImageMime - 실제 바이트가 이미지로 판별되면 그 mime, 아니면 선언값
func ResolveImageMime(declared string, data []byte) string {
	sniffed, err := DetectImageMime(data)
	if err != nil {
		return declared
	}
	if sniffed != declared {
		log.Printf("⚠️  Declared mime %q does not match image bytes, using %s", declared, sniffed)
	}
	return sniffed
}
