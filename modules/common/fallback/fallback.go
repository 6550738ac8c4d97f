package fallback

import (
	"regexp"
	"strings"
)

var hexColor = regexp.MustCompile(`^#?([0-9a-fA-F]{6}|[0-9a-fA-F]{3})$`)

// aspectRatios - 이미지 생성 API가 지원하는 비율
var aspectRatios = map[string]bool{
	"1:1": true, "2:3": true, "3:2": true, "3:4": true, "4:3": true,
	"4:5": true, "5:4": true, "9:16": true, "16:9": true, "21:9": true,
}

// SafeAspectRatio - 지원 비율이 아니면 fallback (빈 값 포함)
func SafeAspectRatio(value, fallback string) string {
	v := strings.ReplaceAll(strings.TrimSpace(value), " ", "")
	if aspectRatios[v] {
		return v
	}
	return fallback
}

// NormalizeHex - "#abc" / "AABBCC" 등을 "#AABBCC"로. 형식이 틀리면 ok=false
func NormalizeHex(value string) (string, bool) {
	m := hexColor.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return "", false
	}
	hex := strings.ToUpper(m[1])
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	return "#" + hex, true
}

// Limit - 앞에서부터 최대 max개 (max <= 0이면 그대로)
func Limit[T any](items []T, max int) []T {
	if max <= 0 || len(items) <= max {
		return items
	}
	return items[:max]
}
