package content

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
)

var inlineFontSize = regexp.MustCompile(`(?i)font-size:\s*([\d.]+)px`)

// 허용 정렬값
var textAligns = map[string]bool{
	"left": true, "center": true, "right": true, "justify": true, "start": true, "end": true,
}

// cssFontFamily - 선언 구분자 제거 후 속성값 이스케이프
func cssFontFamily(family string) string {
	family = strings.Map(func(r rune) rune {
		switch r {
		case ';', '{', '}', '\\':
			return -1
		}
		return r
	}, family)
	return html.EscapeString(strings.TrimSpace(family))
}

// ApplyTypography - 섹션 HTML에 글꼴 크기/글꼴/정렬 적용
//   - fontSize가 100이 아니면 inline font-size:Npx 를 비율대로 변경 (소수점 1자리)
//   - font-family, text-align, font-size% 를 감싸는 div로 적용
//   - text-align은 허용값만, font-family는 이스케이프
//   - 적용할 것이 없으면 원본 그대로
func ApplyTypography(markup string, t Typography) string {
	scale := t.Scale()
	out := markup

	if scale != 100 {
		ratio := float64(scale) / 100
		out = inlineFontSize.ReplaceAllStringFunc(out, func(match string) string {
			sub := inlineFontSize.FindStringSubmatch(match)
			size, err := strconv.ParseFloat(sub[1], 64)
			if err != nil {
				return match
			}
			return fmt.Sprintf("font-size:%.1fpx", size*ratio)
		})
	}

	var styles []string
	if family := cssFontFamily(t.FontFamily); family != "" && family != "default" {
		styles = append(styles, fmt.Sprintf("font-family: %s !important", family))
	}
	if align := strings.ToLower(strings.TrimSpace(t.TextAlign)); textAligns[align] {
		styles = append(styles, fmt.Sprintf("text-align: %s !important", align))
	}
	if scale != 100 {
		styles = append(styles, fmt.Sprintf("font-size: %d%%", scale))
	}

	if len(styles) == 0 {
		return out
	}
	return fmt.Sprintf(`<div style="%s;">%s</div>`, strings.Join(styles, "; "), out)
}
