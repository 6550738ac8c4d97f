package export

import (
	"html"
	"strings"

	"ai-fashion-hub/modules/content"
)

// HTMLFilename - HTML 다운로드 파일명
const HTMLFilename = "detail-page.html"

const (
	htmlHead = `<!DOCTYPE html>
<html lang="ko">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Product Detail Page</title>
</head>
<body>
    <div class="product-detail">
`
	htmlTail = `
    </div>
</body>
</html>
`
)

// Block - 아이템 하나를 최상위 블록 하나로 변환
// image: <img>, section: <div class="section"><pre>원본 마크업</pre></div>
func Block(item content.Item) string {
	if item.Kind == content.KindImage {
		return `<img src="` + html.EscapeString(item.Payload) + `" alt="` + html.EscapeString(item.Title) +
			`" style="width: 100%; display: block;" />`
	}
	return `<div class="section"><pre>` + item.Rendered() + `</pre></div>`
}

// HTML - 목록 순서대로 정적 HTML 문서 생성 (UTF-8)
func HTML(items []content.Item) string {
	blocks := make([]string, 0, len(items))
	for _, item := range items {
		blocks = append(blocks, Block(item))
	}

	var sb strings.Builder
	sb.WriteString(htmlHead)
	sb.WriteString(strings.Join(blocks, "\n"))
	sb.WriteString(htmlTail)
	return sb.String()
}
