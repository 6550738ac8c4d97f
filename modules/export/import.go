package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"ai-fashion-hub/modules/content"
)

// ErrNoContent - 가져올 블록이 없는 문서
var ErrNoContent = errors.New("no content blocks found in HTML")

var blockElements = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Br: true, atom.Li: true, atom.Tr: true, atom.Pre: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Ul: true, atom.Ol: true, atom.Section: true,
}

// TextLines - 마크업에서 텍스트만 추출, 블록 요소 경계에서 줄바꿈
func TextLines(markup string) []string {
	z := html.NewTokenizer(strings.NewReader(markup))
	var (
		lines []string
		cur   strings.Builder
	)
	breakLine := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			lines = append(lines, s)
		}
		cur.Reset()
	}

	for {
		switch z.Next() {
		case html.ErrorToken:
			breakLine()
			return lines
		case html.TextToken:
			text := strings.Join(strings.Fields(string(z.Text())), " ")
			if text == "" {
				continue
			}
			if cur.Len() > 0 {
				cur.WriteByte(' ')
			}
			cur.WriteString(text)
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if blockElements[atom.Lookup(name)] {
				breakLine()
			}
		}
	}
}

// ImportHTML - 내보낸 상세페이지 HTML을 다시 아이템 목록으로 변환
// .product-detail 컨테이너의 자식(없으면 body 자식)을 순서대로 읽음
func ImportHTML(r io.Reader) ([]content.Item, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	root := findElement(doc, func(n *html.Node) bool {
		return n.DataAtom == atom.Div && hasClass(n, "product-detail")
	})
	if root == nil {
		root = findElement(doc, func(n *html.Node) bool { return n.DataAtom == atom.Body })
	}
	if root == nil {
		return nil, ErrNoContent
	}

	var items []content.Item
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch {
		case c.DataAtom == atom.Img:
			it := content.NewImage(attr(c, "src"))
			if alt := attr(c, "alt"); alt != "" {
				it.Title = alt
			}
			items = append(items, it)
		case c.DataAtom == atom.Div && hasClass(c, "section"):
			inner := c
			if pre := firstChildElement(c, atom.Pre); pre != nil {
				inner = pre
			}
			markup, err := renderChildren(inner)
			if err != nil {
				return nil, err
			}
			items = append(items, content.NewSection(markup))
		default:
			var buf bytes.Buffer
			if err := html.Render(&buf, c); err != nil {
				return nil, err
			}
			items = append(items, content.NewSection(buf.String()))
		}
	}

	if len(items) == 0 {
		return nil, ErrNoContent
	}
	return items, nil
}

func findElement(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, match); found != nil {
			return found
		}
	}
	return nil
}

func firstChildElement(n *html.Node, a atom.Atom) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			return c
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func renderChildren(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return strings.TrimSpace(buf.String()), nil
}
