package export

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// NamedBlock - 이름 있는 섹션 템플릿 결과
type NamedBlock struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	HTML  string `json:"html"`
}

// ProductInfo - 제품 이미지 분석(자동 채우기) 결과
type ProductInfo struct {
	LineName        string `json:"lineName"`
	ProductName     string `json:"productName"`
	Category        string `json:"category"`
	Color           string `json:"color"`
	Upper           string `json:"upper"`
	Lining          string `json:"lining"`
	Sole            string `json:"sole"`
	Insole          string `json:"insole"`
	OutsoleHeightCm string `json:"outsoleHeightCm"`
	InsoleHeightCm  string `json:"insoleHeightCm"`
	TotalHeightCm   string `json:"totalHeightCm"`
	Intro           string `json:"intro"`
	Style           string `json:"style"`
	Tech            string `json:"tech"`
	EstimatedWidth  string `json:"estimatedWidth"`
	EstimatedLength string `json:"estimatedLength"`
	EstimatedHeight string `json:"estimatedHeight"`
	CareGuide       string `json:"careGuide"`
}

// Material - 소재 타입에 따른 테크 블록 문구
type Material struct {
	Label string `json:"label"`
	Title string `json:"title"`
	Desc  string `json:"desc"`
}

// DefaultMaterial - 분석 전 기본값
var DefaultMaterial = Material{
	Label: "TECHNOLOGY",
	Title: "Premium Material",
	Desc:  "고급 소재를 사용하여 편안한 착화감을 제공합니다.",
}

// DetectMaterial - 갑피/안감/밑창 문구로 천연가죽 여부 판단
func DetectMaterial(info ProductInfo) Material {
	text := strings.ToLower(info.Upper + info.Lining + info.Sole)
	if strings.Contains(text, "가죽") || strings.Contains(text, "leather") || strings.Contains(text, "천연") {
		return Material{
			Label: "PREMIUM LEATHER",
			Title: "Natural Leather",
			Desc:  "최고급 천연 가죽을 사용하여 통기성과 내구성이 뛰어납니다.",
		}
	}
	return Material{
		Label: "ADVANCED MATERIAL",
		Title: "Synthetic Premium",
		Desc:  "고급 합성 소재로 가볍고 관리가 용이합니다.",
	}
}

var blockTemplates = template.Must(template.New("blocks").Parse(`
{{define "info"}}<div style="padding: 40px 20px; text-align: center; font-family: 'Inter', sans-serif;">
  <h2 style="font-size: 24px; font-weight: bold; margin-bottom: 10px;">{{.ProductName}}</h2>
  <p style="font-size: 14px; color: #666; margin-bottom: 30px;">{{.LineName}} | {{.Color}}</p>
  <div style="display: grid; grid-template-columns: 1fr 1fr; gap: 15px; max-width: 400px; margin: 0 auto; text-align: left; font-size: 13px;">
    <div><strong>UPPER</strong> {{.Upper}}</div>
    <div><strong>LINING</strong> {{.Lining}}</div>
    <div><strong>SOLE</strong> {{.Sole}}</div>
    <div><strong>HEEL</strong> {{.OutsoleHeightCm}}</div>
  </div>
</div>{{end}}

{{define "intro"}}<div style="padding: 60px 20px; text-align: center; background-color: #f9f9f9;">
  <h3 style="font-size: 18px; font-weight: bold; margin-bottom: 20px;">DESIGN PHILOSOPHY</h3>
  <p style="font-size: 15px; line-height: 1.8; color: #444; max-width: 600px; margin: 0 auto;">{{.}}</p>
</div>{{end}}

{{define "tech"}}<div style="padding: 50px 20px; text-align: center;">
  <span style="display: inline-block; padding: 5px 10px; border: 1px solid #000; font-size: 10px; font-weight: bold; margin-bottom: 20px;">{{.Label}}</span>
  <h3 style="font-size: 20px; font-weight: bold; margin-bottom: 15px;">{{.Title}}</h3>
  <p style="font-size: 14px; color: #666; max-width: 500px; margin: 0 auto;">{{.Desc}}</p>
</div>{{end}}

{{define "size"}}<div style="padding: 40px 20px; background-color: #fff; border-top: 1px solid #eee;">
  <h3 style="font-size: 16px; font-weight: bold; margin-bottom: 20px; text-align: center;">SIZE INFORMATION (Estimated)</h3>
  <div style="display: flex; justify-content: center; gap: 30px; text-align: center;">
    {{- if .EstimatedLength}}<div><div style="font-size: 12px; color: #888;">Length</div><div style="font-weight: bold;">{{.EstimatedLength}}</div></div>{{end}}
    {{- if .EstimatedWidth}}<div><div style="font-size: 12px; color: #888;">Width</div><div style="font-weight: bold;">{{.EstimatedWidth}}</div></div>{{end}}
    {{- if .EstimatedHeight}}<div><div style="font-size: 12px; color: #888;">Height</div><div style="font-weight: bold;">{{.EstimatedHeight}}</div></div>{{end}}
  </div>
  <p style="font-size: 11px; color: #999; text-align: center; margin-top: 15px;">* AI 분석에 의한 추정치로 실제 제품과 차이가 있을 수 있습니다.</p>
</div>{{end}}

{{define "care"}}<div style="padding: 40px 20px; background-color: #f5f5f5;">
  <h3 style="font-size: 16px; font-weight: bold; margin-bottom: 15px;">MATERIAL CARE GUIDE</h3>
  <div style="font-size: 13px; line-height: 1.6; color: #555; white-space: pre-line;">{{.}}</div>
</div>{{end}}

{{define "sizeGuide"}}<div style="padding: 60px 40px; background: white; font-family: 'Inter', sans-serif;">
  <h2 style="font-size: 32px; font-weight: 700; text-align: center; margin-bottom: 60px;">SIZE GUIDE</h2>
  <div style="max-width: 800px; margin: 0 auto;">
    {{- if .Image}}<div style="text-align: center; margin-bottom: 40px;"><img src="{{.Image}}" style="width: 100%; max-width: 600px; height: auto;" /></div>{{end}}
    <div style="display: grid; grid-template-columns: repeat(3, 1fr); gap: 20px;">
      <div style="text-align: center; padding: 20px; border: 1px solid #e0e0e0; border-radius: 8px;"><div style="font-size: 14px; color: #666; margin-bottom: 8px;">가로</div><div style="font-size: 24px; font-weight: bold;">{{.ShoeLength}}</div></div>
      <div style="text-align: center; padding: 20px; border: 1px solid #e0e0e0; border-radius: 8px;"><div style="font-size: 14px; color: #666; margin-bottom: 8px;">세로</div><div style="font-size: 24px; font-weight: bold;">{{.ShoeWidth}}</div></div>
      <div style="text-align: center; padding: 20px; border: 1px solid #e0e0e0; border-radius: 8px;"><div style="font-size: 14px; color: #666; margin-bottom: 8px;">굽 높이</div><div style="font-size: 24px; font-weight: bold;">{{.HeelHeight}}</div></div>
    </div>
    <p style="margin-top: 30px; font-size: 13px; color: #999; text-align: center;">• {{.Note}}</p>
  </div>
</div>{{end}}

{{define "careGrid"}}<div style="padding: 60px 40px; background: white; font-family: 'Inter', sans-serif;">
  <h2 style="font-size: 28px; font-weight: 700; margin-bottom: 40px;">기타 주의 사항</h2>
  <div style="display: grid; grid-template-columns: repeat(2, 1fr); gap: 30px;">
    {{- range .}}
    <div style="background: #f8f9fa; padding: 30px; border-radius: 12px;">
      <div style="font-size: 48px; margin-bottom: 16px;">{{.Icon}}</div>
      <h3 style="font-size: 18px; font-weight: 600; margin-bottom: 12px;">{{.Title}}</h3>
      <p style="font-size: 14px; line-height: 1.6; color: #666;">{{.Desc}}</p>
    </div>
    {{- end}}
  </div>
</div>{{end}}

{{define "shipping"}}<div style="padding: 60px 40px; background: white; font-family: 'Inter', sans-serif;">
  <h2 style="font-size: 28px; font-weight: 700; margin-bottom: 40px;">배송/교환/환불</h2>
  <div style="max-width: 800px;">
    <div style="background: #fef3f2; border-left: 4px solid #ef4444; padding: 24px; margin-bottom: 30px; border-radius: 8px;">
      <h3 style="font-size: 16px; font-weight: 600; margin-bottom: 16px;">📦 배송/교환/환불 안내</h3>
      <ul style="margin: 0; padding-left: 24px; line-height: 2;">{{range .ShippingItems}}<li style="font-size: 14px; color: #555;">{{.}}</li>{{end}}</ul>
    </div>
    <div style="background: #fef3f2; border-left: 4px solid #ef4444; padding: 24px; border-radius: 8px;">
      <h3 style="font-size: 16px; font-weight: 600; margin-bottom: 16px;">📦 교환 및 환불 불가 안내</h3>
      <ul style="margin: 0; padding-left: 24px; line-height: 2;">{{range .ExchangeItems}}<li style="font-size: 14px; color: #555;">{{.}}</li>{{end}}</ul>
    </div>
  </div>
</div>{{end}}

{{define "caution"}}<div style="padding: 60px 40px; background: #1f2937; color: white; font-family: 'Inter', sans-serif;">
  <h2 style="font-size: 32px; font-weight: 700; margin-bottom: 40px; color: #ef4444;">CAUTION</h2>
  <div style="max-width: 900px;">
    <ul style="list-style: none; padding: 0; margin-bottom: 50px;">
      {{- range .Warnings}}
      <li style="font-size: 14px; line-height: 1.8; margin-bottom: 16px; padding-left: 20px; position: relative;"><span style="position: absolute; left: 0; color: #ef4444;">•</span> {{.}}</li>
      {{- end}}
    </ul>
    <div style="background: #374151; padding: 30px; border-radius: 12px;">
      <h3 style="font-size: 20px; font-weight: 600; margin-bottom: 20px;">A/S 안내</h3>
      <p style="font-size: 14px; line-height: 1.8; margin-bottom: 16px;">{{.ASCenter}}</p>
      <p style="font-size: 14px; margin: 8px 0;"><strong>고객센터:</strong> {{.ASContact}}</p>
      <p style="font-size: 14px; margin: 8px 0;"><strong>카카오톡 채널:</strong> {{.ASKakao}}</p>
    </div>
  </div>
</div>{{end}}

{{define "notice"}}<div style="padding: 40px 20px; background-color: #f9f9f9; font-family: 'Inter', sans-serif;">
  <h3 style="font-size: 16px; font-weight: bold; margin-bottom: 20px; border-bottom: 1px solid #ddd; padding-bottom: 10px;">{{.Title}}</h3>
  <div style="font-size: 13px; line-height: 1.8; color: #555; white-space: pre-line;">{{.Body}}</div>
</div>{{end}}
`))

func render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := blockTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s block: %w", name, err)
	}
	return buf.String(), nil
}

// Info - 제품명, 라인/컬러, 소재 그리드
func Info(info ProductInfo) (string, error) { return render("info", info) }

// Intro - DESIGN PHILOSOPHY
func Intro(text string) (string, error) { return render("intro", text) }

// Tech - 소재 라벨/제목/설명
func Tech(m Material) (string, error) { return render("tech", m) }

// Size - 추정 사이즈 (값이 있는 항목만)
func Size(info ProductInfo) (string, error) { return render("size", info) }

// Care - 소재 관리 가이드 (줄바꿈 유지)
func Care(text string) (string, error) { return render("care", text) }

// ProductBlocks - 자동 채우기 결과로 프리뷰에 추가할 섹션들
// info, tech는 항상 / intro, size, care는 값이 있을 때만
func ProductBlocks(info ProductInfo) ([]NamedBlock, error) {
	type step struct {
		typ    string
		render func() (string, error)
	}
	steps := []step{{"info", func() (string, error) { return Info(info) }}}
	if info.Intro != "" {
		steps = append(steps, step{"intro", func() (string, error) { return Intro(info.Intro) }})
	}
	steps = append(steps, step{"tech", func() (string, error) { return Tech(DetectMaterial(info)) }})
	if info.EstimatedWidth != "" || info.EstimatedLength != "" || info.EstimatedHeight != "" {
		steps = append(steps, step{"size", func() (string, error) { return Size(info) }})
	}
	if info.CareGuide != "" {
		steps = append(steps, step{"care", func() (string, error) { return Care(info.CareGuide) }})
	}

	blocks := make([]NamedBlock, 0, len(steps))
	for _, s := range steps {
		h, err := s.render()
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, NamedBlock{Type: s.typ, Title: "Section", HTML: h})
	}
	return blocks, nil
}

// SizeGuideData - SIZE GUIDE 템플릿 입력
type SizeGuideData struct {
	ShoeImage  string `json:"shoeImage,omitempty"`
	ShoeLength string `json:"shoeLength"`
	ShoeWidth  string `json:"shoeWidth"`
	HeelHeight string `json:"heelHeight"`
	Note       string `json:"sizeNote"`
}

// CareItem - 주의 사항 카드
type CareItem struct {
	Icon  string `json:"icon"`
	Title string `json:"title"`
	Desc  string `json:"desc"`
}

// ShippingData - 배송/교환/환불 템플릿 입력
type ShippingData struct {
	ShippingItems []string `json:"shippingItems"`
	ExchangeItems []string `json:"exchangeItems"`
}

// CautionData - CAUTION 템플릿 입력
type CautionData struct {
	Warnings  []string `json:"warnings"`
	ASCenter  string   `json:"asCenter"`
	ASContact string   `json:"asContact"`
	ASKakao   string   `json:"asKakao"`
}

// TemplateData - 템플릿 종류별 입력. 비어있는 필드는 기본값 사용
type TemplateData struct {
	SizeGuide *SizeGuideData `json:"sizeGuide,omitempty"`
	Care      []CareItem     `json:"care,omitempty"`
	Shipping  *ShippingData  `json:"shipping,omitempty"`
	Caution   *CautionData   `json:"caution,omitempty"`
	Text      string         `json:"text,omitempty"` // materialCare, shippingNotice 본문
}

// ErrUnknownTemplate - 지원하지 않는 템플릿 종류
var ErrUnknownTemplate = errors.New("unknown template type")

// 템플릿 종류
const (
	TemplateSizeGuide      = "sizeGuide"
	TemplateCare           = "care"
	TemplateShipping       = "shipping"
	TemplateCaution        = "caution"
	TemplateMaterialCare   = "materialCare"
	TemplateShippingNotice = "shippingNotice"
)

// TemplateTypes - 지원 템플릿 목록
var TemplateTypes = []string{
	TemplateSizeGuide, TemplateCare, TemplateShipping, TemplateCaution, TemplateMaterialCare, TemplateShippingNotice,
}

func DefaultSizeGuide() SizeGuideData {
	return SizeGuideData{
		ShoeLength: "27cm",
		ShoeWidth:  "10cm",
		HeelHeight: "3cm",
		Note:       "사이즈 측정 방법과 기준에 따라 약간의 오차가 발생할 수 있습니다.",
	}
}

func DefaultCareItems() []CareItem {
	return []CareItem{
		{Icon: "💧", Title: "습기 주의", Desc: "가죽 제품은 습기에 약한 변색이나 얼룩이 생길 수 있습니다."},
		{Icon: "☀️", Title: "직사광선 주의", Desc: "직사광선에 장시간 노출되는 경우 가죽 색상이 바래게 하거나 이염을 일으킬 수 있습니다."},
		{Icon: "🚫", Title: "열/세제 금지", Desc: "가죽 제품은 열탕 소독이나 강력한 세제를 사용하면 심각한 손상을 입을 수 있습니다."},
		{Icon: "🧺", Title: "세탁 방법", Desc: "오염 시에는 즉시 가죽 전용 클리너나 부드러운 천으로 닦아주세요."},
		{Icon: "📦", Title: "보관 방법", Desc: "장기간 보관 시에는 통기성 좋은 천 커버를 권장합니다."},
		{Icon: "👟", Title: "착용 방법", Desc: "착용 전후 가죽 전용 보호제나 크림을 발라 주기적으로 관리하면 제품 수명을 연장할 수 있습니다."},
	}
}

func DefaultShipping() ShippingData {
	return ShippingData{
		ShippingItems: []string{
			"교환 및 반품 가능 기간: 상품 수령일로부터 7일 이내",
			"단순 변심 및 주문 오류로 인한 교환/반품의 경우 왕복 배송비 부담",
		},
		ExchangeItems: []string{
			"착용 흔적이 있거나 훼손된 경우",
			"주문한 상품이 결함이 없는 경우 단순 변심",
		},
	}
}

func DefaultCaution() CautionData {
	return CautionData{
		Warnings: []string{
			"가죽 제품 특성상 개체별 색감의 차이, 고유 주름 및 스크래치가 있을 수 있으며, 이염이 발생할 수 있습니다.",
			"가죽 제품의 경우 생산과정에서 에이징 자국이 진행되어 출고됨에 따라 제품 최초 수령 시 주름이 잡혀 있으며, 이는 불량 사유가 아닙니다.",
		},
		ASCenter:  "고객센터로 연락 주시면 해당 내용을 확인 후 순차적인 답변 처리 도와드리겠습니다.",
		ASContact: "070-4647-1211",
		ASKakao:   "스토어이름",
	}
}

const defaultMaterialCareText = `가죽 주의 사항

• 습기 주의: 습기 제거제 사용 권장
• 가죽 영양제: 월 1회 이상 영양 보충
• 직사광선: 변색 및 변형 주의
• 수분 방지: 방수 스프레이 사용
• 통풍 보관: 신발장 내부 환기 필수

제품 하자 시 처리:
배송 상태 확인 후 즉시 문의 주시기 바랍니다.
전자상거래법에 따라 제품 수령 후 7일 이내 교환/환불이 가능하며, 착용/사용 흔적이 없는 경우에 한정합니다.`

const defaultShippingNoticeText = `배송/교환/환불 안내

• 교환 및 반품
교환 및 반품 가능 기간: 상품 수령일로부터 7일 이내
단순 변심 및 주문 오류로 인한 교환/반품의 경우 왕복 배송비가 발생합니다.

• 교환 및 환불 불가 안내
- 신발의 변화 또는 착용 흔적이 있을 시
- 주문한 상품이 결함이 없는 경우 단순 변심
- 상품 수령일로부터 7일 후에 신고를 했을 경우
- 재판매가 불가능한 상품의 경우`

// SizeGuide - SIZE GUIDE 템플릿
func SizeGuide(d SizeGuideData) (string, error) {
	view := struct {
		SizeGuideData
		Image template.URL
	}{d, safeImageURL(d.ShoeImage)}
	return render("sizeGuide", view)
}

// safeImageURL - data:image / http(s) 이미지만 허용
func safeImageURL(s string) template.URL {
	if strings.HasPrefix(s, "data:image/") || strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "http://") {
		return template.URL(s)
	}
	return ""
}

// CareGrid - 기타 주의 사항 카드 그리드
func CareGrid(items []CareItem) (string, error) { return render("careGrid", items) }

// Shipping - 배송/교환/환불 리스트
func Shipping(d ShippingData) (string, error) { return render("shipping", d) }

// Caution - 어두운 배경 CAUTION + A/S 안내
func Caution(d CautionData) (string, error) { return render("caution", d) }

// MaterialCare - 소재 관리 및 A/S 자유 텍스트
func MaterialCare(text string) (string, error) {
	return render("notice", struct{ Title, Body string }{"소재 관리 및 A/S", text})
}

// ShippingNotice - 배송/교환/환불 자유 텍스트
func ShippingNotice(text string) (string, error) {
	return render("notice", struct{ Title, Body string }{"배송/교환/환불", text})
}

// Template - 종류별 템플릿 렌더링. 알 수 없는 종류는 에러
func Template(typ string, data TemplateData) (NamedBlock, error) {
	var (
		title string
		html  string
		err   error
	)

	switch typ {
	case TemplateSizeGuide:
		d := DefaultSizeGuide()
		if data.SizeGuide != nil {
			d = mergeSizeGuide(d, *data.SizeGuide)
		}
		title = "SIZE GUIDE"
		html, err = SizeGuide(d)
	case TemplateCare:
		items := data.Care
		if len(items) == 0 {
			items = DefaultCareItems()
		}
		title = "기타 주의 사항"
		html, err = CareGrid(items)
	case TemplateShipping:
		d := DefaultShipping()
		if data.Shipping != nil {
			if len(data.Shipping.ShippingItems) > 0 {
				d.ShippingItems = data.Shipping.ShippingItems
			}
			if len(data.Shipping.ExchangeItems) > 0 {
				d.ExchangeItems = data.Shipping.ExchangeItems
			}
		}
		title = "배송/교환/환불"
		html, err = Shipping(d)
	case TemplateCaution:
		d := DefaultCaution()
		if data.Caution != nil {
			d = mergeCaution(d, *data.Caution)
		}
		title = "CAUTION"
		html, err = Caution(d)
	case TemplateMaterialCare:
		text := data.Text
		if text == "" {
			text = defaultMaterialCareText
		}
		title = "소재 관리 및 A/S"
		html, err = MaterialCare(text)
	case TemplateShippingNotice:
		text := data.Text
		if text == "" {
			text = defaultShippingNoticeText
		}
		title = "배송/교환/환불"
		html, err = ShippingNotice(text)
	default:
		return NamedBlock{}, fmt.Errorf("%w: %s", ErrUnknownTemplate, typ)
	}

	if err != nil {
		return NamedBlock{}, err
	}
	return NamedBlock{Type: typ, Title: title, HTML: html}, nil
}

func mergeSizeGuide(d, in SizeGuideData) SizeGuideData {
	if in.ShoeImage != "" {
		d.ShoeImage = in.ShoeImage
	}
	if in.ShoeLength != "" {
		d.ShoeLength = in.ShoeLength
	}
	if in.ShoeWidth != "" {
		d.ShoeWidth = in.ShoeWidth
	}
	if in.HeelHeight != "" {
		d.HeelHeight = in.HeelHeight
	}
	if in.Note != "" {
		d.Note = in.Note
	}
	return d
}

func mergeCaution(d, in CautionData) CautionData {
	if len(in.Warnings) > 0 {
		d.Warnings = in.Warnings
	}
	if in.ASCenter != "" {
		d.ASCenter = in.ASCenter
	}
	if in.ASContact != "" {
		d.ASContact = in.ASContact
	}
	if in.ASKakao != "" {
		d.ASKakao = in.ASKakao
	}
	return d
}
