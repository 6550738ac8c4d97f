package prompt

// ProductInfo - 제품 이미지 분석 후 JSON으로 응답받는 자동 채우기 프롬프트
func ProductInfo() string {
	return `
럭셔리 브랜드 카피라이터 및 제품 분석가로서 제품 이미지를 분석하여 JSON으로 응답:
{
  "lineName": "라인명", "productName": "제품명", "category": "카테고리",
  "color": "컬러", "upper": "갑피 소재", "lining": "안감", "sole": "밑창", "insole": "깔창",
  "outsoleHeightCm": "아웃솔 높이", "insoleHeightCm": "인솔 높이", "totalHeightCm": "총 높이",
  "intro": "핵심 가치", "style": "스타일링", "tech": "소재 특징",
  "estimatedWidth": "발볼 너비 (예: 10cm)",
  "estimatedLength": "총 길이 (예: 27cm)",
  "estimatedHeight": "총 높이 (예: 12cm)",
  "careGuide": "소재에 따른 상세 관리 방법 (가죽/합성피혁/스웨이드 등 소재 특성에 맞춰 3줄 이상 작성)"
}
`
}
