package prompt

import "strings"

// Effect - 신발 이미지에 적용하는 시각 효과 식별자
type Effect string

const (
	EffectNaturalLight          Effect = "natural_light"
	EffectCinematic             Effect = "cinematic"
	EffectSideLighting          Effect = "side_lighting"
	EffectBeautify              Effect = "beautify"
	EffectCustom                Effect = "custom"
	EffectStudioMinimalProp     Effect = "studio_minimal_prop"
	EffectStudioNaturalFloor    Effect = "studio_natural_floor"
	EffectStudioTextureEmphasis Effect = "studio_texture_emphasis"
	EffectStudioCinematic       Effect = "studio_cinematic"
)

// Effects - 지원하는 효과 전체 목록
var Effects = []Effect{
	EffectNaturalLight,
	EffectCinematic,
	EffectSideLighting,
	EffectBeautify,
	EffectCustom,
	EffectStudioMinimalProp,
	EffectStudioNaturalFloor,
	EffectStudioTextureEmphasis,
	EffectStudioCinematic,
}

// NormalizeEffect - 레거시 효과 이름 매핑 ('standard' → beautify)
func NormalizeEffect(effect string) Effect {
	if effect == "standard" {
		return EffectBeautify
	}
	return Effect(effect)
}

const systemRole = "**SYSTEM ROLE:** You are a \"Technical 3D Product Visualization Engine\" and \"Master Retoucher\".\n" +
	"**INPUT:** Raw reference photo of a shoe.\n" +
	"**OUTPUT:** A Photorealistic Commercial Asset (2K Resolution, Factory Fresh).\n\n" +
	"**[CRITICAL EXECUTION RULES]**\n" +
	"1.  **IDENTITY LOCK (Non-Negotiable):**\n" +
	"    *   The shoe's LOGO, STITCHING, LACE PATTERN, and DESIGN LINES must be a 100% PERFECT CLONE of the reference.\n" +
	"    *   DO NOT hallucinate new features.\n" +
	"2.  **QUANTITY & GEOMETRY:**\n" +
	"    *   \"SINGLE\" mode = Render EXACTLY ONE shoe. Crop out or erase any partial second shoe.\n" +
	"    *   \"PAIR\" mode = Render EXACTLY TWO shoes.\n" +
	"    *   **ALIGNMENT:** The object must be visually CENTERED (X=50%, Y=50%).\n" +
	"    *   **HORIZON:** The ground plane must be perfectly flat and horizontal.\n" +
	"3.  **SURFACE RE-SYNTHESIS (CGI MODE):**\n" +
	"    *   Treat the input as a \"Geometry Reference Only\".\n" +
	"    *   **DO NOT COPY PIXELS.** Re-render the surface to look \"Factory Fresh\".\n" +
	"    *   Remove all dust, wrinkles, glue marks, and scuffs.\n" +
	"    *   Fix lens distortion.\n"

// DefaultLayout - 포즈가 없거나 알 수 없을 때 사용하는 레이아웃
const DefaultLayout = "**LAYOUT:** Standard Commercial Center."

// poseLayouts - beautify 효과의 포즈별 레이아웃 (가로형)
var poseLayouts = map[string]string{
	"left_profile_single": "**[LAYOUT: SINGLE - LEFT PROFILE]**\n" +
		"*   **QUANTITY:** ONLY 1 SHOE (Left Foot). [NEGATIVE: Pair, Double, Mirror].\n" +
		"*   **ANGLE:** Perfect Side Profile (90 deg). Toe pointing Left.\n" +
		"*   **COMPOSITION:** Horizontal Canvas. Shoe fills 85% width. Dead Center.",
	"left_diagonal_single": "**[LAYOUT: SINGLE - 3/4 ISOMETRIC]**\n" +
		"*   **QUANTITY:** ONLY 1 SHOE (Left Foot). [NEGATIVE: Pair, Second shoe].\n" +
		"*   **ANGLE:** 45-Degree Front-Left view. Best Angle.\n" +
		"*   **COMPOSITION:** Horizontal Canvas. Shoe fills 85% width. Dead Center.",
	"front_apart_pair": "**[LAYOUT: PAIR - FRONT VIEW]**\n" +
		"*   **QUANTITY:** 2 SHOES (Left & Right).\n" +
		"*   **ARRANGEMENT:** Side-by-side. **GAP < 5% (Very Tight)**.\n" +
		"*   **ANGLE:** Direct Front view.\n" +
		"*   **COMPOSITION:** Horizontal Canvas. Pair fills 90% width.",
	"rear_pair": "**[LAYOUT: PAIR - REAR VIEW]**\n" +
		"*   **QUANTITY:** 2 SHOES (Left & Right).\n" +
		"*   **ARRANGEMENT:** Side-by-side, heels aligned. **GAP < 5% (Very Tight)**.\n" +
		"*   **ANGLE:** Direct Rear view.",
	"top_down_instep_pair": "**[LAYOUT: PAIR - HIGH ANGLE]**\n" +
		"*   **ANGLE:** 60-Degree Elevation (Looking down).\n" +
		"*   **CRITICAL:** Hide the deep insole/heel cup. Focus on Laces and Vamp.\n" +
		"*   **ARRANGEMENT:** **GAP < 5% (Very Tight)**.",
	"left_diagonal_pair": "**[LAYOUT: PAIR - DIAGONAL VIEW]**\n" +
		"*   **QUANTITY:** 2 SHOES.\n" +
		"*   **ANGLE:** Both angled 45 degrees left.\n" +
		"*   **ARRANGEMENT:** One slightly forward. **GAP < 5% (Very Tight)**.",
}

// PoseLayout - poseID에 정확히 일치하는 레이아웃, 없으면 DefaultLayout
func PoseLayout(poseID string) string {
	if layout, ok := poseLayouts[poseID]; ok {
		return layout
	}
	return DefaultLayout
}

// 스튜디오 효과별 씬 블록
var studioScenes = map[Effect]string{
	EffectStudioMinimalProp: "**SCENE: \"MODERN ARCHITECTURE\"**\n" +
		"*   **Background:** Matte Off-White (#F0F0F0) wall, polished concrete floor.\n" +
		"*   **Prop:** Single geometric concrete cube or cylinder. Shoe leaning against it.\n" +
		"*   **Lighting:** Softbox Window Light (Top-Left). Soft, diffused shadows.\n" +
		"*   **Vibe:** Calm, museum-like, sophisticated.\n",
	EffectStudioNaturalFloor: "**SCENE: \"URBAN SUNLIGHT\"**\n" +
		"*   **Background:** Rough textured pavement or bright concrete.\n" +
		"*   **Lighting:** Hard Sunlight (Direct Sun, 5500K). High contrast.\n" +
		"*   **Shadow:** Cast a \"Gobo\" shadow (Window frame or Plant leaf) across the floor.\n" +
		"*   **Vibe:** Energetic, organic, summer street.\n",
	EffectStudioTextureEmphasis: "**SCENE: \"DARK MODE DETAIL\"**\n" +
		"*   **Background:** Dark Charcoal Grey (#333333) seamless infinity wall.\n" +
		"*   **Lighting:** Low-angle \"Raking Light\". Grazes the surface to pop texture depth (suede/mesh).\n" +
		"*   **Vibe:** Masculine, technical, heavy, premium.\n",
	EffectStudioCinematic: "**SCENE: \"FUTURE RUNWAY\"**\n" +
		"*   **Background:** Glossy wet black floor.\n" +
		"*   **Atmosphere:** Low-lying fog/mist/dry-ice.\n" +
		"*   **Action:** \"Levitation\" illusion (Shoe floating slightly above ground).\n" +
		"*   **Lighting:** Top-down \"God Ray\" spotlight. Rim lighting on edges.\n",
}

// SceneKeyword - 효과의 대표 씬 키워드 (없으면 "")
func SceneKeyword(effect Effect) string {
	switch effect {
	case EffectBeautify:
		return "ANTI-GRAVITY ISOLATION RENDER"
	case EffectStudioMinimalProp:
		return "MODERN ARCHITECTURE"
	case EffectStudioNaturalFloor:
		return "URBAN SUNLIGHT"
	case EffectStudioTextureEmphasis:
		return "DARK MODE DETAIL"
	case EffectStudioCinematic:
		return "FUTURE RUNWAY"
	case EffectCustom:
		return "COMPOSITE BLENDING"
	}
	return ""
}

// ForEffect - 효과 + 포즈로 3D 렌더링 프롬프트 생성
// 알 수 없는 효과는 시스템 역할 + 기본 제품 촬영 문구로 처리
func ForEffect(effect Effect, poseID string) string {
	if effect == EffectBeautify {
		return beautifyPrompt(poseID)
	}

	if scene, ok := studioScenes[effect]; ok {
		return studioBase() + "\n" + scene
	}

	if effect == EffectCustom {
		return systemRole + "\n" +
			"**[TASK: COMPOSITE BLENDING]**\n" +
			"*   **Instruction:** Seamlessly integrate the shoe into the provided custom background.\n" +
			"*   **Match:** Perspective, Light direction, and Shadow casting.\n" +
			"*   **Output:** Photorealistic composite.\n"
	}

	return strings.TrimRight(systemRole, "\n") + " Photorealistic product shot."
}

func beautifyPrompt(poseID string) string {
	var sb strings.Builder
	sb.WriteString(systemRole)
	sb.WriteString("\n**[TASK: ANTI-GRAVITY ISOLATION RENDER]**\n\n")
	sb.WriteString(PoseLayout(poseID))
	sb.WriteString("\n\n")
	sb.WriteString("**[RETOUCHING & LIGHTING ENGINE]**\n")
	sb.WriteString("1.  **LIGHTING RESET:** Delete original lighting. Use **\"Softbox Studio Strobe\"**. Even illumination.\n")
	sb.WriteString("2.  **COLOR GRADING:**\n")
	sb.WriteString("    *   **White Balance:** FORCE NEUTRAL (5500K). Remove ALL yellow/orange indoor tints.\n")
	sb.WriteString("    *   **Blacks:** FORCE \"JET BLACK\" (#050505). Remove brown reflections.\n")
	sb.WriteString("    *   **Whites:** Crisp, clean white. No cream tint.\n")
	sb.WriteString("3.  **BACKGROUND:** PURE WHITE (#FFFFFF). No cast shadows (Floating).\n")
	return sb.String()
}

func studioBase() string {
	return systemRole + "\n" +
		"**[TASK: HIGH-END EDITORIAL CAMPAIGN]**\n" +
		"**FORMAT:** Horizontal Landscape (4:3).\n" +
		"**COMPOSITION:** Product fills 85% width. 5% Padding. Perfectly Centered.\n"
}

// Recolor - 갑피(Upper)만 재색상하는 프롬프트
// useReferenceImage가 true면 참조 이미지의 주요 색상을 추출
func Recolor(hex string, useReferenceImage bool) string {
	colorInstruction := "**Target Color:** HEX " + hex + "."
	if useReferenceImage {
		colorInstruction = "**Target Color:** Extract dominant color from the reference image."
	}

	return "**SYSTEM ROLE:** Expert Digital Retoucher.\n" +
		"**TASK:** Recolor the UPPER material only.\n" +
		"**CONSTRAINT:** Keep OUTSOLE and LOGO 100% UNTOUCHED.\n\n" +
		"**EXECUTION:**\n" +
		"1.  **Masking:** Isolate 'Upper' material.\n" +
		"2.  **Color:** Apply " + colorInstruction + "\n" +
		"3.  **Realism:** Preserve stitching, grain, and highlights.\n" +
		"4.  **Lighting:** Blend naturally with existing light.\n"
}
