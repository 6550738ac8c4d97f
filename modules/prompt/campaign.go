package prompt

import "fmt"

// 캠페인 결과 고정 픽셀 크기 (3:4 근사)
const (
	CampaignWidth       = 830
	CampaignHeight      = 1106
	CampaignAspectRatio = "3:4"
)

// CampaignSynthesis - [Target Shot] + [Face ID] + [Product] 합성 프롬프트
// 파트 순서: 프롬프트, 타깃 샷, 얼굴, 신발들
func CampaignSynthesis() string {
	return "// SYSTEM: Senior VFX Supervisor & High-End Retoucher\n" +
		"// TASK: Create a seamless composite image.\n" +
		"// INPUTS:\n" +
		"// 1. [Target Shot]: Base model/pose/background.\n" +
		"// 2. [Face ID]: Identity to swap.\n" +
		"// 3. [Product]: Shoes to try on.\n\n" +
		"// ===== INSTRUCTIONS =====\n\n" +
		"// 1. FACE SWAP (PRIORITY 1 - RECONSTRUCTION):\n" +
		"//    - IGNORE the original face features.\n" +
		"//    - RECONSTRUCT the face using [Face ID] as the source.\n" +
		"//    - LIGHTING/ANGLE: Adapt [Face ID] to match the [Target Shot]'s environment perfectly.\n" +
		"//    - BLENDING: Seamless skin texture blending at the neck.\n" +
		"//    - PROPORTION: Make head smaller (9-head ratio / 9등신 비율).\n\n" +
		"// 2. SHOES (PRIORITY 2 - PIXEL COPY):\n" +
		"//    - Replace original shoes with [Product].\n" +
		"//    - Use pixel data from [Product]. Do not generate random shoes.\n" +
		"//    - Match perspective and ground shadows.\n\n" +
		"// 3. OUTFIT & MOOD (PRIORITY 3 - PRESERVE):\n" +
		"//    - LOCK original outfit texture.\n" +
		"//    - STYLE: Analog Film (Kodak Portra 400), Grainy, High Fashion.\n\n" +
		"// ===== OUTPUT =====\n" +
		"// Photorealistic, 9-head ratio fashion campaign shot.\n"
}

// PoseVariation - 현재 결과를 새 포즈로 재촬영하는 프롬프트
func PoseVariation(description string) string {
	return "// SYSTEM: Fashion Photographer\n" +
		"// TASK: Re-shoot the model in a NEW POSE.\n" +
		"// INPUTS: Reference Image (current result), Face ID, Product.\n\n" +
		"// ===== NEW POSE =====\n" +
		fmt.Sprintf("// %q\n\n", description) +
		"// ===== RULES =====\n" +
		"// 1. IDENTITY: Keep [Face ID] strictly.\n" +
		"// 2. SHOES: Keep [Product] strictly.\n" +
		"// 3. OUTFIT: Keep the same outfit style.\n" +
		"// 4. ACTION: Change ONLY the pose based on instruction.\n" +
		"// 5. STYLE: 9-head ratio, Analog Film Look.\n"
}

// Refine - 필름 스캐너 복원 스타일 리터칭
func Refine() string {
	return "// SYSTEM: Film Scanner Restoration\n" +
		"// TASK: Enhance texture, add film grain, sharpen details.\n" +
		"// DO NOT CHANGE FACE OR SHOES.\n" +
		"// AESTHETIC: Kodak Portra 400.\n"
}

// StudioModel - 스튜디오 모드: 레퍼런스 분위기로 새 모델을 만들고 제품을 신긴 상세컷
// 파트 순서: 프롬프트, 스타일 레퍼런스, 제품들
func StudioModel() string {
	return "// SYSTEM: Fashion Photographer & Stylist\n" +
		"// TASK: Create a NEW studio model shot for a product detail page.\n" +
		"// INPUTS:\n" +
		"// 1. [Style Reference]: Mood, outfit direction, lighting.\n" +
		"// 2. [Product]: Shoes the model must wear.\n\n" +
		"// ===== RULES =====\n" +
		"// 1. MODEL: Generate a new model. Do NOT copy the reference face.\n" +
		"// 2. SHOES: Use pixel data from [Product]. Keep logo, stitching and color exact.\n" +
		"// 3. STYLING: Follow [Style Reference] outfit and mood.\n" +
		"// 4. FRAMING: Full body, shoes clearly visible, clean studio background.\n" +
		"// 5. STYLE: 9-head ratio, Analog Film Look.\n"
}

// Pose - 포즈 프리셋
type Pose struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Prompt string `json:"prompt"`
}

// PosePresets - 포즈 변형 메뉴
var PosePresets = []Pose{
	{ID: "runway", Label: "런웨이 워킹 (Runway)", Prompt: "Model walking confidently on a fashion runway, full body shot, dynamic movement."},
	{ID: "sitting", Label: "다리 꼬고 앉기 (Sitting)", Prompt: "Model sitting on a chair with legs crossed, elegant pose, looking at camera."},
	{ID: "leaning", Label: "벽에 기대기 (Leaning)", Prompt: "Model leaning casually against a wall, relaxed yet stylish posture."},
	{ID: "low_angle", Label: "로우 앵글 (Low Angle)", Prompt: "Low angle shot looking up at the model, empowering and tall stance."},
	{ID: "back_view", Label: "뒤돌아보기 (Looking Back)", Prompt: "Model standing with back to camera, looking back over shoulder, highlighting shoes."},
	{ID: "front", Label: "정면 클로즈업 (Front Full)", Prompt: "Straight on front view, symmetrical standing pose, arms at sides."},
	{ID: "kneeling", Label: "한쪽 무릎 꿇기 (Kneeling)", Prompt: "Model kneeling on one knee, fashion editorial style pose."},
	{ID: "dynamic", Label: "역동적인 점프 (Dynamic)", Prompt: "Model mid-air or in a dynamic motion pose, hair moving, energetic."},
	{ID: "pockets", Label: "주머니 손 (Hands in Pockets)", Prompt: "Model standing coolly with hands in pockets, casual chic vibe."},
	{ID: "stroll", Label: "자연스러운 걷기 (Stroll)", Prompt: "Model walking naturally on a street, candid style paparazzi shot."},
}

// PosePreset - id로 프리셋 조회
func PosePreset(id string) (Pose, bool) {
	for _, p := range PosePresets {
		if p.ID == id {
			return p, true
		}
	}
	return Pose{}, false
}
