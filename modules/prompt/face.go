package prompt

import (
	"fmt"
	"strconv"
	"strings"
)

// FaceBatchSize - 얼굴 배치 생성 시 한 번에 만드는 이미지 수
const FaceBatchSize = 5

// Gender - 얼굴 생성 성별
type Gender string

const (
	GenderFemale Gender = "female"
	GenderMale   Gender = "male"
)

// ParseGender - "male" 외에는 모두 female
func ParseGender(s string) Gender {
	if strings.EqualFold(strings.TrimSpace(s), string(GenderMale)) {
		return GenderMale
	}
	return GenderFemale
}

// DefaultRace - 매핑에 없는 인종 라벨의 기본값
const DefaultRace = "Korean"

var raceMapping = map[string]string{
	"한국인":   "Korean",
	"코리안":   "Korean",
	"동아시아인": "East Asian",
	"아시아인":  "East Asian",
	"백인":    "White",
	"흑인":    "Black",
	"히스패닉":  "Hispanic/Latino",
	"중동인":   "Middle Eastern",
	"혼혈":    "Mixed race",
}

// RaceToEnglish - 한국어 인종 라벨을 영어로 변환
func RaceToEnglish(race string) string {
	if en, ok := raceMapping[strings.TrimSpace(race)]; ok {
		return en
	}
	return DefaultRace
}

// AgeSkinDetails - 나이 구간별 피부 묘사 (숫자가 아니면 일반 묘사)
func AgeSkinDetails(age string) string {
	n, ok := parseLeadingInt(age)
	switch {
	case !ok:
		return "Realistic Korean skin texture for their age range, visible pores, subtle redness, very light imperfections, no beauty filter."
	case n <= 25:
		return "Youthful Korean skin with visible but fine pores, natural glow, slight redness around nose and cheeks, tiny blemishes, no heavy smoothing."
	case n <= 35:
		return "Fresh but mature Korean skin texture with micropores, very faint fine lines, natural tone variation, realistic under-eye texture."
	default:
		return "Mature Korean skin texture with fine lines, slight wrinkles, sunspots, realistic pores and unevenness, still elegant and healthy."
	}
}

// parseLeadingInt - 앞부분의 정수만 파싱 ("28세" → 28)
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

var (
	hairStylesFemale = []string{
		"long straight black hair with soft layers and natural shine",
		"medium length hime cut inspired style, clean but modern",
		"soft wavy hair with see-through bangs, natural volume",
		"low ponytail with loose front pieces framing the face",
		"short chic bob cut with slight C-curl at the ends",
	}
	hairStylesMale = []string{
		"short clean cut Korean men's hairstyle",
		"medium two-block style with textured top",
		"classic Korean side-parted hair",
		"soft messy fringe hairstyle",
		"clean undercut with natural volume",
	}
	studioBackgrounds = []string{
		"solid light grey Korean studio backdrop with soft gradient",
		"clean warm beige backdrop used in beauty editorials",
		"cool pale blue seamless studio background",
		"subtle pastel mint studio wall with very soft texture",
		"solid off-white background with slight falloff in light",
	}
	makeupStylesFemale = []string{
		"Natural Korean makeup with soft peach tones",
		"Fresh dewy look with minimal color",
		"Elegant makeup with defined eyes",
		"Soft pink tones with glossy lips",
		"Clean beauty look with natural brows",
	}
	makeupStylesMale = []string{
		"Natural grooming, clean skin, no makeup",
		"Light BB cream for even tone only",
		"Fresh clean look, natural eyebrows",
		"Minimal grooming, natural appearance",
		"Clean skin with subtle enhancement",
	}
)

const faceTextureKeywords = "hyper-detailed Korean skin texture, visible fine pores, subtle peach fuzz, small imperfections, " +
	"realistic under-eye area, natural nasolabial folds, slight asymmetry, no plastic smooth skin, no filter-like beauty effect"

// FaceSlot - 슬롯 인덱스로 고른 스타일 조합
type FaceSlot struct {
	Hair       string
	Background string
	Makeup     string
}

// pick - index mod len, 음수 인덱스도 안전
func pick(table []string, slot int) string {
	i := slot % len(table)
	if i < 0 {
		i += len(table)
	}
	return table[i]
}

// SlotStyle - 슬롯별 헤어/배경/메이크업 선택 (slot % 테이블 길이)
func SlotStyle(gender Gender, slot int) FaceSlot {
	hair, makeup := hairStylesFemale, makeupStylesFemale
	if gender == GenderMale {
		hair, makeup = hairStylesMale, makeupStylesMale
	}
	return FaceSlot{
		Hair:       pick(hair, slot),
		Background: pick(studioBackgrounds, slot),
		Makeup:     pick(makeup, slot),
	}
}

// FaceVariation - 배치 얼굴 생성의 슬롯별 프롬프트
func FaceVariation(gender Gender, race, age string, slot int) string {
	style := SlotStyle(gender, slot)

	vibe := "realistic K-pop female idol vibe, Seoul street casting, trendy but approachable, natural charm, modern K-beauty mood"
	targetLook := "Beautiful K-Pop Idol / Actress Visual"
	faceDescription := "Small face, symmetrical features, feminine and elegant"
	sectionTitle := "[MAKEUP]"
	avoidExtra := ""
	if gender == GenderMale {
		vibe = "realistic K-pop male idol vibe, Seoul street casting, chic but approachable, calm charisma, modern K-beauty mood"
		targetLook = "Handsome K-Pop Idol / Actor Visual"
		faceDescription = "Sharp jawline, symmetrical features, masculine but clean"
		sectionTitle = "[GROOMING & STYLING]"
		avoidExtra = "No lipstick, no feminine makeup, no heavy eyeshadow.\n"
	}

	var sb strings.Builder
	sb.WriteString("[SUBJECT]\n")
	sb.WriteString(fmt.Sprintf("Ultra-detailed close-up portrait of a %s-year-old %s %s,\n", age, RaceToEnglish(race), gender))
	sb.WriteString("inspired by realistic K-pop idol photography in Seoul.\n")
	sb.WriteString(fmt.Sprintf("Target Look: %s.\n", targetLook))
	sb.WriteString(fmt.Sprintf("Facial Features: %s.\n", faceDescription))
	sb.WriteString("Casting style: street-casting K-pop idol, natural but charismatic.\n\n")

	sb.WriteString("[VIBE]\n" + vibe + "\n\n")

	sb.WriteString("[FACE AND SKIN]\n")
	sb.WriteString(faceTextureKeywords + "\n")
	sb.WriteString(AgeSkinDetails(age) + "\n")
	sb.WriteString("Natural Korean skin tone, slight variation between forehead, cheeks, and nose.\n")
	sb.WriteString("Subtle highlight on nose bridge and cheekbones, natural shadow under jawline.\n")
	sb.WriteString("Under-eye area stays realistic, not overly brightened.\n")
	sb.WriteString("Slight natural asymmetry is allowed and preferred.\n\n")

	sb.WriteString("[HAIR]\n" + style.Hair + "\n\n")
	sb.WriteString(sectionTitle + "\n" + style.Makeup + "\n\n")

	sb.WriteString("[CROP AND FRAMING]\n")
	sb.WriteString("Framed from shoulders and neck up, focus on the face.\n")
	sb.WriteString("No visible clothing logos.\n")
	sb.WriteString("Neutral, non-sexual presentation.\n\n")

	sb.WriteString("[BACKGROUND]\n" + style.Background + "\n")
	sb.WriteString("Simple, clean, and even lighting on the background to make the face stand out.\n")
	sb.WriteString("Easy to cut out for design use.\n\n")

	sb.WriteString("[STYLE]\n")
	sb.WriteString("High-end Korean idol photoshoot for an album concept photo.\n")
	sb.WriteString("Shot on a professional digital camera or high-end film camera.\n")
	sb.WriteString("Direct or semi-direct soft flash to give trendy K-pop look.\n")
	sb.WriteString("Full color only, no black and white, no monochrome.\n")
	sb.WriteString("Minimal retouching, keep skin texture and pores visible.\n\n")

	sb.WriteString("[AVOID]\n")
	sb.WriteString("Do not make the face look like an AI-generated doll.\n")
	sb.WriteString("Do not over-smooth the skin.\n")
	sb.WriteString("No anime style, no illustration, no 3D render.\n")
	sb.WriteString("No uncanny valley eyes, no extreme symmetry, no plastic shine.\n")
	sb.WriteString(avoidExtra)

	return sb.String()
}

// Upscale - 4K 재생성 프롬프트
func Upscale() string {
	return "[TASK: UPSCALE & ENHANCE]\n" +
		"Re-generate this portrait in 4K resolution.\n" +
		"Maintain the exact same face, identity, pose, lighting, and composition.\n" +
		"Significantly improve skin texture, hair details, and eye sharpness.\n" +
		"Make it look like a high-end commercial beauty shot.\n" +
		"Output: High-fidelity 4K photograph.\n"
}

// 얼굴 교체 파트 라벨
const (
	LabelSourceFace  = "SOURCE FACE:"
	LabelTargetImage = "TARGET IMAGE:"
)

// FaceSwap - 라벨 인터리브 입력용 얼굴 교체 프롬프트
func FaceSwap() string {
	return "[TASK: FACE SWAP]\n" +
		"Replace the face of the model in the [TARGET IMAGE] with the face from the [SOURCE FACE].\n" +
		"1.  **Identity:** The face in the output MUST match the [SOURCE FACE] identity.\n" +
		"2.  **Context:** Keep the [TARGET IMAGE] body, pose, hair (if possible/relevant), clothing, and background EXACTLY the same.\n" +
		"3.  **Blending:** Match the skin tone, lighting, and grain of the [TARGET IMAGE] for a seamless photorealistic result.\n" +
		"4.  **Output:** High-fidelity photograph.\n"
}
