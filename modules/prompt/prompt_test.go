package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForEffect(t *testing.T) {
	t.Run("모든 효과는 비어있지 않고 씬 키워드 포함", func(t *testing.T) {
		for _, effect := range Effects {
			p := ForEffect(effect, "")
			require.NotEmpty(t, p, effect)
			assert.Contains(t, p, "Technical 3D Product Visualization Engine", effect)
			if kw := SceneKeyword(effect); kw != "" {
				assert.Contains(t, p, kw, effect)
			}
		}
	})

	tests := []struct {
		effect  Effect
		keyword string
	}{
		{EffectStudioMinimalProp, "MODERN ARCHITECTURE"},
		{EffectStudioNaturalFloor, "URBAN SUNLIGHT"},
		{EffectStudioTextureEmphasis, "DARK MODE DETAIL"},
		{EffectStudioCinematic, "FUTURE RUNWAY"},
	}
	for _, tt := range tests {
		t.Run(string(tt.effect), func(t *testing.T) {
			p := ForEffect(tt.effect, "")
			assert.Contains(t, p, tt.keyword)
			assert.Contains(t, p, "HIGH-END EDITORIAL CAMPAIGN")
			assert.Contains(t, p, "4:3")
		})
	}

	t.Run("custom", func(t *testing.T) {
		assert.Contains(t, ForEffect(EffectCustom, ""), "COMPOSITE BLENDING")
	})

	t.Run("알 수 없는 효과는 기본 문구", func(t *testing.T) {
		for _, effect := range []Effect{EffectNaturalLight, EffectCinematic, "does-not-exist", ""} {
			p := ForEffect(effect, "rear_pair")
			assert.True(t, strings.HasSuffix(p, "Photorealistic product shot."), effect)
			assert.NotContains(t, p, "REAR VIEW")
		}
	})
}

func TestBeautifyPose(t *testing.T) {
	poses := map[string]string{
		"left_profile_single":  "SINGLE - LEFT PROFILE",
		"left_diagonal_single": "3/4 ISOMETRIC",
		"front_apart_pair":     "PAIR - FRONT VIEW",
		"rear_pair":            "PAIR - REAR VIEW",
		"top_down_instep_pair": "PAIR - HIGH ANGLE",
		"left_diagonal_pair":   "PAIR - DIAGONAL VIEW",
	}
	for poseID, keyword := range poses {
		t.Run(poseID, func(t *testing.T) {
			p := ForEffect(EffectBeautify, poseID)
			assert.Contains(t, p, keyword)
			assert.Contains(t, p, "ANTI-GRAVITY ISOLATION RENDER")
			assert.Contains(t, p, "PURE WHITE (#FFFFFF)")
			assert.NotContains(t, p, DefaultLayout)
		})
	}

	t.Run("알 수 없는 포즈는 기본 레이아웃", func(t *testing.T) {
		for _, poseID := range []string{"", "unknown", "REAR_PAIR"} {
			p := ForEffect(EffectBeautify, poseID)
			assert.Contains(t, p, DefaultLayout)
			assert.Contains(t, p, "ANTI-GRAVITY ISOLATION RENDER")
		}
	})

	t.Run("결정적", func(t *testing.T) {
		assert.Equal(t, ForEffect(EffectBeautify, "rear_pair"), ForEffect(EffectBeautify, "rear_pair"))
	})
}

func TestNormalizeEffect(t *testing.T) {
	assert.Equal(t, EffectBeautify, NormalizeEffect("standard"))
	assert.Equal(t, EffectStudioCinematic, NormalizeEffect("studio_cinematic"))
}

func TestRecolor(t *testing.T) {
	p := Recolor("#FF0000", false)
	assert.Contains(t, p, "HEX #FF0000")
	assert.Contains(t, p, "OUTSOLE and LOGO")

	p = Recolor("", true)
	assert.Contains(t, p, "Extract dominant color from the reference image")
	assert.NotContains(t, p, "HEX")
}

func TestFaceVariation(t *testing.T) {
	t.Run("인종 매핑", func(t *testing.T) {
		assert.Equal(t, "Korean", RaceToEnglish("한국인"))
		assert.Equal(t, "East Asian", RaceToEnglish("아시아인"))
		assert.Equal(t, "Hispanic/Latino", RaceToEnglish("히스패닉"))
		assert.Equal(t, DefaultRace, RaceToEnglish("unknown"))
	})

	t.Run("나이 구간", func(t *testing.T) {
		assert.Contains(t, AgeSkinDetails("abc"), "for their age range")
		assert.Contains(t, AgeSkinDetails("22"), "Youthful")
		assert.Contains(t, AgeSkinDetails("25"), "Youthful")
		assert.Contains(t, AgeSkinDetails("30세"), "Fresh but mature")
		assert.Contains(t, AgeSkinDetails("48"), "Mature Korean skin")
	})

	t.Run("슬롯은 테이블 길이로 순환", func(t *testing.T) {
		assert.Equal(t, SlotStyle(GenderFemale, 0), SlotStyle(GenderFemale, FaceBatchSize))
		assert.NotEqual(t, SlotStyle(GenderFemale, 0).Hair, SlotStyle(GenderFemale, 1).Hair)
		assert.Equal(t, SlotStyle(GenderMale, 4), SlotStyle(GenderMale, -1))
		assert.Equal(t, FaceVariation(GenderMale, "백인", "28", 2), FaceVariation(GenderMale, "백인", "28", 7))
	})

	t.Run("남성 프롬프트", func(t *testing.T) {
		p := FaceVariation(ParseGender("male"), "백인", "28", 0)
		assert.Contains(t, p, "28-year-old White male")
		assert.Contains(t, p, "[GROOMING & STYLING]")
		assert.Contains(t, p, "No lipstick")
		assert.Contains(t, p, "short clean cut Korean men's hairstyle")
	})

	t.Run("여성 프롬프트", func(t *testing.T) {
		p := FaceVariation(ParseGender("anything"), "", "22", 1)
		assert.Contains(t, p, "22-year-old Korean female")
		assert.Contains(t, p, "[MAKEUP]")
		assert.NotContains(t, p, "No lipstick")
		assert.Contains(t, p, "clean warm beige backdrop")
	})
}

func TestForContext(t *testing.T) {
	assert.Equal(t, ForEffect(EffectBeautify, "rear_pair"), ForContext(Context{Effect: EffectBeautify, PoseID: "rear_pair"}))
	assert.Equal(t, FaceVariation(GenderMale, "흑인", "40", 3), ForContext(Context{Gender: GenderMale, Race: "흑인", Age: "40", Slot: 3}))
}

func TestCampaignPrompts(t *testing.T) {
	assert.Contains(t, CampaignSynthesis(), "9-head ratio")
	assert.Contains(t, CampaignSynthesis(), "Kodak Portra 400")
	assert.Contains(t, Refine(), "Film Scanner Restoration")
	assert.Contains(t, StudioModel(), "[Style Reference]")
	assert.Contains(t, StudioModel(), "Do NOT copy the reference face")

	pose, ok := PosePreset("sitting")
	require.True(t, ok)
	assert.Contains(t, PoseVariation(pose.Prompt), pose.Prompt)
	assert.Contains(t, PoseVariation(pose.Prompt), "NEW POSE")

	_, ok = PosePreset("flying")
	assert.False(t, ok)
	assert.Len(t, PosePresets, 10)
}

func TestProductInfo(t *testing.T) {
	p := ProductInfo()
	for _, key := range []string{"lineName", "productName", "careGuide", "estimatedWidth"} {
		assert.Contains(t, p, key)
	}
}
