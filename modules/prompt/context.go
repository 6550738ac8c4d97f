package prompt

// Context - 프롬프트 선택 입력 (호출마다 새로 생성)
type Context struct {
	Effect Effect `json:"effect"`
	PoseID string `json:"poseId,omitempty"`

	// 얼굴 배치 생성용
	Gender Gender `json:"gender,omitempty"`
	Race   string `json:"race,omitempty"`
	Age    string `json:"age,omitempty"`
	Slot   int    `json:"slot,omitempty"`
}

// ForContext - 성별이 있으면 얼굴 변형, 아니면 효과 프롬프트
func ForContext(ctx Context) string {
	if ctx.Gender != "" {
		return FaceVariation(ctx.Gender, ctx.Race, ctx.Age, ctx.Slot)
	}
	return ForEffect(ctx.Effect, ctx.PoseID)
}
