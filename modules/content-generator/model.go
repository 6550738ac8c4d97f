package contentgenerator

import "ai-fashion-hub/modules/common/gemini"

// ChatRequest - POST /api/gemini/chat
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse - 모델 답변과 갱신된 히스토리
type ChatResponse struct {
	Success bool              `json:"success"`
	Reply   string            `json:"reply"`
	History []gemini.ChatTurn `json:"history"`
}
