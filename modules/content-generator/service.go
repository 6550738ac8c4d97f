package contentgenerator

import (
	"context"
	"errors"
	"log"
	"strings"

	"ai-fashion-hub/modules/common/gemini"
	"ai-fashion-hub/modules/workspace"
)

const (
	// WelcomeMessage - 히스토리가 비었을 때 보여주는 첫 모델 메시지 (저장하지 않음)
	WelcomeMessage = "Welcome to AI Studio Vision PRO! This powerful tool helps you create stunning detail pages. " +
		"Click any tool on the left toolbar to get started. What would you like to create today? 🎨"
	// ErrorMessage - 채팅 실패 시 사용자 메시지
	ErrorMessage = "Sorry, I encountered an error. Please try again."

	maxOutputTokens = 1000
	roleUser        = "user"
	roleModel       = "model"
)

var ErrEmptyMessage = errors.New("메시지를 입력해주세요.")

// TextGenerator - 텍스트 생성 (gemini.Client)
type TextGenerator interface {
	GenerateText(ctx context.Context, req gemini.TextRequest) (string, error)
}

type Service struct {
	generator  TextGenerator
	workspaces *workspace.Manager
}

func NewService(generator TextGenerator, workspaces *workspace.Manager) *Service {
	return &Service{
		generator:  generator,
		workspaces: workspaces,
	}
}

// Chat - 세션 히스토리와 함께 메시지 전송. 성공하면 user/model 턴을 히스토리에 추가
func (s *Service) Chat(ctx context.Context, sessionID, message string) (string, []gemini.ChatTurn, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", nil, ErrEmptyMessage
	}

	ws, err := s.workspaces.Get(ctx, sessionID)
	if err != nil {
		return "", nil, err
	}

	log.Printf("💬 [ContentGenerator] Chat message (session %s, history %d turns)", sessionID, len(ws.Chat))
	reply, err := s.generator.GenerateText(ctx, gemini.TextRequest{
		Prompt:          message,
		History:         ws.Chat,
		MaxOutputTokens: maxOutputTokens,
	})
	if err != nil {
		return "", nil, err
	}

	updated, err := s.workspaces.Update(ctx, sessionID, func(ws *workspace.Workspace) error {
		ws.Chat = append(ws.Chat,
			gemini.ChatTurn{Role: roleUser, Text: message},
			gemini.ChatTurn{Role: roleModel, Text: reply},
		)
		return nil
	})
	if err != nil {
		return "", nil, err
	}
	return reply, withWelcome(updated.Chat), nil
}

// History - 화면에 보여줄 히스토리 (환영 메시지 포함)
func (s *Service) History(ctx context.Context, sessionID string) ([]gemini.ChatTurn, error) {
	ws, err := s.workspaces.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return withWelcome(ws.Chat), nil
}

// Clear - 채팅 히스토리 초기화
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	_, err := s.workspaces.Update(ctx, sessionID, func(ws *workspace.Workspace) error {
		ws.Chat = nil
		return nil
	})
	return err
}

func withWelcome(turns []gemini.ChatTurn) []gemini.ChatTurn {
	out := make([]gemini.ChatTurn, 0, len(turns)+1)
	out = append(out, gemini.ChatTurn{Role: roleModel, Text: WelcomeMessage})
	return append(out, turns...)
}
