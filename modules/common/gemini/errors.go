package gemini

import (
	"errors"
	"fmt"
)

// ErrorKind - 원격 생성 실패 분류
type ErrorKind string

const (
	KindGenerationBlocked ErrorKind = "GENERATION_BLOCKED"
	KindNoImageReturned   ErrorKind = "NO_IMAGE_RETURNED"
	KindNetwork           ErrorKind = "NETWORK_ERROR"
)

// errors.Is 비교용 sentinel
var (
	ErrGenerationBlocked = errors.New("generation blocked")
	ErrNoImageReturned   = errors.New("no image returned")
	ErrNetwork           = errors.New("network error")
)

// ErrInvalidJSON - JSON 응답 파싱 실패 (GenerateJSON)
var ErrInvalidJSON = errors.New("AI 응답을 분석할 수 없습니다.")

// GenerationError - 호출자에게 전달되는 생성 실패. Message()는 사용자에게 보여줄 문자열
type GenerationError struct {
	Kind   ErrorKind
	Detail string
	Err    error
}

func (e *GenerationError) Error() string {
	switch e.Kind {
	case KindGenerationBlocked:
		return fmt.Sprintf("generation blocked (reason: %s)", e.Detail)
	case KindNoImageReturned:
		if e.Detail != "" {
			return "no image returned: " + e.Detail
		}
		return "no image returned"
	default:
		if e.Err != nil {
			return fmt.Sprintf("network error: %v", e.Err)
		}
		return "network error: " + e.Detail
	}
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Is - Kind 기준으로 sentinel과 매칭
func (e *GenerationError) Is(target error) bool {
	switch target {
	case ErrGenerationBlocked:
		return e.Kind == KindGenerationBlocked
	case ErrNoImageReturned:
		return e.Kind == KindNoImageReturned
	case ErrNetwork:
		return e.Kind == KindNetwork
	}
	return false
}

func blocked(reason string) error {
	return &GenerationError{Kind: KindGenerationBlocked, Detail: reason}
}

func noImage(detail string) error {
	return &GenerationError{Kind: KindNoImageReturned, Detail: detail}
}

func network(err error) error {
	return &GenerationError{Kind: KindNetwork, Err: err}
}

// KindOf - 에러가 GenerationError면 Kind 반환
func KindOf(err error) (ErrorKind, bool) {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.Kind, true
	}
	return "", false
}
