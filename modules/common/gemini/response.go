package gemini

import (
	"context"
	"errors"
	"log"
	"net/http"

	"ai-fashion-hub/modules/common/config"
	"ai-fashion-hub/modules/common/utils"
)

// FriendlyMessage - "<prefix>: <원인>" 형태의 사용자 메시지
func FriendlyMessage(err error, prefix string) string {
	if err == nil {
		return prefix
	}
	if prefix == "" {
		return err.Error()
	}
	return prefix + ": " + err.Error()
}

// WriteError - 생성 실패를 {"success": false, "error", "errorCode"} 응답으로 변환
func WriteError(w http.ResponseWriter, err error, prefix string) {
	msg := FriendlyMessage(err, prefix)
	log.Printf("❌ %s", msg)

	status := http.StatusInternalServerError
	body := map[string]interface{}{
		"success": false,
		"error":   msg,
	}

	switch {
	case errors.Is(err, config.ErrAPIKeyNotFound):
		status = http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	case errors.Is(err, ErrInvalidJSON):
		status = http.StatusBadGateway
		body["error"] = ErrInvalidJSON.Error()
	}
	if kind, ok := KindOf(err); ok {
		body["errorCode"] = string(kind)
		status = http.StatusBadGateway
	}

	utils.WriteJSON(w, status, body)
}
