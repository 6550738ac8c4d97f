package utils

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
)

// SessionHeader - 세션 ID 헤더
const SessionHeader = "X-Session-ID"

// WriteJSON - JSON 응답 작성
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ Failed to encode response: %v", err)
	}
}

// WriteError - {"success": false, "error": msg}
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   msg,
	})
}

// DecodeJSON - 요청 본문 파싱
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("request body is empty")
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// SessionID - 헤더 또는 쿼리(session)에서 세션 ID 추출
func SessionID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(SessionHeader)); id != "" {
		return id
	}
	return strings.TrimSpace(r.URL.Query().Get("session"))
}
