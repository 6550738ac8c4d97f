package vertexai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/auth"
	"cloud.google.com/go/auth/credentials"
	"google.golang.org/genai"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// Credentials - 서비스 계정 자격 증명 탐색
// 1. VERTEXAI_CREDENTIALS_JSON (배포용) 2. VERTEXAI_CREDENTIALS_PATH (로컬) 3. 없으면 nil (ADC)
func Credentials() (*auth.Credentials, error) {
	var credsData []byte
	if credsJSON := os.Getenv("VERTEXAI_CREDENTIALS_JSON"); credsJSON != "" {
		log.Println("✅ [VertexAI] Using VERTEXAI_CREDENTIALS_JSON from environment")
		credsData = []byte(credsJSON)
	} else if credsPath := os.Getenv("VERTEXAI_CREDENTIALS_PATH"); credsPath != "" {
		log.Printf("✅ [VertexAI] Using credentials from file: %s", credsPath)
		data, err := os.ReadFile(credsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
		credsData = data
	} else {
		log.Println("⚠️  [VertexAI] No explicit credentials found, using Application Default Credentials")
		return nil, nil
	}

	// JSON 유효성 검사
	var probe map[string]interface{}
	if err := json.Unmarshal(credsData, &probe); err != nil {
		return nil, fmt.Errorf("invalid JSON credentials: %w", err)
	}
	creds, err := credentials.DetectDefault(&credentials.DetectOptions{
		Scopes:          []string{cloudPlatformScope},
		CredentialsJSON: credsData,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}
	return creds, nil
}

// NewGenerator - Vertex AI 백엔드 genai Models 서비스 (API 키 대신 프로젝트 인증)
func NewGenerator(ctx context.Context, project, location string) (*genai.Models, error) {
	creds, err := Credentials()
	if err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend:     genai.BackendVertexAI,
		Project:     project,
		Location:    location,
		Credentials: creds,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Vertex AI client: %w", err)
	}

	log.Printf("✅ [VertexAI] Client initialized for project=%s, location=%s", project, location)
	return client.Models, nil
}
