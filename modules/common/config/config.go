package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// 스토리지 백엔드
const (
	StorageNone     = "none"
	StorageSupabase = "supabase"
	StorageGCS      = "gcs"
)

// ErrAPIKeyNotFound - Gemini API 키가 없을 때 (네트워크 호출 전에 실패)
var ErrAPIKeyNotFound = errors.New("API key not found")

// Config 구조체 - 모든 환경변수를 담음
type Config struct {
	// Gemini API
	GeminiAPIKeys    []string
	GeminiImageModel string
	GeminiTextModel  string

	// Vertex AI (프로젝트가 있으면 API 키 대신 사용)
	VertexProject  string
	VertexLocation string

	// Server
	Port         string
	CORSOrigin   string
	MaxBodyBytes int64

	// Redis (REDIS_HOST 비어있으면 메모리 모드)
	RedisHost     string
	RedisPort     string
	RedisUsername string
	RedisPassword string
	RedisUseTLS   bool
	SessionTTL    time.Duration

	// Storage
	StorageBackend     string
	StorageBucket      string
	SupabaseURL        string
	SupabaseServiceKey string
	GCSKeyFile         string
}

var globalConfig *Config

// LoadConfig - 환경변수 로드
func LoadConfig() (*Config, error) {
	// .env 파일 로드 (있으면)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env file not found, using environment variables")
	}

	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}
	globalConfig = cfg

	log.Println("✅ Configuration loaded successfully")
	if cfg.UseVertex() {
		log.Printf("   Gemini: %s / %s (Vertex AI %s/%s)", cfg.GeminiImageModel, cfg.GeminiTextModel, cfg.VertexProject, cfg.VertexLocation)
	} else {
		log.Printf("   Gemini: %s / %s (%d keys)", cfg.GeminiImageModel, cfg.GeminiTextModel, len(cfg.GeminiAPIKeys))
	}
	if cfg.RedisEnabled() {
		log.Printf("   Redis: %s (TLS: %v)", cfg.GetRedisAddr(), cfg.RedisUseTLS)
	} else {
		log.Printf("   Redis: disabled (in-memory sessions)")
	}
	log.Printf("   Storage: %s (bucket: %s)", cfg.StorageBackend, cfg.StorageBucket)

	return globalConfig, nil
}

// FromEnv - 현재 프로세스 환경변수로 Config 생성 (.env 로드 없음)
func FromEnv() (*Config, error) {
	cfg := &Config{
		GeminiAPIKeys:    parseKeys(getEnv("GEMINI_API_KEY", os.Getenv("VITE_GEMINI_API_KEY")), os.Getenv("GEMINI_API_KEYS")),
		GeminiImageModel: getEnv("GEMINI_IMAGE_MODEL", "gemini-3-pro-image-preview"),
		GeminiTextModel:  getEnv("GEMINI_TEXT_MODEL", "gemini-2.5-flash"),

		VertexProject:  getEnv("VERTEXAI_PROJECT", ""),
		VertexLocation: getEnv("VERTEXAI_LOCATION", "global"),

		Port:         getEnv("PORT", "3001"),
		CORSOrigin:   getEnv("CORS_ORIGIN", getEnv("VITE_DEV_SERVER", "http://localhost:5173")),
		MaxBodyBytes: getEnvInt64("MAX_BODY_BYTES", 500<<20),

		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisUsername: getEnv("REDIS_USERNAME", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisUseTLS:   getEnvBool("REDIS_USE_TLS", false),
		SessionTTL:    getEnvDuration("SESSION_TTL", 24*time.Hour),

		StorageBackend:     strings.ToLower(getEnv("STORAGE_BACKEND", StorageNone)),
		StorageBucket:      getEnv("STORAGE_BUCKET", getEnv("GCS_BUCKET_NAME", "coa-lookbook-assets")),
		SupabaseURL:        getEnv("SUPABASE_URL", ""),
		SupabaseServiceKey: getEnv("SUPABASE_SERVICE_KEY", ""),
		GCSKeyFile:         getEnv("GCS_KEY_FILE", ""),
	}

	// 필수 환경변수 검증
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetConfig - 로드된 설정 가져오기
func GetConfig() *Config {
	if globalConfig == nil {
		log.Fatal("❌ Config not loaded. Call LoadConfig() first.")
	}
	return globalConfig
}

// validate - 필수 환경변수 검증
func (c *Config) validate() error {
	if len(c.GeminiAPIKeys) == 0 && !c.UseVertex() {
		return ErrAPIKeyNotFound
	}
	switch c.StorageBackend {
	case StorageNone, StorageGCS:
	case StorageSupabase:
		if c.SupabaseURL == "" {
			return fmt.Errorf("SUPABASE_URL is required for storage backend %q", c.StorageBackend)
		}
		if c.SupabaseServiceKey == "" {
			return fmt.Errorf("SUPABASE_SERVICE_KEY is required for storage backend %q", c.StorageBackend)
		}
	default:
		return fmt.Errorf("invalid STORAGE_BACKEND: %s", c.StorageBackend)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	return nil
}

// UseVertex - Vertex AI 백엔드 사용 여부
func (c *Config) UseVertex() bool {
	return c.VertexProject != ""
}

// RedisEnabled - Redis 사용 여부
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// GetRedisAddr - Redis 연결 문자열 생성
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// parseKeys - 기본 키 + 쉼표로 구분된 추가 키 (중복 제거, 순서 유지)
func parseKeys(primary, extra string) []string {
	keys := []string{}
	seen := map[string]bool{}
	for _, k := range append([]string{primary}, strings.Split(extra, ",")...) {
		k = strings.TrimSpace(k)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	return keys
}

// getEnv - 환경변수 가져오기 (기본값 지원)
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
