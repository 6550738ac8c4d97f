package redis

import (
	"context"
	"crypto/tls"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"ai-fashion-hub/modules/common/config"
)

// Connect - Redis 연결 생성. 실패하면 nil
func Connect(cfg *config.Config) *redis.Client {
	if !cfg.RedisEnabled() {
		log.Printf("ℹ️  [Redis] REDIS_HOST not set, skipping connection")
		return nil
	}
	log.Printf("🔌 [Redis] Connecting to %s", cfg.GetRedisAddr())

	var tlsConfig *tls.Config
	if cfg.RedisUseTLS {
		tlsConfig = &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: true, // 매니지드 Redis 자체 서명 인증서
		}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Username:     cfg.RedisUsername,
		Password:     cfg.RedisPassword,
		TLSConfig:    tlsConfig,
		DB:           0,
		DialTimeout:  10 * time.Second,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	// 연결 테스트
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("❌ [Redis] Ping failed: %v", err)
		rdb.Close()
		return nil
	}

	log.Printf("✅ [Redis] Connected")
	return rdb
}
