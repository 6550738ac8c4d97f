package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"ai-fashion-hub/modules/collab"
	"ai-fashion-hub/modules/common/config"
	"ai-fashion-hub/modules/common/database"
	"ai-fashion-hub/modules/common/gemini"
	redisClient "ai-fashion-hub/modules/common/redis"
	"ai-fashion-hub/modules/common/storage"
	"ai-fashion-hub/modules/common/utils"
	contentgenerator "ai-fashion-hub/modules/content-generator"
	detailgenerator "ai-fashion-hub/modules/detail-generator"
	detailstorage "ai-fashion-hub/modules/detail-storage"
	facelibrary "ai-fashion-hub/modules/face-library"
	modelgenerator "ai-fashion-hub/modules/model-generator"
	shoeeditor "ai-fashion-hub/modules/shoe-editor"
	"ai-fashion-hub/modules/workspace"
)

const (
	cleanupInterval = 5 * time.Minute
	jobQueueSize    = 64
)

// CORS 헤더 추가
func enableCORS(origin string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Session-ID")
			w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// limitBody - 요청 본문 크기 제한
func limitBody(max int64) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, max)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// 헬스 체크 엔드포인트
func healthCheck(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// 스토리지 상태 엔드포인트
func statusHandler(backend storage.Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		status, ok := storage.CheckStatus(ctx, backend)
		code := http.StatusOK
		if !ok {
			code = http.StatusInternalServerError
		}
		utils.WriteJSON(w, code, status)
	}
}

func main() {
	// 환경변수 로드
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := gemini.NewClient(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to create Gemini client: %v", err)
	}

	// 세션 저장소 + 작업 큐 (Redis 없으면 메모리)
	var (
		store workspace.Store
		queue modelgenerator.Queue
	)
	if rdb := redisClient.Connect(cfg); rdb != nil {
		defer rdb.Close()
		kv := redisClient.NewStore(rdb)
		store = workspace.NewKVStore(kv, cfg.SessionTTL)
		queue = modelgenerator.NewRedisQueue(kv)
	} else {
		store = workspace.NewMemoryStore(cfg.SessionTTL)
		queue = modelgenerator.NewChannelQueue(jobQueueSize)
	}
	workspaces := workspace.NewManager(store)
	workspaces.StartCleanupRoutine(ctx, cleanupInterval)

	// 협업 허브 - 워크스페이스 변경을 같은 세션 클라이언트에게 전달
	hub := collab.NewHub(cfg.CORSOrigin)
	workspaces.OnChange(hub.WorkspaceListener())
	hub.StartCleanupRoutine(ctx, cleanupInterval)

	// 스토리지 + 얼굴 인덱스
	db := database.NewClient(cfg)
	backend, err := storage.NewBackend(ctx, cfg, db)
	if err != nil {
		log.Printf("⚠️  Storage backend unavailable: %v", err)
		backend = nil
	}
	var faceIndex facelibrary.FaceIndex
	if db != nil {
		faceIndex = db
	}

	modelService := modelgenerator.NewService(client, workspaces)
	go modelService.StartWorker(ctx, queue)

	// 라우터 설정
	r := mux.NewRouter()
	r.Use(enableCORS(cfg.CORSOrigin))
	r.Use(limitBody(cfg.MaxBodyBytes))

	r.HandleFunc("/health", healthCheck).Methods("GET")
	r.HandleFunc("/api/status", statusHandler(backend)).Methods("GET")
	hub.RegisterRoutes(r)

	modelgenerator.NewHandler(modelService, queue).RegisterRoutes(r)
	shoeeditor.NewHandler(shoeeditor.NewService(client, workspaces)).RegisterRoutes(r)
	facelibrary.NewHandler(facelibrary.NewService(client, faceIndex, backend)).RegisterRoutes(r)
	contentgenerator.NewHandler(contentgenerator.NewService(client, workspaces)).RegisterRoutes(r)
	// /api/detail-generator는 /api/detail 접두사보다 먼저 등록
	detailgenerator.NewHandler(detailgenerator.NewService(client, workspaces)).RegisterRoutes(r)
	detailstorage.NewHandler(detailstorage.NewService(client, workspaces, storage.Download)).RegisterRoutes(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.Println("🛑 Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("❌ Graceful shutdown failed: %v", err)
		}
	}()

	log.Printf("🚀 AI Fashion Hub server starting on port %s", cfg.Port)
	log.Printf("📡 WebSocket endpoint: ws://localhost:%s/ws", cfg.Port)
	log.Printf("❤️  Health check: http://localhost:%s/health", cfg.Port)
	log.Printf("📊 Metrics: http://localhost:%s/metrics", cfg.Port)

	// 서버 시작
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server failed to start: %v", err)
	}
}
