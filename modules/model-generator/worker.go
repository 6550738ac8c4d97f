package modelgenerator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	redisClient "ai-fashion-hub/modules/common/redis"
)

// QueueName - 캠페인 작업 큐
const QueueName = "campaign:queue"

// Queue - 작업 참조 큐
type Queue interface {
	Push(ctx context.Context, sessionID, jobID string) error
	// Pop - 다음 작업까지 대기. ctx가 끝나면 ctx.Err()
	Pop(ctx context.Context) (sessionID, jobID string, err error)
}

// RedisQueue - Redis 리스트 큐 (LPUSH / BRPOP)
type RedisQueue struct {
	store   *redisClient.Store
	timeout time.Duration
}

// NewRedisQueue - campaign:queue 사용
func NewRedisQueue(store *redisClient.Store) *RedisQueue {
	return &RedisQueue{store: store, timeout: 5 * time.Second}
}

func (q *RedisQueue) Push(ctx context.Context, sessionID, jobID string) error {
	data, err := json.Marshal(jobRef{SessionID: sessionID, JobID: jobID})
	if err != nil {
		return err
	}
	n, err := q.store.Push(ctx, QueueName, string(data))
	if err != nil {
		return err
	}
	log.Printf("✅ [ModelGenerator] Job %s enqueued (position: %d)", jobID, n)
	return nil
}

func (q *RedisQueue) Pop(ctx context.Context) (string, string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", "", err
		}
		value, err := q.store.Pop(ctx, QueueName, q.timeout)
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return "", "", err
		}
		var ref jobRef
		if err := json.Unmarshal([]byte(value), &ref); err != nil {
			log.Printf("⚠️  [ModelGenerator] Skipping malformed queue entry: %s", value)
			continue
		}
		return ref.SessionID, ref.JobID, nil
	}
}

// ChannelQueue - Redis 미사용 시 프로세스 내 큐
type ChannelQueue struct {
	ch chan jobRef
}

// NewChannelQueue - 버퍼 크기 size
func NewChannelQueue(size int) *ChannelQueue {
	return &ChannelQueue{ch: make(chan jobRef, size)}
}

func (q *ChannelQueue) Push(ctx context.Context, sessionID, jobID string) error {
	select {
	case q.ch <- jobRef{SessionID: sessionID, JobID: jobID}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return fmt.Errorf("campaign queue is full")
	}
}

func (q *ChannelQueue) Pop(ctx context.Context) (string, string, error) {
	select {
	case ref := <-q.ch:
		return ref.SessionID, ref.JobID, nil
	case <-ctx.Done():
		return "", "", ctx.Err()
	}
}

// StartWorker - 큐를 감시하며 작업마다 goroutine으로 처리. ctx가 끝나면 종료
func (s *Service) StartWorker(ctx context.Context, q Queue) {
	log.Printf("👀 [ModelGenerator] Watching queue: %s", QueueName)

	for {
		sessionID, jobID, err := q.Pop(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Printf("🛑 [ModelGenerator] Worker stopped")
				return
			}
			log.Printf("❌ [ModelGenerator] Queue pop error: %v", err)
			select {
			case <-time.After(5 * time.Second):
			case <-ctx.Done():
				return
			}
			continue
		}

		log.Printf("🎯 [ModelGenerator] Received job: %s (session %s)", jobID, sessionID)
		go func() {
			if err := s.ProcessJob(ctx, sessionID, jobID); err != nil {
				log.Printf("❌ [ModelGenerator] Job %s failed: %v", jobID, err)
			}
		}()
	}
}
