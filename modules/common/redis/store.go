package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store - 키/값 + 리스트 큐 래퍼
type Store struct {
	rdb *redis.Client
}

// NewStore - 연결된 클라이언트로 Store 생성
func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Get - 값 조회. 키가 없으면 (nil, false, nil)
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis GET %s: %w", key, err)
	}
	return data, true, nil
}

// Set - TTL과 함께 저장
func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis SET %s: %w", key, err)
	}
	return nil
}

// Delete - 키 삭제
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis DEL %s: %w", key, err)
	}
	return nil
}

// Push - 큐 왼쪽에 추가 (LPUSH), 추가 후 길이 반환
func (s *Store) Push(ctx context.Context, queue, value string) (int64, error) {
	n, err := s.rdb.LPush(ctx, queue, value).Result()
	if err != nil {
		return 0, fmt.Errorf("redis LPUSH %s: %w", queue, err)
	}
	return n, nil
}

// Pop - 큐 오른쪽에서 꺼냄 (BRPOP). timeout 0이면 무한 대기
func (s *Store) Pop(ctx context.Context, queue string, timeout time.Duration) (string, error) {
	result, err := s.rdb.BRPop(ctx, timeout, queue).Result()
	if err != nil {
		return "", err
	}
	// result[0]은 큐 이름, result[1]이 값
	return result[1], nil
}
