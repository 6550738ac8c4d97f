package workspace

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

const keyPrefix = "workspace:"

// Store - 워크스페이스 스냅샷 저장소
type Store interface {
	Load(ctx context.Context, id string) (*Workspace, bool, error)
	Save(ctx context.Context, ws *Workspace) error
	Delete(ctx context.Context, id string) error
}

// KV - Redis 등 TTL 키/값 백엔드
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

func encode(ws *Workspace) ([]byte, error) {
	data, err := json.Marshal(ws)
	if err != nil {
		return nil, fmt.Errorf("failed to encode workspace %s: %w", ws.ID, err)
	}
	return data, nil
}

func decode(data []byte) (*Workspace, error) {
	var ws Workspace
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("failed to decode workspace: %w", err)
	}
	ws.normalize()
	return &ws, nil
}

// KVStore - JSON + TTL로 KV에 저장
type KVStore struct {
	kv  KV
	ttl time.Duration
}

// NewKVStore - KV 백엔드 저장소 생성
func NewKVStore(kv KV, ttl time.Duration) *KVStore {
	return &KVStore{kv: kv, ttl: ttl}
}

func (s *KVStore) Load(ctx context.Context, id string) (*Workspace, bool, error) {
	data, ok, err := s.kv.Get(ctx, keyPrefix+id)
	if err != nil || !ok {
		return nil, false, err
	}
	ws, err := decode(data)
	if err != nil {
		return nil, false, err
	}
	return ws, true, nil
}

func (s *KVStore) Save(ctx context.Context, ws *Workspace) error {
	data, err := encode(ws)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, keyPrefix+ws.ID, data, s.ttl)
}

func (s *KVStore) Delete(ctx context.Context, id string) error {
	return s.kv.Delete(ctx, keyPrefix+id)
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore - 프로세스 메모리 저장소 (Redis 미사용 시)
// 스냅샷을 JSON으로 보관해서 호출자 간 공유 포인터가 생기지 않음
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore - TTL 메모리 저장소 생성
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *MemoryStore) Load(ctx context.Context, id string) (*Workspace, bool, error) {
	s.mu.Lock()
	entry, ok := s.entries[id]
	if ok && s.now().After(entry.expiresAt) {
		delete(s.entries, id)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return nil, false, nil
	}
	ws, err := decode(entry.data)
	if err != nil {
		return nil, false, err
	}
	return ws, true, nil
}

func (s *MemoryStore) Save(ctx context.Context, ws *Workspace) error {
	data, err := encode(ws)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.entries[ws.ID] = memoryEntry{data: data, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}

// Sweep - 만료된 항목 정리, 정리한 수 반환
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	cleaned := 0
	for id, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, id)
			cleaned++
		}
	}
	return cleaned
}

// Len - 보관 중인 세션 수
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
