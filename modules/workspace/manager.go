package workspace

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// ErrSessionRequired - 세션 ID 없이 호출
var ErrSessionRequired = errors.New("session id is required")

// ChangeFunc - 업데이트 커밋 후 호출되는 리스너
type ChangeFunc func(ws *Workspace)

// Manager - 세션별 워크스페이스 소유자
// 모든 변경은 최신 스냅샷에 대한 함수형 업데이트로 적용되고 세션 단위로 직렬화됨
type Manager struct {
	store Store

	mu    sync.Mutex
	locks map[string]*sessionLock

	listenersMu sync.RWMutex
	listeners   []ChangeFunc
}

// NewManager - 저장소로 매니저 생성
func NewManager(store Store) *Manager {
	return &Manager{
		store: store,
		locks: make(map[string]*sessionLock),
	}
}

// sessionLock - 세션 잠금. refs가 0이 되면 맵에서 제거
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// acquire - 세션 잠금 획득 (대기 중인 호출도 refs에 포함)
func (m *Manager) acquire(id string) *sessionLock {
	m.mu.Lock()
	l, ok := m.locks[id]
	if !ok {
		l = &sessionLock{}
		m.locks[id] = l
	}
	l.refs++
	m.mu.Unlock()

	l.mu.Lock()
	return l
}

func (m *Manager) release(id string, l *sessionLock) {
	l.mu.Unlock()

	m.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(m.locks, id)
	}
	m.mu.Unlock()
}

// OnChange - 변경 리스너 등록
func (m *Manager) OnChange(fn ChangeFunc) {
	m.listenersMu.Lock()
	m.listeners = append(m.listeners, fn)
	m.listenersMu.Unlock()
}

func (m *Manager) notify(ws *Workspace) {
	m.listenersMu.RLock()
	listeners := append([]ChangeFunc(nil), m.listeners...)
	m.listenersMu.RUnlock()

	for _, fn := range listeners {
		fn(ws)
	}
}

func (m *Manager) load(ctx context.Context, id string) (*Workspace, error) {
	ws, ok, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load workspace %s: %w", id, err)
	}
	if !ok {
		return New(id), nil
	}
	return ws, nil
}

// Get - 현재 스냅샷 조회 (없으면 빈 워크스페이스, 저장하지 않음)
func (m *Manager) Get(ctx context.Context, id string) (*Workspace, error) {
	if id == "" {
		return nil, ErrSessionRequired
	}
	return m.load(ctx, id)
}

// Update - 최신 스냅샷에 fn 적용 후 저장. fn이 에러를 반환하면 저장하지 않음
func (m *Manager) Update(ctx context.Context, id string, fn func(ws *Workspace) error) (*Workspace, error) {
	if id == "" {
		return nil, ErrSessionRequired
	}

	l := m.acquire(id)
	ws, err := m.load(ctx, id)
	if err != nil {
		m.release(id, l)
		return nil, err
	}
	if err := fn(ws); err != nil {
		m.release(id, l)
		return nil, err
	}
	ws.UpdatedAt = time.Now()
	if err := m.store.Save(ctx, ws); err != nil {
		m.release(id, l)
		return nil, fmt.Errorf("failed to save workspace %s: %w", id, err)
	}
	m.release(id, l)

	m.notify(ws)
	return ws, nil
}

// Delete - 세션 상태 폐기
func (m *Manager) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrSessionRequired
	}
	l := m.acquire(id)
	defer m.release(id, l)

	if err := m.store.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("🗑️  [Workspace] Session %s discarded", id)
	return nil
}

// StartCleanupRoutine - 메모리 저장소 만료 세션 주기적 정리
func (m *Manager) StartCleanupRoutine(ctx context.Context, interval time.Duration) {
	mem, ok := m.store.(*MemoryStore)
	if !ok {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if cleaned := mem.Sweep(); cleaned > 0 {
					log.Printf("🧹 [Workspace] Cleaned up %d expired sessions (Active: %d)", cleaned, mem.Len())
				}
			}
		}
	}()
	log.Printf("🔄 [Workspace] Started cleanup routine (every %v)", interval)
}
