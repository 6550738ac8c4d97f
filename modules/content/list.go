package content

import (
	"encoding/json"
	"fmt"
)

// List - 프리뷰/내보내기 순서를 결정하는 아이템 목록
// 모든 연산은 동기적이며 중간 상태가 노출되지 않음
type List struct {
	items []Item
}

// NewList - 기존 아이템으로 목록 생성. 중복 id는 에러
func NewList(items ...Item) (*List, error) {
	l := &List{}
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if !it.Kind.Valid() {
			return nil, fmt.Errorf("item %q: %w", it.ID, ErrInvalidKind)
		}
		if it.ID == "" {
			it.ID = newID()
		}
		if seen[it.ID] {
			return nil, fmt.Errorf("duplicate item id %q", it.ID)
		}
		seen[it.ID] = true
		l.items = append(l.items, it)
	}
	return l, nil
}

// Len - 아이템 수
func (l *List) Len() int {
	return len(l.items)
}

// Items - 현재 순서의 복사본
func (l *List) Items() []Item {
	out := make([]Item, len(l.items))
	copy(out, l.items)
	return out
}

// Index - id의 위치, 없으면 -1
func (l *List) Index(id string) int {
	for i, it := range l.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Get - id로 아이템 조회
func (l *List) Get(id string) (Item, bool) {
	if i := l.Index(id); i >= 0 {
		return l.items[i], true
	}
	return Item{}, false
}

// prepare - 종류 검증 후 비어있거나 충돌하는 id에 새 id 부여
func (l *List) prepare(item Item) (Item, error) {
	if !item.Kind.Valid() {
		return Item{}, ErrInvalidKind
	}
	if item.ID == "" || l.Index(item.ID) >= 0 {
		item.ID = newID()
	}
	return item, nil
}

// Append - 끝에 추가
func (l *List) Append(item Item) (Item, error) {
	item, err := l.prepare(item)
	if err != nil {
		return Item{}, err
	}
	l.items = append(l.items, item)
	return item, nil
}

// InsertAfter - sourceID 바로 뒤에 삽입. sourceID가 없으면 끝에 추가
func (l *List) InsertAfter(sourceID string, item Item) (Item, error) {
	item, err := l.prepare(item)
	if err != nil {
		return Item{}, err
	}
	i := l.Index(sourceID)
	if i < 0 {
		l.items = append(l.items, item)
		return item, nil
	}
	l.items = append(l.items, Item{})
	copy(l.items[i+2:], l.items[i+1:])
	l.items[i+1] = item
	return item, nil
}

// Duplicate - 같은 payload의 복제본을 원본 바로 뒤에 삽입 (제목에 " (Copy)")
func (l *List) Duplicate(id string) (Item, bool) {
	src, ok := l.Get(id)
	if !ok {
		return Item{}, false
	}
	clone := src
	clone.ID = ""
	if clone.Title != "" {
		clone.Title += " (Copy)"
	}
	dup, err := l.InsertAfter(id, clone)
	if err != nil {
		return Item{}, false
	}
	return dup, true
}

// Remove - id 삭제, 없으면 false
func (l *List) Remove(id string) bool {
	i := l.Index(id)
	if i < 0 {
		return false
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return true
}

// Move - splice 방식 재정렬. 범위를 벗어나면 변경 없이 false
func (l *List) Move(from, to int) bool {
	n := len(l.items)
	if from < 0 || from >= n || to < 0 || to >= n {
		return false
	}
	if from == to {
		return true
	}
	moved := l.items[from]
	if from < to {
		copy(l.items[from:to], l.items[from+1:to+1])
	} else {
		copy(l.items[to+1:from+1], l.items[to:from])
	}
	l.items[to] = moved
	return true
}

// ToggleSelection - selected 반전 (다른 아이템에는 영향 없음)
func (l *List) ToggleSelection(id string) bool {
	i := l.Index(id)
	if i < 0 {
		return false
	}
	l.items[i].Selected = !l.items[i].Selected
	return true
}

// SelectedIDs - 선택된 아이템 id (목록 순서)
func (l *List) SelectedIDs() []string {
	ids := []string{}
	for _, it := range l.items {
		if it.Selected {
			ids = append(ids, it.ID)
		}
	}
	return ids
}

// SetTypography - section에만 적용, image는 무시
func (l *List) SetTypography(id string, patch TypographyPatch) bool {
	i := l.Index(id)
	if i < 0 || l.items[i].Kind != KindSection {
		return false
	}
	t := &l.items[i].Typography
	if patch.FontSize != nil {
		t.FontSize = *patch.FontSize
	}
	if patch.FontFamily != nil {
		t.FontFamily = *patch.FontFamily
	}
	if patch.TextAlign != nil {
		t.TextAlign = *patch.TextAlign
	}
	return true
}

// UpdatePayload - 내용 교체 (종류는 유지)
func (l *List) UpdatePayload(id, payload string) bool {
	i := l.Index(id)
	if i < 0 {
		return false
	}
	l.items[i].Payload = payload
	return true
}

// Clear - 전체 삭제
func (l *List) Clear() {
	l.items = nil
}

// MarshalJSON - 아이템 배열로 직렬화
func (l *List) MarshalJSON() ([]byte, error) {
	if l.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.items)
}

// UnmarshalJSON - 배열에서 복원 (id 중복/종류 검증)
func (l *List) UnmarshalJSON(data []byte) error {
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	restored, err := NewList(items...)
	if err != nil {
		return err
	}
	l.items = restored.items
	return nil
}
