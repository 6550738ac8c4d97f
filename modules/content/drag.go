package content

// DragPhase - 드래그 제스처 상태
type DragPhase string

const (
	DragIdle     DragPhase = "idle"
	DragDragging DragPhase = "dragging"
	DragHovering DragPhase = "hovering"
)

// Drag - 드래그 앤 드롭 상태 머신
// idle → dragging(source) → hovering(target)* → drop(이동 반영) | cancel(변경 없음) → idle
type Drag struct {
	Phase  DragPhase `json:"phase"`
	Source int       `json:"source"`
	Target int       `json:"target"`
}

// NewDrag - idle 상태
func NewDrag() Drag {
	return Drag{Phase: DragIdle, Source: -1, Target: -1}
}

func (d *Drag) reset() {
	*d = NewDrag()
}

// Start - source 인덱스에서 드래그 시작
func (d *Drag) Start(source int) {
	d.Phase = DragDragging
	d.Source = source
	d.Target = -1
}

// Over - 다른 아이템 위로 이동. source 자신 위에서는 hover 표시 안 함
func (d *Drag) Over(target int) {
	if d.Phase == DragIdle || target == d.Source {
		return
	}
	d.Phase = DragHovering
	d.Target = target
}

// Leave - hover 해제
func (d *Drag) Leave() {
	if d.Phase != DragHovering {
		return
	}
	d.Phase = DragDragging
	d.Target = -1
}

// Drop - dropIndex로 이동을 반영하고 idle로 복귀. 이동이 일어났으면 true
func (d *Drag) Drop(l *List, dropIndex int) bool {
	defer d.reset()
	if d.Phase == DragIdle || d.Source == dropIndex {
		return false
	}
	return l.Move(d.Source, dropIndex)
}

// Cancel - 이동 없이 idle로 복귀 (drag end)
func (d *Drag) Cancel() {
	d.reset()
}
