// drag.go
package cardpress

// --- Drag Controller ---
//
// One controller exists per draggable element (each photo frame, each
// sticker). The host routes its pointer events here together with the
// container rect read at event time; the controller normalizes the
// coordinate and writes it through its position sink. Controllers are
// independent: two elements dragged by two pointers never touch each
// other's state, since each sink only writes its own element's position.

// PointerEvent is one pointer sample in absolute device pixels.
// PointerID distinguishes simultaneous pointers (mouse vs. touches).
type PointerEvent struct {
	PointerID int
	X, Y      float64
}

// DragController is a two-state machine (idle, dragging) for a single
// draggable element.
type DragController struct {
	sink      func(Position)
	dragging  bool
	pointerID int
}

// NewDragController wires a controller to the element's position sink,
// typically a closure over the store such as
// func(p Position) { store.SetSlotPosition(i, p) }.
func NewDragController(sink func(Position)) *DragController {
	return &DragController{sink: sink}
}

// Dragging reports whether a pointer is currently captured.
func (d *DragController) Dragging() bool { return d.dragging }

// PointerDown starts a drag and captures ev's pointer id; subsequent
// moves from other pointers are ignored until release. The position is
// written immediately, so a tap without movement still moves the element
// to the tap point. Returns true when the event was consumed.
func (d *DragController) PointerDown(ev PointerEvent, container Rect) bool {
	if d.dragging {
		return false
	}
	d.dragging = true
	d.pointerID = ev.PointerID
	d.write(ev, container)
	return true
}

// PointerMove updates the element position while dragging. Events from
// pointers other than the captured one are ignored.
func (d *DragController) PointerMove(ev PointerEvent, container Rect) bool {
	if !d.dragging || ev.PointerID != d.pointerID {
		return false
	}
	d.write(ev, container)
	return true
}

// PointerUp releases the captured pointer and returns to idle.
func (d *DragController) PointerUp(ev PointerEvent) bool {
	if !d.dragging || ev.PointerID != d.pointerID {
		return false
	}
	d.dragging = false
	return true
}

// PointerCancel behaves like PointerUp; the position already written
// stays where the last move left it.
func (d *DragController) PointerCancel(ev PointerEvent) bool {
	return d.PointerUp(ev)
}

// write normalizes and forwards one sample. A degenerate container rect
// produces no update at all; the drag stays active.
func (d *DragController) write(ev PointerEvent, container Rect) {
	if p, ok := Normalize(ev.X, ev.Y, container); ok {
		d.sink(p)
	}
}
