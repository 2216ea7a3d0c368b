// coords.go
package cardpress

// --- Coordinate Mapper ---
//
// Pointer events arrive in device pixels; everything the composition
// stores is a percentage of the target container. Keeping the math here
// as pure functions over explicit geometry means no rendering surface is
// needed to test it.

// Rect is a container's bounding box in device pixels, top-left origin.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Normalize converts an absolute pointer coordinate into a clamped
// percentage position relative to r. The second return is false when the
// rect is degenerate (zero width or height); callers must leave the
// element's position unchanged in that case rather than storing NaN.
func Normalize(pointerX, pointerY float64, r Rect) (Position, bool) {
	if r.Width == 0 || r.Height == 0 {
		return Position{}, false
	}
	return Position{
		X: clamp((pointerX-r.Left)/r.Width*100, 0, 100),
		Y: clamp((pointerY-r.Top)/r.Height*100, 0, 100),
	}, true
}

// Denormalize is the inverse mapping: a percentage position back to
// absolute device pixels within r.
func Denormalize(p Position, r Rect) (float64, float64) {
	return r.Left + p.X/100*r.Width, r.Top + p.Y/100*r.Height
}
