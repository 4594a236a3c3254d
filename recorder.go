package meadow

// CommandType identifies the kind of recorded draw command.
type CommandType uint8

const (
	CommandFillRect     CommandType = iota // FillRect
	CommandStrokeRect                      // StrokeRect
	CommandStrokeLine                      // StrokeLine
	CommandFillCircle                      // FillCircle
	CommandStrokeCircle                    // StrokeCircle
)

// DrawCommand is a single draw instruction captured by a Recorder. Points
// are already translated into target coordinates.
type DrawCommand struct {
	Type CommandType
	// Rect is set for rect commands.
	Rect Rect
	// A and B are the line endpoints, or the circle centre in A.
	A, B   Vec2
	Radius float64
	Style  LineStyle
	// Paint is the fill for fill commands; Color is the stroke color.
	Paint Paint
	Color Color
}

// Recorder is a Surface that keeps every command in memory instead of
// drawing it. Tests inspect the commands; debug mode counts them.
type Recorder struct {
	TranslateStack
	Commands []DrawCommand
}

// Reset drops recorded commands and the transform, keeping capacity.
func (r *Recorder) Reset() {
	r.Commands = r.Commands[:0]
	r.ResetTransform()
}

// Count returns how many commands of type t were recorded.
func (r *Recorder) Count(t CommandType) int {
	n := 0
	for i := range r.Commands {
		if r.Commands[i].Type == t {
			n++
		}
	}
	return n
}

// FillRect implements Surface.
func (r *Recorder) FillRect(rect Rect, p Paint) {
	o := r.Offset()
	rect.X += o.X
	rect.Y += o.Y
	r.Commands = append(r.Commands, DrawCommand{Type: CommandFillRect, Rect: rect, Paint: r.Local(p)})
}

// StrokeRect implements Surface.
func (r *Recorder) StrokeRect(rect Rect, width float64, c Color) {
	o := r.Offset()
	rect.X += o.X
	rect.Y += o.Y
	r.Commands = append(r.Commands, DrawCommand{
		Type: CommandStrokeRect, Rect: rect, Style: LineStyle{Width: width}, Color: c,
	})
}

// StrokeLine implements Surface.
func (r *Recorder) StrokeLine(a, b Vec2, style LineStyle, c Color) {
	r.Commands = append(r.Commands, DrawCommand{
		Type: CommandStrokeLine, A: r.Point(a), B: r.Point(b), Style: style, Color: c,
	})
}

// FillCircle implements Surface.
func (r *Recorder) FillCircle(center Vec2, radius float64, p Paint) {
	r.Commands = append(r.Commands, DrawCommand{
		Type: CommandFillCircle, A: r.Point(center), Radius: radius, Paint: r.Local(p),
	})
}

// StrokeCircle implements Surface.
func (r *Recorder) StrokeCircle(center Vec2, radius, width float64, c Color) {
	r.Commands = append(r.Commands, DrawCommand{
		Type: CommandStrokeCircle, A: r.Point(center), Radius: radius,
		Style: LineStyle{Width: width}, Color: c,
	})
}
