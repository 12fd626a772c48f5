package ui

import (
	"image"
	"strconv"

	"starfield/internal/core"
)

// Tunable is what the HUD edits. *field.Engine satisfies it.
type Tunable interface {
	Parameters() core.ParameterSnapshot
	core.ParameterControlsProvider
	core.FloatParameterSetter
}

// Controls holds the HUD's row model: current values, and the button
// rectangles laid out for a panel width. It has no drawing code.
type Controls struct {
	target Tunable
	rows   []controlRow
	width  int
}

type controlRow struct {
	control  core.ParameterControl
	value    string
	number   float64
	hasValue bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 36
	controlsTop    = panelPadding + headerBaseline + 14

	defaultFloatStep = 0.05
)

// NewControls builds rows for every control target exposes and lays them
// out for a panel of the given width.
func NewControls(target Tunable, width int) *Controls {
	c := &Controls{target: target, width: max(width, 0)}
	for _, ctrl := range target.ParameterControls() {
		c.rows = append(c.rows, controlRow{control: ctrl, value: "--"})
	}
	c.layout()
	c.Refresh()
	return c
}

// Len returns the number of rows.
func (c *Controls) Len() int { return len(c.rows) }

// Label returns the label and formatted value of row i.
func (c *Controls) Label(i int) (label, value string, ok bool) {
	r := c.rows[i]
	return r.control.Label, r.value, r.hasValue
}

// Buttons returns the minus and plus rectangles of row i.
func (c *Controls) Buttons(i int) (minus, plus image.Rectangle) {
	return c.rows[i].minusRect, c.rows[i].plusRect
}

// Top returns the top edge of row i.
func (c *Controls) Top(i int) int { return c.rows[i].top }

// Refresh reloads values from the target's snapshot.
func (c *Controls) Refresh() {
	snap := c.target.Parameters()
	for i := range c.rows {
		r := &c.rows[i]
		param, ok := snap.Lookup(r.control.Key)
		if !ok {
			r.hasValue, r.value = false, "--"
			continue
		}
		v, err := strconv.ParseFloat(param.Value, 64)
		if err != nil {
			r.hasValue, r.value = false, "--"
			continue
		}
		r.number = v
		r.value = formatValue(r.control, v)
		r.hasValue = true
	}
}

// Click applies a press at panel coordinates (x, y). It reports whether a
// parameter changed.
func (c *Controls) Click(x, y int) bool {
	pt := image.Pt(x, y)
	for i := range c.rows {
		r := &c.rows[i]
		if !r.hasValue {
			continue
		}
		switch {
		case pt.In(r.minusRect):
			return c.Adjust(i, -1)
		case pt.In(r.plusRect):
			return c.Adjust(i, 1)
		}
	}
	return false
}

// Adjust moves row i one step in direction dir, clamped to its bounds.
func (c *Controls) Adjust(i, dir int) bool {
	r := &c.rows[i]
	target, ok := c.next(r, dir)
	if !ok {
		return false
	}
	if !c.target.SetFloatParameter(r.control.Key, target) {
		return false
	}
	c.Refresh()
	return true
}

// CanAdjust reports whether row i can move in direction dir.
func (c *Controls) CanAdjust(i, dir int) bool {
	_, ok := c.next(&c.rows[i], dir)
	return ok
}

func (c *Controls) next(r *controlRow, dir int) (float64, bool) {
	if dir == 0 || !r.hasValue || r.control.Type != core.ParamTypeFloat {
		return 0, false
	}
	step := r.control.Step
	if step <= 0 {
		step = defaultFloatStep
	}
	target := r.control.Clamp(r.number + float64(dir)*step)
	if target == r.number {
		return 0, false
	}
	return target, true
}

func (c *Controls) layout() {
	if c.width <= 0 {
		return
	}
	for i := range c.rows {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plus := image.Rect(c.width-panelPadding-buttonSize, buttonY, c.width-panelPadding, buttonY+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
		c.rows[i].top = top
		c.rows[i].minusRect = minus
		c.rows[i].plusRect = plus
	}
}

// Height is the panel height needed to show every row.
func (c *Controls) Height() int {
	return controlsTop + len(c.rows)*lineHeight + panelPadding
}

func formatValue(ctrl core.ParameterControl, v float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = defaultFloatStep
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}
