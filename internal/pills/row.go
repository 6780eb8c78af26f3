package pills

import "github.com/ppiankov/libris/internal/model"

// Row is one rendered pill row. It owns a measured-width cache and the last
// partition, and recomputes only when the pill sequence changes.
//
// A Row is not safe for concurrent use.
type Row struct {
	measurer Measurer
	maxWidth int

	widths   map[string]int
	pills    []model.Pill
	layout   Layout
	computed bool
}

// NewRow creates a row with the given width budget. A non-positive maxWidth
// selects DefaultMaxWidth.
func NewRow(m Measurer, maxWidth int) *Row {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxWidth
	}
	return &Row{
		measurer: m,
		maxWidth: maxWidth,
		widths:   make(map[string]int),
	}
}

// MaxWidth returns the row width budget
func (r *Row) MaxWidth() int {
	return r.maxWidth
}

// Compute returns the layout for pills. Calling it again with an equal
// sequence returns the previous layout without measuring.
func (r *Row) Compute(pills []model.Pill) Layout {
	if r.computed && samePills(r.pills, pills) {
		return r.layout
	}

	r.pills = append([]model.Pill(nil), pills...)
	r.layout = Compute(r.pills, MeasureFunc(r.measure), r.maxWidth)
	r.computed = true
	return r.layout
}

func (r *Row) measure(label string) int {
	if w, ok := r.widths[label]; ok {
		return w
	}
	w := r.measurer.Width(label)
	r.widths[label] = w
	return w
}

func samePills(a, b []model.Pill) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
