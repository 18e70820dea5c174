package spike

import "sort"

// Table is an ordered spike list logically partitioned into per-electrode
// groups. Group order is the insertion order of each tag's first spike, not
// tag order, and can be re-sorted independently of the rows. A spike is
// identified by its row position; rows are never removed.
type Table struct {
	rows   []Spike
	order  []string
	groups map[string][]int
}

// NewTable builds a table from rows, preserving row order.
func NewTable(rows []Spike) *Table {
	t := &Table{groups: make(map[string][]int)}
	for _, s := range rows {
		t.Append(s)
	}
	return t
}

// Append adds one spike as the last row.
func (t *Table) Append(s Spike) {
	i := len(t.rows)
	t.rows = append(t.rows, s)
	if _, ok := t.groups[s.Electrode]; !ok {
		t.order = append(t.order, s.Electrode)
	}
	t.groups[s.Electrode] = append(t.groups[s.Electrode], i)
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// NumGroups returns the number of electrode groups.
func (t *Table) NumGroups() int { return len(t.order) }

// Row returns the spike at row i.
func (t *Table) Row(i int) Spike { return t.rows[i] }

// Rows returns the underlying row slice in row order.
func (t *Table) Rows() []Spike { return t.rows }

// Tags returns the electrode tags in group order.
func (t *Table) Tags() []string { return append([]string(nil), t.order...) }

// GroupRows returns the row indices of one electrode group, in row order.
func (t *Table) GroupRows(tag string) []int { return t.groups[tag] }

// Group returns the spikes of one electrode group. Unknown tags yield nil.
func (t *Table) Group(tag string) []Spike {
	idx := t.groups[tag]
	if idx == nil {
		return nil
	}
	out := make([]Spike, len(idx))
	for i, r := range idx {
		out[i] = t.rows[r]
	}
	return out
}

// GroupAt returns the spikes of the i-th group in the current group order.
func (t *Table) GroupAt(i int) []Spike { return t.Group(t.order[i]) }

// MaxTime returns the latest spike time, or 0 for an empty table.
func (t *Table) MaxTime() float64 {
	m := 0.0
	for _, s := range t.rows {
		if s.Time > m {
			m = s.Time
		}
	}
	return m
}

// SortGroups re-sorts the group order by a caller-supplied key over each
// group's spikes. A nil key sorts by group size. reverse=true gives
// descending order, the usual firing-rate view.
func (t *Table) SortGroups(key func([]Spike) float64, reverse bool) {
	if key == nil {
		key = func(g []Spike) float64 { return float64(len(g)) }
	}
	sort.SliceStable(t.order, func(i, j int) bool {
		a, b := key(t.Group(t.order[i])), key(t.Group(t.order[j]))
		if reverse {
			return a > b
		}
		return a < b
	})
}

// SetConductance sets the artifact flag on row i. Setting a flag that is
// already set is a no-op, so overlapping pair results merge safely.
func (t *Table) SetConductance(i int, v bool) { t.rows[i].Conductance = v }

// ClearConductance resets the artifact flag on every row.
func (t *Table) ClearConductance() {
	for i := range t.rows {
		t.rows[i].Conductance = false
	}
}

// Retag rewrites the electrode tags of the given rows and rebuilds the group
// index. Row order and count are unchanged; group membership is not.
func (t *Table) Retag(tags map[int]string) {
	if len(tags) == 0 {
		return
	}
	for i, tag := range tags {
		t.rows[i].Electrode = tag
	}
	t.reindex()
}

func (t *Table) reindex() {
	t.order = t.order[:0]
	t.groups = make(map[string][]int)
	for i, s := range t.rows {
		if _, ok := t.groups[s.Electrode]; !ok {
			t.order = append(t.order, s.Electrode)
		}
		t.groups[s.Electrode] = append(t.groups[s.Electrode], i)
	}
}
