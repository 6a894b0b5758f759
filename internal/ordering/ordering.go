// Package ordering computes bulk position assignments after a drag-and-drop
// move among sibling chapters or lessons.
package ordering

import "fmt"

// PositionMap maps an entity id to its new 1-based position. It is submitted
// upstream as a single JSON object so the server never sees a partial
// reordering.
type PositionMap map[int64]int

// Move removes the element at from and reinserts it at to, returning a new
// slice. The input is not modified.
func Move(ids []int64, from, to int) ([]int64, error) {
	if from < 0 || from >= len(ids) {
		return nil, fmt.Errorf("source index %d out of range [0,%d)", from, len(ids))
	}
	if to < 0 || to >= len(ids) {
		return nil, fmt.Errorf("destination index %d out of range [0,%d)", to, len(ids))
	}
	out := make([]int64, 0, len(ids))
	out = append(out, ids[:from]...)
	out = append(out, ids[from+1:]...)
	out = append(out[:to], append([]int64{ids[from]}, out[to:]...)...)
	return out, nil
}

// Compute moves the element at from to to, then assigns position index+1 to
// every sibling. The result always covers the whole list, so positions come
// out contiguous and unique even if the server previously held gaps or
// duplicates.
func Compute(ids []int64, from, to int) (PositionMap, error) {
	moved, err := Move(ids, from, to)
	if err != nil {
		return nil, err
	}
	positions := make(PositionMap, len(moved))
	for i, id := range moved {
		positions[id] = i + 1
	}
	return positions, nil
}
