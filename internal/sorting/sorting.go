// Package sorting provides stable, column-driven ordering for the card
// leaderboard and the market movers table.
package sorting

import "sort"

// Direction is a sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// Column describes one sortable column: a key extractor plus its default
// direction ("best first" for numeric columns, A-Z for names).
type Column[T any] struct {
	Name       string
	Default    Direction
	NumericKey func(T) float64
	TextKey    func(T) string
}

// Numeric builds a descending-by-default numeric column.
func Numeric[T any](name string, key func(T) float64) Column[T] {
	return Column[T]{Name: name, Default: Descending, NumericKey: key}
}

// Text builds an ascending-by-default text column.
func Text[T any](name string, key func(T) string) Column[T] {
	return Column[T]{Name: name, Default: Ascending, TextKey: key}
}

// Sorter tracks the active column and direction, mirroring the toggle
// behaviour of a clickable table header.
type Sorter[T any] struct {
	columns   map[string]Column[T]
	active    string
	direction Direction
}

// NewSorter registers the column set. The first column is initially active
// with its default direction.
func NewSorter[T any](columns ...Column[T]) *Sorter[T] {
	s := &Sorter[T]{columns: make(map[string]Column[T], len(columns))}
	for _, col := range columns {
		s.columns[col.Name] = col
	}
	if len(columns) > 0 {
		s.active = columns[0].Name
		s.direction = columns[0].Default
	}
	return s
}

// Toggle selects a column: repeating the active column flips the direction,
// switching resets to the new column's default. Unknown columns are ignored.
func (s *Sorter[T]) Toggle(name string) {
	col, ok := s.columns[name]
	if !ok {
		return
	}
	if s.active == name {
		if s.direction == Ascending {
			s.direction = Descending
		} else {
			s.direction = Ascending
		}
		return
	}
	s.active = name
	s.direction = col.Default
}

// Set selects a column and direction explicitly. Unknown columns are ignored.
func (s *Sorter[T]) Set(name string, dir Direction) {
	if _, ok := s.columns[name]; !ok {
		return
	}
	s.active = name
	s.direction = dir
}

// Active returns the current column name and direction.
func (s *Sorter[T]) Active() (string, Direction) {
	return s.active, s.direction
}

// Sort orders items in place by the active column. The sort is stable: tied
// rows keep their prior relative order, so re-sorting by the same criterion
// never shuffles them.
func (s *Sorter[T]) Sort(items []T) {
	col, ok := s.columns[s.active]
	if !ok {
		return
	}

	asc := s.direction == Ascending
	sort.SliceStable(items, func(i, j int) bool {
		if col.NumericKey != nil {
			a, b := col.NumericKey(items[i]), col.NumericKey(items[j])
			if asc {
				return a < b
			}
			return a > b
		}
		a, b := col.TextKey(items[i]), col.TextKey(items[j])
		if asc {
			return a < b
		}
		return a > b
	})
}
