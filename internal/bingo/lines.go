package bingo

// Line is one of the 12 winning patterns: five distinct grid positions that
// must all resolve YES.
type Line struct {
	Name    string
	Indices [5]int
}

// Lines is the fixed winning-pattern table: 5 rows, 5 columns, 2 diagonals.
var Lines = [12]Line{
	{Name: "Row 1", Indices: [5]int{0, 1, 2, 3, 4}},
	{Name: "Row 2", Indices: [5]int{5, 6, 7, 8, 9}},
	{Name: "Row 3", Indices: [5]int{10, 11, 12, 13, 14}},
	{Name: "Row 4", Indices: [5]int{15, 16, 17, 18, 19}},
	{Name: "Row 5", Indices: [5]int{20, 21, 22, 23, 24}},
	{Name: "Col 1", Indices: [5]int{0, 5, 10, 15, 20}},
	{Name: "Col 2", Indices: [5]int{1, 6, 11, 16, 21}},
	{Name: "Col 3", Indices: [5]int{2, 7, 12, 17, 22}},
	{Name: "Col 4", Indices: [5]int{3, 8, 13, 18, 23}},
	{Name: "Col 5", Indices: [5]int{4, 9, 14, 19, 24}},
	{Name: "Diagonal", Indices: [5]int{0, 6, 12, 18, 24}},
	{Name: "Anti-diagonal", Indices: [5]int{4, 8, 12, 16, 20}},
}
