package engine

// PointTable maps a finish position to championship points.
type PointTable map[int]int

// DefaultPointTable is used when no ranking system supplies a custom table.
var DefaultPointTable = PointTable{
	1: 20,
	2: 12,
	3: 8,
	4: 6,
	5: 4,
	6: 3,
	7: 2,
	8: 1,
}

// Points resolves a finish position through the custom table, then the
// default table, then zero.
func Points(custom PointTable, position int) int {
	if custom != nil {
		if p, ok := custom[position]; ok {
			return p
		}
	}
	return DefaultPointTable[position]
}
