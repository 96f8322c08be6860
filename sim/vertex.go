package sim

import "fmt"

// Vertex is a six-vertex model vertex type, encoded 0..5. Using a defined
// type instead of a bare int eliminates the
// source's magic-integer vertex types and the silent fall-through a
// switch over plain ints invites: every relabelling table below lists the
// pre-move types it accepts, a lookup of any other type is reported rather
// than leaving the cell unchanged, and an unrecognised Vertex value is a
// programming error, not routine input.
type Vertex uint8

const (
	A1 Vertex = iota // 0: straight-through A variant
	A2                // 1: straight-through A variant
	B1                // 2: straight-through B variant
	B2                // 3: straight-through B variant
	C1                // 4: corner, no height contribution
	C2                // 5: corner, carries a height contribution
)

// NumVertexTypes is the size of the vertex alphabet.
const NumVertexTypes = 6

func (v Vertex) String() string {
	switch v {
	case A1:
		return "a1"
	case A2:
		return "a2"
	case B1:
		return "b1"
	case B2:
		return "b2"
	case C1:
		return "c1"
	case C2:
		return "c2"
	default:
		return fmt.Sprintf("Vertex(%d)", uint8(v))
	}
}

// Valid reports whether v is one of the six defined vertex types.
func (v Vertex) Valid() bool {
	return v <= C2
}

// contributesHeight reports whether a cell of this type increments the
// running row height count: {a1, b1, c2} contribute +1.
func (v Vertex) contributesHeight() bool {
	return v == A1 || v == B1 || v == C2
}

// IsCDensityType reports whether v counts toward the c-vertex density
// statistic: the two corner types c1, c2.
func (v Vertex) IsCDensityType() bool {
	return v == C1 || v == C2
}

// Direction selects which of the two local moves a flip attempts.
type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// relabelMap is a partial function: pre-type -> post-type. A type not
// present in the map has no relabelling entry: relabel reports it with
// ok=false, and Flip and Ratio treat that as an invariant violation. The
// flippability predicate in flip.go checks only base and its diagonal
// neighbour, so on an arbitrary digit string the other two cells of an
// admissible move can lack an entry.
type relabelMap map[Vertex]Vertex

// The eight relabelling tables, one per (direction, role). "base" is the
// cell the move is anchored on; the other three are named
// by their position relative to base for direction d.
var (
	upBaseRelabel       = relabelMap{A1: C1, C2: A2}
	upUpperRightRelabel = relabelMap{A2: C1, C2: A1}
	upRightRelabel      = relabelMap{B2: C2, C1: B1}
	upUpRelabel         = relabelMap{B1: C2, C1: B2}

	downBaseRelabel      = relabelMap{C1: A2, A1: C2}
	downLowerLeftRelabel = relabelMap{C1: A1, A2: C2}
	downLeftRelabel      = relabelMap{C2: B1, B2: C1}
	downDownRelabel      = relabelMap{C2: B2, B1: C1}
)

// relabel applies m to v, reporting whether v was present in the table.
func relabel(m relabelMap, v Vertex) (Vertex, bool) {
	post, ok := m[v]
	return post, ok
}
