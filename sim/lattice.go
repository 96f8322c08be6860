package sim

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Cell is a single lattice site: a vertex type and its derived height.
// Height is never set directly by a caller — it is produced by the height
// builder (RecomputeHeights) or maintained incrementally by the flip
// kernel (flip.go).
type Cell struct {
	Type   Vertex
	Height int
}

// Lattice is a fixed-size R x C rectangular grid of cells, row-major, rows
// indexed top-to-bottom. Two Lattice values exist per Engine: Upper and
// Lower.
type Lattice struct {
	Rows, Cols int
	Cells      [][]Cell
	Volume     int
}

// NewLattice allocates a Rows x Cols grid of zero-value (all-A1) cells.
// Callers populate it via ParseLattice or by writing cells directly,
// followed by RecomputeHeights.
func NewLattice(rows, cols int) *Lattice {
	if rows <= 0 || cols <= 0 {
		panic("sim: NewLattice requires positive rows and cols")
	}
	cells := make([][]Cell, rows)
	for r := range cells {
		cells[r] = make([]Cell, cols)
	}
	return &Lattice{Rows: rows, Cols: cols, Cells: cells}
}

// ParseLattice reads the first rows*cols bytes of r as ASCII digits
// '0'..'5' in row-major order. Trailing bytes are ignored. A
// byte outside '0'..'5' at a required position yields *ErrMalformedInput
// rather than silently producing an out-of-range Vertex.
func ParseLattice(r io.Reader, rows, cols int) (*Lattice, error) {
	lat := NewLattice(rows, cols)
	br := bufio.NewReader(r)

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			b, err := br.ReadByte()
			if err != nil {
				return nil, fmt.Errorf("sim: reading lattice byte at row %d, col %d: %w", row, col, err)
			}
			if b < '0' || b > '5' {
				return nil, &ErrMalformedInput{Row: row, Col: col, Byte: b}
			}
			lat.Cells[row][col].Type = Vertex(b - '0')
		}
	}

	lat.RecomputeHeights()
	return lat, nil
}

// RecomputeHeights rebuilds every cell's height from its vertex type by
// the left-to-right running count per row, and updates
// Volume to the sum of all heights. It is the height-builder operation,
// used once at initialisation and available as an invariant-check oracle
// after flips that only maintain a single anchor height incrementally.
func (l *Lattice) RecomputeHeights() {
	volume := 0
	for r := 0; r < l.Rows; r++ {
		running := 0
		for c := 0; c < l.Cols; c++ {
			if l.Cells[r][c].Type.contributesHeight() {
				running++
			}
			l.Cells[r][c].Height = running
			volume += running
		}
	}
	l.Volume = volume
}

// Snapshot renders the lattice as the row-major digit string of types,
// the exact inverse of ParseLattice.
func (l *Lattice) Snapshot() string {
	var b strings.Builder
	b.Grow(l.Rows * l.Cols)
	for r := 0; r < l.Rows; r++ {
		for c := 0; c < l.Cols; c++ {
			b.WriteByte('0' + byte(l.Cells[r][c].Type))
		}
	}
	return b.String()
}

// CountByType tallies the number of cells of each vertex type, used by the
// total-weight sink to compute w0^n0 * w1^n1 * ... * w5^n5.
func (l *Lattice) CountByType() [NumVertexTypes]int {
	var counts [NumVertexTypes]int
	for r := 0; r < l.Rows; r++ {
		for c := 0; c < l.Cols; c++ {
			counts[l.Cells[r][c].Type]++
		}
	}
	return counts
}

// CheckInvariants verifies the per-lattice invariants: every
// cell type is in range, and every height matches the running-count
// definition over its row. It does not check the sticky cross-lattice
// invariant (upper >= lower), which is Engine.CheckSticky's job.
func (l *Lattice) CheckInvariants() error {
	for r := 0; r < l.Rows; r++ {
		running := 0
		for c := 0; c < l.Cols; c++ {
			cell := l.Cells[r][c]
			if !cell.Type.Valid() {
				return &ErrInvariantViolation{Detail: fmt.Sprintf("cell (%d,%d) has out-of-range type %d", r, c, cell.Type)}
			}
			if cell.Type.contributesHeight() {
				running++
			}
			if cell.Height != running {
				return &ErrInvariantViolation{Detail: fmt.Sprintf("cell (%d,%d) height %d, want %d", r, c, cell.Height, running)}
			}
		}
	}
	return nil
}

// clone returns a deep copy, used by tests that need to compare before/after
// states without aliasing the mutated lattice.
func (l *Lattice) clone() *Lattice {
	out := NewLattice(l.Rows, l.Cols)
	for r := range l.Cells {
		copy(out.Cells[r], l.Cells[r])
	}
	out.Volume = l.Volume
	return out
}
