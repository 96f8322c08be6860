package sim

import "fmt"

// Role distinguishes which of the Engine's two lattices a flip acts on,
// since the sticky guard applies asymmetrically: it guards the upper
// lattice's UP-flips and the lower lattice's DOWN-flips only.
type Role int

const (
	RoleUpper Role = iota
	RoleLower
)

// Flippable reports whether the move (r, c, d) is admissible on lat. other
// is the sticky counterpart lattice (Lower when lat is Upper, and vice
// versa); it is only consulted when sticky is true and the guarded (role,
// d) combination applies. A boundary failure returns false silently, never
// an error.
func Flippable(lat *Lattice, other *Lattice, role Role, sticky bool, r, c int, d Direction) bool {
	switch d {
	case Up:
		if r <= 0 || c >= lat.Cols-1 {
			return false
		}
		base := lat.Cells[r][c].Type
		upperRight := lat.Cells[r-1][c+1].Type
		if base != A1 && base != C2 {
			return false
		}
		if upperRight != A2 && upperRight != C2 {
			return false
		}
		if sticky && role == RoleUpper {
			if lat.Cells[r][c].Height <= other.Cells[r][c].Height {
				return false
			}
		}
		return true

	case Down:
		if r >= lat.Rows-1 || c <= 0 {
			return false
		}
		base := lat.Cells[r][c].Type
		lowerLeft := lat.Cells[r+1][c-1].Type
		if base != A1 && base != C1 {
			return false
		}
		if lowerLeft != A2 && lowerLeft != C1 {
			return false
		}
		if sticky && role == RoleLower {
			if lat.Cells[r][c].Height >= other.Cells[r][c].Height {
				return false
			}
		}
		return true

	default:
		return false
	}
}

// Ratio computes the Metropolis acceptance ratio for the move (r, c, d) on
// lat: the product of the four post-move weights, divided by rho. Callers
// must only call Ratio on a cell that Flippable has already approved.
func Ratio(lat *Lattice, w Weights, rho float64, r, c int, d Direction) float64 {
	product, err := postMoveProduct(lat, w, r, c, d)
	if err != nil {
		panic(err)
	}
	if rho == 0 {
		return 0
	}
	return product / rho
}

// postMoveProduct computes the product of the four post-move weights
// without mutating lat, shared by Ratio and Flip.
func postMoveProduct(lat *Lattice, w Weights, r, c int, d Direction) (float64, error) {
	switch d {
	case Up:
		basePost, ok1 := relabel(upBaseRelabel, lat.Cells[r][c].Type)
		urPost, ok2 := relabel(upUpperRightRelabel, lat.Cells[r-1][c+1].Type)
		rightPost, ok3 := relabel(upRightRelabel, lat.Cells[r][c+1].Type)
		upPost, ok4 := relabel(upUpRelabel, lat.Cells[r-1][c].Type)
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return 0, &ErrInvariantViolation{Detail: fmt.Sprintf("UP move at (%d,%d): a participating cell's type has no relabelling entry", r, c)}
		}
		return w[basePost] * w[urPost] * w[rightPost] * w[upPost], nil

	case Down:
		basePost, ok1 := relabel(downBaseRelabel, lat.Cells[r][c].Type)
		llPost, ok2 := relabel(downLowerLeftRelabel, lat.Cells[r+1][c-1].Type)
		leftPost, ok3 := relabel(downLeftRelabel, lat.Cells[r][c-1].Type)
		downPost, ok4 := relabel(downDownRelabel, lat.Cells[r+1][c].Type)
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return 0, &ErrInvariantViolation{Detail: fmt.Sprintf("DOWN move at (%d,%d): a participating cell's type has no relabelling entry", r, c)}
		}
		return w[basePost] * w[llPost] * w[leftPost] * w[downPost], nil

	default:
		return 0, &ErrInvariantViolation{Detail: "unknown direction"}
	}
}

// Flip atomically rewrites the four cells participating in move (r, c, d)
// on lat and updates the running height/volume. The caller must have
// already confirmed Flippable(..., r, c, d). Flip either
// commits all four rewrites and the volume delta, or — on an invariant
// violation — mutates nothing and returns an error.
func Flip(lat *Lattice, r, c int, d Direction) error {
	switch d {
	case Up:
		basePost, ok1 := relabel(upBaseRelabel, lat.Cells[r][c].Type)
		urPost, ok2 := relabel(upUpperRightRelabel, lat.Cells[r-1][c+1].Type)
		rightPost, ok3 := relabel(upRightRelabel, lat.Cells[r][c+1].Type)
		upPost, ok4 := relabel(upUpRelabel, lat.Cells[r-1][c].Type)
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return &ErrInvariantViolation{Detail: fmt.Sprintf("UP flip at (%d,%d): a participating cell's type has no relabelling entry", r, c)}
		}

		lat.Cells[r][c].Type = basePost
		lat.Cells[r-1][c+1].Type = urPost
		lat.Cells[r][c+1].Type = rightPost
		lat.Cells[r-1][c].Type = upPost

		lat.Cells[r][c].Height--
		lat.Volume--
		return nil

	case Down:
		basePost, ok1 := relabel(downBaseRelabel, lat.Cells[r][c].Type)
		llPost, ok2 := relabel(downLowerLeftRelabel, lat.Cells[r+1][c-1].Type)
		leftPost, ok3 := relabel(downLeftRelabel, lat.Cells[r][c-1].Type)
		downPost, ok4 := relabel(downDownRelabel, lat.Cells[r+1][c].Type)
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return &ErrInvariantViolation{Detail: fmt.Sprintf("DOWN flip at (%d,%d): a participating cell's type has no relabelling entry", r, c)}
		}

		lat.Cells[r][c].Type = basePost
		lat.Cells[r+1][c-1].Type = llPost
		lat.Cells[r][c-1].Type = leftPost
		lat.Cells[r+1][c].Type = downPost

		lat.Cells[r+1][c-1].Height++
		lat.Volume++
		return nil

	default:
		return &ErrInvariantViolation{Detail: "unknown direction"}
	}
}
