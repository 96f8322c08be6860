package sim

import "testing"

func TestRho_UnitWeightsGiveUnitRho(t *testing.T) {
	// Weights (1,1,1,1,1,1) => rho and every ratio = 1, i.e. all admissible
	// flips are accepted.
	w := NewWeights(1, 1, 1, 1, 1, 1)
	if got := w.Rho(); got != 1 {
		t.Fatalf("Rho() = %v, want 1 (max_up=1, max_down=1)", got)
	}
}

func TestRho_UpperBoundsEveryRatio(t *testing.T) {
	// For weights (2,2,1,1,1,1), rho >= 2*1*2*1 = 4, and every product the
	// relabelling tables can produce must not exceed rho.
	w := NewWeights(2, 2, 1, 1, 1, 1)
	rho := w.Rho()
	if rho < 4 {
		t.Fatalf("Rho() = %v, want >= 4", rho)
	}

	maxUp := w.maxUpProduct()
	maxDown := w.maxDownProduct()
	if maxUp > rho || maxDown > rho {
		t.Fatalf("maxUp=%v maxDown=%v must each be <= rho=%v", maxUp, maxDown, rho)
	}
	if rho != maxUp && rho != maxDown {
		t.Fatalf("Rho() = %v, want max(maxUp, maxDown) = max(%v, %v)", rho, maxUp, maxDown)
	}
}

func TestRho_PositiveWeightsGivePositiveRho(t *testing.T) {
	w := NewWeights(0.5, 1.5, 2.0, 0.25, 3.0, 1.0)
	if got := w.Rho(); got <= 0 {
		t.Fatalf("Rho() = %v, want > 0", got)
	}
}

func TestRho_ScalesWithWeights(t *testing.T) {
	small := NewWeights(1, 1, 1, 1, 1, 1)
	large := NewWeights(2, 2, 2, 2, 2, 2)
	if large.Rho() <= small.Rho() {
		t.Fatalf("scaling weights up must not decrease rho: large=%v small=%v", large.Rho(), small.Rho())
	}
}
