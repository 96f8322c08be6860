package sinks

import (
	"encoding/json"
	"fmt"
	"os"

	"gonum.org/v1/gonum/stat"

	"github.com/DavidAllison/sixvertex-sim/sim"
)

// ComputeCDensity builds the c-vertex density map: every interior cell
// (i, j), with margin = step/2 excluded on each edge,
// carries the fraction of cells within its (step+1)^2 neighbourhood whose
// type is c1 or c2. Border cells within margin of any edge are left at
// zero, since they have no full neighbourhood to sample.
func ComputeCDensity(lat *sim.Lattice, step int) [][]float64 {
	margin := step / 2
	window := float64((step + 1) * (step + 1))

	density := make([][]float64, lat.Rows)
	for i := range density {
		density[i] = make([]float64, lat.Cols)
	}

	for i := margin; i < lat.Rows-margin; i++ {
		for j := margin; j < lat.Cols-margin; j++ {
			count := 0
			for di := -margin; di <= margin; di++ {
				for dj := -margin; dj <= margin; dj++ {
					if lat.Cells[i+di][j+dj].Type.IsCDensityType() {
						count++
					}
				}
			}
			density[i][j] = float64(count) / window
		}
	}
	return density
}

// cdensityPayload is the on-disk JSON shape of a CDensitySink emission.
type cdensityPayload struct {
	Label     string      `json:"label"`
	FlipCount int64       `json:"flip_count"`
	Step      int         `json:"step"`
	Mean      float64     `json:"mean"`
	StdDev    float64     `json:"stddev"`
	Density   [][]float64 `json:"density"`
}

// CDensitySink writes the c-density map to a fresh JSON file per emission,
// inside dir, alongside summary statistics (mean, standard deviation)
// computed with gonum.org/v1/gonum/stat over the interior cells.
type CDensitySink struct {
	dir  string
	step int
}

// NewCDensitySink returns a CDensitySink with the given neighbourhood
// step (must be even and non-negative), writing into dir.
func NewCDensitySink(dir string, step int) (*CDensitySink, error) {
	if step < 0 || step%2 != 0 {
		return nil, fmt.Errorf("sinks: c-density step must be an even, non-negative integer, got %d", step)
	}
	return &CDensitySink{dir: dir, step: step}, nil
}

// Emit writes the c-density map file and returns its path.
func (s *CDensitySink) Emit(label string, flipCount int64, lat *sim.Lattice) (string, error) {
	density := ComputeCDensity(lat, s.step)

	margin := s.step / 2
	var interior []float64
	for i := margin; i < lat.Rows-margin; i++ {
		interior = append(interior, density[i][margin:lat.Cols-margin]...)
	}

	payload := cdensityPayload{
		Label:     label,
		FlipCount: flipCount,
		Step:      s.step,
		Density:   density,
	}
	if len(interior) > 0 {
		payload.Mean = stat.Mean(interior, nil)
		payload.StdDev = stat.StdDev(interior, nil)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("sinks: marshalling c-density map: %w", err)
	}

	path := fmt.Sprintf("%s/%s-%012d.json", s.dir, label, flipCount)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("sinks: writing c-density map %q: %w", path, err)
	}
	return path, nil
}
