/*
Copyright © 2024 the InMAP authors.
This file is part of AeroRemap.

AeroRemap is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

AeroRemap is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with AeroRemap.  If not, see <http://www.gnu.org/licenses/>.
*/

package remap

import (
	"fmt"
	"io"
	"math"

	"github.com/gonum/floats"
)

// weightTolerance is the allowed deviation of a segment's weight sum
// from 1, the conservation contract of a valid remap.
var weightTolerance = 100 * (math.Nextafter(1, 2) - 1)

// Segment holds one target DOF's complete remap contribution: the
// source DOFs that map onto the target and their weights. SourceIdx
// resolves each source DOF to its position within the owning map's
// unique-source-DOF list; it is meaningful only after the owning
// map's SetUniqueSourceDOFs pass.
type Segment struct {
	// DOF is the zero-based global id of the target degree of freedom.
	DOF int

	// dofIdx is the target's position within the owning map's local
	// DOF list, resolved by Map.SetUniqueSourceDOFs.
	dofIdx int

	SourceDOFs []int
	SourceIdx  []int
	Weights    []float64
}

// NewSegment returns a segment for the given zero-based target DOF.
// The source DOF and weight slices are copied.
func NewSegment(dof int, sourceDOFs []int, weights []float64) *Segment {
	s := &Segment{
		DOF:        dof,
		SourceDOFs: make([]int, len(sourceDOFs)),
		SourceIdx:  make([]int, len(sourceDOFs)),
		Weights:    make([]float64, len(weights)),
	}
	copy(s.SourceDOFs, sourceDOFs)
	copy(s.Weights, weights)
	return s
}

// Len returns the segment's declared length: the number of source
// contributions to its target DOF.
func (s *Segment) Len() int {
	return len(s.SourceDOFs)
}

// apply returns the weighted sum of the segment's source
// contributions, indexing sourceData through the resolved source
// indices.
func (s *Segment) apply(sourceData []float64) float64 {
	var sum float64
	for i, idx := range s.SourceIdx {
		sum += sourceData[idx] * s.Weights[i]
	}
	return sum
}

// Check validates that the segment's arrays all have its declared
// length and that its weights sum to 1 within 100 times machine
// epsilon. A failing weight sum is reported, not corrected.
func (s *Segment) Check() error {
	n := s.Len()
	if len(s.Weights) != n {
		return fmt.Errorf("remap segment for DOF %d: weights have length %d, want %d", s.DOF, len(s.Weights), n)
	}
	if len(s.SourceIdx) != n {
		return fmt.Errorf("remap segment for DOF %d: source indices have length %d, want %d", s.DOF, len(s.SourceIdx), n)
	}
	wgt := floats.Sum(s.Weights)
	if math.Abs(wgt-1) >= weightTolerance {
		return fmt.Errorf("remap segment for DOF %d: weights sum to %g, want 1", s.DOF, wgt)
	}
	return nil
}

// print writes the segment's contents in a human-readable form.
func (s *Segment) print(w io.Writer) {
	fmt.Fprintf(w, "segment for DOF %d (local index %d), length %d\n", s.DOF, s.dofIdx, s.Len())
	for i := range s.SourceDOFs {
		fmt.Fprintf(w, "%10d: %10d %10d %e\n", i, s.SourceDOFs[i], s.SourceIdx[i], s.Weights[i])
	}
	fmt.Fprintf(w, "%33s %e\n", "total weight", floats.Sum(s.Weights))
}
