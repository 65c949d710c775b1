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
	"runtime"
	"sort"
	"sync"
)

// Map redistributes gridded scalar data across a domain decomposition
// using weighted source-to-target mappings, usually loaded from an
// offline-generated remap file. A Map owns the zero-based global ids
// of the target DOFs resident on its rank, one Segment per
// locally-owned target DOF, and a derived deduplicated list of the
// source DOFs those segments reference.
//
// The segment list may only be mutated (AddSegment,
// SetSegmentsFromFile) during single-threaded setup. Apply reads the
// segment topology without modifying it, so concurrent Apply calls
// with different data buffers are safe.
type Map struct {
	// Name identifies the map in error messages.
	Name string

	comm Comm

	dofIDs     []int // zero-based global ids of locally-owned target DOFs
	segments   []*Segment
	uniqueDOFs []int // sorted, deduplicated source DOFs used by this rank

	// Global extrema of the source DOFs seen by
	// SetUniqueSourceDOFs, for diagnostics.
	minSourceDOF, maxSourceDOF int

	dofsSet   bool
	uniqueSet bool
}

// NewMap returns an empty map using the given communicator.
func NewMap(comm Comm, name string) *Map {
	return &Map{Name: name, comm: comm}
}

// NewMapWithDOFs returns a map with its local DOF ids set; see
// SetDOFIDs for the meaning of the arguments.
func NewMapWithDOFs(comm Comm, name string, dofs []int, minDOF int) *Map {
	m := NewMap(comm, name)
	m.SetDOFIDs(dofs, minDOF)
	return m
}

// SetDOFIDs stores the global ids of the target DOFs owned by this
// rank, offset by minDOF so that ids become globally zero-based
// (remap files may be 1-based or 0-based depending on the tool that
// made them). It must be called exactly once per map, before use;
// calling it with no DOFs is a fatal precondition violation.
func (m *Map) SetDOFIDs(dofs []int, minDOF int) {
	if len(dofs) == 0 {
		panic("remap: map " + m.Name + ": SetDOFIDs called with no DOFs")
	}
	m.dofIDs = make([]int, len(dofs))
	for i, d := range dofs {
		m.dofIDs[i] = d - minDOF
	}
	m.dofsSet = true
}

// NumDOFs returns the number of target DOFs owned by this rank.
func (m *Map) NumDOFs() int { return len(m.dofIDs) }

// NumSegments returns the number of remap segments held by this rank.
func (m *Map) NumSegments() int { return len(m.segments) }

// UniqueSourceDOFs returns the sorted, deduplicated list of source
// DOFs referenced by this rank's segments, or nil before
// SetUniqueSourceDOFs has run. The source data buffer passed to Apply
// must be ordered to match it.
func (m *Map) UniqueSourceDOFs() []int { return m.uniqueDOFs }

// AddSegment adds a remap segment to the map. Each segment represents
// a target DOF's full remapping, so if a segment for the same target
// DOF already exists the two are combined, with the existing
// segment's entries first; otherwise the segment is appended. If the
// unique-source-DOF list had already been computed it is recomputed
// to account for the new entries.
//
// The linear scan over existing segments is fine at setup-time scale;
// per-rank segment counts are small relative to the global DOF count.
func (m *Map) AddSegment(seg *Segment) error {
	match := -1
	for i, s := range m.segments {
		if s.DOF == seg.DOF {
			match = i
			break
		}
	}
	if match < 0 {
		m.segments = append(m.segments, seg)
	} else {
		old := m.segments[match]
		combined := &Segment{
			DOF:        seg.DOF,
			SourceDOFs: append(append([]int{}, old.SourceDOFs...), seg.SourceDOFs...),
			SourceIdx:  append(append([]int{}, old.SourceIdx...), seg.SourceIdx...),
			Weights:    append(append([]float64{}, old.Weights...), seg.Weights...),
		}
		m.segments[match] = combined
	}
	if m.uniqueSet {
		return m.SetUniqueSourceDOFs()
	}
	return nil
}

// SetUniqueSourceDOFs computes the distinct, ascending set of source
// DOFs referenced by any local segment, then resolves each segment's
// target DOF to its position in the local DOF list and each of its
// source DOFs to a position in the unique list. A segment whose
// target is not locally owned is an error naming the DOF.
//
// The linear-search construction is acceptable here because it runs
// at setup time, never in the per-step remap path.
func (m *Map) SetUniqueSourceDOFs() error {
	seen := make(map[int]bool)
	var unique []int
	for _, seg := range m.segments {
		for _, d := range seg.SourceDOFs {
			if !seen[d] {
				seen[d] = true
				unique = append(unique, d)
				if len(unique) == 1 || d < m.minSourceDOF {
					m.minSourceDOF = d
				}
				if len(unique) == 1 || d > m.maxSourceDOF {
					m.maxSourceDOF = d
				}
			}
		}
	}
	sort.Ints(unique)
	m.uniqueDOFs = unique
	m.uniqueSet = true

	pos := make(map[int]int, len(unique))
	for i, d := range unique {
		pos[d] = i
	}
	for _, seg := range m.segments {
		found := false
		for i, d := range m.dofIDs {
			if d == seg.DOF {
				seg.dofIdx = i
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("remap: map %s: segment target DOF %d is not owned by this rank", m.Name, seg.DOF)
		}
		for i, d := range seg.SourceDOFs {
			seg.SourceIdx[i] = pos[d]
		}
	}
	return nil
}

// Apply computes the remapped value of every locally-owned target
// DOF: for each segment, the weighted sum of its source entries,
// taken from sourceData (ordered to match UniqueSourceDOFs) and
// written into targetData at the segment's position in the local DOF
// list. If this rank owns no DOFs the target buffer is left
// untouched.
//
// This is the hot path: it performs no I/O and no communication; all
// needed source data must already be locally resident. Segments write
// disjoint target entries, so they are reduced in parallel.
func (m *Map) Apply(sourceData, targetData []float64) {
	if len(m.dofIDs) == 0 {
		return
	}
	nprocs := runtime.GOMAXPROCS(0)
	var wg sync.WaitGroup
	wg.Add(nprocs)
	for pp := 0; pp < nprocs; pp++ {
		go func(pp int) {
			for i := pp; i < len(m.segments); i += nprocs {
				seg := m.segments[i]
				targetData[seg.dofIdx] = seg.apply(sourceData)
			}
			wg.Done()
		}(pp)
	}
	wg.Wait()
}

// Check validates that the map's DOFs have been set and that every
// segment passes its own consistency and weight-conservation checks,
// naming the offending DOF on failure.
func (m *Map) Check() error {
	if !m.dofsSet {
		return fmt.Errorf("remap: map %s on rank %d: global DOFs not yet set; call SetDOFIDs", m.Name, m.comm.Rank())
	}
	for _, seg := range m.segments {
		if err := seg.Check(); err != nil {
			return fmt.Errorf("remap: map %s on rank %d: %v", m.Name, m.comm.Rank(), err)
		}
	}
	return nil
}

// Print writes the map's segments, unique source DOFs, and local DOF
// ids to w in a human-readable form, for debugging.
func (m *Map) Print(w io.Writer) {
	fmt.Fprintf(w, "map %s on rank %d: %d DOFs, %d segments\n", m.Name, m.comm.Rank(), len(m.dofIDs), len(m.segments))
	for _, seg := range m.segments {
		seg.print(w)
	}
	if m.uniqueSet {
		fmt.Fprintf(w, "unique source DOFs (min %d, max %d):\n", m.minSourceDOF, m.maxSourceDOF)
		for i, d := range m.uniqueDOFs {
			fmt.Fprintf(w, "%10d: %10d\n", i, d)
		}
	} else {
		fmt.Fprintln(w, "unique source DOFs not yet set")
	}
	fmt.Fprintln(w, "local DOF ids:")
	for i, d := range m.dofIDs {
		fmt.Fprintf(w, "%10d: %10d\n", i, d)
	}
}
