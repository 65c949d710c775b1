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
	"math"
)

// SetSegmentsFromFile loads this map's remap segments from an
// offline-generated remap file. The file follows the standard sparse
// remap convention:
//
//	n_s - dimension: the number of source→target mappings.
//	col - the source DOF of each mapping.
//	row - the target DOF of each mapping.
//	S   - the weight of each mapping.
//
// (n_a and n_b, the source and target grid sizes, may also be present
// but are not consumed.) Reading is distributed: each rank reads an
// even contiguous chunk of row to discover which mappings exist,
// the per-chunk (target DOF, start, length) groupings are exchanged
// among all ranks, and each rank then reads only the col and S
// entries belonging to its own target DOFs. DOF ids are offset by the
// global minimum target id so that everything is zero-based.
//
// Rows for a given target DOF are assumed to be stored contiguously
// in the file; a file that interleaves target DOFs produces duplicate
// groupings and an incorrect map.
//
// This call is rank-collective: every rank in the map's communicator
// must call it, with its own FileReader for the same file.
func (m *Map) SetSegmentsFromFile(r FileReader) error {
	rank := m.comm.Rank()
	size := m.comm.Size()

	ns, err := r.DimLen("n_s")
	if err != nil {
		return fmt.Errorf("remap: map %s on rank %d: %v", m.Name, rank, err)
	}

	// Distribute responsibility for reading the remap data over all
	// ranks, handing the remainder to the lowest-ranked ones.
	chunk := ns / size
	if rank < ns-chunk*size {
		chunk++
	}
	chunks := m.comm.AllGatherInt(chunk)
	start := 0
	for _, c := range chunks[:rank] {
		start += c
	}
	total := 0
	for _, c := range chunks {
		total += c
	}
	if total != ns {
		return fmt.Errorf("remap: map %s on rank %d: chunk distribution covers %d of %d remap entries", m.Name, rank, total, ns)
	}

	// Read this rank's chunk of the target-DOF ids and group
	// contiguous runs of equal ids into (dof, start, length) triples.
	indices := make([]int, chunk)
	for i := range indices {
		indices[i] = start + i
	}
	rows, err := r.ReadInts("row", indices)
	if err != nil {
		return fmt.Errorf("remap: map %s on rank %d: %v", m.Name, rank, err)
	}
	var chunkDOF, chunkStart, chunkLen []int
	localMin := math.MaxInt
	for i, row := range rows {
		if row < localMin {
			localMin = row
		}
		if n := len(chunkDOF); n > 0 && row == chunkDOF[n-1] {
			chunkLen[n-1]++
		} else {
			chunkDOF = append(chunkDOF, row)
			chunkStart = append(chunkStart, start+i)
			chunkLen = append(chunkLen, 1)
		}
	}

	// Exchange the triples so every rank sees every grouping, and
	// find the global minimum target id.
	globalMin := m.comm.AllReduceMinInt(localMin)
	allDOF := m.comm.AllGatherVInt(chunkDOF)
	allStart := m.comm.AllGatherVInt(chunkStart)
	allLen := m.comm.AllGatherVInt(chunkLen)

	// Scan the global groupings against this rank's own DOF list and
	// record which portions of the file's flat index space it must
	// read.
	var segDOF, segStart, segLen, varDOF []int
	for i := range allDOF {
		for _, d := range m.dofIDs {
			if allDOF[i]-globalMin == d {
				segDOF = append(segDOF, allDOF[i])
				segStart = append(segStart, len(varDOF))
				segLen = append(segLen, allLen[i])
				for j := 0; j < allLen[i]; j++ {
					varDOF = append(varDOF, allStart[i]+j)
				}
			}
		}
	}

	// Read exactly the required source-DOF and weight entries and
	// build one segment per matching grouping.
	cols, err := r.ReadInts("col", varDOF)
	if err != nil {
		return fmt.Errorf("remap: map %s on rank %d: %v", m.Name, rank, err)
	}
	weights, err := r.ReadFloats("S", varDOF)
	if err != nil {
		return fmt.Errorf("remap: map %s on rank %d: %v", m.Name, rank, err)
	}
	for i := range segDOF {
		s, n := segStart[i], segLen[i]
		sourceDOFs := make([]int, n)
		for j := range sourceDOFs {
			sourceDOFs[j] = cols[s+j] - globalMin // offset to zero-based DOFs
		}
		seg := NewSegment(segDOF[i]-globalMin, sourceDOFs, weights[s:s+n])
		if err := m.AddSegment(seg); err != nil {
			return err
		}
	}
	return nil
}
