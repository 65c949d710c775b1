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

package aeroremap

import (
	"fmt"

	"github.com/ctessum/sparse"
)

// NumScratchFields is the number of undedicated midpoint-resident
// scratch fields carved from the buffer for process-private data.
const NumScratchFields = 10

// numMidFields is the number of midpoint-resident fields held by a
// Buffer: 8 dry-atmosphere fields, interstitial and cloudborne
// number and mass mixing ratios, gases, and scratch.
const numMidFields = 8 + 2*(NumModes+NumAerosolTracers) + NumGases + NumScratchFields

// numIfaceFields is the number of interface-resident fields held by
// a Buffer.
const numIfaceFields = 1

// Buffer holds the working arrays used between the wet host state and
// the dry aerosol state. All of its fields alias disjoint regions of
// a single flat allocation, so kernels writing different fields never
// alias and no locking is needed. Mass-mixing-ratio entries for
// (mode, slot) combinations that are invalid per the species registry
// are left nil.
type Buffer struct {
	// dry atmospheric state
	ZMid     *sparse.DenseArray
	Dz       *sparse.DenseArray
	QvDry    *sparse.DenseArray
	QcDry    *sparse.DenseArray
	NcDry    *sparse.DenseArray
	QiDry    *sparse.DenseArray
	NiDry    *sparse.DenseArray
	WUpdraft *sparse.DenseArray

	// dry aerosol state
	DryIntAeroNMR [NumModes]*sparse.DenseArray
	DryCldAeroNMR [NumModes]*sparse.DenseArray
	DryIntAeroMMR [NumModes][NumSpecies]*sparse.DenseArray
	DryCldAeroMMR [NumModes][NumSpecies]*sparse.DenseArray
	DryGasMMR     [NumGases]*sparse.DenseArray

	// undedicated scratch fields for process-specific data
	Scratch [NumScratchFields]*sparse.DenseArray

	// interface fields
	ZIface *sparse.DenseArray

	// Workspace is the portion of the allocation remaining after all
	// named fields have been carved out.
	Workspace []float64
}

// BufferSize returns the number of float64 values of storage needed
// by a Buffer for the given numbers of columns and vertical levels.
// It is a pure function of its two arguments.
func BufferSize(ncol, nlev int) int {
	return numMidFields*ncol*nlev + numIfaceFields*ncol*(nlev+1)
}

// NewBuffer carves a Buffer's fields out of the flat memory region
// mem, which must hold at least BufferSize(ncol, nlev) values. The
// field views alias mem: the buffer is rebound, not copied, so a new
// call is required whenever the domain size changes. The remaining
// portion of mem is exposed as Workspace.
func NewBuffer(mem []float64, ncol, nlev int) (*Buffer, error) {
	if len(mem) < BufferSize(ncol, nlev) {
		return nil, fmt.Errorf("aeroremap: buffer memory has %d values but %d are required for %d columns × %d levels",
			len(mem), BufferSize(ncol, nlev), ncol, nlev)
	}
	b := new(Buffer)
	offset := 0
	carve := func(nlevs int) *sparse.DenseArray {
		n := ncol * nlevs
		a := &sparse.DenseArray{
			Elements: mem[offset : offset+n : offset+n],
			Shape:    []int{ncol, nlevs},
		}
		a.Fix()
		offset += n
		return a
	}

	for _, f := range []**sparse.DenseArray{
		&b.ZMid, &b.Dz, &b.QvDry, &b.QcDry, &b.NcDry, &b.QiDry, &b.NiDry, &b.WUpdraft,
	} {
		*f = carve(nlev)
	}
	for m := 0; m < NumModes; m++ {
		b.DryIntAeroNMR[m] = carve(nlev)
	}
	for m := 0; m < NumModes; m++ {
		b.DryCldAeroNMR[m] = carve(nlev)
	}
	// Only slots that are valid per the mode→species registry get
	// storage; the rest stay nil.
	for m := Mode(0); m < NumModes; m++ {
		for slot := range SpeciesInMode(m) {
			b.DryIntAeroMMR[m][slot] = carve(nlev)
		}
		for slot := range SpeciesInMode(m) {
			b.DryCldAeroMMR[m][slot] = carve(nlev)
		}
	}
	for g := 0; g < NumGases; g++ {
		b.DryGasMMR[g] = carve(nlev)
	}
	for i := 0; i < NumScratchFields; i++ {
		b.Scratch[i] = carve(nlev)
	}
	b.ZIface = carve(nlev + 1)
	b.Workspace = mem[offset:]
	return b, nil
}

// DryAtmosphere assembles a DryAtmosphere around the buffer's working
// arrays, with the host-owned read-only fields taken from the
// arguments.
func (b *Buffer) DryAtmosphere(zSurf float64, tMid, pMid, pDel, pInt, cldFrac, pblh, phis *sparse.DenseArray) *DryAtmosphere {
	return &DryAtmosphere{
		ZSurf:    zSurf,
		TMid:     tMid,
		PMid:     pMid,
		Qv:       b.QvDry,
		Qc:       b.QcDry,
		Nc:       b.NcDry,
		Qi:       b.QiDry,
		Ni:       b.NiDry,
		ZMid:     b.ZMid,
		ZIface:   b.ZIface,
		Dz:       b.Dz,
		PDel:     pDel,
		PInt:     pInt,
		CldFrac:  cldFrac,
		WUpdraft: b.WUpdraft,
		PBLH:     pblh,
		Phis:     phis,
	}
}

// DryAerosols assembles an AerosolState around the buffer's dry
// aerosol working arrays.
func (b *Buffer) DryAerosols() *AerosolState {
	a := new(AerosolState)
	a.IntAeroNMR = b.DryIntAeroNMR
	a.CldAeroNMR = b.DryCldAeroNMR
	a.IntAeroMMR = b.DryIntAeroMMR
	a.CldAeroMMR = b.DryCldAeroMMR
	a.GasMMR = b.DryGasMMR
	return a
}
