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

import "github.com/ctessum/sparse"

// ColumnAtmosphere is a single column's view of a dry atmospheric
// state: one slice per field, covering all vertical levels, aliasing
// the multi-column storage. It is the structure handed to the
// aerosol physics for one column.
type ColumnAtmosphere struct {
	NumLevels int
	TMid      []float64
	PMid      []float64
	Qv        []float64
	Qc        []float64
	Nc        []float64
	Qi        []float64
	Ni        []float64
	ZMid      []float64
	PDel      []float64
	PInt      []float64 // NumLevels+1 entries
	CldFrac   []float64
	WUpdraft  []float64
	PBLH      float64
}

// ColumnPrognostics is a single column's view of an aerosol state,
// in the form consumed by the aerosol physics. Nil entries mark
// unpopulated fields.
type ColumnPrognostics struct {
	NumLevels int
	NModeI    [NumModes][]float64             // interstitial modal numbers
	NModeC    [NumModes][]float64             // cloudborne modal numbers
	QAeroI    [NumModes][NumSpecies][]float64 // interstitial species masses
	QAeroC    [NumModes][NumSpecies][]float64 // cloudborne species masses
	QGas      [NumGases][]float64             // gas masses
}

// columnLevels returns the contiguous sub-slice of a holding all
// levels of column ci. The returned slice aliases a's storage:
// mutations through it are visible in a.
func columnLevels(a *sparse.DenseArray, ci int) []float64 {
	nlev := a.Shape[1]
	return a.Elements[ci*nlev : (ci+1)*nlev : (ci+1)*nlev]
}

// require panics if a required array has not been allocated. A
// missing required field is a fatal precondition violation, never
// silently defaulted.
func require(a *sparse.DenseArray, field, state string) {
	if a == nil || a.Elements == nil {
		panic("aeroremap: " + field + " is not defined for " + state)
	}
}

// AtmosphereForColumn builds a ColumnAtmosphere view of column ci of
// dry. No data is copied. All fields of dry except ZIface and Phis
// must be allocated; a missing one is a fatal error naming the field.
func AtmosphereForColumn(dry *DryAtmosphere, ci int) *ColumnAtmosphere {
	const state = "the dry atmosphere state"
	require(dry.TMid, "T_mid", state)
	require(dry.PMid, "p_mid", state)
	require(dry.Qv, "qv", state)
	require(dry.Qc, "qc", state)
	require(dry.Nc, "nc", state)
	require(dry.Qi, "qi", state)
	require(dry.Ni, "ni", state)
	require(dry.ZMid, "z_mid", state)
	require(dry.PDel, "p_del", state)
	require(dry.PInt, "p_int", state)
	require(dry.CldFrac, "cldfrac", state)
	require(dry.WUpdraft, "w_updraft", state)
	require(dry.PBLH, "pblh", state)
	return &ColumnAtmosphere{
		NumLevels: dry.TMid.Shape[1],
		TMid:      columnLevels(dry.TMid, ci),
		PMid:      columnLevels(dry.PMid, ci),
		Qv:        columnLevels(dry.Qv, ci),
		Qc:        columnLevels(dry.Qc, ci),
		Nc:        columnLevels(dry.Nc, ci),
		Qi:        columnLevels(dry.Qi, ci),
		Ni:        columnLevels(dry.Ni, ci),
		ZMid:      columnLevels(dry.ZMid, ci),
		PDel:      columnLevels(dry.PDel, ci),
		PInt:      columnLevels(dry.PInt, ci),
		CldFrac:   columnLevels(dry.CldFrac, ci),
		WUpdraft:  columnLevels(dry.WUpdraft, ci),
		PBLH:      dry.PBLH.Elements[ci],
	}
}

// InterstitialAerosolsForColumn builds a ColumnPrognostics view of
// column ci of aero with only the interstitial fields populated.
// Modal number and gas arrays are required (fatal if missing);
// (mode, slot) mass arrays are included only where populated.
func InterstitialAerosolsForColumn(aero *AerosolState, ci int) *ColumnPrognostics {
	const state = "the aerosol state"
	progs := new(ColumnPrognostics)
	for m := Mode(0); m < NumModes; m++ {
		require(aero.IntAeroNMR[m], "int_aero_nmr", state)
		progs.NumLevels = aero.IntAeroNMR[m].Shape[1]
		progs.NModeI[m] = columnLevels(aero.IntAeroNMR[m], ci)
		for slot := 0; slot < NumSpecies; slot++ {
			if a := aero.IntAeroMMR[m][slot]; a != nil {
				progs.QAeroI[m][slot] = columnLevels(a, ci)
			}
		}
	}
	for g := Gas(0); g < NumGases; g++ {
		require(aero.GasMMR[g], "gas_mmr", state)
		progs.QGas[g] = columnLevels(aero.GasMMR[g], ci)
	}
	return progs
}

// AerosolsForColumn builds a ColumnPrognostics view of column ci of
// aero with both interstitial and cloudborne fields populated.
// Cloudborne modal numbers are required (fatal if missing);
// cloudborne mass arrays are skipped where unpopulated.
func AerosolsForColumn(aero *AerosolState, ci int) *ColumnPrognostics {
	const state = "the aerosol state"
	progs := InterstitialAerosolsForColumn(aero, ci)
	for m := Mode(0); m < NumModes; m++ {
		require(aero.CldAeroNMR[m], "cld_aero_nmr", state)
		progs.NModeC[m] = columnLevels(aero.CldAeroNMR[m], ci)
		for slot := 0; slot < NumSpecies; slot++ {
			if a := aero.CldAeroMMR[m][slot]; a != nil {
				progs.QAeroC[m][slot] = columnLevels(a, ci)
			}
		}
	}
	return progs
}
