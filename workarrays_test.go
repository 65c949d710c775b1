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

import "testing"

// Each work-array index holds exactly one of a gas, an aerosol mass,
// or a modal number.
func TestConstituentsMutuallyExclusive(t *testing.T) {
	nGas, nMass, nNumber := 0, 0, 0
	for i, c := range Constituents {
		switch {
		case c.Gas != GasNone:
			if c.Mode != ModeNone || c.Species != SpeciesNone {
				t.Errorf("index %d: gas entry also carries mode or species", i)
			}
			nGas++
		case c.Species != SpeciesNone:
			if c.Mode == ModeNone {
				t.Errorf("index %d: species entry carries no mode", i)
			}
			nMass++
		default:
			if c.Mode == ModeNone {
				t.Errorf("index %d: number entry carries no mode", i)
			}
			nNumber++
		}
	}
	if nGas != int(NumGases) {
		t.Errorf("%d gas entries, want %d", nGas, NumGases)
	}
	if nMass != NumAerosolTracers {
		t.Errorf("%d mass entries, want %d", nMass, NumAerosolTracers)
	}
	if nNumber != int(NumModes) {
		t.Errorf("%d number entries, want %d", nNumber, NumModes)
	}
}

// Every (mode, species) mass entry must name a species the registry
// holds for that mode, and each mode's block must end with its number.
func TestConstituentsConsistentWithRegistry(t *testing.T) {
	for i, c := range Constituents {
		if c.Gas != GasNone || c.Species == SpeciesNone {
			continue
		}
		if AerosolIndexForMode(c.Mode, c.Species) < 0 {
			t.Errorf("index %d: species %v not held by mode %v", i, c.Species, c.Mode)
		}
	}
	// The entry following a mode's last species is its modal number.
	for m := Mode(0); m < NumModes; m++ {
		last := -1
		for i, c := range Constituents {
			if c.Gas == GasNone && c.Mode == m && c.Species != SpeciesNone {
				last = i
			}
		}
		if last < 0 || last+1 >= NumConstituents {
			t.Fatalf("mode %v: species block not found", m)
		}
		next := Constituents[last+1]
		if next.Gas != GasNone || next.Mode != m || next.Species != SpeciesNone {
			t.Errorf("mode %v: entry after its species block is not its modal number", m)
		}
	}
}

func testColumnPrognostics(nlev int) *ColumnPrognostics {
	progs := &ColumnPrognostics{NumLevels: nlev}
	v := 1.0
	fill := func() []float64 {
		s := make([]float64, nlev)
		for k := range s {
			s[k] = v * 1.0e-9
			v++
		}
		return s
	}
	for m := Mode(0); m < NumModes; m++ {
		progs.NModeI[m] = fill()
		progs.NModeC[m] = fill()
		for slot := range SpeciesInMode(m) {
			progs.QAeroI[m][slot] = fill()
			progs.QAeroC[m][slot] = fill()
		}
	}
	for g := Gas(0); g < NumGases; g++ {
		progs.QGas[g] = fill()
	}
	return progs
}

func TestWorkArrayRoundTrip(t *testing.T) {
	const tolerance = 1.0e-13
	const nlev = 3
	progs := testColumnPrognostics(nlev)
	want := testColumnPrognostics(nlev)

	q := make([]float64, NumConstituents)
	qqcw := make([]float64, NumConstituents)
	vmr := make([]float64, NumConstituents)
	vmrcw := make([]float64, NumConstituents)
	for k := 0; k < nlev; k++ {
		TransferPrognosticsToWorkArrays(progs, k, q, qqcw)
		ConvertWorkArraysToVMR(q, qqcw, vmr, vmrcw)
		ConvertWorkArraysToMMR(vmr, vmrcw, q, qqcw)
		TransferWorkArraysToPrognostics(q, qqcw, progs, k)
	}

	for m := Mode(0); m < NumModes; m++ {
		for k := 0; k < nlev; k++ {
			if different(progs.NModeI[m][k], want.NModeI[m][k], tolerance) {
				t.Errorf("mode %v level %d: interstitial number %g, want %g", m, k, progs.NModeI[m][k], want.NModeI[m][k])
			}
			if different(progs.NModeC[m][k], want.NModeC[m][k], tolerance) {
				t.Errorf("mode %v level %d: cloudborne number %g, want %g", m, k, progs.NModeC[m][k], want.NModeC[m][k])
			}
		}
		for slot := range SpeciesInMode(m) {
			for k := 0; k < nlev; k++ {
				if different(progs.QAeroI[m][slot][k], want.QAeroI[m][slot][k], tolerance) {
					t.Errorf("mode %v slot %d level %d: interstitial mass %g, want %g", m, slot, k, progs.QAeroI[m][slot][k], want.QAeroI[m][slot][k])
				}
				if different(progs.QAeroC[m][slot][k], want.QAeroC[m][slot][k], tolerance) {
					t.Errorf("mode %v slot %d level %d: cloudborne mass %g, want %g", m, slot, k, progs.QAeroC[m][slot][k], want.QAeroC[m][slot][k])
				}
			}
		}
	}
	for g := Gas(0); g < NumGases; g++ {
		for k := 0; k < nlev; k++ {
			if different(progs.QGas[g][k], want.QGas[g][k], tolerance) {
				t.Errorf("gas %v level %d: %g, want %g", g, k, progs.QGas[g][k], want.QGas[g][k])
			}
		}
	}
}

// Gas values have no cloudborne counterpart; the transfer writes them
// into both work arrays and restores them from the interstitial one.
func TestGasTransfer(t *testing.T) {
	const nlev = 2
	progs := testColumnPrognostics(nlev)
	q := make([]float64, NumConstituents)
	qqcw := make([]float64, NumConstituents)
	TransferPrognosticsToWorkArrays(progs, 0, q, qqcw)
	for i, c := range Constituents {
		if c.Gas == GasNone {
			continue
		}
		if q[i] != progs.QGas[c.Gas][0] {
			t.Errorf("index %d: interstitial work value %g, want %g", i, q[i], progs.QGas[c.Gas][0])
		}
		if qqcw[i] != q[i] {
			t.Errorf("index %d: cloudborne work value %g differs from interstitial %g", i, qqcw[i], q[i])
		}
	}
	// Restoration takes the interstitial value.
	for i, c := range Constituents {
		if c.Gas != GasNone {
			q[i] = 42
			qqcw[i] = 7
		}
	}
	TransferWorkArraysToPrognostics(q, qqcw, progs, 0)
	for g := Gas(0); g < NumGases; g++ {
		if progs.QGas[g][0] != 42 {
			t.Errorf("gas %v restored to %g, want 42", g, progs.QGas[g][0])
		}
	}
}

// Modal numbers pass through the mixing-ratio conversion unchanged.
func TestNumbersPassThroughVMRConversion(t *testing.T) {
	q := make([]float64, NumConstituents)
	qqcw := make([]float64, NumConstituents)
	vmr := make([]float64, NumConstituents)
	vmrcw := make([]float64, NumConstituents)
	for i := range q {
		q[i] = float64(i + 1)
		qqcw[i] = float64(i + 100)
	}
	ConvertWorkArraysToVMR(q, qqcw, vmr, vmrcw)
	for i, c := range Constituents {
		isNumber := c.Gas == GasNone && c.Species == SpeciesNone
		if isNumber {
			if vmr[i] != q[i] || vmrcw[i] != qqcw[i] {
				t.Errorf("index %d: modal number changed by conversion", i)
			}
		} else if vmr[i] == q[i] {
			t.Errorf("index %d: mass value unchanged by conversion", i)
		}
	}
}
