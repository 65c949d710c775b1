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

// NumConstituents is the length of the flat chemistry work arrays:
// 6 gases, then for each mode its species masses followed by the
// modal number (8 accumulation + 5 aitken + 8 coarse + 4 primary
// carbon).
const NumConstituents = 31

// Constituent assigns one flat work-array index exactly one of a gas,
// a (mode, species) aerosol mass, or a modal number (Species ==
// SpeciesNone). The three cases are mutually exclusive by
// construction of the Constituents table.
type Constituent struct {
	Gas     Gas
	Mode    Mode
	Species Species
}

// Constituents is the chemistry-mechanism-specific mapping from flat
// work-array indices to structured quantities, shared by all of the
// transfer and conversion functions below. Its ordering must be kept
// consistent with the mode→species registry table in registry.go
// whenever modes or species change.
var Constituents = [NumConstituents]Constituent{
	// gases
	{Gas: GasO3, Mode: ModeNone, Species: SpeciesNone},
	{Gas: GasH2O2, Mode: ModeNone, Species: SpeciesNone},
	{Gas: GasH2SO4, Mode: ModeNone, Species: SpeciesNone},
	{Gas: GasSO2, Mode: ModeNone, Species: SpeciesNone},
	{Gas: GasDMS, Mode: ModeNone, Species: SpeciesNone},
	{Gas: GasSOAG, Mode: ModeNone, Species: SpeciesNone},
	// accumulation mode
	{Gas: GasNone, Mode: ModeAccumulation, Species: SpeciesSO4},
	{Gas: GasNone, Mode: ModeAccumulation, Species: SpeciesPOM},
	{Gas: GasNone, Mode: ModeAccumulation, Species: SpeciesSOA},
	{Gas: GasNone, Mode: ModeAccumulation, Species: SpeciesBC},
	{Gas: GasNone, Mode: ModeAccumulation, Species: SpeciesDST},
	{Gas: GasNone, Mode: ModeAccumulation, Species: SpeciesNaCl},
	{Gas: GasNone, Mode: ModeAccumulation, Species: SpeciesMOM},
	{Gas: GasNone, Mode: ModeAccumulation, Species: SpeciesNone},
	// aitken mode
	{Gas: GasNone, Mode: ModeAitken, Species: SpeciesSO4},
	{Gas: GasNone, Mode: ModeAitken, Species: SpeciesSOA},
	{Gas: GasNone, Mode: ModeAitken, Species: SpeciesNaCl},
	{Gas: GasNone, Mode: ModeAitken, Species: SpeciesMOM},
	{Gas: GasNone, Mode: ModeAitken, Species: SpeciesNone},
	// coarse mode
	{Gas: GasNone, Mode: ModeCoarse, Species: SpeciesDST},
	{Gas: GasNone, Mode: ModeCoarse, Species: SpeciesNaCl},
	{Gas: GasNone, Mode: ModeCoarse, Species: SpeciesSO4},
	{Gas: GasNone, Mode: ModeCoarse, Species: SpeciesBC},
	{Gas: GasNone, Mode: ModeCoarse, Species: SpeciesPOM},
	{Gas: GasNone, Mode: ModeCoarse, Species: SpeciesSOA},
	{Gas: GasNone, Mode: ModeCoarse, Species: SpeciesMOM},
	{Gas: GasNone, Mode: ModeCoarse, Species: SpeciesNone},
	// primary carbon mode
	{Gas: GasNone, Mode: ModePrimaryCarbon, Species: SpeciesPOM},
	{Gas: GasNone, Mode: ModePrimaryCarbon, Species: SpeciesBC},
	{Gas: GasNone, Mode: ModePrimaryCarbon, Species: SpeciesMOM},
	{Gas: GasNone, Mode: ModePrimaryCarbon, Species: SpeciesNone},
}

// VMRFromMMR converts a mass mixing ratio to a volume mixing ratio
// for a species with the given molar mass.
func VMRFromMMR(mmr, mw float64) float64 {
	return mmr * MWAir / mw
}

// MMRFromVMR converts a volume mixing ratio back to a mass mixing
// ratio for a species with the given molar mass.
func MMRFromVMR(vmr, mw float64) float64 {
	return vmr * mw / MWAir
}

// TransferPrognosticsToWorkArrays copies the structured aerosol state
// at vertical level k into the flat work arrays q (interstitial
// basis) and qqcw (cloudborne basis). Gas values, which have no
// interstitial/cloudborne distinction, are written into both.
func TransferPrognosticsToWorkArrays(progs *ColumnPrognostics, k int, q, qqcw []float64) {
	for i, c := range Constituents {
		switch {
		case c.Gas != GasNone:
			q[i] = progs.QGas[c.Gas][k]
			qqcw[i] = progs.QGas[c.Gas][k]
		case c.Species != SpeciesNone:
			slot := AerosolIndexForMode(c.Mode, c.Species)
			q[i] = progs.QAeroI[c.Mode][slot][k]
			qqcw[i] = progs.QAeroC[c.Mode][slot][k]
		default: // modal number
			q[i] = progs.NModeI[c.Mode][k]
			qqcw[i] = progs.NModeC[c.Mode][k]
		}
	}
}

// ConvertWorkArraysToVMR converts the work arrays q and qqcw from
// mass/number mixing ratios to volume/number mixing ratios. Modal
// numbers pass through unchanged; no molar mass applies to a number
// concentration.
func ConvertWorkArraysToVMR(q, qqcw, vmr, vmrcw []float64) {
	for i, c := range Constituents {
		switch {
		case c.Gas != GasNone:
			mw := c.Gas.MolecularWeight()
			vmr[i] = VMRFromMMR(q[i], mw)
			vmrcw[i] = VMRFromMMR(qqcw[i], mw)
		case c.Species != SpeciesNone:
			mw := c.Species.MolecularWeight()
			vmr[i] = VMRFromMMR(q[i], mw)
			vmrcw[i] = VMRFromMMR(qqcw[i], mw)
		default:
			vmr[i] = q[i]
			vmrcw[i] = qqcw[i]
		}
	}
}

// ConvertWorkArraysToMMR converts the work arrays vmr and vmrcw from
// volume/number mixing ratios back to mass/number mixing ratios.
// Modal numbers pass through unchanged.
func ConvertWorkArraysToMMR(vmr, vmrcw, q, qqcw []float64) {
	for i, c := range Constituents {
		switch {
		case c.Gas != GasNone:
			mw := c.Gas.MolecularWeight()
			q[i] = MMRFromVMR(vmr[i], mw)
			qqcw[i] = MMRFromVMR(vmrcw[i], mw)
		case c.Species != SpeciesNone:
			mw := c.Species.MolecularWeight()
			q[i] = MMRFromVMR(vmr[i], mw)
			qqcw[i] = MMRFromVMR(vmrcw[i], mw)
		default:
			q[i] = vmr[i]
			qqcw[i] = vmrcw[i]
		}
	}
}

// TransferWorkArraysToPrognostics writes the flat work arrays q and
// qqcw back into the structured aerosol state at vertical level k.
// It is the inverse of TransferPrognosticsToWorkArrays; gas values
// are restored from q.
func TransferWorkArraysToPrognostics(q, qqcw []float64, progs *ColumnPrognostics, k int) {
	for i, c := range Constituents {
		switch {
		case c.Gas != GasNone:
			progs.QGas[c.Gas][k] = q[i]
		case c.Species != SpeciesNone:
			slot := AerosolIndexForMode(c.Mode, c.Species)
			progs.QAeroI[c.Mode][slot][k] = q[i]
			progs.QAeroC[c.Mode][slot][k] = qqcw[i]
		default:
			progs.NModeI[c.Mode][k] = q[i]
			progs.NModeC[c.Mode][k] = qqcw[i]
		}
	}
}
