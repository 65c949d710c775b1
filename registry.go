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

// Mode is the index of a modal aerosol size mode.
type Mode int

// The four modal aerosol modes. ModeNone marks work-array slots
// that do not hold aerosol data.
const (
	ModeAccumulation Mode = iota
	ModeAitken
	ModeCoarse
	ModePrimaryCarbon

	// NumModes is the number of distinct aerosol modes.
	NumModes = 4

	ModeNone Mode = -1
)

// Species is the identity of an aerosol chemical species.
type Species int

// The aerosol species carried by the modal scheme. SpeciesNone marks
// mode slots that do not hold a species (e.g. modal number mixing
// ratios in the work arrays).
const (
	SpeciesSOA  Species = iota // secondary organic aerosol
	SpeciesSO4                 // sulfate
	SpeciesPOM                 // primary organic matter
	SpeciesBC                  // black carbon
	SpeciesNaCl                // sea salt
	SpeciesDST                 // dust
	SpeciesMOM                 // marine organic matter

	// NumSpecies is the number of distinct aerosol species.
	NumSpecies = 7

	SpeciesNone Species = -1
)

// Gas is the identity of an aerosol-related gas species.
type Gas int

// The aerosol-related gases. GasNone marks work-array slots that do
// not hold gas data.
const (
	GasO3 Gas = iota
	GasH2O2
	GasH2SO4
	GasSO2
	GasDMS
	GasSOAG

	// NumGases is the number of distinct aerosol-related gases.
	NumGases = 6

	GasNone Gas = -1
)

// NumAerosolTracers is the total number of valid (mode, species)
// pairs: 7 accumulation + 4 aitken + 7 coarse + 3 primary carbon.
const NumAerosolTracers = 21

var modeNames = [NumModes]string{"1", "2", "3", "4"}

var speciesNames = [NumSpecies]string{"soa", "so4", "pom", "bc", "nacl", "dst", "mom"}

var gasNames = [NumGases]string{"O3", "H2O2", "H2SO4", "SO2", "DMS", "SOAG"}

// String returns the symbolic (1-based) name of the mode, or "" for
// ModeNone.
func (m Mode) String() string {
	if m < 0 || m >= NumModes {
		return ""
	}
	return modeNames[m]
}

// String returns the symbolic name of the species, or "" for
// SpeciesNone.
func (s Species) String() string {
	if s < 0 || s >= NumSpecies {
		return ""
	}
	return speciesNames[s]
}

// String returns the symbolic name of the gas, or "" for GasNone.
func (g Gas) String() string {
	if g < 0 || g >= NumGases {
		return ""
	}
	return gasNames[g]
}

// modeSpecies is the authoritative mode→species validity table: the
// species held by each mode, in slot order. All components that index
// aerosol data by (mode, slot) consult this table; slots beyond a
// mode's list are invalid and must be skipped.
// This layout is chemistry-mechanism-specific and must be kept
// consistent with the work-array constituent table in workarrays.go.
var modeSpecies = [NumModes][]Species{
	ModeAccumulation:  {SpeciesSO4, SpeciesPOM, SpeciesSOA, SpeciesBC, SpeciesDST, SpeciesNaCl, SpeciesMOM},
	ModeAitken:        {SpeciesSO4, SpeciesSOA, SpeciesNaCl, SpeciesMOM},
	ModeCoarse:        {SpeciesDST, SpeciesNaCl, SpeciesSO4, SpeciesBC, SpeciesPOM, SpeciesSOA, SpeciesMOM},
	ModePrimaryCarbon: {SpeciesPOM, SpeciesBC, SpeciesMOM},
}

// SpeciesInMode returns the species held by mode m, in slot order.
// The returned slice is shared and must not be modified.
func SpeciesInMode(m Mode) []Species {
	return modeSpecies[m]
}

// ModeSpecies returns the species occupying the given slot of mode m,
// or SpeciesNone if the slot is not valid for that mode.
func ModeSpecies(m Mode, slot int) Species {
	if m < 0 || m >= NumModes || slot < 0 || slot >= len(modeSpecies[m]) {
		return SpeciesNone
	}
	return modeSpecies[m][slot]
}

// AerosolIndexForMode returns the slot of species s within mode m, or
// -1 if the mode does not hold that species.
func AerosolIndexForMode(m Mode, s Species) int {
	for slot, ss := range modeSpecies[m] {
		if ss == s {
			return slot
		}
	}
	return -1
}

// Molar masses [g/mol].
const (
	// MWAir is the molar mass of dry air.
	MWAir = 28.966

	mwSOA  = 12.011
	mwSO4  = 115.107
	mwPOM  = 12.011
	mwBC   = 12.011
	mwNaCl = 58.4425
	mwDST  = 135.065
	mwMOM  = 250092.672

	mwO3   = 47.9982
	mwH2O2 = 34.0136
	// mwH2SO4 is also the molar mass used for condensing sulfate vapor.
	mwH2SO4 = 98.0784
	mwSO2   = 64.0648
	mwDMS   = 62.1324
	mwSOAG  = 12.011
)

var speciesMW = [NumSpecies]float64{
	SpeciesSOA:  mwSOA,
	SpeciesSO4:  mwSO4,
	SpeciesPOM:  mwPOM,
	SpeciesBC:   mwBC,
	SpeciesNaCl: mwNaCl,
	SpeciesDST:  mwDST,
	SpeciesMOM:  mwMOM,
}

var gasMW = [NumGases]float64{
	GasO3:    mwO3,
	GasH2O2:  mwH2O2,
	GasH2SO4: mwH2SO4,
	GasSO2:   mwSO2,
	GasDMS:   mwDMS,
	GasSOAG:  mwSOAG,
}

// MolecularWeight returns the molar mass of the species [g/mol].
func (s Species) MolecularWeight() float64 { return speciesMW[s] }

// MolecularWeight returns the molar mass of the gas [g/mol].
func (g Gas) MolecularWeight() float64 { return gasMW[g] }
