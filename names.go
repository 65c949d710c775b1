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

// Canonical names of the host-model fields holding aerosol mixing
// ratios. The name set is static, so the tables are computed once at
// package initialization; repeated lookups return identical strings.

var (
	intAeroNMRNames [NumModes]string
	cldAeroNMRNames [NumModes]string
	intAeroMMRNames [NumModes][NumSpecies]string
	cldAeroMMRNames [NumModes][NumSpecies]string
)

func init() {
	for m := Mode(0); m < NumModes; m++ {
		intAeroNMRNames[m] = "num_a" + m.String()
		cldAeroNMRNames[m] = "num_c" + m.String()
		for slot := 0; slot < NumSpecies; slot++ {
			s := ModeSpecies(m, slot)
			if s == SpeciesNone {
				continue // invalid (mode, slot): name stays empty
			}
			intAeroMMRNames[m][slot] = s.String() + "_a" + m.String()
			cldAeroMMRNames[m][slot] = s.String() + "_c" + m.String()
		}
	}
}

// IntAeroNMRFieldName returns the name of the interstitial modal
// number mixing ratio field for the given mode
// ("num_a<1-based mode index>").
func IntAeroNMRFieldName(m Mode) string {
	return intAeroNMRNames[m]
}

// CldAeroNMRFieldName returns the name of the cloudborne modal number
// mixing ratio field for the given mode ("num_c<1-based mode index>").
func CldAeroNMRFieldName(m Mode) string {
	return cldAeroNMRNames[m]
}

// IntAeroMMRFieldName returns the name of the interstitial mass
// mixing ratio field for the species in the given slot of the given
// mode ("<species>_a<1-based mode index>"). If the slot is not valid
// for the mode it returns "".
func IntAeroMMRFieldName(m Mode, slot int) string {
	if slot < 0 || slot >= NumSpecies {
		return ""
	}
	return intAeroMMRNames[m][slot]
}

// CldAeroMMRFieldName returns the name of the cloudborne mass mixing
// ratio field for the species in the given slot of the given mode
// ("<species>_c<1-based mode index>"). If the slot is not valid for
// the mode it returns "".
func CldAeroMMRFieldName(m Mode, slot int) string {
	if slot < 0 || slot >= NumSpecies {
		return ""
	}
	return cldAeroMMRNames[m][slot]
}

// GasMMRFieldName returns the name of the mass mixing ratio field for
// the given gas, which is the gas's own symbolic name.
func GasMMRFieldName(g Gas) string {
	return g.String()
}
