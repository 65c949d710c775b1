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

// AerosolState holds multi-column aerosol number and mass mixing
// ratios. The same type represents wet-basis and dry-basis states;
// which basis a given value carries is determined by how it was
// produced, and the two bases are only connected through the
// conversion kernels in convert.go.
//
// Mass mixing ratios are indexed by (mode, slot), where the species
// occupying each slot is given by ModeSpecies. Slots that are not
// valid for a mode, and any optional fields that have not been
// allocated, are nil and must be skipped by all consumers; they are
// never zero-filled.
type AerosolState struct {
	IntAeroNMR [NumModes]*sparse.DenseArray               // interstitial modal number mixing ratios [# / kg air]
	CldAeroNMR [NumModes]*sparse.DenseArray               // cloudborne modal number mixing ratios [# / kg air]
	IntAeroMMR [NumModes][NumSpecies]*sparse.DenseArray   // interstitial mass mixing ratios [kg / kg air]
	CldAeroMMR [NumModes][NumSpecies]*sparse.DenseArray   // cloudborne mass mixing ratios [kg / kg air]
	GasMMR     [NumGases]*sparse.DenseArray               // gas mass mixing ratios [kg / kg air]
}
