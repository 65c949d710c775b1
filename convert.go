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
	"runtime"
	"sync"

	"github.com/ctessum/sparse"
)

// physical constants
const (
	grav = 9.80665 // m/s2
	rd   = 287.058 // J/(kg K), specific gas constant for dry air
	// εv is the ratio of the molar mass of water vapor to that of dry air.
	εv = 0.62197
)

// DryFromWet converts a wet-basis (moist air) mixing ratio to a
// dry-basis one, given the wet water vapor mixing ratio at the same
// point. When converting water vapor itself, qvWet is both the
// operand and the factor; that is the standard dry/wet identity
// dry = wet/(1-wet), not an aliasing mistake.
func DryFromWet(wet, qvWet float64) float64 {
	return wet / (1 - qvWet)
}

// WetFromDry converts a dry-basis mixing ratio to a wet-basis one,
// given the dry water vapor mixing ratio at the same point.
func WetFromDry(dry, qvDry float64) float64 {
	return dry / (1 + qvDry)
}

// virtualTemperature returns the virtual temperature for the given
// temperature [K] and dry water vapor mixing ratio [kg/kg].
func virtualTemperature(t, qv float64) float64 {
	return t * (qv + εv) / (εv * (1 + qv))
}

// EachColumn runs f for every column index in [0, ncol), distributing
// the columns over GOMAXPROCS worker goroutines. Columns are
// independent in all of the kernels below, so no synchronization
// between them is needed.
func EachColumn(ncol int, f func(ci int)) {
	nprocs := runtime.GOMAXPROCS(0)
	var wg sync.WaitGroup
	wg.Add(nprocs)
	for pp := 0; pp < nprocs; pp++ {
		go func(pp int) {
			for ci := pp; ci < ncol; ci += nprocs {
				f(ci)
			}
			wg.Done()
		}(pp)
	}
	wg.Wait()
}

// ComputeVerticalLayerHeights computes layer thicknesses, interface
// heights, and midpoint heights for column ci of dry. Thicknesses
// come from the hydrostatic relation using the dry water vapor mixing
// ratio; interface heights are integrated upward from ZSurf (level
// nlev-1 is adjacent to the surface); midpoints average the bounding
// interfaces. The three stages are ordered: each reads every level of
// the previous one.
func ComputeVerticalLayerHeights(dry *DryAtmosphere, ci int) {
	nlev := dry.TMid.Shape[1]
	dz := columnLevels(dry.Dz, ci)
	zIface := columnLevels(dry.ZIface, ci)
	zMid := columnLevels(dry.ZMid, ci)
	qv := columnLevels(dry.Qv, ci)
	pMid := columnLevels(dry.PMid, ci)
	tMid := columnLevels(dry.TMid, ci)
	pDel := columnLevels(dry.PDel, ci)

	for k := 0; k < nlev; k++ {
		dz[k] = pDel[k] * rd * virtualTemperature(tMid[k], qv[k]) / (pMid[k] * grav)
	}
	zIface[nlev] = dry.ZSurf
	for k := nlev - 1; k >= 0; k-- {
		zIface[k] = zIface[k+1] + dz[k]
	}
	for k := 0; k < nlev; k++ {
		zMid[k] = 0.5 * (zIface[k] + zIface[k+1])
	}
}

// ComputeUpdraftVelocities computes the vertical updraft velocity for
// column ci of dry from the wet state's pressure velocity, deriving
// air density from the pressure and layer thicknesses.
func ComputeUpdraftVelocities(wet *WetAtmosphere, dry *DryAtmosphere, ci int) {
	nlev := dry.TMid.Shape[1]
	dz := columnLevels(dry.Dz, ci)
	pDel := columnLevels(dry.PDel, ci)
	omega := columnLevels(wet.Omega, ci)
	w := columnLevels(dry.WUpdraft, ci)
	for k := 0; k < nlev; k++ {
		rho := pDel[k] / (grav * dz[k])
		w[k] = -omega[k] / (rho * grav)
	}
}

// ComputeDryMixingRatios converts the wet atmospheric mixing ratios
// of column ci to dry-basis ones, using each level's wet water vapor
// value as the conversion factor. Water vapor converts using its own
// value as the factor.
func ComputeDryMixingRatios(wet *WetAtmosphere, dry *DryAtmosphere, ci int) {
	nlev := dry.Qv.Shape[1]
	wetQv := columnLevels(wet.Qv, ci)
	wetQc := columnLevels(wet.Qc, ci)
	wetNc := columnLevels(wet.Nc, ci)
	wetQi := columnLevels(wet.Qi, ci)
	wetNi := columnLevels(wet.Ni, ci)
	dryQv := columnLevels(dry.Qv, ci)
	dryQc := columnLevels(dry.Qc, ci)
	dryNc := columnLevels(dry.Nc, ci)
	dryQi := columnLevels(dry.Qi, ci)
	dryNi := columnLevels(dry.Ni, ci)
	for k := 0; k < nlev; k++ {
		qvk := wetQv[k]
		dryQv[k] = DryFromWet(wetQv[k], qvk)
		dryQc[k] = DryFromWet(wetQc[k], qvk)
		dryNc[k] = DryFromWet(wetNc[k], qvk)
		dryQi[k] = DryFromWet(wetQi[k], qvk)
		dryNi[k] = DryFromWet(wetNi[k], qvk)
	}
}

// convertAerosolColumn applies conv levelwise to every populated
// field of the source aerosol state in column ci, writing the result
// into the corresponding field of the destination state. Destination
// slots that are nil are skipped.
func convertAerosolColumn(src, dst *AerosolState, qv []float64, ci int, conv func(v, qv float64) float64) {
	apply := func(s, d *sparse.DenseArray) {
		if d == nil {
			return
		}
		sc := columnLevels(s, ci)
		dc := columnLevels(d, ci)
		for k := range dc {
			dc[k] = conv(sc[k], qv[k])
		}
	}
	for m := Mode(0); m < NumModes; m++ {
		apply(src.IntAeroNMR[m], dst.IntAeroNMR[m])
		apply(src.CldAeroNMR[m], dst.CldAeroNMR[m])
		for slot := 0; slot < NumSpecies; slot++ {
			apply(src.IntAeroMMR[m][slot], dst.IntAeroMMR[m][slot])
			apply(src.CldAeroMMR[m][slot], dst.CldAeroMMR[m][slot])
		}
	}
	for g := Gas(0); g < NumGases; g++ {
		apply(src.GasMMR[g], dst.GasMMR[g])
	}
}

// ComputeDryAerosolMixingRatios converts every populated field of the
// wet aerosol state to a dry-basis one in column ci, using the wet
// atmosphere's water vapor as the conversion factor. Unpopulated
// (nil) slots are skipped.
func ComputeDryAerosolMixingRatios(wet *WetAtmosphere, wetAero, dryAero *AerosolState, ci int) {
	convertAerosolColumn(wetAero, dryAero, columnLevels(wet.Qv, ci), ci, DryFromWet)
}

// ComputeWetAerosolMixingRatios converts every populated field of the
// dry aerosol state back to a wet-basis one in column ci, using the
// dry atmosphere's water vapor as the conversion factor. Unpopulated
// (nil) slots are skipped.
func ComputeWetAerosolMixingRatios(dry *DryAtmosphere, dryAero, wetAero *AerosolState, ci int) {
	convertAerosolColumn(dryAero, wetAero, columnLevels(dry.Qv, ci), ci, WetFromDry)
}
