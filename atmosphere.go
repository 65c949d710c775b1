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

// WetAtmosphere holds the multi-column wet (moist-air-basis)
// atmospheric state supplied by the host model. All arrays are
// column × level and are treated as read-only.
type WetAtmosphere struct {
	Qv    *sparse.DenseArray // wet water vapor specific humidity [kg vapor / kg moist air]
	Qc    *sparse.DenseArray // wet cloud liquid water mass mixing ratio [kg water / kg moist air]
	Nc    *sparse.DenseArray // wet cloud liquid water number mixing ratio [# / kg moist air]
	Qi    *sparse.DenseArray // wet cloud ice mass mixing ratio [kg ice / kg moist air]
	Ni    *sparse.DenseArray // wet cloud ice number mixing ratio [# / kg moist air]
	Omega *sparse.DenseArray // vertical pressure velocity [Pa/s]
}

// DryAtmosphere holds the multi-column dry (dry-air-basis)
// atmospheric state consumed by the aerosol physics. TMid, PMid,
// PDel, PInt, CldFrac, PBLH and Phis are owned by the host model and
// treated as read-only here; the remaining arrays are written by the
// conversion kernels. PInt and ZIface are interface-resident
// (column × level+1); all other 2-D arrays are column × level.
type DryAtmosphere struct {
	ZSurf    float64            // height of the bottom of the atmosphere [m]
	TMid     *sparse.DenseArray // temperature at layer midpoints [K]
	PMid     *sparse.DenseArray // total pressure at layer midpoints [Pa]
	Qv       *sparse.DenseArray // dry water vapor mixing ratio [kg vapor / kg dry air]
	Qc       *sparse.DenseArray // dry cloud liquid water mass mixing ratio [kg water / kg dry air]
	Nc       *sparse.DenseArray // dry cloud liquid water number mixing ratio [# / kg dry air]
	Qi       *sparse.DenseArray // dry cloud ice mass mixing ratio [kg ice / kg dry air]
	Ni       *sparse.DenseArray // dry cloud ice number mixing ratio [# / kg dry air]
	ZMid     *sparse.DenseArray // height at layer midpoints [m]
	ZIface   *sparse.DenseArray // height at layer interfaces [m]
	Dz       *sparse.DenseArray // layer thickness [m]
	PDel     *sparse.DenseArray // hydrostatic pressure thickness [Pa]
	PInt     *sparse.DenseArray // total pressure at layer interfaces [Pa]
	CldFrac  *sparse.DenseArray // cloud fraction [-]
	WUpdraft *sparse.DenseArray // updraft velocity [m/s]
	PBLH     *sparse.DenseArray // planetary boundary layer height [m] (1-D)
	Phis     *sparse.DenseArray // surface geopotential [m2/s2] (1-D)
}
