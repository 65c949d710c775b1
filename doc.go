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

// Package aeroremap couples a host atmosphere model's wet
// (moist-air-basis) state to a modal aerosol scheme's dry
// (dry-air-basis) state: it synthesizes the host field names for
// aerosol quantities, carves working storage for the dry state out of
// a flat scratch allocation, builds per-column aliasing views for the
// aerosol physics, converts mixing ratios between the two bases, and
// moves data between the structured aerosol state and the flat
// per-level work arrays used by gas chemistry.
//
// The remap subdirectory holds the companion horizontal remap engine
// for redistributing gridded scalar fields between grids.
package aeroremap
