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
	"math"
	"sync"
	"testing"

	"github.com/ctessum/sparse"
)

func different(a, b, tolerance float64) bool {
	if 2*math.Abs(a-b)/math.Abs(a+b) > tolerance || math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return false
}

func TestWetDryRoundTrip(t *testing.T) {
	const tolerance = 1.0e-14
	qvWet := 0.012
	qvDry := DryFromWet(qvWet, qvWet)
	for _, wet := range []float64{1.0e-9, 3.7e-6, 0.004, 0.9} {
		dry := DryFromWet(wet, qvWet)
		if dry <= wet {
			t.Errorf("dry value %g not greater than wet value %g", dry, wet)
		}
		back := WetFromDry(dry, qvDry)
		if different(back, wet, tolerance) {
			t.Errorf("round trip of %g gives %g", wet, back)
		}
	}
}

func testWetAtmosphere() *WetAtmosphere {
	fill := func(v float64) *sparse.DenseArray {
		a := sparse.ZerosDense(testNcol, testNlev)
		for i := range a.Elements {
			a.Elements[i] = v * (1 + 0.01*float64(i))
		}
		return a
	}
	return &WetAtmosphere{
		Qv:    fill(0.01),
		Qc:    fill(1.0e-4),
		Nc:    fill(1.0e7),
		Qi:    fill(2.0e-5),
		Ni:    fill(5.0e5),
		Omega: fill(-0.1),
	}
}

func TestComputeDryMixingRatios(t *testing.T) {
	const tolerance = 1.0e-14
	wet := testWetAtmosphere()
	dry := testDryAtmosphere()
	for ci := 0; ci < testNcol; ci++ {
		ComputeDryMixingRatios(wet, dry, ci)
	}
	for ci := 0; ci < testNcol; ci++ {
		for k := 0; k < testNlev; k++ {
			qvWet := wet.Qv.Get(ci, k)
			want := qvWet / (1 - qvWet)
			if got := dry.Qv.Get(ci, k); different(got, want, tolerance) {
				t.Errorf("column %d level %d: dry qv = %g, want %g", ci, k, got, want)
			}
			wantQc := wet.Qc.Get(ci, k) / (1 - qvWet)
			if got := dry.Qc.Get(ci, k); different(got, wantQc, tolerance) {
				t.Errorf("column %d level %d: dry qc = %g, want %g", ci, k, got, wantQc)
			}
		}
	}
}

func TestComputeVerticalLayerHeights(t *testing.T) {
	const tolerance = 1.0e-12
	dry := testDryAtmosphere()
	const ci = 0
	// A plausible column: warm at the bottom (level nlev-1), pressure
	// increasing downward.
	tMid := []float64{230, 255, 275, 288}
	pMid := []float64{30000, 55000, 80000, 95000}
	pDel := []float64{20000, 25000, 20000, 10000}
	qv := []float64{1.0e-5, 1.0e-4, 2.0e-3, 8.0e-3}
	for k := 0; k < testNlev; k++ {
		dry.TMid.Set(tMid[k], ci, k)
		dry.PMid.Set(pMid[k], ci, k)
		dry.PDel.Set(pDel[k], ci, k)
		dry.Qv.Set(qv[k], ci, k)
	}
	dry.ZSurf = 125.0

	ComputeVerticalLayerHeights(dry, ci)

	if got := dry.ZIface.Get(ci, testNlev); got != dry.ZSurf {
		t.Errorf("bottom interface height = %g, want surface height %g", got, dry.ZSurf)
	}
	for k := 0; k < testNlev; k++ {
		dz := dry.Dz.Get(ci, k)
		if dz <= 0 {
			t.Errorf("level %d: nonpositive thickness %g", k, dz)
		}
		wantDz := pDel[k] * rd * virtualTemperature(tMid[k], qv[k]) / (pMid[k] * grav)
		if different(dz, wantDz, tolerance) {
			t.Errorf("level %d: thickness %g, want %g", k, dz, wantDz)
		}
		// Interfaces decrease in height going down.
		if dry.ZIface.Get(ci, k) <= dry.ZIface.Get(ci, k+1) {
			t.Errorf("level %d: interface heights not decreasing downward", k)
		}
		wantMid := 0.5 * (dry.ZIface.Get(ci, k) + dry.ZIface.Get(ci, k+1))
		if got := dry.ZMid.Get(ci, k); different(got, wantMid, tolerance) {
			t.Errorf("level %d: midpoint height %g, want %g", k, got, wantMid)
		}
	}
	// The top interface is the surface height plus the total depth.
	wantTop := dry.ZSurf
	for k := 0; k < testNlev; k++ {
		wantTop += dry.Dz.Get(ci, k)
	}
	if got := dry.ZIface.Get(ci, 0); different(got, wantTop, tolerance) {
		t.Errorf("top interface height = %g, want %g", got, wantTop)
	}
}

func TestComputeUpdraftVelocities(t *testing.T) {
	const tolerance = 1.0e-12
	wet := testWetAtmosphere()
	dry := testDryAtmosphere()
	const ci = 1
	ComputeUpdraftVelocities(wet, dry, ci)
	for k := 0; k < testNlev; k++ {
		rho := dry.PDel.Get(ci, k) / (grav * dry.Dz.Get(ci, k))
		want := -wet.Omega.Get(ci, k) / (rho * grav)
		got := dry.WUpdraft.Get(ci, k)
		if different(got, want, tolerance) {
			t.Errorf("level %d: updraft velocity %g, want %g", k, got, want)
		}
		// Downward pressure velocity means upward air motion.
		if wet.Omega.Get(ci, k) < 0 && got <= 0 {
			t.Errorf("level %d: negative pressure velocity gives nonpositive updraft %g", k, got)
		}
	}
}

func TestAerosolConversionRoundTrip(t *testing.T) {
	const tolerance = 1.0e-13
	wet := testWetAtmosphere()
	dry := testDryAtmosphere()
	wetAero := testAerosolState()
	dryAero := testAerosolState()
	back := testAerosolState()

	for ci := 0; ci < testNcol; ci++ {
		ComputeDryMixingRatios(wet, dry, ci)
		ComputeDryAerosolMixingRatios(wet, wetAero, dryAero, ci)
		ComputeWetAerosolMixingRatios(dry, dryAero, back, ci)
	}
	for m := Mode(0); m < NumModes; m++ {
		for i, want := range wetAero.IntAeroNMR[m].Elements {
			if got := back.IntAeroNMR[m].Elements[i]; different(got, want, tolerance) {
				t.Fatalf("mode %v number %d: round trip gives %g, want %g", m, i, got, want)
			}
		}
		for slot := range SpeciesInMode(m) {
			for i, want := range wetAero.IntAeroMMR[m][slot].Elements {
				if got := back.IntAeroMMR[m][slot].Elements[i]; different(got, want, tolerance) {
					t.Fatalf("mode %v slot %d mass %d: round trip gives %g, want %g", m, slot, i, got, want)
				}
			}
		}
	}
	for g := Gas(0); g < NumGases; g++ {
		for i, want := range wetAero.GasMMR[g].Elements {
			if got := back.GasMMR[g].Elements[i]; different(got, want, tolerance) {
				t.Fatalf("gas %v value %d: round trip gives %g, want %g", g, i, got, want)
			}
		}
	}
}

// Nil destination slots are skipped rather than written.
func TestAerosolConversionSkipsNil(t *testing.T) {
	wet := testWetAtmosphere()
	wetAero := testAerosolState()
	dryAero := testAerosolState()
	dryAero.IntAeroMMR[ModeAitken][0] = nil
	dryAero.GasMMR[GasDMS] = nil
	for ci := 0; ci < testNcol; ci++ {
		ComputeDryAerosolMixingRatios(wet, wetAero, dryAero, ci)
	}
	if dryAero.IntAeroMMR[ModeAitken][0] != nil {
		t.Error("nil mass slot was allocated by conversion")
	}
	if dryAero.GasMMR[GasDMS] != nil {
		t.Error("nil gas slot was allocated by conversion")
	}
}

func TestEachColumn(t *testing.T) {
	const ncol = 137
	visits := make([]int, ncol)
	var mx sync.Mutex
	EachColumn(ncol, func(ci int) {
		mx.Lock()
		visits[ci]++
		mx.Unlock()
	})
	for ci, n := range visits {
		if n != 1 {
			t.Errorf("column %d visited %d times, want 1", ci, n)
		}
	}
}
