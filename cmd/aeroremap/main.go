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

// Command aeroremap validates offline-generated horizontal remap
// files before they are used in a simulation.
package main

import (
	"fmt"
	"math"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/spatialmodel/aeroremap/remap"
)

var (
	nRanks  int
	verbose bool
)

var root = &cobra.Command{
	Use:   "aeroremap",
	Short: "aeroremap works with horizontal remap coefficient files.",
	Long: `aeroremap works with the sparse horizontal remap coefficient files
(variables row, col and S over dimension n_s) used to redistribute
gridded data between model grids.`,
}

var checkCmd = &cobra.Command{
	Use:   "check [remap file]",
	Short: "Check a remap file for weight conservation.",
	Long: `check loads the given remap file across a group of in-process ranks,
dealing the file's target DOFs round-robin, verifies every resulting
remap segment, and applies the map to a uniform source field to
measure per-DOF conservation error.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return check(args[0])
	},
}

func init() {
	checkCmd.Flags().IntVar(&nRanks, "ranks", 4, "number of in-process ranks to load the file with")
	checkCmd.Flags().BoolVar(&verbose, "verbose", false, "print the loaded maps")
	root.AddCommand(checkCmd)
	pflag.CommandLine.AddFlagSet(root.PersistentFlags())
}

// targetDOFs reads the file's full row variable and returns its
// distinct target DOF ids in order of first appearance.
func targetDOFs(filename string) ([]int, error) {
	r, err := remap.OpenCDF(filename)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	ns, err := r.DimLen("n_s")
	if err != nil {
		return nil, err
	}
	indices := make([]int, ns)
	for i := range indices {
		indices[i] = i
	}
	rows, err := r.ReadInts("row", indices)
	if err != nil {
		return nil, err
	}
	seen := make(map[int]bool)
	var dofs []int
	for _, row := range rows {
		if !seen[row] {
			seen[row] = true
			dofs = append(dofs, row)
		}
	}
	return dofs, nil
}

func check(filename string) error {
	dofs, err := targetDOFs(filename)
	if err != nil {
		return err
	}
	minDOF := dofs[0]
	for _, d := range dofs {
		if d < minDOF {
			minDOF = d
		}
	}
	log.WithFields(log.Fields{
		"file":    filename,
		"targets": len(dofs),
		"ranks":   nRanks,
	}).Info("checking remap file")

	comms := remap.NewGroup(nRanks)
	errs := make([]error, nRanks)
	worst := make([]float64, nRanks)
	var wg sync.WaitGroup
	wg.Add(nRanks)
	for rank := 0; rank < nRanks; rank++ {
		go func(rank int) {
			defer wg.Done()
			errs[rank] = func() error {
				m := remap.NewMap(comms[rank], filename)
				var owned []int
				for i := rank; i < len(dofs); i += nRanks {
					owned = append(owned, dofs[i])
				}
				if len(owned) > 0 {
					m.SetDOFIDs(owned, minDOF)
				}
				r, err := remap.OpenCDF(filename)
				if err != nil {
					return err
				}
				defer r.Close()
				if err := m.SetSegmentsFromFile(r); err != nil {
					return err
				}
				if len(owned) == 0 {
					return nil
				}
				if err := m.SetUniqueSourceDOFs(); err != nil {
					return err
				}
				if err := m.Check(); err != nil {
					return err
				}
				if verbose {
					m.Print(os.Stdout)
				}
				// A remap of a uniform field must reproduce it; the
				// deviation is the conservation error.
				source := make([]float64, len(m.UniqueSourceDOFs()))
				for i := range source {
					source[i] = 1
				}
				target := make([]float64, m.NumDOFs())
				m.Apply(source, target)
				for _, v := range target {
					if e := math.Abs(v - 1); e > worst[rank] {
						worst[rank] = e
					}
				}
				return nil
			}()
		}(rank)
	}
	wg.Wait()

	failed := false
	maxErr := 0.0
	for rank := 0; rank < nRanks; rank++ {
		if errs[rank] != nil {
			failed = true
			log.WithField("rank", rank).Error(errs[rank])
		}
		if worst[rank] > maxErr {
			maxErr = worst[rank]
		}
	}
	if failed {
		return fmt.Errorf("remap file %s failed validation", filename)
	}
	log.WithField("max error", maxErr).Info("remap file passed validation")
	return nil
}

func main() {
	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}
