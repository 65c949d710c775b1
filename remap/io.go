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

package remap

import (
	"fmt"
	"os"

	"github.com/ctessum/cdf"
)

// FileReader is the parallel I/O collaborator contract used by
// SetSegmentsFromFile: dimension lookup plus scatter reads of named
// variables keyed by a caller-supplied flat index list. All calls are
// synchronous; each rank reads only the indices it asks for.
type FileReader interface {
	// DimLen returns the length of the named dimension.
	DimLen(name string) (int, error)

	// ReadInts reads the given flat indices of an integer variable.
	ReadInts(variable string, indices []int) ([]int, error)

	// ReadFloats reads the given flat indices of a real variable.
	ReadFloats(variable string, indices []int) ([]float64, error)

	Close() error
}

// CDFReader reads remap variables from a NetCDF file. Each rank
// should open its own CDFReader for the same file; readers do not
// share state.
type CDFReader struct {
	f  *os.File
	cf *cdf.File
}

// OpenCDF opens the named NetCDF file for reading.
func OpenCDF(filename string) (*CDFReader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("remap: opening file: %v", err)
	}
	cf, err := cdf.Open(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("remap: reading netcdf header of %s: %v", filename, err)
	}
	return &CDFReader{f: f, cf: cf}, nil
}

// DimLen returns the length of the named dimension by scanning the
// dimensions of the file's variables.
func (r *CDFReader) DimLen(name string) (int, error) {
	for _, v := range r.cf.Header.Variables() {
		dims := r.cf.Header.Dimensions(v)
		lens := r.cf.Header.Lengths(v)
		for i, d := range dims {
			if d == name && i < len(lens) {
				return lens[i], nil
			}
		}
	}
	return 0, fmt.Errorf("remap: dimension %s not in file", name)
}

// contiguousRuns splits a sorted-within-runs flat index list into
// (start, length) pairs of contiguous indices, preserving order.
func contiguousRuns(indices []int) (starts, lengths []int) {
	for i := 0; i < len(indices); {
		j := i + 1
		for j < len(indices) && indices[j] == indices[j-1]+1 {
			j++
		}
		starts = append(starts, indices[i])
		lengths = append(lengths, j-i)
		i = j
	}
	return starts, lengths
}

// readRange reads the half-open range [start, start+n) of a 1-D
// variable and returns the raw typed buffer.
func (r *CDFReader) readRange(variable string, start, n int) (interface{}, error) {
	if len(r.cf.Header.Lengths(variable)) == 0 {
		return nil, fmt.Errorf("remap: variable %s not in file", variable)
	}
	rr := r.cf.Reader(variable, []int{start}, []int{start + n})
	buf := rr.Zero(n)
	if _, err := rr.Read(buf); err != nil {
		return nil, fmt.Errorf("remap: reading netcdf variable %s: %v", variable, err)
	}
	return buf, nil
}

// ReadInts reads the given flat indices of an integer variable,
// coalescing contiguous index runs into range reads.
func (r *CDFReader) ReadInts(variable string, indices []int) ([]int, error) {
	out := make([]int, 0, len(indices))
	starts, lengths := contiguousRuns(indices)
	for i := range starts {
		buf, err := r.readRange(variable, starts[i], lengths[i])
		if err != nil {
			return nil, err
		}
		switch b := buf.(type) {
		case []int32:
			for _, v := range b {
				out = append(out, int(v))
			}
		case []int16:
			for _, v := range b {
				out = append(out, int(v))
			}
		case []int8:
			for _, v := range b {
				out = append(out, int(v))
			}
		default:
			return nil, fmt.Errorf("remap: variable %s is not integer-valued (%T)", variable, buf)
		}
	}
	return out, nil
}

// ReadFloats reads the given flat indices of a real variable,
// coalescing contiguous index runs into range reads.
func (r *CDFReader) ReadFloats(variable string, indices []int) ([]float64, error) {
	out := make([]float64, 0, len(indices))
	starts, lengths := contiguousRuns(indices)
	for i := range starts {
		buf, err := r.readRange(variable, starts[i], lengths[i])
		if err != nil {
			return nil, err
		}
		switch b := buf.(type) {
		case []float64:
			out = append(out, b...)
		case []float32:
			for _, v := range b {
				out = append(out, float64(v))
			}
		default:
			return nil, fmt.Errorf("remap: variable %s is not real-valued (%T)", variable, buf)
		}
	}
	return out, nil
}

// Close closes the underlying file.
func (r *CDFReader) Close() error {
	return r.f.Close()
}
