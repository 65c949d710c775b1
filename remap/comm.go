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

import "sync"

// Comm is a rank-collective communicator. All collectives are
// blocking and every rank in the group must call them in the same
// order; a rank that skips a collective deadlocks the others. That is
// a correctness requirement of the loading protocol, not a
// convenience.
type Comm interface {
	// Rank returns this rank's index within the group.
	Rank() int

	// Size returns the number of ranks in the group.
	Size() int

	// AllGatherInt gathers one value from every rank, ordered by rank.
	AllGatherInt(v int) []int

	// AllGatherVInt gathers a variable-length slice from every rank,
	// concatenated in rank order.
	AllGatherVInt(v []int) []int

	// AllReduceMinInt returns the minimum of the values contributed
	// by all ranks.
	AllReduceMinInt(v int) int
}

// group is the shared state behind a set of in-process ranks.
type group struct {
	n int

	mu      sync.Mutex
	cond    *sync.Cond
	arrived int
	phase   int

	ints   []int
	slices [][]int
}

// NewGroup returns n connected communicators for n in-process ranks,
// one per rank index. Each is intended for use by a single goroutine.
func NewGroup(n int) []Comm {
	g := &group{
		n:      n,
		ints:   make([]int, n),
		slices: make([][]int, n),
	}
	g.cond = sync.NewCond(&g.mu)
	comms := make([]Comm, n)
	for i := range comms {
		comms[i] = &rankComm{g: g, rank: i}
	}
	return comms
}

// barrier blocks until every rank in the group has arrived.
func (g *group) barrier() {
	g.mu.Lock()
	phase := g.phase
	g.arrived++
	if g.arrived == g.n {
		g.arrived = 0
		g.phase++
		g.cond.Broadcast()
	} else {
		for g.phase == phase {
			g.cond.Wait()
		}
	}
	g.mu.Unlock()
}

type rankComm struct {
	g    *group
	rank int
}

func (c *rankComm) Rank() int { return c.rank }

func (c *rankComm) Size() int { return c.g.n }

func (c *rankComm) AllGatherInt(v int) []int {
	g := c.g
	g.mu.Lock()
	g.ints[c.rank] = v
	g.mu.Unlock()
	g.barrier()
	out := make([]int, g.n)
	copy(out, g.ints)
	// A second barrier keeps the shared slot from being overwritten
	// by a later collective before every rank has read it.
	g.barrier()
	return out
}

func (c *rankComm) AllGatherVInt(v []int) []int {
	g := c.g
	g.mu.Lock()
	g.slices[c.rank] = v
	g.mu.Unlock()
	g.barrier()
	var out []int
	for _, s := range g.slices {
		out = append(out, s...)
	}
	g.barrier()
	return out
}

func (c *rankComm) AllReduceMinInt(v int) int {
	vals := c.AllGatherInt(v)
	min := vals[0]
	for _, vv := range vals[1:] {
		if vv < min {
			min = vv
		}
	}
	return min
}
