// Copyright 2010-2024 Google LLC
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package roster

// DayIndex collapses consecutive slot columns that share a calendar day
// number into ordered day-groups, and provides the reverse slot->day
// mapping used throughout the constraint builder.
//
// Groups span the full input (carry-over and current-month slots alike),
// because the carry-over rest rule (C8) needs to walk a handful of
// day-groups backward from an early current-month day into the
// carry-over window. DayOf, however, reports indices relative to the
// first current-month day (day 0), matching spec.md's day_of() — so a
// carry-over slot's DayOf is zero or negative. This is the "day_indices"
// array of the original worksheet tool, generalized the way spec.md §9's
// design note (c) describes it: callers that walk backward past the
// start of the carry-over window get an out-of-range index and must
// treat that as "insufficient carry-over data" (spec.md §7).
type DayIndex struct {
	// Groups[k] lists, in column order, the absolute slot indices
	// belonging to day-group k.
	Groups [][]int

	dayOf             map[int]int
	firstCurrentGroup int

	// LastDay is the largest current-month-relative day index.
	LastDay int
}

// DayOf returns the day index of slot s, relative to the first
// current-month day (day 0). Carry-over slots have DayOf <= 0.
func (d DayIndex) DayOf(s int) int {
	k, ok := d.dayOf[s]
	if !ok {
		panic("roster: DayOf called on a slot outside any day-group")
	}
	return k - d.firstCurrentGroup
}

// absoluteIndex converts a current-month-relative day index back into an
// index into Groups. The result may be out of [0, len(Groups)) when
// relative is too far negative (not enough carry-over history) or too
// far positive (past the end of the month); callers must bounds-check.
func (d DayIndex) absoluteIndex(relative int) int {
	return relative + d.firstCurrentGroup
}

// GroupDays builds the DayIndex over all of m's slots, scanning left to
// right and starting a new group whenever the day number changes from
// the previous slot (spec.md §4.2), then anchors day 0 at the first
// current-month slot.
func GroupDays(m *Model) DayIndex {
	d := DayIndex{dayOf: make(map[int]int)}
	prevDay := -1
	havePrev := false

	for s := range m.Slots {
		day := m.Slots[s].DayNumber
		if !havePrev || day != prevDay {
			d.Groups = append(d.Groups, []int{s})
		} else {
			gi := len(d.Groups) - 1
			d.Groups[gi] = append(d.Groups[gi], s)
		}
		d.dayOf[s] = len(d.Groups) - 1
		prevDay = day
		havePrev = true

		if s == m.FirstCurrentSlot {
			d.firstCurrentGroup = len(d.Groups) - 1
		}
	}

	if n := len(d.Groups); n > 0 {
		d.LastDay = n - 1 - d.firstCurrentGroup
	}

	return d
}
