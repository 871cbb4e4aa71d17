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

// Package roster builds and solves the monthly on-call duty assignment
// model: a boolean assignment matrix over people and shift slots, subject
// to coverage, required-count, and rest-spacing constraints, solved with
// CP-SAT.
package roster

import "fmt"

// PrefCode is a person's preference for working a given slot.
type PrefCode int

const (
	// Forbid means the person must not be assigned to the slot.
	Forbid PrefCode = 0
	// None means the slot is an acceptable second choice.
	None PrefCode = 1
	// Want means the slot is the person's first choice.
	Want PrefCode = 2
	// Rotation means the slot is a pre-declared mandatory assignment,
	// independent of coverage and required-count rules.
	Rotation PrefCode = 3
)

func (p PrefCode) String() string {
	switch p {
	case Forbid:
		return "FORBID"
	case None:
		return "NONE"
	case Want:
		return "WANT"
	case Rotation:
		return "ROTATION"
	default:
		return fmt.Sprintf("PrefCode(%d)", int(p))
	}
}

// ShiftKind is the type of a shift slot.
type ShiftKind int

const (
	// Night is the default shift kind when a slot's type cell is unset or
	// unrecognized.
	Night ShiftKind = iota
	// Day is a daytime shift.
	Day
)

// Weekday is the weekday label printed on a slot's header row.
//
// Thursday detection in C3 (slot coverage) is done against the literal
// "木" (Thursday). If an input uses a different locale's weekday label,
// the Thursday coverage exemption will silently stop applying — see
// spec.md §9 design note (d).
type Weekday string

// Recognized weekday labels, in the order they appear in the source
// worksheet's header row.
const (
	Mon     Weekday = "月"
	Tue     Weekday = "火"
	Wed     Weekday = "水"
	Thu     Weekday = "木"
	Fri     Weekday = "金"
	Sat     Weekday = "土"
	Sun     Weekday = "日"
	Holiday Weekday = "祝"
)

// Person is one row of the roster: a physician with a required shift
// count and an optional exemption from the day-then-next-night rest rule
// (C6).
type Person struct {
	Name             string
	RequiredShifts   int
	ExemptDayToNight bool
}

// Slot is one column of the calendar: a single day or night shift, tagged
// with the calendar day it belongs to and whether it falls within the
// target month.
type Slot struct {
	DayNumber      int
	Kind           ShiftKind
	Weekday        Weekday
	InCurrentMonth bool
}

// Model is the fully parsed, immutable input to the constraint builder:
// people, slots, the preference matrix, day-groups, and solver options.
// It is built once by ParseTable+GroupDays and never mutated afterward.
type Model struct {
	People []Person
	Slots  []Slot

	// Pref[p][s] is the preference code of person p for slot s, indexed
	// over the full slot range (carry-over and current-month slots
	// alike).
	Pref [][]PrefCode

	// FirstCurrentSlot is the index of the first slot with
	// InCurrentMonth == true. Slots before it are carry-over slots from
	// the previous month.
	FirstCurrentSlot int

	// SourcePastColumn is the absolute column index in the original
	// Table that slot 0 came from. It lets the grid codec (BuildGrid)
	// copy the header block back out of the source table by column
	// range, without re-parsing markers.
	SourcePastColumn int

	Days DayIndex

	Options Options
}

// Options configures solver tuning and the one piece of domain
// configuration the original system hard-coded: the set of people exempt
// from the day-then-next-night rest rule (C6). See spec.md §9, design
// note "Exempt-person identification".
type Options struct {
	// ExemptFromDayToNight holds the names of people exempt from the
	// NIGHT(s+1)-after-DAY(s) rest rule. In the source worksheet exactly
	// one person carries this flag; here it is a configurable set.
	ExemptFromDayToNight map[string]bool

	// PrefWeight and CoverageWeight are the two objective weights of
	// spec.md §4.4. Defaults are 1 and 1000 respectively; CoverageWeight
	// must stay large enough to dominate any realistic sum of
	// preference-satisfaction terms (spec.md §4.4, §8 P9).
	PrefWeight     int64
	CoverageWeight int64

	// MaxTimeInSeconds bounds the solve. Zero means no time limit, the
	// spec.md §4.4 default.
	MaxTimeInSeconds float64
}

// DefaultOptions returns the Options spec.md §4.4 describes: weight 1 on
// preferences, weight 1000 on WANT-coverage, no time limit.
func DefaultOptions() Options {
	return Options{
		ExemptFromDayToNight: map[string]bool{},
		PrefWeight:           1,
		CoverageWeight:       1000,
	}
}

func (o Options) isExempt(name string) bool {
	return o.ExemptFromDayToNight != nil && o.ExemptFromDayToNight[name]
}

// numCurrentSlots returns the count of slots in the current month.
func (m *Model) numCurrentSlots() int {
	return len(m.Slots) - m.FirstCurrentSlot
}

// currentSlotRange returns [FirstCurrentSlot, len(Slots)).
func (m *Model) currentSlotRange() (int, int) {
	return m.FirstCurrentSlot, len(m.Slots)
}
