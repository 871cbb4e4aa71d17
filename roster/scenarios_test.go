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

import "testing"

// threeNightModel builds the shared skeleton of scenarios 1-2: two people
// and three NIGHT slots on distinct Monday calendar days, A wanting slot 0
// and B wanting slot 2.
func threeNightModel(reqA, reqB int) *Model {
	m := &Model{
		People: []Person{
			{Name: "A", RequiredShifts: reqA},
			{Name: "B", RequiredShifts: reqB},
		},
		Slots: []Slot{
			{DayNumber: 1, Kind: Night, Weekday: Mon, InCurrentMonth: true},
			{DayNumber: 2, Kind: Night, Weekday: Mon, InCurrentMonth: true},
			{DayNumber: 3, Kind: Night, Weekday: Mon, InCurrentMonth: true},
		},
		Pref: [][]PrefCode{
			{Want, None, None},
			{None, None, Want},
		},
		FirstCurrentSlot: 0,
		Options:          DefaultOptions(),
	}
	m.Days = GroupDays(m)
	return m
}

// Scenario 1 (spec.md §8): two required shifts cannot cover three
// mandatory-coverage slots.
func TestScenario1_InsufficientTotalRequiredShiftsIsInfeasible(t *testing.T) {
	m := threeNightModel(1, 1)

	_, err := Solve(m)
	if _, ok := err.(*Infeasible); !ok {
		t.Fatalf("Solve() error = %v (%T), want *Infeasible", err, err)
	}
}

// Scenario 2 (spec.md §8): even though the required-shift totals now match
// slot coverage (3), A's two required shifts can't both land within the
// three slots because all three are NIGHT and fall inside any 7-day
// window of each other, so C5 forbids every such pair.
func TestScenario2_SevenDayRestMakesTwoNightsForOnePersonInfeasible(t *testing.T) {
	m := threeNightModel(2, 1)

	_, err := Solve(m)
	if _, ok := err.(*Infeasible); !ok {
		t.Fatalf("Solve() error = %v (%T), want *Infeasible", err, err)
	}
}

// Scenario 3 (spec.md §8): a ROTATION assignment is layered on top of, not
// instead of, ordinary slot coverage, and only non-rotation WANT coverage
// counts toward P9's covered_count.
func TestScenario3_RotationLayersOverCoverageAndCountsSeparatelyInObjective(t *testing.T) {
	m := &Model{
		People: []Person{
			{Name: "A", RequiredShifts: 1}, // sole eligible assignee for slot0's coverage.
			{Name: "B", RequiredShifts: 1}, // sole eligible assignee for slot1's coverage.
			{Name: "C", RequiredShifts: 0}, // C's only duty is the rotation.
			{Name: "D", RequiredShifts: 0}, // never assigned; padding to four people.
		},
		Slots: []Slot{
			{DayNumber: 1, Kind: Day, Weekday: Fri, InCurrentMonth: true},
			{DayNumber: 2, Kind: Night, Weekday: Sat, InCurrentMonth: true},
		},
		Pref: [][]PrefCode{
			{None, Forbid},
			{Forbid, Want},
			{Rotation, Forbid},
			{Forbid, Forbid},
		},
		FirstCurrentSlot: 0,
		Options:          DefaultOptions(),
	}
	m.Days = GroupDays(m)

	result, err := Solve(m)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if !result.Assignment[2][0] {
		t.Errorf("Assignment[C][slot0] = false, want true (ROTATION forces assignment)")
	}
	if !result.Assignment[0][0] {
		t.Errorf("Assignment[A][slot0] = false, want true (sole eligible coverage assignee)")
	}
	if !result.Assignment[1][1] {
		t.Errorf("Assignment[B][slot1] = false, want true (sole eligible coverage assignee)")
	}
	if result.CoveredCount != 1 {
		t.Errorf("CoveredCount = %d, want 1 (only B was assigned a WANT slot)", result.CoveredCount)
	}
	wantObjective := float64(result.CoveredCount)*float64(m.Options.CoverageWeight) + float64(result.PrefSum)*float64(m.Options.PrefWeight)
	if result.Objective != wantObjective {
		t.Errorf("Objective = %v, want %v (P9: covered_count*W_coverage + pref_sum*W_prefs)", result.Objective, wantObjective)
	}
}

// Scenario 4 (spec.md §8): a lone Thursday slot imposes no coverage
// requirement, so a person whose required-shift count is 0 is correctly
// left unassigned even though the slot itself is otherwise open (pref
// NONE, not FORBID).
func TestScenario4_ThursdaySlotLeavesNobodyAssignedWhenNobodyIsRequired(t *testing.T) {
	m := &Model{
		People:           []Person{{Name: "Alice", RequiredShifts: 0}},
		Slots:            []Slot{{DayNumber: 1, Kind: Night, Weekday: Thu, InCurrentMonth: true}},
		Pref:             [][]PrefCode{{None}},
		FirstCurrentSlot: 0,
		Options:          DefaultOptions(),
	}
	m.Days = GroupDays(m)

	result, err := Solve(m)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if result.Assignment[0][0] {
		t.Errorf("Assignment[Alice][Thu] = true, want false (req=0, no coverage requirement on Thursday)")
	}
}

// Scenario 5 (spec.md §8): the exempt person may take a WANT-WANT
// DAY-then-NIGHT pair; any other person is forbidden from that same pair
// regardless of preference, because C6's blanket DAY-then-NIGHT
// prohibition for non-exempt people is unconditional on WANT.
func TestScenario5_ExemptPersonMayDoubleWantWantDayThenNight(t *testing.T) {
	m := &Model{
		People: []Person{{Name: "Alice", RequiredShifts: 2, ExemptDayToNight: true}},
		Slots: []Slot{
			{DayNumber: 1, Kind: Day, Weekday: Fri, InCurrentMonth: true},
			{DayNumber: 1, Kind: Night, Weekday: Fri, InCurrentMonth: true},
		},
		Pref:             [][]PrefCode{{Want, Want}},
		FirstCurrentSlot: 0,
		Options:          DefaultOptions(),
	}
	m.Days = GroupDays(m)

	result, err := Solve(m)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if !result.Assignment[0][0] || !result.Assignment[0][1] {
		t.Errorf("Assignment[Alice] = %v, want both true (exempt WANT-WANT day+night double)", result.Assignment[0])
	}
}

func TestScenario5_NonExemptPersonForbiddenFromSameDayThenNightPair(t *testing.T) {
	m := &Model{
		People: []Person{{Name: "Bob", RequiredShifts: 2}},
		Slots: []Slot{
			{DayNumber: 1, Kind: Day, Weekday: Fri, InCurrentMonth: true},
			{DayNumber: 1, Kind: Night, Weekday: Fri, InCurrentMonth: true},
		},
		Pref:             [][]PrefCode{{Want, Want}},
		FirstCurrentSlot: 0,
		Options:          DefaultOptions(),
	}
	m.Days = GroupDays(m)

	_, err := Solve(m)
	if _, ok := err.(*Infeasible); !ok {
		t.Fatalf("Solve() error = %v (%T), want *Infeasible: coverage needs both slots filled but C6 forbids Bob from holding both", err, err)
	}
}

// Scenario 6 (spec.md §8): a carry-over WANT three days before the current
// month forces the person off the first current-month NIGHT slot, even
// though their preference there is NONE (not FORBID).
func TestScenario6_CarryoverWantBlocksEarlyCurrentMonthNight(t *testing.T) {
	m := &Model{
		People: []Person{
			{Name: "A", RequiredShifts: 0},
			{Name: "B", RequiredShifts: 1},
		},
		Slots: []Slot{
			{DayNumber: 27, Kind: Night, InCurrentMonth: false},             // day_of = -3
			{DayNumber: 28, Kind: Night, InCurrentMonth: false},             // day_of = -2
			{DayNumber: 29, Kind: Night, InCurrentMonth: false},             // day_of = -1
			{DayNumber: 1, Kind: Night, Weekday: Fri, InCurrentMonth: true}, // day_of = 0
		},
		Pref: [][]PrefCode{
			{Want, None, None, None},
			{None, None, None, None},
		},
		FirstCurrentSlot: 3,
		Options:          DefaultOptions(),
	}
	m.Days = GroupDays(m)

	result, err := Solve(m)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if result.Assignment[0][0] {
		t.Errorf("Assignment[A][day1-night] = true, want false (C8: blocked by carry-over WANT at day_of=-3)")
	}
	if !result.Assignment[1][0] {
		t.Errorf("Assignment[B][day1-night] = false, want true (sole remaining eligible coverage assignee)")
	}
}
