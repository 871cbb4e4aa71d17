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

import (
	"fmt"

	log "github.com/golang/glog"
	"github.com/google/or-tools/ortools/sat/go/cpmodel"
)

// Builder wraps a cpmodel.Builder together with the parsed Model and the
// assignment matrix x[p][s], and emits the hard constraints C1-C9 of
// spec.md §4.3. It mirrors the one-constraint-family-per-method style of
// ortools/sat/samples/nurses_sat.go.
type Builder struct {
	cp    *cpmodel.Builder
	model *Model

	// x[p][s] is valid only for s in [model.FirstCurrentSlot, len(model.Slots)).
	x [][]cpmodel.BoolVar
}

// NewBuilder creates the CP-SAT model's Boolean assignment variables for
// every person and every current-month slot. Carry-over slots never get
// a variable: the assignment matrix x is defined over current-month
// slots only (spec.md §3).
func NewBuilder(m *Model) *Builder {
	cp := cpmodel.NewCpModelBuilder()
	x := make([][]cpmodel.BoolVar, len(m.People))
	first, last := m.currentSlotRange()
	for p := range m.People {
		x[p] = make([]cpmodel.BoolVar, len(m.Slots))
		for s := first; s < last; s++ {
			x[p][s] = cp.NewBoolVar().WithName(fmt.Sprintf("x_p%d_s%d", p, s))
		}
	}
	return &Builder{cp: cp, model: m, x: x}
}

// AddAllConstraints emits C1 through C9 in order.
func (b *Builder) AddAllConstraints() {
	b.addForbiddenCells()     // C1
	b.addRotationCells()      // C2
	b.addSlotCoverage()       // C3
	b.addRequiredShiftCount() // C4
	b.addSevenDayRest()       // C5
	b.addAdjacentSlotRules()  // C6
	b.addSixDayDayRest()      // C7
	b.addCarryoverRest()      // C8
	b.addPostRotationRest()   // C9
}

func (b *Builder) pref(p, s int) PrefCode { return b.model.Pref[p][s] }

// addForbiddenCells is C1: pref[p][s]=FORBID ⟹ x[p][s]=0.
func (b *Builder) addForbiddenCells() {
	zero := b.cp.NewConstant(0)
	first, last := b.model.currentSlotRange()
	for p := range b.model.People {
		for s := first; s < last; s++ {
			if b.pref(p, s) == Forbid {
				b.cp.AddEquality(b.x[p][s], zero)
			}
		}
	}
}

// addRotationCells is C2: pref[p][s]=ROTATION ⟹ x[p][s]=1.
func (b *Builder) addRotationCells() {
	one := b.cp.NewConstant(1)
	first, last := b.model.currentSlotRange()
	for p := range b.model.People {
		for s := first; s < last; s++ {
			if b.pref(p, s) == Rotation {
				b.cp.AddEquality(b.x[p][s], one)
			}
		}
	}
}

// addSlotCoverage is C3: for every current-month slot with weekday != Thu,
// exactly one non-rotation person is assigned.
func (b *Builder) addSlotCoverage() {
	first, last := b.model.currentSlotRange()
	for s := first; s < last; s++ {
		if b.model.Slots[s].Weekday == Thu {
			continue
		}
		var assignees []cpmodel.BoolVar
		for p := range b.model.People {
			if b.pref(p, s) != Rotation {
				assignees = append(assignees, b.x[p][s])
			}
		}
		b.cp.AddExactlyOne(assignees...)
	}
}

// addRequiredShiftCount is C4: each person's non-rotation assignments sum
// to their required shift count.
func (b *Builder) addRequiredShiftCount() {
	first, last := b.model.currentSlotRange()
	for p, person := range b.model.People {
		sum := cpmodel.NewLinearExpr()
		for s := first; s < last; s++ {
			if b.pref(p, s) != Rotation {
				sum.Add(b.x[p][s])
			}
		}
		b.cp.AddEquality(sum, b.cp.NewConstant(int64(person.RequiredShifts)))
	}
}

// eligibleForRestPair reports whether the pair (s1, s2) should be
// constrained by the general rest rules C5/C7 for person p: neither
// endpoint may be that person's pre-declared rotation. Rotation
// assignments are exempted from the general rest windows and instead
// get their own, NIGHT-only window in C9 (spec.md §4.3, §9 Open
// Question: the spec's own C5 prose is self-described as "refined" and
// ambiguous on this point; DESIGN.md records the resolution).
func (b *Builder) eligibleForRestPair(p, s1, s2 int) bool {
	return b.pref(p, s1) != Rotation && b.pref(p, s2) != Rotation
}

// addSevenDayRest is C5: no two duties by the same person within a
// 7-day window unless both are DAY shifts.
func (b *Builder) addSevenDayRest() {
	days := b.model.Days
	first, last := b.model.currentSlotRange()
	for s1 := first; s1 < last; s1++ {
		d1 := days.DayOf(s1)
		if d1 == days.LastDay {
			continue
		}
		d2Max := d1 + 6
		if d2Max > days.LastDay {
			d2Max = days.LastDay
		}
		for d2 := d1 + 1; d2 <= d2Max; d2++ {
			for _, s2 := range days.Groups[days.absoluteIndex(d2)] {
				if b.model.Slots[s1].Kind != Night && b.model.Slots[s2].Kind != Night {
					continue
				}
				for p := range b.model.People {
					if b.eligibleForRestPair(p, s1, s2) {
						b.cp.AddLessOrEqual(cpmodel.NewLinearExpr().Add(b.x[p][s1]).Add(b.x[p][s2]), b.cp.NewConstant(1))
					}
				}
			}
		}
	}
}

// addSixDayDayRest is C7: no two DAY duties by the same person within a
// 6-day window.
func (b *Builder) addSixDayDayRest() {
	days := b.model.Days
	first, last := b.model.currentSlotRange()
	for s1 := first; s1 < last; s1++ {
		if b.model.Slots[s1].Kind != Day {
			continue
		}
		d1 := days.DayOf(s1)
		if d1 == days.LastDay {
			continue
		}
		d2Max := d1 + 5
		if d2Max > days.LastDay {
			d2Max = days.LastDay
		}
		for d2 := d1 + 1; d2 <= d2Max; d2++ {
			for _, s2 := range days.Groups[days.absoluteIndex(d2)] {
				if b.model.Slots[s2].Kind != Day {
					continue
				}
				for p := range b.model.People {
					if b.eligibleForRestPair(p, s1, s2) {
						b.cp.AddLessOrEqual(cpmodel.NewLinearExpr().Add(b.x[p][s1]).Add(b.x[p][s2]), b.cp.NewConstant(1))
					}
				}
			}
		}
	}
}

// addAdjacentSlotRules is C6: the three pairwise rules governing
// consecutive slot columns (s, s+1), both within the current month.
func (b *Builder) addAdjacentSlotRules() {
	first, last := b.model.currentSlotRange()
	one := b.cp.NewConstant(1)
	for s := first; s+1 < last; s++ {
		s1, s2 := s, s+1
		k1, k2 := b.model.Slots[s1].Kind, b.model.Slots[s2].Kind

		if k1 == Night && k2 == Day {
			for p := range b.model.People {
				b.cp.AddLessOrEqual(cpmodel.NewLinearExpr().Add(b.x[p][s1]).Add(b.x[p][s2]), one)
			}
		}

		if k1 == Day && k2 == Night {
			for p, person := range b.model.People {
				if person.ExemptDayToNight {
					continue
				}
				b.cp.AddLessOrEqual(cpmodel.NewLinearExpr().Add(b.x[p][s1]).Add(b.x[p][s2]), one)
			}
		}

		if k1 == Day {
			for p := range b.model.People {
				bothWant := b.pref(p, s1) == Want && b.pref(p, s2) == Want
				if bothWant {
					continue
				}
				b.cp.AddLessOrEqual(cpmodel.NewLinearExpr().Add(b.x[p][s1]).Add(b.x[p][s2]), one)
			}
		}
	}
}

// addCarryoverRest is C8: no night duty within six days of a
// previous-month duty recorded in the carry-over window, unless the new
// slot is itself a pre-declared rotation.
func (b *Builder) addCarryoverRest() {
	days := b.model.Days
	first, last := b.model.currentSlotRange()
	zero := b.cp.NewConstant(0)
	warnedInsufficientCarryover := false

	for s1 := first; s1 < last; s1++ {
		if b.model.Slots[s1].Kind != Night {
			continue
		}
		d1 := days.DayOf(s1)
		if d1 > 5 {
			continue
		}
		for d := d1 - 6; d <= d1-1; d++ {
			abs := days.absoluteIndex(d)
			if abs < 0 || abs >= len(days.Groups) {
				if !warnedInsufficientCarryover {
					log.Warningf("roster: carry-over window references day %d before the start of the input; skipping that constraint (insufficient carry-over data)", d)
					warnedInsufficientCarryover = true
				}
				continue
			}
			for _, s2 := range days.Groups[abs] {
				if s2 >= first {
					// Not a carry-over slot; C5/C7 already govern
					// rest windows entirely within the current month.
					continue
				}
				for p := range b.model.People {
					if b.pref(p, s2) >= Want && b.pref(p, s1) != Rotation {
						b.cp.AddEquality(b.x[p][s1], zero)
					}
				}
			}
		}
	}
}

// addPostRotationRest is C9: after a pre-declared rotation, no NIGHT
// duty for that person within the following six calendar days.
func (b *Builder) addPostRotationRest() {
	days := b.model.Days
	first, last := b.model.currentSlotRange()
	zero := b.cp.NewConstant(0)

	for p := range b.model.People {
		for s := first; s < last; s++ {
			if b.pref(p, s) != Rotation {
				continue
			}
			d := days.DayOf(s)
			dMax := d + 6
			if dMax > days.LastDay {
				dMax = days.LastDay
			}
			for d2 := d + 1; d2 <= dMax; d2++ {
				for _, sp := range days.Groups[days.absoluteIndex(d2)] {
					if b.model.Slots[sp].Kind != Night {
						continue
					}
					b.cp.AddEquality(b.x[p][sp], zero)
				}
			}
		}
	}
}
