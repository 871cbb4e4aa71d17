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
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/satparameters"
	"google.golang.org/protobuf/proto"
)

// Result is the materialized outcome of a successful solve: the
// assignment grid and the decomposed objective score (spec.md §4.4).
type Result struct {
	// Assignment[p][s] mirrors x[p][s] for s in the current-month range,
	// indexed locally from 0 (unlike Model.Pref, which is indexed over
	// the full carry-over+current range).
	Assignment [][]bool

	// CoveredCount is the number of people who received at least one
	// WANT slot; PrefSum is the sum of pref[p][s] over non-rotation
	// assignments. Objective == CoveredCount*CoverageWeight +
	// PrefSum*PrefWeight (CoveredCount*1000 + PrefSum with the defaults).
	CoveredCount int64
	PrefSum      int64
	Objective    float64
	Status       string
}

// addObjective builds the two-tier weighted objective of spec.md §4.4:
// W_prefs * Σ pref[p][s]*x[p][s] (non-rotation) + W_coverage * Σ covered[p],
// where covered[p] is channeled to "this person was assigned at least one
// WANT slot" using the reification pattern of
// ortools/sat/samples/channeling_sample_sat.go.
func (b *Builder) addObjective() (assignedWant []cpmodel.IntVar, covered []cpmodel.BoolVar) {
	opts := b.model.Options
	first, last := b.model.currentSlotRange()
	numCurrent := int64(last - first)

	obj := cpmodel.NewLinearExpr()
	assignedWant = make([]cpmodel.IntVar, len(b.model.People))
	covered = make([]cpmodel.BoolVar, len(b.model.People))

	for p := range b.model.People {
		wantSum := cpmodel.NewLinearExpr()
		for s := first; s < last; s++ {
			code := b.pref(p, s)
			if code == Rotation {
				continue
			}
			obj.AddTerm(b.x[p][s], opts.PrefWeight*int64(code))
			if code == Want {
				wantSum.Add(b.x[p][s])
			}
		}

		aw := b.cp.NewIntVar(0, numCurrent).WithName(fmt.Sprintf("assigned_want_%d", p))
		b.cp.AddEquality(aw, wantSum)
		assignedWant[p] = aw

		cov := b.cp.NewBoolVar().WithName(fmt.Sprintf("covered_%d", p))
		b.cp.AddGreaterOrEqual(aw, b.cp.NewConstant(1)).OnlyEnforceIf(cov)
		b.cp.AddEquality(aw, b.cp.NewConstant(0)).OnlyEnforceIf(cov.Not())
		covered[p] = cov

		obj.AddTerm(cov, opts.CoverageWeight)
	}

	b.cp.Maximize(obj)
	return assignedWant, covered
}

// Solve builds the full model (constraints + objective), invokes CP-SAT
// with large-neighborhood-search-only mode enabled (spec.md §4.4), and
// extracts the assignment. It returns *Infeasible if the solver proves
// no feasible assignment exists, or *SolverError if the solver itself
// fails.
func Solve(m *Model) (*Result, error) {
	b := NewBuilder(m)
	b.AddAllConstraints()
	_, covered := b.addObjective()

	cpModel, err := b.cp.Model()
	if err != nil {
		return nil, &SolverError{Err: fmt.Errorf("building CP model: %w", err)}
	}

	params := &sppb.SatParameters{
		UseLnsOnly: proto.Bool(true),
	}
	if m.Options.MaxTimeInSeconds > 0 {
		params.MaxTimeInSeconds = proto.Float64(m.Options.MaxTimeInSeconds)
	}

	log.Infof("roster: solving model with %d people and %d current-month slots", len(m.People), m.numCurrentSlots())
	response, err := cpmodel.SolveCpModelWithParameters(cpModel, params)
	if err != nil {
		return nil, &SolverError{Err: err}
	}

	status := response.GetStatus()
	if status != cmpb.CpSolverStatus_OPTIMAL && status != cmpb.CpSolverStatus_FEASIBLE {
		log.Warningf("roster: solve failed with status %v", status)
		return nil, &Infeasible{Status: status.String()}
	}

	first, last := m.currentSlotRange()
	assignment := make([][]bool, len(m.People))
	var coveredCount, prefSum int64
	for p := range m.People {
		assignment[p] = make([]bool, last-first)
		for s := first; s < last; s++ {
			v := cpmodel.SolutionBooleanValue(response, b.x[p][s])
			assignment[p][s-first] = v
			if v && b.pref(p, s) != Rotation {
				prefSum += int64(b.pref(p, s))
			}
		}
		if cpmodel.SolutionBooleanValue(response, covered[p]) {
			coveredCount++
		}
	}

	log.Infof("roster: solved, status=%v objective=%v covered=%d pref_sum=%d", status, response.GetObjectiveValue(), coveredCount, prefSum)

	return &Result{
		Assignment:   assignment,
		CoveredCount: coveredCount,
		PrefSum:      prefSum,
		Objective:    response.GetObjectiveValue(),
		Status:       status.String(),
	}, nil
}
