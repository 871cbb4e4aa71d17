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

import "fmt"

// InputError reports a malformed worksheet: a missing header row or
// marker, or an exempt person name that matches no person row
// (spec.md §7).
type InputError struct {
	Msg string
}

func (e *InputError) Error() string { return "roster: invalid input: " + e.Msg }

// Infeasible reports that the solver proved the model has no feasible
// assignment, or returned a status other than OPTIMAL/FEASIBLE
// (spec.md §7).
type Infeasible struct {
	// Status is the CP-SAT status string, e.g. "INFEASIBLE" or "UNKNOWN".
	Status string
}

func (e *Infeasible) Error() string {
	return fmt.Sprintf("roster: no feasible assignment (solver status %s)", e.Status)
}

// SolverError wraps a failure of the underlying CP-SAT solver invocation
// itself, as opposed to a proof of infeasibility (spec.md §7).
type SolverError struct {
	Err error
}

func (e *SolverError) Error() string { return fmt.Sprintf("roster: solver error: %v", e.Err) }
func (e *SolverError) Unwrap() error { return e.Err }
