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

// headerRows is the number of fixed header rows copied verbatim into the
// output grid: row 0 (markers), weekday, day number, shift type.
const headerRows = 4

// BuildGrid renders the output grid contract of spec.md §6: the first
// headerRows rows copy the source table's header block restricted to the
// current-month columns, and the following rows are one per person, in
// input order, holding "〇" for a solved non-rotation assignment, "輪番"
// for a pre-declared rotation cell, and "" otherwise (spec.md §4.4).
//
// Cosmetic coloring of the output (the spreadsheet-writer's job per
// spec.md §1) is out of scope; this function produces only the data
// contract.
func BuildGrid(src Table, m *Model, r *Result) [][]string {
	first, last := m.currentSlotRange()
	startCol := m.SourcePastColumn + first
	endCol := m.SourcePastColumn + last
	width := endCol - startCol

	grid := make([][]string, 0, headerRows+len(m.People))
	for row := 0; row < headerRows; row++ {
		line := make([]string, width)
		for col := startCol; col < endCol; col++ {
			line[col-startCol] = cellString(rowCell(src, row, col))
		}
		grid = append(grid, line)
	}

	for p := range m.People {
		line := make([]string, width)
		for s := first; s < last; s++ {
			switch {
			case m.Pref[p][s] == Rotation:
				line[s-first] = "輪番"
			case r.Assignment[p][s-first]:
				line[s-first] = "〇"
			default:
				line[s-first] = ""
			}
		}
		grid = append(grid, line)
	}

	return grid
}
