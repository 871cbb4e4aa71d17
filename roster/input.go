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

import "strconv"

// Cell is one entry of an extracted worksheet table: a string, a number,
// or an empty cell (nil). It deliberately does not depend on any
// spreadsheet library — component A consumes a Table that has already
// been extracted by an external reader (spec.md §1, §6).
type Cell any

// Table is a rectangular, already-extracted worksheet: row 0 carries the
// "past"/"start"/"end" column markers, rows 1-3 carry the weekday/day
// number/shift-type headers, column 0 carries required-shift counts, and
// column 1 carries names delimited by "start"/"end" markers
// (spec.md §4.1, §6).
type Table [][]Cell

const (
	requiredShiftsColumn = 0
	namesColumn          = 1
	weekdayRow           = 1
	dayNumberRow         = 2
	shiftTypeRow         = 3
)

func cellString(c Cell) string {
	switch v := c.(type) {
	case string:
		return v
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}

func cellNumber(c Cell) (float64, bool) {
	switch v := c.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// decodePref maps a preference cell to its PrefCode (spec.md §4.1).
func decodePref(c Cell) PrefCode {
	switch cellString(c) {
	case "×":
		return Forbid
	case "〇":
		return Want
	case "輪番":
		return Rotation
	default:
		// " ", the ideographic space "　", blank, and anything else
		// unrecognized all decode to None.
		return None
	}
}

// decodeShiftKind maps a shift-type cell to its ShiftKind (spec.md §4.1).
// Anything other than "昼" is treated as NIGHT, including an empty cell.
func decodeShiftKind(c Cell) ShiftKind {
	if cellString(c) == "昼" {
		return Day
	}
	return Night
}

func decodeWeekday(c Cell) Weekday {
	return Weekday(cellString(c))
}

// decodeRequiredShifts reads the numeric required-shift count; a
// non-numeric cell decodes to 0 (spec.md §4.1).
func decodeRequiredShifts(c Cell) int {
	f, ok := cellNumber(c)
	if !ok {
		return 0
	}
	return int(f)
}

// decodeDayNumber reads the integer day number of a slot; a non-numeric
// cell decodes to 0 (spec.md §4.2).
func decodeDayNumber(c Cell) int {
	f, ok := cellNumber(c)
	if !ok {
		return 0
	}
	return int(f)
}

// ParseTable parses an extracted worksheet table into a Model, locating
// the four markers of spec.md §4.1 and decoding the preference matrix,
// slot headers, and required-shift counts. It returns an *InputError if
// any marker is missing or if a name in opts.ExemptFromDayToNight matches
// no person row.
func ParseTable(t Table, opts Options) (*Model, error) {
	nameStart, nameEnd, err := findNameRange(t)
	if err != nil {
		return nil, err
	}
	pastCol, startCol, endCol, err := findColumnMarkers(t)
	if err != nil {
		return nil, err
	}

	people := make([]Person, 0, nameEnd-nameStart)
	for row := nameStart; row < nameEnd; row++ {
		name := cellString(rowCell(t, row, namesColumn))
		people = append(people, Person{
			Name:             name,
			RequiredShifts:   decodeRequiredShifts(rowCell(t, row, requiredShiftsColumn)),
			ExemptDayToNight: opts.isExempt(name),
		})
	}
	for name, exempt := range opts.ExemptFromDayToNight {
		found := false
		for _, p := range people {
			if p.Name == name {
				found = true
				break
			}
		}
		if exempt && !found {
			return nil, &InputError{Msg: "exempt person " + strconv.Quote(name) + " not found in the names column"}
		}
	}

	numSlots := endCol - pastCol
	slots := make([]Slot, numSlots)
	for col := pastCol; col < endCol; col++ {
		i := col - pastCol
		slots[i] = Slot{
			DayNumber:      decodeDayNumber(rowCell(t, dayNumberRow, col)),
			Kind:           decodeShiftKind(rowCell(t, shiftTypeRow, col)),
			Weekday:        decodeWeekday(rowCell(t, weekdayRow, col)),
			InCurrentMonth: col >= startCol,
		}
	}

	pref := make([][]PrefCode, len(people))
	for pi, row := 0, nameStart; row < nameEnd; pi, row = pi+1, row+1 {
		pref[pi] = make([]PrefCode, numSlots)
		for col := pastCol; col < endCol; col++ {
			pref[pi][col-pastCol] = decodePref(rowCell(t, row, col))
		}
	}

	m := &Model{
		People:           people,
		Slots:            slots,
		Pref:             pref,
		FirstCurrentSlot: startCol - pastCol,
		SourcePastColumn: pastCol,
		Options:          opts,
	}
	m.Days = GroupDays(m)
	return m, nil
}

func rowCell(t Table, row, col int) Cell {
	if row < 0 || row >= len(t) {
		return nil
	}
	r := t[row]
	if col < 0 || col >= len(r) {
		return nil
	}
	return r[col]
}

// findNameRange locates the "start"/"end" markers in the names column,
// returning the inclusive-exclusive row range [start, end) of people
// rows (spec.md §4.1, §6).
func findNameRange(t Table) (start, end int, err error) {
	foundStart, foundEnd := false, false
	for row := range t {
		switch cellString(rowCell(t, row, namesColumn)) {
		case "start":
			start = row + 1
			foundStart = true
		case "end":
			end = row
			foundEnd = true
		}
	}
	if !foundStart || !foundEnd {
		return 0, 0, &InputError{Msg: "missing 'start' or 'end' marker in the names column"}
	}
	return start, end, nil
}

// findColumnMarkers locates the "past"/"start"/"end" markers on row 0,
// delimiting the carry-over and current-month column ranges (spec.md
// §4.1, §6).
func findColumnMarkers(t Table) (pastCol, startCol, endCol int, err error) {
	foundPast, foundStart, foundEnd := false, false, false
	if len(t) == 0 {
		return 0, 0, 0, &InputError{Msg: "table has no header row"}
	}
	for col := range t[0] {
		switch cellString(rowCell(t, 0, col)) {
		case "past":
			pastCol = col
			foundPast = true
		case "start":
			startCol = col
			foundStart = true
		case "end":
			endCol = col + 1
			foundEnd = true
		}
	}
	if !foundPast || !foundStart || !foundEnd {
		return 0, 0, 0, &InputError{Msg: "missing 'past', 'start', or 'end' marker in row 0"}
	}
	return pastCol, startCol, endCol, nil
}
