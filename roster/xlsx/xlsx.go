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

// Package xlsx is the reference adapter between roster.Table and an actual
// .xlsx worksheet, using excelize. It is deliberately kept separate from
// package roster so that the core model and solver never depend on a
// spreadsheet library directly (spec.md §1, §6).
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/onhall/dutyroster/roster"
)

// ReadTable opens the .xlsx file at path and extracts sheet into a
// roster.Table of raw cell strings; roster.ParseTable's decode functions
// already parse numeric strings (spec.md §4.1's Cell contract).
func ReadTable(path, sheet string) (roster.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("xlsx: opening %q: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx: reading sheet %q: %w", sheet, err)
	}

	t := make(roster.Table, len(rows))
	for r, row := range rows {
		t[r] = make([]roster.Cell, len(row))
		for c, v := range row {
			if v == "" {
				continue
			}
			t[r][c] = v
		}
	}
	return t, nil
}

// WriteGrid writes grid (the output of roster.BuildGrid) to a new sheet
// named "Roster" in a fresh workbook at path, one grid row per worksheet
// row starting at A1 (spec.md §6).
func WriteGrid(path string, grid [][]string) error {
	f := excelize.NewFile()
	const sheet = "Roster"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("xlsx: creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("xlsx: removing default sheet: %w", err)
	}

	for r, row := range grid {
		for c, v := range row {
			axis, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("xlsx: computing cell address: %w", err)
			}
			if err := f.SetCellValue(sheet, axis, v); err != nil {
				return fmt.Errorf("xlsx: writing cell %s: %w", axis, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx: saving %q: %w", path, err)
	}
	return nil
}
