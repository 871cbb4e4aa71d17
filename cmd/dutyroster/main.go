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

// The dutyroster command reads a monthly on-call preference worksheet,
// solves the assignment with CP-SAT, and writes the solved roster back out
// to a new worksheet.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/golang/glog"

	"github.com/onhall/dutyroster/roster"
	"github.com/onhall/dutyroster/roster/xlsx"
)

var (
	inPath    = flag.String("in", "", "path to the input .xlsx preference worksheet")
	sheet     = flag.String("sheet", "Sheet1", "name of the worksheet to read")
	outPath   = flag.String("out", "roster_out.xlsx", "path to write the solved roster")
	exempt    = flag.String("exempt_day_to_night", "", "comma-separated names exempt from the day-then-next-night rest rule")
	timeLimit = flag.Float64("max_time_seconds", 0, "solver time limit in seconds, 0 for no limit")
)

func run() error {
	if *inPath == "" {
		return fmt.Errorf("dutyroster: -in is required")
	}

	table, err := xlsx.ReadTable(*inPath, *sheet)
	if err != nil {
		return err
	}

	opts := roster.DefaultOptions()
	opts.MaxTimeInSeconds = *timeLimit
	for _, name := range strings.Split(*exempt, ",") {
		if name = strings.TrimSpace(name); name != "" {
			opts.ExemptFromDayToNight[name] = true
		}
	}

	model, err := roster.ParseTable(table, opts)
	if err != nil {
		return err
	}

	result, err := roster.Solve(model)
	if err != nil {
		if _, ok := err.(*roster.Infeasible); ok {
			fmt.Println("最適解が見つかりませんでした")
			os.Exit(1)
		}
		return err
	}

	glog.Infof("dutyroster: solved, objective=%v covered=%d pref_sum=%d", result.Objective, result.CoveredCount, result.PrefSum)

	grid := roster.BuildGrid(table, model, result)
	if err := xlsx.WriteGrid(*outPath, grid); err != nil {
		return err
	}
	fmt.Printf("roster written to %s\n", *outPath)
	return nil
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		glog.Exitf("dutyroster: %v", err)
	}
}
