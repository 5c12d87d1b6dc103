/* ippclient - IPP client library and command-line tool
 *
 * Copyright (C) 2020 and up by Alexander Pevzner (pzz@apevzner.com)
 * See LICENSE for license terms and conditions
 *
 * Tests for printer name patterns
 */

package main

import (
	"testing"
)

// Test printer name matching
func TestNameMatch(t *testing.T) {
	type testData struct {
		name, pattern string
		weight        int
	}

	tests := []testData{
		{"Laser", "laser", 5},
		{"Laser", "LASER", 5},
		{"Laser", "lase", -1},
		{"Laser", "L*", 1},
		{"Laser", "*", 0},
		{"Laser", "*er", 2},
		{"Laser", "L?s*r", 3},
		{"Laser", "L??er", 3},
		{"Laser", "L???er", -1},
		{"HP_LaserJet_M402", "hp_*_m402", 8},
		{"HP_LaserJet_M402", "*jet*", 3},
		{"a*b", `a\*b`, 3},
		{"axb", `a\*b`, -1},
		{"", "*", 0},
		{"", "?", -1},
		{"Печать", "печ*", 3},
	}

	for _, test := range tests {
		w := nameMatch(test.name, test.pattern)
		if w != test.weight {
			t.Errorf("nameMatch(%q, %q): expected %d, present %d",
				test.name, test.pattern, test.weight, w)
		}
	}
}

// Test selection of the printer to save
func TestChoosePrinter(t *testing.T) {
	printers := []string{"office-laser", "office-inkjet", "lab-laser"}

	type testData struct {
		pattern string
		index   int
	}

	tests := []testData{
		{"", 0},
		{"*inkjet", 1},
		{"lab*", 2},
		{"*laser", 0},
		{"office-laser", 0},
		{"*-laser", 0},
		{"lab-?aser", 2},
		{"plotter", -1},
	}

	for _, test := range tests {
		i := choosePrinter(len(printers), func(i int) string {
			return printers[i]
		}, test.pattern)
		if i != test.index {
			t.Errorf("%q: expected %d, present %d",
				test.pattern, test.index, i)
		}
	}
}
