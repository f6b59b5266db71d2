package core

import "testing"

func TestActionDelta(t *testing.T) {
	tests := []struct {
		action     Action
		drow, dcol int
		isMove     bool
	}{
		{ActionUp, -1, 0, true},
		{ActionDown, 1, 0, true},
		{ActionLeft, 0, -1, true},
		{ActionRight, 0, 1, true},
		{ActionRotateCW, 0, 0, false},
		{ActionQuit, 0, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.action.String(), func(t *testing.T) {
			dr, dc := tc.action.Delta()
			if dr != tc.drow || dc != tc.dcol {
				t.Errorf("Delta() = (%d, %d), expected (%d, %d)", dr, dc, tc.drow, tc.dcol)
			}
			if tc.action.IsMove() != tc.isMove {
				t.Errorf("IsMove() = %v, expected %v", tc.action.IsMove(), tc.isMove)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		name  string
		color Color
		ok    bool
	}{
		{"green", ColorGreen, true},
		{"Bright_Green", ColorBrightGreen, true},
		{" grey ", ColorGray, true},
		{"ultraviolet", ColorDefault, false},
	}

	for _, tc := range tests {
		c, ok := ParseColor(tc.name)
		if ok != tc.ok || c != tc.color {
			t.Errorf("ParseColor(%q) = (%v, %v), expected (%v, %v)", tc.name, c, ok, tc.color, tc.ok)
		}
	}
}
