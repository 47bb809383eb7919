// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import (
	"strings"
	"testing"
)

func TestSplitBidiRunsEmpty(t *testing.T) {
	if runs := splitBidiRuns("", DirectionLTR); runs != nil {
		t.Errorf("splitBidiRuns(\"\") = %v, want nil", runs)
	}
}

func TestSplitBidiRunsLTROnly(t *testing.T) {
	runs := splitBidiRuns("hello world", DirectionLTR)
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1: %v", len(runs), runs)
	}
	if runs[0].text != "hello world" || runs[0].dir != DirectionLTR {
		t.Errorf("run = %+v, want full LTR text", runs[0])
	}
}

func TestSplitBidiRunsRTLOnly(t *testing.T) {
	const hebrew = "שלום"
	runs := splitBidiRuns(hebrew, DirectionRTL)
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1: %v", len(runs), runs)
	}
	if runs[0].text != hebrew || runs[0].dir != DirectionRTL {
		t.Errorf("run = %+v, want full RTL text", runs[0])
	}
}

func TestSplitBidiRunsMixed(t *testing.T) {
	const mixed = "abc שלום def"
	runs := splitBidiRuns(mixed, DirectionLTR)

	// Runs reassemble the input in logical order.
	var rebuilt strings.Builder
	for _, r := range runs {
		rebuilt.WriteString(r.text)
	}
	if rebuilt.String() != mixed {
		t.Errorf("runs reassemble to %q, want %q", rebuilt.String(), mixed)
	}

	if len(runs) < 3 {
		t.Fatalf("got %d runs, want at least 3: %v", len(runs), runs)
	}
	if runs[0].dir != DirectionLTR || !strings.Contains(runs[0].text, "abc") {
		t.Errorf("first run = %+v, want LTR containing abc", runs[0])
	}
	foundRTL := false
	for _, r := range runs {
		if r.dir == DirectionRTL {
			foundRTL = true
			if !strings.Contains(r.text, "שלום") {
				t.Errorf("RTL run %q does not hold the Hebrew text", r.text)
			}
		}
	}
	if !foundRTL {
		t.Error("no RTL run found in mixed text")
	}
}
