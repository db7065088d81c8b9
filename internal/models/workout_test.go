package models

import "testing"

// TestMuscleGroupValid verifies membership checks for known and unknown groups.
func TestMuscleGroupValid(t *testing.T) {
	for _, g := range MuscleGroups {
		if !g.Valid() {
			t.Errorf("Valid(%q) = false, want true", g)
		}
	}
	for _, g := range []MuscleGroup{"", "wings", "CHEST", "full body"} {
		if g.Valid() {
			t.Errorf("Valid(%q) = true, want false", g)
		}
	}
}
