package storage

import (
	"reflect"
	"testing"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

// TestBuildSetUpdateAllFields verifies all provided fields become positional
// assignments in declaration order.
func TestBuildSetUpdateAllFields(t *testing.T) {
	assignments, args := buildSetUpdate(SetUpdate{
		Reps:     intPtr(8),
		WeightKg: floatPtr(72.5),
		Notes:    strPtr("felt heavy"),
	})

	wantAssignments := []string{"reps = $1", "weight_kg = $2", "notes = $3", "updated_at = NOW()"}
	if !reflect.DeepEqual(assignments, wantAssignments) {
		t.Errorf("assignments = %v, want %v", assignments, wantAssignments)
	}
	wantArgs := []any{8, 72.5, "felt heavy"}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Errorf("args = %v, want %v", args, wantArgs)
	}
}

// TestBuildSetUpdatePartial verifies nil fields are skipped and numbering
// stays dense.
func TestBuildSetUpdatePartial(t *testing.T) {
	assignments, args := buildSetUpdate(SetUpdate{WeightKg: floatPtr(100)})

	wantAssignments := []string{"weight_kg = $1", "updated_at = NOW()"}
	if !reflect.DeepEqual(assignments, wantAssignments) {
		t.Errorf("assignments = %v, want %v", assignments, wantAssignments)
	}
	if len(args) != 1 || args[0] != 100.0 {
		t.Errorf("args = %v, want [100]", args)
	}
}

// TestBuildSetUpdateEmpty verifies an empty update still carries the
// updated_at assignment, which UpdateSet uses to detect a no-op.
func TestBuildSetUpdateEmpty(t *testing.T) {
	assignments, args := buildSetUpdate(SetUpdate{})

	if len(assignments) != 1 || assignments[0] != "updated_at = NOW()" {
		t.Errorf("assignments = %v, want only updated_at", assignments)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
}
