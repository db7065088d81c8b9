package export

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/claude/fitrecord/internal/models"
	"github.com/google/uuid"
)

// fakeSource serves one client with one ended session for archive tests.
type fakeSource struct {
	client   models.Client
	sessions []models.WorkoutSession
	byID     map[uuid.UUID][]models.WorkoutExercise
	records  []models.ExercisePR
}

func (f *fakeSource) GetClient(ctx context.Context, id uuid.UUID) (models.Client, error) {
	return f.client, nil
}

func (f *fakeSource) RecentSessions(ctx context.Context, clientID uuid.UUID, limit int) ([]models.WorkoutSession, error) {
	return f.sessions, nil
}

func (f *fakeSource) ListWorkoutExercises(ctx context.Context, sessionID, clientID uuid.UUID) ([]models.WorkoutExercise, error) {
	return f.byID[sessionID], nil
}

func (f *fakeSource) ExerciseHistory(ctx context.Context, clientID uuid.UUID) ([]models.ExercisePR, error) {
	return f.records, nil
}

func testSource() *fakeSource {
	clientID := uuid.New()
	sessionID := uuid.New()
	weID := uuid.New()
	ended := time.Date(2026, 8, 20, 18, 0, 0, 0, time.UTC)
	reps := 8
	weight := 82.5

	return &fakeSource{
		client: models.Client{ID: clientID, Name: "Anna"},
		sessions: []models.WorkoutSession{
			{ID: sessionID, StartedAt: ended.Add(-time.Hour), EndedAt: &ended},
		},
		byID: map[uuid.UUID][]models.WorkoutExercise{
			sessionID: {
				{
					ID:         weID,
					ClientID:   clientID,
					ExerciseID: uuid.New(),
					Exercise:   &models.Exercise{Name: "Bench Press", MuscleGroup: models.MuscleChest},
					Sets: []models.ExerciseSet{
						{ID: uuid.New(), WorkoutExerciseID: weID, SetNumber: 1,
							Reps: &reps, WeightKg: &weight, IsCompleted: true},
						{ID: uuid.New(), WorkoutExerciseID: weID, SetNumber: 2},
					},
				},
			},
		},
		records: []models.ExercisePR{
			{ClientID: clientID, ExerciseID: uuid.New(), ExerciseName: "Bench Press",
				MaxWeightKg: 82.5, LastPerformedAt: ended},
		},
	}
}

// TestWriteClientArchive verifies the archive round-trips: the exported file
// holds the client, session, exercises, sets, and personal records.
func TestWriteClientArchive(t *testing.T) {
	src := testSource()
	path := filepath.Join(t.TempDir(), "anna.db")

	if err := WriteClientArchive(context.Background(), src, src.client.ID, path, 50); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("reopening archive: %v", err)
	}
	defer db.Close()

	counts := map[string]int{
		"client":            1,
		"sessions":          1,
		"workout_exercises": 1,
		"sets":              2,
		"personal_records":  1,
	}
	for table, want := range counts {
		var got int
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&got); err != nil {
			t.Fatalf("counting %s: %v", table, err)
		}
		if got != want {
			t.Errorf("%s rows = %d, want %d", table, got, want)
		}
	}

	var name string
	if err := db.QueryRow("SELECT name FROM client").Scan(&name); err != nil {
		t.Fatalf("reading client: %v", err)
	}
	if name != "Anna" {
		t.Errorf("client name = %q, want Anna", name)
	}

	// The incomplete second set must keep NULL reps and weight.
	var nullSets int
	if err := db.QueryRow(
		"SELECT COUNT(*) FROM sets WHERE reps IS NULL AND weight_kg IS NULL").Scan(&nullSets); err != nil {
		t.Fatalf("counting null sets: %v", err)
	}
	if nullSets != 1 {
		t.Errorf("sets with NULL reps/weight = %d, want 1", nullSets)
	}
}

// TestWriteClientArchiveRefusesOverwrite verifies an existing file is never
// clobbered.
func TestWriteClientArchiveRefusesOverwrite(t *testing.T) {
	src := testSource()
	path := filepath.Join(t.TempDir(), "anna.db")

	if err := WriteClientArchive(context.Background(), src, src.client.ID, path, 50); err != nil {
		t.Fatalf("first export failed: %v", err)
	}
	if err := WriteClientArchive(context.Background(), src, src.client.ID, path, 50); err == nil {
		t.Error("expected error exporting over an existing archive")
	}
}
