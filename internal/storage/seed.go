package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/claude/fitrecord/internal/models"
)

type seedExercise struct {
	name        string
	group       models.MuscleGroup
	bodyweight  bool
	restSeconds int // 0 means no exercise-specific rest duration
}

// defaultLibrary is the starter exercise library. Heavy compounds carry a
// longer exercise-specific rest duration; everything else falls back to the
// configured global default.
var defaultLibrary = []seedExercise{
	{name: "Bench Press", group: models.MuscleChest, restSeconds: 120},
	{name: "Incline Dumbbell Press", group: models.MuscleChest},
	{name: "Cable Fly", group: models.MuscleChest},
	{name: "Push-ups", group: models.MuscleChest, bodyweight: true},
	{name: "Chest Dips", group: models.MuscleChest, bodyweight: true},
	{name: "Overhead Press", group: models.MuscleShoulders, restSeconds: 120},
	{name: "Lateral Raise", group: models.MuscleShoulders},
	{name: "Face Pull", group: models.MuscleShoulders},
	{name: "Arnold Press", group: models.MuscleShoulders},
	{name: "Triceps Pushdown", group: models.MuscleTriceps},
	{name: "Skull Crushers", group: models.MuscleTriceps},
	{name: "Close-Grip Bench Press", group: models.MuscleTriceps},
	{name: "Deadlift", group: models.MuscleBack, restSeconds: 120},
	{name: "Barbell Row", group: models.MuscleBack, restSeconds: 90},
	{name: "Lat Pulldown", group: models.MuscleBack},
	{name: "Pull-ups", group: models.MuscleBack, bodyweight: true},
	{name: "Seated Cable Row", group: models.MuscleBack},
	{name: "Barbell Curl", group: models.MuscleBiceps},
	{name: "Hammer Curl", group: models.MuscleBiceps},
	{name: "Preacher Curl", group: models.MuscleBiceps},
	{name: "Back Squat", group: models.MuscleLegs, restSeconds: 120},
	{name: "Front Squat", group: models.MuscleLegs, restSeconds: 120},
	{name: "Romanian Deadlift", group: models.MuscleLegs, restSeconds: 90},
	{name: "Leg Press", group: models.MuscleLegs, restSeconds: 90},
	{name: "Walking Lunges", group: models.MuscleLegs, bodyweight: true},
	{name: "Leg Curl", group: models.MuscleLegs},
	{name: "Calf Raise", group: models.MuscleLegs},
	{name: "Plank", group: models.MuscleCore, bodyweight: true},
	{name: "Hanging Leg Raise", group: models.MuscleCore, bodyweight: true},
	{name: "Cable Crunch", group: models.MuscleCore},
	{name: "Russian Twist", group: models.MuscleCore, bodyweight: true},
	{name: "Rowing Machine", group: models.MuscleCardio, bodyweight: true},
	{name: "Assault Bike", group: models.MuscleCardio, bodyweight: true},
	{name: "Burpees", group: models.MuscleFullBody, bodyweight: true},
	{name: "Kettlebell Swing", group: models.MuscleFullBody},
	{name: "Clean and Press", group: models.MuscleFullBody, restSeconds: 120},
}

// SeedExercises inserts the default exercise library. Existing exercises with
// the same name are left untouched, so reseeding is safe.
func (db *DB) SeedExercises(ctx context.Context, log *slog.Logger) error {
	inserted := 0
	for _, e := range defaultLibrary {
		var rest *int
		if e.restSeconds > 0 {
			rest = &e.restSeconds
		}
		tag, err := db.Pool.Exec(ctx,
			`INSERT INTO exercises (name, muscle_group, is_bodyweight, default_rest_seconds)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (name) DO NOTHING`,
			e.name, e.group, e.bodyweight, rest)
		if err != nil {
			return fmt.Errorf("seeding exercise %q: %w", e.name, err)
		}
		inserted += int(tag.RowsAffected())
	}
	log.Info("exercise library seeded", "inserted", inserted, "total", len(defaultLibrary))
	return nil
}
