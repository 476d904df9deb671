package models

import "time"

// NutritionEntry is a logged meal. Used as a secondary signal for
// correlation against symptom severity.
type NutritionEntry struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	FoodItem   string    `json:"food_item"`
	MealType   string    `json:"meal_type"`
	Calories   *int      `json:"calories,omitempty"`
	Notes      *string   `json:"notes,omitempty"`
	ConsumedAt time.Time `json:"consumed_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// FitnessEntry is a logged workout.
type FitnessEntry struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	ExerciseName    string    `json:"exercise_name"`
	ExerciseType    string    `json:"exercise_type"`
	DurationMinutes *int      `json:"duration_minutes,omitempty"`
	CaloriesBurned  *int      `json:"calories_burned,omitempty"`
	Intensity       *string   `json:"intensity,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	PerformedAt     time.Time `json:"performed_at"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateNutritionRequest is the payload for logging a meal.
type CreateNutritionRequest struct {
	FoodItem   string     `json:"food_item" binding:"required"`
	MealType   string     `json:"meal_type" binding:"required"`
	Calories   *int       `json:"calories"`
	Notes      *string    `json:"notes"`
	ConsumedAt *time.Time `json:"consumed_at"`
}

// CreateFitnessRequest is the payload for logging a workout.
type CreateFitnessRequest struct {
	ExerciseName    string     `json:"exercise_name" binding:"required"`
	ExerciseType    string     `json:"exercise_type" binding:"required"`
	DurationMinutes *int       `json:"duration_minutes"`
	CaloriesBurned  *int       `json:"calories_burned"`
	Intensity       *string    `json:"intensity"`
	Notes           *string    `json:"notes"`
	PerformedAt     *time.Time `json:"performed_at"`
}

// UserProfile holds the onboarding answers that feed the narrative
// prompt. Every field is optional; a missing profile only thins the
// narrative, it never fails a request.
type UserProfile struct {
	UserID       string   `json:"user_id"`
	Name         string   `json:"name,omitempty"`
	TopProblems  []string `json:"top_problems,omitempty"`
	Severity     string   `json:"severity,omitempty"`
	Timing       string   `json:"timing,omitempty"`
	TriedOptions []string `json:"tried_options,omitempty"`
	Goal         string   `json:"goal,omitempty"`
}
