package entities

import (
	"errors"
	"time"
)

// Допустимые значения сложности рецепта.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Границы допустимой оценки.
const (
	MinRating = 1
	MaxRating = 5
)

// Ошибки домена рецепта.
var (
	ErrRecipeNotFound    = errors.New("recipe not found")
	ErrNotRecipeOwner    = errors.New("user not authorized")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
	ErrInvalidDifficulty = errors.New("difficulty must be Easy, Medium or Hard")
)

// Ingredient представляет ингредиент рецепта.
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit,omitempty"`
}

// Instruction представляет один шаг приготовления.
type Instruction struct {
	Step        int    `json:"step"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
}

// Recipe представляет агрегат рецепта: сам документ вместе со встроенными
// ингредиентами, шагами приготовления и оценками.
// Ratings хранится отображением userID -> значение, поэтому у каждого
// пользователя не более одной оценки по построению.
type Recipe struct {
	ID            string
	Title         string
	Description   string
	PrepTime      int
	CookTime      int
	Servings      int
	Difficulty    string
	Category      string
	Ingredients   []Ingredient
	Instructions  []Instruction
	Image         string
	Notes         string
	Tags          []string
	CreatedBy     string
	CreatorName   string
	Ratings       map[string]int
	AverageRating float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ValidDifficulty проверяет, что значение сложности входит в перечисление.
func ValidDifficulty(d string) bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// SetRating выставляет оценку пользователя, затирая предыдущую,
// и пересчитывает среднюю оценку.
func (r *Recipe) SetRating(userID string, value int) error {
	if value < MinRating || value > MaxRating {
		return ErrInvalidRating
	}
	if r.Ratings == nil {
		r.Ratings = make(map[string]int)
	}
	r.Ratings[userID] = value
	r.RecalculateAverage()
	return nil
}

// RecalculateAverage пересчитывает среднюю оценку по текущим значениям.
// При отсутствии оценок средняя равна нулю.
func (r *Recipe) RecalculateAverage() {
	if len(r.Ratings) == 0 {
		r.AverageRating = 0
		return
	}
	sum := 0
	for _, v := range r.Ratings {
		sum += v
	}
	r.AverageRating = float64(sum) / float64(len(r.Ratings))
}
