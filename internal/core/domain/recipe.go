package domain

import (
	"errors"
	"time"
)

// Difficulty is the coarse effort rating of a recipe.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var ErrRecipeNotFound = errors.New("recipe not found")
var ErrInvalidRecipeID = errors.New("invalid recipe id")

// Ingredient is a single line of a recipe's ingredient list.
type Ingredient struct {
	Name     string  `json:"name" bson:"name"`
	Quantity float64 `json:"quantity" bson:"quantity"`
	Unit     string  `json:"unit,omitempty" bson:"unit,omitempty"`
}

// Recipe is the core aggregate root.
type Recipe struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions []string     `json:"instructions"`
	PrepTimeMin  int          `json:"prep_time_min"`
	CookTimeMin  int          `json:"cook_time_min"`
	Servings     int          `json:"servings"`
	Difficulty   Difficulty   `json:"difficulty"`
	Tags         []string     `json:"tags,omitempty"`
	CreatedBy    string       `json:"created_by"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
