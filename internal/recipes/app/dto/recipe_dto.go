package dto

import (
	"time"

	"recipebook/internal/recipes/app"
	"recipebook/internal/recipes/domain/entities"
)

// CreateRecipeRequest содержит поля нового рецепта.
// PrepTime и CookTime обязательны, поэтому объявлены указателями:
// отсутствующее поле отличимо от явного нуля.
type CreateRecipeRequest struct {
	Title        string                 `json:"title" validate:"required"`
	Description  string                 `json:"description" validate:"required"`
	PrepTime     *int                   `json:"prepTime" validate:"required"`
	CookTime     *int                   `json:"cookTime" validate:"required"`
	Servings     int                    `json:"servings"`
	Difficulty   string                 `json:"difficulty,omitempty"`
	Category     string                 `json:"category" validate:"required"`
	Ingredients  []entities.Ingredient  `json:"ingredients" validate:"required"`
	Instructions []entities.Instruction `json:"instructions" validate:"required"`
	Image        string                 `json:"image,omitempty"`
	Notes        string                 `json:"notes,omitempty"`
	Tags         []string               `json:"tags,omitempty"`
}

// UpdateRecipeRequest содержит поля частичного обновления рецепта:
// отсутствующие в теле запроса поля не изменяются.
type UpdateRecipeRequest struct {
	Title        *string                 `json:"title,omitempty"`
	Description  *string                 `json:"description,omitempty"`
	PrepTime     *int                    `json:"prepTime,omitempty"`
	CookTime     *int                    `json:"cookTime,omitempty"`
	Servings     *int                    `json:"servings,omitempty"`
	Difficulty   *string                 `json:"difficulty,omitempty"`
	Category     *string                 `json:"category,omitempty"`
	Ingredients  *[]entities.Ingredient  `json:"ingredients,omitempty"`
	Instructions *[]entities.Instruction `json:"instructions,omitempty"`
	Image        *string                 `json:"image,omitempty"`
	Notes        *string                 `json:"notes,omitempty"`
	Tags         *[]string               `json:"tags,omitempty"`
}

// RateRecipeRequest содержит значение оценки рецепта.
type RateRecipeRequest struct {
	Value int `json:"value" validate:"required,min=1,max=5"`
}

// CreatorResponse содержит сведения об авторе рецепта.
type CreatorResponse struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// RecipeResponse содержит полный документ рецепта.
type RecipeResponse struct {
	ID            string                 `json:"id"`
	Title         string                 `json:"title"`
	Description   string                 `json:"description"`
	PrepTime      int                    `json:"prepTime"`
	CookTime      int                    `json:"cookTime"`
	Servings      int                    `json:"servings"`
	Difficulty    string                 `json:"difficulty"`
	Category      string                 `json:"category"`
	Ingredients   []entities.Ingredient  `json:"ingredients"`
	Instructions  []entities.Instruction `json:"instructions"`
	Image         string                 `json:"image,omitempty"`
	Notes         string                 `json:"notes,omitempty"`
	Tags          []string               `json:"tags"`
	CreatedBy     CreatorResponse        `json:"createdBy"`
	Ratings       map[string]int         `json:"ratings"`
	AverageRating float64                `json:"averageRating"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

// ToEntity преобразует запрос создания в доменную сущность.
// Вызывается после проверки наличия обязательных полей.
func (r *CreateRecipeRequest) ToEntity() *entities.Recipe {
	prepTime := 0
	if r.PrepTime != nil {
		prepTime = *r.PrepTime
	}
	cookTime := 0
	if r.CookTime != nil {
		cookTime = *r.CookTime
	}
	return &entities.Recipe{
		Title:        r.Title,
		Description:  r.Description,
		PrepTime:     prepTime,
		CookTime:     cookTime,
		Servings:     r.Servings,
		Difficulty:   r.Difficulty,
		Category:     r.Category,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		Image:        r.Image,
		Notes:        r.Notes,
		Tags:         r.Tags,
	}
}

// ToPatch преобразует запрос обновления в частичное обновление.
func (r *UpdateRecipeRequest) ToPatch() app.RecipePatch {
	return app.RecipePatch{
		Title:        r.Title,
		Description:  r.Description,
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		Servings:     r.Servings,
		Difficulty:   r.Difficulty,
		Category:     r.Category,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		Image:        r.Image,
		Notes:        r.Notes,
		Tags:         r.Tags,
	}
}

// NewRecipeResponse строит ответ из доменной сущности рецепта.
func NewRecipeResponse(recipe *entities.Recipe) *RecipeResponse {
	tags := recipe.Tags
	if tags == nil {
		tags = []string{}
	}
	ratings := recipe.Ratings
	if ratings == nil {
		ratings = map[string]int{}
	}
	return &RecipeResponse{
		ID:            recipe.ID,
		Title:         recipe.Title,
		Description:   recipe.Description,
		PrepTime:      recipe.PrepTime,
		CookTime:      recipe.CookTime,
		Servings:      recipe.Servings,
		Difficulty:    recipe.Difficulty,
		Category:      recipe.Category,
		Ingredients:   recipe.Ingredients,
		Instructions:  recipe.Instructions,
		Image:         recipe.Image,
		Notes:         recipe.Notes,
		Tags:          tags,
		CreatedBy:     CreatorResponse{ID: recipe.CreatedBy, Name: recipe.CreatorName},
		Ratings:       ratings,
		AverageRating: recipe.AverageRating,
		CreatedAt:     recipe.CreatedAt,
		UpdatedAt:     recipe.UpdatedAt,
	}
}

// NewRecipeListResponse строит список ответов из доменных сущностей.
func NewRecipeListResponse(recipes []*entities.Recipe) []*RecipeResponse {
	responses := make([]*RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		responses = append(responses, NewRecipeResponse(recipe))
	}
	return responses
}
