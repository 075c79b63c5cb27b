package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"recipebook/internal/recipes/domain/entities"
	"recipebook/internal/recipes/ports/repositories"
	"recipebook/pkg/logger"
)

// Колонки рецепта в порядке сканирования.
const recipeColumns = `id, title, description, prep_time, cook_time, servings, difficulty, category,
        ingredients, instructions, image, notes, tags, created_by, ratings, average_rating,
        created_at, updated_at`

// RecipeRepository реализует интерфейс repositories.RecipeRepository для работы с Postgres.
type RecipeRepository struct {
	pool PgxPoolInterface
}

// NewRecipeRepository создает новый экземпляр репозитория рецептов.
func NewRecipeRepository(pool PgxPoolInterface) repositories.RecipeRepository {
	return &RecipeRepository{pool: pool}
}

func scanRecipe(row pgx.Row, recipe *entities.Recipe) error {
	return row.Scan(
		&recipe.ID,
		&recipe.Title,
		&recipe.Description,
		&recipe.PrepTime,
		&recipe.CookTime,
		&recipe.Servings,
		&recipe.Difficulty,
		&recipe.Category,
		&recipe.Ingredients,
		&recipe.Instructions,
		&recipe.Image,
		&recipe.Notes,
		&recipe.Tags,
		&recipe.CreatedBy,
		&recipe.Ratings,
		&recipe.AverageRating,
		&recipe.CreatedAt,
		&recipe.UpdatedAt,
	)
}

func scanRecipeWithCreator(row pgx.Row, recipe *entities.Recipe) error {
	return row.Scan(
		&recipe.ID,
		&recipe.Title,
		&recipe.Description,
		&recipe.PrepTime,
		&recipe.CookTime,
		&recipe.Servings,
		&recipe.Difficulty,
		&recipe.Category,
		&recipe.Ingredients,
		&recipe.Instructions,
		&recipe.Image,
		&recipe.Notes,
		&recipe.Tags,
		&recipe.CreatedBy,
		&recipe.Ratings,
		&recipe.AverageRating,
		&recipe.CreatedAt,
		&recipe.UpdatedAt,
		&recipe.CreatorName,
	)
}

// Create сохраняет новый рецепт.
func (r *RecipeRepository) Create(ctx context.Context, recipe *entities.Recipe) (*entities.Recipe, error) {
	log := logger.Log(ctx).With(zap.String("repository", "recipe"), zap.String("method", "Create"))
	log.Debug(ctx, "creating new recipe", zap.String("createdBy", recipe.CreatedBy))

	query := `
        INSERT INTO recipes (title, description, prep_time, cook_time, servings, difficulty, category,
                             ingredients, instructions, image, notes, tags, created_by, ratings, average_rating)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
        RETURNING ` + recipeColumns

	var created entities.Recipe
	err := scanRecipe(r.pool.QueryRow(ctx, query,
		recipe.Title,
		recipe.Description,
		recipe.PrepTime,
		recipe.CookTime,
		recipe.Servings,
		recipe.Difficulty,
		recipe.Category,
		recipe.Ingredients,
		recipe.Instructions,
		recipe.Image,
		recipe.Notes,
		recipe.Tags,
		recipe.CreatedBy,
		recipe.Ratings,
		recipe.AverageRating,
	), &created)

	if err != nil {
		log.Error(ctx, "error creating recipe", zap.Error(err))
		return nil, fmt.Errorf("error creating recipe: %w", err)
	}

	log.Debug(ctx, "recipe created", zap.String("recipeID", created.ID))
	return &created, nil
}

// FindByID находит рецепт по ID с именем автора.
// Некорректный идентификатор трактуется как отсутствие рецепта.
func (r *RecipeRepository) FindByID(ctx context.Context, id string) (*entities.Recipe, error) {
	log := logger.Log(ctx).With(zap.String("repository", "recipe"), zap.String("method", "FindByID"))

	if err := uuid.Validate(id); err != nil {
		log.Debug(ctx, "malformed recipe id", zap.String("id", id))
		return nil, entities.ErrRecipeNotFound
	}

	query := `
        SELECT ` + prefixColumns("r") + `, u.name AS creator_name
        FROM recipes r
        JOIN users u ON u.id = r.created_by
        WHERE r.id = $1
    `

	var recipe entities.Recipe
	err := scanRecipeWithCreator(r.pool.QueryRow(ctx, query, id), &recipe)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "recipe not found", zap.String("id", id))
			return nil, entities.ErrRecipeNotFound
		}
		log.Error(ctx, "error finding recipe by id", zap.Error(err))
		return nil, fmt.Errorf("error querying recipe by id: %w", err)
	}

	return &recipe, nil
}

// List возвращает каталог рецептов по фильтру, новые первыми.
func (r *RecipeRepository) List(ctx context.Context, filter repositories.RecipeFilter) ([]*entities.Recipe, error) {
	log := logger.Log(ctx).With(zap.String("repository", "recipe"), zap.String("method", "List"))

	query := `
        SELECT ` + prefixColumns("r") + `, u.name AS creator_name
        FROM recipes r
        JOIN users u ON u.id = r.created_by
    `

	conditions := make([]string, 0, 3)
	args := make([]interface{}, 0, 3)

	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("r.category = $%d", len(args)))
	}
	if filter.Difficulty != "" {
		args = append(args, filter.Difficulty)
		conditions = append(conditions, fmt.Sprintf("r.difficulty = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, filter.Search)
		conditions = append(conditions, fmt.Sprintf(
			"(r.title ILIKE '%%' || $%d || '%%' OR r.description ILIKE '%%' || $%d || '%%')",
			len(args), len(args)))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY r.created_at DESC"

	return r.queryRecipes(ctx, log, query, args...)
}

// ListByCreator возвращает рецепты, созданные пользователем, новые первыми.
func (r *RecipeRepository) ListByCreator(ctx context.Context, userID string) ([]*entities.Recipe, error) {
	log := logger.Log(ctx).With(zap.String("repository", "recipe"), zap.String("method", "ListByCreator"))

	query := `
        SELECT ` + prefixColumns("r") + `, u.name AS creator_name
        FROM recipes r
        JOIN users u ON u.id = r.created_by
        WHERE r.created_by = $1
        ORDER BY r.created_at DESC
    `

	return r.queryRecipes(ctx, log, query, userID)
}

// ListByIDs возвращает существующие рецепты из переданного множества идентификаторов.
// Отсутствующие и некорректные идентификаторы молча пропускаются.
func (r *RecipeRepository) ListByIDs(ctx context.Context, ids []string) ([]*entities.Recipe, error) {
	log := logger.Log(ctx).With(zap.String("repository", "recipe"), zap.String("method", "ListByIDs"))

	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if uuid.Validate(id) == nil {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return []*entities.Recipe{}, nil
	}

	query := `
        SELECT ` + prefixColumns("r") + `, u.name AS creator_name
        FROM recipes r
        JOIN users u ON u.id = r.created_by
        WHERE r.id = ANY($1::uuid[])
        ORDER BY r.created_at DESC
    `

	return r.queryRecipes(ctx, log, query, valid)
}

// Update перезаписывает документ рецепта.
func (r *RecipeRepository) Update(ctx context.Context, recipe *entities.Recipe) (*entities.Recipe, error) {
	log := logger.Log(ctx).With(zap.String("repository", "recipe"), zap.String("method", "Update"))

	query := `
        UPDATE recipes
        SET title = $2, description = $3, prep_time = $4, cook_time = $5, servings = $6,
            difficulty = $7, category = $8, ingredients = $9, instructions = $10,
            image = $11, notes = $12, tags = $13, updated_at = now()
        WHERE id = $1
        RETURNING ` + recipeColumns

	var updated entities.Recipe
	err := scanRecipe(r.pool.QueryRow(ctx, query,
		recipe.ID,
		recipe.Title,
		recipe.Description,
		recipe.PrepTime,
		recipe.CookTime,
		recipe.Servings,
		recipe.Difficulty,
		recipe.Category,
		recipe.Ingredients,
		recipe.Instructions,
		recipe.Image,
		recipe.Notes,
		recipe.Tags,
	), &updated)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "recipe not found for update", zap.String("id", recipe.ID))
			return nil, entities.ErrRecipeNotFound
		}
		log.Error(ctx, "error updating recipe", zap.Error(err))
		return nil, fmt.Errorf("error updating recipe: %w", err)
	}

	return &updated, nil
}

// UpdateRatings сохраняет оценки и пересчитанную среднюю за один запрос.
func (r *RecipeRepository) UpdateRatings(ctx context.Context, id string, ratings map[string]int, average float64) (*entities.Recipe, error) {
	log := logger.Log(ctx).With(zap.String("repository", "recipe"), zap.String("method", "UpdateRatings"))

	query := `
        UPDATE recipes
        SET ratings = $2, average_rating = $3, updated_at = now()
        WHERE id = $1
        RETURNING ` + recipeColumns

	var updated entities.Recipe
	err := scanRecipe(r.pool.QueryRow(ctx, query, id, ratings, average), &updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "recipe not found for rating", zap.String("id", id))
			return nil, entities.ErrRecipeNotFound
		}
		log.Error(ctx, "error updating ratings", zap.Error(err))
		return nil, fmt.Errorf("error updating ratings: %w", err)
	}

	return &updated, nil
}

// Delete удаляет рецепт по ID.
// Избранное других пользователей при этом не затрагивается.
func (r *RecipeRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("repository", "recipe"), zap.String("method", "Delete"))

	if err := uuid.Validate(id); err != nil {
		log.Debug(ctx, "malformed recipe id", zap.String("id", id))
		return entities.ErrRecipeNotFound
	}

	result, err := r.pool.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		log.Error(ctx, "error deleting recipe", zap.Error(err))
		return fmt.Errorf("error deleting recipe: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "recipe not found for deletion", zap.String("id", id))
		return entities.ErrRecipeNotFound
	}

	return nil
}

func (r *RecipeRepository) queryRecipes(ctx context.Context, log *logger.Logger, query string, args ...interface{}) ([]*entities.Recipe, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		log.Error(ctx, "error listing recipes", zap.Error(err))
		return nil, fmt.Errorf("error listing recipes: %w", err)
	}
	defer rows.Close()

	recipes := make([]*entities.Recipe, 0)
	for rows.Next() {
		var recipe entities.Recipe
		if err := scanRecipeWithCreator(rows, &recipe); err != nil {
			log.Error(ctx, "error scanning recipe", zap.Error(err))
			return nil, fmt.Errorf("error scanning recipe: %w", err)
		}
		recipes = append(recipes, &recipe)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating recipes", zap.Error(err))
		return nil, fmt.Errorf("error iterating recipes: %w", err)
	}

	return recipes, nil
}

// prefixColumns возвращает список колонок рецепта с префиксом таблицы.
func prefixColumns(alias string) string {
	cols := strings.Split(recipeColumns, ",")
	for i, c := range cols {
		cols[i] = alias + "." + strings.TrimSpace(c)
	}
	return strings.Join(cols, ", ")
}
