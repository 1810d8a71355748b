package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/platebook/recipe-api/internal/core/domain"
	"github.com/platebook/recipe-api/internal/core/ports"
)

const recipesCollection = "recipes"

// RecipeRepository implements ports.RecipeRepository using MongoDB.
type RecipeRepository struct {
	coll *mongo.Collection
}

func NewRecipeRepository(db *mongo.Database) *RecipeRepository {
	return &RecipeRepository{coll: db.Collection(recipesCollection)}
}

type mongoRecipe struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty"`
	Title        string              `bson:"title"`
	Description  string              `bson:"description"`
	Ingredients  []domain.Ingredient `bson:"ingredients"`
	Instructions []string            `bson:"instructions"`
	PrepTimeMin  int                 `bson:"prep_time_min"`
	CookTimeMin  int                 `bson:"cook_time_min"`
	Servings     int                 `bson:"servings"`
	Difficulty   string              `bson:"difficulty"`
	Tags         []string            `bson:"tags,omitempty"`
	CreatedBy    string              `bson:"created_by"`
	CreatedAt    time.Time           `bson:"created_at"`
	UpdatedAt    time.Time           `bson:"updated_at"`
}

func toMongoRecipe(r *domain.Recipe) mongoRecipe {
	return mongoRecipe{
		Title:        r.Title,
		Description:  r.Description,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		PrepTimeMin:  r.PrepTimeMin,
		CookTimeMin:  r.CookTimeMin,
		Servings:     r.Servings,
		Difficulty:   string(r.Difficulty),
		Tags:         r.Tags,
		CreatedBy:    r.CreatedBy,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (mr *mongoRecipe) toDomain() *domain.Recipe {
	return &domain.Recipe{
		ID:           mr.ID.Hex(),
		Title:        mr.Title,
		Description:  mr.Description,
		Ingredients:  mr.Ingredients,
		Instructions: mr.Instructions,
		PrepTimeMin:  mr.PrepTimeMin,
		CookTimeMin:  mr.CookTimeMin,
		Servings:     mr.Servings,
		Difficulty:   domain.Difficulty(mr.Difficulty),
		Tags:         mr.Tags,
		CreatedBy:    mr.CreatedBy,
		CreatedAt:    mr.CreatedAt.UTC(),
		UpdatedAt:    mr.UpdatedAt.UTC(),
	}
}

// recipeID parses a client-supplied id, distinguishing a syntactically
// invalid id from a valid-but-absent one.
func recipeID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidRecipeID
	}
	return oid, nil
}

func (r *RecipeRepository) Create(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoRecipe(recipe)
	doc.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert recipe: %w", err)
	}

	created := *recipe
	created.ID = doc.ID.Hex()
	return &created, nil
}

func (r *RecipeRepository) FindByID(ctx context.Context, id string) (*domain.Recipe, error) {
	oid, err := recipeID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mr mongoRecipe
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("find recipe: %w", err)
	}
	return mr.toDomain(), nil
}

// List returns a page of recipes matching filter, newest first, and the
// total count for pagination.
func (r *RecipeRepository) List(ctx context.Context, filter ports.ListRecipesFilter) ([]*domain.Recipe, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Difficulty != "" {
		query["difficulty"] = filter.Difficulty
	}
	if filter.Tag != "" {
		query["tags"] = filter.Tag
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count recipes: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list recipes: %w", err)
	}
	defer cursor.Close(ctx)

	var recipes []*domain.Recipe
	for cursor.Next(ctx) {
		var mr mongoRecipe
		if err := cursor.Decode(&mr); err != nil {
			return nil, 0, fmt.Errorf("decode recipe: %w", err)
		}
		recipes = append(recipes, mr.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("list recipes: %w", err)
	}

	return recipes, total, nil
}

func (r *RecipeRepository) Update(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	oid, err := recipeID(recipe.ID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoRecipe(recipe)
	doc.ID = oid

	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, domain.ErrRecipeNotFound
	}

	return recipe, nil
}

func (r *RecipeRepository) Delete(ctx context.Context, id string) error {
	oid, err := recipeID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrRecipeNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes backing the list endpoint.
func (r *RecipeRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
		{Keys: bson.D{{Key: "difficulty", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
