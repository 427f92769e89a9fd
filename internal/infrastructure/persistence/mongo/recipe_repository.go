package mongo

import (
	"context"
	"errors"
	"regexp"

	"github.com/alchemorsel/recipebox/internal/domain/recipe"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RecipeRepository stores recipes in the recipes collection.
// Ids that are not valid ObjectID hex strings never match a document.
type RecipeRepository struct {
	coll *mongo.Collection
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(coll *mongo.Collection) *RecipeRepository {
	return &RecipeRepository{coll: coll}
}

var byInsertion = options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

// List returns every recipe in insertion order
func (r *RecipeRepository) List(ctx context.Context) ([]*recipe.Recipe, error) {
	return r.find(ctx, bson.D{})
}

// FindByID finds a recipe by ID
func (r *RecipeRepository) FindByID(ctx context.Context, id string) (*recipe.Recipe, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, recipe.ErrRecipeNotFound
	}

	var doc recipeDocument
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, recipe.ErrRecipeNotFound
		}
		return nil, err
	}

	return doc.toDomain(), nil
}

// FindByIDs returns the recipes among ids that exist
func (r *RecipeRepository) FindByIDs(ctx context.Context, ids []string) ([]*recipe.Recipe, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []*recipe.Recipe{}, nil
	}
	return r.find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: oids}}}})
}

// Search matches query as a case-insensitive substring of name or cuisine type
func (r *RecipeRepository) Search(ctx context.Context, query string) ([]*recipe.Recipe, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "name", Value: pattern}},
		bson.D{{Key: "cuisineType", Value: pattern}},
	}}}
	return r.find(ctx, filter)
}

// Create inserts a recipe and assigns its ID
func (r *RecipeRepository) Create(ctx context.Context, rec *recipe.Recipe) error {
	res, err := r.coll.InsertOne(ctx, newRecipeDocument(rec))
	if err != nil {
		return err
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		rec.ID = oid.Hex()
	}
	return nil
}

// Replace overwrites an existing recipe document
func (r *RecipeRepository) Replace(ctx context.Context, rec *recipe.Recipe) error {
	oid, err := primitive.ObjectIDFromHex(rec.ID)
	if err != nil {
		return recipe.ErrRecipeNotFound
	}

	doc := newRecipeDocument(rec)
	doc.ID = oid

	res, err := r.coll.ReplaceOne(ctx, bson.D{{Key: "_id", Value: oid}}, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return recipe.ErrRecipeNotFound
	}
	return nil
}

// Delete deletes a recipe by ID
func (r *RecipeRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return recipe.ErrRecipeNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return recipe.ErrRecipeNotFound
	}
	return nil
}

// UpdateStatus sets only the status field and returns the updated recipe.
// It never inserts.
func (r *RecipeRepository) UpdateStatus(ctx context.Context, id string, status recipe.Status) (*recipe.Recipe, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, recipe.ErrRecipeNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After).SetUpsert(false)
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "status", Value: string(status)}}}}

	var doc recipeDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, recipe.ErrRecipeNotFound
		}
		return nil, err
	}

	return doc.toDomain(), nil
}

func (r *RecipeRepository) find(ctx context.Context, filter bson.D) ([]*recipe.Recipe, error) {
	cursor, err := r.coll.Find(ctx, filter, byInsertion)
	if err != nil {
		return nil, err
	}

	var docs []recipeDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	recipes := make([]*recipe.Recipe, 0, len(docs))
	for i := range docs {
		recipes = append(recipes, docs[i].toDomain())
	}
	return recipes, nil
}

// objectIDs converts hex ids, dropping the ones that cannot match
func objectIDs(ids []string) []primitive.ObjectID {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	return oids
}
