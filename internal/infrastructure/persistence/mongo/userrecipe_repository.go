package mongo

import (
	"context"
	"errors"

	"github.com/alchemorsel/recipebox/internal/domain/userrecipe"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRecipeRepository stores associations in the userrecipes collection
type UserRecipeRepository struct {
	coll *mongo.Collection
}

// NewUserRecipeRepository creates a new association repository
func NewUserRecipeRepository(coll *mongo.Collection) *UserRecipeRepository {
	return &UserRecipeRepository{coll: coll}
}

// Upsert replaces the (user, recipe) document, inserting it when absent
func (r *UserRecipeRepository) Upsert(ctx context.Context, ur *userrecipe.UserRecipe) error {
	filter, err := pairFilter(ur.UserID, ur.RecipeID)
	if err != nil {
		return err
	}

	update := bson.D{{Key: "$set", Value: bson.D{{Key: "status", Value: string(ur.Status)}}}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc userRecipeDocument
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		return err
	}

	ur.ID = doc.ID.Hex()
	return nil
}

// Find returns the association for (userID, recipeID)
func (r *UserRecipeRepository) Find(ctx context.Context, userID, recipeID string) (*userrecipe.UserRecipe, error) {
	filter, err := pairFilter(userID, recipeID)
	if err != nil {
		return nil, userrecipe.ErrUserRecipeNotFound
	}

	var doc userRecipeDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, userrecipe.ErrUserRecipeNotFound
		}
		return nil, err
	}

	return doc.toDomain(), nil
}

// List returns the associations matching filter
func (r *UserRecipeRepository) List(ctx context.Context, filter userrecipe.Filter) ([]*userrecipe.UserRecipe, error) {
	query := bson.D{}
	if filter.UserID != "" {
		oid, err := primitive.ObjectIDFromHex(filter.UserID)
		if err != nil {
			return []*userrecipe.UserRecipe{}, nil
		}
		query = append(query, bson.E{Key: "userId", Value: oid})
	}
	if filter.Status != "" {
		query = append(query, bson.E{Key: "status", Value: string(filter.Status)})
	}

	cursor, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}

	var docs []userRecipeDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	associations := make([]*userrecipe.UserRecipe, 0, len(docs))
	for i := range docs {
		associations = append(associations, docs[i].toDomain())
	}
	return associations, nil
}

// Delete removes the association for (userID, recipeID)
func (r *UserRecipeRepository) Delete(ctx context.Context, userID, recipeID string) error {
	filter, err := pairFilter(userID, recipeID)
	if err != nil {
		return userrecipe.ErrUserRecipeNotFound
	}

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return userrecipe.ErrUserRecipeNotFound
	}
	return nil
}

// DeleteByRecipe removes every association referencing recipeID
func (r *UserRecipeRepository) DeleteByRecipe(ctx context.Context, recipeID string) (int64, error) {
	return r.deleteMany(ctx, "recipeId", recipeID)
}

// DeleteByUser removes every association owned by userID
func (r *UserRecipeRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	return r.deleteMany(ctx, "userId", userID)
}

func (r *UserRecipeRepository) deleteMany(ctx context.Context, field, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}

	res, err := r.coll.DeleteMany(ctx, bson.D{{Key: field, Value: oid}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func pairFilter(userID, recipeID string) (bson.D, error) {
	userOID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}
	recipeOID, err := primitive.ObjectIDFromHex(recipeID)
	if err != nil {
		return nil, err
	}
	return bson.D{{Key: "userId", Value: userOID}, {Key: "recipeId", Value: recipeOID}}, nil
}
