package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Store owns the client and the repositories over one database
type Store struct {
	client      *mongo.Client
	db          *mongo.Database
	logger      *zap.Logger
	Users       *UserRepository
	Recipes     *RecipeRepository
	UserRecipes *UserRecipeRepository
}

// Connect opens a client, verifies it and creates the indexes
func Connect(ctx context.Context, uri, database string, timeout time.Duration, logger *zap.Logger) (*Store, error) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri).SetConnectTimeout(timeout))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	store := NewStore(client, database, logger)
	if err := store.EnsureIndexes(connectCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info("MongoDB connection established", zap.String("database", database))
	return store, nil
}

// NewStore wires the repositories for an existing client
func NewStore(client *mongo.Client, database string, logger *zap.Logger) *Store {
	db := client.Database(database)
	return &Store{
		client:      client,
		db:          db,
		logger:      logger.Named("mongo"),
		Users:       NewUserRepository(db.Collection(UsersCollection)),
		Recipes:     NewRecipeRepository(db.Collection(RecipesCollection)),
		UserRecipes: NewUserRecipeRepository(db.Collection(UserRecipesCollection)),
	}
}

// EnsureIndexes creates the unique username and (userId, recipeId) indexes
// plus the recipeId index used by cascading deletes
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("username_unique"),
	})
	if err != nil {
		return fmt.Errorf("failed to create users index: %w", err)
	}

	_, err = s.db.Collection(UserRecipesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "recipeId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("user_recipe"),
		},
		{
			Keys:    bson.D{{Key: "recipeId", Value: 1}},
			Options: options.Index().SetName("recipe"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create userrecipes indexes: %w", err)
	}

	return nil
}

// Ping checks the connection to the primary
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
