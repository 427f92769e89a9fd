//go:build integration

package mongo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alchemorsel/recipebox/internal/domain/recipe"
	"github.com/alchemorsel/recipebox/internal/domain/user"
	"github.com/alchemorsel/recipebox/internal/domain/userrecipe"
	"github.com/alchemorsel/recipebox/internal/infrastructure/persistence/mongo"
	"github.com/alchemorsel/recipebox/internal/testutils"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"
)

type MongoStoreTestSuite struct {
	suite.Suite
	container testcontainers.Container
	uri       string
	store     *mongo.Store
	ctx       context.Context
}

func (s *MongoStoreTestSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := testcontainers.GenericContainer(s.ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(s.T(), err, "Failed to start mongo container")
	s.container = container

	host, err := container.Host(s.ctx)
	require.NoError(s.T(), err)
	port, err := container.MappedPort(s.ctx, "27017")
	require.NoError(s.T(), err)

	s.uri = fmt.Sprintf("mongodb://%s:%s", host, port.Port())
}

func (s *MongoStoreTestSuite) TearDownSuite() {
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *MongoStoreTestSuite) SetupTest() {
	// Fresh database per test
	name := fmt.Sprintf("recipebox_%d", time.Now().UnixNano())
	store, err := mongo.Connect(s.ctx, s.uri, name, 10*time.Second, zaptest.NewLogger(s.T()))
	s.Require().NoError(err)
	s.store = store
}

func (s *MongoStoreTestSuite) TearDownTest() {
	_ = s.store.Close()
}

func (s *MongoStoreTestSuite) createRecipe(name string) *recipe.Recipe {
	r := testutils.NewRecipeBuilder().WithoutID().WithName(name).WithCuisine("Italian").Build()
	s.Require().NoError(s.store.Recipes.Create(s.ctx, r))
	s.Require().NotEmpty(r.ID)
	return r
}

func (s *MongoStoreTestSuite) TestRecipes() {
	pasta := s.createRecipe("Pasta")
	s.createRecipe("Pasta Bake")

	found, err := s.store.Recipes.Search(s.ctx, "PASTA")
	s.Require().NoError(err)
	s.Len(found, 2)

	updated, err := s.store.Recipes.UpdateStatus(s.ctx, pasta.ID, recipe.StatusFavorite)
	s.Require().NoError(err)
	s.Equal(recipe.StatusFavorite, updated.Status)

	_, err = s.store.Recipes.UpdateStatus(s.ctx, "000000000000000000000000", recipe.StatusFavorite)
	s.ErrorIs(err, recipe.ErrRecipeNotFound)

	_, err = s.store.Recipes.FindByID(s.ctx, "not-an-object-id")
	s.ErrorIs(err, recipe.ErrRecipeNotFound)

	s.Require().NoError(s.store.Recipes.Delete(s.ctx, pasta.ID))
	s.ErrorIs(s.store.Recipes.Delete(s.ctx, pasta.ID), recipe.ErrRecipeNotFound)
}

func (s *MongoStoreTestSuite) TestUsers() {
	alice := testutils.NewUserBuilder().WithID("").WithUsername("alice").Build()
	s.Require().NoError(s.store.Users.Create(s.ctx, alice))
	s.NotEmpty(alice.ID)

	dup := testutils.NewUserBuilder().WithID("").WithUsername("alice").Build()
	s.ErrorIs(s.store.Users.Create(s.ctx, dup), user.ErrUsernameTaken)

	names, err := s.store.Users.ListUsernames(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"alice"}, names)
}

func (s *MongoStoreTestSuite) TestUserRecipes_UpsertAndCascade() {
	pasta := s.createRecipe("Pasta")
	ur := &userrecipe.UserRecipe{UserID: "000000000000000000000001", RecipeID: pasta.ID, Status: recipe.StatusToTry}
	s.Require().NoError(s.store.UserRecipes.Upsert(s.ctx, ur))

	ur.Status = recipe.StatusFavorite
	s.Require().NoError(s.store.UserRecipes.Upsert(s.ctx, ur))

	all, err := s.store.UserRecipes.List(s.ctx, userrecipe.Filter{UserID: ur.UserID})
	s.Require().NoError(err)
	s.Require().Len(all, 1)
	s.Equal(recipe.StatusFavorite, all[0].Status)

	removed, err := s.store.UserRecipes.DeleteByRecipe(s.ctx, pasta.ID)
	s.Require().NoError(err)
	s.Equal(int64(1), removed)
}

func (s *MongoStoreTestSuite) TestPing() {
	s.NoError(s.store.Ping(s.ctx))
}

func TestMongoStoreTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}
	suite.Run(t, new(MongoStoreTestSuite))
}
