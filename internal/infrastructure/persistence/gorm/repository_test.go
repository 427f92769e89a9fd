package gorm_test

import (
	"context"
	"testing"

	"github.com/alchemorsel/recipebox/internal/domain/recipe"
	"github.com/alchemorsel/recipebox/internal/domain/user"
	"github.com/alchemorsel/recipebox/internal/domain/userrecipe"
	"github.com/alchemorsel/recipebox/internal/infrastructure/persistence"
	"github.com/alchemorsel/recipebox/internal/testutils"
	"github.com/stretchr/testify/suite"
)

type RepositoryTestSuite struct {
	suite.Suite
	repos *persistence.Repositories
	ctx   context.Context
}

func (s *RepositoryTestSuite) SetupTest() {
	s.repos = testutils.NewSQLiteRepositories(s.T())
	s.ctx = context.Background()
}

func (s *RepositoryTestSuite) createRecipe(name, cuisine string) *recipe.Recipe {
	r := testutils.NewRecipeBuilder().WithoutID().WithName(name).WithCuisine(cuisine).Build()
	s.Require().NoError(s.repos.Recipes.Create(s.ctx, r))
	s.Require().NotEmpty(r.ID)
	return r
}

func (s *RepositoryTestSuite) createUser(username string) *user.User {
	u := testutils.NewUserBuilder().WithID("").WithUsername(username).Build()
	s.Require().NoError(s.repos.Users.Create(s.ctx, u))
	s.Require().NotEmpty(u.ID)
	return u
}

func (s *RepositoryTestSuite) TestRecipe_CreateAndFind() {
	created := testutils.NewRecipeBuilder().WithoutID().
		WithName("Tomato Soup").
		WithIngredients("tomato", "salt").
		WithPrepTime(30).
		WithStatus(recipe.StatusFavorite).
		Build()
	s.Require().NoError(s.repos.Recipes.Create(s.ctx, created))

	found, err := s.repos.Recipes.FindByID(s.ctx, created.ID)

	s.Require().NoError(err)
	s.Equal("Tomato Soup", found.Name)
	s.Equal([]string{"tomato", "salt"}, found.Ingredients)
	s.Equal(30, found.PreparationTime)
	s.Equal(recipe.StatusFavorite, found.Status)
}

func (s *RepositoryTestSuite) TestRecipe_FindMissing() {
	_, err := s.repos.Recipes.FindByID(s.ctx, "missing")

	s.ErrorIs(err, recipe.ErrRecipeNotFound)
}

func (s *RepositoryTestSuite) TestRecipe_SearchIsCaseInsensitiveSubstring() {
	s.createRecipe("Pasta", "Italian")
	s.createRecipe("Pasta Bake", "Italian")
	s.createRecipe("Ramen", "Japanese")

	byName, err := s.repos.Recipes.Search(s.ctx, "pasta")
	s.Require().NoError(err)
	s.Len(byName, 2)

	byCuisine, err := s.repos.Recipes.Search(s.ctx, "JAPAN")
	s.Require().NoError(err)
	s.Require().Len(byCuisine, 1)
	s.Equal("Ramen", byCuisine[0].Name)

	all, err := s.repos.Recipes.Search(s.ctx, "")
	s.Require().NoError(err)
	s.Len(all, 3)
}

func (s *RepositoryTestSuite) TestRecipe_SearchFoldsNonASCII() {
	s.createRecipe("Crème Brûlée", "Française")
	s.createRecipe("Ramen", "Japanese")

	byName, err := s.repos.Recipes.Search(s.ctx, "CRÈME BRÛ")
	s.Require().NoError(err)
	s.Require().Len(byName, 1)
	s.Equal("Crème Brûlée", byName[0].Name)

	byCuisine, err := s.repos.Recipes.Search(s.ctx, "FRANÇAISE")
	s.Require().NoError(err)
	s.Len(byCuisine, 1)
}

func (s *RepositoryTestSuite) TestRecipe_SearchFollowsReplacedName() {
	r := s.createRecipe("Soup", "French")
	r.Name = "Ÿogurt Bowl"
	s.Require().NoError(s.repos.Recipes.Replace(s.ctx, r))

	got, err := s.repos.Recipes.Search(s.ctx, "ÿogurt")
	s.Require().NoError(err)
	s.Len(got, 1)

	stale, err := s.repos.Recipes.Search(s.ctx, "soup")
	s.Require().NoError(err)
	s.Empty(stale)
}

func (s *RepositoryTestSuite) TestRecipe_SearchEscapesWildcards() {
	s.createRecipe("Pasta", "Italian")

	got, err := s.repos.Recipes.Search(s.ctx, "%")

	s.Require().NoError(err)
	s.Empty(got)
}

func (s *RepositoryTestSuite) TestRecipe_Replace() {
	r := s.createRecipe("Soup", "French")
	r.Name = "Onion Soup"
	r.Ingredients = []string{"onion"}

	s.Require().NoError(s.repos.Recipes.Replace(s.ctx, r))

	found, err := s.repos.Recipes.FindByID(s.ctx, r.ID)
	s.Require().NoError(err)
	s.Equal("Onion Soup", found.Name)
	s.Equal([]string{"onion"}, found.Ingredients)

	missing := testutils.NewRecipeBuilder().WithID("missing").Build()
	s.ErrorIs(s.repos.Recipes.Replace(s.ctx, missing), recipe.ErrRecipeNotFound)
}

func (s *RepositoryTestSuite) TestRecipe_UpdateStatus() {
	r := s.createRecipe("Soup", "French")

	updated, err := s.repos.Recipes.UpdateStatus(s.ctx, r.ID, recipe.StatusMadeBefore)
	s.Require().NoError(err)
	s.Equal(recipe.StatusMadeBefore, updated.Status)
	s.Equal("Soup", updated.Name)

	_, err = s.repos.Recipes.UpdateStatus(s.ctx, "missing", recipe.StatusFavorite)
	s.ErrorIs(err, recipe.ErrRecipeNotFound)
}

func (s *RepositoryTestSuite) TestRecipe_DeleteAndFindByIDs() {
	keep := s.createRecipe("Keep", "")
	drop := s.createRecipe("Drop", "")

	s.Require().NoError(s.repos.Recipes.Delete(s.ctx, drop.ID))
	s.ErrorIs(s.repos.Recipes.Delete(s.ctx, drop.ID), recipe.ErrRecipeNotFound)

	found, err := s.repos.Recipes.FindByIDs(s.ctx, []string{keep.ID, drop.ID})
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.Equal(keep.ID, found[0].ID)
}

func (s *RepositoryTestSuite) TestUser_DuplicateUsername() {
	s.createUser("alice")

	dup := testutils.NewUserBuilder().WithID("").WithUsername("alice").Build()
	s.ErrorIs(s.repos.Users.Create(s.ctx, dup), user.ErrUsernameTaken)
}

func (s *RepositoryTestSuite) TestUser_ListAndDelete() {
	bob := s.createUser("bob")
	s.createUser("alice")

	names, err := s.repos.Users.ListUsernames(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"alice", "bob"}, names)

	s.Require().NoError(s.repos.Users.Delete(s.ctx, bob.ID))
	_, err = s.repos.Users.FindByUsername(s.ctx, "bob")
	s.ErrorIs(err, user.ErrUserNotFound)
	s.ErrorIs(s.repos.Users.Delete(s.ctx, bob.ID), user.ErrUserNotFound)
}

func (s *RepositoryTestSuite) TestUserRecipe_UpsertKeepsOneRowPerPair() {
	u := s.createUser("alice")
	r := s.createRecipe("Pasta", "Italian")

	first := &userrecipe.UserRecipe{UserID: u.ID, RecipeID: r.ID, Status: recipe.StatusToTry}
	s.Require().NoError(s.repos.UserRecipes.Upsert(s.ctx, first))

	second := &userrecipe.UserRecipe{UserID: u.ID, RecipeID: r.ID, Status: recipe.StatusFavorite}
	s.Require().NoError(s.repos.UserRecipes.Upsert(s.ctx, second))

	s.Equal(first.ID, second.ID)

	all, err := s.repos.UserRecipes.List(s.ctx, userrecipe.Filter{UserID: u.ID})
	s.Require().NoError(err)
	s.Require().Len(all, 1)
	s.Equal(recipe.StatusFavorite, all[0].Status)
}

func (s *RepositoryTestSuite) TestUserRecipe_FilterAndCascades() {
	alice := s.createUser("alice")
	bob := s.createUser("bob")
	pasta := s.createRecipe("Pasta", "Italian")
	soup := s.createRecipe("Soup", "French")

	for _, ur := range []*userrecipe.UserRecipe{
		{UserID: alice.ID, RecipeID: pasta.ID, Status: recipe.StatusFavorite},
		{UserID: alice.ID, RecipeID: soup.ID, Status: recipe.StatusToTry},
		{UserID: bob.ID, RecipeID: pasta.ID, Status: recipe.StatusFavorite},
	} {
		s.Require().NoError(s.repos.UserRecipes.Upsert(s.ctx, ur))
	}

	favorites, err := s.repos.UserRecipes.List(s.ctx, userrecipe.Filter{UserID: alice.ID, Status: recipe.StatusFavorite})
	s.Require().NoError(err)
	s.Require().Len(favorites, 1)
	s.Equal(pasta.ID, favorites[0].RecipeID)

	removed, err := s.repos.UserRecipes.DeleteByRecipe(s.ctx, pasta.ID)
	s.Require().NoError(err)
	s.Equal(int64(2), removed)

	removed, err = s.repos.UserRecipes.DeleteByUser(s.ctx, alice.ID)
	s.Require().NoError(err)
	s.Equal(int64(1), removed)

	_, err = s.repos.UserRecipes.Find(s.ctx, alice.ID, soup.ID)
	s.ErrorIs(err, userrecipe.ErrUserRecipeNotFound)
	s.ErrorIs(s.repos.UserRecipes.Delete(s.ctx, alice.ID, soup.ID), userrecipe.ErrUserRecipeNotFound)
}

func (s *RepositoryTestSuite) TestPing() {
	s.NoError(s.repos.Pinger.Ping(s.ctx))
}

func TestRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
