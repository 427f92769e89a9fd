package recipe

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/alchemorsel/recipebox/internal/application/ai"
	"github.com/alchemorsel/recipebox/internal/domain/recipe"
	"github.com/alchemorsel/recipebox/internal/ports/inbound"
	"github.com/alchemorsel/recipebox/internal/ports/outbound"
	"github.com/alchemorsel/recipebox/internal/testutils"
	apperrors "github.com/alchemorsel/recipebox/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
)

type RecipeServiceTestSuite struct {
	suite.Suite
	recipes     *testutils.MockRecipeRepository
	userRecipes *testutils.MockUserRecipeRepository
	assistant   *testutils.MockRecipeAssistant
	service     *Service
	ctx         context.Context
}

func (s *RecipeServiceTestSuite) SetupTest() {
	s.recipes = new(testutils.MockRecipeRepository)
	s.userRecipes = new(testutils.MockUserRecipeRepository)
	s.assistant = new(testutils.MockRecipeAssistant)
	s.service = NewService(s.recipes, s.userRecipes, s.assistant, zaptest.NewLogger(s.T()))
	s.ctx = context.Background()
}

func (s *RecipeServiceTestSuite) TearDownTest() {
	s.recipes.AssertExpectations(s.T())
	s.userRecipes.AssertExpectations(s.T())
	s.assistant.AssertExpectations(s.T())
}

func (s *RecipeServiceTestSuite) TestList_EmptyIsNotNil() {
	s.recipes.On("List", s.ctx).Return(nil, nil)

	got, err := s.service.List(s.ctx)

	s.Require().NoError(err)
	s.NotNil(got)
	s.Empty(got)
}

func (s *RecipeServiceTestSuite) TestGet_NotFound() {
	s.recipes.On("FindByID", s.ctx, "missing").Return(nil, recipe.ErrRecipeNotFound)

	_, err := s.service.Get(s.ctx, "missing")

	s.True(apperrors.Is(err, apperrors.CodeRecipeNotFound))
}

func (s *RecipeServiceTestSuite) TestCreate_AssignsID() {
	s.recipes.On("Create", s.ctx, mock.AnythingOfType("*recipe.Recipe")).
		Run(func(args mock.Arguments) { args.Get(1).(*recipe.Recipe).ID = "new-id" }).
		Return(nil)

	got, err := s.service.Create(s.ctx, inbound.CreateRecipeCommand{
		Name:            "Tomato Soup",
		Ingredients:     []string{"tomato"},
		PreparationTime: 30,
		Status:          "Favorite",
	})

	s.Require().NoError(err)
	s.Equal("new-id", got.ID)
	s.Equal("favorite", got.Status)
}

func (s *RecipeServiceTestSuite) TestCreate_InvalidStatus() {
	_, err := s.service.Create(s.ctx, inbound.CreateRecipeCommand{Name: "Soup", Status: "eaten"})

	s.True(apperrors.Is(err, apperrors.CodeInvalidStatus))
	s.recipes.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *RecipeServiceTestSuite) TestUpdate_IDMismatch() {
	err := s.service.Update(s.ctx, inbound.UpdateRecipeCommand{
		PathID:              "a",
		ID:                  "b",
		CreateRecipeCommand: inbound.CreateRecipeCommand{Name: "Soup"},
	})

	s.True(apperrors.Is(err, apperrors.CodeIDMismatch))
}

func (s *RecipeServiceTestSuite) TestUpdate_ReplacesUsingPathID() {
	s.recipes.On("Replace", s.ctx, mock.MatchedBy(func(r *recipe.Recipe) bool {
		return r.ID == "a" && r.Name == "Soup"
	})).Return(nil)

	err := s.service.Update(s.ctx, inbound.UpdateRecipeCommand{
		PathID:              "a",
		ID:                  "a",
		CreateRecipeCommand: inbound.CreateRecipeCommand{Name: "Soup"},
	})

	s.NoError(err)
}

func (s *RecipeServiceTestSuite) TestDelete_CascadesToAssociations() {
	s.recipes.On("Delete", s.ctx, "r1").Return(nil)
	s.userRecipes.On("DeleteByRecipe", s.ctx, "r1").Return(int64(2), nil)

	s.NoError(s.service.Delete(s.ctx, "r1"))
}

func (s *RecipeServiceTestSuite) TestDelete_NotFoundSkipsCascade() {
	s.recipes.On("Delete", s.ctx, "r1").Return(recipe.ErrRecipeNotFound)

	err := s.service.Delete(s.ctx, "r1")

	s.True(apperrors.Is(err, apperrors.CodeRecipeNotFound))
	s.userRecipes.AssertNotCalled(s.T(), "DeleteByRecipe", mock.Anything, mock.Anything)
}

func (s *RecipeServiceTestSuite) TestPatchStatus() {
	updated := testutils.NewRecipeBuilder().WithID("r1").WithStatus(recipe.StatusMadeBefore).Build()
	s.recipes.On("UpdateStatus", s.ctx, "r1", recipe.StatusMadeBefore).Return(updated, nil)

	got, err := s.service.PatchStatus(s.ctx, "r1", "made before")

	s.Require().NoError(err)
	s.Equal("made before", got.Status)
}

func (s *RecipeServiceTestSuite) TestPatchStatus_Invalid() {
	_, err := s.service.PatchStatus(s.ctx, "r1", "eaten")

	s.True(apperrors.Is(err, apperrors.CodeInvalidStatus))
}

func (s *RecipeServiceTestSuite) TestPatchStatus_Missing() {
	s.recipes.On("UpdateStatus", s.ctx, "nope", recipe.StatusFavorite).Return(nil, recipe.ErrRecipeNotFound)

	_, err := s.service.PatchStatus(s.ctx, "nope", "favorite")

	s.True(apperrors.Is(err, apperrors.CodeRecipeNotFound))
}

func (s *RecipeServiceTestSuite) TestAskAI_UsesEveryRecipe() {
	all := testutils.NewRecipeBuilder().BuildMany(3)
	s.recipes.On("List", s.ctx).Return(all, nil)
	s.assistant.On("Ask", s.ctx, ai.AllRecipesIntro, all, "dinner?").Return("Soup.", nil)

	got, err := s.service.AskAI(s.ctx, "dinner?")

	s.Require().NoError(err)
	s.Equal("Soup.", got.Answer)
}

func (s *RecipeServiceTestSuite) TestAskAI_RelaysUpstreamError() {
	s.recipes.On("List", s.ctx).Return([]*recipe.Recipe{}, nil)
	s.assistant.On("Ask", s.ctx, ai.AllRecipesIntro, []*recipe.Recipe{}, "q").
		Return("", &outbound.UpstreamError{StatusCode: http.StatusUnauthorized})

	_, err := s.service.AskAI(s.ctx, "q")

	var upstream *outbound.UpstreamError
	s.True(errors.As(err, &upstream))
}

func TestRecipeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecipeServiceTestSuite))
}

func TestMapError(t *testing.T) {
	assert.Equal(t, apperrors.CodeValidationFailed, apperrors.GetCode(MapError(recipe.ErrNameRequired, "op", "")))
	assert.Equal(t, apperrors.CodeDatabaseError, apperrors.GetCode(MapError(errors.New("disk"), "op", "")))

	original := apperrors.NewIDMismatchError("a", "b")
	assert.Same(t, original, MapError(original, "op", ""))
}

func TestToDTO_NilIngredients(t *testing.T) {
	dto := ToDTO(&recipe.Recipe{ID: "1", Name: "Soup"})

	require.NotNil(t, dto.Ingredients)
	assert.Empty(t, dto.Ingredients)
	assert.Equal(t, "", dto.Status)
}
