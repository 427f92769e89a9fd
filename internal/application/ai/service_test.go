package ai

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/alchemorsel/recipebox/internal/domain/recipe"
	"github.com/alchemorsel/recipebox/internal/ports/outbound"
	"github.com/alchemorsel/recipebox/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestBuildPrompt(t *testing.T) {
	recipes := []*recipe.Recipe{
		{Name: "Tomato Soup", Ingredients: []string{"tomato", "salt"}, CuisineType: "Italian", PreparationTime: 30, Instructions: "Simmer."},
		{Name: "Toast", Ingredients: []string{}, CuisineType: "", PreparationTime: 2, Instructions: "Toast it."},
	}

	got := BuildPrompt(AllRecipesIntro, recipes, "What is quick?")

	want := "Here are some recipes:\n" +
		"- Tomato Soup: Ingredients: tomato, salt. Cuisine: Italian. PrepTime: 30min. Instructions: Simmer.\n" +
		"- Toast: Ingredients: . Cuisine: . PrepTime: 2min. Instructions: Toast it.\n" +
		"\nUser question: What is quick?\n" +
		answerInstruction
	assert.Equal(t, want, got)
}

func TestBuildPrompt_UserIntro(t *testing.T) {
	got := BuildPrompt(UserRecipesIntro, nil, "Anything?")

	assert.True(t, strings.HasPrefix(got, "Here are your recipes:\n"))
	assert.Contains(t, got, "User question: Anything?")
}

func TestService_Ask(t *testing.T) {
	client := new(testutils.MockChatCompletionClient)
	service := NewService(client, 0, zaptest.NewLogger(t))

	recipes := testutils.NewRecipeBuilder().BuildMany(2)
	prompt := BuildPrompt(AllRecipesIntro, recipes, "Which is best?")
	client.On("Complete", mock.Anything, prompt).Return("The first one.", nil)

	answer, err := service.Ask(context.Background(), AllRecipesIntro, recipes, "Which is best?")

	require.NoError(t, err)
	assert.Equal(t, "The first one.", answer)
	client.AssertExpectations(t)
}

func TestService_Ask_TruncatesRecipeList(t *testing.T) {
	client := new(testutils.MockChatCompletionClient)
	service := NewService(client, 2, zaptest.NewLogger(t))

	recipes := testutils.NewRecipeBuilder().BuildMany(5)
	var sent string
	client.On("Complete", mock.Anything, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { sent = args.String(1) }).
		Return("ok", nil)

	_, err := service.Ask(context.Background(), AllRecipesIntro, recipes, "q")

	require.NoError(t, err)
	assert.Contains(t, sent, recipes[1].PromptLine())
	assert.NotContains(t, sent, recipes[2].PromptLine())
}

func TestService_Ask_PassesUpstreamErrorThrough(t *testing.T) {
	client := new(testutils.MockChatCompletionClient)
	service := NewService(client, 10, zaptest.NewLogger(t))

	upstream := &outbound.UpstreamError{StatusCode: http.StatusTooManyRequests, Body: []byte(`{"error":"slow down"}`)}
	client.On("Complete", mock.Anything, mock.Anything).Return("", upstream)

	_, err := service.Ask(context.Background(), AllRecipesIntro, nil, "q")

	var got *outbound.UpstreamError
	require.True(t, errors.As(err, &got))
	assert.Equal(t, http.StatusTooManyRequests, got.StatusCode)
}
