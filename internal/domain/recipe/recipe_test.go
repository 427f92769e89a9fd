package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{input: "favorite", want: StatusFavorite},
		{input: "Favorite", want: StatusFavorite},
		{input: "  TO TRY ", want: StatusToTry},
		{input: "Made Before", want: StatusMadeBefore},
		{input: "cooked", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOptionalStatus_AcceptsEmpty(t *testing.T) {
	got, err := ParseOptionalStatus("   ")
	require.NoError(t, err)
	assert.Equal(t, Status(""), got)

	_, err = ParseOptionalStatus("nope")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestNewRecipe(t *testing.T) {
	t.Run("ValidRecipe", func(t *testing.T) {
		r, err := NewRecipe(" Tomato Soup ", []string{"tomato", "salt"}, "Simmer.", "Italian", 30, "Favorite")
		require.NoError(t, err)
		assert.Empty(t, r.ID)
		assert.Equal(t, "Tomato Soup", r.Name)
		assert.Equal(t, StatusFavorite, r.Status)
	})

	t.Run("NilIngredientsBecomeEmpty", func(t *testing.T) {
		r, err := NewRecipe("Toast", nil, "", "", 0, "")
		require.NoError(t, err)
		assert.NotNil(t, r.Ingredients)
		assert.Empty(t, r.Ingredients)
		assert.Equal(t, Status(""), r.Status)
	})

	t.Run("Errors", func(t *testing.T) {
		_, err := NewRecipe("", nil, "", "", 0, "")
		assert.ErrorIs(t, err, ErrNameRequired)

		_, err = NewRecipe("Soup", nil, "", "", -1, "")
		assert.ErrorIs(t, err, ErrNegativePrepTime)

		_, err = NewRecipe("Soup", []string{"salt", " "}, "", "", 5, "")
		assert.ErrorIs(t, err, ErrEmptyIngredientName)

		_, err = NewRecipe("Soup", nil, "", "", 5, "eaten")
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestRecipe_NameEquals(t *testing.T) {
	r := &Recipe{Name: "Pasta Bake"}

	assert.True(t, r.NameEquals("pasta bake"))
	assert.True(t, r.NameEquals("PASTA BAKE"))
	assert.False(t, r.NameEquals("Pasta"))
	assert.False(t, r.NameEquals("Pasta Bake "))
}

func TestRecipe_PromptLine(t *testing.T) {
	r := &Recipe{
		Name:            "Tomato Soup",
		Ingredients:     []string{"tomato", "salt"},
		Instructions:    "Simmer.",
		CuisineType:     "Italian",
		PreparationTime: 30,
	}

	assert.Equal(t,
		"- Tomato Soup: Ingredients: tomato, salt. Cuisine: Italian. PrepTime: 30min. Instructions: Simmer.",
		r.PromptLine(),
	)
}

func TestRecipe_WithStatusCopies(t *testing.T) {
	r := &Recipe{ID: "1", Name: "Soup", Ingredients: []string{"water"}, Status: StatusFavorite}

	projected := r.WithStatus(StatusToTry)
	projected.Ingredients[0] = "broth"

	assert.Equal(t, StatusToTry, projected.Status)
	assert.Equal(t, StatusFavorite, r.Status)
	assert.Equal(t, "water", r.Ingredients[0])
}

func TestCheckID(t *testing.T) {
	assert.NoError(t, CheckID("abc", "abc"))
	assert.ErrorIs(t, CheckID("abc", "abd"), ErrIDMismatch)
	assert.ErrorIs(t, CheckID("abc", ""), ErrIDMismatch)
}
