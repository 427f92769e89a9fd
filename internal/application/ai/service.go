// Package ai builds recipe prompts and forwards them to the chat-completion endpoint.
package ai

import (
	"context"
	"strings"

	"github.com/alchemorsel/recipebox/internal/domain/recipe"
	"github.com/alchemorsel/recipebox/internal/ports/outbound"
	"go.uber.org/zap"
)

// Prompt prefixes
const (
	AllRecipesIntro  = "Here are some recipes:\n"
	UserRecipesIntro = "Here are your recipes:\n"

	answerInstruction = "Based only on the recipes above, answer the user's question. " +
		"Include the best recipe(s) and explain your choice with nutritional info if possible."

	// DefaultMaxPromptRecipes bounds the prompt when no limit is configured
	DefaultMaxPromptRecipes = 200
)

// Service answers questions about a set of recipes
type Service struct {
	client     outbound.ChatCompletionClient
	maxRecipes int
	logger     *zap.Logger
}

// NewService creates a new AI service. maxRecipes <= 0 selects DefaultMaxPromptRecipes.
func NewService(client outbound.ChatCompletionClient, maxRecipes int, logger *zap.Logger) *Service {
	if maxRecipes <= 0 {
		maxRecipes = DefaultMaxPromptRecipes
	}
	return &Service{
		client:     client,
		maxRecipes: maxRecipes,
		logger:     logger.Named("ai-service"),
	}
}

// Ask renders the recipes into a prompt and returns the model's answer.
// Upstream failures are returned unchanged so callers can relay them.
func (s *Service) Ask(ctx context.Context, intro string, recipes []*recipe.Recipe, question string) (string, error) {
	if len(recipes) > s.maxRecipes {
		s.logger.Warn("Prompt recipe list truncated",
			zap.Int("recipes", len(recipes)),
			zap.Int("limit", s.maxRecipes),
		)
		recipes = recipes[:s.maxRecipes]
	}

	prompt := BuildPrompt(intro, recipes, question)

	answer, err := s.client.Complete(ctx, prompt)
	if err != nil {
		s.logger.Error("Chat completion failed", zap.Error(err))
		return "", err
	}

	return answer, nil
}

// BuildPrompt renders one line per recipe followed by the question and the answering instruction.
func BuildPrompt(intro string, recipes []*recipe.Recipe, question string) string {
	lines := make([]string, 0, len(recipes))
	for _, r := range recipes {
		lines = append(lines, r.PromptLine())
	}

	var b strings.Builder
	b.WriteString(intro)
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\nUser question: ")
	b.WriteString(question)
	b.WriteString("\n")
	b.WriteString(answerInstruction)
	return b.String()
}
