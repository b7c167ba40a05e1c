package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/instadish/backend/internal/domain"
	"go.uber.org/zap"
)

const chatPreamble = "You are InstaDish, a friendly cooking assistant. Help users with recipes and cooking advice. " +
	"Keep answers short and practical, and prefer recipes from the context below."

const noIngredientsLine = "The user has not shared any ingredients yet."

// Apologies returned when the language model cannot answer
const (
	timeoutReply     = "Sorry, I'm taking too long to think right now. In the meantime, here are some recipes that might help."
	unavailableReply = "Sorry, the cooking assistant is offline at the moment. Here are some recipes you could try instead."
	genericReply     = "Sorry, something went wrong while preparing an answer. Here are some recipes that might help."
)

// Degraded reasons reported in chat metadata
const (
	reasonTimeout     = "timeout"
	reasonUnavailable = "unavailable"
	reasonError       = "error"
)

var quickQuestionsWithIngredients = []string{
	"What recipes can I make with my ingredients?",
	"How can I make my meal more sustainable?",
	"What substitutions can I make?",
	"What's missing from my ingredients?",
	"How do I store these ingredients properly?",
}

var quickQuestionsGeneral = []string{
	"How do I know when chicken is cooked?",
	"What can I substitute for eggs?",
	"How do I reduce food waste?",
	"What's the most sustainable protein?",
	"How do I meal prep efficiently?",
}

// ChatConfig holds configuration for the chat service
type ChatConfig struct {
	HistoryWindow      int
	CatalogSnippetSize int
	SuggestionLimit    int
	Timeout            time.Duration
}

// PromptInput is everything the prompt template renders
type PromptInput struct {
	Catalog         []domain.Recipe
	Suggested       []domain.RankedRecipe
	Selected        *domain.Recipe
	UserIngredients []string
	History         []domain.ChatTurn
	Message         string
	HistoryWindow   int
	SnippetSize     int
}

// BuildPrompt renders the completion prompt. It is pure templating.
func BuildPrompt(in PromptInput) string {
	window := in.HistoryWindow
	if window <= 0 {
		window = 6
	}
	snippet := in.SnippetSize
	if snippet <= 0 {
		snippet = 5
	}

	var b strings.Builder
	b.WriteString(chatPreamble)
	b.WriteString("\n\nCurrent context:\n")

	b.WriteString("Relevant recipes:\n")
	if len(in.Suggested) > 0 {
		for i, r := range in.Suggested {
			if i >= snippet {
				break
			}
			fmt.Fprintf(&b, "%d. %s - %s", i+1, r.Name, r.Category)
			if r.Match.Matches > 0 {
				fmt.Fprintf(&b, " (%d%% match)", r.Match.Percentage)
			}
			fmt.Fprintf(&b, "\n   Ingredients: %s\n", strings.Join(r.Ingredients, ", "))
		}
	} else {
		for i, r := range in.Catalog {
			if i >= snippet {
				break
			}
			fmt.Fprintf(&b, "%d. %s - %s\n   Ingredients: %s\n", i+1, r.Name, r.Category, strings.Join(r.Ingredients, ", "))
		}
	}

	if in.Selected != nil {
		r := in.Selected
		fmt.Fprintf(&b, "\nSelected recipe: %s\n", r.Name)
		fmt.Fprintf(&b, "Category: %s\nPrep time: %s\nCook time: %s\nDifficulty: %s\n", r.Category, r.PrepTime, r.CookTime, r.Difficulty)
		fmt.Fprintf(&b, "Ingredients: %s\n", strings.Join(r.Ingredients, ", "))
		b.WriteString("Focus your advice on this recipe: cooking tips, substitutions and guidance.\n")
	}

	b.WriteString("\n")
	if len(in.UserIngredients) > 0 {
		fmt.Fprintf(&b, "User's ingredients: %s\n", strings.Join(in.UserIngredients, ", "))
	} else {
		b.WriteString(noIngredientsLine + "\n")
	}

	history := in.History
	if len(history) > window {
		history = history[len(history)-window:]
	}
	if len(history) > 0 {
		b.WriteString("\nConversation so far:\n")
		for _, turn := range history {
			fmt.Fprintf(&b, "%s: %s\n", speaker(turn.Role), strings.TrimSpace(turn.Content))
		}
	}

	fmt.Fprintf(&b, "\nUser: %s\n\nAssistant:", strings.TrimSpace(in.Message))
	return b.String()
}

func speaker(role string) string {
	if strings.EqualFold(role, "assistant") {
		return "Assistant"
	}
	return "User"
}

// ChatService answers cooking questions through a completion client, degrading to canned
// replies and keyword suggestions when the client fails.
type ChatService struct {
	catalog *domain.Catalog
	search  *SearchService
	client  domain.CompletionClient
	config  ChatConfig
	logger  *zap.Logger
}

// NewChatService creates a chat service. client may be nil; every reply is then degraded.
func NewChatService(
	catalog *domain.Catalog,
	search *SearchService,
	client domain.CompletionClient,
	config ChatConfig,
	logger *zap.Logger,
) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.HistoryWindow <= 0 {
		config.HistoryWindow = 6
	}
	if config.CatalogSnippetSize <= 0 {
		config.CatalogSnippetSize = 5
	}
	if config.SuggestionLimit <= 0 {
		config.SuggestionLimit = 3
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}

	return &ChatService{
		catalog: catalog,
		search:  search,
		client:  client,
		config:  config,
		logger:  logger,
	}
}

// Reply builds a prompt for the request and asks the completion client.
// Only an empty message is an error; client failures produce a degraded reply.
func (s *ChatService) Reply(ctx context.Context, req domain.ChatRequest) (domain.ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return domain.ChatResponse{}, domain.ErrEmptyMessage
	}

	user := NewIngredientSet(req.UserIngredients)

	var suggested []domain.RankedRecipe
	if user.Len() > 0 {
		suggested = s.search.Rank(user, RankOptions{Limit: s.config.SuggestionLimit})
	} else {
		suggested = s.search.TextSearch(message, s.config.SuggestionLimit)
	}

	var selected *domain.Recipe
	if req.SelectedRecipeID != nil {
		if r, err := s.catalog.Get(*req.SelectedRecipeID); err == nil {
			selected = &r
		} else {
			s.logger.Debug("selected recipe not in catalog", zap.Int("recipe_id", *req.SelectedRecipeID))
		}
	}

	prompt := BuildPrompt(PromptInput{
		Catalog:         s.catalog.All(),
		Suggested:       suggested,
		Selected:        selected,
		UserIngredients: user.Items(),
		History:         req.ConversationHistory,
		Message:         message,
		HistoryWindow:   s.config.HistoryWindow,
		SnippetSize:     s.config.CatalogSnippetSize,
	})

	resp := domain.ChatResponse{
		Recipes: suggested,
		Metadata: domain.ChatMetadata{
			Model:                s.model(),
			UserIngredientsCount: user.Len(),
			SuggestedRecipes:     len(suggested),
		},
	}

	text, err := s.generate(ctx, prompt)
	if err != nil {
		reply, reason := fallbackFor(err)
		s.logger.Warn("chat completion failed, returning fallback",
			zap.String("reason", reason),
			zap.Error(err),
		)
		resp.Response = reply
		resp.Metadata.Degraded = true
		resp.Metadata.Reason = reason
		return resp, nil
	}

	resp.Response = text
	return resp, nil
}

func (s *ChatService) generate(ctx context.Context, prompt string) (string, error) {
	if s.client == nil {
		return "", domain.ErrCompletionUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	text, err := s.client.Generate(ctx, prompt)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, domain.ErrCompletionTimeout) {
			return "", fmt.Errorf("%w: %v", domain.ErrCompletionTimeout, err)
		}
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", errors.New("empty completion")
	}
	return text, nil
}

// fallbackFor picks the apology and metadata reason for a completion failure
func fallbackFor(err error) (string, string) {
	switch {
	case errors.Is(err, domain.ErrCompletionTimeout), errors.Is(err, context.DeadlineExceeded):
		return timeoutReply, reasonTimeout
	case errors.Is(err, domain.ErrCompletionUnavailable):
		return unavailableReply, reasonUnavailable
	default:
		return genericReply, reasonError
	}
}

// Status reports whether the language model is reachable
func (s *ChatService) Status(ctx context.Context) domain.ChatStatus {
	status := domain.ChatStatus{Model: s.model(), Status: domain.ChatStatusOffline}
	if s.client == nil {
		return status
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.client.Ping(ctx); err != nil {
		s.logger.Debug("completion service ping failed", zap.Error(err))
		return status
	}

	status.LLMAvailable = true
	status.Status = domain.ChatStatusOperational
	return status
}

// QuickQuestions returns suggested opening questions
func (s *ChatService) QuickQuestions(hasIngredients bool) []string {
	if hasIngredients {
		return append([]string(nil), quickQuestionsWithIngredients...)
	}
	return append([]string(nil), quickQuestionsGeneral...)
}

// Configured reports whether a completion client is wired
func (s *ChatService) Configured() bool {
	return s.client != nil
}

func (s *ChatService) model() string {
	if s.client == nil {
		return ""
	}
	return s.client.Model()
}
