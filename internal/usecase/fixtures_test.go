package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/instadish/backend/internal/domain"
)

func testRecipes() []domain.Recipe {
	return []domain.Recipe{
		{
			ID:          1,
			Name:        "Spaghetti Carbonara",
			Ingredients: []string{"spaghetti", "eggs", "parmesan cheese", "bacon", "black pepper", "garlic", "olive oil"},
			Category:    "Main Course",
			PrepTime:    "10 minutes",
			CookTime:    "15 minutes",
			Difficulty:  domain.DifficultyMedium,
		},
		{
			ID:          2,
			Name:        "Beef Tacos",
			Ingredients: []string{"beef", "cheese", "tortillas", "lettuce", "tomato"},
			Category:    "Main Course",
			Difficulty:  domain.DifficultyEasy,
		},
		{
			ID:          3,
			Name:        "Lentil Soup",
			Ingredients: []string{"lentils", "carrot", "onion", "garlic", "vegetable broth"},
			Category:    "Soup",
			Difficulty:  domain.DifficultyEasy,
		},
		{
			ID:          4,
			Name:        "Garlic Bread",
			Ingredients: []string{"bread", "garlic", "butter"},
			Category:    "Side Dish",
			Difficulty:  domain.DifficultyEasy,
		},
		{
			ID:          5,
			Name:        "Cheese Omelette",
			Ingredients: []string{"eggs", "cheese"},
			Category:    "Breakfast",
			Difficulty:  domain.DifficultyEasy,
		},
		{
			ID:       6,
			Name:     "Mystery Dish",
			Category: "Main Course",
		},
	}
}

func testCatalog(t *testing.T) *domain.Catalog {
	t.Helper()
	c, err := domain.NewCatalog(testRecipes())
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	return c
}

func newTestSearchService(t *testing.T) *SearchService {
	t.Helper()
	return NewSearchService(
		testCatalog(t),
		NewMatchingService(MatchConfig{EnableFuzzyMatching: true}, nil),
		NewScoringService(DefaultScoringRules()),
		NewQueryPreprocessor(nil),
		SearchConfig{},
		nil,
	)
}

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	mu       sync.Mutex
	data     map[string]interface{}
	getError error
	setError error
	sets     int
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{
		data: make(map[string]interface{}),
	}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) (interface{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getError != nil {
		return nil, m.getError
	}
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok, nil
}

// MockNutritionClient is a mock implementation of domain.NutritionClient
type MockNutritionClient struct {
	mu      sync.Mutex
	foods   map[string]*domain.NutritionFacts
	err     error
	queries []string
}

func NewMockNutritionClient() *MockNutritionClient {
	return &MockNutritionClient{foods: make(map[string]*domain.NutritionFacts)}
}

func (m *MockNutritionClient) SearchFood(ctx context.Context, query string) (*domain.NutritionFacts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queries = append(m.queries, query)
	if m.err != nil {
		return nil, m.err
	}
	if f, ok := m.foods[query]; ok {
		c := *f
		return &c, nil
	}
	return nil, domain.ErrNutritionNotFound
}

func (m *MockNutritionClient) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queries)
}

// MockCompletionClient is a mock implementation of domain.CompletionClient
type MockCompletionClient struct {
	reply      string
	err        error
	pingErr    error
	delay      time.Duration
	lastPrompt string
}

func (m *MockCompletionClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.lastPrompt = prompt
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func (m *MockCompletionClient) Ping(ctx context.Context) error {
	return m.pingErr
}

func (m *MockCompletionClient) Model() string {
	return "llama3.2:3b"
}
