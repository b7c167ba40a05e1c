package fatsecret

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/instadish/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chickenSearch = `{"foods":{"food":{"food_id":"1641","food_name":"Chicken Breast","food_type":"Generic"},"max_results":"1","total_results":"120"}}`

const chickenFood = `{"food":{"food_id":"1641","food_name":"Chicken Breast","servings":{"serving":[
	{"serving_description":"100 g","calories":"165","protein":"31.02","carbohydrate":"0","fat":"3.57","fiber":"0","sugar":"0","sodium":"74"},
	{"serving_description":"1 breast","calories":"284","protein":"53.4","carbohydrate":"0","fat":"6.14","sodium":"127"}
]}}}`

type fakeAPI struct {
	tokenCalls  atomic.Int32
	apiCalls    atomic.Int32
	failFirst   atomic.Int32
	searchBody  string
	foodBody    string
	tokenStatus int
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	f := &fakeAPI{searchBody: chickenSearch, foodBody: chickenFood, tokenStatus: http.StatusOK}

	mux := http.NewServeMux()
	mux.HandleFunc("/connect/token", func(w http.ResponseWriter, r *http.Request) {
		f.tokenCalls.Add(1)
		id, secret, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "client-id", id)
		assert.Equal(t, "client-secret", secret)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.Equal(t, "basic", r.PostForm.Get("scope"))

		if f.tokenStatus != http.StatusOK {
			w.WriteHeader(f.tokenStatus)
			w.Write([]byte(`{"error":"invalid_client"}`))
			return
		}
		json.NewEncoder(w).Encode(tokenResponse{AccessToken: "tok", ExpiresIn: 86400, TokenType: "Bearer"})
	})
	mux.HandleFunc("/rest/server.api", func(w http.ResponseWriter, r *http.Request) {
		f.apiCalls.Add(1)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))

		if f.failFirst.Load() > 0 {
			f.failFirst.Add(-1)
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("method") {
		case "foods.search":
			assert.NotEmpty(t, r.URL.Query().Get("search_expression"))
			w.Write([]byte(f.searchBody))
		case "food.get.v2":
			assert.Equal(t, "1641", r.URL.Query().Get("food_id"))
			w.Write([]byte(f.foodBody))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return f, server
}

func newTestClient(server *httptest.Server) *Client {
	c := NewClient(Config{
		ClientID:          "client-id",
		ClientSecret:      "client-secret",
		BaseURL:           server.URL + "/rest/server.api",
		TokenURL:          server.URL + "/connect/token",
		RequestsPerSecond: 1000,
	}, nil)
	c.backoff = func(int) time.Duration { return 0 }
	return c
}

func TestNewClient(t *testing.T) {
	client := NewClient(Config{ClientID: "id", ClientSecret: "secret"}, nil)

	assert.Equal(t, defaultBaseURL, client.config.BaseURL)
	assert.Equal(t, defaultTokenURL, client.config.TokenURL)
	assert.Equal(t, 10*time.Second, client.httpClient.Timeout)
	assert.NotNil(t, client.rateLimiter)
	assert.False(t, client.debug)

	client.SetDebug(true)
	assert.True(t, client.debug)
}

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 500 * time.Millisecond},
		{2, 1000 * time.Millisecond},
		{3, 2000 * time.Millisecond},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, exponentialBackoff(tt.attempt))
	}
}

func TestSearchFood_Success(t *testing.T) {
	api, server := newFakeAPI(t)
	client := newTestClient(server)

	facts, err := client.SearchFood(context.Background(), "chicken breast")
	require.NoError(t, err)

	assert.Equal(t, "1641", facts.FoodID)
	assert.Equal(t, "Chicken Breast", facts.FoodName)
	assert.Equal(t, "100 g", facts.Serving)
	assert.Equal(t, 165.0, facts.Calories)
	assert.Equal(t, 31.02, facts.Protein)
	assert.Equal(t, 3.57, facts.Fat)
	assert.Equal(t, 74.0, facts.Sodium)

	assert.Equal(t, int32(1), api.tokenCalls.Load())
	assert.Equal(t, int32(2), api.apiCalls.Load())
}

func TestSearchFood_ReusesToken(t *testing.T) {
	api, server := newFakeAPI(t)
	client := newTestClient(server)

	for i := 0; i < 3; i++ {
		_, err := client.SearchFood(context.Background(), "chicken")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), api.tokenCalls.Load())
}

func TestSearchFood_RefreshesExpiredToken(t *testing.T) {
	api, server := newFakeAPI(t)
	client := newTestClient(server)

	now := time.Now()
	client.now = func() time.Time { return now }
	_, err := client.SearchFood(context.Background(), "chicken")
	require.NoError(t, err)

	// a day-long token counts as expired a minute early
	now = now.Add(24*time.Hour - 30*time.Second)
	_, err = client.SearchFood(context.Background(), "chicken")
	require.NoError(t, err)

	assert.Equal(t, int32(2), api.tokenCalls.Load())
}

func TestSearchFood_SingleServingObject(t *testing.T) {
	api, server := newFakeAPI(t)
	api.foodBody = `{"food":{"food_id":"1641","food_name":"Egg","servings":{"serving":{"serving_description":"1 large","calories":"72","protein":"6.3"}}}}`
	client := newTestClient(server)

	facts, err := client.SearchFood(context.Background(), "egg")
	require.NoError(t, err)
	assert.Equal(t, 72.0, facts.Calories)
	assert.Equal(t, 0.0, facts.Sugar)
}

func TestSearchFood_NotFound(t *testing.T) {
	api, server := newFakeAPI(t)
	api.searchBody = `{"foods":{"max_results":"1","total_results":"0","page_number":"0"}}`
	client := newTestClient(server)

	_, err := client.SearchFood(context.Background(), "unobtainium")
	assert.ErrorIs(t, err, domain.ErrNutritionNotFound)

	_, err = client.SearchFood(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrNutritionNotFound)
}

func TestSearchFood_APIErrorEnvelope(t *testing.T) {
	api, server := newFakeAPI(t)
	api.searchBody = `{"error":{"code":21,"message":"Invalid IP address detected"}}`
	client := newTestClient(server)

	_, err := client.SearchFood(context.Background(), "chicken")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNutritionAPIFailure)
	assert.Contains(t, err.Error(), "Invalid IP address")
}

func TestSearchFood_RetriesTransientFailures(t *testing.T) {
	api, server := newFakeAPI(t)
	api.failFirst.Store(2)
	client := newTestClient(server)

	_, err := client.SearchFood(context.Background(), "chicken")
	require.NoError(t, err)
	assert.Equal(t, int32(4), api.apiCalls.Load())
}

func TestSearchFood_GivesUpAfterMaxAttempts(t *testing.T) {
	api, server := newFakeAPI(t)
	api.failFirst.Store(10)
	client := newTestClient(server)

	_, err := client.SearchFood(context.Background(), "chicken")
	assert.ErrorIs(t, err, domain.ErrNutritionAPIFailure)
	assert.Equal(t, int32(maxAttempts), api.apiCalls.Load())
}

func TestSearchFood_TokenRejected(t *testing.T) {
	api, server := newFakeAPI(t)
	api.tokenStatus = http.StatusUnauthorized
	client := newTestClient(server)

	_, err := client.SearchFood(context.Background(), "chicken")
	assert.ErrorIs(t, err, domain.ErrNutritionAPIFailure)
	assert.Equal(t, int32(0), api.apiCalls.Load())
}

func TestSearchFood_ContextCancelled(t *testing.T) {
	_, server := newFakeAPI(t)
	client := newTestClient(server)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.SearchFood(ctx, "chicken")
	assert.Error(t, err)
}

func TestOneOrMany(t *testing.T) {
	refs, err := oneOrMany[domain.FatSecretFoodRef](json.RawMessage(`{"food_id":"1"}`))
	require.NoError(t, err)
	assert.Equal(t, []domain.FatSecretFoodRef{{FoodID: "1"}}, refs)

	refs, err = oneOrMany[domain.FatSecretFoodRef](json.RawMessage(`[{"food_id":"1"},{"food_id":"2"}]`))
	require.NoError(t, err)
	assert.Len(t, refs, 2)

	refs, err = oneOrMany[domain.FatSecretFoodRef](nil)
	require.NoError(t, err)
	assert.Empty(t, refs)

	_, err = oneOrMany[domain.FatSecretFoodRef](json.RawMessage(`"nope"`))
	assert.Error(t, err)
}
