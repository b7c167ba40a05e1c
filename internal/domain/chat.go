package domain

// ChatTurn is one message of a conversation
type ChatTurn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatRequest is the chat endpoint input
type ChatRequest struct {
	Message             string     `json:"message"`
	ConversationHistory []ChatTurn `json:"conversationHistory,omitempty"`
	UserIngredients     []string   `json:"userIngredients,omitempty"`
	SelectedRecipeID    *int       `json:"selectedRecipeId,omitempty"`
}

// ChatMetadata describes how a reply was produced
type ChatMetadata struct {
	Model                string `json:"model"`
	UserIngredientsCount int    `json:"userIngredientsCount"`
	SuggestedRecipes     int    `json:"suggestedRecipes"`
	Degraded             bool   `json:"degraded"`
	Reason               string `json:"reason,omitempty"`
	RequestID            string `json:"requestId,omitempty"`
}

// ChatResponse is the chat endpoint output
type ChatResponse struct {
	Response string         `json:"response"`
	Recipes  []RankedRecipe `json:"recipes"`
	Metadata ChatMetadata   `json:"metadata"`
}

// Chat service states
const (
	ChatStatusOperational = "operational"
	ChatStatusOffline     = "offline"
)

// ChatStatus reports whether the language model is reachable
type ChatStatus struct {
	LLMAvailable bool   `json:"llmAvailable"`
	Model        string `json:"model"`
	Status       string `json:"status"`
}
