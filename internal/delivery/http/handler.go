package http

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/instadish/backend/internal/domain"
	"github.com/instadish/backend/internal/usecase"
	"go.uber.org/zap"
)

const (
	serviceName = "instadish-backend"
	// Version is reported by the health endpoint
	Version = "1.0.0"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	search   *usecase.SearchService
	analysis *usecase.AnalysisService
	chat     *usecase.ChatService
	logger   *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(
	search *usecase.SearchService,
	analysis *usecase.AnalysisService,
	chat *usecase.ChatService,
	logger *zap.Logger,
) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		search:   search,
		analysis: analysis,
		chat:     chat,
		logger:   logger,
	}
}

// AnalyzeRequest is the sustainability analysis input
type AnalyzeRequest struct {
	Ingredients []string `json:"ingredients"`
}

// QuickQuestionsRequest optionally carries the user's ingredients
type QuickQuestionsRequest struct {
	UserIngredients []string `json:"userIngredients"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "healthy",
		"service":       serviceName,
		"version":       Version,
		"recipes":       h.search.Count(),
		"llmConfigured": h.chat.Configured(),
	})
}

// ListRecipes handles GET /recipes?category&search&limit
func (h *Handler) ListRecipes(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			abortWithError(c, http.StatusBadRequest, CodeInvalidRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	recipes := h.search.List(c.Query("category"), c.Query("search"), limit)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    recipes,
		"count":   len(recipes),
	})
}

// Categories handles GET /recipes/categories
func (h *Handler) Categories(c *gin.Context) {
	categories := h.search.Categories()
	if categories == nil {
		categories = []string{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    categories,
	})
}

// GetRecipe handles GET /recipes/:id
func (h *Handler) GetRecipe(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, CodeInvalidRequest, "recipe id must be an integer")
		return
	}

	detail, err := h.search.RecipeDetails(id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    detail,
	})
}

// SearchRecipes handles POST /recipes/search
func (h *Handler) SearchRecipes(c *gin.Context) {
	var req domain.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	result, err := h.search.Search(req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"data":           result.Recipes,
		"count":          len(result.Recipes),
		"searchCriteria": result.Criteria,
	})
}

// AnalyzeSustainability handles POST /sustainability/analyze
func (h *Handler) AnalyzeSustainability(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	analysis, err := h.analysis.Analyze(c.Request.Context(), req.Ingredients)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    analysis,
	})
}

// Chat handles POST /chat
func (h *Handler) Chat(c *gin.Context) {
	var req domain.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	reply, err := h.chat.Reply(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	reply.Metadata.RequestID = requestid.Get(c)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"response": reply.Response,
		"recipes":  reply.Recipes,
		"metadata": reply.Metadata,
	})
}

// ChatStatus handles GET /chat/status
func (h *Handler) ChatStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.chat.Status(c.Request.Context()),
	})
}

// QuickQuestions handles POST /chat/quick-questions. The body is optional.
func (h *Handler) QuickQuestions(c *gin.Context) {
	var req QuickQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		bindingError(c, err)
		return
	}

	hasIngredients := false
	for _, ing := range req.UserIngredients {
		if strings.TrimSpace(ing) != "" {
			hasIngredients = true
			break
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.chat.QuickQuestions(hasIngredients),
	})
}
