package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/aioutlet/variant-service/internal/middleware"
	"github.com/aioutlet/variant-service/internal/models"
	"github.com/aioutlet/variant-service/internal/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DraftHandler handles HTTP requests for product draft operations
type DraftHandler struct {
	draftService services.DraftService
	environment  string
	logger       *zap.Logger
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(draftService services.DraftService, environment string, logger *zap.Logger) *DraftHandler {
	return &DraftHandler{
		draftService: draftService,
		environment:  environment,
		logger:       logger,
	}
}

// GetSuggestions godoc
// @Summary Suggest option types
// @Description Suggest option types for a category name
// @Tags Suggestions
// @Produce json
// @Security BearerAuth
// @Param category query string false "Category name"
// @Success 200 {object} models.SuggestionResponse
// @Router /suggestions [get]
func (h *DraftHandler) GetSuggestions(c *gin.Context) {
	suggestion := h.draftService.Suggest(c.Request.Context(), c.Query("category"))

	c.JSON(http.StatusOK, models.SuggestionResponse{
		Success: true,
		Message: "Suggestions retrieved successfully",
		Data:    &suggestion,
	})
}

// CreateDraft godoc
// @Summary Create product draft
// @Description Open a new product draft and suggest option types for its category
// @Tags Drafts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateDraftRequest true "Create draft request"
// @Success 201 {object} models.DraftResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /drafts [post]
func (h *DraftHandler) CreateDraft(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	var request models.CreateDraftRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.respondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	draft, err := h.draftService.CreateDraft(c.Request.Context(), userID, request)
	if err != nil {
		h.fail(c, "Failed to create draft", userID, "", err)
		return
	}

	h.respondWithDraft(c, http.StatusCreated, "Draft created successfully", draft)
}

// OpenProductForEdit godoc
// @Summary Edit existing product
// @Description Load a stored product into a new draft, inferring its pricing and stock mode
// @Tags Drafts
// @Produce json
// @Security BearerAuth
// @Param productId path string true "Product ID"
// @Success 201 {object} models.DraftResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /drafts/from-product/{productId} [post]
func (h *DraftHandler) OpenProductForEdit(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	productID := c.Param("productId")
	if productID == "" {
		h.respondWithError(c, http.StatusBadRequest, "Product ID is required", nil)
		return
	}

	draft, err := h.draftService.OpenProductForEdit(c.Request.Context(), userID, productID)
	if err != nil {
		h.fail(c, "Failed to open product for edit", userID, "", err)
		return
	}

	h.respondWithDraft(c, http.StatusCreated, "Product opened for edit", draft)
}

// GetDraft godoc
// @Summary Get product draft
// @Tags Drafts
// @Produce json
// @Security BearerAuth
// @Param draftId path string true "Draft ID"
// @Success 200 {object} models.DraftResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 410 {object} models.ErrorResponse
// @Router /drafts/{draftId} [get]
func (h *DraftHandler) GetDraft(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	draftID := c.Param("draftId")

	draft, err := h.draftService.GetDraft(c.Request.Context(), userID, draftID)
	if err != nil {
		h.fail(c, "Failed to get draft", userID, draftID, err)
		return
	}

	h.respondWithDraft(c, http.StatusOK, "Draft retrieved successfully", draft)
}

// UpdateDraft godoc
// @Summary Update product fields
// @Description Update name, brand, description, category, or product level price and stock
// @Tags Drafts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param draftId path string true "Draft ID"
// @Param request body models.UpdateDraftRequest true "Update draft request"
// @Success 200 {object} models.DraftResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /drafts/{draftId} [patch]
func (h *DraftHandler) UpdateDraft(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	draftID := c.Param("draftId")

	var request models.UpdateDraftRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.respondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	draft, err := h.draftService.UpdateDraft(c.Request.Context(), userID, draftID, request)
	if err != nil {
		h.fail(c, "Failed to update draft", userID, draftID, err)
		return
	}

	h.respondWithDraft(c, http.StatusOK, "Draft updated successfully", draft)
}

// SetOptionTypes godoc
// @Summary Set option types
// @Description Replace the selected option types and their values
// @Tags Drafts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param draftId path string true "Draft ID"
// @Param request body models.SetOptionTypesRequest true "Option types"
// @Success 200 {object} models.DraftResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /drafts/{draftId}/options [put]
func (h *DraftHandler) SetOptionTypes(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	draftID := c.Param("draftId")

	var request models.SetOptionTypesRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.respondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	draft, err := h.draftService.SetOptionTypes(c.Request.Context(), userID, draftID, request)
	if err != nil {
		h.fail(c, "Failed to set option types", userID, draftID, err)
		return
	}

	h.respondWithDraft(c, http.StatusOK, "Option types updated successfully", draft)
}

// SetMode godoc
// @Summary Set pricing and stock mode
// @Description Answer whether prices and stock vary by variant
// @Tags Drafts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param draftId path string true "Draft ID"
// @Param request body models.SetModeRequest true "Mode answers"
// @Success 200 {object} models.DraftResponse
// @Router /drafts/{draftId}/mode [put]
func (h *DraftHandler) SetMode(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	draftID := c.Param("draftId")

	var request models.SetModeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.respondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	draft, warnings, err := h.draftService.SetMode(c.Request.Context(), userID, draftID, request)
	if err != nil {
		h.fail(c, "Failed to set mode", userID, draftID, err)
		return
	}

	h.respondWithDraft(c, http.StatusOK, "Mode updated successfully", draft, warnings...)
}

// GenerateVariants godoc
// @Summary Generate variants
// @Description Add a variant for every option combination not yet present
// @Tags Variants
// @Produce json
// @Security BearerAuth
// @Param draftId path string true "Draft ID"
// @Success 200 {object} models.GenerateResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /drafts/{draftId}/variants/generate [post]
func (h *DraftHandler) GenerateVariants(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	draftID := c.Param("draftId")

	draft, added, err := h.draftService.GenerateVariants(c.Request.Context(), userID, draftID)
	if err != nil {
		h.fail(c, "Failed to generate variants", userID, draftID, err)
		return
	}

	c.JSON(http.StatusOK, models.GenerateResponse{
		Success: true,
		Message: "Variants generated successfully",
		Added:   added,
		Data:    models.NewDraftView(draft),
	})
}

// UpdateVariant godoc
// @Summary Update variant
// @Description Edit a variant's SKU, price, or stock
// @Tags Variants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param draftId path string true "Draft ID"
// @Param index path int true "Variant position"
// @Param request body models.UpdateVariantRequest true "Variant edits"
// @Success 200 {object} models.DraftResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /drafts/{draftId}/variants/{index} [patch]
func (h *DraftHandler) UpdateVariant(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	draftID := c.Param("draftId")

	index, ok := h.variantIndex(c)
	if !ok {
		return
	}

	var request models.UpdateVariantRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.respondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	draft, err := h.draftService.UpdateVariant(c.Request.Context(), userID, draftID, index, request)
	if err != nil {
		h.fail(c, "Failed to update variant", userID, draftID, err)
		return
	}

	h.respondWithDraft(c, http.StatusOK, "Variant updated successfully", draft)
}

// RemoveVariant godoc
// @Summary Remove variant
// @Tags Variants
// @Produce json
// @Security BearerAuth
// @Param draftId path string true "Draft ID"
// @Param index path int true "Variant position"
// @Success 200 {object} models.DraftResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /drafts/{draftId}/variants/{index} [delete]
func (h *DraftHandler) RemoveVariant(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	draftID := c.Param("draftId")

	index, ok := h.variantIndex(c)
	if !ok {
		return
	}

	draft, err := h.draftService.RemoveVariant(c.Request.Context(), userID, draftID, index)
	if err != nil {
		h.fail(c, "Failed to remove variant", userID, draftID, err)
		return
	}

	h.respondWithDraft(c, http.StatusOK, "Variant removed successfully", draft)
}

// SelectMainVariant godoc
// @Summary Select main variant
// @Tags Variants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param draftId path string true "Draft ID"
// @Param request body models.SelectMainVariantRequest true "Variant position"
// @Success 200 {object} models.DraftResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /drafts/{draftId}/main-variant [put]
func (h *DraftHandler) SelectMainVariant(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	draftID := c.Param("draftId")

	var request models.SelectMainVariantRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.respondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	draft, err := h.draftService.SelectMainVariant(c.Request.Context(), userID, draftID, *request.Index)
	if err != nil {
		h.fail(c, "Failed to select main variant", userID, draftID, err)
		return
	}

	h.respondWithDraft(c, http.StatusOK, "Main variant selected successfully", draft)
}

// SubmitDraft godoc
// @Summary Submit draft
// @Description Validate the draft and hand it to the product service
// @Tags Drafts
// @Produce json
// @Security BearerAuth
// @Param draftId path string true "Draft ID"
// @Success 200 {object} models.SubmitResponse
// @Failure 422 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Router /drafts/{draftId}/submit [post]
func (h *DraftHandler) SubmitDraft(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	draftID := c.Param("draftId")

	result, err := h.draftService.SubmitDraft(c.Request.Context(), userID, draftID)
	if err != nil {
		h.fail(c, "Failed to submit draft", userID, draftID, err)
		return
	}

	c.JSON(http.StatusOK, models.SubmitResponse{
		Success: true,
		Message: "Draft submitted successfully",
		Data:    result,
	})
}

// DeleteDraft godoc
// @Summary Cancel draft
// @Tags Drafts
// @Produce json
// @Security BearerAuth
// @Param draftId path string true "Draft ID"
// @Success 200 {object} models.DraftResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /drafts/{draftId} [delete]
func (h *DraftHandler) DeleteDraft(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	draftID := c.Param("draftId")

	if err := h.draftService.DeleteDraft(c.Request.Context(), userID, draftID); err != nil {
		h.fail(c, "Failed to delete draft", userID, draftID, err)
		return
	}

	c.JSON(http.StatusOK, models.DraftResponse{
		Success: true,
		Message: "Draft deleted successfully",
	})
}

// Helper methods

func (h *DraftHandler) userID(c *gin.Context) (string, bool) {
	userID := c.GetString("userID")
	if userID == "" {
		h.respondWithError(c, http.StatusUnauthorized, "User not authenticated", nil)
		return "", false
	}
	return userID, true
}

func (h *DraftHandler) variantIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		h.respondWithError(c, http.StatusBadRequest, "Variant index must be a non-negative integer", err)
		return 0, false
	}
	return index, true
}

func (h *DraftHandler) fail(c *gin.Context, message, userID, draftID string, err error) {
	statusCode := h.getErrorStatusCode(err)
	if statusCode >= http.StatusInternalServerError {
		// ErrorLogger reports it with trace and correlation ids
		_ = c.Error(fmt.Errorf("%s (draft %q): %w", message, draftID, err))
		h.respondWithError(c, statusCode, message, err)
		return
	}

	h.logger.Debug(message,
		zap.String("userID", userID),
		zap.String("draftID", draftID),
		zap.Error(err))
	h.respondWithError(c, statusCode, err.Error(), err)
}

func (h *DraftHandler) respondWithDraft(c *gin.Context, statusCode int, message string, draft *models.ProductDraft, warnings ...string) {
	c.JSON(statusCode, models.DraftResponse{
		Success: true,
		Message: message,
		Data:    models.NewDraftView(draft, warnings...),
	})
}

func (h *DraftHandler) respondWithError(c *gin.Context, statusCode int, message string, err error) {
	response := models.ErrorResponse{
		Success:       false,
		Message:       message,
		CorrelationID: middleware.GetCorrelationID(c),
	}

	if se, ok := models.AsSubmissionError(err); ok {
		response.Validation = se
	}

	if err != nil {
		if h.environment == "development" || statusCode < http.StatusInternalServerError {
			response.Error = err.Error()
		} else {
			// Don't expose internal error details in production
			response.Error = "Internal server error"
		}
	}

	c.JSON(statusCode, response)
}

func (h *DraftHandler) getErrorStatusCode(err error) int {
	if _, ok := models.AsSubmissionError(err); ok {
		return http.StatusUnprocessableEntity
	}

	switch {
	case errors.Is(err, models.ErrDraftNotFound),
		errors.Is(err, models.ErrVariantNotFound),
		errors.Is(err, models.ErrProductNotFound),
		errors.Is(err, models.ErrCategoryNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrDraftExpired):
		return http.StatusGone
	case errors.Is(err, models.ErrDraftLocked),
		errors.Is(err, models.ErrModeUnresolved),
		errors.Is(err, models.ErrFieldNotEditable):
		return http.StatusConflict
	case errors.Is(err, models.ErrUpstream):
		return http.StatusBadGateway
	case errors.Is(err, models.ErrEmptyOptionName),
		errors.Is(err, models.ErrDuplicateOptionType),
		errors.Is(err, models.ErrTooManyOptionTypes),
		errors.Is(err, models.ErrTooManyOptionValues),
		errors.Is(err, models.ErrTooManyVariants),
		errors.Is(err, models.ErrInvalidPrice),
		errors.Is(err, models.ErrInvalidStock),
		errors.Is(err, models.ErrInvalidSKU):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
