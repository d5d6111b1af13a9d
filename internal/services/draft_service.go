package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aioutlet/variant-service/internal/config"
	"github.com/aioutlet/variant-service/internal/models"
	"github.com/aioutlet/variant-service/internal/repository"
	"github.com/aioutlet/variant-service/pkg/clients"
	"github.com/aioutlet/variant-service/pkg/metrics"
	"github.com/aioutlet/variant-service/pkg/tracing"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// OptionSuggester proposes option type names for a category
type OptionSuggester interface {
	Suggest(category string) models.Suggestion
}

// DraftService interface defines product draft session operations
type DraftService interface {
	Suggest(ctx context.Context, category string) models.Suggestion
	CreateDraft(ctx context.Context, userID string, request models.CreateDraftRequest) (*models.ProductDraft, error)
	OpenProductForEdit(ctx context.Context, userID, productID string) (*models.ProductDraft, error)
	GetDraft(ctx context.Context, userID, draftID string) (*models.ProductDraft, error)
	UpdateDraft(ctx context.Context, userID, draftID string, request models.UpdateDraftRequest) (*models.ProductDraft, error)
	SetOptionTypes(ctx context.Context, userID, draftID string, request models.SetOptionTypesRequest) (*models.ProductDraft, error)
	SetMode(ctx context.Context, userID, draftID string, request models.SetModeRequest) (*models.ProductDraft, []string, error)
	GenerateVariants(ctx context.Context, userID, draftID string) (*models.ProductDraft, []models.Variant, error)
	UpdateVariant(ctx context.Context, userID, draftID string, index int, request models.UpdateVariantRequest) (*models.ProductDraft, error)
	RemoveVariant(ctx context.Context, userID, draftID string, index int) (*models.ProductDraft, error)
	SelectMainVariant(ctx context.Context, userID, draftID string, index int) (*models.ProductDraft, error)
	SubmitDraft(ctx context.Context, userID, draftID string) (*models.SubmitResult, error)
	DeleteDraft(ctx context.Context, userID, draftID string) error
}

// draftService implements DraftService interface
type draftService struct {
	repo           repository.DraftRepository
	suggester      OptionSuggester
	productClient  clients.ProductClient
	categoryClient clients.CategoryClient
	config         *config.Config
	logger         *zap.Logger
	newID          func() string
}

// NewDraftService creates a new draft service
func NewDraftService(
	repo repository.DraftRepository,
	suggester OptionSuggester,
	productClient clients.ProductClient,
	categoryClient clients.CategoryClient,
	cfg *config.Config,
	logger *zap.Logger,
) DraftService {
	return &draftService{
		repo:           repo,
		suggester:      suggester,
		productClient:  productClient,
		categoryClient: categoryClient,
		config:         cfg,
		logger:         logger,
		newID:          func() string { return uuid.New().String() },
	}
}

// Suggest proposes option type names for a free-text category
func (s *draftService) Suggest(ctx context.Context, category string) models.Suggestion {
	suggestion := s.suggester.Suggest(strings.ToLower(strings.TrimSpace(category)))
	if suggestion.Matched {
		metrics.SuggestionsTotal.WithLabelValues(metrics.ResultMatch).Inc()
	} else {
		metrics.SuggestionsTotal.WithLabelValues(metrics.ResultFallback).Inc()
	}
	suggestion.Category = category
	return suggestion
}

// CreateDraft opens a new draft and proposes options for its category
func (s *draftService) CreateDraft(ctx context.Context, userID string, request models.CreateDraftRequest) (*models.ProductDraft, error) {
	s.logger.Debug("Creating draft",
		zap.String("userID", userID),
		zap.String("category", request.Category))

	draft := models.NewProductDraft(s.newID(), userID, s.config.Draft.TTL)
	draft.Name = strings.TrimSpace(request.Name)
	draft.Description = strings.TrimSpace(request.Description)
	draft.Brand = strings.TrimSpace(request.Brand)

	if err := s.applyCategory(ctx, draft, request.CategoryID, request.Category); err != nil {
		return nil, err
	}

	if err := s.repo.SaveDraft(ctx, draft); err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}

	s.logger.Info("Draft created",
		zap.String("userID", userID),
		zap.String("draftID", draft.ID))

	return draft, nil
}

// OpenProductForEdit loads a stored product into a new draft and infers its
// pricing/stock mode from the existing variants
func (s *draftService) OpenProductForEdit(ctx context.Context, userID, productID string) (*models.ProductDraft, error) {
	s.logger.Debug("Opening product for edit",
		zap.String("userID", userID),
		zap.String("productID", productID))

	product, err := s.productClient.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: failed to get product information: %w", models.ErrUpstream, err)
	}

	draft := models.NewProductDraft(s.newID(), userID, s.config.Draft.TTL)
	draft.ProductID = product.ID
	draft.Name = product.Name
	draft.Description = product.Description
	draft.Brand = product.Brand
	draft.CategoryID = product.CategoryID
	draft.Category = product.Category
	draft.Price = product.Price
	draft.Stock = product.Stock

	// Option keys and values go through the same normalization as merchant
	// input so regenerated combinations dedup against stored variants
	for _, v := range product.Variants {
		options := make(models.OptionCombination, len(v.Options))
		for name, value := range v.Options {
			options[models.NormalizeOptionValue(name)] = models.NormalizeOptionValue(value)
		}
		v.Options = options
		draft.Variants = append(draft.Variants, v)
	}

	optionTypes := product.OptionTypes
	if len(optionTypes) == 0 {
		optionTypes = optionTypesFromVariants(draft.Variants)
	}
	if err := draft.SetOptionTypes(optionTypes); err != nil {
		return nil, fmt.Errorf("stored product has invalid options: %w", err)
	}

	draft.Mode = models.InferModeFromExistingVariants(product.Price, draft.Variants)
	draft.MainVariant = models.InferMainVariant(product.Price, draft.Variants)

	if draft.Category != "" {
		draft.Suggestions = s.Suggest(ctx, draft.Category).Options
	}

	if err := s.repo.SaveDraft(ctx, draft); err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}

	s.logger.Info("Product opened for edit",
		zap.String("userID", userID),
		zap.String("productID", productID),
		zap.String("draftID", draft.ID),
		zap.String("hasDifferentPrices", draft.Mode.HasDifferentPrices.String()),
		zap.String("stockByVariant", draft.Mode.StockByVariant.String()))

	return draft, nil
}

// GetDraft retrieves a draft owned by the user
func (s *draftService) GetDraft(ctx context.Context, userID, draftID string) (*models.ProductDraft, error) {
	draft, err := s.repo.GetDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.OwnerID != userID {
		return nil, models.ErrDraftNotFound
	}
	return draft, nil
}

// UpdateDraft edits product level fields
func (s *draftService) UpdateDraft(ctx context.Context, userID, draftID string, request models.UpdateDraftRequest) (*models.ProductDraft, error) {
	return s.withDraft(ctx, userID, draftID, func(d *models.ProductDraft) error {
		if request.Name != nil {
			d.Name = strings.TrimSpace(*request.Name)
		}
		if request.Description != nil {
			d.Description = strings.TrimSpace(*request.Description)
		}
		if request.Brand != nil {
			d.Brand = strings.TrimSpace(*request.Brand)
		}
		if request.CategoryID != nil || request.Category != nil {
			categoryID, category := "", ""
			if request.CategoryID != nil {
				categoryID = *request.CategoryID
			}
			if request.Category != nil {
				category = *request.Category
			}
			if err := s.applyCategory(ctx, d, categoryID, category); err != nil {
				return err
			}
		}
		return d.UpdateGlobal(models.GlobalPatch{Price: request.Price, Stock: request.Stock})
	})
}

// SetOptionTypes replaces the draft's option types within the configured limits
func (s *draftService) SetOptionTypes(ctx context.Context, userID, draftID string, request models.SetOptionTypesRequest) (*models.ProductDraft, error) {
	if len(request.OptionTypes) > s.config.Draft.MaxOptionTypes {
		return nil, models.ErrTooManyOptionTypes
	}

	return s.withDraft(ctx, userID, draftID, func(d *models.ProductDraft) error {
		if err := d.SetOptionTypes(request.OptionTypes); err != nil {
			return err
		}
		for _, ot := range d.OptionTypes {
			if len(ot.Values) > s.config.Draft.MaxValuesPerOption {
				return fmt.Errorf("%w: %s", models.ErrTooManyOptionValues, ot.Name)
			}
		}
		return nil
	})
}

// SetMode answers the pricing/stock questions, price first, and returns any
// auto-correction warnings
func (s *draftService) SetMode(ctx context.Context, userID, draftID string, request models.SetModeRequest) (*models.ProductDraft, []string, error) {
	warnings := make([]string, 0)

	draft, err := s.withDraft(ctx, userID, draftID, func(d *models.ProductDraft) error {
		changes := make([]models.ModeChange, 0, 2)
		if request.HasDifferentPrices != nil {
			changes = append(changes, d.SetHasDifferentPrices(*request.HasDifferentPrices))
		}
		if request.StockByVariant != nil {
			changes = append(changes, d.SetStockByVariant(*request.StockByVariant))
		}
		for _, change := range changes {
			if change.AutoCorrected {
				metrics.ModeAutoCorrectionsTotal.Inc()
				warnings = append(warnings, change.Warning)
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if len(warnings) > 0 {
		s.logger.Warn("Pricing/stock mode auto-corrected",
			zap.String("userID", userID),
			zap.String("draftID", draftID))
	}

	return draft, warnings, nil
}

// GenerateVariants adds the missing option combinations as new variants
func (s *draftService) GenerateVariants(ctx context.Context, userID, draftID string) (*models.ProductDraft, []models.Variant, error) {
	ctx, span := tracing.StartSpan(ctx, "draft.generate_variants", draftID)
	defer span.End()

	var added []models.Variant

	draft, err := s.withDraft(ctx, userID, draftID, func(d *models.ProductDraft) error {
		if models.CombinationCount(d.OptionTypes) > s.config.Draft.MaxVariants {
			return models.ErrTooManyVariants
		}
		if len(d.Variants)+len(d.PendingCombinations()) > s.config.Draft.MaxVariants {
			return models.ErrTooManyVariants
		}
		added = d.AddGeneratedVariants()
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	metrics.VariantsGeneratedTotal.Add(float64(len(added)))
	span.SetAttributes(attribute.Int("variants.added", len(added)))
	s.logger.Info("Variants generated",
		zap.String("userID", userID),
		zap.String("draftID", draftID),
		zap.Int("added", len(added)),
		zap.Int("total", len(draft.Variants)))

	return draft, added, nil
}

// UpdateVariant applies a manual edit to one variant
func (s *draftService) UpdateVariant(ctx context.Context, userID, draftID string, index int, request models.UpdateVariantRequest) (*models.ProductDraft, error) {
	return s.withDraft(ctx, userID, draftID, func(d *models.ProductDraft) error {
		return d.UpdateVariant(index, models.VariantPatch{
			SKU:   request.SKU,
			Price: request.Price,
			Stock: request.Stock,
		})
	})
}

// RemoveVariant removes one variant by position
func (s *draftService) RemoveVariant(ctx context.Context, userID, draftID string, index int) (*models.ProductDraft, error) {
	draft, err := s.withDraft(ctx, userID, draftID, func(d *models.ProductDraft) error {
		return d.RemoveVariant(index)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Variant removed",
		zap.String("userID", userID),
		zap.String("draftID", draftID),
		zap.Int("index", index))

	return draft, nil
}

// SelectMainVariant marks the representative variant
func (s *draftService) SelectMainVariant(ctx context.Context, userID, draftID string, index int) (*models.ProductDraft, error) {
	return s.withDraft(ctx, userID, draftID, func(d *models.ProductDraft) error {
		return d.SelectMainVariant(index)
	})
}

// SubmitDraft validates the draft and hands it to the product service.
// The draft is deleted once the hand-off succeeds.
func (s *draftService) SubmitDraft(ctx context.Context, userID, draftID string) (*models.SubmitResult, error) {
	ctx, span := tracing.StartSpan(ctx, "draft.submit", draftID)
	defer span.End()

	s.logger.Debug("Submitting draft",
		zap.String("userID", userID),
		zap.String("draftID", draftID))

	unlock, err := s.lock(ctx, draftID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	draft, err := s.GetDraft(ctx, userID, draftID)
	if err != nil {
		return nil, err
	}

	if err := models.ValidateSubmission(draft); err != nil {
		metrics.SubmissionsTotal.WithLabelValues(metrics.ResultRejected).Inc()
		s.logger.Info("Draft rejected by validation",
			zap.String("draftID", draftID),
			zap.Error(err))
		return nil, err
	}

	submission := draft.ToSubmission()
	productID := draft.ProductID
	if productID != "" {
		err = s.productClient.UpdateProduct(ctx, productID, submission)
	} else {
		productID, err = s.productClient.CreateProduct(ctx, submission)
	}
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues(metrics.ResultFailed).Inc()
		span.RecordError(err)
		return nil, fmt.Errorf("%w: failed to hand off product: %w", models.ErrUpstream, err)
	}
	submission.ProductID = productID

	if err := s.repo.DeleteDraft(ctx, draftID); err != nil {
		s.logger.Warn("Failed to delete submitted draft",
			zap.String("draftID", draftID),
			zap.Error(err))

		// A surviving draft must point at the created product so a retry
		// updates it instead of creating another one
		if draft.ProductID == "" {
			draft.ProductID = productID
			if err := s.repo.SaveDraft(ctx, draft); err != nil {
				s.logger.Error("Failed to link submitted draft to product",
					zap.String("draftID", draftID),
					zap.String("productID", productID),
					zap.Error(err))
			}
		}
	}

	metrics.SubmissionsTotal.WithLabelValues(metrics.ResultAccepted).Inc()
	s.logger.Info("Draft submitted successfully",
		zap.String("userID", userID),
		zap.String("draftID", draftID),
		zap.String("productID", productID),
		zap.Int("variants", len(submission.Variants)))

	return &models.SubmitResult{ProductID: productID, Product: submission}, nil
}

// DeleteDraft discards a draft
func (s *draftService) DeleteDraft(ctx context.Context, userID, draftID string) error {
	unlock, err := s.lock(ctx, draftID)
	if err != nil {
		return err
	}
	defer unlock()

	if _, err := s.GetDraft(ctx, userID, draftID); err != nil {
		return err
	}

	if err := s.repo.DeleteDraft(ctx, draftID); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}

	s.logger.Info("Draft deleted", zap.String("userID", userID), zap.String("draftID", draftID))
	return nil
}

// withDraft runs one mutation under the draft's single-writer lock and saves the result
func (s *draftService) withDraft(ctx context.Context, userID, draftID string, mutate func(*models.ProductDraft) error) (*models.ProductDraft, error) {
	unlock, err := s.lock(ctx, draftID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	draft, err := s.GetDraft(ctx, userID, draftID)
	if err != nil {
		return nil, err
	}

	if err := mutate(draft); err != nil {
		return nil, err
	}

	draft.ExtendExpiry(s.config.Draft.TTL)
	if err := s.repo.SaveDraft(ctx, draft); err != nil {
		return nil, fmt.Errorf("failed to save draft: %w", err)
	}

	return draft, nil
}

func (s *draftService) lock(ctx context.Context, draftID string) (func(), error) {
	token, acquired, err := s.repo.AcquireLock(ctx, draftID, s.config.Draft.LockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire draft lock: %w", err)
	}
	if !acquired {
		return nil, models.ErrDraftLocked
	}
	return func() {
		if err := s.repo.ReleaseLock(ctx, draftID, token); err != nil {
			s.logger.Warn("Failed to release draft lock",
				zap.String("draftID", draftID),
				zap.Error(err))
		}
	}, nil
}

// applyCategory resolves the category name and refreshes the suggestions
func (s *draftService) applyCategory(ctx context.Context, d *models.ProductDraft, categoryID, category string) error {
	category = strings.TrimSpace(category)
	if category == "" && categoryID != "" {
		name, err := s.categoryClient.GetCategoryName(ctx, categoryID)
		if err != nil {
			if errors.Is(err, models.ErrCategoryNotFound) {
				return err
			}
			return fmt.Errorf("%w: failed to resolve category: %w", models.ErrUpstream, err)
		}
		category = name
	}

	d.CategoryID = categoryID
	d.Category = category
	d.Suggestions = s.Suggest(ctx, category).Options
	return nil
}

// optionTypesFromVariants rebuilds option types from stored variants when the
// product carries none. Names are sorted; values keep first-seen order.
func optionTypesFromVariants(variants []models.Variant) []models.OptionType {
	valuesByName := make(map[string][]string)
	seen := make(map[string]map[string]struct{})
	for _, v := range variants {
		for name, value := range v.Options {
			if seen[name] == nil {
				seen[name] = make(map[string]struct{})
			}
			if _, dup := seen[name][value]; dup {
				continue
			}
			seen[name][value] = struct{}{}
			valuesByName[name] = append(valuesByName[name], value)
		}
	}

	names := make([]string, 0, len(valuesByName))
	for name := range valuesByName {
		names = append(names, name)
	}
	sort.Strings(names)

	optionTypes := make([]models.OptionType, 0, len(names))
	for _, name := range names {
		optionTypes = append(optionTypes, models.OptionType{Name: name, Values: valuesByName[name]})
	}
	return optionTypes
}
