package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aioutlet/variant-service/internal/models"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	draftKeyPrefix  = "draft:"
	draftLockPrefix = "draft_lock:"
)

// releaseLockScript deletes the lock only when it still holds the caller's token
var releaseLockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// DraftRepository interface defines draft session store operations
type DraftRepository interface {
	GetDraft(ctx context.Context, draftID string) (*models.ProductDraft, error)
	SaveDraft(ctx context.Context, draft *models.ProductDraft) error
	DeleteDraft(ctx context.Context, draftID string) error
	AcquireLock(ctx context.Context, draftID string, ttl time.Duration) (string, bool, error)
	ReleaseLock(ctx context.Context, draftID, token string) error
}

// draftRepository implements DraftRepository on Redis
type draftRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewDraftRepository creates a new draft repository
func NewDraftRepository(client *redis.Client, logger *zap.Logger) DraftRepository {
	return &draftRepository{
		client: client,
		logger: logger,
	}
}

// GetDraft retrieves a draft from Redis
func (r *draftRepository) GetDraft(ctx context.Context, draftID string) (*models.ProductDraft, error) {
	key := r.getDraftKey(draftID)

	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, models.ErrDraftNotFound
		}
		r.logger.Error("Failed to get draft from Redis",
			zap.String("draftID", draftID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	var draft models.ProductDraft
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		r.logger.Error("Failed to unmarshal draft data",
			zap.String("draftID", draftID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}

	if draft.IsExpired() {
		r.logger.Info("Draft has expired, deleting", zap.String("draftID", draftID))
		if err := r.DeleteDraft(ctx, draftID); err != nil {
			r.logger.Error("Failed to delete expired draft",
				zap.String("draftID", draftID),
				zap.Error(err))
		}
		return nil, models.ErrDraftExpired
	}

	return &draft, nil
}

// SaveDraft saves a draft to Redis with a TTL matching its expiry
func (r *draftRepository) SaveDraft(ctx context.Context, draft *models.ProductDraft) error {
	key := r.getDraftKey(draft.ID)

	data, err := json.Marshal(draft)
	if err != nil {
		r.logger.Error("Failed to marshal draft data",
			zap.String("draftID", draft.ID),
			zap.Error(err))
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	ttl := time.Until(draft.ExpiresAt)
	if ttl <= 0 {
		ttl = time.Minute // Minimum TTL of 1 minute
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		r.logger.Error("Failed to save draft to Redis",
			zap.String("draftID", draft.ID),
			zap.Error(err))
		return fmt.Errorf("failed to save draft: %w", err)
	}

	r.logger.Debug("Draft saved successfully",
		zap.String("draftID", draft.ID),
		zap.Int("variants", len(draft.Variants)),
		zap.Duration("ttl", ttl))

	return nil
}

// DeleteDraft deletes a draft from Redis
func (r *draftRepository) DeleteDraft(ctx context.Context, draftID string) error {
	if err := r.client.Del(ctx, r.getDraftKey(draftID)).Err(); err != nil {
		r.logger.Error("Failed to delete draft from Redis",
			zap.String("draftID", draftID),
			zap.Error(err))
		return fmt.Errorf("failed to delete draft: %w", err)
	}

	r.logger.Debug("Draft deleted successfully", zap.String("draftID", draftID))
	return nil
}

// AcquireLock takes the single-writer lock for a draft. The returned token
// must be passed to ReleaseLock.
func (r *draftRepository) AcquireLock(ctx context.Context, draftID string, ttl time.Duration) (string, bool, error) {
	token := uuid.New().String()

	// SET NX PX so a crashed writer cannot hold the draft forever
	acquired, err := r.client.SetNX(ctx, r.getLockKey(draftID), token, ttl).Result()
	if err != nil {
		r.logger.Error("Failed to acquire draft lock",
			zap.String("draftID", draftID),
			zap.Error(err))
		return "", false, fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !acquired {
		return "", false, nil
	}

	r.logger.Debug("Draft lock acquired", zap.String("draftID", draftID))
	return token, true, nil
}

// ReleaseLock releases the draft lock if it is still held with token.
// A lock that expired and was taken by another writer is left alone.
func (r *draftRepository) ReleaseLock(ctx context.Context, draftID, token string) error {
	released, err := releaseLockScript.Run(ctx, r.client, []string{r.getLockKey(draftID)}, token).Int()
	if err != nil {
		r.logger.Error("Failed to release draft lock",
			zap.String("draftID", draftID),
			zap.Error(err))
		return fmt.Errorf("failed to release lock: %w", err)
	}

	if released == 0 {
		r.logger.Warn("Draft lock was no longer held", zap.String("draftID", draftID))
		return nil
	}

	r.logger.Debug("Draft lock released", zap.String("draftID", draftID))
	return nil
}

func (r *draftRepository) getDraftKey(draftID string) string {
	return draftKeyPrefix + draftID
}

func (r *draftRepository) getLockKey(draftID string) string {
	return draftLockPrefix + draftID
}
