package service

import (
	"context"
	"fmt"

	"github.com/mkhasanov/go-user-guard/internal/logger"
	"github.com/mkhasanov/go-user-guard/internal/store"
	"github.com/mkhasanov/go-user-guard/models"
)

// adminService is the concrete implementation of AdminService providing
// batch moderation operations and user listing.
type adminService struct {
	userRepository store.UserRepository
	logger         *logger.Logger
}

// NewAdminService constructs a new AdminService backed by the given UserRepository.
func NewAdminService(userRepository store.UserRepository, logger *logger.Logger) AdminService {
	return &adminService{
		userRepository: userRepository,
		logger:         logger,
	}
}

// ApplyStatus sets the given status on every listed user in a single
// statement. User IDs with no matching record are skipped, not failed: the
// per-id Applied flag in the result tells the caller which ones took effect.
// The result preserves the request order, with duplicates collapsed to the
// first occurrence.
//
// Returns:
//   - ErrNoUserIDsProvided if userIDs is empty.
//   - ErrInvalidStatus if status is not a known user status.
//   - A wrapped storage error if the batch update fails.
func (a *adminService) ApplyStatus(ctx context.Context, userIDs []int64, status models.UserStatus) (models.BatchResult, error) {
	log := logger.FromContext(ctx)

	if len(userIDs) == 0 {
		return models.BatchResult{}, ErrNoUserIDsProvided
	}
	if !status.Valid() {
		return models.BatchResult{}, ErrInvalidStatus
	}

	appliedIDs, err := a.userRepository.UpdateStatusBatch(ctx, userIDs, status)
	if err != nil {
		log.Err(err).Str("status", string(status)).Msg("batch status update failed")
		return models.BatchResult{}, fmt.Errorf("batch status update failed: %w", err)
	}

	result := buildBatchResult(userIDs, appliedIDs)

	log.Info().
		Str("status", string(status)).
		Int("requested", len(result.Results)).
		Int("applied", result.Count).
		Msg("batch status update applied")

	return result, nil
}

// DeleteUsers permanently removes every listed user in a single statement.
// Missing IDs are skipped and reported via the per-id Applied flags, same as
// ApplyStatus.
//
// Returns:
//   - ErrNoUserIDsProvided if userIDs is empty.
//   - A wrapped storage error if the batch delete fails.
func (a *adminService) DeleteUsers(ctx context.Context, userIDs []int64) (models.BatchResult, error) {
	log := logger.FromContext(ctx)

	if len(userIDs) == 0 {
		return models.BatchResult{}, ErrNoUserIDsProvided
	}

	deletedIDs, err := a.userRepository.DeleteUsersBatch(ctx, userIDs)
	if err != nil {
		log.Err(err).Msg("batch user delete failed")
		return models.BatchResult{}, fmt.Errorf("batch user delete failed: %w", err)
	}

	result := buildBatchResult(userIDs, deletedIDs)

	log.Info().
		Int("requested", len(result.Results)).
		Int("applied", result.Count).
		Msg("batch user delete applied")

	return result, nil
}

// ListUsers returns all registered users ordered by user id.
func (a *adminService) ListUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	users, err := a.userRepository.ListUsers(ctx)
	if err != nil {
		log.Err(err).Msg("user listing failed")
		return nil, fmt.Errorf("user listing failed: %w", err)
	}

	return users, nil
}

// buildBatchResult pairs the requested IDs with the set actually affected,
// preserving request order and collapsing duplicates.
func buildBatchResult(requestedIDs, appliedIDs []int64) models.BatchResult {
	applied := make(map[int64]bool, len(appliedIDs))
	for _, id := range appliedIDs {
		applied[id] = true
	}

	seen := make(map[int64]bool, len(requestedIDs))
	result := models.BatchResult{
		Results: make([]models.BatchItemResult, 0, len(requestedIDs)),
	}
	for _, id := range requestedIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		result.Results = append(result.Results, models.BatchItemResult{
			UserID:  id,
			Applied: applied[id],
		})
		if applied[id] {
			result.Count++
		}
	}

	return result
}
