package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mkhasanov/go-user-guard/internal/logger"
	"github.com/mkhasanov/go-user-guard/internal/mock"
	"github.com/mkhasanov/go-user-guard/internal/store"
	"github.com/mkhasanov/go-user-guard/models"
)

func newTestAdminSvc(t *testing.T, ctrl *gomock.Controller) (*adminService, *mock.MockUserRepository) {
	t.Helper()
	mockRepo := mock.NewMockUserRepository(ctrl)
	svc := NewAdminService(mockRepo, logger.Nop()).(*adminService)
	return svc, mockRepo
}

// ── ApplyStatus ──────────────────────────────────────────────────────────────

func TestAdminService_ApplyStatus_AllApplied(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAdminSvc(t, ctrl)
	ctx := context.Background()

	ids := []int64{1, 2, 3}
	mockRepo.EXPECT().UpdateStatusBatch(ctx, ids, models.StatusBlocked).Return(ids, nil)

	result, err := svc.ApplyStatus(ctx, ids, models.StatusBlocked)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Count)
	require.Len(t, result.Results, 3)
	for i, r := range result.Results {
		assert.Equal(t, ids[i], r.UserID)
		assert.True(t, r.Applied)
	}
}

func TestAdminService_ApplyStatus_MissingIDsSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAdminSvc(t, ctrl)
	ctx := context.Background()

	ids := []int64{1, 404, 3}
	mockRepo.EXPECT().UpdateStatusBatch(ctx, ids, models.StatusActive).Return([]int64{1, 3}, nil)

	result, err := svc.ApplyStatus(ctx, ids, models.StatusActive)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	require.Len(t, result.Results, 3)
	assert.True(t, result.Results[0].Applied)
	assert.False(t, result.Results[1].Applied)
	assert.True(t, result.Results[2].Applied)
}

func TestAdminService_ApplyStatus_DuplicateIDsCollapsed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAdminSvc(t, ctrl)
	ctx := context.Background()

	ids := []int64{5, 5, 7, 5}
	mockRepo.EXPECT().UpdateStatusBatch(ctx, ids, models.StatusBlocked).Return([]int64{5, 7}, nil)

	result, err := svc.ApplyStatus(ctx, ids, models.StatusBlocked)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	require.Len(t, result.Results, 2)
	assert.Equal(t, int64(5), result.Results[0].UserID)
	assert.Equal(t, int64(7), result.Results[1].UserID)
}

func TestAdminService_ApplyStatus_NoIDs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAdminSvc(t, ctrl)

	_, err := svc.ApplyStatus(context.Background(), nil, models.StatusBlocked)
	assert.ErrorIs(t, err, ErrNoUserIDsProvided)
}

func TestAdminService_ApplyStatus_InvalidStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAdminSvc(t, ctrl)

	_, err := svc.ApplyStatus(context.Background(), []int64{1}, models.UserStatus("frozen"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestAdminService_ApplyStatus_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAdminSvc(t, ctrl)
	ctx := context.Background()

	mockRepo.EXPECT().UpdateStatusBatch(ctx, []int64{1}, models.StatusBlocked).
		Return(nil, store.ErrStoreUnavailable)

	_, err := svc.ApplyStatus(ctx, []int64{1}, models.StatusBlocked)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrStoreUnavailable)
}

// ── DeleteUsers ──────────────────────────────────────────────────────────────

func TestAdminService_DeleteUsers_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAdminSvc(t, ctrl)
	ctx := context.Background()

	ids := []int64{10, 20, 30}
	mockRepo.EXPECT().DeleteUsersBatch(ctx, ids).Return([]int64{10, 30}, nil)

	result, err := svc.DeleteUsers(ctx, ids)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Count)
	require.Len(t, result.Results, 3)
	assert.True(t, result.Results[0].Applied)
	assert.False(t, result.Results[1].Applied)
	assert.True(t, result.Results[2].Applied)
}

func TestAdminService_DeleteUsers_NoIDs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAdminSvc(t, ctrl)

	_, err := svc.DeleteUsers(context.Background(), []int64{})
	assert.ErrorIs(t, err, ErrNoUserIDsProvided)
}

func TestAdminService_DeleteUsers_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAdminSvc(t, ctrl)
	ctx := context.Background()

	mockRepo.EXPECT().DeleteUsersBatch(ctx, []int64{1}).
		Return(nil, errors.New("query execution error"))

	_, err := svc.DeleteUsers(ctx, []int64{1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch user delete failed")
}

// ── ListUsers ────────────────────────────────────────────────────────────────

func TestAdminService_ListUsers_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAdminSvc(t, ctrl)
	ctx := context.Background()

	users := []models.User{
		{UserID: 1, Email: "a@example.com", Status: models.StatusActive},
		{UserID: 2, Email: "b@example.com", Status: models.StatusBlocked},
	}
	mockRepo.EXPECT().ListUsers(ctx).Return(users, nil)

	got, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, users, got)
}

func TestAdminService_ListUsers_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAdminSvc(t, ctrl)
	ctx := context.Background()

	mockRepo.EXPECT().ListUsers(ctx).Return(nil, store.ErrStoreUnavailable)

	_, err := svc.ListUsers(ctx)
	assert.ErrorIs(t, err, store.ErrStoreUnavailable)
}
