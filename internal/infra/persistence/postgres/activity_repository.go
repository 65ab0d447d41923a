package postgres

import (
	"context"

	"gatekeeper/internal/domain/entity"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/domain/repository"
	"gatekeeper/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// activityRepository implements the repository.ActivityRepository interface using GORM.
type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository is the constructor for activityRepository.
func NewActivityRepository(db *gorm.DB) repository.ActivityRepository {
	return &activityRepository{db: db}
}

// Create appends one audit entry.
func (repo *activityRepository) Create(ctx context.Context, activity *entity.Activity) error {
	activityM := &model.ActivityModel{
		UserID:       activity.UserID,
		ActivityType: string(activity.ActivityType),
	}

	if err := repo.db.WithContext(ctx).Create(activityM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to append activity record")
	}

	activity.ID = activityM.ID
	activity.CreatedAt = activityM.CreatedAt

	return nil
}

// FindByUserID returns the most recent audit entries for a user, newest first.
func (repo *activityRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Activity, error) {
	var activityMs []model.ActivityModel
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&activityMs).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list activity records")
	}

	activities := make([]*entity.Activity, 0, len(activityMs))
	for i := range activityMs {
		activities = append(activities, &entity.Activity{
			ID:           activityMs[i].ID,
			UserID:       activityMs[i].UserID,
			ActivityType: entity.ActivityType(activityMs[i].ActivityType),
			CreatedAt:    activityMs[i].CreatedAt,
		})
	}

	return activities, nil
}
