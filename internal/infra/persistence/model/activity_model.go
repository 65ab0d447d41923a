package model

import (
	"time"

	"github.com/google/uuid"
)

// ActivityModel mirrors the 'login_activities' table. Rows are append-only;
// there is no UpdatedAt because audit entries are never modified.
type ActivityModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index"`
	ActivityType string    `gorm:"type:varchar(20);not null"`
	CreatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (ActivityModel) TableName() string {
	return "login_activities"
}
