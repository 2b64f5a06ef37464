package models

import (
	"context"
	"encoding/json"
	"time"

	"github.com/imovelhub/agent_backend/config"
	"github.com/imovelhub/agent_backend/utils"
	"gorm.io/gorm"
)

// History is the per-agent activity trail written after each successful
// mutation. Failures to record history never fail the mutation itself.
type History struct {
	ID            int       `gorm:"primary_key" json:"id"`
	UserId        string    `gorm:"index;size:36;not null" json:"user_id"`
	ActionType    string    `gorm:"size:10;not null" json:"action_type"`
	Before        string    `gorm:"type:text" json:"before"`
	After         string    `gorm:"type:text" json:"after"`
	Description   string    `gorm:"type:text;not null" json:"description"`
	ReferenceID   string    `gorm:"size:36;index" json:"reference_id"`
	ReferenceType string    `gorm:"size:50" json:"reference_type"`
	UserName      string    `gorm:"size:100" json:"user_name"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (History) TableName() string { return "histories" }

const (
	HistoryActionCreate = "*CREATE*"
	HistoryActionUpdate = "*UPDATE*"
	HistoryActionDelete = "*DELETE*"
)

// RecordHistory appends an activity row. before/after are serialized as
// JSON when non-nil.
func RecordHistory(ctx context.Context, db *gorm.DB, actionType string, referenceId string, referenceType string, before any, after any, description string) error {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok {
		return utils.ErrorNotAuthenticated
	}
	userName, _ := utils.GetUserNameFromContext(ctx)

	history := History{
		UserId:        userId,
		ActionType:    actionType,
		Description:   description,
		ReferenceID:   referenceId,
		ReferenceType: referenceType,
		UserName:      userName,
	}
	if before != nil {
		b, err := json.Marshal(before)
		if err != nil {
			return err
		}
		history.Before = string(b)
	}
	if after != nil {
		a, err := json.Marshal(after)
		if err != nil {
			return err
		}
		history.After = string(a)
	}

	return db.WithContext(ctx).Create(&history).Error
}

// ListHistory returns the agent's recent activity, newest first.
func ListHistory(ctx context.Context, limit int) ([]History, error) {
	userId, ok := utils.GetUserIdFromContext(ctx)
	if !ok {
		return nil, utils.ErrorNotAuthenticated
	}
	if limit <= 0 {
		limit = 50
	}

	db := config.GetDB()
	var histories []History
	err := db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("created_at desc").
		Limit(limit).
		Find(&histories).Error
	if err != nil {
		return nil, err
	}
	return histories, nil
}
