// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package service

import (
	"time"

	"github.com/AccelByte/extend-achievement-unlocker/pkg/achievement"
)

// UnlockRecordModel is the relational form of achievement.UnlockRecord.
// The composite unique index is the only guard against double grants across instances.
type UnlockRecordModel struct {
	ID            uint      `gorm:"primaryKey"`
	UserID        string    `gorm:"not null;uniqueIndex:idx_user_achievement"`
	AchievementID string    `gorm:"not null;uniqueIndex:idx_user_achievement"`
	GrantedAt     time.Time `gorm:"not null;index"`
}

// TableName overrides the gorm default.
func (UnlockRecordModel) TableName() string {
	return "unlock_records"
}

// ToRecord converts the row into the domain type.
func (m UnlockRecordModel) ToRecord() achievement.UnlockRecord {
	return achievement.UnlockRecord{
		UserID:        m.UserID,
		AchievementID: m.AchievementID,
		GrantedAt:     m.GrantedAt,
	}
}

// DefinitionModel is a catalog row. Position keeps the catalog order stable.
type DefinitionModel struct {
	ID               string `gorm:"primaryKey"`
	Position         int    `gorm:"not null;index"`
	Name             string
	Description      string
	Icon             string
	Category         string
	Rarity           string
	RequirementType  string `gorm:"not null"`
	RequirementValue int    `gorm:"not null;default:0"`
	RewardItemID     string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName overrides the gorm default.
func (DefinitionModel) TableName() string {
	return "achievement_definitions"
}

func newDefinitionModel(position int, d achievement.Definition) DefinitionModel {
	return DefinitionModel{
		ID:               d.ID,
		Position:         position,
		Name:             d.Name,
		Description:      d.Description,
		Icon:             d.Icon,
		Category:         string(d.Category),
		Rarity:           string(d.Rarity),
		RequirementType:  d.RequirementType,
		RequirementValue: d.RequirementValue,
		RewardItemID:     d.RewardItemID,
	}
}

// ToDefinition converts the row into the domain type.
func (m DefinitionModel) ToDefinition() achievement.Definition {
	return achievement.Definition{
		ID:               m.ID,
		Name:             m.Name,
		Description:      m.Description,
		Icon:             m.Icon,
		Category:         achievement.Category(m.Category),
		Rarity:           achievement.Rarity(m.Rarity),
		RequirementType:  m.RequirementType,
		RequirementValue: m.RequirementValue,
		RewardItemID:     m.RewardItemID,
	}
}
