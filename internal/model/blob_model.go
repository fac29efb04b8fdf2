package model

import (
	"time"

	"gorm.io/datatypes"
)

type Blob struct {
	Key       string         `gorm:"type:varchar(64);primaryKey"`
	Value     datatypes.JSON `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (Blob) TableName() string {
	return "library_blobs"
}
