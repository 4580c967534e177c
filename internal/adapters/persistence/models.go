package persistence

import (
	"time"

	"gorm.io/datatypes"
)

// EventLogModel represents the event_log table
type EventLogModel struct {
	Seq       int64          `gorm:"column:seq;primaryKey;autoIncrement"`
	EventID   string         `gorm:"column:event_id;uniqueIndex;not null"`
	Timestamp time.Time      `gorm:"column:timestamp;not null;index"`
	Kind      string         `gorm:"column:kind;not null;index"`
	Commander string         `gorm:"column:commander"`
	System    string         `gorm:"column:system"`
	Station   string         `gorm:"column:station"`
	Outcome   string         `gorm:"column:outcome;not null"`
	Detail    string         `gorm:"column:detail;type:text"`
	Payload   datatypes.JSON `gorm:"column:payload"`
}

func (EventLogModel) TableName() string {
	return "event_log"
}

// AllModels lists every table migrated at start-up
func AllModels() []interface{} {
	return []interface{}{
		&EventLogModel{},
	}
}
