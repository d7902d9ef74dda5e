package model

import "time"

// KVEntry is one slot of the key-value persistence store. Value holds the
// JSON-serialized payload; writes are last-write-wins, no versioning.
type KVEntry struct {
	Key       string    `gorm:"primaryKey;size:128"`
	Value     string    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
