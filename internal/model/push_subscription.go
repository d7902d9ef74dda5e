package model

import "time"

// PushSubscription holds the information for a browser push subscription.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`

	// Devices the subscriber wants alerts for.
	Devices []SubscriptionDevice `gorm:"foreignKey:Endpoint;references:Endpoint;constraint:OnDelete:CASCADE"`
}

// SubscriptionDevice maps a subscription to one registry device id. Devices
// live in the in-memory registry, so only the id is kept here.
type SubscriptionDevice struct {
	Endpoint string `gorm:"primaryKey;size:512"`
	DeviceID int64  `gorm:"primaryKey"`
}
