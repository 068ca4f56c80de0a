package models

import "time"

// Event represents a behavioural tracking event row.
type Event struct {
	EventID    string    `gorm:"column:event_id;primaryKey" json:"event_id"`
	CustomerID string    `gorm:"column:customer_id;index" json:"customer_id"`
	Timestamp  time.Time `gorm:"column:timestamp;index" json:"timestamp"`
	EventType  string    `gorm:"column:event_type" json:"event_type"`
	PageURL    string    `gorm:"column:page_url" json:"page_url"`
	SessionID  string    `gorm:"column:session_id" json:"session_id"`
	DeviceType string    `gorm:"column:device_type" json:"device_type"`
	Browser    string    `gorm:"column:browser" json:"browser"`
	IPAddress  string    `gorm:"column:ip_address" json:"ip_address"`
	UserAgent  string    `gorm:"column:user_agent" json:"user_agent"`
}

// TableName overrides GORM's pluralization.
func (Event) TableName() string { return "events" }
