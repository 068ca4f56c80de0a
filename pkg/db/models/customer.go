package models

import "time"

// Customer represents a registered customer row.
type Customer struct {
	CustomerID       string    `gorm:"column:customer_id;primaryKey" json:"customer_id"`
	FirstName        string    `gorm:"column:first_name" json:"first_name"`
	LastName         string    `gorm:"column:last_name" json:"last_name"`
	Email            string    `gorm:"column:email" json:"email"`
	Phone            string    `gorm:"column:phone" json:"phone"`
	RegistrationDate time.Time `gorm:"column:registration_date" json:"registration_date"`
	Age              *int      `gorm:"column:age" json:"age,omitempty"`
	City             string    `gorm:"column:city" json:"city"`
	State            string    `gorm:"column:state" json:"state"`
	Segment          string    `gorm:"column:segment" json:"segment"`
	IsActive         bool      `gorm:"column:is_active" json:"is_active"`
}

// TableName overrides GORM's pluralization.
func (Customer) TableName() string { return "customers" }
