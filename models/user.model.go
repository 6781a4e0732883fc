package models

import "gorm.io/gorm"

const (
	RoleStudent  = "student"
	RoleEducator = "educator"
)

// User is provisioned and kept in sync by the identity provider's webhook.
// No password is stored here; authentication happens upstream.
type User struct {
	gorm.Model
	ExternalID string `json:"external_id" gorm:"uniqueIndex;not null"` // id assigned by the identity provider
	Name       string `json:"name"`
	Email      string `json:"email" gorm:"uniqueIndex;not null"`
	ImageURL   string `json:"image_url"`
	Role       string `json:"role" gorm:"type:varchar(20);default:'student'"`
	IsDeleted  bool   `gorm:"default:false"`
}
