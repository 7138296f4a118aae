package cooperatives

import (
	"time"

	"github.com/google/uuid"
)

// Cooperative is a transport cooperative operating taxi-brousse vehicles.
type Cooperative struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Region    string    `gorm:"not null" json:"region"`
	Phone     string    `json:"phone"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name for Cooperative
func (Cooperative) TableName() string {
	return "cooperatives"
}

type CreateCooperativeRequest struct {
	Name   string `json:"name" binding:"required,min=2,max=150"`
	Region string `json:"region" binding:"required,min=2,max=100"`
	Phone  string `json:"phone" binding:"omitempty,min=10,max=13"`
}

type UpdateCooperativeRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=150"`
	Region   *string `json:"region" binding:"omitempty,min=2,max=100"`
	Phone    *string `json:"phone" binding:"omitempty,min=10,max=13"`
	IsActive *bool   `json:"is_active"`
}

type CooperativeResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Region   string `json:"region"`
	Phone    string `json:"phone"`
	IsActive bool   `json:"is_active"`
}

func (c *Cooperative) ToResponse() CooperativeResponse {
	return CooperativeResponse{
		ID:       c.ID.String(),
		Name:     c.Name,
		Region:   c.Region,
		Phone:    c.Phone,
		IsActive: c.IsActive,
	}
}
