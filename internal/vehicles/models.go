package vehicles

import (
	"time"

	"taxibe/internal/layout"

	"github.com/google/uuid"
)

// Vehicle is a taxi-brousse van registered under a cooperative.
type Vehicle struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CooperativeID uuid.UUID       `gorm:"type:uuid;not null;index" json:"cooperative_id"`
	Marque        string          `gorm:"not null" json:"marque"`
	Matricule     string          `gorm:"uniqueIndex;not null" json:"matricule"`
	Chauffeur     string          `gorm:"not null" json:"chauffeur"`
	TotalSeats    int             `gorm:"not null" json:"total_seats"`
	Model         layout.VanModel `gorm:"default:''" json:"model"`
	PhotoURL      string          `json:"photo_url"`
	IsActive      bool            `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName sets the table name for Vehicle
func (Vehicle) TableName() string {
	return "vehicles"
}

type CreateVehicleRequest struct {
	CooperativeID string `json:"cooperative_id" binding:"required,uuid"`
	Marque        string `json:"marque" binding:"required,min=2,max=100"`
	Matricule     string `json:"matricule" binding:"required,min=4,max=20"`
	Chauffeur     string `json:"chauffeur" binding:"required,min=2,max=150"`
	TotalSeats    int    `json:"total_seats" binding:"required,min=3,max=100"`
	Model         string `json:"model" binding:"omitempty,oneof=SPRINTER_20 CRAFTER_22"`
	PhotoURL      string `json:"photo_url" binding:"omitempty,url"`
}

type UpdateVehicleRequest struct {
	Marque    *string `json:"marque" binding:"omitempty,min=2,max=100"`
	Chauffeur *string `json:"chauffeur" binding:"omitempty,min=2,max=150"`
	PhotoURL  *string `json:"photo_url" binding:"omitempty,url"`
	IsActive  *bool   `json:"is_active"`
}

type VehicleResponse struct {
	ID            string `json:"id"`
	CooperativeID string `json:"cooperative_id"`
	Marque        string `json:"marque"`
	Matricule     string `json:"matricule"`
	Chauffeur     string `json:"chauffeur"`
	TotalSeats    int    `json:"total_seats"`
	Model         string `json:"model"`
	PhotoURL      string `json:"photo_url"`
	IsActive      bool   `json:"is_active"`
}

func (v *Vehicle) ToResponse() VehicleResponse {
	return VehicleResponse{
		ID:            v.ID.String(),
		CooperativeID: v.CooperativeID.String(),
		Marque:        v.Marque,
		Matricule:     v.Matricule,
		Chauffeur:     v.Chauffeur,
		TotalSeats:    v.TotalSeats,
		Model:         string(v.Model),
		PhotoURL:      v.PhotoURL,
		IsActive:      v.IsActive,
	}
}
