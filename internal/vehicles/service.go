package vehicles

import (
	"context"
	"fmt"

	"taxibe/internal/cooperatives"
	"taxibe/internal/layout"
	"taxibe/internal/shared/config"

	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, req CreateVehicleRequest) (*Vehicle, error)
	Get(ctx context.Context, id string) (*Vehicle, error)
	List(ctx context.Context, cooperativeID string) ([]VehicleResponse, error)
	Update(ctx context.Context, id string, req UpdateVehicleRequest) error
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo     Repository
	coopRepo cooperatives.Repository
	config   *config.Config
}

func NewService(repo Repository, coopRepo cooperatives.Repository, cfg *config.Config) Service {
	return &service{
		repo:     repo,
		coopRepo: coopRepo,
		config:   cfg,
	}
}

func (s *service) Create(ctx context.Context, req CreateVehicleRequest) (*Vehicle, error) {
	coopID, err := uuid.Parse(req.CooperativeID)
	if err != nil {
		return nil, fmt.Errorf("invalid cooperative ID: %w", err)
	}
	if _, err := s.coopRepo.GetByID(ctx, coopID); err != nil {
		return nil, err
	}

	model := layout.VanModel(req.Model)
	// A seat plan must exist for the declared capacity before the
	// vehicle can be sold on.
	if _, err := layout.Generate(req.TotalSeats, model); err != nil {
		return nil, err
	}

	vehicle := &Vehicle{
		CooperativeID: coopID,
		Marque:        req.Marque,
		Matricule:     req.Matricule,
		Chauffeur:     req.Chauffeur,
		TotalSeats:    req.TotalSeats,
		Model:         model,
		PhotoURL:      req.PhotoURL,
		IsActive:      true,
	}
	if err := s.repo.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *service) Get(ctx context.Context, id string) (*Vehicle, error) {
	vehicleID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid vehicle ID: %w", err)
	}
	return s.repo.GetByID(ctx, vehicleID)
}

func (s *service) List(ctx context.Context, cooperativeID string) ([]VehicleResponse, error) {
	var coopFilter *uuid.UUID
	if cooperativeID != "" {
		coopID, err := uuid.Parse(cooperativeID)
		if err != nil {
			return nil, fmt.Errorf("invalid cooperative ID: %w", err)
		}
		coopFilter = &coopID
	}

	vehicles, err := s.repo.List(ctx, coopFilter)
	if err != nil {
		return nil, err
	}
	responses := make([]VehicleResponse, 0, len(vehicles))
	for i := range vehicles {
		responses = append(responses, vehicles[i].ToResponse())
	}
	return responses, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateVehicleRequest) error {
	vehicleID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid vehicle ID: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Marque != nil {
		updates["marque"] = *req.Marque
	}
	if req.Chauffeur != nil {
		updates["chauffeur"] = *req.Chauffeur
	}
	if req.PhotoURL != nil {
		updates["photo_url"] = *req.PhotoURL
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return nil
	}

	return s.repo.Update(ctx, vehicleID, updates)
}

func (s *service) Delete(ctx context.Context, id string) error {
	vehicleID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid vehicle ID: %w", err)
	}
	return s.repo.Delete(ctx, vehicleID)
}
