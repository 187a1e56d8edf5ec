package usecase

import (
	"github.com/google/uuid"

	"github.com/farmaviva/botica-api/internal/application/dto"
	"github.com/farmaviva/botica-api/internal/domain"
	"github.com/farmaviva/botica-api/internal/domain/entity"
	"github.com/farmaviva/botica-api/internal/domain/repository"
	"github.com/farmaviva/botica-api/pkg/clock"
)

// LocationUseCase mantenimiento de ubicaciones físicas (anaqueles, vitrinas).
type LocationUseCase struct {
	locationRepo repository.LocationRepository
	clk          clock.Clock
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(locationRepo repository.LocationRepository, clk clock.Clock) *LocationUseCase {
	return &LocationUseCase{locationRepo: locationRepo, clk: clk}
}

// Create registra una ubicación nueva.
func (uc *LocationUseCase) Create(in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := uc.clk.Now()
	location := &entity.Location{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.locationRepo.Create(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// Get devuelve una ubicación por ID.
func (uc *LocationUseCase) Get(id string) (*dto.LocationResponse, error) {
	location, err := uc.locationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	return toLocationResponse(location), nil
}

// Update renombra o re-describe una ubicación.
func (uc *LocationUseCase) Update(id string, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	location, err := uc.locationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		location.Name = in.Name
	}
	location.Description = in.Description
	location.UpdatedAt = uc.clk.Now()
	if err := uc.locationRepo.Update(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// List lista ubicaciones paginadas.
func (uc *LocationUseCase) List(page dto.PageRequest) ([]dto.LocationResponse, error) {
	page.DefaultPage()
	locations, err := uc.locationRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationResponse, 0, len(locations))
	for _, l := range locations {
		out = append(out, *toLocationResponse(l))
	}
	return out, nil
}

// Delete elimina una ubicación.
func (uc *LocationUseCase) Delete(id string) error {
	location, err := uc.locationRepo.GetByID(id)
	if err != nil {
		return err
	}
	if location == nil {
		return domain.ErrNotFound
	}
	return uc.locationRepo.Delete(id)
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}
