package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/gustavowmarques/work-logix-v2/internal/dtos"
	"github.com/gustavowmarques/work-logix-v2/internal/models"
	"github.com/gustavowmarques/work-logix-v2/internal/repositories"
	"github.com/gustavowmarques/work-logix-v2/internal/utils"
)

// ClientService covers the read/update side of managed sites. Creation
// goes through UnitProvisioningService so the unit wizard stays in one
// place.
type ClientService struct {
	clientRepo repositories.ClientRepository
	unitRepo   repositories.UnitRepository
}

func NewClientService(clientRepo repositories.ClientRepository, unitRepo repositories.UnitRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo, unitRepo: unitRepo}
}

// ListClients scopes by role: admins see every site, everyone else sees
// the sites of their own company.
func (s *ClientService) ListClients(ctx context.Context, actor Actor) ([]*models.Client, error) {
	if CanManage(actor) {
		return s.clientRepo.ListAll(ctx)
	}
	if actor.CompanyID == nil {
		return nil, utils.ErrNotAllowed
	}
	return s.clientRepo.ListByCompanyID(ctx, *actor.CompanyID)
}

func (s *ClientService) GetClient(ctx context.Context, actor Actor, id uuid.UUID) (*models.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, utils.ErrNotFound
	}
	if !CanManage(actor) {
		if actor.CompanyID == nil || client.CompanyID != *actor.CompanyID {
			return nil, utils.ErrNotAllowed
		}
	}
	return client, nil
}

func (s *ClientService) UpdateClient(
	ctx context.Context,
	actor Actor,
	id uuid.UUID,
	req dtos.UpdateClientRequest,
) (*models.Client, error) {
	client, err := s.GetClient(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !CanManage(actor) && !CanCreateWorkOrder(actor) {
		return nil, utils.ErrNotAllowed
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, utils.ErrInvalidPayload
		}
		client.Name = name
	}
	if req.Address != nil {
		client.Address = strings.TrimSpace(*req.Address)
	}
	if req.Notes != nil {
		client.Notes = req.Notes
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *ClientService) DeleteClient(ctx context.Context, actor Actor, id uuid.UUID) error {
	if !CanManage(actor) {
		return utils.ErrNotAllowed
	}
	return s.clientRepo.Delete(ctx, id)
}

func (s *ClientService) ListUnits(ctx context.Context, actor Actor, clientID uuid.UUID) ([]*models.Unit, error) {
	if _, err := s.GetClient(ctx, actor, clientID); err != nil {
		return nil, err
	}
	return s.unitRepo.ListByClientID(ctx, clientID)
}

func (s *ClientService) DeleteUnit(ctx context.Context, actor Actor, clientID, unitID uuid.UUID) error {
	if _, err := s.GetClient(ctx, actor, clientID); err != nil {
		return err
	}
	unit, err := s.unitRepo.GetByID(ctx, unitID)
	if err != nil {
		return err
	}
	if unit == nil || unit.ClientID != clientID {
		return utils.ErrNotFound
	}
	return s.unitRepo.Delete(ctx, unitID)
}
