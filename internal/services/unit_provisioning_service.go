package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gustavowmarques/work-logix-v2/internal/constants"
	"github.com/gustavowmarques/work-logix-v2/internal/dtos"
	"github.com/gustavowmarques/work-logix-v2/internal/models"
	"github.com/gustavowmarques/work-logix-v2/internal/repositories"
	"github.com/gustavowmarques/work-logix-v2/internal/utils"
)

// UnitProvisioningService runs client onboarding: create the client with
// bulk-unit counts, review the generated unit names, confirm to persist.
// The pending counts live in an explicit draft row with a TTL instead of
// ambient session state, so the flow survives restarts and expiry is
// enforceable.
type UnitProvisioningService struct {
	clientRepo repositories.ClientRepository
	unitRepo   repositories.UnitRepository
	draftRepo  repositories.UnitDraftRepository
	resolver   AddressResolver

	now func() time.Time
}

func NewUnitProvisioningService(
	clientRepo repositories.ClientRepository,
	unitRepo repositories.UnitRepository,
	draftRepo repositories.UnitDraftRepository,
	resolver AddressResolver,
) *UnitProvisioningService {
	return &UnitProvisioningService{
		clientRepo: clientRepo,
		unitRepo:   unitRepo,
		draftRepo:  draftRepo,
		resolver:   resolver,
		now:        time.Now,
	}
}

// CreateClientWithDraft persists the client and, when any unit counts
// were supplied, opens a provisioning draft. Zero counts across the
// board simply creates the client with no draft.
func (s *UnitProvisioningService) CreateClientWithDraft(
	ctx context.Context,
	actor Actor,
	req dtos.CreateClientRequest,
) (*dtos.CreateClientResponse, error) {
	if !CanManage(actor) && !CanCreateWorkOrder(actor) {
		return nil, utils.ErrNotAllowed
	}

	if req.NumApartments < 0 || req.NumDuplexes < 0 || req.NumHouses < 0 || req.NumCommercial < 0 {
		return nil, utils.ErrInvalidPayload
	}
	total := req.NumApartments + req.NumDuplexes + req.NumHouses + req.NumCommercial
	if total > constants.MaxUnitsPerDraft {
		return nil, utils.ErrInvalidPayload
	}

	client := &models.Client{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		Address:   strings.TrimSpace(req.Address),
		CompanyID: req.CompanyID,
		Notes:     req.Notes,
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	resp := &dtos.CreateClientResponse{Client: client}
	if total == 0 {
		return resp, nil
	}

	draft := &models.UnitDraft{
		ID:             uuid.New(),
		ClientID:       client.ID,
		DefaultEircode: strings.ToUpper(strings.TrimSpace(req.DefaultEircode)),
		NumApartments:  req.NumApartments,
		NumDuplexes:    req.NumDuplexes,
		NumHouses:      req.NumHouses,
		NumCommercial:  req.NumCommercial,
		CreatedBy:      actor.UserID,
		ExpiresAt:      s.now().Add(constants.UnitDraftTTL),
	}
	if err := s.draftRepo.Create(ctx, draft); err != nil {
		return nil, err
	}

	resp.DraftID = &draft.ID
	return resp, nil
}

// ReviewUnits expands the draft counts into named unit rows for the
// review step. Names are generated per type ("Apartment 1", "Duplex 2",
// ...) and address fields are pre-filled from the default eircode when
// the resolver knows it.
func (s *UnitProvisioningService) ReviewUnits(
	ctx context.Context,
	actor Actor,
	draftID uuid.UUID,
) (*dtos.ReviewUnitsResponse, error) {
	draft, err := s.loadDraft(ctx, actor, draftID)
	if err != nil {
		return nil, err
	}

	var (
		eircode *string
		addr    *Address
	)
	if draft.DefaultEircode != "" {
		ec := draft.DefaultEircode
		eircode = &ec
		addr, err = s.resolver.Resolve(ctx, ec)
		if err != nil {
			return nil, err
		}
	}

	var units []dtos.UnitPreview
	expand := func(count int, label string, ut models.UnitType) {
		for i := 1; i <= count; i++ {
			p := dtos.UnitPreview{
				Name:     fmt.Sprintf("%s %d", label, i),
				UnitType: ut,
				Eircode:  eircode,
			}
			if addr != nil {
				street, city, county := addr.Street, addr.City, addr.County
				if street != "" {
					p.Street = &street
				}
				if city != "" {
					p.City = &city
				}
				if county != "" {
					p.County = &county
				}
			}
			units = append(units, p)
		}
	}
	expand(draft.NumApartments, "Apartment", models.UnitTypeApartment)
	expand(draft.NumDuplexes, "Duplex", models.UnitTypeDuplex)
	expand(draft.NumHouses, "House", models.UnitTypeHouse)
	expand(draft.NumCommercial, "Commercial Unit", models.UnitTypeCommercial)

	return &dtos.ReviewUnitsResponse{
		DraftID:   draft.ID,
		ClientID:  draft.ClientID,
		Units:     units,
		ExpiresAt: draft.ExpiresAt,
	}, nil
}

// ConfirmUnits persists the (possibly edited) preview rows in one batch
// and clears the draft. The draft is cleared even though confirmation
// content may differ from the generated preview: the draft only tracks
// that provisioning is pending, not the final names.
func (s *UnitProvisioningService) ConfirmUnits(
	ctx context.Context,
	actor Actor,
	draftID uuid.UUID,
	req dtos.ConfirmUnitsRequest,
) (*dtos.ConfirmUnitsResponse, error) {
	draft, err := s.loadDraft(ctx, actor, draftID)
	if err != nil {
		return nil, err
	}

	if len(req.Units) == 0 || len(req.Units) > constants.MaxUnitsPerDraft {
		return nil, utils.ErrInvalidPayload
	}

	units := make([]*models.Unit, 0, len(req.Units))
	for _, p := range req.Units {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return nil, utils.ErrInvalidPayload
		}
		switch p.UnitType {
		case models.UnitTypeApartment, models.UnitTypeDuplex, models.UnitTypeHouse, models.UnitTypeCommercial:
		default:
			return nil, utils.ErrInvalidPayload
		}
		units = append(units, &models.Unit{
			ID:       uuid.New(),
			ClientID: draft.ClientID,
			Name:     name,
			UnitType: p.UnitType,
			Eircode:  p.Eircode,
			Street:   p.Street,
			City:     p.City,
			County:   p.County,
		})
	}

	if err := s.unitRepo.CreateBatch(ctx, units); err != nil {
		return nil, err
	}
	if err := s.draftRepo.Delete(ctx, draft.ID); err != nil {
		return nil, err
	}

	return &dtos.ConfirmUnitsResponse{
		ClientID: draft.ClientID,
		Units:    units,
		Total:    len(units),
	}, nil
}

func (s *UnitProvisioningService) loadDraft(
	ctx context.Context,
	actor Actor,
	draftID uuid.UUID,
) (*models.UnitDraft, error) {
	if !CanManage(actor) && !CanCreateWorkOrder(actor) {
		return nil, utils.ErrNotAllowed
	}

	draft, err := s.draftRepo.GetByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, utils.ErrNotFound
	}
	if !CanManage(actor) && draft.CreatedBy != actor.UserID {
		return nil, utils.ErrNotAllowed
	}
	if draft.Expired(s.now()) {
		return nil, utils.ErrDraftExpired
	}
	return draft, nil
}
