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

// CompanyService is the administrative directory of companies and trade
// categories.
type CompanyService struct {
	companyRepo      repositories.CompanyRepository
	businessTypeRepo repositories.BusinessTypeRepository
}

func NewCompanyService(
	companyRepo repositories.CompanyRepository,
	businessTypeRepo repositories.BusinessTypeRepository,
) *CompanyService {
	return &CompanyService{
		companyRepo:      companyRepo,
		businessTypeRepo: businessTypeRepo,
	}
}

func (s *CompanyService) CreateCompany(
	ctx context.Context,
	actor Actor,
	req dtos.CreateCompanyRequest,
) (*models.Company, error) {
	if !CanManage(actor) {
		return nil, utils.ErrNotAllowed
	}

	if req.BusinessTypeID != nil {
		bt, err := s.businessTypeRepo.GetByID(ctx, *req.BusinessTypeID)
		if err != nil {
			return nil, err
		}
		if bt == nil {
			return nil, utils.ErrNotFound
		}
	}

	company := &models.Company{
		ID:                uuid.New(),
		Name:              strings.TrimSpace(req.Name),
		Address:           req.Address,
		Email:             req.Email,
		Phone:             req.Phone,
		Website:           req.Website,
		IsContractor:      req.IsContractor,
		IsClient:          req.IsClient,
		IsPropertyManager: req.IsPropertyManager,
		BusinessTypeID:    req.BusinessTypeID,
	}
	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *CompanyService) GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, utils.ErrNotFound
	}
	return company, nil
}

func (s *CompanyService) ListCompanies(ctx context.Context, filter repositories.CompanyFilter) ([]*models.Company, error) {
	return s.companyRepo.Find(ctx, filter)
}

func (s *CompanyService) UpdateCompany(
	ctx context.Context,
	actor Actor,
	id uuid.UUID,
	req dtos.UpdateCompanyRequest,
) (*models.Company, error) {
	if !CanManage(actor) {
		return nil, utils.ErrNotAllowed
	}

	company, err := s.GetCompany(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, utils.ErrInvalidPayload
		}
		company.Name = name
	}
	if req.Address != nil {
		company.Address = *req.Address
	}
	if req.Email != nil {
		company.Email = *req.Email
	}
	if req.Phone != nil {
		company.Phone = *req.Phone
	}
	if req.Website != nil {
		company.Website = *req.Website
	}
	if req.BusinessTypeID != nil {
		bt, err := s.businessTypeRepo.GetByID(ctx, *req.BusinessTypeID)
		if err != nil {
			return nil, err
		}
		if bt == nil {
			return nil, utils.ErrNotFound
		}
		company.BusinessTypeID = req.BusinessTypeID
	}

	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *CompanyService) DeleteCompany(ctx context.Context, actor Actor, id uuid.UUID) error {
	if !CanManage(actor) {
		return utils.ErrNotAllowed
	}
	return s.companyRepo.Delete(ctx, id)
}

func (s *CompanyService) ListBusinessTypes(ctx context.Context) ([]*models.BusinessType, error) {
	return s.businessTypeRepo.ListAll(ctx)
}
