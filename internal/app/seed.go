package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/gustavowmarques/work-logix-v2/internal/models"
	"github.com/gustavowmarques/work-logix-v2/internal/repositories"
	"github.com/gustavowmarques/work-logix-v2/internal/utils"
)

// SeedDemoData loads a small demo fixture set: trade categories, a PM
// agency with staff, two contractor firms, and one managed site with a
// few units. Intended for local and review environments only.
func SeedDemoData(
	ctx context.Context,
	businessTypeRepo repositories.BusinessTypeRepository,
	companyRepo repositories.CompanyRepository,
	userRepo repositories.UserRepository,
	clientRepo repositories.ClientRepository,
	unitRepo repositories.UnitRepository,
) error {
	existing, err := businessTypeRepo.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		utils.Logger.Info("Demo data already present; skipping seed")
		return nil
	}

	plumbing := &models.BusinessType{ID: uuid.New(), Name: "Plumbing"}
	electrical := &models.BusinessType{ID: uuid.New(), Name: "Electrical"}
	for _, bt := range []*models.BusinessType{plumbing, electrical} {
		if err := businessTypeRepo.Create(ctx, bt); err != nil {
			return err
		}
	}

	agency := &models.Company{
		ID:                uuid.New(),
		Name:              "Harbourview Property Management",
		Email:             "office@harbourview.example",
		IsPropertyManager: true,
	}
	pipeworks := &models.Company{
		ID:             uuid.New(),
		Name:           "Liffey Pipeworks",
		Email:          "jobs@liffeypipeworks.example",
		IsContractor:   true,
		BusinessTypeID: &plumbing.ID,
	}
	voltline := &models.Company{
		ID:             uuid.New(),
		Name:           "Voltline Electrical",
		Email:          "dispatch@voltline.example",
		IsContractor:   true,
		BusinessTypeID: &electrical.ID,
	}
	for _, co := range []*models.Company{agency, pipeworks, voltline} {
		if err := companyRepo.Create(ctx, co); err != nil {
			return err
		}
	}

	hash, err := utils.HashPassword("changeme")
	if err != nil {
		return err
	}
	users := []*models.User{
		{ID: uuid.New(), Username: "admin", Email: "admin@worklogix.example", PasswordHash: hash, Role: models.RoleAdmin},
		{ID: uuid.New(), Username: "pm.dana", Email: "dana@harbourview.example", PasswordHash: hash, Role: models.RolePropertyManager, CompanyID: &agency.ID},
		{ID: uuid.New(), Username: "pipeworks.sam", Email: "sam@liffeypipeworks.example", PasswordHash: hash, Role: models.RoleContractor, CompanyID: &pipeworks.ID},
		{ID: uuid.New(), Username: "voltline.ray", Email: "ray@voltline.example", PasswordHash: hash, Role: models.RoleContractor, CompanyID: &voltline.ID},
	}
	for _, u := range users {
		if err := userRepo.Create(ctx, u); err != nil {
			return err
		}
	}

	site := &models.Client{
		ID:        uuid.New(),
		Name:      "Marina Quarter",
		Address:   "12 Quay Road, Dublin",
		CompanyID: agency.ID,
	}
	if err := clientRepo.Create(ctx, site); err != nil {
		return err
	}

	units := []*models.Unit{
		{ID: uuid.New(), ClientID: site.ID, Name: "Apartment 1", UnitType: models.UnitTypeApartment},
		{ID: uuid.New(), ClientID: site.ID, Name: "Apartment 2", UnitType: models.UnitTypeApartment},
		{ID: uuid.New(), ClientID: site.ID, Name: "Commercial Unit 1", UnitType: models.UnitTypeCommercial},
	}
	if err := unitRepo.CreateBatch(ctx, units); err != nil {
		return err
	}

	utils.Logger.Info("Seeded demo data")
	return nil
}
