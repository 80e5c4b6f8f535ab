package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/gustavowmarques/work-logix-v2/internal/models"
)

func TestRolePredicates(t *testing.T) {
	admin := Actor{UserID: uuid.New(), Role: models.RoleAdmin}
	pm := Actor{UserID: uuid.New(), Role: models.RolePropertyManager}
	assistant := Actor{UserID: uuid.New(), Role: models.RoleAssistant}
	contractor := Actor{UserID: uuid.New(), Role: models.RoleContractor}

	assert.True(t, CanManage(admin))
	assert.False(t, CanManage(pm))

	assert.True(t, CanCreateWorkOrder(admin))
	assert.True(t, CanCreateWorkOrder(pm))
	assert.True(t, CanCreateWorkOrder(assistant))
	assert.False(t, CanCreateWorkOrder(contractor))
}

func TestOrderPredicates(t *testing.T) {
	preferredID := uuid.New()
	secondID := uuid.New()
	creatorID := uuid.New()

	wo := &models.WorkOrder{
		ID:                    uuid.New(),
		Status:                models.OrderStatusNew,
		CreatedBy:             creatorID,
		PreferredContractorID: &preferredID,
		SecondContractorID:    &secondID,
		AssignedContractorID:  &preferredID,
	}

	preferred := Actor{UserID: uuid.New(), Role: models.RoleContractor, CompanyID: &preferredID}
	second := Actor{UserID: uuid.New(), Role: models.RoleContractor, CompanyID: &secondID}
	outsiderCo := uuid.New()
	outsider := Actor{UserID: uuid.New(), Role: models.RoleContractor, CompanyID: &outsiderCo}
	noCompany := Actor{UserID: uuid.New(), Role: models.RoleContractor}

	assert.True(t, IsCandidate(preferred, wo))
	assert.True(t, IsCandidate(second, wo))
	assert.False(t, IsCandidate(outsider, wo))
	assert.False(t, IsCandidate(noCompany, wo))

	assert.True(t, IsAssignee(preferred, wo))
	assert.False(t, IsAssignee(second, wo))

	// non-contractor in a candidate slot still fails the role gate
	pmInSlot := Actor{UserID: uuid.New(), Role: models.RolePropertyManager, CompanyID: &preferredID}
	assert.False(t, IsCandidate(pmInSlot, wo))
	assert.False(t, IsAssignee(pmInSlot, wo))
}

func TestCanView(t *testing.T) {
	preferredID := uuid.New()
	creatorID := uuid.New()
	wo := &models.WorkOrder{
		ID:                    uuid.New(),
		CreatedBy:             creatorID,
		PreferredContractorID: &preferredID,
		AssignedContractorID:  &preferredID,
	}

	assert.True(t, CanView(Actor{UserID: uuid.New(), Role: models.RoleAdmin}, wo))
	assert.True(t, CanView(Actor{UserID: creatorID, Role: models.RolePropertyManager}, wo))
	assert.True(t, CanView(Actor{UserID: uuid.New(), Role: models.RoleContractor, CompanyID: &preferredID}, wo))

	strangerCo := uuid.New()
	assert.False(t, CanView(Actor{UserID: uuid.New(), Role: models.RoleContractor, CompanyID: &strangerCo}, wo))
}
