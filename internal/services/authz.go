package services

import (
	"github.com/google/uuid"

	"github.com/gustavowmarques/work-logix-v2/internal/models"
)

// Actor is the resolved identity a request acts under: the user, their
// role, and the company they act on behalf of. Contractor actors are
// authorized at the company level, never individually.
type Actor struct {
	UserID    uuid.UUID
	Role      models.RoleType
	CompanyID *uuid.UUID
}

func (a Actor) company() (uuid.UUID, bool) {
	if a.CompanyID == nil {
		return uuid.Nil, false
	}
	return *a.CompanyID, true
}

// The predicate set below is the single source of truth for lifecycle
// authorization. Operations are written strictly in terms of these;
// none re-derives role checks ad hoc.

// CanManage: full administrative rights.
func CanManage(a Actor) bool {
	return a.Role == models.RoleAdmin
}

// CanCreateWorkOrder: admins, property managers, and assistants raise
// work orders.
func CanCreateWorkOrder(a Actor) bool {
	switch a.Role {
	case models.RoleAdmin, models.RolePropertyManager, models.RoleAssistant:
		return true
	}
	return false
}

// IsCandidate: the actor is a contractor whose company occupies one of
// the order's two declared contractor slots.
func IsCandidate(a Actor, wo *models.WorkOrder) bool {
	if a.Role != models.RoleContractor {
		return false
	}
	cid, ok := a.company()
	if !ok {
		return false
	}
	return wo.IsCandidate(cid)
}

// IsAssignee: the actor is a contractor whose company currently holds
// the order.
func IsAssignee(a Actor, wo *models.WorkOrder) bool {
	if a.Role != models.RoleContractor {
		return false
	}
	cid, ok := a.company()
	if !ok {
		return false
	}
	return wo.IsAssigned(cid)
}

// CanView: admins, the creator, and any company in the candidate or
// assigned slots.
func CanView(a Actor, wo *models.WorkOrder) bool {
	if CanManage(a) {
		return true
	}
	if wo.CreatedBy == a.UserID {
		return true
	}
	if cid, ok := a.company(); ok {
		if wo.IsCandidate(cid) || wo.IsAssigned(cid) {
			return true
		}
	}
	return false
}
