package routes

const (
	Health = "/health"

	AuthLogin = "/api/v1/auth/login"

	WorkOrders          = "/api/v1/work-orders"
	WorkOrderByID       = "/api/v1/work-orders/{id}"
	WorkOrderAccept     = "/api/v1/work-orders/{id}/accept"
	WorkOrderReject     = "/api/v1/work-orders/{id}/reject"
	WorkOrderComplete   = "/api/v1/work-orders/{id}/complete"
	WorkOrdersInbox     = "/api/v1/work-orders/inbox"
	ContractorDirectory = "/api/v1/contractors"

	Clients          = "/api/v1/clients"
	ClientByID       = "/api/v1/clients/{id}"
	ClientUnits      = "/api/v1/clients/{id}/units"
	ClientUnitByID   = "/api/v1/clients/{id}/units/{unitID}"
	UnitDraftReview  = "/api/v1/unit-drafts/{id}/review"
	UnitDraftConfirm = "/api/v1/unit-drafts/{id}/confirm"

	Companies     = "/api/v1/companies"
	CompanyByID   = "/api/v1/companies/{id}"
	BusinessTypes = "/api/v1/business-types"
)
