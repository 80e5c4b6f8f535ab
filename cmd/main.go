package main

import (
	"context"
	"net/http"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/gustavowmarques/work-logix-v2/internal/app"
	"github.com/gustavowmarques/work-logix-v2/internal/config"
	"github.com/gustavowmarques/work-logix-v2/internal/controllers"
	"github.com/gustavowmarques/work-logix-v2/internal/middleware"
	"github.com/gustavowmarques/work-logix-v2/internal/repositories"
	"github.com/gustavowmarques/work-logix-v2/internal/routes"
	"github.com/gustavowmarques/work-logix-v2/internal/services"
	"github.com/gustavowmarques/work-logix-v2/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize service:", err)
	}
	defer application.Close()

	workOrderRepo := repositories.NewWorkOrderRepository(application.DB)
	companyRepo := repositories.NewCompanyRepository(application.DB)
	clientRepo := repositories.NewClientRepository(application.DB)
	unitRepo := repositories.NewUnitRepository(application.DB)
	userRepo := repositories.NewUserRepository(application.DB)
	businessTypeRepo := repositories.NewBusinessTypeRepository(application.DB)
	draftRepo := repositories.NewUnitDraftRepository(application.DB)

	if cfg.SeedDemoData {
		if err := app.SeedDemoData(
			context.Background(),
			businessTypeRepo,
			companyRepo,
			userRepo,
			clientRepo,
			unitRepo,
		); err != nil {
			utils.Logger.WithError(err).Fatal("Failed to seed demo data")
		}
	}

	actorResolver := services.NewActorResolver(userRepo)
	authService := services.NewAuthService(userRepo, cfg.RSAPrivateKey, cfg.TokenExpiry)
	workOrderService := services.NewWorkOrderService(workOrderRepo, companyRepo, clientRepo, unitRepo)
	clientService := services.NewClientService(clientRepo, unitRepo)
	companyService := services.NewCompanyService(companyRepo, businessTypeRepo)
	provisioningService := services.NewUnitProvisioningService(
		clientRepo, unitRepo, draftRepo, services.NewStaticAddressResolver(),
	)

	draftCleanup := services.NewDraftCleanupService(draftRepo)
	if err := draftCleanup.Start(); err != nil {
		utils.Logger.WithError(err).Fatal("Failed to start draft cleanup scheduler")
	}
	defer draftCleanup.Stop()

	healthController := controllers.NewHealthController(application.DB)
	authController := controllers.NewAuthController(authService)
	workOrdersController := controllers.NewWorkOrdersController(workOrderService, actorResolver)
	clientsController := controllers.NewClientsController(clientService, provisioningService, actorResolver)
	companiesController := controllers.NewCompaniesController(companyService, actorResolver)

	router := mux.NewRouter()

	// Public
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.AuthLogin, authController.LoginHandler).Methods(http.MethodPost)

	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.AuthMiddleware(cfg.RSAPublicKey))

	secured.HandleFunc(routes.WorkOrdersInbox, workOrdersController.InboxHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.WorkOrders, workOrdersController.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.WorkOrders, workOrdersController.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.WorkOrderByID, workOrdersController.GetHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.WorkOrderByID, workOrdersController.UpdateHandler).Methods(http.MethodPatch)
	secured.HandleFunc(routes.WorkOrderByID, workOrdersController.DeleteHandler).Methods(http.MethodDelete)
	secured.HandleFunc(routes.WorkOrderAccept, workOrdersController.AcceptHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.WorkOrderReject, workOrdersController.RejectHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.WorkOrderComplete, workOrdersController.CompleteHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.ContractorDirectory, workOrdersController.ListContractorsHandler).Methods(http.MethodGet)

	secured.HandleFunc(routes.Clients, clientsController.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.Clients, clientsController.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.ClientByID, clientsController.GetHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.ClientByID, clientsController.UpdateHandler).Methods(http.MethodPatch)
	secured.HandleFunc(routes.ClientByID, clientsController.DeleteHandler).Methods(http.MethodDelete)
	secured.HandleFunc(routes.ClientUnits, clientsController.ListUnitsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.ClientUnitByID, clientsController.DeleteUnitHandler).Methods(http.MethodDelete)
	secured.HandleFunc(routes.UnitDraftReview, clientsController.ReviewUnitsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.UnitDraftConfirm, clientsController.ConfirmUnitsHandler).Methods(http.MethodPost)

	secured.HandleFunc(routes.Companies, companiesController.CreateHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.Companies, companiesController.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.CompanyByID, companiesController.GetHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.CompanyByID, companiesController.UpdateHandler).Methods(http.MethodPatch)
	secured.HandleFunc(routes.CompanyByID, companiesController.DeleteHandler).Methods(http.MethodDelete)
	secured.HandleFunc(routes.BusinessTypes, companiesController.ListBusinessTypesHandler).Methods(http.MethodGet)

	co := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AppUrl},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("Service failed to start:", err)
	}
}
