package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"
	_ "time/tzdata"

	"github.com/rentstead/rentals-service/internal/app"
	"github.com/rentstead/rentals-service/internal/config"
	"github.com/rentstead/rentals-service/internal/constants"
	"github.com/rentstead/rentals-service/internal/controllers"
	"github.com/rentstead/rentals-service/internal/middleware"
	"github.com/rentstead/rentals-service/internal/repositories"
	"github.com/rentstead/rentals-service/internal/routes"
	"github.com/rentstead/rentals-service/internal/services"
	"github.com/rentstead/rentals-service/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()
	defer cfg.Close()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize rentals-service:", err)
	}
	defer application.Close()

	photoStore, err := utils.NewDiskPhotoStore(cfg.UploadDir, cfg.UploadBaseURL)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize photo store:", err)
	}

	// Repositories
	propertyRepo := repositories.NewPropertyRepository(application.DB)
	tenantRepo := repositories.NewTenantRepository(application.DB)
	managerRepo := repositories.NewManagerRepository(application.DB)
	applicationRepo := repositories.NewApplicationRepository(application.DB)
	leaseRepo := repositories.NewLeaseRepository(application.DB)
	paymentRepo := repositories.NewPaymentRepository(application.DB)

	if cfg.LDFlag_SeedDbWithTestData {
		if err := app.SeedTestData(context.Background(), application.DB, managerRepo, tenantRepo, propertyRepo, applicationRepo, paymentRepo); err != nil {
			utils.Logger.Fatal("Failed to seed test data:", err)
		}
	}

	// Services
	geocoder := utils.NewGMapsGeocoder(cfg.GoogleMapsAPIKey)
	notifier := services.NewNotifier(cfg)
	propertyService := services.NewPropertyService(propertyRepo, managerRepo, geocoder, photoStore)
	tenantService := services.NewTenantService(tenantRepo, propertyRepo)
	managerService := services.NewManagerService(managerRepo)
	applicationService := services.NewApplicationService(applicationRepo, propertyRepo, tenantRepo, managerRepo, leaseRepo, notifier)
	leaseService := services.NewLeaseService(leaseRepo, paymentRepo)
	paymentMaintenance := services.NewPaymentMaintenanceService(application.DB, leaseRepo, paymentRepo)

	// Controllers
	healthController := controllers.NewHealthController(application)
	propertyController := controllers.NewPropertyController(propertyService)
	tenantController := controllers.NewTenantController(tenantService, propertyService)
	managerController := controllers.NewManagerController(managerService, propertyService)
	applicationController := controllers.NewApplicationController(applicationService)
	leaseController := controllers.NewLeaseController(leaseService)

	// Router setup
	router := mux.NewRouter()

	// Public routes
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Properties, propertyController.SearchHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.Property, propertyController.GetHandler).Methods(http.MethodGet)
	router.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))),
	).Methods(http.MethodGet)

	// Account creation happens right after signup, before a role-scoped
	// token exists, so these only require authentication.
	authed := router.NewRoute().Subrouter()
	authed.Use(middleware.AuthMiddleware(cfg.RSAPublicKey))
	authed.HandleFunc(routes.Tenants, tenantController.CreateHandler).Methods(http.MethodPost)
	authed.HandleFunc(routes.Managers, managerController.CreateHandler).Methods(http.MethodPost)
	authed.HandleFunc(routes.Leases, leaseController.ListHandler).Methods(http.MethodGet)
	authed.HandleFunc(routes.LeasePayments, leaseController.ListPaymentsHandler).Methods(http.MethodGet)
	authed.HandleFunc(routes.Applications, applicationController.ListHandler).Methods(http.MethodGet)

	// Tenant routes
	tenants := router.NewRoute().Subrouter()
	tenants.Use(middleware.AuthMiddleware(cfg.RSAPublicKey), middleware.RequireRole(middleware.RoleTenant))
	tenants.HandleFunc(routes.Tenant, tenantController.GetHandler).Methods(http.MethodGet)
	tenants.HandleFunc(routes.Tenant, tenantController.UpdateHandler).Methods(http.MethodPut)
	tenants.HandleFunc(routes.TenantResidences, tenantController.ListResidencesHandler).Methods(http.MethodGet)
	tenants.HandleFunc(routes.TenantFavorite, tenantController.AddFavoriteHandler).Methods(http.MethodPost)
	tenants.HandleFunc(routes.TenantFavorite, tenantController.RemoveFavoriteHandler).Methods(http.MethodDelete)
	tenants.HandleFunc(routes.Applications, applicationController.CreateHandler).Methods(http.MethodPost)

	// Manager routes
	managers := router.NewRoute().Subrouter()
	managers.Use(middleware.AuthMiddleware(cfg.RSAPublicKey), middleware.RequireRole(middleware.RoleManager))
	managers.HandleFunc(routes.Manager, managerController.GetHandler).Methods(http.MethodGet)
	managers.HandleFunc(routes.Manager, managerController.UpdateHandler).Methods(http.MethodPut)
	managers.HandleFunc(routes.ManagerProperties, managerController.ListPropertiesHandler).Methods(http.MethodGet)
	managers.HandleFunc(routes.Properties, propertyController.CreateHandler).Methods(http.MethodPost)
	managers.HandleFunc(routes.ApplicationStatus, applicationController.UpdateStatusHandler).Methods(http.MethodPut)

	// Cron job setup
	c := cron.New(cron.WithLocation(time.UTC))
	_, err = c.AddFunc(constants.PaymentSweepCronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), constants.PaymentSweepJobTimeout)
		defer cancel()
		utils.Logger.Info("Starting payment sweep cron job...")
		if err := paymentMaintenance.Sweep(ctx); err != nil {
			utils.Logger.WithError(err).Error("Failed to run payment sweep")
		}
	})
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to schedule payment sweep cron")
	}
	c.Start()
	utils.Logger.Info("Scheduled payment sweep cron job")

	allowedOrigins := []string{cfg.AppUrl}
	if !cfg.LDFlag_CORSHighSecurity {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000")
	}

	co := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("rentals-service failed to start:", err)
	}
}
