package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/medsimples/app-cirurgias/internal/config"
	"github.com/medsimples/app-cirurgias/internal/handlers"
	"github.com/medsimples/app-cirurgias/internal/logging"
	"github.com/medsimples/app-cirurgias/internal/middleware"
	"github.com/medsimples/app-cirurgias/internal/observability"
	"github.com/medsimples/app-cirurgias/internal/services"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/medsimples/app-cirurgias/docs"
)

// @title           API de Cirurgias
// @version         1.0
// @description     API de gestão do fluxo de autorização de cirurgias: solicitações, pendências por status, quadro kanban, documentos e notificações.

// @contact.name   Suporte
// @contact.email  suporte@medsimples.com.br

// @host      localhost:8080
// @BasePath  /v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

// @tag.name Solicitações
// @tag.description Ciclo de vida das solicitações de cirurgia

// @tag.name Pendências
// @tag.description Validação e conclusão de pendências por status

func main() {
	// Initialize logger first
	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}

	// Initialize observability
	observability.InitTracer()
	defer observability.ShutdownTracer()

	// Initialize external connections
	config.InitMongoDB()
	config.InitRedis()
	config.InitMinio()

	// Set Gin mode
	if config.AppConfig.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := logging.Logger

	surgeryRequests := handlers.NewSurgeryRequestHandlers(logger, services.NewSurgeryRequestService(logger))
	transitions := handlers.NewTransitionHandlers(logger, services.NewTransitionService(logger))
	pendencies := handlers.NewPendencyHandlers(logger, services.NewPendencyService(logger))
	board := handlers.NewBoardHandlers(logger, services.NewBoardService(logger))
	documents := handlers.NewDocumentHandlers(logger, services.NewDocumentService(logger))
	notifications := handlers.NewNotificationHandlers(logger, services.NewNotificationService(logger))
	patients := handlers.NewPatientHandlers(logger, services.NewPatientService(logger))
	references := handlers.NewReferenceHandlers(logger,
		services.NewHospitalService(logger),
		services.NewHealthPlanService(logger),
		services.NewProcedureService(logger),
		services.NewSupplierService(logger),
		services.NewCollaboratorService(logger))
	customDocuments := handlers.NewCustomDocumentHandlers(logger, services.NewCustomDocumentService(logger))

	// Create router with middleware
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RequestTracker(),
		cors.Default(),
	)

	// Metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/v1")
	v1.GET("/health", handlers.HealthCheck)

	authenticated := v1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		authenticated.GET("/surgery-requests", surgeryRequests.List)
		authenticated.POST("/surgery-requests", surgeryRequests.CreateFull)
		authenticated.POST("/surgery-requests/simple", surgeryRequests.CreateSimple)
		authenticated.GET("/surgery-requests/:id", surgeryRequests.Get)
		authenticated.PATCH("/surgery-requests/:id", surgeryRequests.Update)
		authenticated.POST("/surgery-requests/:id/quotations", surgeryRequests.AddQuotation)

		authenticated.GET("/surgery-requests/pendencies/validate/:id", pendencies.Validate)
		authenticated.PATCH("/surgery-requests/:id/pendencies/:pendencyId/complete", pendencies.Complete)

		authenticated.POST("/surgery-requests/:id/transition", transitions.Transition)
		authenticated.POST("/surgery-requests/:id/approve", transitions.Approve)
		authenticated.POST("/surgery-requests/:id/deny", transitions.Deny)
		authenticated.PATCH("/surgery-requests/:id/status", transitions.SetStatus)

		authenticated.GET("/surgery-requests/:id/documents", documents.List)
		authenticated.POST("/surgery-requests/:id/documents", documents.Upload)
		authenticated.GET("/surgery-requests/:id/documents/:documentId/download", documents.Download)

		authenticated.GET("/board", board.GetBoard)

		authenticated.GET("/notifications", notifications.List)
		authenticated.GET("/notifications/unread-count", notifications.UnreadCount)
		authenticated.PATCH("/notifications/:id/read", notifications.MarkRead)
		authenticated.POST("/notifications/read-all", notifications.MarkAllRead)

		authenticated.GET("/patients", patients.List)
		authenticated.POST("/patients", patients.Create)
		authenticated.GET("/patients/:id", patients.Get)
		authenticated.PATCH("/patients/:id", patients.Update)

		authenticated.GET("/hospitals", references.ListHospitals)
		authenticated.POST("/hospitals", references.CreateHospital)
		authenticated.PATCH("/hospitals/:id", references.UpdateHospital)

		authenticated.GET("/health-plans", references.ListHealthPlans)
		authenticated.POST("/health-plans", references.CreateHealthPlan)
		authenticated.PATCH("/health-plans/:id", references.UpdateHealthPlan)

		authenticated.GET("/procedures", references.ListProcedures)
		authenticated.POST("/procedures", references.CreateProcedure)
		authenticated.PATCH("/procedures/:code", references.UpdateProcedure)

		authenticated.GET("/suppliers", references.ListSuppliers)
		authenticated.POST("/suppliers", references.CreateSupplier)
		authenticated.PATCH("/suppliers/:id", references.UpdateSupplier)

		authenticated.GET("/collaborators", references.ListCollaborators)
		authenticated.POST("/collaborators", references.CreateCollaborator)
		authenticated.PATCH("/collaborators/:id", references.UpdateCollaborator)

		admin := authenticated.Group("/admin")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/custom-documents", customDocuments.List)
			admin.POST("/custom-documents", customDocuments.Create)
			admin.PATCH("/custom-documents/:id", customDocuments.Update)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Create server with timeouts
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", config.AppConfig.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logging.Logger.Info("starting server",
			zap.Int("port", config.AppConfig.Port),
			zap.String("environment", config.AppConfig.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	logging.Logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logging.Logger.Info("server exited gracefully")
}
