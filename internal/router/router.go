package router

import (
	"time"

	"baranggo/config"
	"baranggo/internal/domain"
	"baranggo/internal/handler"
	"baranggo/internal/middleware"
	"baranggo/internal/repository"
	"baranggo/internal/service"
	"baranggo/internal/ws"
	"baranggo/pkg/mailer"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, mail *mailer.Mailer) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	blotterRepo := repository.NewBlotterRepository(db)
	incidentRepo := repository.NewIncidentRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	otpRepo := repository.NewOTPRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	hub := ws.NewHub()

	// Services
	notifSvc := service.NewNotificationService(notificationRepo, userRepo, hub)
	authSvc := service.NewAuthService(cfg, userRepo, otpRepo, notifSvc, mail)
	requestSvc := service.NewRequestService(db, requestRepo, historyRepo, notifSvc)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc, userRepo, auditRepo, cfg)
	mfaHandler := handler.NewMFAHandler(authSvc, auditRepo)
	requestHandler := handler.NewRequestHandler(requestSvc, requestRepo, userRepo, auditRepo)
	blotterHandler := handler.NewBlotterHandler(blotterRepo, notifSvc, auditRepo)
	incidentHandler := handler.NewIncidentHandler(incidentRepo, notifSvc, auditRepo)
	userHandler := handler.NewUserHandler(userRepo, authSvc, notifSvc, auditRepo)
	notificationHandler := handler.NewNotificationHandler(notificationRepo)
	dashboardHandler := handler.NewDashboardHandler(dashboardRepo, historyRepo, auditRepo)

	authMw := middleware.AuthRequired(&cfg.JWT)
	staffMw := middleware.RequireRole(domain.StaffRoles...)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup", authHandler.Signup)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/send-otp", authHandler.SendOTP)
			authGroup.POST("/verify-otp", authHandler.VerifyOTP)
			authGroup.POST("/reset-password", authHandler.ResetPassword)
			authGroup.GET("/verify-email/:userId/:uniqueString", authHandler.VerifyEmail)
			authGroup.GET("/me", authMw, authHandler.Me)
		}

		mfa := api.Group("/mfa")
		mfa.Use(authMw)
		{
			mfa.POST("/enable", mfaHandler.Enable)
			mfa.POST("/verify", mfaHandler.Verify)
			mfa.POST("/initiate-disable", mfaHandler.InitiateDisable)
			mfa.POST("/disable", mfaHandler.Disable)
		}

		requests := api.Group("/document-requests")
		requests.Use(authMw)
		{
			requests.GET("", staffMw, requestHandler.List)
			requests.GET("/my-requests", requestHandler.MyRequests)
			requests.POST("/:type", requestHandler.Create)
			requests.PATCH("/:type/:id/status", staffMw, requestHandler.UpdateStatus)
		}

		blotter := api.Group("/blotter")
		blotter.Use(authMw)
		{
			blotter.POST("/report", blotterHandler.Create)
			blotter.GET("", blotterHandler.List)
			blotter.PUT("/:id", blotterHandler.Update)
			blotter.DELETE("/:id", blotterHandler.Delete)
		}

		incident := api.Group("/incident-report")
		incident.Use(authMw)
		{
			incident.POST("", incidentHandler.Create)
			incident.GET("", incidentHandler.List)
			incident.GET("/my-reports", incidentHandler.MyReports)
			incident.PATCH("/:id/status", staffMw, incidentHandler.UpdateStatus)
			incident.GET("/:id/evidence/:fileIndex", incidentHandler.GetEvidence)
			incident.DELETE("/:id", incidentHandler.Delete)
		}

		users := api.Group("/users")
		users.Use(authMw)
		{
			users.GET("", staffMw, userHandler.List)
			users.PATCH("/:id/verify", staffMw, userHandler.Verify)
			users.PATCH("/:id/reject", staffMw, userHandler.Reject)
			users.PATCH("/:id/deactivate", staffMw, userHandler.Deactivate)
			users.PATCH("/:id/activate", staffMw, userHandler.Activate)

			admin := users.Group("")
			admin.Use(middleware.RequireRole(domain.RoleSuperAdmin))
			{
				admin.POST("/secretary", userHandler.CreateStaff(domain.RoleSecretary))
				admin.POST("/chairman", userHandler.CreateStaff(domain.RoleChairman))
				admin.POST("/treasurer", userHandler.CreateStaff(domain.RoleTreasurer))
			}
		}

		notifications := api.Group("/notifications")
		notifications.Use(authMw)
		{
			notifications.GET("", notificationHandler.List)
			notifications.POST("/mark-read", notificationHandler.MarkRead)
			notifications.DELETE("/:id", notificationHandler.Delete)
		}

		dashboard := api.Group("/dashboard")
		dashboard.Use(authMw, staffMw)
		{
			dashboard.GET("/stats", dashboardHandler.Stats)
			dashboard.GET("/transactions", dashboardHandler.TransactionHistory)
		}

		api.GET("/treasurer/dashboard", authMw, middleware.RequireRole(domain.RoleTreasurer), dashboardHandler.TreasurerDashboard)
		api.GET("/logs", authMw, middleware.RequireRole(domain.RoleSuperAdmin), dashboardHandler.Logs)
	}

	r.GET("/api/v1/notifications/stream", ws.UpgradeNotificationWS(&cfg.JWT, hub))

	return r
}
