package main

import (
	"github.com/gin-gonic/gin"
	"neemba.com/sepkpi/config"
	"neemba.com/sepkpi/models"
	"neemba.com/sepkpi/store"
	"neemba.com/sepkpi/web/handlers"
	"neemba.com/sepkpi/web/middlewares"
)

func main() {
	log := config.GetLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := config.ConnectDatabase()
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Pointage{},
		&models.InspectionRecord{},
		&models.LLTIRecord{},
		&models.LeanAction{},
		&models.MeetingSummary{},
	); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	cache := &store.Snapshot{}
	if err := cache.Warm(db); err != nil {
		log.Warnf("failed to warm snapshot cache: %v", err)
	}

	h := handlers.New(db, cache, cfg)

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middlewares.EmailAuth(cfg))

	r.GET("/health", h.Health)

	uploads := r.Group("/kpi")
	uploads.Use(middlewares.RequireAdmin(), middlewares.RequireUploadPassword(cfg))
	{
		uploads.POST("/productivite/upload", h.UploadTimesheet)
		uploads.POST("/inspection/upload", h.UploadInspection)
		uploads.POST("/llti/upload", h.UploadLLTI)
	}

	inspection := r.Group("/kpi/inspection")
	{
		inspection.GET("/analytics", h.InspectionAnalytics)
		inspection.GET("/snapshot", h.InspectionSnapshot)
		inspection.GET("/quarters", h.InspectionQuarters)
		inspection.GET("/teams", h.InspectionTeams)
		inspection.GET("/history", h.InspectionHistory)
	}

	llti := r.Group("/kpi/llti")
	{
		llti.GET("/analytics", h.LLTIAnalytics)
		llti.GET("/snapshot", h.LLTISnapshot)
	}

	productivity := r.Group("/api/productivity")
	{
		productivity.GET("/daily", h.ProductivityDaily)
		productivity.GET("/team", h.ProductivityTeam)
		productivity.GET("/teams", h.ProductivityTeams)
		productivity.GET("/employees", h.ProductivityEmployees)
		productivity.GET("/employee-history", h.ProductivityEmployeeHistory)
		productivity.GET("/exhaustivity/summary", h.ExhaustivitySummary)
		productivity.GET("/exhaustivity/anomalies", h.ExhaustivityAnomalies)
		productivity.GET("/exhaustivity/missing-days", h.ExhaustivityMissingDays)
		productivity.GET("/exhaustivity/grid", h.ExhaustivityGrid)
	}

	actions := r.Group("/api/lean-actions")
	{
		actions.GET("", h.ListLeanActions)
		admin := actions.Group("")
		admin.Use(middlewares.RequireAdmin())
		{
			admin.POST("", h.CreateLeanAction)
			admin.PUT("/:id", h.UpdateLeanAction)
			admin.DELETE("/:id", h.DeleteLeanAction)
		}
	}

	summaries := r.Group("/api/meeting-summary")
	{
		summaries.POST("/generate", middlewares.RequireAdmin(), h.GenerateMeetingSummary)
		summaries.GET("/list", h.ListMeetingSummaries)
		summaries.GET("/:id", h.GetMeetingSummary)
		summaries.GET("/:id/html", h.GetMeetingSummaryHTML)
	}

	log.WithField("port", cfg.Port).Info("starting server")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
