package app

import (
	"quest_nos_backend/internal/config"
	"quest_nos_backend/internal/middleware"
	"quest_nos_backend/internal/model"
	"quest_nos_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)
	a.registerAdminRoutes(router, c, cfg)
}

// registerPublicRoutes wires the candidate-facing flow. The questionnaire and
// presentation steps sit behind white-label feature gates.
func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.GET("/branding", c.branding.Current)
		public.POST("/auth/login", c.auth.Login)

		questionnaire := public.Group("/")
		questionnaire.Use(middleware.FeatureMiddleware(a.featureSet, model.FeatureQuestionnaire))
		{
			questionnaire.POST("/candidates", c.candidate.Upsert)
			questionnaire.POST("/assessments/submit", c.assessment.Submit)
		}

		presentation := public.Group("/")
		presentation.Use(middleware.FeatureMiddleware(a.featureSet, model.FeaturePersonalPresentation))
		{
			presentation.POST("/candidates/:id/presentation", c.candidate.SavePresentation)
		}
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/me", c.auth.Me)

		admin.GET("/candidates", c.report.CandidateSummaries)
		admin.GET("/candidates/:id", c.candidate.Get)
		admin.GET("/candidates/:id/assessments", c.assessment.ByCandidate)

		admin.GET("/assessments/:id/answers", c.assessment.Answers)

		reports := admin.Group("/reports")
		{
			reports.GET("/candidates", c.report.CandidateSummaries)
			reports.GET("/subjects", c.report.SubjectPerformance)
			reports.GET("/stats", c.report.SystemStats)
			reports.GET("/assessments/:id", c.report.DetailedReport)
		}

		// Destructive and white-label operations stay with super_admin.
		super := admin.Group("/")
		super.Use(middleware.RoleMiddleware(model.SuperAdmin))
		{
			super.DELETE("/candidates/:id", c.candidate.Delete)
			super.POST("/branding", c.branding.Save)
			super.POST("/branding/assets", c.branding.UploadAsset)
		}
	}
}
