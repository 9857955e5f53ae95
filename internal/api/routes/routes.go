package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/healthsync/healthsync/internal/api/handlers"
)

type Deps struct {
	Medical  *handlers.MedicalHandler
	Diet     *handlers.DietHandler
	Report   *handlers.ReportHandler
	Steps    *handlers.StepsHandler
	Exercise *handlers.ExerciseHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Welcome to AI Healthcare Platform API",
			"services": []string{
				"compounder - Analyze medical reports",
				"gymtrainer - Exercise tracking and guidance",
				"doctor - Medical consultations and advice",
				"dietician - Diet plans and lifestyle recommendations",
				"steps - Track step count from Google Fit",
			},
		})
	})

	// OAuth popup callback, kept at the root path the redirect URI points at.
	r.GET("/auth/callback", d.Steps.AuthCallback)

	api := r.Group("/api")

	doctor := api.Group("/doctor")
	doctor.POST("/query", d.Medical.Query)
	doctor.GET("/doctors", d.Medical.Doctors)
	doctor.GET("/user-queries/:user_id", d.Medical.UserQueries)

	dietician := api.Group("/dietician")
	dietician.POST("/diet-plan", d.Diet.DietPlan)
	dietician.POST("/health-predictions", d.Diet.HealthPredictions)

	compounder := api.Group("/compounder")
	compounder.POST("/analyze-report", d.Report.AnalyzeReport)

	steps := api.Group("/steps")
	steps.POST("/get-steps", d.Steps.GetSteps)
	steps.POST("/save-steps", d.Steps.SaveSteps)
	steps.GET("/summary/:user_id", d.Steps.Summary)
	steps.POST("/exchange-token", d.Steps.ExchangeToken)
	steps.GET("/auth/callback", d.Steps.AuthCallback)

	gymtrainer := api.Group("/gymtrainer")
	gymtrainer.POST("/record", d.Exercise.Record)
	gymtrainer.GET("/history/:user_id", d.Exercise.History)
}
