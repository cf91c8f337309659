package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dugout/coaching-app/internal/domain"
	"github.com/dugout/coaching-app/internal/service"
)

// SetupRoutes wires every handler onto the router. Handlers stay thin: they
// bind, call one service method, and map the error.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	templateService service.TemplateService,
	coachService service.CoachService,
	playerService service.PlayerService,
) {
	authHandler := NewAuthHandler(authService)
	coachHandler := NewCoachHandler(templateService, coachService)
	playerHandler := NewPlayerHandler(playerService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiV1 := router.Group("/api/v1")

	authGroup := apiV1.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)

	protected.GET("/me", func(c *gin.Context) {
		userID, err := getUserObjectIDFromContext(c)
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
			return
		}
		role, _ := c.Get(ContextUserRoleKey)
		c.JSON(http.StatusOK, gin.H{"userId": userID.Hex(), "role": role})
	})

	// --- Coach routes ---
	coach := protected.Group("/coach")
	coach.Use(RoleMiddleware(domain.RoleCoach))
	{
		// Templates
		coach.POST("/templates", coachHandler.CreateTemplate)
		coach.GET("/templates", coachHandler.ListTemplates)
		coach.GET("/templates/:templateId", coachHandler.GetTemplate)
		coach.PUT("/templates/:templateId", coachHandler.UpdateTemplate)
		coach.DELETE("/templates/:templateId", coachHandler.DeleteTemplate)

		// Weeks and days
		coach.PUT("/templates/:templateId/weeks/:weekIndex", coachHandler.UpsertTemplateWeek)
		coach.GET("/templates/:templateId/weeks/:weekIndex", coachHandler.GetTemplateWeekPlan)
		coach.PUT("/templates/:templateId/weeks/:weekIndex/days/:dayIndex", coachHandler.SetTemplateDay)
		coach.POST("/templates/:templateId/weeks/:weekIndex/days/:dayIndex/assignments", coachHandler.AddDayAssignment)
		coach.PUT("/assignments/:assignmentId", coachHandler.UpdateDayAssignment)
		coach.DELETE("/assignments/:assignmentId", coachHandler.DeleteDayAssignment)

		// Focus library
		coach.POST("/focuses", coachHandler.CreateFocus)
		coach.GET("/focuses", coachHandler.ListFocuses)
		coach.PUT("/focuses/:focusId", coachHandler.UpdateFocus)
		coach.DELETE("/focuses/:focusId", coachHandler.DeleteFocus)

		// Drill library
		coach.POST("/drills", coachHandler.CreateDrill)
		coach.GET("/drills", coachHandler.ListDrills)
		coach.GET("/drills/:drillId", coachHandler.GetDrill)
		coach.PUT("/drills/:drillId", coachHandler.UpdateDrill)
		coach.DELETE("/drills/:drillId", coachHandler.DeleteDrill)

		// Roster
		coach.POST("/players", coachHandler.AddPlayer)
		coach.GET("/players", coachHandler.ListPlayers)

		// Enrollments and overrides
		coach.POST("/enrollments", coachHandler.EnrollPlayer)
		coach.GET("/enrollments", coachHandler.ListEnrollments)
		coach.PATCH("/enrollments/:enrollmentId/status", coachHandler.SetEnrollmentStatus)
		coach.PUT("/enrollments/:enrollmentId/weeks/:weekIndex/override", coachHandler.UpsertWeekOverride)
		coach.PUT("/enrollments/:enrollmentId/weeks/:weekIndex/days/:dayIndex/override", coachHandler.UpsertDayOverride)
		coach.DELETE("/enrollments/:enrollmentId/weeks/:weekIndex/days/:dayIndex/override", coachHandler.DeleteDayOverride)
		coach.GET("/enrollments/:enrollmentId/weeks/:weekIndex/days/:dayIndex", coachHandler.GetPlayerDay)

		// Review queue
		coach.POST("/submissions/:submissionId/review", coachHandler.ReviewSubmission)
		coach.GET("/review-queue", coachHandler.GetReviewQueue)
	}

	// --- Player routes ---
	player := protected.Group("/player")
	player.Use(RoleMiddleware(domain.RolePlayer))
	{
		player.GET("/enrollments", playerHandler.ListEnrollments)
		player.GET("/enrollments/:enrollmentId/today", playerHandler.GetTodayPlan)
		player.GET("/enrollments/:enrollmentId/weeks/:weekIndex", playerHandler.GetWeekPlan)
		player.GET("/enrollments/:enrollmentId/weeks/:weekIndex/days/:dayIndex", playerHandler.GetDayPlan)
		player.POST("/enrollments/:enrollmentId/completions", playerHandler.MarkComplete)
		player.POST("/enrollments/:enrollmentId/submissions", playerHandler.CreateSubmission)
		player.GET("/enrollments/:enrollmentId/submissions", playerHandler.ListSubmissions)
		player.POST("/uploads", playerHandler.RequestUploadURL)
	}
}
