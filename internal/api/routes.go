package api

import (
	"net/http"

	"skillmatrix/training-app/internal/domain"
	"skillmatrix/training-app/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires all HTTP endpoints. The route layout mirrors the flat
// /api prefix the frontend expects.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	userService service.UserService,
	catalogService service.CatalogService,
	mappingService service.MappingService,
	masterService service.MasterService,
	planService service.PlanService,
) {
	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService)
	categoryHandler := NewCategoryHandler(catalogService)
	mappingHandler := NewMappingHandler(mappingService)
	masterHandler := NewMasterHandler(masterService)
	planHandler := NewPlanHandler(planService, userService)

	authMiddleware := AuthMiddleware(jwtSecret)
	adminOnly := RoleMiddleware(domain.RoleAdmin)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := router.Group("/api")
	{
		// --- Public ---
		api.POST("/login", authHandler.Login)

		// --- Any authenticated user ---
		authed := api.Group("")
		authed.Use(authMiddleware)
		{
			authed.GET("/all-users", userHandler.GetAllUsers)
			authed.GET("/me", userHandler.Me)
			authed.PUT("/change-password", authHandler.ChangePassword)
			authed.POST("/upload-image", userHandler.RequestImageUpload)
			authed.POST("/upload-image/confirm", userHandler.ConfirmImageUpload)

			authed.GET("/trainee-plan-getall", planHandler.GetAllPlans)
			authed.GET("/trainee-plan/me", planHandler.GetMyPlan)
		}

		// --- Admin only ---
		admin := api.Group("")
		admin.Use(authMiddleware, adminOnly)
		{
			admin.POST("/register", authHandler.Register)
			admin.GET("/all-trainee", userHandler.GetAllTrainees)

			admin.GET("/categories", categoryHandler.GetCategories)
			admin.POST("/categories/add-skill", categoryHandler.AddSkill)
			admin.POST("/categories/addallskill", categoryHandler.BulkAddCategories)
			admin.POST("/categories/edit-skill", categoryHandler.EditSkill)
			admin.POST("/categories/edit-course-duration", categoryHandler.EditCourseDuration)
			admin.POST("/categories/delete-skill", categoryHandler.ToggleSkillDeleted)
			admin.POST("/categories/delete-category", categoryHandler.ToggleCategoryDeleted)
			admin.POST("/categories/edit-category-name", categoryHandler.EditCategoryName)

			admin.GET("/experience-genus", mappingHandler.GetMappings)
			admin.POST("/experience-genus/add", mappingHandler.AddMapping)
			admin.POST("/experience-genus/addmultiple", mappingHandler.BulkAddMappings)
			admin.PUT("/experience-genus/edit-genus", mappingHandler.EditGenus)
			admin.PUT("/experience-genus/edit-experience", mappingHandler.EditExperience)
			admin.DELETE("/experience-genus/delete", mappingHandler.DeleteMapping)

			admin.GET("/getAllMasterData", masterHandler.GetAllEntries)
			admin.POST("/add-masterData", masterHandler.AddEntry)
			admin.POST("/add-allmasterData", masterHandler.AddEntries)
			admin.POST("/update-skill", masterHandler.UpdateSkill)
			admin.DELETE("/delete-all", masterHandler.DeleteAll)
			admin.POST("/get-by-genus", masterHandler.GetByGenus)

			admin.POST("/create-trainee-plan-detail", planHandler.CreatePlan)
			admin.PUT("/update-trainee-plan", planHandler.UpdatePlan)
		}
	}
}
