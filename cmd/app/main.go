package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"pawly/cmd/fx/account_fx"
	"pawly/cmd/fx/ai_fx"
	"pawly/cmd/fx/clinic_fx"
	"pawly/cmd/fx/controllers_fx"
	"pawly/cmd/fx/db_fx"
	"pawly/cmd/fx/mail_fx"
	"pawly/cmd/fx/pet_fx"
	"pawly/cmd/fx/plan_fx"
	"pawly/internal/api/controllers"
	"pawly/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	app := fx.New(
		db_fx.Module,
		mail_fx.Module,
		account_fx.Module,
		pet_fx.Module,
		clinic_fx.Module,
		plan_fx.Module,
		ai_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server on :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	petController *controllers.PetController,
	clinicController *controllers.ClinicController,
	adminController *controllers.AdminController,
	aiController *controllers.AIController,
	planController *controllers.PlanController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, accountController, petController, clinicController, adminController, aiController, planController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	petController *controllers.PetController,
	clinicController *controllers.ClinicController,
	adminController *controllers.AdminController,
	aiController *controllers.AIController,
	planController *controllers.PlanController) {

	accountGroup := r.Group("/accounts")
	accountGroup.POST("/register", accountController.Register)
	accountGroup.POST("/login", accountController.Login)
	accountGroup.POST("/forgot-password", accountController.ForgotPassword)
	accountGroup.POST("/reset-password", accountController.ResetPassword)
	accountGroup.POST("/deletion", middleware.JWTAuthMiddleware(), accountController.RequestDeletion)
	accountGroup.DELETE("/deletion", middleware.JWTAuthMiddleware(), accountController.CancelDeletion)

	petGroup := r.Group("/pets", middleware.JWTAuthMiddleware())
	petGroup.POST("", petController.CreatePet)
	petGroup.GET("", petController.ListPets)
	petGroup.GET("/:id", petController.GetPetById)
	petGroup.PUT("/:id", petController.UpdatePet)
	petGroup.DELETE("/:id", petController.DeletePet)

	clinicGroup := r.Group("/clinics")
	clinicGroup.POST("/register", clinicController.Register)
	clinicGroup.POST("/confirm-email", clinicController.ConfirmEmail)
	clinicGroup.POST("/resend-confirmation", clinicController.ResendConfirmation)
	clinicGroup.GET("", clinicController.ListClinics)
	clinicGroup.GET("/search", clinicController.SearchClinics)
	clinicGroup.GET("/:id", clinicController.GetClinicById)
	r.GET("/referral/:code", clinicController.ResolveReferral)

	planGroup := r.Group("/plans")
	planGroup.GET("", planController.GetPlans)
	planGroup.GET("/:id", planController.GetPlanById)

	aiGroup := r.Group("/ai", middleware.JWTAuthMiddleware())
	aiGroup.POST("/meal-plan", aiController.GenerateMealPlan)
	aiGroup.POST("/health-report", aiController.GenerateHealthReport)
	aiGroup.GET("/recommendations", aiController.ListRecommendations)
	aiGroup.GET("/quota", aiController.QuotaStatus)

	adminGroup := r.Group("/admin", middleware.JWTAuthMiddleware(), middleware.RoleMiddleware("admin"))
	adminGroup.PUT("/clinics/:id/approval", adminController.SetApproval)
	adminGroup.GET("/clinics", adminController.ListAllClinics)
	adminGroup.GET("/accounts", accountController.GetAllAccounts)
	adminGroup.POST("/deletions/purge", adminController.PurgeDeletions)
}
