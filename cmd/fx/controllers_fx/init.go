package controllers_fx

import (
	"go.uber.org/fx"

	"pawly/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewPetController),
	fx.Provide(controllers.NewClinicController),
	fx.Provide(controllers.NewAdminController),
	fx.Provide(controllers.NewAIController),
	fx.Provide(controllers.NewPlanController))
