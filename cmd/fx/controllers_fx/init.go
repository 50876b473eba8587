package controllers_fx

import (
	"go.uber.org/fx"

	"foodbridge/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewMenuController),
	fx.Provide(controllers.NewRatingController),
	fx.Provide(controllers.NewPreferenceController),
	fx.Provide(controllers.NewRequestController),
	fx.Provide(controllers.NewAdminController),
	fx.Provide(controllers.NewDashboardController))
