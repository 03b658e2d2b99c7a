package internal

import (
	"net/http"

	"babydbg/internal/controllers"
	"babydbg/internal/providers"
	"babydbg/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/plan", http.HandlerFunc(apiController.GetPlan))
	routers.Post("/plan/nap", http.HandlerFunc(apiController.SaveNap))
	routers.Get("/babies", http.HandlerFunc(apiController.GetBabies))
	routers.Any("/", http.HandlerFunc(apiController.Gateway))
	return routers
}
