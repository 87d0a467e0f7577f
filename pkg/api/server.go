package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/zugtrip/zug/pkg/api/routes"
)

func NewApp(services *routes.Services) *fiber.App {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	services.LocationsRouter(group)
	services.PlannerRouter(group)
	services.ShortURLRouter(group.Group("/diagram"))

	return webApp
}

func SetupServer(listen string, services *routes.Services) error {
	return NewApp(services).Listen(listen)
}
