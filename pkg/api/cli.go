package api

import (
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"github.com/zugtrip/zug/pkg/api/routes"
	"github.com/zugtrip/zug/pkg/database"
	"github.com/zugtrip/zug/pkg/hafas"
	"github.com/zugtrip/zug/pkg/redis_client"
	"github.com/zugtrip/zug/pkg/shorturl"
	"github.com/zugtrip/zug/pkg/util"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Provides the journey planning web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
					&cli.StringFlag{
						Name:    "journeys-options",
						Usage:   "YAML file overriding the default journey search options",
						EnvVars: []string{"ZUG_JOURNEYS_OPTIONS"},
					},
				},
				Action: func(c *cli.Context) error {
					env := util.GetEnvironmentVariables()

					client := hafas.NewClient(env["ZUG_HAFAS_ENDPOINT"])

					if err := redis_client.Connect(); errors.Is(err, redis_client.ErrNotConfigured) {
						log.Info().Msg("Redis not configured, backend lookups are not cached")
					} else if err != nil {
						return err
					} else {
						client.Cache = hafas.NewRedisCache(redis_client.Client, hafas.DefaultCacheExpiration)
					}

					var shortURLs shorturl.Store
					if err := database.Connect(); errors.Is(err, database.ErrNotConfigured) {
						log.Info().Msg("MongoDB not configured, short links are disabled")
					} else if err != nil {
						return err
					} else {
						defer database.Disconnect()
						shortURLs = shorturl.NewMongoStore(database.GetCollection(database.ShortURLsCollection))
					}

					options, err := hafas.LoadJourneysOptions(c.String("journeys-options"))
					if err != nil {
						return err
					}

					return SetupServer(c.String("listen"), routes.NewServices(client, options, shortURLs))
				},
			},
		},
	}
}
