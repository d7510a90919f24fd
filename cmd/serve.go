package cmd

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rbxlink/roblox-user-services/api/handlers"
	"github.com/rbxlink/roblox-user-services/api/middleware"
	"github.com/rbxlink/roblox-user-services/api/services"
	"github.com/rbxlink/roblox-user-services/internal/appconfig"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// @title Roblox User Services API
// @version v1
// @description HTTP facade over the public Roblox web APIs for identity and membership lookups.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server for handling lookup requests",
	Run: func(cmd *cobra.Command, args []string) {

		// Load the config and set up logging
		setUp()

		cfg, err := appconfig.LoadConfig(configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load config")
		}

		service := services.NewService(cfg)

		// Create routes
		r := mux.NewRouter()
		api := r.PathPrefix(cfg.BasePath).Subrouter()

		// Apply the middleware to the API routes
		api.Use(middleware.WithLogger)

		roblox := service.Roblox

		// User routes
		api.HandleFunc("/users/lookup", handlers.LookupUser(roblox)).Methods(http.MethodGet)
		api.HandleFunc("/users/{user-id}/roles", handlers.GetUserRoles(roblox)).Methods(http.MethodGet)
		api.HandleFunc("/users/{user-id}/username", handlers.GetUsername(roblox)).Methods(http.MethodGet)
		api.HandleFunc("/users/{user-id}/items/{asset-type}/{item-id}", handlers.CheckOwnership(roblox)).Methods(http.MethodGet)
		api.HandleFunc("/users/{user-id}/code-check", handlers.CheckCode(roblox)).Methods(http.MethodGet)

		// Group routes
		api.HandleFunc("/groups/{group-id}/roles", handlers.GetGroupRoles(roblox)).Methods(http.MethodGet)
		api.HandleFunc("/groups/{group-id}/roles/{rank-id}", handlers.GetGroupRole(roblox)).Methods(http.MethodGet)

		log.Info().Msg(fmt.Sprintf("Server started at %s:%d", host, port))

		if err := http.ListenAndServe(fmt.Sprintf("%s:%d", host, port),
			r); err != nil {

			log.Error().Err(err).Msg("could not start server")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&host, "host", "0.0.0.0", "host to run the server on")
	serveCmd.Flags().IntVar(&port, "port", 8080, "port to run the server on")
}
