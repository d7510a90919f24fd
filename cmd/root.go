/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rbxlink/roblox-user-services/api/services"
	"github.com/rbxlink/roblox-user-services/internal/appconfig"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	configPath string
	timeout    time.Duration
	host       string
	port       int
)

var rootCmd = &cobra.Command{
	Use:   "roblox-user-services",
	Short: "Roblox User Services",
	Long:  `Roblox User Services resolves identity and membership facts about Roblox accounts through the platform's public web APIs.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn",
		"sets the log level")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to a YAML config file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second,
		"per-request timeout for direct lookup commands")
}

func setUp() {
	// A local .env is optional; absence is not an error
	_ = godotenv.Load()
	setLogging(logLevel)
}

// newClient builds a RobloxClient for the direct lookup commands. With a
// config file the transport settings come from there; without one the
// production hosts and the --timeout flag apply.
func newClient() *services.RobloxClient {
	if configPath != "" {
		cfg, err := appconfig.LoadConfig(configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("could not load config")
		}
		return services.NewService(cfg).Roblox
	}
	return services.NewRobloxClient(&http.Client{Timeout: timeout})
}

func setLogging(level string) {
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}

	switch strings.ToLower(level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}
