package services

import (
	"net/http"
	"time"

	"github.com/rbxlink/roblox-user-services/internal/appconfig"
)

// Service contains all shared dependencies for handlers.
type Service struct {
	Config *appconfig.Config
	Roblox *RobloxClient
}

// NewService wires a RobloxClient from the loaded configuration. Transport
// timeouts live here rather than inside the client, so the host stays the
// single place deciding how long a lookup may take.
func NewService(cfg *appconfig.Config) *Service {
	httpClient := &http.Client{}
	if cfg.Roblox.Timeout > 0 {
		httpClient.Timeout = time.Duration(cfg.Roblox.Timeout) * time.Second
	}

	client := NewRobloxClient(httpClient)
	if cfg.Roblox.GroupsURL != "" {
		client.GroupsBaseURL = cfg.Roblox.GroupsURL
	}
	if cfg.Roblox.LegacyURL != "" {
		client.LegacyBaseURL = cfg.Roblox.LegacyURL
	}
	if cfg.Roblox.InventoryURL != "" {
		client.InventoryBaseURL = cfg.Roblox.InventoryURL
	}
	if cfg.Roblox.WWWURL != "" {
		client.WWWBaseURL = cfg.Roblox.WWWURL
	}

	return &Service{
		Config: cfg,
		Roblox: client,
	}
}
