package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	services "github.com/rbxlink/roblox-user-services/api/services"
	"github.com/rbxlink/roblox-user-services/models"
)

// RobloxAPI is the surface of the Roblox client the handlers consume,
// narrowed to an interface so tests can substitute a mock.
type RobloxAPI interface {
	GetUserRoles(ctx context.Context, userID int64) (models.RankMap, error)
	GetUsernameFromID(ctx context.Context, userID int64) (string, error)
	GetIDFromUsername(ctx context.Context, username string) (*int64, error)
	HasAsset(ctx context.Context, userID, itemID int64, assetType string) (bool, error)
	CheckCode(ctx context.Context, userID int64, code string) (bool, error)
	GetGroupRank(ctx context.Context, groupID, rankID int64) (models.GroupRole, error)
	GetGroupRanks(ctx context.Context, groupID, minRank, maxRank int64) ([]models.GroupRole, error)
}

// pathID extracts a decimal int64 path variable.
func pathID(r *http.Request, key string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[key], 10, 64)
}

// writeData writes a success envelope.
func writeData(w http.ResponseWriter, statusCode int, data any) {
	services.WriteResponse(w, statusCode, models.Response{Success: 1, Data: data})
}

// writeError writes a failure envelope.
func writeError(w http.ResponseWriter, statusCode int, code, details string) {
	services.WriteResponse(w, statusCode, models.Response{
		ErrorCode:    code,
		ErrorDetails: details,
	})
}

// writeUpstreamError maps a client error to a failure envelope. Either the
// platform was unreachable or its response was missing a required field;
// both are upstream faults, so the facade answers 502 and distinguishes
// them by error code.
func writeUpstreamError(w http.ResponseWriter, err error) {
	var missing *services.MissingFieldError
	if errors.As(err, &missing) {
		writeError(w, http.StatusBadGateway, "malformed_upstream_response", err.Error())
		return
	}
	writeError(w, http.StatusBadGateway, "roblox_unreachable", err.Error())
}
