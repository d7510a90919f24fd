package handlers

import (
	"net/http"
	"strconv"

	"github.com/rbxlink/roblox-user-services/models"
	"github.com/rs/zerolog"
)

// Roblox group ranks occupy 0..255, so an unbounded roles query spans the
// whole interval.
const maxGroupRank = 255

// @Summary Get a group role by rank
// @Description Returns the first role in the group whose rank matches, as the platform reported it.
// @Tags groups
// @Produce json
// @Param group-id path int true "Roblox group ID" example(1234567)
// @Param rank-id path int true "Rank ordinal" example(254)
// @Success 200 {object} models.Response
// @Failure 400 {object} models.Response
// @Failure 404 {object} models.Response
// @Failure 502 {object} models.Response
// @Router /groups/{group-id}/roles/{rank-id} [get]
func GetGroupRole(api RobloxAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context())

		groupID, err := pathID(r, "group-id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_group_id", "group id must be a decimal integer")
			return
		}
		rankID, err := pathID(r, "rank-id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_rank", "rank must be a decimal integer")
			return
		}

		role, err := api.GetGroupRank(r.Context(), groupID, rankID)
		if err != nil {
			logger.Error().Err(err).Int64("group_id", groupID).Int64("rank", rankID).Msg("group role lookup failed")
			writeUpstreamError(w, err)
			return
		}
		if role == nil {
			writeError(w, http.StatusNotFound, "role_not_found", "the group has no role with that rank")
			return
		}

		writeData(w, http.StatusOK, role)
	}
}

// @Summary List group roles within a rank range
// @Description Returns every role whose rank falls in [min, max], in the platform's order.
// @Tags groups
// @Produce json
// @Param group-id path int true "Roblox group ID" example(1234567)
// @Param min query int false "Minimum rank, inclusive" default(0)
// @Param max query int false "Maximum rank, inclusive" default(255)
// @Success 200 {object} models.Response
// @Failure 400 {object} models.Response
// @Failure 502 {object} models.Response
// @Router /groups/{group-id}/roles [get]
func GetGroupRoles(api RobloxAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context())

		groupID, err := pathID(r, "group-id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_group_id", "group id must be a decimal integer")
			return
		}

		minRank, err := queryRank(r, "min", 0)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_min", "min must be a decimal integer")
			return
		}
		maxRank, err := queryRank(r, "max", maxGroupRank)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_max", "max must be a decimal integer")
			return
		}

		roles, err := api.GetGroupRanks(r.Context(), groupID, minRank, maxRank)
		if err != nil {
			logger.Error().Err(err).Int64("group_id", groupID).Msg("group roles lookup failed")
			writeUpstreamError(w, err)
			return
		}

		writeData(w, http.StatusOK, models.GroupRolesResponse{Roles: roles})
	}
}

// queryRank reads an optional integer query parameter.
func queryRank(r *http.Request, key string, fallback int64) (int64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}
