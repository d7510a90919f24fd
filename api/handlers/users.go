package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rbxlink/roblox-user-services/models"
	"github.com/rs/zerolog"
)

// @Summary Get a user's group ranks
// @Description Returns the rank the user holds in every group they belong to, keyed by group id.
// @Tags users
// @Produce json
// @Param user-id path int true "Roblox user ID" example(261)
// @Success 200 {object} models.Response
// @Failure 400 {object} models.Response
// @Failure 502 {object} models.Response
// @Router /users/{user-id}/roles [get]
func GetUserRoles(api RobloxAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context())

		userID, err := pathID(r, "user-id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_user_id", "user id must be a decimal integer")
			return
		}

		ranks, err := api.GetUserRoles(r.Context(), userID)
		if err != nil {
			logger.Error().Err(err).Int64("user_id", userID).Msg("group roles lookup failed")
			writeUpstreamError(w, err)
			return
		}

		writeData(w, http.StatusOK, ranks)
	}
}

// @Summary Resolve a user ID to a username
// @Tags users
// @Produce json
// @Param user-id path int true "Roblox user ID" example(261)
// @Success 200 {object} models.Response
// @Failure 400 {object} models.Response
// @Failure 502 {object} models.Response
// @Router /users/{user-id}/username [get]
func GetUsername(api RobloxAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context())

		userID, err := pathID(r, "user-id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_user_id", "user id must be a decimal integer")
			return
		}

		username, err := api.GetUsernameFromID(r.Context(), userID)
		if err != nil {
			logger.Error().Err(err).Int64("user_id", userID).Msg("username lookup failed")
			writeUpstreamError(w, err)
			return
		}

		writeData(w, http.StatusOK, models.UsernameResponse{Username: username})
	}
}

// @Summary Resolve a username to a user ID
// @Description Answers 404 when no account has the given username.
// @Tags users
// @Produce json
// @Param username query string true "Username to resolve" example(builderman)
// @Success 200 {object} models.Response
// @Failure 400 {object} models.Response
// @Failure 404 {object} models.Response
// @Failure 502 {object} models.Response
// @Router /users/lookup [get]
func LookupUser(api RobloxAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context())

		username := r.URL.Query().Get("username")
		if username == "" {
			writeError(w, http.StatusBadRequest, "missing_username", "username query parameter is required")
			return
		}

		id, err := api.GetIDFromUsername(r.Context(), username)
		if err != nil {
			logger.Error().Err(err).Str("username", username).Msg("id lookup failed")
			writeUpstreamError(w, err)
			return
		}
		if id == nil {
			writeError(w, http.StatusNotFound, "user_not_found", "no account with that username")
			return
		}

		writeData(w, http.StatusOK, models.UserLookupResponse{ID: *id})
	}
}

// @Summary Check whether a user owns an inventory item
// @Tags users
// @Produce json
// @Param user-id path int true "Roblox user ID" example(261)
// @Param asset-type path string true "Asset type" example(Asset)
// @Param item-id path int true "Item ID" example(1028593)
// @Success 200 {object} models.Response
// @Failure 400 {object} models.Response
// @Failure 502 {object} models.Response
// @Router /users/{user-id}/items/{asset-type}/{item-id} [get]
func CheckOwnership(api RobloxAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context())

		userID, err := pathID(r, "user-id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_user_id", "user id must be a decimal integer")
			return
		}
		itemID, err := pathID(r, "item-id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_item_id", "item id must be a decimal integer")
			return
		}
		assetType := mux.Vars(r)["asset-type"]

		owned, err := api.HasAsset(r.Context(), userID, itemID, assetType)
		if err != nil {
			logger.Error().Err(err).Int64("user_id", userID).Int64("item_id", itemID).Msg("inventory lookup failed")
			writeUpstreamError(w, err)
			return
		}

		writeData(w, http.StatusOK, models.OwnershipResponse{Owned: owned})
	}
}

// @Summary Check a profile verification code
// @Description Reports whether the code appears verbatim in the user's public profile page.
// @Tags users
// @Produce json
// @Param user-id path int true "Roblox user ID" example(261)
// @Param code query string true "Verification code" example(ABC123)
// @Success 200 {object} models.Response
// @Failure 400 {object} models.Response
// @Failure 502 {object} models.Response
// @Router /users/{user-id}/code-check [get]
func CheckCode(api RobloxAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context())

		userID, err := pathID(r, "user-id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_user_id", "user id must be a decimal integer")
			return
		}

		code := r.URL.Query().Get("code")
		if code == "" {
			writeError(w, http.StatusBadRequest, "missing_code", "code query parameter is required")
			return
		}

		match, err := api.CheckCode(r.Context(), userID, code)
		if err != nil {
			logger.Error().Err(err).Int64("user_id", userID).Msg("code check failed")
			writeUpstreamError(w, err)
			return
		}

		writeData(w, http.StatusOK, models.CodeCheckResponse{Match: match})
	}
}
