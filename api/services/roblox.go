package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rbxlink/roblox-user-services/models"
)

// Default hosts for the public Roblox web APIs. All of them can be
// overridden on the client, which the facade config and the tests rely on.
const (
	DefaultGroupsBaseURL    = "https://groups.roblox.com"
	DefaultLegacyBaseURL    = "https://api.roblox.com"
	DefaultInventoryBaseURL = "https://inventory.roblox.com"
	DefaultWWWBaseURL       = "https://www.roblox.com"
)

// TransportError reports a failure to reach the Roblox API or to read its
// response: DNS or connection errors, a non-success HTTP status, an
// unreadable body, or undecodable JSON.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("roblox request %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// MissingFieldError reports a response that parsed as JSON but lacked a
// field the operation requires. Path points at the offending field.
type MissingFieldError struct {
	Path string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("roblox response missing field %q", e.Path)
}

// RobloxClient is a client for the public Roblox web APIs. It holds no
// state beyond the shared transport, so a single instance is safe for
// unbounded concurrent use. The client imposes no timeout policy of its
// own; configure timeouts on the *http.Client it is given.
type RobloxClient struct {
	GroupsBaseURL    string
	LegacyBaseURL    string
	InventoryBaseURL string
	WWWBaseURL       string
	HTTPClient       *http.Client
}

// NewRobloxClient creates a client against the production Roblox hosts.
// Pass nil to use the default transport.
func NewRobloxClient(httpClient *http.Client) *RobloxClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &RobloxClient{
		GroupsBaseURL:    DefaultGroupsBaseURL,
		LegacyBaseURL:    DefaultLegacyBaseURL,
		InventoryBaseURL: DefaultInventoryBaseURL,
		WWWBaseURL:       DefaultWWWBaseURL,
		HTTPClient:       httpClient,
	}
}

// GetUserRoles returns the rank the user holds in every group they belong
// to, keyed by group id. When the platform reports the same group twice the
// later entry wins. Any membership entry without an integer group id or
// rank fails the whole call: these fields are mandatory in the endpoint's
// contract and a gap means the response cannot be trusted.
func (rc *RobloxClient) GetUserRoles(ctx context.Context, userID int64) (models.RankMap, error) {
	reqURL := fmt.Sprintf("%s/v2/users/%d/groups/roles", rc.GroupsBaseURL, userID)

	respBody, err := rc.makeRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, &TransportError{URL: reqURL, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if isJSONNull(envelope.Data) {
		return nil, &MissingFieldError{Path: "data"}
	}

	var memberships []struct {
		Group struct {
			ID *int64 `json:"id"`
		} `json:"group"`
		Role struct {
			Rank *int64 `json:"rank"`
		} `json:"role"`
	}
	if err := json.Unmarshal(envelope.Data, &memberships); err != nil {
		return nil, &MissingFieldError{Path: "data"}
	}

	ranks := make(models.RankMap, len(memberships))
	for i, m := range memberships {
		if m.Group.ID == nil {
			return nil, &MissingFieldError{Path: fmt.Sprintf("data[%d].group.id", i)}
		}
		if m.Role.Rank == nil {
			return nil, &MissingFieldError{Path: fmt.Sprintf("data[%d].role.rank", i)}
		}
		ranks[*m.Group.ID] = *m.Role.Rank
	}

	return ranks, nil
}

// GetUsernameFromID resolves an account id to its current username.
func (rc *RobloxClient) GetUsernameFromID(ctx context.Context, userID int64) (string, error) {
	reqURL := fmt.Sprintf("%s/users/%d", rc.LegacyBaseURL, userID)

	respBody, err := rc.makeRequest(ctx, reqURL)
	if err != nil {
		return "", err
	}

	var profile struct {
		Username json.RawMessage `json:"Username"`
	}
	if err := json.Unmarshal(respBody, &profile); err != nil {
		return "", &TransportError{URL: reqURL, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if isJSONNull(profile.Username) {
		return "", &MissingFieldError{Path: "Username"}
	}

	var username string
	if err := json.Unmarshal(profile.Username, &username); err != nil {
		return "", &MissingFieldError{Path: "Username"}
	}

	return username, nil
}

// GetIDFromUsername resolves a username to its account id. A nil id with a
// nil error means no such user: the lookup endpoint signals an unknown
// username by omitting the Id field rather than with an error status.
func (rc *RobloxClient) GetIDFromUsername(ctx context.Context, username string) (*int64, error) {
	reqURL := fmt.Sprintf("%s/users/get-by-username?username=%s", rc.LegacyBaseURL, url.QueryEscape(username))

	respBody, err := rc.makeRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var lookup struct {
		ID json.RawMessage `json:"Id"`
	}
	if err := json.Unmarshal(respBody, &lookup); err != nil {
		return nil, &TransportError{URL: reqURL, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if isJSONNull(lookup.ID) {
		return nil, nil
	}

	var id int64
	if err := json.Unmarshal(lookup.ID, &id); err != nil {
		// A non-numeric Id is the same "no such user" signal as an
		// absent one.
		return nil, nil
	}

	return &id, nil
}

// HasAsset reports whether the user owns at least one copy of the given
// inventory item. The endpoint omits the data array entirely when the user
// owns nothing matching, so an absent array means false, not an error.
func (rc *RobloxClient) HasAsset(ctx context.Context, userID, itemID int64, assetType string) (bool, error) {
	reqURL := fmt.Sprintf("%s/v1/users/%d/items/%s/%d", rc.InventoryBaseURL, userID, url.PathEscape(assetType), itemID)

	respBody, err := rc.makeRequest(ctx, reqURL)
	if err != nil {
		return false, err
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return false, &TransportError{URL: reqURL, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if isJSONNull(envelope.Data) {
		return false, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(envelope.Data, &items); err != nil {
		return false, nil
	}

	return len(items) > 0, nil
}

// CheckCode reports whether code appears verbatim in the user's public
// profile page. Verification flows ask the user to paste a generated code
// into their profile blurb; the page is scanned as plain text, so the match
// is case sensitive and no JSON parsing is attempted.
func (rc *RobloxClient) CheckCode(ctx context.Context, userID int64, code string) (bool, error) {
	reqURL := fmt.Sprintf("%s/users/%d/profile", rc.WWWBaseURL, userID)

	respBody, err := rc.makeRequest(ctx, reqURL)
	if err != nil {
		return false, err
	}

	return strings.Contains(string(respBody), code), nil
}

// GetGroupRank returns the first role in the group whose rank equals
// rankID, in the order the platform lists them, or nil when the group has
// no such role. A role whose rank field is missing or unreadable compares
// as rank 0.
func (rc *RobloxClient) GetGroupRank(ctx context.Context, groupID, rankID int64) (models.GroupRole, error) {
	roles, err := rc.groupRoles(ctx, groupID)
	if err != nil {
		return nil, err
	}

	for _, role := range roles {
		var probe struct {
			Rank int64 `json:"rank"`
		}
		// An unreadable rank falls back to the zero value on purpose.
		_ = json.Unmarshal(role, &probe)
		if probe.Rank == rankID {
			return role, nil
		}
	}

	return nil, nil
}

// GetGroupRanks returns every role in the group whose rank falls within the
// closed interval [minRank, maxRank], preserving the platform's ordering.
// Unlike GetGroupRank, a role without an integer rank is a hard error here.
func (rc *RobloxClient) GetGroupRanks(ctx context.Context, groupID, minRank, maxRank int64) ([]models.GroupRole, error) {
	roles, err := rc.groupRoles(ctx, groupID)
	if err != nil {
		return nil, err
	}

	matched := []models.GroupRole{}
	for i, role := range roles {
		var probe struct {
			Rank *int64 `json:"rank"`
		}
		if err := json.Unmarshal(role, &probe); err != nil || probe.Rank == nil {
			return nil, &MissingFieldError{Path: fmt.Sprintf("roles[%d].rank", i)}
		}
		if *probe.Rank >= minRank && *probe.Rank <= maxRank {
			matched = append(matched, role)
		}
	}

	return matched, nil
}

// Fetches the role list for a group. The records are kept as raw JSON so
// unrecognized fields survive the round trip. A missing or non-array roles
// field yields a nil slice, which callers treat as an empty group.
func (rc *RobloxClient) groupRoles(ctx context.Context, groupID int64) ([]models.GroupRole, error) {
	reqURL := fmt.Sprintf("%s/v1/groups/%d/roles", rc.GroupsBaseURL, groupID)

	respBody, err := rc.makeRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Roles json.RawMessage `json:"roles"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, &TransportError{URL: reqURL, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if isJSONNull(envelope.Roles) {
		return nil, nil
	}

	var roles []models.GroupRole
	if err := json.Unmarshal(envelope.Roles, &roles); err != nil {
		return nil, nil
	}

	return roles, nil
}

// Helper function for making GET requests to the Roblox APIs.
func (rc *RobloxClient) makeRequest(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &TransportError{URL: reqURL, Err: fmt.Errorf("failed to create request: %w", err)}
	}

	resp, err := rc.HTTPClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: reqURL, Err: fmt.Errorf("failed to make request: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: reqURL, Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode >= 400 {
		return nil, &TransportError{URL: reqURL, Err: fmt.Errorf("error response: status %d, body: %s", resp.StatusCode, string(respBody))}
	}

	return respBody, nil
}

// isJSONNull reports whether raw is absent or the JSON null literal, the
// two shapes field probing treats as "not there".
func isJSONNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
