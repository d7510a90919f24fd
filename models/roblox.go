package models

import "encoding/json"

// RankMap maps a group id to the rank a user holds within that group. Ranks
// are ordinals scoped per group; a higher value means more seniority.
type RankMap map[int64]int64

// GroupRole is a single role record as returned by the groups API. The
// platform adds fields to role records without notice, so the raw JSON is
// passed through untouched instead of being decoded into a fixed schema.
// An alias keeps json.RawMessage's verbatim marshalling behaviour.
type GroupRole = json.RawMessage

// UserLookupResponse carries a resolved account id.
type UserLookupResponse struct {
	ID int64 `json:"id"`
}

// UsernameResponse carries a resolved username.
type UsernameResponse struct {
	Username string `json:"username"`
}

// OwnershipResponse reports whether a user owns an inventory item.
type OwnershipResponse struct {
	Owned bool `json:"owned"`
}

// CodeCheckResponse reports whether a verification code was found on a
// user's profile page.
type CodeCheckResponse struct {
	Match bool `json:"match"`
}

// GroupRolesResponse wraps a list of raw role records.
type GroupRolesResponse struct {
	Roles []GroupRole `json:"roles"`
}
