package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestClient(server *httptest.Server) *RobloxClient {
	client := NewRobloxClient(server.Client())
	client.GroupsBaseURL = server.URL
	client.LegacyBaseURL = server.URL
	client.InventoryBaseURL = server.URL
	client.WWWBaseURL = server.URL
	return client
}

func TestGetUserRoles(t *testing.T) {
	mockResponse := `{"data": [
		{"group": {"id": 10, "name": "First"}, "role": {"rank": 200}},
		{"group": {"id": 20}, "role": {"rank": 1}}
	]}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/users/261/groups/roles", r.URL.Path)
		_, _ = w.Write([]byte(mockResponse))
	}))
	defer server.Close()

	ranks, err := newTestClient(server).GetUserRoles(context.Background(), 261)
	assert.NoError(t, err)
	assert.Len(t, ranks, 2)
	assert.Equal(t, int64(200), ranks[10])
	assert.Equal(t, int64(1), ranks[20])
}

func TestGetUserRoles_DuplicateGroupLastWins(t *testing.T) {
	mockResponse := `{"data": [
		{"group": {"id": 10}, "role": {"rank": 1}},
		{"group": {"id": 10}, "role": {"rank": 255}}
	]}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(mockResponse))
	}))
	defer server.Close()

	ranks, err := newTestClient(server).GetUserRoles(context.Background(), 261)
	assert.NoError(t, err)
	assert.Len(t, ranks, 1)
	assert.Equal(t, int64(255), ranks[10])
}

func TestGetUserRoles_MissingData(t *testing.T) {
	cases := map[string]string{
		"no data key":    `{"errors": []}`,
		"data null":      `{"data": null}`,
		"data not array": `{"data": {"group": 1}}`,
	}
	for name, mockResponse := range cases {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(mockResponse))
			}))
			defer server.Close()

			_, err := newTestClient(server).GetUserRoles(context.Background(), 261)
			var missing *MissingFieldError
			assert.ErrorAs(t, err, &missing)
			assert.Equal(t, "data", missing.Path)
		})
	}
}

func TestGetUserRoles_EntryWithoutGroupID(t *testing.T) {
	mockResponse := `{"data": [{"group": {"name": "First"}, "role": {"rank": 200}}]}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(mockResponse))
	}))
	defer server.Close()

	_, err := newTestClient(server).GetUserRoles(context.Background(), 261)
	var missing *MissingFieldError
	assert.ErrorAs(t, err, &missing)
	assert.Equal(t, "data[0].group.id", missing.Path)
}

func TestGetUserRoles_EntryWithoutRank(t *testing.T) {
	mockResponse := `{"data": [
		{"group": {"id": 10}, "role": {"rank": 200}},
		{"group": {"id": 20}, "role": {"name": "Member"}}
	]}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(mockResponse))
	}))
	defer server.Close()

	_, err := newTestClient(server).GetUserRoles(context.Background(), 261)
	var missing *MissingFieldError
	assert.ErrorAs(t, err, &missing)
	assert.Equal(t, "data[1].role.rank", missing.Path)
}

func TestGetUsernameFromID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/261", r.URL.Path)
		_, _ = w.Write([]byte(`{"Id": 261, "Username": "builderman"}`))
	}))
	defer server.Close()

	username, err := newTestClient(server).GetUsernameFromID(context.Background(), 261)
	assert.NoError(t, err)
	assert.Equal(t, "builderman", username)
}

func TestGetUsernameFromID_Missing(t *testing.T) {
	cases := map[string]string{
		"absent":       `{"Id": 261}`,
		"not a string": `{"Username": 42}`,
	}
	for name, mockResponse := range cases {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(mockResponse))
			}))
			defer server.Close()

			_, err := newTestClient(server).GetUsernameFromID(context.Background(), 261)
			var missing *MissingFieldError
			assert.ErrorAs(t, err, &missing)
			assert.Equal(t, "Username", missing.Path)
		})
	}
}

func TestGetIDFromUsername(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/get-by-username", r.URL.Path)
		assert.Equal(t, "builderman", r.URL.Query().Get("username"))
		_, _ = w.Write([]byte(`{"Id": 261, "Username": "builderman"}`))
	}))
	defer server.Close()

	id, err := newTestClient(server).GetIDFromUsername(context.Background(), "builderman")
	assert.NoError(t, err)
	if assert.NotNil(t, id) {
		assert.Equal(t, int64(261), *id)
	}
}

func TestGetIDFromUsername_EscapesUsername(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "a user&b=c", r.URL.Query().Get("username"))
		_, _ = w.Write([]byte(`{"Id": 5}`))
	}))
	defer server.Close()

	id, err := newTestClient(server).GetIDFromUsername(context.Background(), "a user&b=c")
	assert.NoError(t, err)
	assert.NotNil(t, id)
}

func TestGetIDFromUsername_NotFound(t *testing.T) {
	cases := map[string]string{
		"absent":      `{"success": false, "errorMessage": "User not found"}`,
		"null":        `{"Id": null}`,
		"not numeric": `{"Id": "oops"}`,
	}
	for name, mockResponse := range cases {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(mockResponse))
			}))
			defer server.Close()

			id, err := newTestClient(server).GetIDFromUsername(context.Background(), "nobody")
			assert.NoError(t, err)
			assert.Nil(t, id)
		})
	}
}

func TestHasAsset(t *testing.T) {
	cases := []struct {
		name         string
		mockResponse string
		owned        bool
	}{
		{"data absent", `{}`, false},
		{"data empty", `{"data": []}`, false},
		{"data populated", `{"data": [{"id": 1028593}]}`, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v1/users/261/items/Asset/1028593", r.URL.Path)
				_, _ = w.Write([]byte(tc.mockResponse))
			}))
			defer server.Close()

			owned, err := newTestClient(server).HasAsset(context.Background(), 261, 1028593, "Asset")
			assert.NoError(t, err)
			assert.Equal(t, tc.owned, owned)
		})
	}
}

func TestCheckCode(t *testing.T) {
	profilePage := `<html><body><p class="blurb">verifying with ABC123 today</p></body></html>`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/261/profile", r.URL.Path)
		_, _ = w.Write([]byte(profilePage))
	}))
	defer server.Close()

	client := newTestClient(server)

	match, err := client.CheckCode(context.Background(), 261, "ABC123")
	assert.NoError(t, err)
	assert.True(t, match)

	// The scan is case sensitive plain text
	match, err = client.CheckCode(context.Background(), 261, "abc123")
	assert.NoError(t, err)
	assert.False(t, match)
}

func TestGetGroupRank_FirstMatchWins(t *testing.T) {
	mockResponse := `{"roles": [{"rank":1},{"rank":5,"id":"x"},{"rank":5,"id":"y"}]}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/groups/7/roles", r.URL.Path)
		_, _ = w.Write([]byte(mockResponse))
	}))
	defer server.Close()

	role, err := newTestClient(server).GetGroupRank(context.Background(), 7, 5)
	assert.NoError(t, err)
	// Byte-for-byte pass-through of the first matching record
	assert.Equal(t, `{"rank":5,"id":"x"}`, string(role))
}

func TestGetGroupRank_MissingRankComparesAsZero(t *testing.T) {
	mockResponse := `{"roles": [{"name":"Guest"},{"rank":255,"name":"Owner"}]}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(mockResponse))
	}))
	defer server.Close()

	role, err := newTestClient(server).GetGroupRank(context.Background(), 7, 0)
	assert.NoError(t, err)
	assert.Equal(t, `{"name":"Guest"}`, string(role))
}

func TestGetGroupRank_NoMatch(t *testing.T) {
	cases := map[string]string{
		"roles absent": `{}`,
		"no match":     `{"roles": [{"rank":1},{"rank":2}]}`,
	}
	for name, mockResponse := range cases {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(mockResponse))
			}))
			defer server.Close()

			role, err := newTestClient(server).GetGroupRank(context.Background(), 7, 100)
			assert.NoError(t, err)
			assert.Nil(t, role)
		})
	}
}

func TestGetGroupRanks_FiltersAndPreservesOrder(t *testing.T) {
	mockResponse := `{"roles": [{"rank":1},{"rank":2},{"rank":3},{"rank":5}]}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(mockResponse))
	}))
	defer server.Close()

	roles, err := newTestClient(server).GetGroupRanks(context.Background(), 7, 2, 4)
	assert.NoError(t, err)
	assert.Len(t, roles, 2)
	assert.Equal(t, `{"rank":2}`, string(roles[0]))
	assert.Equal(t, `{"rank":3}`, string(roles[1]))
}

func TestGetGroupRanks_EmptyResult(t *testing.T) {
	cases := map[string]string{
		"roles absent":     `{}`,
		"nothing in range": `{"roles": [{"rank":1},{"rank":200}]}`,
	}
	for name, mockResponse := range cases {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(mockResponse))
			}))
			defer server.Close()

			roles, err := newTestClient(server).GetGroupRanks(context.Background(), 7, 50, 100)
			assert.NoError(t, err)
			assert.NotNil(t, roles)
			assert.Empty(t, roles)
		})
	}
}

func TestGetGroupRanks_MissingRankIsError(t *testing.T) {
	mockResponse := `{"roles": [{"rank":1},{"name":"Member"}]}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(mockResponse))
	}))
	defer server.Close()

	_, err := newTestClient(server).GetGroupRanks(context.Background(), 7, 0, 255)
	var missing *MissingFieldError
	assert.ErrorAs(t, err, &missing)
	assert.Equal(t, "roles[1].rank", missing.Path)
}

func TestErrorStatusIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestClient(server).GetUsernameFromID(context.Background(), 261)
	var transport *TransportError
	assert.ErrorAs(t, err, &transport)
}

func TestInvalidJSONIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer server.Close()

	_, err := newTestClient(server).GetUserRoles(context.Background(), 261)
	var transport *TransportError
	assert.ErrorAs(t, err, &transport)
	assert.Error(t, transport.Unwrap())
}

func TestCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(server).GetUserRoles(ctx, 261)
	var transport *TransportError
	assert.ErrorAs(t, err, &transport)
	assert.ErrorIs(t, err, context.Canceled)
}
