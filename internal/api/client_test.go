package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticketly-gateway/internal/api"
	"ticketly-gateway/internal/auth"
)

func TestListEventsDecodesBareArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/events", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"e1","title":"Jazz Night"},{"id":"e2","title":"Tech Summit"}]`))
	}))
	defer server.Close()

	client := api.NewClient(server.URL, server.Client(), nil, nil)
	events, err := client.ListEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "e1", events[0].ID)
	assert.Equal(t, "Tech Summit", events[1].Title)
}

func TestListEventsDecodesItemsEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[{"id":"e1","title":"Jazz Night"}],"total":1}`))
	}))
	defer server.Close()

	client := api.NewClient(server.URL, server.Client(), nil, nil)
	events, err := client.ListEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Jazz Night", events[0].Title)
}

func TestErrorMessageFromBody(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"error field preferred", http.StatusConflict, `{"error":"event sold out","message":"ignored"}`, "event sold out"},
		{"message field fallback", http.StatusBadRequest, `{"message":"invalid phone number"}`, "invalid phone number"},
		{"unparsable body", http.StatusInternalServerError, `<html>oops</html>`, "request failed"},
		{"empty body", http.StatusBadGateway, ``, "request failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := api.NewClient(server.URL, server.Client(), nil, nil)
			_, err := client.GetEvent(context.Background(), "e1")

			var httpErr *api.HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, tt.status, httpErr.Status)
			assert.Equal(t, tt.message, httpErr.Message)
		})
	}
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, api.IsNotFound(&api.HTTPError{Status: http.StatusNotFound}))
	assert.False(t, api.IsNotFound(&api.HTTPError{Status: http.StatusForbidden}))
	assert.False(t, api.IsNotFound(context.Canceled))
	assert.False(t, api.IsNotFound(nil))
}

func TestAuthedCallSendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := api.NewClient(server.URL, server.Client(), api.StaticToken("tok-123"), nil)
	_, err := client.ListUsers(context.Background())
	assert.NoError(t, err)
}

func TestAuthedCallWithoutTokenFailsBeforeNetwork(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := api.NewClient(server.URL, server.Client(), api.StaticToken(""), nil)
	_, err := client.ListUsers(context.Background())
	assert.ErrorIs(t, err, auth.ErrAuthRequired)
	assert.False(t, called)

	// No token source at all behaves the same.
	client = api.NewClient(server.URL, server.Client(), nil, nil)
	_, err = client.ListUsers(context.Background())
	assert.ErrorIs(t, err, auth.ErrAuthRequired)
	assert.False(t, called)
}

func TestWithTokenSourceDoesNotMutateOriginal(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	base := api.NewClient(server.URL, server.Client(), nil, nil)
	bound := base.WithTokenSource(api.StaticToken("tok-abc"))

	_, err := bound.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-abc", got)

	_, err = base.ListUsers(context.Background())
	assert.ErrorIs(t, err, auth.ErrAuthRequired)
}

func TestUpdateEventStatusSendsPatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/organizers/events/e1/status", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := api.NewClient(server.URL, server.Client(), api.StaticToken("tok"), nil)
	err := client.UpdateEventStatus(context.Background(), "e1", "Published")
	assert.NoError(t, err)
}

func TestLookupOrganizerQueriesByEmail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "org@example.com", r.URL.Query().Get("email"))
		w.Write([]byte(`{"id":"org-1","email":"org@example.com"}`))
	}))
	defer server.Close()

	client := api.NewClient(server.URL, server.Client(), api.StaticToken("tok"), nil)
	org, err := client.LookupOrganizer(context.Background(), "org@example.com")
	require.NoError(t, err)
	assert.Equal(t, "org-1", org.ID)
}

func TestAdminMetricDecodesValue(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/metrics/total-revenue", r.URL.Path)
		w.Write([]byte(`{"value":184500}`))
	}))
	defer server.Close()

	client := api.NewClient(server.URL, server.Client(), api.StaticToken("tok"), nil)
	value, err := client.AdminMetric(context.Background(), "total-revenue")
	require.NoError(t, err)
	assert.Equal(t, float64(184500), value)
}
