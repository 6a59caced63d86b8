package loanevent_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/catalog/loanevent"
	"github.com/taibuivan/locallibrary/internal/testutil"
)

const instanceID = "0190a5b2-7c3e-7d4f-8a1b-000000000001"

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) ListByInstance(ctx context.Context, id string, limit, offset int) ([]*loanevent.Event, int, error) {
	args := m.Called(ctx, id, limit, offset)
	events, _ := args.Get(0).([]*loanevent.Event)
	return events, args.Int(1), args.Error(2)
}

/*
TestNew verifies actor handling and the UTC timestamp.
*/
func TestNew(t *testing.T) {
	occurredAt := time.Date(2024, 1, 10, 9, 30, 0, 0, time.FixedZone("UTC+3", 3*3600))

	system := loanevent.New(instanceID, loanevent.TypeReturned, "", occurredAt, nil)
	assert.Nil(t, system.ActorID)
	assert.NotNil(t, system.Payload)
	assert.Equal(t, time.UTC, system.OccurredAt.Location())
	assert.True(t, occurredAt.Equal(system.OccurredAt))

	staff := loanevent.New(instanceID, loanevent.TypeRenewed, testutil.StaffID, occurredAt, loanevent.Payload{"to": "2024-01-20"})
	require.NotNil(t, staff.ActorID)
	assert.Equal(t, testutil.StaffID, *staff.ActorID)
	assert.Equal(t, "2024-01-20", staff.Payload["to"])
}

/*
TestListEvents verifies the history endpoint and its identifier check.
*/
func TestListEvents(t *testing.T) {
	repo := &mockRepository{}
	repo.On("ListByInstance", mock.Anything, instanceID, 20, 0).Return([]*loanevent.Event{
		loanevent.New(instanceID, loanevent.TypeLent, testutil.StaffID, time.Now(), loanevent.Payload{"borrower_id": testutil.MemberID}),
	}, 1, nil)

	mount := func(router chi.Router) {
		router.Route("/instances", loanevent.NewHandler(loanevent.NewService(repo, testutil.Logger())).RegisterRoutes)
	}

	recorder := testutil.Serve(t, mount, testutil.Request{Method: http.MethodGet, Path: "/instances/" + instanceID + "/events", Claims: testutil.Staff()})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	data := testutil.Decode(t, recorder)["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "lent", data[0].(map[string]any)["type"])

	recorder = testutil.Serve(t, mount, testutil.Request{Method: http.MethodGet, Path: "/instances/not-a-uuid/events", Claims: testutil.Staff()})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
