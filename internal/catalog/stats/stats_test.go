package stats_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/locallibrary/internal/catalog/stats"
	"github.com/taibuivan/locallibrary/internal/testutil"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Count(ctx context.Context) (*stats.Summary, error) {
	args := m.Called(ctx)
	summary, _ := args.Get(0).(*stats.Summary)
	return summary, args.Error(1)
}

type mockCounter struct {
	mock.Mock
}

func (m *mockCounter) Increment(ctx context.Context, visitor string) (int64, error) {
	args := m.Called(ctx, visitor)
	return args.Get(0).(int64), args.Error(1)
}

func counts() *stats.Summary {
	return &stats.Summary{NumBooks: 4, NumInstances: 9, NumInstancesAvailable: 3, NumAuthors: 2}
}

func mount(repo *mockRepository, counter *mockCounter) func(chi.Router) {
	handler := stats.NewHandler(stats.NewService(repo, counter, testutil.Logger()))
	return handler.RegisterRoutes
}

/*
TestSummary_VisitorKeys verifies signed-in users are counted by id and
anonymous callers by client IP, reporting the visits before this one.
*/
func TestSummary_VisitorKeys(t *testing.T) {
	repo := &mockRepository{}
	repo.On("Count", mock.Anything).Return(counts(), nil)

	counter := &mockCounter{}
	counter.On("Increment", mock.Anything, "user:"+testutil.MemberID).Return(int64(3), nil)
	counter.On("Increment", mock.Anything, "ip:203.0.113.7").Return(int64(1), nil)

	recorder := testutil.Serve(t, mount(repo, counter), testutil.Request{Method: http.MethodGet, Path: "/", Claims: testutil.Member()})
	require.Equal(t, http.StatusOK, recorder.Code)

	var summary stats.Summary
	testutil.DecodeInto(t, recorder, &summary)
	assert.Equal(t, 4, summary.NumBooks)
	assert.Equal(t, 3, summary.NumInstancesAvailable)
	assert.Equal(t, int64(2), summary.NumVisits)

	recorder = testutil.Serve(t, mount(repo, counter), testutil.Request{
		Method: http.MethodGet, Path: "/",
		Header: http.Header{"X-Real-Ip": []string{"203.0.113.7"}},
	})
	require.Equal(t, http.StatusOK, recorder.Code)
	testutil.DecodeInto(t, recorder, &summary)
	assert.Equal(t, int64(0), summary.NumVisits)
}

/*
TestSummary_CounterDown verifies the home page survives a Redis outage.
*/
func TestSummary_CounterDown(t *testing.T) {
	repo := &mockRepository{}
	repo.On("Count", mock.Anything).Return(counts(), nil)

	counter := &mockCounter{}
	counter.On("Increment", mock.Anything, mock.Anything).Return(int64(0), errors.New("connection refused"))

	summary, err := stats.NewService(repo, counter, testutil.Logger()).Summary(context.Background(), "ip:127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, 9, summary.NumInstances)
	assert.Zero(t, summary.NumVisits)
}
