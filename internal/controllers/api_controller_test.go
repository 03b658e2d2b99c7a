package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"babydbg/internal/models"
	"babydbg/internal/offline"
	"babydbg/internal/services"
	"babydbg/internal/structures"
	"babydbg/internal/testutil"
)

// --- local mocks (scoped to controller tests) ---

type mockDayService struct {
	view      *services.DayView
	loadErr   error
	savedSeg  *models.NapSegment
	saveErr   error
	babies    []models.BabyInfo
	loadCalls []string
	saveCalls []int
}

func (m *mockDayService) LoadDay(_ context.Context, babyID int, day string) (*services.DayView, error) {
	m.loadCalls = append(m.loadCalls, day)
	return m.view, m.loadErr
}

func (m *mockDayService) SaveNap(_ context.Context, _ int, _ string, index int, _ *services.NapUpdate) (*models.NapSegment, error) {
	m.saveCalls = append(m.saveCalls, index)
	return m.savedSeg, m.saveErr
}

func (m *mockDayService) ListBabies(_ context.Context) ([]models.BabyInfo, error) {
	return m.babies, m.loadErr
}

func (m *mockDayService) Current() *services.DayView { return m.view }

// --- helpers ---

func newTestController(svc *mockDayService, fetch offline.FetcherFunc, store *testutil.MockStore) *ApiController {
	conf := &structures.Config{Offline: structures.OfflineConfig{Version: "babydbg-v1"}}
	policy := offline.NewPolicy(conf, fetch, store, &testutil.MockLogger{}, &testutil.MockMetrics{})
	return NewApiController(&testutil.MockLogger{}, svc, policy)
}

func passthroughFetcher(status int, body string) offline.FetcherFunc {
	return func(_ context.Context, _ *offline.Request) (*offline.Response, error) {
		return &offline.Response{
			Status: status,
			Header: http.Header{"Content-Type": []string{"application/json"}},
			Body:   []byte(body),
		}, nil
	}
}

// --- GetPlan tests ---

func TestGetPlan_ValidRequest(t *testing.T) {
	svc := &mockDayService{view: &services.DayView{BabyID: 3, Day: "2024-03-26"}}
	ac := newTestController(svc, passthroughFetcher(http.StatusOK, "{}"), testutil.NewMockStore())

	req := httptest.NewRequest(http.MethodGet, "/plan?baby=3&day=2024-03-26", nil)
	rr := httptest.NewRecorder()

	ac.GetPlan(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, []string{"2024-03-26"}, svc.loadCalls)

	var view services.DayView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Equal(t, 3, view.BabyID)
}

func TestGetPlan_BadParams(t *testing.T) {
	svc := &mockDayService{}
	ac := newTestController(svc, passthroughFetcher(http.StatusOK, "{}"), testutil.NewMockStore())

	for _, target := range []string{"/plan", "/plan?baby=0&day=2024-03-26", "/plan?baby=3&day=yesterday"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rr := httptest.NewRecorder()

		ac.GetPlan(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code, target)
	}
	assert.Empty(t, svc.loadCalls)
}

func TestGetPlan_LoadFailure(t *testing.T) {
	svc := &mockDayService{loadErr: services.ErrLoadFailed}
	ac := newTestController(svc, passthroughFetcher(http.StatusOK, "{}"), testutil.NewMockStore())

	req := httptest.NewRequest(http.MethodGet, "/plan?baby=3&day=2024-03-26", nil)
	rr := httptest.NewRecorder()

	ac.GetPlan(rr, req)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

// --- SaveNap tests ---

func TestSaveNap_ValidRequest(t *testing.T) {
	svc := &mockDayService{savedSeg: &models.NapSegment{Index: 1}}
	ac := newTestController(svc, passthroughFetcher(http.StatusOK, "{}"), testutil.NewMockStore())

	payload := `{"wake_up_time":"07:00","awake_window":80,"calm_down_time":15}`
	req := httptest.NewRequest(http.MethodPost, "/plan/nap?baby=3&day=2024-03-26&nap=1", strings.NewReader(payload))
	rr := httptest.NewRecorder()

	ac.SaveNap(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []int{1}, svc.saveCalls)
}

func TestSaveNap_InvalidJSON(t *testing.T) {
	svc := &mockDayService{}
	ac := newTestController(svc, passthroughFetcher(http.StatusOK, "{}"), testutil.NewMockStore())

	req := httptest.NewRequest(http.MethodPost, "/plan/nap?baby=3&day=2024-03-26&nap=1", strings.NewReader("not json"))
	rr := httptest.NewRecorder()

	ac.SaveNap(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, svc.saveCalls)
}

func TestSaveNap_ErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{services.ErrInvalidNap, http.StatusBadRequest},
		{services.ErrNoWakeUpTime, http.StatusBadRequest},
		{services.ErrSegmentCached, http.StatusForbidden},
		{services.ErrSaveInFlight, http.StatusConflict},
		{services.ErrSaveFailed, http.StatusBadGateway},
	}
	for _, tc := range cases {
		svc := &mockDayService{saveErr: tc.err}
		ac := newTestController(svc, passthroughFetcher(http.StatusOK, "{}"), testutil.NewMockStore())

		payload := `{"wake_up_time":"07:00","awake_window":80,"calm_down_time":15}`
		req := httptest.NewRequest(http.MethodPost, "/plan/nap?baby=3&day=2024-03-26&nap=1", strings.NewReader(payload))
		rr := httptest.NewRecorder()

		ac.SaveNap(rr, req)

		assert.Equal(t, tc.code, rr.Code, tc.err.Error())
	}
}

// --- GetBabies tests ---

func TestGetBabies(t *testing.T) {
	svc := &mockDayService{babies: []models.BabyInfo{{ID: 3, Name: "randy"}}}
	ac := newTestController(svc, passthroughFetcher(http.StatusOK, "{}"), testutil.NewMockStore())

	req := httptest.NewRequest(http.MethodGet, "/babies", nil)
	rr := httptest.NewRecorder()

	ac.GetBabies(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"id":3,"name":"randy"}]`, rr.Body.String())
}

// --- Gateway tests ---

func TestGateway_ForwardsUpstreamResponse(t *testing.T) {
	ac := newTestController(&mockDayService{}, passthroughFetcher(http.StatusOK, `[{"id":3,"name":"randy"}]`), testutil.NewMockStore())

	req := httptest.NewRequest(http.MethodGet, "/api/babies", nil)
	rr := httptest.NewRecorder()

	ac.Gateway(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `[{"id":3,"name":"randy"}]`, rr.Body.String())
}

func TestGateway_UnavailableWhenBothSourcesFail(t *testing.T) {
	fetch := func(_ context.Context, _ *offline.Request) (*offline.Response, error) {
		return nil, errors.New("connection refused")
	}
	ac := newTestController(&mockDayService{}, fetch, testutil.NewMockStore())

	req := httptest.NewRequest(http.MethodGet, "/api/babies", nil)
	rr := httptest.NewRecorder()

	ac.Gateway(rr, req)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestGateway_ServesCacheFallback(t *testing.T) {
	store := testutil.NewMockStore()
	entry, err := json.Marshal(&offline.Response{Status: http.StatusOK, Body: []byte(`[{"id":3,"name":"randy"}]`)})
	require.NoError(t, err)
	require.NoError(t, store.Set("babydbg-v1|/api/babies", entry))

	fetch := func(_ context.Context, _ *offline.Request) (*offline.Response, error) {
		return nil, errors.New("connection refused")
	}
	ac := newTestController(&mockDayService{}, fetch, store)

	req := httptest.NewRequest(http.MethodGet, "/api/babies", nil)
	rr := httptest.NewRecorder()

	ac.Gateway(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"id":3,"name":"randy"}]`, rr.Body.String())
}
