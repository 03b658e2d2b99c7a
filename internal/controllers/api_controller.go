package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	json "github.com/goccy/go-json"

	"babydbg/internal/models"
	"babydbg/internal/offline"
	"babydbg/internal/providers"
	"babydbg/internal/services"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	logger  providers.Logger
	service services.DayServiceInterface
	policy  *offline.Policy
}

func NewApiController(logger providers.Logger, service services.DayServiceInterface, policy *offline.Policy) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		policy:  policy,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	gson, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func dayParams(r *http.Request) (int, string, error) {
	babyID, err := strconv.Atoi(r.URL.Query().Get("baby"))
	if err != nil || babyID < 1 {
		return 0, "", errors.New("bad baby id")
	}
	day := r.URL.Query().Get("day")
	if _, err := time.Parse(models.DayLayout, day); err != nil {
		return 0, "", errors.New("bad day")
	}
	return babyID, day, nil
}

func (ac *ApiController) GetPlan(w http.ResponseWriter, r *http.Request) {
	babyID, day, err := dayParams(r)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	view, err := ac.service.LoadDay(r.Context(), babyID, day)
	switch {
	case errors.Is(err, services.ErrSuperseded):
		http.Error(w, "Conflict", http.StatusConflict)
		return
	case err != nil:
		ac.logger.Errorf(providers.TypeGet, "load day %d/%s: %s", babyID, day, err)
		http.Error(w, "Bad Gateway", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (ac *ApiController) SaveNap(w http.ResponseWriter, r *http.Request) {
	babyID, day, err := dayParams(r)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	index, err := strconv.Atoi(r.URL.Query().Get("nap"))
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var update services.NapUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	seg, err := ac.service.SaveNap(r.Context(), babyID, day, index, &update)
	switch {
	case errors.Is(err, services.ErrInvalidNap), errors.Is(err, services.ErrNoWakeUpTime):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, services.ErrSegmentCached):
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	case errors.Is(err, services.ErrSaveInFlight):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		ac.logger.Errorf(providers.TypePost, "save nap %d/%s/%d: %s", babyID, day, index, err)
		http.Error(w, "Bad Gateway", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, seg)
}

func (ac *ApiController) GetBabies(w http.ResponseWriter, r *http.Request) {
	babies, err := ac.service.ListBabies(r.Context())
	if err != nil {
		ac.logger.Errorf(providers.TypeGet, "list babies: %s", err)
		http.Error(w, "Bad Gateway", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, babies)
}

// Gateway is the catch-all interception entry point: every request not
// claimed by the planner surface is piped through the offline policy to the
// upstream, cache fallback included.
func (ac *ApiController) Gateway(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	resp, err := ac.policy.Handle(r.Context(), &offline.Request{
		Method: r.Method,
		Path:   r.URL.RequestURI(),
		Header: r.Header,
		Body:   body,
	})
	if err != nil {
		ac.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "gateway %s %s: %s", r.Method, r.URL.Path, err)
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
		return
	}

	header := w.Header()
	for key, values := range resp.Header {
		header[key] = values
	}
	header.Del("Content-Length")
	w.WriteHeader(resp.Status)
	_, _ = w.Write(resp.Body)
}
