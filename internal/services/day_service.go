package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"
	"go.uber.org/atomic"

	"babydbg/internal/models"
	"babydbg/internal/offline"
	"babydbg/internal/providers"
	"babydbg/internal/schedule"
)

var (
	// ErrLoadFailed covers any day-load failure that is not a plain 404:
	// the day's state could not be determined, which is distinct from
	// "no record yet" and must render distinctly.
	ErrLoadFailed = errors.New("could not determine day state")
	// ErrSuperseded marks a day fetch whose navigation target changed
	// while it was in flight; its result is discarded, never applied.
	ErrSuperseded = errors.New("navigation superseded")

	ErrSegmentCached = errors.New("segment served from offline cache, saving disabled")
	ErrNoWakeUpTime  = errors.New("segment has no wake-up time")
	ErrSaveInFlight  = errors.New("save already in flight")
	ErrSaveFailed    = errors.New("upstream rejected save")
	ErrInvalidNap    = errors.New("invalid nap values")
)

// DayView is the reconciled state of one (baby, day) navigation: five
// segments plus day-level totals, recomputed whenever a segment changes.
type DayView struct {
	BabyID   int    `json:"baby_id"`
	BabyName string `json:"baby_name,omitempty"`
	Day      string `json:"day"`
	PrevDay  string `json:"prev_day"`
	NextDay  string `json:"next_day"`
	Cached   bool   `json:"cached"`

	Segments []*models.NapSegment `json:"segments"`
	Schedule []string             `json:"schedule"`

	TotalNapMinutes   int    `json:"total_nap_minutes"`
	TotalAwakeMinutes int    `json:"total_awake_minutes"`
	TotalNaptime      string `json:"total_naptime"`
	TotalAwakeTime    string `json:"total_awake_time"`
}

// clone deep-copies the view so callers can hold or serialize it while the
// service keeps mutating the live one. Must be called with s.mu held.
func (v *DayView) clone() *DayView {
	c := *v
	c.Schedule = append([]string(nil), v.Schedule...)
	c.Segments = make([]*models.NapSegment, len(v.Segments))
	for i, seg := range v.Segments {
		c.Segments[i] = seg.Clone()
	}
	return &c
}

// NapUpdate is the user-edited slice of one segment, bound and checked
// before it is submitted upstream.
type NapUpdate struct {
	WakeUpTime   string `json:"wake_up_time" validate:"required"`
	AwakeWindow  int    `json:"awake_window" validate:"required|min:30|max:180"`
	CalmDownTime int    `json:"calm_down_time" validate:"min:0|max:60"`
}

type DayServiceInterface interface {
	LoadDay(ctx context.Context, babyID int, day string) (*DayView, error)
	SaveNap(ctx context.Context, babyID int, day string, index int, update *NapUpdate) (*models.NapSegment, error)
	ListBabies(ctx context.Context) ([]models.BabyInfo, error)
	Current() *DayView
}

type DayService struct {
	policy   *offline.Policy
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
	onUpdate func(*models.NapSegment)

	generation atomic.Int64
	mu         sync.RWMutex
	current    *DayView
}

func NewDayService(policy *offline.Policy, logger providers.Logger, metrics providers.MetricsProviderInterface) DayServiceInterface {
	ds := &DayService{
		policy:  policy,
		logger:  logger,
		metrics: metrics,
	}
	// Segment mutations report back to the day aggregator so totals stay
	// current. Explicit callback, no event bus.
	ds.onUpdate = ds.segmentUpdated
	return ds
}

// LoadDay fetches the day record through the offline gateway and reconciles
// it into the current view. Every call is a navigation: it supersedes any
// in-flight load, and a load that finishes after being superseded returns
// ErrSuperseded without touching the current view.
func (s *DayService) LoadDay(ctx context.Context, babyID int, day string) (*DayView, error) {
	gen := s.generation.Inc()

	path := fmt.Sprintf("/api/baby/%d/day/%s", babyID, day)
	resp, err := s.policy.Handle(ctx, &offline.Request{Method: http.MethodGet, Path: path})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}

	var record *models.DayRecord
	switch {
	case resp.Status == http.StatusNotFound:
		// Benign: the day simply has no data yet.
		record = nil
	case resp.OK():
		record = &models.DayRecord{}
		if err := json.Unmarshal(resp.Body, record); err != nil {
			return nil, fmt.Errorf("%w: malformed day record: %v", ErrLoadFailed, err)
		}
	default:
		return nil, fmt.Errorf("%w: upstream status %d", ErrLoadFailed, resp.Status)
	}

	segments, err := schedule.ReconcileDay(babyID, day, record)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}

	view := &DayView{
		BabyID:   babyID,
		Day:      day,
		Cached:   record != nil && record.Cached,
		Segments: segments,
	}
	if record != nil {
		view.BabyName = record.Baby.Name
	}
	if date, derr := time.Parse(models.DayLayout, day); derr == nil {
		view.PrevDay = date.AddDate(0, 0, -1).Format(models.DayLayout)
		view.NextDay = date.AddDate(0, 0, 1).Format(models.DayLayout)
	}
	refreshTotals(view)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation.Load() != gen {
		return nil, ErrSuperseded
	}
	s.current = view
	// Callers get a snapshot: the live view keeps changing under the lock
	// as saves land, and serialization must not observe that.
	return view.clone(), nil
}

func (s *DayService) Current() *DayView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	return s.current.clone()
}

// SaveNap re-estimates a segment from user edits and submits it upstream.
// Saves on distinct segments are independent and may run concurrently;
// a second save on the same segment is refused while one is in flight.
func (s *DayService) SaveNap(ctx context.Context, babyID int, day string, index int, update *NapUpdate) (*models.NapSegment, error) {
	if index < 1 || index > schedule.SegmentsPerDay {
		return nil, fmt.Errorf("%w: segment index %d out of range", ErrInvalidNap, index)
	}
	if update.WakeUpTime == "" {
		return nil, ErrNoWakeUpTime
	}
	if v := validate.Struct(update); !v.Validate() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidNap, v.Errors.One())
	}
	if update.AwakeWindow%schedule.AwakeWindowStep != 0 {
		return nil, fmt.Errorf("%w: awake window must be a multiple of %d minutes", ErrInvalidNap, schedule.AwakeWindowStep)
	}

	seg := s.segmentFor(babyID, day, index)
	if seg.Cached {
		return nil, ErrSegmentCached
	}
	// Claim the segment before mutating it: a refused concurrent save must
	// not clobber the fields of the one in flight.
	if !seg.TryBeginSave() {
		return nil, ErrSaveInFlight
	}

	// Field writes happen under the view mutex. The CAS above only
	// serializes saves against each other; readers cloning the view must
	// not see a half-applied update.
	s.mu.Lock()
	seg.WakeUpTime = update.WakeUpTime
	seg.AwakeWindow = update.AwakeWindow
	seg.CalmDown = update.CalmDownTime
	err := schedule.Estimate(seg)
	s.mu.Unlock()
	if err != nil {
		seg.FinishSave(false)
		return nil, fmt.Errorf("%w: %v", ErrInvalidNap, err)
	}
	s.onUpdate(seg)

	body, err := json.Marshal(&models.Nap{
		WakeUpTime:   seg.WakeUpTime,
		AwakeWindow:  seg.AwakeWindow,
		CalmDownTime: seg.CalmDown,
	})
	if err != nil {
		seg.FinishSave(false)
		return nil, err
	}

	resp, err := s.policy.Handle(ctx, &offline.Request{
		Method: http.MethodPost,
		Path:   fmt.Sprintf("/api/baby/%d/day/%s/nap/%d", babyID, day, index),
		Header: http.Header{"Content-Type": []string{"application/json"}},
		Body:   body,
	})
	if err != nil {
		seg.FinishSave(false)
		s.metrics.IncSaveFailures()
		return s.snapshotSegment(seg), fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	if !resp.OK() {
		seg.FinishSave(false)
		s.metrics.IncSaveFailures()
		return s.snapshotSegment(seg), fmt.Errorf("%w: upstream status %d", ErrSaveFailed, resp.Status)
	}

	seg.FinishSave(true)
	return s.snapshotSegment(seg), nil
}

// snapshotSegment clones a live segment under the view mutex; once the save
// claim is released, the next save may already be rewriting it.
func (s *DayService) snapshotSegment(seg *models.NapSegment) *models.NapSegment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return seg.Clone()
}

func (s *DayService) ListBabies(ctx context.Context) ([]models.BabyInfo, error) {
	resp, err := s.policy.Handle(ctx, &offline.Request{Method: http.MethodGet, Path: "/api/babies"})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("%w: upstream status %d", ErrLoadFailed, resp.Status)
	}
	var babies []models.BabyInfo
	if err := json.Unmarshal(resp.Body, &babies); err != nil {
		return nil, fmt.Errorf("%w: malformed babies listing: %v", ErrLoadFailed, err)
	}
	return babies, nil
}

// segmentFor resolves a save target against the current view so segment
// state (cached flag, in-flight status) carries over. Saves for a day that
// was never loaded get a transient segment.
func (s *DayService) segmentFor(babyID int, day string, index int) *models.NapSegment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current != nil && s.current.BabyID == babyID && s.current.Day == day {
		return s.current.Segments[index-1]
	}
	return schedule.NewSegment(babyID, day, index)
}

func (s *DayService) segmentUpdated(seg *models.NapSegment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.current.BabyID != seg.BabyID || s.current.Day != seg.Day {
		return
	}
	refreshTotals(s.current)
}

func refreshTotals(view *DayView) {
	view.Schedule = schedule.Outline(view.Segments)
	totals := schedule.ComputeTotals(view.Segments)
	view.TotalNapMinutes = totals.NapMinutes
	view.TotalAwakeMinutes = totals.AwakeMinutes
	view.TotalNaptime = schedule.FormatDuration(totals.NapMinutes)
	view.TotalAwakeTime = schedule.FormatDuration(totals.AwakeMinutes)
}
