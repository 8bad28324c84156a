package transport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/quenchd/quench/internal/domain/hydration"
	"github.com/quenchd/quench/internal/domain/reminder"
)

// Services bundles what the HTTP surface needs.
type Services struct {
	State     *hydration.Service
	Reminders *reminder.Scheduler
	Logger    *slog.Logger
}

// Server wires HTTP handlers over the engine: user intents in, the
// read-only projection out.
type Server struct {
	state     *hydration.Service
	reminders *reminder.Scheduler
	logger    *slog.Logger
	now       func() time.Time
}

// NewRouter creates the HTTP router.
func NewRouter(svcs Services) *chi.Mux {
	logger := svcs.Logger
	if logger == nil {
		logger = slog.Default()
	}
	srv := &Server{
		state:     svcs.State,
		reminders: svcs.Reminders,
		logger:    logger,
		now:       time.Now,
	}

	r := chi.NewRouter()
	r.Get("/health", srv.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/projection", srv.handleProjection)
		r.Get("/metrics/weekly", srv.handleWeekly)
		r.Get("/records", srv.handleRecords)
		r.Post("/intake", srv.handleIntake)
		r.Delete("/intake/{id}", srv.handleEraseIntake)
		r.Delete("/records", srv.handleClearRecords)
		r.Put("/settings", srv.handleUpdateSettings)
		r.Post("/settings/reset", srv.handleResetSettings)
		r.Post("/reminder/dismiss", srv.handleDismiss)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.state.Projection(s.now()))
}

type weeklyDay struct {
	Day   string  `json:"day"`
	Total float64 `json:"total"`
}

func (s *Server) handleWeekly(w http.ResponseWriter, _ *http.Request) {
	totals := s.state.WeeklyTotals()
	days := make([]weeklyDay, 0, len(totals))
	for day, total := range totals {
		days = append(days, weeklyDay{Day: day.Format("2006-01-02"), Total: total})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Day < days[j].Day })
	writeJSON(w, http.StatusOK, map[string]any{"days": days})
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	if dayStr := r.URL.Query().Get("day"); dayStr != "" {
		day, err := time.ParseInLocation("2006-01-02", dayStr, time.Local)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid day, expected YYYY-MM-DD")
			return
		}
		records := s.state.RecordsOn(day)
		if records == nil {
			records = []hydration.Record{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"records": records})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": s.state.Records()})
}

type intakeRequest struct {
	Volume float64    `json:"volume"`
	Date   *time.Time `json:"date,omitempty"`
}

func (s *Server) handleIntake(w http.ResponseWriter, r *http.Request) {
	var req intakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	now := s.now()
	date := now
	if req.Date != nil {
		date = *req.Date
	}

	rec, err := s.state.LogIntake(date, req.Volume)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.reminders.OnIntakeRegistered(r.Context(), now)
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleEraseIntake(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.state.EraseIntakeByID(id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearRecords(w http.ResponseWriter, r *http.Request) {
	s.state.ClearRecords()
	s.reminders.OnRecordsCleared(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

type settingsRequest struct {
	Target           *float64 `json:"target,omitempty"`
	ReminderInterval *float64 `json:"reminderInterval,omitempty"` // seconds
	Accent           *string  `json:"accent,omitempty"`
	RetentionDays    *float64 `json:"retentionDays,omitempty"`
}

type settingsResponse struct {
	Target           float64          `json:"target"`
	ReminderInterval float64          `json:"reminderInterval"` // seconds
	Accent           hydration.Accent `json:"accent"`
	RetentionDays    float64          `json:"retentionDays"`
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Target != nil {
		if err := s.state.UpdateTarget(*req.Target); err != nil {
			writeDomainError(w, err)
			return
		}
	}
	if req.ReminderInterval != nil {
		s.state.UpdateReminderInterval(time.Duration(*req.ReminderInterval * float64(time.Second)))
	}
	if req.Accent != nil {
		accent, err := hydration.ParseAccent(*req.Accent)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if err := s.state.UpdateAccent(accent); err != nil {
			writeDomainError(w, err)
			return
		}
	}
	if req.RetentionDays != nil {
		if err := s.state.UpdateRetentionDays(*req.RetentionDays); err != nil {
			writeDomainError(w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, settingsBody(s.state.Settings()))
}

func (s *Server) handleResetSettings(w http.ResponseWriter, _ *http.Request) {
	s.state.RestoreDefaults()
	writeJSON(w, http.StatusOK, settingsBody(s.state.Settings()))
}

func (s *Server) handleDismiss(w http.ResponseWriter, _ *http.Request) {
	s.reminders.OnDismissed()
	w.WriteHeader(http.StatusNoContent)
}

func settingsBody(settings hydration.Settings) settingsResponse {
	return settingsResponse{
		Target:           settings.Target,
		ReminderInterval: settings.ReminderInterval.Seconds(),
		Accent:           settings.Accent,
		RetentionDays:    settings.RetentionDays,
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, hydration.ErrRecordNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, hydration.ErrInvalidVolume),
		errors.Is(err, hydration.ErrInvalidTarget),
		errors.Is(err, hydration.ErrInvalidRetention),
		errors.Is(err, hydration.ErrInvalidAccent),
		errors.Is(err, hydration.ErrDuplicateRecord):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
