package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"SeasonalityExplorer/internal/calendar"
	"SeasonalityExplorer/internal/currency"
	"SeasonalityExplorer/internal/encoder"
	"SeasonalityExplorer/internal/export"
	"SeasonalityExplorer/internal/model"
	"SeasonalityExplorer/internal/report"
	"SeasonalityExplorer/internal/selection"
	"SeasonalityExplorer/internal/session"
)

const maxBody = 1 << 20

// Server exposes one session over HTTP.
type Server struct {
	sess *session.Session
	log  *logrus.Logger
}

// NewServer creates the API server.
func NewServer(sess *session.Session, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Server{sess: sess, log: logger}
}

// RegisterRoutes registers all API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", s.handleHealth)

	mux.Handle("GET /api/state", s.ready(s.handleState))
	mux.Handle("PUT /api/state/options", s.ready(s.handleOptions))
	mux.Handle("POST /api/state/click", s.ready(s.handleClick))
	mux.Handle("POST /api/state/key", s.ready(s.handleKey))
	mux.Handle("POST /api/state/range-mode", s.ready(s.handleRangeMode))
	mux.Handle("POST /api/state/month", s.ready(s.handleMonth))
	mux.Handle("DELETE /api/state/selection", s.ready(s.handleClearSelection))

	mux.Handle("GET /api/calendar", s.ready(s.handleCalendar))
	mux.Handle("GET /api/day/{date}", s.ready(s.handleDay))
	mux.Handle("GET /api/series", s.ready(s.handleSeries))
	mux.Handle("GET /api/summary", s.ready(s.handleSummary))
	mux.Handle("GET /api/series.parquet", s.ready(s.handleParquet))

	mux.Handle("GET /api/export", s.ready(s.handleExport))
	mux.Handle("POST /api/import", s.ready(s.handleImport))
}

// Handler returns an http.Handler with CORS and request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return s.logMiddleware(corsMiddleware(mux))
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Debug("http request")
	})
}

// ready rejects requests until the first series is loaded.
func (s *Server) ready(h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.sess.Ready() {
			writeError(w, http.StatusServiceUnavailable, "loading")
			return
		}
		h(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Error("encoding JSON response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func decodeBody(r *http.Request, v any) error {
	return json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(v)
}

func keyPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	k := calendar.Key(*t)
	return &k
}

func (s *Server) stateJSON() StateJSON {
	st := s.sess.State()
	return StateJSON{
		SelectedDate: keyPtr(st.Selected),
		DateRange:    export.Range{Start: keyPtr(st.Range.Start), End: keyPtr(st.Range.End)},
		RangeMode:    st.RangeMode,
		Phase:        st.Phase(),
		Month:        st.Month.Format(calendar.MonthLayout),
		ViewMode:     st.ViewMode,
		DataLayer:    st.Layer,
		ColorTheme:   st.Theme,
		Filters:      st.Filters,
		GeneratedAt:  s.sess.GeneratedAt().Format(time.RFC3339),
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "loading"
	if s.sess.Ready() {
		status = "ok"
	}
	writeJSON(w, map[string]string{"status": status, "session": s.sess.ID()})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.stateJSON())
}

func validateOptions(req OptionsRequest) error {
	if req.ViewMode != nil && !req.ViewMode.Valid() {
		return fmt.Errorf("unknown view mode %q", *req.ViewMode)
	}
	if req.DataLayer != nil && !req.DataLayer.Valid() {
		return fmt.Errorf("unknown data layer %q", *req.DataLayer)
	}
	if req.ColorTheme != nil && !req.ColorTheme.Valid() {
		return fmt.Errorf("unknown color theme %q", *req.ColorTheme)
	}
	if f := req.Filters; f != nil {
		if !slices.Contains(model.Instruments, f.Instrument) {
			return fmt.Errorf("unknown instrument %q", f.Instrument)
		}
		if !currency.Supported(f.Currency) {
			return fmt.Errorf("unsupported currency %q", f.Currency)
		}
	}
	return nil
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	var req OptionsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := validateOptions(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	_ = s.sess.Update(func(st *selection.State) error {
		if req.ViewMode != nil {
			st.ViewMode = *req.ViewMode
		}
		if req.DataLayer != nil {
			st.Layer = *req.DataLayer
		}
		if req.ColorTheme != nil {
			st.Theme = *req.ColorTheme
		}
		if req.Filters != nil {
			st.Filters = *req.Filters
		}
		return nil
	})
	writeJSON(w, s.stateJSON())
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	var req clickRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	day, err := calendar.ParseKey(req.Date, s.sess.Location())
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid date %q", req.Date))
		return
	}
	_ = s.sess.Update(func(st *selection.State) error {
		st.Click(day)
		return nil
	})
	writeJSON(w, s.stateJSON())
}

func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	var req keyRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	err := s.sess.Update(func(st *selection.State) error {
		return st.HandleKey(req.Key, s.sess.Now())
	})
	if errors.Is(err, selection.ErrUnknownKey) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown key %q", req.Key))
		return
	}
	writeJSON(w, s.stateJSON())
}

func (s *Server) handleRangeMode(w http.ResponseWriter, r *http.Request) {
	_ = s.sess.Update(func(st *selection.State) error {
		st.ToggleRangeMode()
		return nil
	})
	writeJSON(w, s.stateJSON())
}

func (s *Server) handleMonth(w http.ResponseWriter, r *http.Request) {
	var req monthRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	var move func(st *selection.State)
	switch req.Move {
	case "prev":
		move = (*selection.State).PrevMonth
	case "next":
		move = (*selection.State).NextMonth
	case "today":
		move = func(st *selection.State) { st.ShowToday(s.sess.Now()) }
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown move %q", req.Move))
		return
	}
	_ = s.sess.Update(func(st *selection.State) error {
		move(st)
		return nil
	})
	writeJSON(w, s.stateJSON())
}

func (s *Server) handleClearSelection(w http.ResponseWriter, r *http.Request) {
	_ = s.sess.Update(func(st *selection.State) error {
		st.ClearSelection()
		return nil
	})
	writeJSON(w, s.stateJSON())
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	var month time.Time
	if v := r.URL.Query().Get("month"); v != "" {
		m, err := calendar.ParseMonth(v, s.sess.Location())
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid month %q", v))
			return
		}
		month = m
	}

	cells, shown, err := s.sess.Calendar(month)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "loading")
		return
	}
	st := s.sess.State()

	resp := CalendarResponse{Month: shown.Format(calendar.MonthLayout), Cells: make([]CellJSON, 0, len(cells))}
	for _, c := range cells {
		cj := CellJSON{
			Date:           calendar.Key(c.Date),
			Day:            c.Date.Day(),
			Record:         c.Record,
			IsToday:        c.IsToday,
			IsCurrentMonth: c.IsCurrentMonth,
			IsSelected:     c.IsSelected,
			IsInRange:      c.IsInRange,
			Background:     encoder.CellBackground(c, st.Layer, st.Theme).CSS(),
		}
		if c.Record != nil {
			if fg := encoder.CellForeground(c); !fg.IsTransparent() {
				cj.Foreground = fg.CSS()
			}
			if st.Layer == model.LayerPerformance {
				cj.Trend = string(encoder.TrendOf(c.Record.Performance))
			}
			cj.Tooltip = report.BuildTooltip(*c.Record, st.Filters.Currency).Lines()
		}
		resp.Cells = append(resp.Cells, cj)
	}
	writeJSON(w, resp)
}

func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	date := r.PathValue("date")
	day, err := calendar.ParseKey(date, s.sess.Location())
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid date %q", date))
		return
	}
	ix, err := s.sess.Index()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "loading")
		return
	}
	rec, ok := ix.Lookup(day)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no data for %s", date))
		return
	}
	code := s.sess.State().Filters.Currency
	detail := report.BuildDetail(day, rec, code)
	detail.Range = report.RangeLine(ix.Series(), rec, code)
	writeJSON(w, DayResponse{
		Date:    rec.Date,
		Record:  rec,
		Detail:  detail,
		Tooltip: report.BuildTooltip(rec, code),
		Chart:   report.Chart(ix.Series(), &day),
	})
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	records, err := s.sess.Filtered()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "loading")
		return
	}
	writeJSON(w, SeriesResponse{Count: len(records), Records: records})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	mode := model.ViewMode(r.URL.Query().Get("mode"))
	if mode == "" {
		mode = s.sess.State().ViewMode
	}
	periods, err := s.sess.Summaries(mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, SummaryResponse{Mode: mode, Periods: periods})
}

func (s *Server) handleParquet(w http.ResponseWriter, r *http.Request) {
	ix, err := s.sess.Index()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "loading")
		return
	}
	var buf bytes.Buffer
	if err := export.EncodeSeries(&buf, ix.Series()); err != nil {
		s.log.WithError(err).Error("encoding parquet")
		writeError(w, http.StatusInternalServerError, "encoding failed")
		return
	}
	w.Header().Set("Content-Type", "application/vnd.apache.parquet")
	w.Header().Set("Content-Disposition", `attachment; filename="series.parquet"`)
	w.Write(buf.Bytes())
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	doc, name := s.sess.ExportDocument()
	data, err := export.Encode(doc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "encoding failed")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Write(data)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	doc, err := export.Decode(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.sess.Import(doc); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, s.stateJSON())
}
