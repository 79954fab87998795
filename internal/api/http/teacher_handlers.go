package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/classkit/qna-checker/internal/qna"
	"github.com/classkit/qna-checker/internal/review"
)

// GET /questions?date_key=...
func GetQuestionsHandler(svc *qna.QuestionSetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dateKey := strings.TrimSpace(r.URL.Query().Get("date_key"))
		qs, err := svc.Get(r.Context(), dateKey)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, map[string]interface{}{"date_key": dateKey, "questions": qs})
	}
}

// PUT /questions/{dateKey}
func SaveQuestionsHandler(svc *qna.QuestionSetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Questions []string `json:"questions"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := svc.Save(r.Context(), chi.URLParam(r, "dateKey"), req.Questions); err != nil {
			writeErr(w, err)
			return
		}
		writeOK(w)
	}
}

// GET /questions-dates
func ListQuestionDatesHandler(svc *qna.QuestionSetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dates, err := svc.SavedDates(r.Context())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, map[string]interface{}{"dates": dates})
	}
}

func CreateReviewSessionHandler(m *review.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"session_id": m.Create()})
	}
}

func EditorLoadHandler(m *review.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			DateKey string `json:"date_key"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		sid := chi.URLParam(r, "sessionID")
		if err := m.LoadSavedInto(r.Context(), sid, req.DateKey); err != nil {
			writeErr(w, err)
			return
		}
		draftJSON(m, sid, w)
	}
}

func EditorResizeHandler(m *review.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Num int `json:"num"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		sid := chi.URLParam(r, "sessionID")
		if err := m.Resize(sid, req.Num); err != nil {
			writeErr(w, err)
			return
		}
		draftJSON(m, sid, w)
	}
}

func EditorResetHandler(m *review.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := chi.URLParam(r, "sessionID")
		if err := m.ResetToDefault(sid); err != nil {
			writeErr(w, err)
			return
		}
		draftJSON(m, sid, w)
	}
}

func EditorSetDraftHandler(m *review.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Index int    `json:"index"`
			Text  string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		sid := chi.URLParam(r, "sessionID")
		if err := m.SetDraft(sid, req.Index, req.Text); err != nil {
			writeErr(w, err)
			return
		}
		draftJSON(m, sid, w)
	}
}

func EditorSaveHandler(m *review.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			DateKey string `json:"date_key"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := m.SaveDraft(r.Context(), chi.URLParam(r, "sessionID"), req.DateKey); err != nil {
			writeErr(w, err)
			return
		}
		writeOK(w)
	}
}

func CheckerLoadHandler(m *review.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			DateKey       string `json:"date_key"`
			StudentSearch string `json:"student_search"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		rows, err := m.LoadAnswers(r.Context(), chi.URLParam(r, "sessionID"), req.DateKey, req.StudentSearch)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, map[string]interface{}{"rows": rows})
	}
}

func CheckerToggleHandler(m *review.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID      int64 `json:"id"`
			Checked bool  `json:"checked"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := m.Toggle(chi.URLParam(r, "sessionID"), req.ID, req.Checked); err != nil {
			writeErr(w, err)
			return
		}
		writeOK(w)
	}
}

func CheckerSaveHandler(m *review.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := m.SaveChecks(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
			writeErr(w, err)
			return
		}
		writeOK(w)
	}
}

func CheckerCheckAllHandler(m *review.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := m.MarkAllChecked(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
			writeErr(w, err)
			return
		}
		writeOK(w)
	}
}

// GET /review-sessions/{sessionID}/checker/export?format=csv|xlsx
func ExportHandler(m *review.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sid := chi.URLParam(r, "sessionID")
		rows, err := m.Rows(sid)
		if err != nil {
			writeErr(w, err)
			return
		}
		dateKey, err := m.ExportDateKey(sid)
		if err != nil {
			writeErr(w, err)
			return
		}
		switch r.URL.Query().Get("format") {
		case "xlsx":
			w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			w.Header().Set("Content-Disposition", `attachment; filename="`+review.ExportFilename(dateKey, "xlsx")+`"`)
			if err := review.WriteXLSX(w, rows); err != nil {
				writeErr(w, err)
			}
		case "", "csv":
			w.Header().Set("Content-Type", "text/csv")
			w.Header().Set("Content-Disposition", `attachment; filename="`+review.ExportFilename(dateKey, "csv")+`"`)
			if err := review.WriteCSV(w, rows); err != nil {
				writeErr(w, err)
			}
		default:
			http.Error(w, "unknown format", http.StatusBadRequest)
		}
	}
}

func draftJSON(m *review.Manager, sessionID string, w http.ResponseWriter) {
	draft, err := m.Draft(sessionID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, map[string]interface{}{"draft": draft})
}
