package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/classkit/qna-checker/internal/wizard"
)

func CreateWizardSessionHandler(m *wizard.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"session_id": m.Create()})
	}
}

func StartWizardHandler(m *wizard.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			StudentID string `json:"student_id"`
			DateKey   string `json:"date_key"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := m.Start(r.Context(), chi.URLParam(r, "sessionID"), req.StudentID, req.DateKey); err != nil {
			writeErr(w, err)
			return
		}
		view(m, w, r)
	}
}

func BackWizardHandler(m *wizard.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := m.Back(chi.URLParam(r, "sessionID")); err != nil {
			writeErr(w, err)
			return
		}
		view(m, w, r)
	}
}

func NextWizardHandler(m *wizard.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := m.Next(chi.URLParam(r, "sessionID")); err != nil {
			writeErr(w, err)
			return
		}
		view(m, w, r)
	}
}

func EditAnswerHandler(m *wizard.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if err := m.EditAnswer(chi.URLParam(r, "sessionID"), req.Text); err != nil {
			writeErr(w, err)
			return
		}
		view(m, w, r)
	}
}

func PreviewWizardHandler(m *wizard.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := m.Preview(chi.URLParam(r, "sessionID")); err != nil {
			writeErr(w, err)
			return
		}
		view(m, w, r)
	}
}

func SubmitWizardHandler(m *wizard.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := m.Submit(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
			writeErr(w, err)
			return
		}
		view(m, w, r)
	}
}

func GetWizardHandler(m *wizard.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view(m, w, r)
	}
}

func view(m *wizard.Manager, w http.ResponseWriter, r *http.Request) {
	v, err := m.View(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, v)
}
