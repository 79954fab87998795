package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/classkit/qna-checker/internal/qna"
	"github.com/classkit/qna-checker/internal/review"
	"github.com/classkit/qna-checker/internal/wizard"
)

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeOK(w http.ResponseWriter) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// writeErr maps sentinel errors onto HTTP status codes. Anything unknown is a
// store-level failure.
func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, wizard.ErrSessionNotFound), errors.Is(err, review.ErrSessionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, qna.ErrEmptyStudentID),
		errors.Is(err, qna.ErrEmptyDateKey),
		errors.Is(err, qna.ErrLengthMismatch),
		errors.Is(err, wizard.ErrNoActiveWizard),
		errors.Is(err, wizard.ErrNotPreviewing),
		errors.Is(err, review.ErrBadQuestionCount),
		errors.Is(err, review.ErrBadDraftIndex),
		errors.Is(err, review.ErrNoSnapshot),
		errors.Is(err, review.ErrRowNotLoaded):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
