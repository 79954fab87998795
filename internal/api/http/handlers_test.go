package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/classkit/qna-checker/internal/qna"
	"github.com/classkit/qna-checker/internal/review"
	"github.com/classkit/qna-checker/internal/wizard"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := qna.NewInMemoryStore()
	questions := qna.NewQuestionSetService(store)
	answers := qna.NewAnswerService(store)
	wizards := wizard.NewManager(questions, answers)
	reviews := review.NewManager(questions, answers)

	r := chi.NewRouter()
	r.Get("/questions", GetQuestionsHandler(questions))
	r.Put("/questions/{dateKey}", SaveQuestionsHandler(questions))
	r.Get("/questions-dates", ListQuestionDatesHandler(questions))
	r.Post("/sessions", CreateWizardSessionHandler(wizards))
	r.Route("/sessions/{sessionID}", func(sr chi.Router) {
		sr.Get("/", GetWizardHandler(wizards))
		sr.Post("/start", StartWizardHandler(wizards))
		sr.Post("/back", BackWizardHandler(wizards))
		sr.Post("/next", NextWizardHandler(wizards))
		sr.Post("/answer", EditAnswerHandler(wizards))
		sr.Post("/preview", PreviewWizardHandler(wizards))
		sr.Post("/submit", SubmitWizardHandler(wizards))
	})
	r.Post("/review-sessions", CreateReviewSessionHandler(reviews))
	r.Route("/review-sessions/{sessionID}", func(rr chi.Router) {
		rr.Post("/editor/load", EditorLoadHandler(reviews))
		rr.Post("/editor/resize", EditorResizeHandler(reviews))
		rr.Post("/editor/reset", EditorResetHandler(reviews))
		rr.Post("/editor/draft", EditorSetDraftHandler(reviews))
		rr.Post("/editor/save", EditorSaveHandler(reviews))
		rr.Post("/checker/load", CheckerLoadHandler(reviews))
		rr.Post("/checker/toggle", CheckerToggleHandler(reviews))
		rr.Post("/checker/save", CheckerSaveHandler(reviews))
		rr.Post("/checker/check-all", CheckerCheckAllHandler(reviews))
		rr.Get("/checker/export", ExportHandler(reviews))
	})

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body interface{}, out interface{}) *http.Response {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(buf)
	} else {
		rd = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, rd)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s %s: %v", method, url, err)
		}
	}
	return resp
}

func TestStudentFlowOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	// teacher saves a question set first
	resp := doJSON(t, http.MethodPut, ts.URL+"/questions/2024-05-01",
		map[string]interface{}{"questions": []string{"What is a variable?", "Give an example.", "Any questions?"}}, nil)
	if resp.StatusCode != 200 {
		t.Fatalf("save questions: status %d", resp.StatusCode)
	}

	var created struct {
		SessionID string `json:"session_id"`
	}
	doJSON(t, http.MethodPost, ts.URL+"/sessions", nil, &created)
	if created.SessionID == "" {
		t.Fatal("no session id")
	}
	base := ts.URL + "/sessions/" + created.SessionID

	// blank student id is rejected with 400 and no state change
	resp = doJSON(t, http.MethodPost, base+"/start",
		map[string]string{"student_id": " ", "date_key": "2024-05-01"}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("blank student start: status %d, want 400", resp.StatusCode)
	}

	var v wizard.View
	doJSON(t, http.MethodPost, base+"/start",
		map[string]string{"student_id": "S001", "date_key": "2024-05-01"}, &v)
	if v.State != "in_progress" || v.Total != 3 || v.Question != "What is a variable?" {
		t.Fatalf("unexpected view after start: %+v", v)
	}

	for _, a := range []string{"x", "y", "z"} {
		doJSON(t, http.MethodPost, base+"/answer", map[string]string{"text": a}, &v)
		doJSON(t, http.MethodPost, base+"/next", nil, &v)
	}
	doJSON(t, http.MethodPost, base+"/preview", nil, &v)
	if !v.Previewing || len(v.Preview) != 3 {
		t.Fatalf("preview view: %+v", v)
	}
	doJSON(t, http.MethodPost, base+"/submit", nil, &v)
	if v.State != "idle" {
		t.Fatalf("state after submit = %q, want idle", v.State)
	}

	// checker sees the three unchecked rows
	var rs struct {
		SessionID string `json:"session_id"`
	}
	doJSON(t, http.MethodPost, ts.URL+"/review-sessions", nil, &rs)
	rbase := ts.URL + "/review-sessions/" + rs.SessionID

	var loaded struct {
		Rows []qna.AnswerRecord `json:"rows"`
	}
	doJSON(t, http.MethodPost, rbase+"/checker/load",
		map[string]string{"date_key": "2024-05-01", "student_search": "S001"}, &loaded)
	if len(loaded.Rows) != 3 {
		t.Fatalf("checker loaded %d rows, want 3", len(loaded.Rows))
	}
	for i, r := range loaded.Rows {
		if r.Checked {
			t.Errorf("row %d checked on load", i)
		}
	}

	doJSON(t, http.MethodPost, rbase+"/checker/check-all", nil, nil)
	doJSON(t, http.MethodPost, rbase+"/checker/load",
		map[string]string{"date_key": "2024-05-01", "student_search": "S001"}, &loaded)
	for i, r := range loaded.Rows {
		if !r.Checked {
			t.Errorf("row %d not checked after check-all", i)
		}
	}
}

func TestQuestionEndpoints(t *testing.T) {
	ts := newTestServer(t)

	// defaults when nothing saved
	var got struct {
		Questions []string `json:"questions"`
	}
	doJSON(t, http.MethodGet, ts.URL+"/questions?date_key=2099-01-01", nil, &got)
	if len(got.Questions) != 3 || got.Questions[0] != qna.DefaultQuestions[0] {
		t.Fatalf("fallback questions = %v", got.Questions)
	}

	doJSON(t, http.MethodPut, ts.URL+"/questions/2024-05-01",
		map[string]interface{}{"questions": []string{"only one"}}, nil)

	doJSON(t, http.MethodGet, ts.URL+"/questions?date_key=2024-05-01", nil, &got)
	if len(got.Questions) != 1 || got.Questions[0] != "only one" {
		t.Fatalf("saved questions = %v", got.Questions)
	}

	var dates struct {
		Dates []string `json:"dates"`
	}
	doJSON(t, http.MethodGet, ts.URL+"/questions-dates", nil, &dates)
	if len(dates.Dates) != 1 || dates.Dates[0] != "2024-05-01" {
		t.Fatalf("dates = %v", dates.Dates)
	}
}

func TestExportEndpoint(t *testing.T) {
	ts := newTestServer(t)

	doJSON(t, http.MethodPut, ts.URL+"/questions/2024-05-01",
		map[string]interface{}{"questions": []string{"q1"}}, nil)

	var created struct {
		SessionID string `json:"session_id"`
	}
	doJSON(t, http.MethodPost, ts.URL+"/sessions", nil, &created)
	base := ts.URL + "/sessions/" + created.SessionID
	doJSON(t, http.MethodPost, base+"/start", map[string]string{"student_id": "S001", "date_key": "2024-05-01"}, nil)
	doJSON(t, http.MethodPost, base+"/answer", map[string]string{"text": "a"}, nil)
	doJSON(t, http.MethodPost, base+"/preview", nil, nil)
	doJSON(t, http.MethodPost, base+"/submit", nil, nil)

	var rs struct {
		SessionID string `json:"session_id"`
	}
	doJSON(t, http.MethodPost, ts.URL+"/review-sessions", nil, &rs)
	rbase := ts.URL + "/review-sessions/" + rs.SessionID

	// export before load is a 400
	resp := doJSON(t, http.MethodGet, rbase+"/checker/export", nil, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("export before load: status %d, want 400", resp.StatusCode)
	}

	doJSON(t, http.MethodPost, rbase+"/checker/load",
		map[string]string{"date_key": "2024-05-01", "student_search": ""}, nil)

	resp = doJSON(t, http.MethodGet, rbase+"/checker/export?format=csv", nil, nil)
	if resp.StatusCode != 200 {
		t.Fatalf("csv export: status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/csv" {
		t.Errorf("content type = %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "answers_2024-05-01.csv") {
		t.Errorf("content disposition = %q", cd)
	}

	resp = doJSON(t, http.MethodGet, rbase+"/checker/export?format=xlsx", nil, nil)
	if resp.StatusCode != 200 {
		t.Fatalf("xlsx export: status %d", resp.StatusCode)
	}
}
