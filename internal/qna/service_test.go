package qna

import (
	"context"
	"errors"
	"testing"
)

func TestQuestionSetServiceFallback(t *testing.T) {
	svc := NewQuestionSetService(NewInMemoryStore())
	ctx := context.Background()

	// blank date key falls back to the defaults
	qs, err := svc.Get(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(qs) != len(DefaultQuestions) {
		t.Fatalf("got %d questions, want %d", len(qs), len(DefaultQuestions))
	}
	for i := range DefaultQuestions {
		if qs[i] != DefaultQuestions[i] {
			t.Errorf("question %d = %q, want %q", i+1, qs[i], DefaultQuestions[i])
		}
	}

	// unsaved date key falls back too
	qs, err = svc.Get(ctx, "2099-01-01")
	if err != nil {
		t.Fatal(err)
	}
	if len(qs) != 3 || qs[0] != DefaultQuestions[0] {
		t.Errorf("unsaved date: got %v, want defaults", qs)
	}

	// a saved set wins over the defaults
	if err := svc.Save(ctx, "2024-05-01", []string{"What is a variable?", "Give an example.", "Any questions?"}); err != nil {
		t.Fatal(err)
	}
	qs, err = svc.Get(ctx, "2024-05-01")
	if err != nil {
		t.Fatal(err)
	}
	if len(qs) != 3 || qs[0] != "What is a variable?" {
		t.Errorf("saved date: got %v", qs)
	}
}

func TestQuestionSetServiceSaveValidation(t *testing.T) {
	svc := NewQuestionSetService(NewInMemoryStore())
	ctx := context.Background()

	if err := svc.Save(ctx, "   ", []string{"q"}); !errors.Is(err, ErrEmptyDateKey) {
		t.Fatalf("blank date key: got %v, want ErrEmptyDateKey", err)
	}

	// empty question texts are allowed, only trimmed
	if err := svc.Save(ctx, "2024-05-01", []string{"  q1  ", ""}); err != nil {
		t.Fatal(err)
	}
	qs, err := svc.Get(ctx, "2024-05-01")
	if err != nil {
		t.Fatal(err)
	}
	if len(qs) != 2 || qs[0] != "q1" || qs[1] != "" {
		t.Errorf("got %v, want [q1 \"\"]", qs)
	}
}

func TestAnswerServiceSubmit(t *testing.T) {
	store := NewInMemoryStore()
	svc := NewAnswerService(store)
	ctx := context.Background()

	qs := []string{"q1", "q2", "q3"}

	if err := svc.Submit(ctx, "  ", "2024-05-01", qs, []string{"x", "y", "z"}); !errors.Is(err, ErrEmptyStudentID) {
		t.Fatalf("blank student: got %v, want ErrEmptyStudentID", err)
	}
	if err := svc.Submit(ctx, "S001", "2024-05-01", qs, []string{"x", "y"}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("mismatch: got %v, want ErrLengthMismatch", err)
	}

	if err := svc.Submit(ctx, "S001", "2024-05-01", qs, []string{"x", "y", "z"}); err != nil {
		t.Fatal(err)
	}
	recs, err := svc.Search(ctx, SearchOpts{DateKey: "2024-05-01", StudentSubstring: "S001"})
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d records, want 3", len(recs))
	}
	for i, r := range recs {
		if r.QuestionNo != i+1 {
			t.Errorf("record %d question_no = %d, want %d", i, r.QuestionNo, i+1)
		}
		if r.Question != qs[i] {
			t.Errorf("record %d question = %q, want snapshot %q", i, r.Question, qs[i])
		}
		if r.Checked {
			t.Errorf("record %d checked on submit", i)
		}
	}

	// resubmission replaces, never appends
	if err := svc.Submit(ctx, "S001", "2024-05-01", qs, []string{"a2", "b2", "c2"}); err != nil {
		t.Fatal(err)
	}
	recs, _ = svc.Search(ctx, SearchOpts{DateKey: "2024-05-01", StudentSubstring: "S001"})
	if len(recs) != 3 {
		t.Fatalf("after resubmit: got %d records, want 3", len(recs))
	}
	if recs[0].Answer != "a2" {
		t.Errorf("after resubmit: answer = %q, want a2", recs[0].Answer)
	}
}

func TestAnswerServiceMarkChecked(t *testing.T) {
	svc := NewAnswerService(NewInMemoryStore())
	ctx := context.Background()

	if err := svc.Submit(ctx, "S001", "2024-05-01", []string{"q1", "q2"}, []string{"a", "b"}); err != nil {
		t.Fatal(err)
	}
	recs, _ := svc.Search(ctx, SearchOpts{})

	// marking nothing changes nothing
	if err := svc.MarkChecked(ctx, nil, true); err != nil {
		t.Fatal(err)
	}
	after, _ := svc.Search(ctx, SearchOpts{})
	for i := range after {
		if after[i].Checked {
			t.Fatalf("record %d checked after empty MarkChecked", i)
		}
	}

	if err := svc.MarkAllChecked(ctx, recs); err != nil {
		t.Fatal(err)
	}
	after, _ = svc.Search(ctx, SearchOpts{})
	for i := range after {
		if !after[i].Checked {
			t.Errorf("record %d not checked after MarkAllChecked", i)
		}
	}
}
