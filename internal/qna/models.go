package qna

// AnswerRecord is one submitted answer row. The question text is a snapshot
// taken at submission time; later edits to the question set do not touch it.
type AnswerRecord struct {
	ID         int64  `json:"id"`
	StudentID  string `json:"student_id"`
	DateKey    string `json:"date_key"`
	QuestionNo int    `json:"question_no"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Checked    bool   `json:"checked"`
}

// AnswerEntry is one (question_no, question, answer) tuple of a submission
// batch, before it is persisted.
type AnswerEntry struct {
	QuestionNo int    `json:"question_no"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
}
