package qna

import "errors"

var (
	ErrEmptyStudentID = errors.New("student id is required")
	ErrEmptyDateKey   = errors.New("date key is required")
	ErrLengthMismatch = errors.New("questions and answers differ in length")
)
