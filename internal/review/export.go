package review

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/classkit/qna-checker/internal/qna"
)

var exportHeader = []string{"id", "student_id", "date_key", "question_no", "question", "answer", "checked"}

// WriteCSV serializes the rows as CSV. Pure serialization, no store access.
func WriteCSV(w io.Writer, rows []qna.AnswerRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			strconv.FormatInt(r.ID, 10),
			r.StudentID,
			r.DateKey,
			strconv.Itoa(r.QuestionNo),
			r.Question,
			r.Answer,
			strconv.FormatBool(r.Checked),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX serializes the rows as a single-sheet spreadsheet.
func WriteXLSX(w io.Writer, rows []qna.AnswerRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	header := make([]interface{}, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, r := range rows {
		row := []interface{}{r.ID, r.StudentID, r.DateKey, r.QuestionNo, r.Question, r.Answer, r.Checked}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}
	return f.Write(w)
}

// ExportFilename names the download after the load's date filter.
func ExportFilename(dateKey, ext string) string {
	if dateKey == "" {
		dateKey = "all"
	}
	return "answers_" + dateKey + "." + ext
}
