package apiclient

import (
	"fmt"
	"strings"
)

// Resume is a stored résumé record as the backend lists it.
type Resume struct {
	ID           int    `json:"id"`
	UserID       int    `json:"user_id,omitempty"`
	Text         string `json:"text,omitempty"`
	OriginalText string `json:"original_text,omitempty"`
	EditedText   string `json:"edited_text,omitempty"`
	Feedback     string `json:"feedback,omitempty"`
}

// Content returns the submitted text, preferring "text" over "original_text".
func (r Resume) Content() string {
	if r.Text != "" {
		return r.Text
	}
	return r.OriginalText
}

// Feedback is the backend critique of a résumé plus its edited version.
type Feedback struct {
	EditedText string `json:"edited_text"`
	Feedback   string `json:"feedback"`
}

type uploadResumeRequest struct {
	UserID int    `json:"user_id"`
	Text   string `json:"text"`
}

// GenerateResumeRequest is the input of the résumé generator.
type GenerateResumeRequest struct {
	Company         string `json:"company,omitempty"`
	Name            string `json:"name"`
	Role            string `json:"role"`
	ExperienceYears int    `json:"experience_years"`
	ExperienceList  string `json:"experience_list"`
}

// GeneratedResume holds generator output. It is never stored client-side.
type GeneratedResume struct {
	GeneratedText string `json:"generated_text"`
}

// QuestionsRequest asks for interview questions for a company and role.
type QuestionsRequest struct {
	UserID  int    `json:"user_id"`
	Company string `json:"company"`
	Role    string `json:"role"`
}

// Question is one normalized interview question.
type Question struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// SaveAnswerRequest stores an answer for a question.
type SaveAnswerRequest struct {
	QuestionID int    `json:"question_id"`
	AnswerText string `json:"answer_text"`
}

// SavedAnswer is the stored answer; only ID is guaranteed.
type SavedAnswer struct {
	ID         int    `json:"id"`
	QuestionID int    `json:"question_id,omitempty"`
	AnswerText string `json:"answer_text,omitempty"`
}

type evaluateRequest struct {
	AnswerText string `json:"answer_text"`
}

// Evaluation is the backend score and critique of a saved answer.
type Evaluation struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// DashboardSummary is the per-user aggregate of GET /dashboard/{user_id}.
type DashboardSummary struct {
	UserID                int    `json:"user_id"`
	UserName              string `json:"user_name"`
	TotalResumes          int    `json:"total_resumes"`
	ReviewedResumes       int    `json:"reviewed_resumes"`
	TotalQuestions        int    `json:"total_questions"`
	TotalAnswers          int    `json:"total_answers"`
	TotalEvaluatedAnswers int    `json:"total_evaluated_answers"`
}

// Format is an export document type.
type Format string

const (
	FormatDocx Format = "docx"
	FormatPDF  Format = "pdf"
)

// ParseFormat accepts "docx" or "pdf" in any case.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case FormatDocx:
		return FormatDocx, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, raw)
	}
}

// ExportTicket names a report the backend generated.
type ExportTicket struct {
	Filename    string `json:"filename"`
	DownloadURL string `json:"download_url,omitempty"`
}

// ExportFile is a downloaded report.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
