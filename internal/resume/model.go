package resume

import (
	"errors"

	"jobprep-web/internal/apiclient"
	"jobprep-web/internal/web"
)

// ErrInvalidInput marks a rejected generator form.
var ErrInvalidInput = errors.New("invalid input")

// inputError carries a user-facing validation message.
type inputError string

func (e inputError) Error() string { return string(e) }
func (e inputError) Unwrap() error { return ErrInvalidInput }

// GenerateForm is the raw résumé generator form as typed.
type GenerateForm struct {
	Company    string `json:"company" form:"company"`
	Name       string `json:"name" form:"name"`
	Role       string `json:"role" form:"role"`
	Years      string `json:"years" form:"years"`
	Experience string `json:"experience" form:"experience"`
}

// State is the local state of one mounted Resume view.
type State struct {
	Resumes       []apiclient.Resume  `json:"resumes"`
	Feedback      *apiclient.Feedback `json:"feedback,omitempty"`
	FeedbackFor   int                 `json:"feedback_for,omitempty"`
	UploadText    string              `json:"upload_text,omitempty"`
	Form          GenerateForm        `json:"form"`
	GeneratedText string              `json:"generated_text,omitempty"`
	Alert         *web.Alert          `json:"alert,omitempty"`
}

// HistoryItem is one rendered row of the résumé history.
type HistoryItem struct {
	ID      int
	Preview string
}

// PageData is what resume.html renders.
type PageData struct {
	Resumes       []HistoryItem
	Feedback      *apiclient.Feedback
	FeedbackFor   int
	UploadText    string
	Form          GenerateForm
	CanGenerate   bool
	GeneratedText string
}

// PageData projects the state for rendering.
func (s State) PageData() PageData {
	items := make([]HistoryItem, 0, len(s.Resumes))
	for _, r := range s.Resumes {
		items = append(items, HistoryItem{ID: r.ID, Preview: Preview(r.Content())})
	}
	return PageData{
		Resumes:       items,
		Feedback:      s.Feedback,
		FeedbackFor:   s.FeedbackFor,
		UploadText:    s.UploadText,
		Form:          s.Form,
		CanGenerate:   CanGenerate(s.Form),
		GeneratedText: s.GeneratedText,
	}
}
