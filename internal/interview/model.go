package interview

import (
	"errors"

	"jobprep-web/internal/apiclient"
	"jobprep-web/internal/web"
)

// ErrQuestionNotFound is returned for a question index outside the list.
var ErrQuestionNotFound = errors.New("question not found")

// Alert texts shown for rejected or failed actions.
const (
	msgNeedCompanyRole = "Please enter both a company and a role."
	msgNeedAnswer      = "Please write an answer before saving."
	msgNeedSave        = "Save the answer before requesting an evaluation."
	msgGenerateFailed  = "Question generation failed."
	msgSaveFailed      = "Saving the answer failed."
	msgEvaluateFailed  = "Answer evaluation failed."
)

// State is the local state of one mounted Interview view.
type State struct {
	Company   string     `json:"company"`
	Role      string     `json:"role"`
	Questions []Question `json:"questions"`
	Alert     *web.Alert `json:"alert,omitempty"`
}

// QuestionView is one rendered question.
type QuestionView struct {
	Index      int
	ID         int
	Text       string
	UserAnswer string
	Saved      bool
	Evaluation *apiclient.Evaluation
}

// PageData is what interview.html renders.
type PageData struct {
	Company   string
	Role      string
	Questions []QuestionView
}

// PageData projects the state for rendering.
func (s State) PageData() PageData {
	out := PageData{Company: s.Company, Role: s.Role, Questions: make([]QuestionView, 0, len(s.Questions))}
	for i, q := range s.Questions {
		v := QuestionView{Index: i, ID: q.ID, Text: q.Text, UserAnswer: q.UserAnswer, Saved: q.AnswerSaved()}
		if ev, ok := q.Evaluation(); ok {
			v.Evaluation = &ev
		}
		out.Questions = append(out.Questions, v)
	}
	return out
}
