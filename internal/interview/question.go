package interview

import (
	"encoding/json"
	"fmt"

	"jobprep-web/internal/apiclient"
)

// Progress is the tagged answer state of a question.
// Unanswered -> Saved -> Evaluated; Evaluated can be re-entered.
type Progress interface {
	Tag() string
	isProgress()
}

// Unanswered means no answer has been saved yet.
type Unanswered struct{}

// Saved means the backend stored the answer under AnswerID.
type Saved struct {
	AnswerID int
}

// Evaluated means the saved answer has a score and critique.
type Evaluated struct {
	AnswerID   int
	Evaluation apiclient.Evaluation
}

func (Unanswered) Tag() string { return "unanswered" }
func (Saved) Tag() string      { return "saved" }
func (Evaluated) Tag() string  { return "evaluated" }

func (Unanswered) isProgress() {}
func (Saved) isProgress()      {}
func (Evaluated) isProgress()  {}

// Question is one generated interview question and its local answer.
type Question struct {
	ID         int
	Text       string
	UserAnswer string
	Progress   Progress
}

// NewQuestion starts a question in the Unanswered state.
func NewQuestion(q apiclient.Question) Question {
	return Question{ID: q.ID, Text: q.Text, Progress: Unanswered{}}
}

// AnswerSaved reports whether the answer reached the backend.
func (q Question) AnswerSaved() bool {
	_, ok := q.AnswerID()
	return ok
}

// AnswerID returns the saved answer ID when there is one.
func (q Question) AnswerID() (int, bool) {
	switch p := q.Progress.(type) {
	case Saved:
		return p.AnswerID, true
	case Evaluated:
		return p.AnswerID, true
	default:
		return 0, false
	}
}

// Evaluation returns the latest evaluation when there is one.
func (q Question) Evaluation() (apiclient.Evaluation, bool) {
	if p, ok := q.Progress.(Evaluated); ok {
		return p.Evaluation, true
	}
	return apiclient.Evaluation{}, false
}

func (q *Question) markSaved(answerID int) bool {
	if _, ok := q.Progress.(Unanswered); !ok && q.Progress != nil {
		return false
	}
	q.Progress = Saved{AnswerID: answerID}
	return true
}

func (q *Question) markEvaluated(ev apiclient.Evaluation) bool {
	answerID, ok := q.AnswerID()
	if !ok {
		return false
	}
	q.Progress = Evaluated{AnswerID: answerID, Evaluation: ev}
	return true
}

type questionJSON struct {
	ID         int                   `json:"id"`
	Text       string                `json:"text"`
	UserAnswer string                `json:"user_answer"`
	Status     string                `json:"status"`
	AnswerID   int                   `json:"answer_id,omitempty"`
	Evaluation *apiclient.Evaluation `json:"evaluation,omitempty"`
}

// MarshalJSON flattens the tagged progress for view-state storage.
func (q Question) MarshalJSON() ([]byte, error) {
	out := questionJSON{ID: q.ID, Text: q.Text, UserAnswer: q.UserAnswer, Status: Unanswered{}.Tag()}
	switch p := q.Progress.(type) {
	case Saved:
		out.Status = p.Tag()
		out.AnswerID = p.AnswerID
	case Evaluated:
		out.Status = p.Tag()
		out.AnswerID = p.AnswerID
		ev := p.Evaluation
		out.Evaluation = &ev
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores the tagged progress.
func (q *Question) UnmarshalJSON(data []byte) error {
	var in questionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	q.ID, q.Text, q.UserAnswer = in.ID, in.Text, in.UserAnswer
	switch in.Status {
	case "", Unanswered{}.Tag():
		q.Progress = Unanswered{}
	case Saved{}.Tag():
		q.Progress = Saved{AnswerID: in.AnswerID}
	case Evaluated{}.Tag():
		if in.Evaluation == nil {
			return fmt.Errorf("question %d: evaluated without evaluation", in.ID)
		}
		q.Progress = Evaluated{AnswerID: in.AnswerID, Evaluation: *in.Evaluation}
	default:
		return fmt.Errorf("question %d: unknown status %q", in.ID, in.Status)
	}
	return nil
}
