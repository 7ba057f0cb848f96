package interview

import (
	"context"
	"strings"

	"jobprep-web/internal/apiclient"
	"jobprep-web/internal/shared/metrics"
	"jobprep-web/internal/shared/telemetry"
	"jobprep-web/internal/viewstate"
	"jobprep-web/internal/web"
)

// Backend is the part of the API client the Interview view calls.
type Backend interface {
	GenerateQuestions(ctx context.Context, req apiclient.QuestionsRequest) ([]apiclient.Question, error)
	SaveAnswer(ctx context.Context, req apiclient.SaveAnswerRequest) (apiclient.SavedAnswer, error)
	EvaluateAnswer(ctx context.Context, answerID int, answerText string) (apiclient.Evaluation, error)
}

// Service runs Interview view actions.
type Service struct {
	Store  *viewstate.Store[State]
	API    Backend
	UserID int
}

// NewService constructs a Service.
func NewService(store *viewstate.Store[State], api Backend, userID int) *Service {
	return &Service{Store: store, API: api, UserID: userID}
}

// Mount creates an empty Interview instance.
func (s *Service) Mount(ctx context.Context) (string, error) {
	id, err := s.Store.Mount(ctx, State{Questions: []Question{}})
	if err != nil {
		return "", err
	}
	metrics.IncViewMount(web.ViewInterview)
	return id, nil
}

// Render returns the state to show and clears the one-shot alert.
func (s *Service) Render(ctx context.Context, id string) (State, error) {
	var shown State
	_, err := s.Store.Mutate(ctx, id, func(st *State) error {
		shown = *st
		st.Alert = nil
		return nil
	})
	return shown, err
}

// Generate replaces the question list with a freshly generated one.
// Both company and role must be non-blank.
func (s *Service) Generate(ctx context.Context, id, company, role string) (State, error) {
	return s.Store.Mutate(ctx, id, func(st *State) error {
		st.Company, st.Role = company, role
		if strings.TrimSpace(company) == "" || strings.TrimSpace(role) == "" {
			st.Alert = web.ErrorAlert(msgNeedCompanyRole)
			return nil
		}
		qs, err := s.API.GenerateQuestions(ctx, apiclient.QuestionsRequest{
			UserID:  s.UserID,
			Company: company,
			Role:    role,
		})
		if err != nil {
			s.fail("interview.generate_failed", err, id, nil)
			st.Alert = web.ErrorAlert(msgGenerateFailed)
			return nil
		}
		st.Questions = make([]Question, 0, len(qs))
		for _, q := range qs {
			st.Questions = append(st.Questions, NewQuestion(q))
		}
		return nil
	})
}

// SetAnswer edits the local answer text of a question.
func (s *Service) SetAnswer(ctx context.Context, id string, index int, text string) (State, error) {
	return s.Store.Mutate(ctx, id, func(st *State) error {
		q, err := questionAt(st, index)
		if err != nil {
			return err
		}
		q.UserAnswer = text
		return nil
	})
}

// Save records text as the answer and stores it on the backend. A question
// is saved at most once; later saves are no-ops.
func (s *Service) Save(ctx context.Context, id string, index int, text string) (State, error) {
	return s.Store.Mutate(ctx, id, func(st *State) error {
		q, err := questionAt(st, index)
		if err != nil {
			return err
		}
		q.UserAnswer = text
		if q.AnswerSaved() {
			return nil
		}
		trimmed := strings.TrimSpace(q.UserAnswer)
		if trimmed == "" {
			st.Alert = web.ErrorAlert(msgNeedAnswer)
			return nil
		}
		saved, err := s.API.SaveAnswer(ctx, apiclient.SaveAnswerRequest{QuestionID: q.ID, AnswerText: trimmed})
		if err != nil {
			s.fail("interview.save_failed", err, id, map[string]any{"question_id": q.ID})
			st.Alert = web.ErrorAlert(msgSaveFailed)
			return nil
		}
		q.markSaved(saved.ID)
		return nil
	})
}

// Evaluate records text as the answer and asks the backend to score the
// saved answer. Each success overwrites the previous evaluation.
func (s *Service) Evaluate(ctx context.Context, id string, index int, text string) (State, error) {
	return s.Store.Mutate(ctx, id, func(st *State) error {
		q, err := questionAt(st, index)
		if err != nil {
			return err
		}
		q.UserAnswer = text
		answerID, ok := q.AnswerID()
		if !ok {
			st.Alert = web.ErrorAlert(msgNeedSave)
			return nil
		}
		ev, err := s.API.EvaluateAnswer(ctx, answerID, q.UserAnswer)
		if err != nil {
			s.fail("interview.evaluate_failed", err, id, map[string]any{"answer_id": answerID})
			st.Alert = web.ErrorAlert(msgEvaluateFailed)
			return nil
		}
		q.markEvaluated(ev)
		return nil
	})
}

func questionAt(st *State, index int) (*Question, error) {
	if index < 0 || index >= len(st.Questions) {
		return nil, ErrQuestionNotFound
	}
	return &st.Questions[index], nil
}

func (s *Service) fail(event string, err error, id string, fields map[string]any) {
	out := map[string]any{"view": web.ViewInterview, "instance_id": id}
	for k, v := range fields {
		out[k] = v
	}
	telemetry.Err(event, err, out)
}
