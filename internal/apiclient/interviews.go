package apiclient

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"
)

// GenerateQuestions asks for interview questions: POST /interviews/questions.
// The response is normalized with NormalizeQuestions.
func (c *Client) GenerateQuestions(ctx context.Context, req QuestionsRequest) ([]Question, error) {
	const op = "generate_questions"
	resp, err := c.call(ctx, op, func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(req).Post("/interviews/questions")
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Body()) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyResponse)
	}
	return NormalizeQuestions(resp.Body()), nil
}

// SaveAnswer stores an answer: POST /interviews/answers.
func (c *Client) SaveAnswer(ctx context.Context, req SaveAnswerRequest) (SavedAnswer, error) {
	const op = "save_answer"
	resp, err := c.call(ctx, op, func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(req).Post("/interviews/answers")
	})
	if err != nil {
		return SavedAnswer{}, err
	}
	var out SavedAnswer
	if err := decode(op, resp, &out); err != nil {
		return SavedAnswer{}, err
	}
	return out, nil
}

// EvaluateAnswer scores a saved answer: POST /interviews/evaluate/{answer_id}.
func (c *Client) EvaluateAnswer(ctx context.Context, answerID int, answerText string) (Evaluation, error) {
	const op = "evaluate_answer"
	resp, err := c.call(ctx, op, func(r *resty.Request) (*resty.Response, error) {
		return r.
			SetPathParam("answer_id", strconv.Itoa(answerID)).
			SetBody(evaluateRequest{AnswerText: answerText}).
			Post("/interviews/evaluate/{answer_id}")
	})
	if err != nil {
		return Evaluation{}, err
	}
	var out Evaluation
	if err := decode(op, resp, &out); err != nil {
		return Evaluation{}, err
	}
	return out, nil
}
