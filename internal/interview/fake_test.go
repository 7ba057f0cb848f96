package interview

import (
	"context"
	"errors"
	"sync"

	"jobprep-web/internal/apiclient"
)

type fakeBackend struct {
	mu sync.Mutex

	questions   []apiclient.Question
	nextAnswer  int
	evaluation  apiclient.Evaluation
	generateErr error
	saveErr     error
	evaluateErr error

	generateReqs []apiclient.QuestionsRequest
	saveReqs     []apiclient.SaveAnswerRequest
	evalAnswerID []int
	evalTexts    []string
}

func (f *fakeBackend) GenerateQuestions(ctx context.Context, req apiclient.QuestionsRequest) ([]apiclient.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generateReqs = append(f.generateReqs, req)
	if f.generateErr != nil {
		return nil, f.generateErr
	}
	return append([]apiclient.Question(nil), f.questions...), nil
}

func (f *fakeBackend) SaveAnswer(ctx context.Context, req apiclient.SaveAnswerRequest) (apiclient.SavedAnswer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saveReqs = append(f.saveReqs, req)
	if f.saveErr != nil {
		return apiclient.SavedAnswer{}, f.saveErr
	}
	f.nextAnswer++
	return apiclient.SavedAnswer{ID: 100 + f.nextAnswer}, nil
}

func (f *fakeBackend) EvaluateAnswer(ctx context.Context, answerID int, answerText string) (apiclient.Evaluation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.evalAnswerID = append(f.evalAnswerID, answerID)
	f.evalTexts = append(f.evalTexts, answerText)
	if f.evaluateErr != nil {
		return apiclient.Evaluation{}, f.evaluateErr
	}
	return f.evaluation, nil
}

func (f *fakeBackend) networkCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.generateReqs) + len(f.saveReqs) + len(f.evalAnswerID)
}

var errBackendDown = errors.New("backend down")
