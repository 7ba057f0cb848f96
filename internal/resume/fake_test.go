package resume

import (
	"context"
	"errors"
	"sync"

	"jobprep-web/internal/apiclient"
)

// fakeBackend is an in-memory stand-in for the résumé endpoints.
type fakeBackend struct {
	mu          sync.Mutex
	resumes     []apiclient.Resume
	feedback    map[int]apiclient.Feedback
	generated   string
	uploadErr   error
	listErr     error
	feedbackErr error
	generateErr error

	uploads      []string
	generateReqs []apiclient.GenerateResumeRequest
	calls        int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{feedback: map[int]apiclient.Feedback{}}
}

func (f *fakeBackend) UploadResume(ctx context.Context, userID int, text string) (apiclient.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.uploadErr != nil {
		return apiclient.Resume{}, f.uploadErr
	}
	rec := apiclient.Resume{ID: len(f.resumes) + 1, UserID: userID, OriginalText: text}
	f.resumes = append(f.resumes, rec)
	f.uploads = append(f.uploads, text)
	return rec, nil
}

func (f *fakeBackend) ListResumes(ctx context.Context) ([]apiclient.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]apiclient.Resume, len(f.resumes))
	copy(out, f.resumes)
	return out, nil
}

func (f *fakeBackend) GetFeedback(ctx context.Context, resumeID int) (apiclient.Feedback, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.feedbackErr != nil {
		return apiclient.Feedback{}, f.feedbackErr
	}
	fb, ok := f.feedback[resumeID]
	if !ok {
		return apiclient.Feedback{}, &apiclient.APIError{Op: "get_feedback", Status: 404, Detail: "Resume not found"}
	}
	return fb, nil
}

func (f *fakeBackend) GenerateResume(ctx context.Context, req apiclient.GenerateResumeRequest) (apiclient.GeneratedResume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.generateReqs = append(f.generateReqs, req)
	if f.generateErr != nil {
		return apiclient.GeneratedResume{}, f.generateErr
	}
	return apiclient.GeneratedResume{GeneratedText: f.generated}, nil
}

func (f *fakeBackend) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

var errBackendDown = errors.New("backend down")
