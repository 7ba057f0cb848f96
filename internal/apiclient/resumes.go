package apiclient

import (
	"context"
	"strconv"

	"github.com/go-resty/resty/v2"
)

// UploadResume stores a résumé: POST /resumes.
func (c *Client) UploadResume(ctx context.Context, userID int, text string) (Resume, error) {
	const op = "upload_resume"
	resp, err := c.call(ctx, op, func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(uploadResumeRequest{UserID: userID, Text: text}).Post("/resumes")
	})
	if err != nil {
		return Resume{}, err
	}
	var out Resume
	if err := decode(op, resp, &out); err != nil {
		return Resume{}, err
	}
	return out, nil
}

// ListResumes returns every stored résumé in backend order: GET /resumes.
func (c *Client) ListResumes(ctx context.Context) ([]Resume, error) {
	const op = "list_resumes"
	resp, err := c.call(ctx, op, func(r *resty.Request) (*resty.Response, error) {
		return r.Get("/resumes")
	})
	if err != nil {
		return nil, err
	}
	out := []Resume{}
	if err := decode(op, resp, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetFeedback asks the backend to critique a résumé: POST /resumes/{id}/feedback.
func (c *Client) GetFeedback(ctx context.Context, id int) (Feedback, error) {
	const op = "get_feedback"
	resp, err := c.call(ctx, op, func(r *resty.Request) (*resty.Response, error) {
		return r.
			SetPathParam("id", strconv.Itoa(id)).
			SetBody(struct{}{}).
			Post("/resumes/{id}/feedback")
	})
	if err != nil {
		return Feedback{}, err
	}
	var out Feedback
	if err := decode(op, resp, &out); err != nil {
		return Feedback{}, err
	}
	return out, nil
}

// GenerateResume produces a new résumé from candidate facts: POST /resumes/generate.
func (c *Client) GenerateResume(ctx context.Context, req GenerateResumeRequest) (GeneratedResume, error) {
	const op = "generate_resume"
	resp, err := c.call(ctx, op, func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(req).Post("/resumes/generate")
	})
	if err != nil {
		return GeneratedResume{}, err
	}
	var out GeneratedResume
	if err := decode(op, resp, &out); err != nil {
		return GeneratedResume{}, err
	}
	return out, nil
}
