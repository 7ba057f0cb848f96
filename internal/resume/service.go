package resume

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"jobprep-web/internal/apiclient"
	"jobprep-web/internal/extract"
	"jobprep-web/internal/shared/metrics"
	"jobprep-web/internal/shared/telemetry"
	"jobprep-web/internal/viewstate"
	"jobprep-web/internal/web"
)

// Backend is the part of the API client the Resume view calls.
type Backend interface {
	UploadResume(ctx context.Context, userID int, text string) (apiclient.Resume, error)
	ListResumes(ctx context.Context) ([]apiclient.Resume, error)
	GetFeedback(ctx context.Context, resumeID int) (apiclient.Feedback, error)
	GenerateResume(ctx context.Context, req apiclient.GenerateResumeRequest) (apiclient.GeneratedResume, error)
}

// generateInput is the validated generator request.
type generateInput struct {
	Company    string `validate:"required"`
	Name       string `validate:"required"`
	Role       string `validate:"required"`
	Years      int    `validate:"gte=0"`
	Experience string `validate:"required"`
}

// Service runs Resume view actions against one view instance at a time.
type Service struct {
	Store    *viewstate.Store[State]
	API      Backend
	UserID   int
	validate *validator.Validate
}

// NewService constructs a Service.
func NewService(store *viewstate.Store[State], api Backend, userID int) *Service {
	return &Service{
		Store:    store,
		API:      api,
		UserID:   userID,
		validate: validator.New(),
	}
}

// Mount creates a fresh instance and fetches the résumé history.
func (s *Service) Mount(ctx context.Context) (string, error) {
	state := State{}
	if list, err := s.API.ListResumes(ctx); err != nil {
		s.fail("resume.list_failed", err, "", nil)
		state.Alert = web.ErrorAlert("Loading the resume list failed.")
	} else {
		state.Resumes = list
	}
	id, err := s.Store.Mount(ctx, state)
	if err != nil {
		return "", err
	}
	metrics.IncViewMount(web.ViewResume)
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

// Upload submits pasted résumé text. Blank text is ignored.
func (s *Service) Upload(ctx context.Context, id, text string) (State, error) {
	return s.Store.Mutate(ctx, id, func(st *State) error {
		st.UploadText = text
		if strings.TrimSpace(text) == "" {
			return nil
		}
		s.upload(ctx, id, st, text)
		return nil
	})
}

// UploadFile extracts text from a PDF, DOCX or plain-text file and uploads it.
func (s *Service) UploadFile(ctx context.Context, id string, data []byte, contentType, fileName string) (State, error) {
	return s.Store.Mutate(ctx, id, func(st *State) error {
		text, err := extract.Text(ctx, data, contentType, fileName)
		if err != nil {
			s.fail("resume.extract_failed", err, id, map[string]any{"file_name": fileName})
			st.Alert = web.ErrorAlert("Could not read text from " + fileName + ". Upload a PDF, DOCX or text file.")
			return nil
		}
		if strings.TrimSpace(text) == "" {
			st.Alert = web.ErrorAlert("No text found in " + fileName + ".")
			return nil
		}
		s.upload(ctx, id, st, text)
		return nil
	})
}

func (s *Service) upload(ctx context.Context, id string, st *State, text string) {
	if _, err := s.API.UploadResume(ctx, s.UserID, text); err != nil {
		s.fail("resume.upload_failed", err, id, nil)
		st.Alert = web.ErrorAlert("Resume upload failed.")
		return
	}
	st.UploadText = ""
	list, err := s.API.ListResumes(ctx)
	if err != nil {
		s.fail("resume.list_failed", err, id, nil)
		st.Alert = web.ErrorAlert("Loading the resume list failed.")
		return
	}
	st.Resumes = list
}

// ShowFeedback fetches feedback for one résumé into the shared pane.
func (s *Service) ShowFeedback(ctx context.Context, id string, resumeID int) (State, error) {
	return s.Store.Mutate(ctx, id, func(st *State) error {
		fb, err := s.API.GetFeedback(ctx, resumeID)
		if err != nil {
			s.fail("resume.feedback_failed", err, id, map[string]any{"resume_id": resumeID})
			st.Alert = web.ErrorAlert("Loading feedback failed.")
			return nil
		}
		st.Feedback = &fb
		st.FeedbackFor = resumeID
		return nil
	})
}

// Generate validates the generator form and asks the backend for a résumé.
func (s *Service) Generate(ctx context.Context, id string, form GenerateForm) (State, error) {
	return s.Store.Mutate(ctx, id, func(st *State) error {
		st.Form = form
		in, err := s.parseForm(form)
		if err != nil {
			st.Alert = web.ErrorAlert(err.Error())
			return nil
		}
		out, err := s.API.GenerateResume(ctx, apiclient.GenerateResumeRequest{
			Company:         in.Company,
			Name:            in.Name,
			Role:            in.Role,
			ExperienceYears: in.Years,
			ExperienceList:  in.Experience,
		})
		if err != nil {
			s.fail("resume.generate_failed", err, id, nil)
			st.Alert = web.ErrorAlert("Resume generation failed.")
			return nil
		}
		st.GeneratedText = out.GeneratedText
		return nil
	})
}

func (s *Service) parseForm(form GenerateForm) (generateInput, error) {
	if !CanGenerate(form) {
		return generateInput{}, inputError("Name, role, years and experience are required.")
	}
	years, err := strconv.Atoi(strings.TrimSpace(form.Years))
	if err != nil {
		return generateInput{}, inputError("Years of experience must be a whole number.")
	}
	in := generateInput{
		Company:    strings.TrimSpace(form.Company),
		Name:       strings.TrimSpace(form.Name),
		Role:       strings.TrimSpace(form.Role),
		Years:      years,
		Experience: strings.TrimSpace(form.Experience),
	}
	if err := s.validate.Struct(in); err != nil {
		return generateInput{}, inputError(describe(err))
	}
	return in, nil
}

func describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required."
	case "gte":
		return fe.Field() + " must not be negative."
	default:
		return fe.Field() + " is invalid."
	}
}

func (s *Service) fail(event string, err error, id string, fields map[string]any) {
	out := map[string]any{"view": web.ViewResume}
	if id != "" {
		out["instance_id"] = id
	}
	for k, v := range fields {
		out[k] = v
	}
	telemetry.Err(event, err, out)
}
