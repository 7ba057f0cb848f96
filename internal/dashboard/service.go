// Package dashboard joins the résumé list with per-résumé feedback into a
// read-only table. The join is all-or-nothing: one failed fetch leaves the
// view loading with no rows.
package dashboard

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"jobprep-web/internal/apiclient"
	"jobprep-web/internal/shared/metrics"
	"jobprep-web/internal/shared/telemetry"
	"jobprep-web/internal/viewstate"
	"jobprep-web/internal/web"
)

// Backend is the part of the API client the Dashboard view calls.
type Backend interface {
	ListResumes(ctx context.Context) ([]apiclient.Resume, error)
	GetFeedback(ctx context.Context, resumeID int) (apiclient.Feedback, error)
	GetDashboard(ctx context.Context, userID int) (apiclient.DashboardSummary, error)
}

// Row is one joined résumé and its feedback.
type Row struct {
	ID       int    `json:"id"`
	Original string `json:"original"`
	Edited   string `json:"edited"`
	Feedback string `json:"feedback"`
}

// State is the local state of one mounted Dashboard view.
type State struct {
	Loading bool                        `json:"loading"`
	Rows    []Row                       `json:"rows"`
	Summary *apiclient.DashboardSummary `json:"summary,omitempty"`
}

// Service loads and stores Dashboard instances.
type Service struct {
	Store  *viewstate.Store[State]
	API    Backend
	UserID int
}

// NewService constructs a Service.
func NewService(store *viewstate.Store[State], api Backend, userID int) *Service {
	return &Service{Store: store, API: api, UserID: userID}
}

// Mount builds a fresh instance. Every mount recomputes the table.
func (s *Service) Mount(ctx context.Context) (string, error) {
	state := s.Load(ctx)
	id, err := s.Store.Mount(ctx, state)
	if err != nil {
		return "", err
	}
	metrics.IncViewMount(web.ViewDashboard)
	return id, nil
}

// Get returns a mounted instance.
func (s *Service) Get(ctx context.Context, id string) (State, error) {
	return s.Store.Load(ctx, id)
}

// Load fetches the summary and the joined rows. A summary failure only
// hides the summary; a join failure keeps Loading set and Rows empty.
func (s *Service) Load(ctx context.Context) State {
	state := State{Loading: true, Rows: []Row{}}

	summary, err := s.API.GetDashboard(ctx, s.UserID)
	if err != nil {
		telemetry.Err("dashboard.summary_failed", err, map[string]any{"view": web.ViewDashboard, "user_id": s.UserID})
	} else {
		state.Summary = &summary
	}

	rows, err := s.join(ctx)
	if err != nil {
		telemetry.Err("dashboard.join_failed", err, map[string]any{"view": web.ViewDashboard})
		return state
	}
	state.Rows = rows
	state.Loading = false
	return state
}

func (s *Service) join(ctx context.Context) ([]Row, error) {
	list, err := s.API.ListResumes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}

	rows := make([]Row, len(list))
	g, gctx := errgroup.WithContext(ctx)
	for i, r := range list {
		g.Go(func() error {
			fb, err := s.API.GetFeedback(gctx, r.ID)
			if err != nil {
				return fmt.Errorf("feedback for resume %d: %w", r.ID, err)
			}
			rows[i] = Row{
				ID:       r.ID,
				Original: r.Content(),
				Edited:   fb.EditedText,
				Feedback: fb.Feedback,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}
