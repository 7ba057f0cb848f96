// Package export runs the two-step report flow: ask the backend to build a
// report, download it by filename, and hand the bytes to the browser.
package export

import (
	"context"
	"errors"
	"strings"

	"jobprep-web/internal/apiclient"
	"jobprep-web/internal/shared/metrics"
	"jobprep-web/internal/shared/storage/object"
	"jobprep-web/internal/shared/telemetry"
	"jobprep-web/internal/shared/util"
	"jobprep-web/internal/viewstate"
	"jobprep-web/internal/web"
)

// ErrBusy is returned when an export is already running for the instance.
var ErrBusy = errors.New("export already in progress")

// Formats lists the export formats in button order.
var Formats = []apiclient.Format{apiclient.FormatDocx, apiclient.FormatPDF}

// Backend is the part of the API client the Export view calls.
type Backend interface {
	RequestExport(ctx context.Context, userID int, format apiclient.Format) (apiclient.ExportTicket, error)
	DownloadExport(ctx context.Context, format apiclient.Format, filename string) (apiclient.ExportFile, error)
}

// State is the local state of one mounted Export view.
type State struct {
	Loading  bool       `json:"loading"`
	LastFile string     `json:"last_file,omitempty"`
	Alert    *web.Alert `json:"alert,omitempty"`
}

// PageData is what export.html renders.
type PageData struct {
	Loading bool
	Formats []string
}

// PageData projects the state for rendering.
func (s State) PageData() PageData {
	formats := make([]string, 0, len(Formats))
	for _, f := range Formats {
		formats = append(formats, string(f))
	}
	return PageData{Loading: s.Loading, Formats: formats}
}

// Service runs exports for Export view instances.
type Service struct {
	Store  *viewstate.Store[State]
	API    Backend
	UserID int
	// Archive keeps a copy of each downloaded report when set.
	Archive object.Archive
	// SurfaceErrors shows failures as an alert instead of only logging them.
	SurfaceErrors bool
}

// NewService constructs a Service that reports errors as alerts.
func NewService(store *viewstate.Store[State], api Backend, userID int) *Service {
	return &Service{Store: store, API: api, UserID: userID, SurfaceErrors: true}
}

// Mount creates an idle Export instance.
func (s *Service) Mount(ctx context.Context) (string, error) {
	id, err := s.Store.Mount(ctx, State{})
	if err != nil {
		return "", err
	}
	metrics.IncViewMount(web.ViewExport)
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

// Export runs one export for the instance. Only one export runs per
// instance at a time; a second call while one is in flight gets ErrBusy.
func (s *Service) Export(ctx context.Context, id string, format apiclient.Format) (apiclient.ExportFile, error) {
	_, err := s.Store.Mutate(ctx, id, func(st *State) error {
		if st.Loading {
			return ErrBusy
		}
		st.Loading = true
		return nil
	})
	if err != nil {
		return apiclient.ExportFile{}, err
	}

	file, runErr := s.run(ctx, format)

	outcome := "ok"
	if runErr != nil {
		outcome = "error"
		telemetry.Err("export.failed", runErr, map[string]any{
			"view":        web.ViewExport,
			"instance_id": id,
			"format":      string(format),
		})
	}
	metrics.IncExport(string(format), outcome)

	_, err = s.Store.Mutate(context.WithoutCancel(ctx), id, func(st *State) error {
		st.Loading = false
		if runErr != nil {
			if s.SurfaceErrors {
				st.Alert = web.ErrorAlert(strings.ToUpper(string(format)) + " export failed.")
			}
			return nil
		}
		st.LastFile = file.Filename
		return nil
	})
	if runErr != nil {
		return apiclient.ExportFile{}, runErr
	}
	if err != nil {
		return apiclient.ExportFile{}, err
	}
	return file, nil
}

func (s *Service) run(ctx context.Context, format apiclient.Format) (apiclient.ExportFile, error) {
	ticket, err := s.API.RequestExport(ctx, s.UserID, format)
	if err != nil {
		return apiclient.ExportFile{}, err
	}
	file, err := s.API.DownloadExport(ctx, format, ticket.Filename)
	if err != nil {
		return apiclient.ExportFile{}, err
	}
	file.Filename = DownloadName(ticket.Filename, format)
	s.archive(ctx, file)
	return file, nil
}

func (s *Service) archive(ctx context.Context, file apiclient.ExportFile) {
	if s.Archive == nil {
		return
	}
	key, err := s.Archive.Put(ctx, s.UserID, file.Filename, file.ContentType, file.Data)
	if err != nil {
		telemetry.Warn("export.archive_failed", map[string]any{"error": err.Error(), "file_name": file.Filename})
		return
	}
	telemetry.Info("export.archived", map[string]any{"storage_key": key, "size_bytes": len(file.Data)})
}

// DownloadName is the attachment name for a backend filename.
func DownloadName(filename string, format apiclient.Format) string {
	clean, err := util.SanitizeFileName(filename)
	if err != nil {
		return "report." + string(format)
	}
	return clean
}
