package apiclient

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
)

// RequestExport asks the backend to build a report: GET /exporter/{user_id}/{format}.
func (c *Client) RequestExport(ctx context.Context, userID int, format Format) (ExportTicket, error) {
	op := "request_export_" + string(format)
	if _, err := ParseFormat(string(format)); err != nil {
		return ExportTicket{}, fmt.Errorf("%s: %w", op, err)
	}
	resp, err := c.call(ctx, op, func(r *resty.Request) (*resty.Response, error) {
		return r.
			SetPathParams(map[string]string{
				"user_id": strconv.Itoa(userID),
				"format":  string(format),
			}).
			Get("/exporter/{user_id}/{format}")
	})
	if err != nil {
		return ExportTicket{}, err
	}
	var out ExportTicket
	if err := decode(op, resp, &out); err != nil {
		return ExportTicket{}, err
	}
	if strings.TrimSpace(out.Filename) == "" {
		return ExportTicket{}, fmt.Errorf("%s: response has no filename", op)
	}
	return out, nil
}

// DownloadExport fetches a generated report: GET /exporter/download/{format}/{filename}.
func (c *Client) DownloadExport(ctx context.Context, format Format, filename string) (ExportFile, error) {
	op := "download_export_" + string(format)
	if _, err := ParseFormat(string(format)); err != nil {
		return ExportFile{}, fmt.Errorf("%s: %w", op, err)
	}
	resp, err := c.call(ctx, op, func(r *resty.Request) (*resty.Response, error) {
		return r.
			SetHeader("Accept", "*/*").
			SetPathParams(map[string]string{
				"format":   string(format),
				"filename": filename,
			}).
			Get("/exporter/download/{format}/{filename}")
	})
	if err != nil {
		return ExportFile{}, err
	}
	return ExportFile{
		Filename:    filename,
		ContentType: resp.Header().Get("Content-Type"),
		Data:        resp.Body(),
	}, nil
}

// RequestExportDocx is RequestExport fixed to DOCX.
func (c *Client) RequestExportDocx(ctx context.Context, userID int) (ExportTicket, error) {
	return c.RequestExport(ctx, userID, FormatDocx)
}

// RequestExportPdf is RequestExport fixed to PDF.
func (c *Client) RequestExportPdf(ctx context.Context, userID int) (ExportTicket, error) {
	return c.RequestExport(ctx, userID, FormatPDF)
}

// DownloadDocx is DownloadExport fixed to DOCX.
func (c *Client) DownloadDocx(ctx context.Context, filename string) (ExportFile, error) {
	return c.DownloadExport(ctx, FormatDocx, filename)
}

// DownloadPdf is DownloadExport fixed to PDF.
func (c *Client) DownloadPdf(ctx context.Context, filename string) (ExportFile, error) {
	return c.DownloadExport(ctx, FormatPDF, filename)
}
