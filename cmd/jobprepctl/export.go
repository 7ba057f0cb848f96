package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"jobprep-web/internal/apiclient"
	"jobprep-web/internal/export"
)

func newExportCmd(c *cli) *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:       "export docx|pdf",
		Short:     "Export the user's report and save it to disk",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(apiclient.FormatDocx), string(apiclient.FormatPDF)},
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := apiclient.ParseFormat(args[0])
			if err != nil {
				return err
			}
			api := c.client()
			ticket, err := api.RequestExport(cmd.Context(), c.userID, format)
			if err != nil {
				return fmt.Errorf("request %s export: %w", format, err)
			}
			file, err := api.DownloadExport(cmd.Context(), format, ticket.Filename)
			if err != nil {
				return fmt.Errorf("download %s: %w", ticket.Filename, err)
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", outDir, err)
			}
			path := filepath.Join(outDir, export.DownloadName(ticket.Filename, format))
			if err := os.WriteFile(path, file.Data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			_, err = fmt.Fprintln(c.out, path)
			return err
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "Directory to write the report into")
	return cmd
}
