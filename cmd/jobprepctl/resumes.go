package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"jobprep-web/internal/apiclient"
	"jobprep-web/internal/extract"
)

func newResumesCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resumes",
		Short: "List, upload and review résumés",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List stored résumés",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resumes, err := c.client().ListResumes(cmd.Context())
			if err != nil {
				return fmt.Errorf("list résumés: %w", err)
			}
			return c.printJSON(resumes)
		},
	}

	var text, file string
	upload := &cobra.Command{
		Use:   "upload",
		Short: "Upload résumé text or a PDF/DOCX/TXT file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (text == "") == (file == "") {
				return fmt.Errorf("exactly one of --text or --file is required")
			}
			if file != "" {
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("read %s: %w", file, err)
				}
				text, err = extract.Text(cmd.Context(), data, "", filepath.Base(file))
				if err != nil {
					return fmt.Errorf("extract %s: %w", file, err)
				}
			}
			if strings.TrimSpace(text) == "" {
				return fmt.Errorf("résumé text is empty")
			}
			created, err := c.client().UploadResume(cmd.Context(), c.userID, text)
			if err != nil {
				return fmt.Errorf("upload résumé: %w", err)
			}
			return c.printJSON(created)
		},
	}
	upload.Flags().StringVar(&text, "text", "", "Résumé text")
	upload.Flags().StringVarP(&file, "file", "f", "", "Path to a résumé file")

	feedback := &cobra.Command{
		Use:   "feedback RESUME_ID",
		Short: "Request feedback for a stored résumé",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid résumé id %q", args[0])
			}
			fb, err := c.client().GetFeedback(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("feedback for résumé %d: %w", id, err)
			}
			return c.printJSON(fb)
		},
	}

	cmd.AddCommand(list, upload, feedback)
	return cmd
}

func newGenerateCmd(c *cli) *cobra.Command {
	var req apiclient.GenerateResumeRequest
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a résumé from candidate facts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if req.ExperienceYears < 0 {
				return fmt.Errorf("--years must not be negative")
			}
			out, err := c.client().GenerateResume(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("generate résumé: %w", err)
			}
			_, err = fmt.Fprintln(c.out, out.GeneratedText)
			return err
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "Candidate name")
	cmd.Flags().StringVar(&req.Role, "role", "", "Target role")
	cmd.Flags().StringVar(&req.Company, "company", "", "Target company")
	cmd.Flags().IntVar(&req.ExperienceYears, "years", 0, "Years of experience")
	cmd.Flags().StringVar(&req.ExperienceList, "experience", "", "Experience summary")
	for _, name := range []string{"name", "role", "years", "experience"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
