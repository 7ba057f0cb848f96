package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"jobprep-web/internal/apiclient"
)

func newQuestionsCmd(c *cli) *cobra.Command {
	var company, role string
	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Generate interview questions for a company and role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(company) == "" || strings.TrimSpace(role) == "" {
				return fmt.Errorf("--company and --role are required")
			}
			qs, err := c.client().GenerateQuestions(cmd.Context(), apiclient.QuestionsRequest{
				UserID:  c.userID,
				Company: company,
				Role:    role,
			})
			if err != nil {
				return fmt.Errorf("generate questions: %w", err)
			}
			return c.printJSON(qs)
		},
	}
	cmd.Flags().StringVar(&company, "company", "", "Company name")
	cmd.Flags().StringVar(&role, "role", "", "Role title")
	return cmd
}

func newAnswerCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "answer",
		Short: "Save and evaluate interview answers",
	}

	save := &cobra.Command{
		Use:   "save QUESTION_ID TEXT",
		Short: "Save an answer to a question",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qid, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid question id %q", args[0])
			}
			text := strings.TrimSpace(args[1])
			if text == "" {
				return fmt.Errorf("answer text is empty")
			}
			saved, err := c.client().SaveAnswer(cmd.Context(), apiclient.SaveAnswerRequest{QuestionID: qid, AnswerText: text})
			if err != nil {
				return fmt.Errorf("save answer: %w", err)
			}
			return c.printJSON(saved)
		},
	}

	evaluate := &cobra.Command{
		Use:   "evaluate ANSWER_ID TEXT",
		Short: "Evaluate a saved answer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			aid, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid answer id %q", args[0])
			}
			eval, err := c.client().EvaluateAnswer(cmd.Context(), aid, args[1])
			if err != nil {
				return fmt.Errorf("evaluate answer: %w", err)
			}
			return c.printJSON(eval)
		},
	}

	cmd.AddCommand(save, evaluate)
	return cmd
}

func newDashboardCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the user's progress summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			summary, err := c.client().GetDashboard(cmd.Context(), c.userID)
			if err != nil {
				return fmt.Errorf("dashboard: %w", err)
			}
			return c.printJSON(summary)
		},
	}
}
