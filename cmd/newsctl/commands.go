package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"news-verifier/services"
)

var (
	checkTitle string
	checkURL   string
	askTopic   string
	historyMax int
	pruneDays  int
)

var queryCmd = &cobra.Command{
	Use:   "query <topic>",
	Short: "Search a topic, verify the top results and summarize the trusted ones",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		e, err := setup(ctx)
		if err != nil {
			return err
		}
		defer e.logger.Sync()
		res, err := e.pipeline.SearchTopic(ctx, userPtr(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), res)
	},
}

var checkCmd = &cobra.Command{
	Use:   "check [text]",
	Short: "Verify a pasted article text and/or URL",
	Example: `  newsctl check "Scientists confirm water on Mars" --url https://bbc.com/news/science-1
  newsctl check --url https://example.com/story`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		if text == "" && checkURL == "" {
			return fmt.Errorf("either text or --url is required")
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		e, err := setup(ctx)
		if err != nil {
			return err
		}
		defer e.logger.Sync()
		res, err := e.pipeline.CheckSubmission(ctx, services.CheckInput{
			UserID: userPtr(),
			Title:  checkTitle,
			Text:   text,
			URL:    checkURL,
		})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), res)
	},
}

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a question from search results or the user's history",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		e, err := setup(ctx)
		if err != nil {
			return err
		}
		defer e.logger.Sync()
		res, err := e.pipeline.Ask(ctx, services.AskInput{
			UserID:   userPtr(),
			Question: strings.Join(args, " "),
			Topic:    askTopic,
		})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), res)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the most recent interactions of --user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if userID == 0 {
			return fmt.Errorf("--user is required")
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		e, err := setup(ctx)
		if err != nil {
			return err
		}
		defer e.logger.Sync()
		rows, err := e.pipeline.Recorder.Recent(ctx, userID, historyMax)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, row := range rows {
			fmt.Fprintf(out, "%d\t%s\t%s\t%-9s %.2f\t%s\n",
				row.ID, row.CreatedAt.Format(time.RFC3339), row.Type, row.Label, row.Confidence, row.Title)
		}
		return nil
	},
}

var intentCmd = &cobra.Command{
	Use:   "intent <message>",
	Short: "Show which flow a chat message would be routed to",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), services.ClassifyIntent(strings.Join(args, " ")))
	},
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete interactions older than --days",
	RunE: func(cmd *cobra.Command, args []string) error {
		if pruneDays <= 0 {
			return fmt.Errorf("--days must be positive")
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		e, err := setup(ctx)
		if err != nil {
			return err
		}
		defer e.logger.Sync()
		n, err := e.pipeline.Recorder.Prune(ctx, time.Now().AddDate(0, 0, -pruneDays))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %d interactions\n", n)
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkTitle, "title", "", "article title (default: first 70 characters of the text)")
	checkCmd.Flags().StringVar(&checkURL, "url", "", "article URL; its host is scored for reputation")
	askCmd.Flags().StringVar(&askTopic, "topic", "", "search this topic for context instead of using the history")
	historyCmd.Flags().IntVar(&historyMax, "limit", 10, "number of entries")
	pruneCmd.Flags().IntVar(&pruneDays, "days", 0, "retention in days")

	rootCmd.AddCommand(queryCmd, checkCmd, askCmd, historyCmd, intentCmd, pruneCmd)
}
