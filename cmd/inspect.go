package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"webguard/internal/config"
	"webguard/internal/engine"
	"webguard/internal/inspector"
	"webguard/pkg/domain"
	"webguard/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// inspectCommand runs the page classifiers over a snapshot stored as JSON,
// without any backing store. Useful to tune keyword and shortener lists.
func inspectCommand(cfg *config.Config) *cobra.Command {
	defaults := domain.DefaultToggles()

	cmd := &cobra.Command{
		Use:   "inspect <snapshot.json>",
		Short: "Runs the page classifiers over a page snapshot file",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			data, err := os.ReadFile(args[0])
			if err != nil {
				logger.Fatal(ctx, "could not read snapshot", zap.String("path", args[0]), zap.Error(err))
			}

			var page domain.PageSnapshot
			if err := json.Unmarshal(data, &page); err != nil {
				logger.Fatal(ctx, "could not decode snapshot", zap.Error(err))
			}

			toggles := domain.FeatureToggles{}
			toggles.ContentFilterEnabled, _ = cmd.Flags().GetBool("content-filter")
			toggles.FormAnalysisEnabled, _ = cmd.Flags().GetBool("form-analysis")
			toggles.ShortenerAlertEnabled, _ = cmd.Flags().GetBool("shortener-alert")

			report := engine.New(inspector.NewOptions(cfg).Engine).InspectPage(page, toggles)

			out, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				logger.Fatal(ctx, "could not encode report", zap.Error(err))
			}

			fmt.Println(string(out)) //nolint: forbidigo
		},
	}

	cmd.Flags().Bool("content-filter", defaults.ContentFilterEnabled, "Classify content items")
	cmd.Flags().Bool("form-analysis", defaults.FormAnalysisEnabled, "Analyze forms for cross-domain credential submission")
	cmd.Flags().Bool("shortener-alert", defaults.ShortenerAlertEnabled, "Report links to URL shorteners")

	return cmd
}
