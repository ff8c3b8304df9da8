package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mailbrief/mailbrief/internal/assistant"
	"github.com/mailbrief/mailbrief/internal/storage"
)

var demoSend bool

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the built-in sample batch and print the summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		a, err := newApp(logger, true)
		if err != nil {
			return err
		}
		defer a.close()

		res, err := a.svc.Run(cmd.Context(), assistant.DemoEmails(), storage.TriggerCLI, demoSend)
		if err != nil {
			return err
		}

		summary := map[string]any{
			"total":      res.Report.Summary.Total,
			"urgent":     len(res.Report.Summary.Urgent),
			"drafts":     len(res.Report.Summary.Drafts),
			"categories": res.Report.Summary.Categories,
			"sent":       res.Sent,
		}
		out, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))

		return nil
	},
}

func init() {
	demoCmd.Flags().BoolVar(&demoSend, "send", false, "send the rendered report via the configured mail provider")
	rootCmd.AddCommand(demoCmd)
}
