package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mailbrief/mailbrief/internal/email"
	"github.com/mailbrief/mailbrief/internal/storage"
)

var (
	reportInput string
	reportSend  bool
	reportHTML  string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build a report from a JSON file of emails and print it",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		emails, err := readEmails(reportInput)
		if err != nil {
			return err
		}

		a, err := newApp(logger, false)
		if err != nil {
			return err
		}
		defer a.close()

		res, err := a.svc.Run(cmd.Context(), emails, storage.TriggerCLI, reportSend)
		if err != nil {
			return err
		}

		if reportHTML != "" {
			if err := os.WriteFile(reportHTML, []byte(res.HTML), 0o644); err != nil {
				return fmt.Errorf("write html: %w", err)
			}
			logger.Info().Str("path", reportHTML).Msg("Rendered report written")
		}

		out, err := json.MarshalIndent(res.Report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))

		return nil
	},
}

// readEmails accepts either a bare JSON array of email records or an
// object with an "emails" field, matching the HTTP entry point.
func readEmails(path string) ([]email.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []email.Record
	if err := json.Unmarshal(data, &records); err == nil {
		return records, nil
	}

	var wrapped struct {
		Emails []email.Record `json:"emails"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil || wrapped.Emails == nil {
		return nil, fmt.Errorf("%s: expected a JSON array of emails", path)
	}
	return wrapped.Emails, nil
}

func init() {
	reportCmd.Flags().StringVar(&reportInput, "input", "", "JSON file with the emails to analyze")
	reportCmd.Flags().BoolVar(&reportSend, "send", false, "also send the rendered report via the configured mail provider")
	reportCmd.Flags().StringVar(&reportHTML, "html", "", "write the rendered HTML report to this file")
	reportCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(reportCmd)
}
