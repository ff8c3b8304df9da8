// Package assistant orchestrates one analysis run: build the report,
// optionally polish the drafts, render the HTML, record the run and
// deliver the result.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mailbrief/mailbrief/internal/config"
	"github.com/mailbrief/mailbrief/internal/delivery"
	"github.com/mailbrief/mailbrief/internal/email"
	"github.com/mailbrief/mailbrief/internal/metrics"
	"github.com/mailbrief/mailbrief/internal/report"
	"github.com/mailbrief/mailbrief/internal/storage"
)

// Service runs the report pipeline end to end.
type Service struct {
	cfg     *config.Config
	builder *report.Builder
	refiner *DraftRefiner
	sender  delivery.Sender
	store   *storage.Store
	logger  zerolog.Logger
}

// New creates a Service. Sender may be nil when no provider is
// configured; store may be nil to skip run history.
func New(cfg *config.Config, sender delivery.Sender, store *storage.Store, logger zerolog.Logger) *Service {
	s := &Service{
		cfg:     cfg,
		builder: report.NewBuilder(cfg.Report.Account, cfg.Report.SenderName),
		sender:  sender,
		store:   store,
		logger:  logger.With().Str("component", "assistant").Logger(),
	}

	if cfg.LLM.Enabled && cfg.LLM.APIKey != "" {
		s.refiner = NewDraftRefiner(&cfg.LLM, logger)
	}

	return s
}

// RunResult is the outcome of one analysis run.
type RunResult struct {
	Report *report.Report
	HTML   string
	Sent   bool
}

// Run builds a report for the batch, renders it and, when send is set,
// delivers the HTML to the configured mailbox. The run is recorded in
// the history store on a best-effort basis.
func (s *Service) Run(ctx context.Context, emails []email.Record, trigger string, send bool) (*RunResult, error) {
	start := time.Now()

	rep := s.builder.Build(emails)

	if s.refiner != nil {
		s.refiner.Refine(ctx, rep)
	}

	html, err := report.RenderHTML(rep)
	if err != nil {
		return nil, err
	}

	metrics.ReportsGenerated.WithLabelValues(trigger).Inc()
	metrics.EmailsProcessed.Add(float64(rep.Summary.Total))

	res := &RunResult{Report: rep, HTML: html}

	if send {
		if err := s.deliver(ctx, html); err != nil {
			metrics.DeliveryFailures.Inc()
			s.recordRun(ctx, rep, trigger, false)
			return res, err
		}
		res.Sent = true
	}

	s.recordRun(ctx, rep, trigger, res.Sent)

	s.logger.Info().
		Str("trigger", trigger).
		Int("total", rep.Summary.Total).
		Int("urgent", len(rep.Summary.Urgent)).
		Int("drafts", len(rep.Summary.Drafts)).
		Bool("sent", res.Sent).
		Dur("duration", time.Since(start)).
		Msg("Report run completed")

	return res, nil
}

// deliver sends the rendered report to the owner's mailbox.
func (s *Service) deliver(ctx context.Context, html string) error {
	if s.sender == nil {
		return delivery.ErrNoProvider
	}

	subject := fmt.Sprintf("📧 Email Assistant Report - %s", time.Now().Format("02/01/2006"))

	msg := &delivery.Message{
		From:     email.Address{Name: s.cfg.Mail.FromName, Address: s.cfg.Mail.FromAddress},
		To:       []email.Address{{Address: s.cfg.Mail.ToAddress}},
		Subject:  subject,
		HTMLBody: html,
	}

	if err := s.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("send report: %w", err)
	}

	return nil
}

// recordRun persists the run summary; failures are logged, never fatal.
func (s *Service) recordRun(ctx context.Context, rep *report.Report, trigger string, sent bool) {
	if s.store == nil {
		return
	}

	categories, _ := json.Marshal(rep.Summary.Categories)
	run := &storage.Run{
		ID:         uuid.NewString(),
		Trigger:    trigger,
		Account:    rep.Account,
		Total:      rep.Summary.Total,
		Urgent:     len(rep.Summary.Urgent),
		Drafts:     len(rep.Summary.Drafts),
		Categories: categories,
		Sent:       sent,
		CreatedAt:  time.Now(),
	}

	if err := s.store.SaveRun(ctx, run); err != nil {
		s.logger.Warn().Err(err).Str("run_id", run.ID).Msg("Failed to record run")
	}
}
