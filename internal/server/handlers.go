package server

import (
	"crypto/subtle"
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/mailbrief/mailbrief/internal/assistant"
	"github.com/mailbrief/mailbrief/internal/email"
	"github.com/mailbrief/mailbrief/internal/storage"
)

// handleTriggered runs the demo batch and mails the report. It is meant
// to be hit by an external scheduler carrying the shared secret.
func (s *Server) handleTriggered(c *fiber.Ctx) error {
	secret := c.Query("secret")
	if s.cfg.Report.CronSecret == "" ||
		subtle.ConstantTimeCompare([]byte(secret), []byte(s.cfg.Report.CronSecret)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	res, err := s.svc.Run(c.UserContext(), assistant.DemoEmails(), storage.TriggerCron, true)
	if err != nil {
		s.logger.Error().Err(err).Msg("Triggered run failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to process emails",
			"details": err.Error(),
		})
	}

	rep := res.Report
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Report inviato con successo",
		"summary": fiber.Map{
			"total":      rep.Summary.Total,
			"urgent":     len(rep.Summary.Urgent),
			"drafts":     len(rep.Summary.Drafts),
			"categories": rep.Summary.Categories,
		},
	})
}

// handleAnalyze builds a report for the posted email list and returns
// it in full. With ?send=true the rendered report is also mailed.
func (s *Server) handleAnalyze(c *fiber.Ctx) error {
	var req struct {
		Emails []email.Record `json:"emails"`
	}

	if err := json.Unmarshal(c.Body(), &req); err != nil || req.Emails == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request: emails array required",
		})
	}

	send := c.Query("send") == "true"

	res, err := s.svc.Run(c.UserContext(), req.Emails, storage.TriggerAPI, send)
	if err != nil {
		s.logger.Error().Err(err).Msg("Analyze run failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to analyze emails",
			"details": err.Error(),
		})
	}

	return c.JSON(res.Report)
}

// handleHistory lists recent report runs.
func (s *Server) handleHistory(c *fiber.Ctx) error {
	if s.store == nil {
		return c.JSON([]*storage.Run{})
	}

	limit := c.QueryInt("limit", 20)
	runs, err := s.store.ListRuns(c.UserContext(), limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list runs")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list reports"})
	}
	if runs == nil {
		runs = []*storage.Run{}
	}

	return c.JSON(runs)
}
