package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-hafriyat/pkg/content"
	"github.com/goliatone/go-hafriyat/pkg/effects"
)

const maxClientErrorBytes = 16 << 10

func sanitizeReport(r effects.ErrorReport) effects.ErrorReport {
	return effects.ErrorReport{
		Message: content.SanitizeText(r.Message),
		Source:  content.SanitizeText(r.Source),
		Line:    r.Line,
		Column:  r.Column,
		Stack:   content.SanitizeText(r.Stack),
	}
}

// handleClientError logs a browser error. Repeats of the same error within
// the error window are accepted but not logged again.
func (s *Server) handleClientError(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxClientErrorBytes)

	var report effects.ErrorReport
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "report too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "invalid report", http.StatusBadRequest)
		return
	}

	report = sanitizeReport(report)
	if strings.TrimSpace(report.Message) == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	if s.reports.Allow(report.Key()) {
		s.logger.Warn("client error",
			zap.String("message", report.Message),
			zap.String("source", report.Source),
			zap.Int("line", report.Line),
			zap.Int("column", report.Column),
			zap.String("stack", report.Stack),
			zap.String("remote_addr", r.RemoteAddr),
		)
	} else {
		s.logger.Debug("client error suppressed", zap.String("message", report.Message))
	}
	w.WriteHeader(http.StatusNoContent)
}
