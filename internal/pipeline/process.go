// Package pipeline orchestrates extraction over journaled emails: read the
// raw message, flatten it to text, run the core extractor and record the
// result.
package pipeline

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"pomail/internal"
	"pomail/internal/config"
	"pomail/internal/extract"
	"pomail/internal/logger"
	"pomail/internal/mail"
	"pomail/internal/storage"
)

type ProcessingService struct {
	db  *storage.DB
	cfg config.Config
	log zerolog.Logger
}

func NewProcessingService(db *storage.DB, cfg config.Config) *ProcessingService {
	return &ProcessingService{db: db, cfg: cfg, log: logger.WithComponent("pipeline")}
}

type ProcessResult struct {
	EmailID int
	Orders  int
}

func (s *ProcessingService) ProcessByProviderMessageID(provider, messageID string) (ProcessResult, error) {
	email, err := s.db.MustEmailByProviderMessageID(provider, messageID)
	if err != nil {
		return ProcessResult{}, err
	}
	return s.ProcessEmail(email)
}

func (s *ProcessingService) ProcessPending(limit int, provider string) (int, int, error) {
	pending, err := s.db.ListEmailsByStatus("fetched", limit)
	if err != nil {
		return 0, 0, err
	}
	processedEmails := 0
	processedOrders := 0
	for _, email := range pending {
		if provider != "" && email.Provider != provider {
			continue
		}
		res, err := s.ProcessEmail(email)
		if err != nil {
			return processedEmails, processedOrders, err
		}
		processedEmails++
		processedOrders += res.Orders
	}
	return processedEmails, processedOrders, nil
}

func (s *ProcessingService) ProcessEmail(email internal.EmailRow) (ProcessResult, error) {
	start := time.Now()
	raw, err := os.ReadFile(email.RawRef)
	if err != nil {
		return ProcessResult{}, err
	}

	msg, err := mail.ParseRaw(raw)
	if err != nil {
		return ProcessResult{}, err
	}

	received := firstNonEmpty(email.ReceivedAt, msg.ReceivedAt)
	resp := extract.Process(msg.BodyText, received)

	if err := s.db.ClearEmailExtraction(email.ID); err != nil {
		return ProcessResult{}, err
	}
	if _, err := s.db.InsertExtraction(email.ID, resp); err != nil {
		return ProcessResult{}, err
	}
	if err := s.db.UpdateEmailStatus(email.ID, "processed"); err != nil {
		return ProcessResult{}, err
	}

	_ = s.db.InsertRun(traceID(), email.ID,
		map[string]float64{"totalMs": float64(time.Since(start).Milliseconds())},
		map[string]int{"orders": len(resp.Orders)})

	s.log.Info().
		Int("emailId", email.ID).
		Str("format", string(resp.DetectedFormat)).
		Int("orders", len(resp.Orders)).
		Float64("confidence", resp.Confidence).
		Msg("email processed")

	return ProcessResult{EmailID: email.ID, Orders: len(resp.Orders)}, nil
}

func traceID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
