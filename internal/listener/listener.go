package listener

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"pomail/internal/config"
	"pomail/internal/connectors"
	gmailconnector "pomail/internal/connectors/gmail"
	imapconnector "pomail/internal/connectors/imap"
	"pomail/internal/logger"
	"pomail/internal/pipeline"
	"pomail/internal/storage"
)

type Service struct {
	db  *storage.DB
	cfg config.Config
	log zerolog.Logger
}

func NewService(db *storage.DB, cfg config.Config) *Service {
	return &Service{db: db, cfg: cfg, log: logger.WithComponent("listener")}
}

func (s *Service) Run(ctx context.Context) error {
	for {
		if err := s.runCycle(); err != nil {
			s.log.Error().Err(err).Msg("listener cycle failed")
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Duration(s.cfg.ListenerIntervalSec) * time.Second):
		}
	}
}

func (s *Service) runCycle() error {
	provider := strings.ToLower(strings.TrimSpace(s.cfg.ListenerProvider))
	mailConnector, err := s.makeConnector(provider)
	if err != nil {
		return err
	}

	fetchService := connectors.NewFetchService(s.db, s.cfg.RawMailDir, mailConnector)
	fetchResult, err := fetchService.FetchAndStore(s.cfg.ListenerLabel, s.cfg.ListenerFetchMax)
	if err != nil {
		return err
	}

	processor := pipeline.NewProcessingService(s.db, s.cfg)
	processedEmails, processedOrders, err := processor.ProcessPending(s.cfg.ListenerProcessBatch, provider)
	if err != nil {
		return err
	}

	if s.cfg.ListenerAutoExport {
		if err := s.exportProcessed(provider); err != nil {
			return err
		}
	}

	s.log.Info().
		Str("provider", provider).
		Int("fetched", fetchResult.Fetched).
		Int("stored", fetchResult.Stored).
		Int("processed", processedEmails).
		Int("orders", processedOrders).
		Msg("listener cycle done")
	return nil
}

func (s *Service) exportProcessed(provider string) error {
	emails, err := s.db.ListEmailsByStatus("processed", 200)
	if err != nil {
		return err
	}

	for _, email := range emails {
		if email.Provider != provider {
			continue
		}
		rows, err := s.db.GetExportRows(email.ID)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			_ = s.db.UpdateEmailStatus(email.ID, "exported")
			continue
		}
		filename := fmt.Sprintf("%d_%s.xlsx", email.ID, sanitizeMessageID(email.MessageID))
		outputPath := filepath.Join(s.cfg.OutputDir, "listener", filename)
		if err := pipeline.ExportRowsToXLSX(rows, outputPath); err != nil {
			return err
		}
		_ = s.db.UpdateEmailStatus(email.ID, "exported")
	}
	return nil
}

func (s *Service) makeConnector(provider string) (connectors.MailConnector, error) {
	switch provider {
	case "gmail":
		return gmailconnector.NewConnector(s.cfg)
	case "imap":
		return imapconnector.NewConnector(s.cfg)
	default:
		return nil, fmt.Errorf("unsupported listener provider: %s", provider)
	}
}

func sanitizeMessageID(input string) string {
	repl := strings.NewReplacer("<", "_", ">", "_", ":", "_", "/", "_", "\\", "_", "|", "_", "?", "_", "*", "_", " ", "_")
	out := repl.Replace(input)
	if len(out) > 120 {
		out = out[:120]
	}
	return out
}
