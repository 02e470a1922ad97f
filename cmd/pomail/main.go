package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"pomail/internal/config"
	"pomail/internal/connectors"
	gmailconnector "pomail/internal/connectors/gmail"
	imapconnector "pomail/internal/connectors/imap"
	"pomail/internal/extract"
	"pomail/internal/listener"
	"pomail/internal/logger"
	"pomail/internal/pipeline"
	"pomail/internal/server"
	"pomail/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)
	logger.Setup(cfg.LogLevel)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "serve":
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		must(server.New(cfg).Run(ctx))
	case "extract":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		body := fs.String("body", "", "email body text")
		file := fs.String("file", "", "path to a file holding the email body")
		received := fs.String("received", time.Now().UTC().Format(time.RFC3339), "received-date hint")
		_ = fs.Parse(os.Args[2:])

		text := *body
		if strings.TrimSpace(*file) != "" {
			blob, err := os.ReadFile(*file)
			must(err)
			text = string(blob)
		}
		if strings.TrimSpace(text) == "" {
			must(fmt.Errorf("--body or --file is required"))
		}

		resp := extract.Process(text, *received)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		must(enc.Encode(resp))
	case "mail:fetch":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		provider := fs.String("provider", "imap", "gmail|imap")
		label := fs.String("label", "INBOX", "mailbox/label")
		max := fs.Int("max", 50, "max messages")
		_ = fs.Parse(os.Args[2:])

		db := openDB(cfg)
		defer db.Close()
		conn, err := makeConnector(cfg, *provider)
		must(err)
		fetch := connectors.NewFetchService(db, cfg.RawMailDir, conn)
		result, err := fetch.FetchAndStore(*label, *max)
		must(err)
		fmt.Printf("mail fetch done provider=%s fetched=%d stored=%d\n", *provider, result.Fetched, result.Stored)
	case "mail:process":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		provider := fs.String("provider", "imap", "gmail|imap")
		messageID := fs.String("messageId", "", "specific message-id")
		batch := fs.Int("batch", 20, "batch size")
		_ = fs.Parse(os.Args[2:])

		db := openDB(cfg)
		defer db.Close()
		processor := pipeline.NewProcessingService(db, cfg)
		if strings.TrimSpace(*messageID) != "" {
			res, err := processor.ProcessByProviderMessageID(*provider, *messageID)
			must(err)
			fmt.Printf("processed email id=%d orders=%d\n", res.EmailID, res.Orders)
			return
		}
		processedEmails, processedOrders, err := processor.ProcessPending(*batch, *provider)
		must(err)
		fmt.Printf("processed pending emails=%d orders=%d\n", processedEmails, processedOrders)
	case "mail:listen":
		db := openDB(cfg)
		defer db.Close()
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		must(listener.NewService(db, cfg).Run(ctx))
	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		emailID := fs.Int("emailId", 0, "internal email id")
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		if *emailID == 0 || strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--emailId and --out are required"))
		}

		db := openDB(cfg)
		defer db.Close()
		rows, err := db.GetExportRows(*emailID)
		must(err)
		if len(rows) == 0 {
			must(fmt.Errorf("no export rows for emailId=%d", *emailID))
		}
		must(pipeline.ExportRowsToXLSX(rows, *out))
		fmt.Printf("exported %d rows to %s\n", len(rows), *out)
	default:
		usage()
		os.Exit(1)
	}
}

func openDB(cfg config.Config) *storage.DB {
	db, err := storage.Open(cfg.DBPath)
	must(err)
	return db
}

func makeConnector(cfg config.Config, provider string) (connectors.MailConnector, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "gmail":
		return gmailconnector.NewConnector(cfg)
	case "imap":
		return imapconnector.NewConnector(cfg)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: pomail <command> [flags]

commands:
  serve          start the HTTP API
  extract        run extraction on a body given inline or from a file
  mail:fetch     fetch new messages into the journal
  mail:process   extract orders from fetched messages
  mail:listen    run the fetch/process/export loop
  export:xlsx    export one email's orders to a spreadsheet`)
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
