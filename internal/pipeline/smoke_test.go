package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"pomail/internal/config"
	"pomail/internal/storage"
)

const rawFixture = "From: buyer@example.com\r\n" +
	"To: orders@example.com\r\n" +
	"Subject: Purchase order\r\n" +
	"Date: Wed, 01 May 2024 10:00:00 +0000\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"Order for Pune branch, order to ABC-123.\r\n" +
	"Please supply TL-9900X - 10 pcs @ 1,200.\r\n"

func TestSmokeEmailToXLSX(t *testing.T) {
	tmp := t.TempDir()
	db, err := storage.Open(filepath.Join(tmp, "app.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	rawPath := filepath.Join(tmp, "fixture.eml")
	if err := os.WriteFile(rawPath, []byte(rawFixture), 0o644); err != nil {
		t.Fatal(err)
	}

	email, err := db.UpsertEmail("imap", "<fixture-1@example.com>", "Purchase order", "buyer@example.com", "2024-05-01T10:00:00Z", "hash", rawPath, "fetched")
	if err != nil {
		t.Fatal(err)
	}

	cfg, _ := config.Load()
	proc := NewProcessingService(db, cfg)
	res, err := proc.ProcessEmail(email)
	if err != nil {
		t.Fatal(err)
	}
	if res.Orders != 1 {
		t.Fatalf("orders=%d", res.Orders)
	}

	rows, err := db.GetExportRows(email.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows=%d", len(rows))
	}
	if rows[0].VendorPartNo != "TL-9900X" || rows[0].TotalAmount != 12000 {
		t.Fatalf("row=%+v", rows[0])
	}
	if rows[0].OrderDate == nil || *rows[0].OrderDate != "2024-05-01" {
		t.Fatalf("orderDate=%v", rows[0].OrderDate)
	}

	out := filepath.Join(tmp, "result.xlsx")
	if err := ExportRowsToXLSX(rows, out); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatal(err)
	}
}

func TestProcessEmailIdempotent(t *testing.T) {
	tmp := t.TempDir()
	db, err := storage.Open(filepath.Join(tmp, "app.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	rawPath := filepath.Join(tmp, "fixture.eml")
	if err := os.WriteFile(rawPath, []byte(rawFixture), 0o644); err != nil {
		t.Fatal(err)
	}
	email, err := db.UpsertEmail("imap", "<fixture-2@example.com>", "Purchase order", "buyer@example.com", "2024-05-01T10:00:00Z", "hash", rawPath, "fetched")
	if err != nil {
		t.Fatal(err)
	}

	cfg, _ := config.Load()
	proc := NewProcessingService(db, cfg)
	if _, err := proc.ProcessEmail(email); err != nil {
		t.Fatal(err)
	}
	// A second pass replaces the previous result instead of stacking rows.
	if _, err := proc.ProcessEmail(email); err != nil {
		t.Fatal(err)
	}

	rows, err := db.GetExportRows(email.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows=%d", len(rows))
	}
}
