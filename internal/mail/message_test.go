package mail

import (
	"strings"
	"testing"
)

const rawPlainEmail = "From: buyer@example.com\r\n" +
	"To: sales@example.com\r\n" +
	"Subject: Purchase order\r\n" +
	"Date: Wed, 01 May 2024 10:00:00 +0000\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"Order for Pune branch, order to ABC-123.\r\n" +
	"TL-9900X - 10 pcs @ 1,200\r\n"

func TestParseRawPlain(t *testing.T) {
	msg, err := ParseRaw([]byte(rawPlainEmail))
	if err != nil {
		t.Fatal(err)
	}
	if msg.Subject != "Purchase order" {
		t.Fatalf("subject=%q", msg.Subject)
	}
	if !strings.Contains(msg.BodyText, "TL-9900X - 10 pcs @ 1,200") {
		t.Fatalf("body=%q", msg.BodyText)
	}
	if msg.ReceivedAt != "2024-05-01T10:00:00Z" {
		t.Fatalf("receivedAt=%q", msg.ReceivedAt)
	}
	if len(msg.AttachmentNames) != 0 {
		t.Fatalf("attachments=%v", msg.AttachmentNames)
	}
}

func TestHTMLToTextKeepsLineStructure(t *testing.T) {
	html := `<html><body><p>Order for Pune branch</p><div>TL-1 - 2 @ 300</div></body></html>`
	text := htmlToText(html)
	lines := strings.Split(text, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines=%d: %q", len(lines), text)
	}
	if lines[1] != "TL-1 - 2 @ 300" {
		t.Fatalf("line=%q", lines[1])
	}
}
