// Package mail flattens raw RFC 5322 messages into the plain text the
// extraction pipeline consumes.
package mail

import (
	"bytes"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/jhillyerd/enmime"
	pdf "github.com/ledongthuc/pdf"
)

type Message struct {
	Subject         string
	BodyText        string
	ReceivedAt      string
	AttachmentNames []string
}

// ParseRaw extracts the plain body of a raw message. HTML-only emails are
// flattened to text, and the text of PDF attachments is appended so orders
// quoted in an attached purchase order are visible to the pattern chain.
func ParseRaw(raw []byte) (Message, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return Message{}, err
	}

	body := env.Text
	if strings.TrimSpace(body) == "" && env.HTML != "" {
		body = htmlToText(env.HTML)
	}

	attachmentNames := make([]string, 0, len(env.Attachments))
	for _, att := range env.Attachments {
		filename := strings.TrimSpace(att.FileName)
		if filename == "" {
			filename = "attachment"
		}
		attachmentNames = append(attachmentNames, filename)

		if strings.HasSuffix(strings.ToLower(filename), ".pdf") {
			if text, err := pdfToText(att.Content); err == nil && text != "" {
				body = body + "\n" + text
			}
		}
	}

	return Message{
		Subject:         env.GetHeader("Subject"),
		BodyText:        body,
		ReceivedAt:      receivedAt(env.GetHeader("Date")),
		AttachmentNames: attachmentNames,
	}, nil
}

func htmlToText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	// Block-level nodes become lines so the per-line extractor still sees
	// one order per line.
	var lines []string
	doc.Find("p,div,li,tr,h1,h2,h3").Each(func(_ int, sel *goquery.Selection) {
		if sel.Children().Filter("p,div,li,tr").Length() > 0 {
			return
		}
		if text := strings.TrimSpace(sel.Text()); text != "" {
			lines = append(lines, text)
		}
	})
	if len(lines) == 0 {
		return strings.TrimSpace(doc.Text())
	}
	return strings.Join(lines, "\n")
}

func pdfToText(content []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String()), nil
}

func receivedAt(dateHeader string) string {
	if dateHeader != "" {
		layouts := []string{time.RFC1123Z, time.RFC1123, time.RFC822Z, time.RFC822, time.RFC850, time.ANSIC}
		for _, layout := range layouts {
			if parsed, err := time.Parse(layout, dateHeader); err == nil {
				return parsed.UTC().Format(time.RFC3339)
			}
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}
