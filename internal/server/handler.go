package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"pomail/internal/extract"
)

// ProcessEmailRequest mirrors what the automation tool posts.
type ProcessEmailRequest struct {
	EmailBody         string `json:"email_body"`
	EmailReceivedDate string `json:"email_received_date"`
}

const processEmailSchemaJSON = `{
  "type": "object",
  "required": ["email_body", "email_received_date"],
  "properties": {
    "email_body": {"type": "string"},
    "email_received_date": {"type": "string"}
  }
}`

var processEmailSchema = jsonschema.MustCompileString("process-email.json", processEmailSchemaJSON)

func (s *Server) handleProcessEmail(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "read body", http.StatusBadRequest)
		return
	}

	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := processEmailSchema.Validate(raw); err != nil {
		s.log.Warn().Err(err).Msg("request failed schema validation")
		http.Error(w, "request does not match schema", http.StatusBadRequest)
		return
	}

	var req ProcessEmailRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	resp := extract.Process(req.EmailBody, req.EmailReceivedDate)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Error().Err(err).Msg("encode response")
	}
}
