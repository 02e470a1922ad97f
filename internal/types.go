package internal

type DetectedFormat string

const (
	FormatStructured   DetectedFormat = "STRUCTURED_FORMAT"
	FormatUnstructured DetectedFormat = "UNSTRUCTURED_FORMAT"
)

// OrderRecord is one extracted purchase-order line. Branch, PartReference
// and OrderDate are shared across all records of one email; MaterialValue
// only appears on the structured path.
type OrderRecord struct {
	OrderDate     *string `json:"OrderDate,omitempty"`
	Branch        *string `json:"Branch,omitempty"`
	PartReference *string `json:"PartReference,omitempty"`
	VendorPartNo  string  `json:"VendorPartNo"`
	Quantity      int     `json:"Quantity"`
	UnitPrice     int     `json:"UnitPrice"`
	TotalAmount   int     `json:"TotalAmount"`
	MaterialValue *int    `json:"MaterialValue,omitempty"`
}

// ExtractionResponse is the JSON shape returned to callers.
type ExtractionResponse struct {
	DetectedFormat DetectedFormat `json:"detected_format"`
	Orders         []OrderRecord  `json:"orders"`
	Confidence     float64        `json:"confidence"`
}

type EmailRow struct {
	ID         int
	Provider   string
	MessageID  string
	Subject    string
	Sender     string
	ReceivedAt string
	Hash       string
	Status     string
	RawRef     string
}

type FetchedMailMessage struct {
	Provider   string
	MessageID  string
	Subject    string
	From       string
	ReceivedAt string
	Raw        []byte
}

// OrderExportRow is the flattened row written to XLSX exports.
type OrderExportRow struct {
	LineNo         int
	DetectedFormat string
	OrderDate      *string
	Branch         *string
	PartReference  *string
	VendorPartNo   string
	Quantity       int
	UnitPrice      int
	TotalAmount    int
	MaterialValue  *int
	Confidence     float64
}
