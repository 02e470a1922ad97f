// Package extract turns free-form purchase-order emails into normalized
// order records. The pipeline is a pure function over strings: classify the
// layout, pull header fields, run the matching extractor, assemble and
// score. It holds no state between calls and never fails; an email with
// nothing recognizable yields an empty order list at low confidence.
package extract

import (
	"pomail/internal"
	"pomail/internal/util"
)

// Process runs the full pipeline for one email body and its received-date
// hint.
func Process(body, receivedDate string) internal.ExtractionResponse {
	branch := ExtractBranch(body)
	partRef := ExtractPartReference(body)
	format := DetectFormat(body)

	var records []internal.OrderRecord
	if format == internal.FormatStructured {
		// The date token only delimits blocks here; structured records
		// carry no order date.
		records = assembleRecords(ParseStructuredOrders(body), branch, partRef, nil)
	} else {
		orderDate := util.StringPtr(ResolveOrderDate(body, receivedDate))
		partial := ParseUnstructuredOrders(body)
		records = make([]internal.OrderRecord, 0, len(partial))
		for _, f := range partial {
			records = append(records, internal.OrderRecord{
				VendorPartNo: f.VendorPartNo,
				Quantity:     f.Quantity,
				UnitPrice:    f.UnitPrice,
				TotalAmount:  f.TotalAmount,
			})
		}
		records = assembleRecords(records, branch, partRef, orderDate)
	}

	return internal.ExtractionResponse{
		DetectedFormat: format,
		Orders:         records,
		Confidence:     scoreConfidence(records),
	}
}
