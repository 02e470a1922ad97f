package extract

import (
	"strings"

	"pomail/internal"
)

// structuredMarker flags the fixed tabular layout some branches send. The
// check is a literal, case-sensitive presence test.
const structuredMarker = "Material value"

func DetectFormat(body string) internal.DetectedFormat {
	if strings.Contains(body, structuredMarker) {
		return internal.FormatStructured
	}
	return internal.FormatUnstructured
}
