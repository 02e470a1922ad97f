package extract

import (
	"testing"

	"pomail/internal"
)

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		name string
		body string
		want internal.DetectedFormat
	}{
		{name: "marker present", body: "Summary\nMaterial value\n01-02-2024", want: internal.FormatStructured},
		{name: "marker absent", body: "please supply TL-1 – 2 @ 300", want: internal.FormatUnstructured},
		{name: "marker is case sensitive", body: "material value", want: internal.FormatUnstructured},
		{name: "empty body", body: "", want: internal.FormatUnstructured},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectFormat(tc.body); got != tc.want {
				t.Fatalf("got %s want %s", got, tc.want)
			}
		})
	}
}
