package obs

import "testing"

func TestCanonicalPath(t *testing.T) {
	cases := map[string]string{
		"":                          "/",
		"/metrics":                  "/metrics",
		"/v1/jobs/abc":              "/v1/jobs/:id",
		"/v1/jobs/abc/assign":       "/v1/jobs/:id/assign",
		"/v1/jobs/abc/extra/deep":   "/v1/jobs/abc/extra/deep",
		"/v1/invoices":              "/v1/invoices",
		"/v1/invoices/77?expand=tx": "/v1/invoices/:id",
		"/healthz":                  "/healthz",
	}
	for input, expected := range cases {
		if got := CanonicalPath(input); got != expected {
			t.Fatalf("CanonicalPath(%q)=%q, want %q", input, got, expected)
		}
	}
}
