package httpapi

import (
	"encoding/json"
	"net/http"
)

// Machine-readable error codes; clients branch on these.
const (
	codeAuthRequired = "AUTH_REQUIRED"
	codeTokenExpired = "TOKEN_EXPIRED"
	codeOrgMissing   = "ORG_CONTEXT_MISSING"
	codeTenantDenied = "TENANT_ACCESS_DENIED"
	codeRBACDenied   = "RBAC_DENIED"
	codeInternal     = "INTERNAL_ERROR"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, detail string) {
	writeJSON(w, status, map[string]any{
		"code":   code,
		"detail": detail,
	})
}
