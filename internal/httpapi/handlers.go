package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"fieldops.dev/internal/auth"
	"fieldops.dev/internal/obs"
)

// ReadyProbe checks backing dependencies for /readyz.
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// API is the HTTP layer: operational endpoints plus the mounted business
// handlers, all behind the two-stage authorization pipeline.
type API struct {
	mux        *http.ServeMux
	readyProbe ReadyProbe
	version    string
	tenancy    *Tenancy
	routeAuthz *RouteAuthz
	maxBody    int64
}

func New(rp ReadyProbe, version string, tenancy *Tenancy, routeAuthz *RouteAuthz, maxBodyBytes int64) *API {
	a := &API{
		mux:        http.NewServeMux(),
		readyProbe: rp,
		version:    version,
		tenancy:    tenancy,
		routeAuthz: routeAuthz,
		maxBody:    maxBodyBytes,
	}

	a.mux.HandleFunc("/healthz", a.Healthz)
	a.mux.HandleFunc("/readyz", a.Ready)
	a.mux.HandleFunc("/v1/info", a.Info)
	a.mux.HandleFunc("/v1/me", a.Me)
	a.mux.Handle("/metrics", obs.Handler())

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	return a
}

// Handle mounts a business handler on the mux. The authorization pipeline
// wraps everything mounted here.
func (a *API) Handle(pattern string, h http.Handler) {
	a.mux.Handle(pattern, h)
}

// Handler returns the full middleware chain. Request id is assigned
// outermost so every log line and error body can carry it; the two
// authorization stages sit directly in front of the mux.
func (a *API) Handler() http.Handler {
	var h http.Handler = a.mux
	h = a.routeAuthz.Middleware(h)
	h = a.tenancy.Middleware(h)
	h = SecurityHeaders(h)
	h = CORS(h)
	h = MaxBodyBytes(h, a.maxBody)
	h = Logging(h)
	h = obs.Instrument(h)
	h = Recover(h)
	return RequestID(h)
}

// --- Handlers ---

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "fieldops-api",
		"version": a.version,
	})
}

func (a *API) Ready(w http.ResponseWriter, r *http.Request) {
	if err := a.readyProbe.Check(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
	})
}

func (a *API) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "fieldops-api",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": a.version,
	})
}

// Me returns the validated identity triple; the reference consumer of the
// request context accessor.
func (a *API) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, codeAuthRequired, "authentication required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user_id":         id.UserID,
		"organization_id": id.OrgID,
		"role":            id.Role,
	})
}
