package web

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"time"

	"school-platform/internal/domain"
	"school-platform/internal/infra/logging"
	"school-platform/internal/infra/metrics"
	"school-platform/internal/infra/redis"
)

type redeemRequest struct {
	Subject    string `json:"subject"`
	AccessCode string `json:"accessCode"`
}

type redeemResponse struct {
	ViewerURL string `json:"viewerUrl"`
	Title     string `json:"title"`
}

func (s *Server) redeemHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logging.With(ctx, s.log)

	if s.limiter != nil {
		ok, err := s.limiter.Allow(ctx, redis.RedeemKey(r.RemoteAddr), s.redeemLimit, time.Minute)
		if err != nil {
			l.Error().Err(err).Msg("redeem rate limiter unavailable")
		} else if !ok {
			writeError(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
	}

	var req redeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing subject or access code")
		return
	}
	if req.Subject == "" || req.AccessCode == "" {
		writeError(w, http.StatusBadRequest, "Missing subject or access code")
		return
	}

	viewerURL, title, err := s.viewerUC.Redeem(ctx, req.Subject, req.AccessCode)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			writeError(w, http.StatusBadRequest, "Missing subject or access code")
			return
		}
		// Resolver failures and unknown codes all surface the same way so the
		// endpoint cannot be used to enumerate valid codes.
		l.Warn().Err(err).Str("subject", req.Subject).Msg("redeem failed")
		writeError(w, http.StatusInternalServerError, "Redeem failed")
		return
	}

	metrics.IncTicketsIssued()
	l.Info().Str("subject", req.Subject).Msg("ticket issued")
	writeJSON(w, http.StatusOK, redeemResponse{ViewerURL: viewerURL, Title: title})
}

func (s *Server) proxyHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := logging.With(ctx, s.log)

	// Set on every response, including errors, so a framed error page cannot
	// be abused either.
	w.Header().Set("Content-Security-Policy", "frame-ancestors 'self'")
	w.Header().Set("X-Frame-Options", "SAMEORIGIN")

	ticket := r.URL.Query().Get("ticket")
	if ticket == "" {
		writeError(w, http.StatusBadRequest, "Missing ticket")
		return
	}

	start := time.Now()
	locator, err := s.ticketUC.Validate(ctx, ticket, time.Now())
	metrics.ObserveTicketValidation(time.Since(start))
	if err != nil {
		kind := validationKind(err)
		metrics.IncTicketValidation(kind)
		l.Warn().Str("kind", kind).Msg("ticket rejected")
		// One message for every failure kind; the split above feeds telemetry
		// only.
		writeError(w, http.StatusUnauthorized, "Invalid or expired ticket")
		return
	}

	metrics.IncTicketValidation("ok")
	http.Redirect(w, r, locator, http.StatusFound)
}

func validationKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrTamperedToken):
		return "tampered"
	case errors.Is(err, domain.ErrExpiredTicket):
		return "expired"
	case errors.Is(err, domain.ErrReplayedTicket):
		return "replayed"
	case errors.Is(err, domain.ErrMalformedToken):
		return "malformed"
	default:
		return "error"
	}
}

var viewerPage = template.Must(template.New("viewer").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width,initial-scale=1" />
<title>{{.Title}}</title>
<style>
html,body{margin:0;height:100%;font-family:system-ui,Arial,sans-serif;}
header{padding:12px 16px;border-bottom:1px solid #ddd;}
iframe{display:block;width:100%;height:calc(100% - 49px);border:0;}
</style>
</head>
<body>
<header>{{.Title}}</header>
<iframe sandbox="allow-scripts allow-same-origin" src="/proxy?ticket={{.Ticket}}"></iframe>
</body>
</html>`))

func (s *Server) viewerHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ticket := q.Get("ticket")
	if ticket == "" {
		writeError(w, http.StatusBadRequest, "Missing ticket")
		return
	}
	title := q.Get("title")
	if title == "" {
		title = "Viewer"
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = viewerPage.Execute(w, struct {
		Title  string
		Ticket string
	}{Title: title, Ticket: ticket})
}
