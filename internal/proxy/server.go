// Package proxy is the server half of the connect flow. It exchanges OAuth
// codes for grants and reads pages on the caller's behalf, keeping the Notion
// token in an HTTP-only cookie so it never reaches the client.
package proxy

import (
	"encoding/json"
	"io"
	"maps"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/longkey1/exnota/internal/exnota"
	"github.com/longkey1/exnota/internal/log"
	"github.com/longkey1/exnota/internal/notion"
	"github.com/longkey1/exnota/internal/notion/api"
	"github.com/longkey1/exnota/internal/proxyapi"
)

const (
	// cookieMaxAge keeps the session for a year
	cookieMaxAge = 365 * 24 * 60 * 60

	// untitled is used for shared pages whose title cannot be read
	untitled = "Untitled"

	searchPageSize = 100
)

// Config holds the proxy server settings
type Config struct {
	ClientID      string
	SecureCookies bool
}

// Server serves the proxy endpoints
type Server struct {
	notion notion.Client
	cfg    Config
	logger *log.Logger
}

// NewServer creates a proxy server backed by client
func NewServer(client notion.Client, cfg Config, logger *log.Logger) *Server {
	return &Server{
		notion: client,
		cfg:    cfg,
		logger: logger.Named("Proxy"),
	}
}

// Handler returns the HTTP handler serving every proxy endpoint plus
// /metrics and /healthz
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/"+proxyapi.PathGetNotionClientID, s.getClientID)
	r.Group(func(r chi.Router) {
		r.Use(requireAppVersion)
		r.Post("/"+proxyapi.PathGetToken, s.getToken)
		r.Post("/"+proxyapi.PathGetPages, s.getPages)
		r.Post("/"+proxyapi.PathGetPage, s.getPage)
	})

	return r
}

// requireAppVersion rejects requests without a client version header
func requireAppVersion(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(proxyapi.HeaderAppVersion) == "" {
			writeError(w, r, http.StatusBadRequest, proxyapi.ErrNoAppVersion)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) getClientID(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, proxyapi.GetClientIDResponse{ClientID: s.cfg.ClientID})
}

func (s *Server) getToken(w http.ResponseWriter, r *http.Request) {
	logger := s.requestLogger(r, "getToken")

	var req proxyapi.GetTokenRequest
	if code, ok := decodeBody(r, &req); !ok {
		logger.Warn("Rejected request body", map[string]any{"error": code})
		writeError(w, r, http.StatusBadRequest, code)
		return
	}
	if req.Code == "" {
		writeError(w, r, http.StatusBadRequest, proxyapi.ErrNoCode)
		return
	}
	if req.RedirectURL == "" {
		writeError(w, r, http.StatusBadRequest, proxyapi.ErrNoRedirectURL)
		return
	}

	start := time.Now()
	token, err := s.notion.ExchangeCode(r.Context(), req.Code, req.RedirectURL)
	NotionRequestDuration.WithLabelValues("exchangeCode").Observe(time.Since(start).Seconds())
	if err != nil {
		code, status := tokenErrorCode(err)
		logger.Error("Failed to exchange code", mergeFields(log.ErrorFields(err), map[string]any{"code": code}))
		writeError(w, r, status, code)
		return
	}

	s.setCookie(w, proxyapi.CookieToken, token.AccessToken)
	s.setCookie(w, proxyapi.CookieBotID, token.BotID)
	s.setCookie(w, proxyapi.CookieWorkspaceID, token.WorkspaceID)

	logger.Info("Issued session", map[string]any{
		"bot_id":       token.BotID,
		"workspace_id": token.WorkspaceID,
	})
	writeJSON(w, r, http.StatusOK, proxyapi.GetTokenResponse{TokenResponse: token.WithoutAccessToken()})
}

func (s *Server) getPages(w http.ResponseWriter, r *http.Request) {
	logger := s.requestLogger(r, "getPages")

	token, ok := sessionToken(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, proxyapi.ErrNoToken)
		return
	}

	start := time.Now()
	resp, err := s.notion.Search(r.Context(), token, &api.SearchOptions{PageSize: searchPageSize})
	NotionRequestDuration.WithLabelValues("search").Observe(time.Since(start).Seconds())
	if err != nil {
		code := notionErrorCode(err)
		logger.Error("Failed to search pages", mergeFields(log.ErrorFields(err), map[string]any{"code": code}))
		writeError(w, r, http.StatusBadRequest, code)
		return
	}

	if resp.HasMore {
		logger.Warn("More pages shared than returned", map[string]any{"has_more": true, "returned": len(resp.Results)})
	}

	pages := make([]exnota.Page, 0, len(resp.Results))
	for i := range resp.Results {
		p := &resp.Results[i]
		if !p.IsTopLevel() {
			continue
		}
		title, ok := p.Title()
		if !ok {
			continue
		}
		pages = append(pages, exnota.Page{ID: p.ID, Title: title, URL: p.URL})
	}

	logger.Debug("Listed pages", map[string]any{"count": len(pages)})
	writeJSON(w, r, http.StatusOK, proxyapi.GetPagesResponse{Pages: pages})
}

func (s *Server) getPage(w http.ResponseWriter, r *http.Request) {
	logger := s.requestLogger(r, "getPage")

	token, ok := sessionToken(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, proxyapi.ErrNoToken)
		return
	}

	var req proxyapi.GetPageRequest
	if code, ok := decodeBody(r, &req); !ok {
		logger.Warn("Rejected request body", map[string]any{"error": code})
		writeError(w, r, http.StatusBadRequest, code)
		return
	}
	if req.ID == "" {
		writeError(w, r, http.StatusBadRequest, proxyapi.ErrGetPageNoID)
		return
	}

	start := time.Now()
	page, err := s.notion.GetPage(r.Context(), token, req.ID)
	NotionRequestDuration.WithLabelValues("getPage").Observe(time.Since(start).Seconds())
	if err != nil {
		code := getPageErrorCode(err)
		logger.Error("Failed to get page", mergeFields(log.ErrorFields(err), map[string]any{"code": code, "page_id": req.ID}))
		writeError(w, r, http.StatusBadRequest, code)
		return
	}

	title, ok := page.Title()
	if !ok {
		logger.Warn("Page has no readable title", map[string]any{"page_id": page.ID})
		title = untitled
	}

	writeJSON(w, r, http.StatusOK, proxyapi.GetPageResponse{
		Page: exnota.Page{ID: page.ID, Title: title, URL: page.URL},
	})
}

// requestLogger tags the logger with the session identifiers the client
// carries so requests can be traced without the token
func (s *Server) requestLogger(r *http.Request, endpoint string) *log.Logger {
	fields := map[string]any{"request_id": middleware.GetReqID(r.Context())}
	if c, err := r.Cookie(proxyapi.CookieBotID); err == nil {
		fields["bot_id"] = c.Value
	}
	if c, err := r.Cookie(proxyapi.CookieWorkspaceID); err == nil {
		fields["workspace_id"] = c.Value
	}
	return s.logger.Named(endpoint).With(fields)
}

func (s *Server) setCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: true,
		Secure:   s.cfg.SecureCookies,
		SameSite: http.SameSiteStrictMode,
	})
}

func sessionToken(r *http.Request) (string, bool) {
	c, err := r.Cookie(proxyapi.CookieToken)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// decodeBody reads a JSON request body into v
func decodeBody(r *http.Request, v any) (proxyapi.ErrorCode, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) == 0 {
		return proxyapi.ErrNoMessageBody, false
	}
	if err := json.Unmarshal(body, v); err != nil {
		return proxyapi.ErrBodyNotJSON, false
	}
	return "", true
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	RequestsTotal.WithLabelValues(endpoint(r), outcomeOK).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code proxyapi.ErrorCode) {
	RequestsTotal.WithLabelValues(endpoint(r), string(code)).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(proxyapi.ErrorResponse{Error: code})
}

func endpoint(r *http.Request) string {
	if len(r.URL.Path) > 1 {
		return r.URL.Path[1:]
	}
	return r.URL.Path
}

func mergeFields(a, b map[string]any) map[string]any {
	out := make(map[string]any, len(a)+len(b))
	maps.Copy(out, a)
	maps.Copy(out, b)
	return out
}
