package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/partnerportal/internal/portal/metrics"
	"github.com/aussiebroadwan/partnerportal/internal/portal/service"
	"github.com/aussiebroadwan/partnerportal/internal/portal/store"
	"github.com/aussiebroadwan/partnerportal/pkg/httpx"
	"github.com/aussiebroadwan/partnerportal/pkg/jwtx"
	"github.com/aussiebroadwan/partnerportal/pkg/slogx"

	_ "github.com/aussiebroadwan/partnerportal/api/portal" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store   store.Store
	metrics *metrics.Metrics

	SessionService    *service.SessionService
	InvitationService *service.InvitationService
	MemberService     *service.MemberService
	AdminService      *service.AdminService
	MFAService        *service.MFAService
	BootstrapService  *service.BootstrapService
	AffiliateService  *service.AffiliateService

	// VisitorCookie names the cookie that carries the click visitor id.
	VisitorCookie string
	// SecureCookies sets the Secure attribute on the visitor cookie.
	SecureCookies bool
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	m *metrics.Metrics,
	logger *slog.Logger,
	allowedOrigins []string,
) *Router {
	r := &Router{
		Mux:           http.NewServeMux(),
		keys:          keys,
		verifier:      verifier,
		buildVersion:  buildVersion,
		startTime:     time.Now(),
		store:         st,
		metrics:       m,
		logger:        logger,
		VisitorCookie: "pp_visitor",
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(allowedOrigins),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSessions()
	r.registerAccount()
	r.registerInvitations()
	r.registerAdmins()
	r.registerMembers()
	r.registerAffiliates()
	r.registerSystem()
	r.registerBootstrap()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Partner Portal API
//	@version		0.1.0
//	@description	Back office and member portal API: invitations, approvals, sessions and affiliate analytics.
//	@description
//	@description				Session tokens are EdDSA signed JWTs and can be verified using the JWKS endpoint.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/partnerportal
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	// The metrics middleware reads the matched pattern, so it wraps the mux itself.
	httpx.Chain(r.metrics.Middleware(r.Mux), r.middlewares...).ServeHTTP(w, req)
}

// secured wraps h with session verification, the per request account
// check, the scope check and a per account rate limit. No scopes means any
// session is accepted.
func (r *Router) secured(h http.HandlerFunc, limit httpx.RateLimitConfig, scopes ...string) http.Handler {
	mws := []httpx.Middleware{
		httpx.AuthnMiddleware(r.verifier),
		RequireActiveAccount(r.SessionService),
	}
	if len(scopes) > 0 {
		mws = append(mws, httpx.RequireAnyScope(scopes...))
	}
	mws = append(mws, httpx.RateLimitByUser(limit))
	return httpx.Chain(h, mws...)
}

func (r *Router) registerSessions() {
	h := &SessionHandler{Sessions: r.SessionService}

	// Limited by IP plus the email in the body so one address cannot be
	// brute forced from many clients sharing an IP budget.
	r.Mux.Handle("POST /v1/sessions",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)
	r.Mux.Handle("DELETE /v1/sessions", r.secured(h.HandleLogout, httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/me", r.secured(h.HandleMe, httpx.LenientLimit))
}

func (r *Router) registerAccount() {
	admins := &AdminHandler{Admins: r.AdminService, Invitations: r.InvitationService}
	mfa := &MFAHandler{MFA: r.MFAService}

	r.Mux.Handle("POST /v1/me/password",
		r.secured(admins.HandleChangePassword, httpx.StrictLimit, service.ScopeAdminWrite))

	r.Mux.Handle("POST /v1/me/mfa/totp/enroll",
		r.secured(mfa.HandleEnroll, httpx.ModerateLimit, service.ScopeAdminWrite))
	// Strict: each call is a guess at a six digit code.
	r.Mux.Handle("POST /v1/me/mfa/totp/verify",
		r.secured(mfa.HandleVerify, httpx.StrictLimit, service.ScopeAdminWrite))
	r.Mux.Handle("DELETE /v1/me/mfa/totp",
		r.secured(mfa.HandleDisable, httpx.StrictLimit, service.ScopeAdminWrite))
}

func (r *Router) registerInvitations() {
	h := &InvitationHandler{Invitations: r.InvitationService, Admins: r.AdminService}

	r.Mux.Handle("GET /v1/invitations/{token}",
		httpx.Chain(http.HandlerFunc(h.HandleValidate),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/invitations/complete",
		httpx.Chain(http.HandlerFunc(h.HandleComplete),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /v1/admin/{kind}/{id}/invitation",
		r.secured(h.HandleRegenerate, httpx.ModerateLimit, service.ScopeAdminWrite))
	r.Mux.Handle("GET /v1/admin/admins/{id}/invitation",
		r.secured(h.HandleStatus, httpx.LenientLimit, service.ScopeAdminRead))
}

func (r *Router) registerAdmins() {
	h := &AdminHandler{Admins: r.AdminService, Invitations: r.InvitationService}

	r.Mux.Handle("POST /v1/admin/admins",
		r.secured(h.HandleInvite, httpx.ModerateLimit, service.ScopeAdminWrite))
	r.Mux.Handle("GET /v1/admin/admins",
		r.secured(h.HandleList, httpx.LenientLimit, service.ScopeAdminRead))
	r.Mux.Handle("GET /v1/admin/admins/{id}",
		r.secured(h.HandleGet, httpx.LenientLimit, service.ScopeAdminRead))
	r.Mux.Handle("POST /v1/admin/admins/{id}/active",
		r.secured(h.HandleSetActive, httpx.ModerateLimit, service.ScopeAdminWrite))
	r.Mux.Handle("DELETE /v1/admin/admins/{id}",
		r.secured(h.HandleDelete, httpx.ModerateLimit, service.ScopeAdminWrite))
}

func (r *Router) registerMembers() {
	h := &MemberHandler{Members: r.MemberService, Invitations: r.InvitationService}

	// Public self-registration.
	r.Mux.Handle("POST /v1/members/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /v1/admin/members",
		r.secured(h.HandleInvite, httpx.ModerateLimit, service.ScopeAdminWrite))
	r.Mux.Handle("GET /v1/admin/members",
		r.secured(h.HandleList, httpx.LenientLimit, service.ScopeAdminRead))
	r.Mux.Handle("GET /v1/admin/members/{id}",
		r.secured(h.HandleGet, httpx.LenientLimit, service.ScopeAdminRead))
	r.Mux.Handle("POST /v1/admin/members/approve-all",
		r.secured(h.HandleApproveAll, httpx.ModerateLimit, service.ScopeAdminWrite))
	r.Mux.Handle("POST /v1/admin/members/{id}/approve",
		r.secured(h.HandleApprove, httpx.ModerateLimit, service.ScopeAdminWrite))
	r.Mux.Handle("POST /v1/admin/members/{id}/active",
		r.secured(h.HandleSetActive, httpx.ModerateLimit, service.ScopeAdminWrite))
	r.Mux.Handle("DELETE /v1/admin/members/{id}",
		r.secured(h.HandleDelete, httpx.ModerateLimit, service.ScopeAdminWrite))
}

func (r *Router) registerAffiliates() {
	partners := &PartnerHandler{Affiliates: r.AffiliateService}
	tracking := &TrackingHandler{
		Affiliates:    r.AffiliateService,
		VisitorCookie: r.VisitorCookie,
		SecureCookies: r.SecureCookies,
	}

	r.Mux.Handle("POST /v1/admin/partners",
		r.secured(partners.HandleCreate, httpx.ModerateLimit, service.ScopeAdminWrite))
	r.Mux.Handle("GET /v1/admin/partners",
		r.secured(partners.HandleList, httpx.LenientLimit, service.ScopeAdminRead))
	r.Mux.Handle("GET /v1/admin/partners/{id}",
		r.secured(partners.HandleGet, httpx.LenientLimit, service.ScopeAdminRead))
	r.Mux.Handle("PATCH /v1/admin/partners/{id}",
		r.secured(partners.HandleUpdate, httpx.ModerateLimit, service.ScopeAdminWrite))
	r.Mux.Handle("DELETE /v1/admin/partners/{id}",
		r.secured(partners.HandleDelete, httpx.ModerateLimit, service.ScopeAdminWrite))
	r.Mux.Handle("GET /v1/admin/analytics",
		r.secured(partners.HandleAnalytics, httpx.LenientLimit, service.ScopeAdminRead))

	r.Mux.Handle("GET /v1/portal/partners",
		r.secured(partners.HandlePortalList, httpx.LenientLimit, service.ScopePortalRead))
	r.Mux.Handle("GET /v1/portal/analytics",
		r.secured(partners.HandlePortalAnalytics, httpx.LenientLimit, service.ScopePortalRead))

	// Marketing pages fire clicks on every landing.
	r.Mux.Handle("POST /v1/track/clicks/{slug}",
		httpx.Chain(http.HandlerFunc(tracking.HandleClick),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("POST /v1/track/conversions",
		httpx.Chain(http.HandlerFunc(tracking.HandleConversion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	if r.metrics != nil {
		r.Mux.Handle("GET /metrics", r.metrics.Handler())
	}
}

func (r *Router) registerBootstrap() {
	h := &BootstrapHandler{Bootstrap: r.BootstrapService}
	r.Mux.Handle("POST /v1/bootstrap",
		httpx.Chain(h,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}
