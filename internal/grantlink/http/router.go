package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/grantlink/grantlink/internal/grantlink/service"
	"github.com/grantlink/grantlink/internal/grantlink/store"
	"github.com/grantlink/grantlink/internal/obs"
	"github.com/grantlink/grantlink/pkg/httpx"
	"github.com/grantlink/grantlink/pkg/slogx"

	_ "github.com/grantlink/grantlink/api" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	issuerAPIKey string
	publicURL    string
	tokenParam   string

	store          store.Store
	TokenService   *service.TokenService
	RedeemService  *service.RedeemService
	SessionService *service.SessionService
	AuditService   *service.AuditService
}

func NewRouter(
	buildVersion string,
	issuerAPIKey, publicURL, tokenParam string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		issuerAPIKey: issuerAPIKey,
		publicURL:    publicURL,
		tokenParam:   tokenParam,
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		obs.Instrument,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerTokens()
	r.registerRedeem()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Grantlink Token Service API
//	@version		0.1.0
//	@description	Issues, validates, redeems, and audits scoped single-use and expiring access
//	@description	tokens (grant tokens) for operations like unsubscribe links, download links,
//	@description	and magic-login links.
//	@description
//	@description				All tokens are HS256-signed compact JWS strings backed by a server-side record.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	IssuerKey
//	@in							header
//	@name						Authorization
//	@description				Issuer API key. Format: "Bearer {key}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerTokens() {
	issuer := IssuerAuthMiddleware(r.issuerAPIKey)

	mintHandler := &TokenMintHandler{
		TokenService: r.TokenService,
		PublicURL:    r.publicURL,
		TokenParam:   r.tokenParam,
	}

	// POST /v1/tokens - moderate rate limit by IP (issuer operation)
	r.Mux.Handle("POST /v1/tokens",
		httpx.Chain(mintHandler,
			issuer,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	getHandler := &TokenGetHandler{TokenService: r.TokenService}
	r.Mux.Handle("GET /v1/tokens/{jti}",
		httpx.Chain(getHandler,
			issuer,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	expireHandler := &TokenExpireHandler{TokenService: r.TokenService}
	r.Mux.Handle("POST /v1/tokens/{jti}/expire",
		httpx.Chain(expireHandler,
			issuer,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	logsHandler := &TokenLogsHandler{TokenService: r.TokenService}
	r.Mux.Handle("GET /v1/tokens/{jti}/logs",
		httpx.Chain(logsHandler,
			issuer,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerRedeem() {
	gate := &ScopeGate{
		ScopePathParam: "scope",
		Required:       true,
		Redeem:         r.RedeemService,
		Audit:          r.AuditService,
	}

	// Any method: redemption links arrive as GET clicks, form POSTs, and
	// API calls alike. Strict rate limit by IP (public endpoint).
	r.Mux.Handle("/v1/redeem/{scope}",
		httpx.Chain(&RedeemHandler{},
			httpx.RateLimitByIP(httpx.StrictLimit),
			SessionMiddleware(r.SessionService),
			TokenMiddleware(r.RedeemService, r.tokenParam),
			gate.Middleware(),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	r.Mux.Handle("GET /metrics", obs.Handler())
}
