package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dimitrije/pagbank-connect/internal/middleware"
	"github.com/dimitrije/pagbank-connect/internal/oauth"
	"github.com/dimitrije/pagbank-connect/internal/web"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

type PageHandler struct {
	provider PagBankProviderInterface
	renderer *web.Renderer
	log      *zap.Logger
}

type homePage struct {
	Connected bool
}

type dashboardPage struct {
	Error   string
	Account *oauth.AccountInfo
	Scopes  []string
}

func NewPageHandler(provider PagBankProviderInterface, renderer *web.Renderer, log *zap.Logger) *PageHandler {
	return &PageHandler{
		provider: provider,
		renderer: renderer,
		log:      log,
	}
}

func (h *PageHandler) Home(c *drift.Context) {
	renderPage(c, h.renderer, h.log, http.StatusOK, web.PageHome, web.View{
		Data: homePage{Connected: middleware.GetSession(c) != nil},
	})
}

// Dashboard fetches the connected account on every load, so the refresh
// button is a plain link back here.
func (h *PageHandler) Dashboard(c *drift.Context) {
	claims := middleware.GetSession(c)
	if claims == nil {
		redirect(c, "/auth/connect")
		return
	}

	t := h.renderer.Translator(middleware.GetLanguage(c))
	page := dashboardPage{Scopes: strings.Fields(claims.Scope)}

	account, err := h.provider.GetAccount(c.Request.Context(), claims.AccessToken, claims.AccountID)
	if err != nil {
		var upstream *oauth.UpstreamError
		if errors.As(err, &upstream) {
			page.Error = t("dashboard.account.fetch_failed")
		} else {
			page.Error = t("dashboard.account.fetch_error")
		}
		h.log.Warn("failed to load account for dashboard",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)
	} else {
		page.Account = account
	}

	renderPage(c, h.renderer, h.log, http.StatusOK, web.PageDashboard, web.View{Data: page})
}

func renderPage(c *drift.Context, renderer *web.Renderer, log *zap.Logger, status int, page string, view web.View) {
	html, err := renderer.Render(middleware.GetLanguage(c), page, view)
	if err != nil {
		log.Error("failed to render page", zap.String("page", page), zap.Error(err))
		c.InternalServerError("failed to render page")
		return
	}
	_ = c.HTML(status, html)
}

func redirect(c *drift.Context, location string) {
	http.Redirect(c.Response, c.Request, location, http.StatusFound)
	c.Abort()
}
