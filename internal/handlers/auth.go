package handlers

import (
	"errors"
	"net/http"

	"github.com/dimitrije/pagbank-connect/internal/config"
	"github.com/dimitrije/pagbank-connect/internal/middleware"
	"github.com/dimitrije/pagbank-connect/internal/oauth"
	"github.com/dimitrije/pagbank-connect/internal/web"
	"github.com/dimitrije/pagbank-connect/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

type AuthHandler struct {
	cfg      *config.Config
	provider PagBankProviderInterface
	sessions SessionServiceInterface
	renderer *web.Renderer
	log      *zap.Logger
}

type connectPage struct {
	Error string
}

type callbackPage struct {
	Status     string
	Message    string
	RedirectTo string
}

func NewAuthHandler(
	cfg *config.Config,
	provider PagBankProviderInterface,
	sessions SessionServiceInterface,
	renderer *web.Renderer,
	log *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		cfg:      cfg,
		provider: provider,
		sessions: sessions,
		renderer: renderer,
		log:      log,
	}
}

func (h *AuthHandler) ConnectPage(c *drift.Context) {
	renderPage(c, h.renderer, h.log, http.StatusOK, web.PageConnect, web.View{Data: connectPage{}})
}

// StartConnect stores a fresh state in a cookie and sends the browser to the
// PagBank consent page.
func (h *AuthHandler) StartConnect(c *drift.Context) {
	state, err := oauth.GenerateState()
	if err != nil {
		h.log.Error("failed to generate oauth state", zap.Error(err))
		h.renderConnectError(c)
		return
	}

	consentURL, err := h.provider.GetConsentURL(state)
	if err != nil {
		h.log.Error("failed to build consent url", zap.Error(err))
		h.renderConnectError(c)
		return
	}

	setStateCookie(c.Response, state, h.cfg.IsProduction())
	redirect(c, consentURL)
}

func (h *AuthHandler) renderConnectError(c *drift.Context) {
	t := h.renderer.Translator(middleware.GetLanguage(c))
	renderPage(c, h.renderer, h.log, http.StatusInternalServerError, web.PageConnect, web.View{
		Data: connectPage{Error: t("connect.error")},
	})
}

// Callback finishes the redirect from PagBank. The state cookie is single
// use and is cleared whatever the outcome.
func (h *AuthHandler) Callback(c *drift.Context) {
	secure := h.cfg.IsProduction()
	storedState := readCookie(c.Request, StateCookieName)
	clearStateCookie(c.Response, secure)

	result := oauth.HandleCallback(c.Request.Context(), h.provider, oauth.CallbackRequest{
		Code:        c.QueryParam("code"),
		State:       c.QueryParam("state"),
		Error:       c.QueryParam("error"),
		StoredState: storedState,
	})

	t := h.renderer.Translator(middleware.GetLanguage(c))

	if result.Status == oauth.CallbackSuccess {
		signed, ttl, err := h.sessions.Issue(result.Token)
		if err != nil {
			h.log.Error("failed to issue session", zap.Error(err))
			h.renderCallback(c, http.StatusInternalServerError, web.View{Data: callbackPage{
				Status:  string(oauth.CallbackError),
				Message: t("callback.exchange_failed_generic"),
			}})
			return
		}
		setSessionCookie(c.Response, signed, ttl, secure)

		h.renderCallback(c, http.StatusOK, web.View{
			RefreshTo:    result.RedirectTo,
			RefreshAfter: int(result.RedirectAfter.Seconds()),
			Data: callbackPage{
				Status:     string(result.Status),
				Message:    t("callback.connected"),
				RedirectTo: result.RedirectTo,
			},
		})
		return
	}

	h.log.Warn("oauth callback failed",
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.String("reason", string(result.Reason)),
		zap.String("detail", result.Detail),
	)

	status := http.StatusBadRequest
	if result.Reason == oauth.ReasonNetworkError {
		status = http.StatusBadGateway
	}
	h.renderCallback(c, status, web.View{Data: callbackPage{
		Status:  string(result.Status),
		Message: callbackMessage(t, result),
	}})
}

func (h *AuthHandler) renderCallback(c *drift.Context, status int, view web.View) {
	renderPage(c, h.renderer, h.log, status, web.PageCallback, view)
}

func callbackMessage(t func(key string, args ...any) string, result oauth.CallbackResult) string {
	switch result.Reason {
	case oauth.ReasonAuthorizationError:
		return t("callback.authorization_error", result.Detail)
	case oauth.ReasonExchangeFailed:
		if result.Detail == "" {
			return t("callback.exchange_failed_generic")
		}
		return t("callback.exchange_failed", result.Detail)
	case oauth.ReasonStateMismatch, oauth.ReasonMissingCode, oauth.ReasonNetworkError:
		return t("callback." + string(result.Reason))
	default:
		return t("callback.exchange_failed_generic")
	}
}

// ExchangeToken relays an authorization code to PagBank and returns the
// token fields unchanged.
func (h *AuthHandler) ExchangeToken(c *drift.Context) {
	var req dto.ExchangeCodeRequest
	if err := c.BindJSON(&req); err != nil || req.Code == "" {
		jsonError(c, http.StatusBadRequest, "Authorization code is required")
		return
	}

	token, err := h.provider.ExchangeCode(c.Request.Context(), req.Code)
	if err != nil {
		var upstream *oauth.UpstreamError
		switch {
		case errors.Is(err, oauth.ErrMissingCode):
			jsonError(c, http.StatusBadRequest, "Authorization code is required")
		case errors.Is(err, oauth.ErrNotConfigured):
			h.log.Error("pagbank credentials are not configured")
			jsonError(c, http.StatusInternalServerError, "Server configuration error")
		case errors.As(err, &upstream):
			jsonError(c, http.StatusBadRequest, upstream.Message)
		default:
			h.log.Error("token exchange failed",
				zap.String("request_id", middleware.GetRequestID(c)),
				zap.Error(err),
			)
			jsonError(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	_ = c.JSON(http.StatusOK, dto.TokenResponse{
		AccountID:   token.AccountID,
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		ExpiresIn:   token.ExpiresIn,
		Scope:       token.Scope,
	})
}

func (h *AuthHandler) Disconnect(c *drift.Context) {
	clearSessionCookie(c.Response, h.cfg.IsProduction())
	redirect(c, "/")
}
