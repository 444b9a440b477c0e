// Package server is the thin HTTP surface spec §6 places outside the
// core: generate a report, fetch a share token's governed report, and
// revoke a share token. The core pipeline and sharetoken manager do all
// the work; this package only translates HTTP to calls against them.
//
// Grounded on dafibh-fortuna-backend's cmd/api/main.go route wiring
// (labstack/echo/v4, one handler struct per resource) and its
// middleware/rate_limit.go token-bucket limiter built on golang.org/x/time/rate.
package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"incomeverify/models"
	"incomeverify/objectstore"
	"incomeverify/pipeline"
	"incomeverify/report"
	"incomeverify/sharetoken"
)

// Server holds the dependencies the HTTP handlers need.
type Server struct {
	Echo    *echo.Echo
	Tokens  *sharetoken.Manager
	Store   *objectstore.S3ReportStore
	Render  report.PdfRenderer
	Logger  zerolog.Logger
}

// New wires the route table. rateLimitRPS governs the share-token access
// endpoint only; report generation has no rate limit imposed by the core.
func New(tokens *sharetoken.Manager, store *objectstore.S3ReportStore, renderer report.PdfRenderer, logger zerolog.Logger, rateLimitRPS float64) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	s := &Server{Echo: e, Tokens: tokens, Store: store, Render: renderer, Logger: logger}

	limiterConfig := middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:  rate.Limit(rateLimitRPS),
			Burst: int(rateLimitRPS * 2),
		}),
	}

	shared := e.Group("/shared")
	shared.Use(middleware.RateLimiterWithConfig(limiterConfig))
	shared.GET("/:token", s.handleFetchSharedReport)

	e.POST("/reports", s.handleGenerateReport)
	e.POST("/shared/:token/revoke", s.handleRevokeToken)

	return s
}

func (s *Server) handleGenerateReport(c echo.Context) error {
	var req pipeline.Request
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	lenderReport, err := pipeline.Run(req, s.Logger)
	if err != nil {
		if pipelineErr, ok := err.(*models.PipelineError); ok {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, pipelineErr.Error())
		}
		s.Logger.Error().Err(err).Msg("report generation failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "report generation failed")
	}

	return c.JSON(http.StatusCreated, lenderReport)
}

func (s *Server) handleFetchSharedReport(c echo.Context) error {
	token := c.Param("token")
	ctx := c.Request().Context()

	ok, err := s.Tokens.Validate(ctx, token, c.RealIP())
	if err != nil {
		s.Logger.Error().Err(err).Msg("share token validation failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "validation failed")
	}
	if !ok {
		return echo.NewHTTPError(http.StatusForbidden, "share token is invalid, expired, or revoked")
	}

	record, err := s.Tokens.Get(ctx, token)
	if err != nil {
		s.Logger.Error().Err(err).Msg("share token lookup failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "lookup failed")
	}

	lenderReport, err := s.Store.GetReportJSON(ctx, record.BorrowerID, record.ReportID)
	if err != nil {
		s.Logger.Error().Err(err).Msg("report fetch failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "report fetch failed")
	}

	return c.JSON(http.StatusOK, lenderReport)
}

func (s *Server) handleRevokeToken(c echo.Context) error {
	token := c.Param("token")
	if err := s.Tokens.Revoke(c.Request().Context(), token); err != nil {
		s.Logger.Error().Err(err).Msg("share token revocation failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "revocation failed")
	}
	return c.NoContent(http.StatusNoContent)
}
