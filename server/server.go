package server

import (
	"fmt"
	"html/template"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/harvesting-media/dataproc/config"
	"github.com/harvesting-media/dataproc/server/html"
	"github.com/harvesting-media/dataproc/sheets"
)

// Server is the password-gated upload tool. Every request is self-contained
// (file, process, header flag, mapping) - the only state between requests is
// the signed session cookie.
type Server struct {
	cfg    *config.Config
	writer *sheets.Writer
	gate   *gate
	pages  *template.Template
}

func New(cfg *config.Config, api sheets.API) (*Server, error) {
	pages, err := template.New("index.html").ParseFS(html.HTML, "index.html")
	if err != nil {
		return nil, fmt.Errorf("unable to parse embedded pages (%w)", err)
	}

	return &Server{
		cfg:    cfg,
		writer: sheets.NewWriter(api),
		gate: &gate{
			passwordHash: cfg.GatePasswordHash,
			secret:       []byte(cfg.SessionSecret),
			ttl:          cfg.SessionTTL,
		},
		pages: pages,
	}, nil
}

// Router builds the echo instance with all routes and middleware.
func (s *Server) Router() *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogRemoteIP: true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip": v.RemoteIP,
				"method":    v.Method,
				"uri":       v.URI,
				"status":    v.Status,
				"latency":   v.Latency.String(),
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())

	e.GET("/", s.index)
	e.POST("/auth/login", s.login)
	e.POST("/auth/logout", s.logout)

	api := e.Group("/api")
	api.Use(s.requireSession)
	api.GET("/processes", s.processes)
	api.POST("/preview", s.preview)
	api.POST("/import", s.importFile)

	return e
}

// Run starts the HTTP server on the configured address and blocks until it
// stops.
func (s *Server) Run() error {
	e := s.Router()

	defer e.Close()

	logrus.WithField("addr", s.cfg.Addr()).Info("Starting HTTP server")

	return e.Start(s.cfg.Addr())
}
