package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Server renders the portfolio page.
type Server struct {
	cfg     Config
	site    *Site
	favicon *Favicon
	now     func() time.Time
	engine  *gin.Engine
}

func NewServer(cfg Config, site *Site, favicon *Favicon) (*Server, error) {
	s := &Server{
		cfg:     cfg,
		site:    site,
		favicon: favicon,
		now:     time.Now,
	}

	tmpl, err := template.New("").Funcs(templateFuncs(site)).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("static assets: %w", err)
	}

	r := gin.New()
	r.Use(requestLogger(), gin.Recovery())
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(static))

	r.GET("/", s.handleIndex)
	r.GET("/favicon.ico", s.handleFavicon)
	r.GET("/favicon.png", s.handleFavicon)
	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	s.engine = r
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	// The icon is drawn once before the first page view.
	if _, err := s.favicon.Render(); err != nil {
		logrus.WithError(err).Warn("Favicon skipped")
	}

	srv := &http.Server{
		Addr:         ":" + s.cfg.Port,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("addr", srv.Addr).Info("Portfolio listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logrus.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Home page
func (s *Server) handleIndex(c *gin.Context) {
	menu := menuFromQuery(c.Query(menuParam))

	c.HTML(http.StatusOK, "index.html", gin.H{
		"site":    s.site,
		"menu":    menu,
		"favicon": template.URL(s.favicon.DataURI()),
		"year":    s.now().Year(),
	})
}

func (s *Server) handleFavicon(c *gin.Context) {
	data, err := s.favicon.Render()
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.Header("Cache-Control", "public, max-age=31536000")
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("Content-Length", strconv.Itoa(len(data)))
	c.Data(http.StatusOK, "image/png", data)
}

func templateFuncs(site *Site) template.FuncMap {
	return template.FuncMap{
		"icon": site.IconURL,
		"navLink": func(href, label string) NavLink {
			return NavLink{Href: href, Label: label}
		},
		// Contact hrefs are validated as mailto: or tel: when the content loads.
		"safeURL": func(s string) template.URL {
			return template.URL(s)
		},
		"dict": dict,
	}
}

// dict builds a map from alternating keys and values so templates can pass
// several arguments to a sub-template.
func dict(values ...any) (map[string]any, error) {
	if len(values)%2 != 0 {
		return nil, errors.New("dict: odd number of arguments")
	}
	m := make(map[string]any, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		key, ok := values[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", values[i])
		}
		m[key] = values[i+1]
	}
	return m, nil
}

// requestLogger logs each request through logrus in place of gin's default logger.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logrus.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start),
			"client":  c.ClientIP(),
		})
		if len(c.Errors) > 0 {
			entry.Error(c.Errors.String())
			return
		}
		entry.Debug("Request served")
	}
}
