// Package web provides an HTTP server with routing and middleware.
// It uses Gin framework for high-performance web handling.
package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"sync"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

// Server represents the web server
type Server struct {
	engine           *gin.Engine
	httpServer       *http.Server
	webhookURL       string
	allowedHostRegex *regexp.Regexp
	client           *http.Client
	mu               sync.Mutex
}

var (
	server *Server
)

// Init initializes the global web server
func Init(webhookURL, allowedHosts string) *Server {
	server = NewServer(webhookURL, allowedHosts)
	return server
}

// Get returns the global web server
func Get() *Server {
	return server
}

// NewServer creates a new web server. allowedHosts is a regular expression
// matched against the Host header; other hosts are rejected with 403.
func NewServer(webhookURL, allowedHosts string) *Server {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())

	hostRegex, err := regexp.Compile(allowedHosts)
	if err != nil {
		logger.Warn(fmt.Sprintf("allowedHosts inválido (%v), se aceptan todos los hosts", err), "WebServer")
		hostRegex = regexp.MustCompile(`.*`)
	}

	s := &Server{
		engine:           engine,
		webhookURL:       webhookURL,
		allowedHostRegex: hostRegex,
		client:           &http.Client{Timeout: 5 * time.Second},
	}

	s.engine.Use(s.logsMiddleware())
	s.engine.Use(newRateLimiter(RateLimitConfig{WindowMs: 60 * time.Second, MaxRequests: 100}).middleware())

	s.setupErrorHandlers()

	return s
}

// Engine returns the underlying Gin engine
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// logsMiddleware logs all incoming requests to the webhook
func (s *Server) logsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.allowedHostRegex.MatchString(c.Request.Host) {
			logger.Info(fmt.Sprintf("[LOG] Nueva solicitud: %s %s", c.Request.Method, c.Request.URL.Path), "WebServer")
			go s.sendLogToWebhook(requestSummary(c), false)
			c.Next()
			return
		}

		logger.Warn(fmt.Sprintf("[LOG] Solicitud Sospechosa: %s %s | %s", c.Request.Method, c.Request.URL.Path, c.ClientIP()), "WebServer")
		go s.sendLogToWebhook(requestSummary(c), true)
		c.AbortWithStatus(http.StatusForbidden)
	}
}

// summary is copied out of the gin context before the request goes away
type summary struct {
	Method  string
	Path    string
	IP      string
	Query   string
	Headers http.Header
}

func requestSummary(c *gin.Context) summary {
	return summary{
		Method:  c.Request.Method,
		Path:    c.Request.URL.Path,
		IP:      c.ClientIP(),
		Query:   c.Request.URL.RawQuery,
		Headers: c.Request.Header.Clone(),
	}
}

// sendLogToWebhook sends a log message to the Discord webhook
func (s *Server) sendLogToWebhook(req summary, suspicious bool) {
	if s.webhookURL == "" {
		return
	}

	title := fmt.Sprintf("💫 | Nueva solicitud al servidor web de tipo %s", req.Method)
	color := 0x00AE86

	if suspicious {
		title = fmt.Sprintf("💫 | Solicitud Sospechosa Rechazada: %s %s", req.Method, req.Path)
		color = 0xFFA500
	}

	headers, _ := json.Marshal(req.Headers)
	query := req.Query
	if query == "" {
		query = "{}"
	}

	payload := map[string]interface{}{
		"embeds": []interface{}{
			map[string]interface{}{
				"title": title,
				"description": fmt.Sprintf(
					"> **Ruta:** `%s`\n> **IP:** `%s`\n> **Headers:** ```%s``` \n> **Query:** ```%s```",
					req.Path, req.IP, string(headers), query,
				),
				"color":     color,
				"timestamp": time.Now().Format(time.RFC3339),
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return
	}

	resp, err := s.client.Post(s.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return
	}
	resp.Body.Close()
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	WindowMs    time.Duration
	MaxRequests int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateLimiter gives every client IP a token bucket of MaxRequests tokens
// refilled over WindowMs.
type rateLimiter struct {
	config    RateLimitConfig
	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
	now       func() time.Time
}

func newRateLimiter(config RateLimitConfig) *rateLimiter {
	return &rateLimiter{
		config:   config,
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
}

// allow records a request from ip and reports whether it is within the limit.
// Visitors idle for a whole window are forgotten.
func (r *rateLimiter) allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if now.Sub(r.lastSweep) > r.config.WindowMs {
		for key, v := range r.visitors {
			if now.Sub(v.lastSeen) > r.config.WindowMs {
				delete(r.visitors, key)
			}
		}
		r.lastSweep = now
	}

	v, ok := r.visitors[ip]
	if !ok {
		every := r.config.WindowMs / time.Duration(r.config.MaxRequests)
		v = &visitor{limiter: rate.NewLimiter(rate.Every(every), r.config.MaxRequests)}
		r.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

func (r *rateLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !r.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Demasiadas solicitudes, por favor intente de nuevo más tarde.",
			})
			return
		}
		c.Next()
	}
}

// setupErrorHandlers sets up error handling routes
func (s *Server) setupErrorHandlers() {
	s.engine.HandleMethodNotAllowed = true

	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not Found",
			"message": "La ruta solicitada no existe.",
			"status":  404,
		})
	})

	s.engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{
			"error":   "Method Not Allowed",
			"message": "El método HTTP no está permitido para esta ruta.",
			"status":  405,
		})
	})
}

// Start starts the web server and blocks until it stops
func (s *Server) Start(port string) error {
	s.mu.Lock()
	s.httpServer = &http.Server{
		Addr:              ":" + port,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv := s.httpServer
	s.mu.Unlock()

	logger.Info(fmt.Sprintf("🚀 Servidor escuchando en http://localhost:%s", port), "WebServer")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// StartAsync starts the web server in a goroutine
func (s *Server) StartAsync(port string) {
	go func() {
		if err := s.Start(port); err != nil {
			logger.Error(fmt.Sprintf("Error starting web server: %v", err), "WebServer")
		}
	}()
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// Group creates a new router group
func (s *Server) Group(path string, handlers ...gin.HandlerFunc) *gin.RouterGroup {
	return s.engine.Group(path, handlers...)
}
