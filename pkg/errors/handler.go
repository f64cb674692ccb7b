// Package errors provides error handling and recovery mechanisms for the bot.
// It counts recovered panics and failed actions, reports them to a webhook and
// shuts the process down when too many happen in a short window.
package errors

import (
	"bytes"
	"fmt"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/logger"
	"github.com/goccy/go-json"
)

// ErrorHandler manages error counting and reporting
type ErrorHandler struct {
	errorCount    int32
	webhookURL    string
	stopChan      chan struct{}
	stopOnce      sync.Once
	shutdownFunc  func()
	exitFunc      func(code int)
	maxErrors     int32
	resetInterval time.Duration
	checkInterval time.Duration
	client        *http.Client
}

// ReportErrorOptions contains options for reporting an error
type ReportErrorOptions struct {
	Error   string
	Message string
}

var (
	handler *ErrorHandler
	once    sync.Once
)

// Init initializes the global error handler
func Init(webhookURL string, shutdownFunc func()) *ErrorHandler {
	once.Do(func() {
		handler = NewErrorHandler(webhookURL, shutdownFunc)
		handler.start()
	})
	return handler
}

// Get returns the global error handler instance
func Get() *ErrorHandler {
	return handler
}

// NewErrorHandler creates a new ErrorHandler instance. Monitoring starts with Init.
func NewErrorHandler(webhookURL string, shutdownFunc func()) *ErrorHandler {
	return &ErrorHandler{
		webhookURL:    webhookURL,
		stopChan:      make(chan struct{}),
		shutdownFunc:  shutdownFunc,
		exitFunc:      os.Exit,
		maxErrors:     15,
		resetInterval: 5 * time.Second,
		checkInterval: 1 * time.Second,
		client:        &http.Client{Timeout: 10 * time.Second},
	}
}

// start begins the error monitoring goroutine
func (h *ErrorHandler) start() {
	go func() {
		reset := time.NewTicker(h.resetInterval)
		check := time.NewTicker(h.checkInterval)
		defer reset.Stop()
		defer check.Stop()

		for {
			select {
			case <-reset.C:
				atomic.StoreInt32(&h.errorCount, 0)
			case <-check.C:
				if h.overLimit() {
					h.shutdown()
					return
				}
			case <-h.stopChan:
				return
			}
		}
	}()
}

func (h *ErrorHandler) overLimit() bool {
	return atomic.LoadInt32(&h.errorCount) > h.maxErrors
}

func (h *ErrorHandler) shutdown() {
	start := time.Now()
	logger.Warn("Se detectó un número demasiado alto de errores", "CRITICAL")
	logger.Warn("Apagando...", "CRITICAL")

	h.Report(ReportErrorOptions{
		Error:   "Critical Error",
		Message: "Número inusual de errores. Apagando...",
	})

	if h.shutdownFunc != nil {
		h.shutdownFunc()
	}

	logger.Warn(fmt.Sprintf("Finalizando proceso... Tiempo total: %v", time.Since(start)), "CRITICAL")
	h.exitFunc(1)
}

// Stop stops the error monitoring goroutine
func (h *ErrorHandler) Stop() {
	h.stopOnce.Do(func() { close(h.stopChan) })
}

// Count returns the errors counted in the current window
func (h *ErrorHandler) Count() int32 {
	return atomic.LoadInt32(&h.errorCount)
}

// IncrementError increments the error count
func (h *ErrorHandler) IncrementError() {
	count := atomic.AddInt32(&h.errorCount, 1)
	logger.Error(fmt.Sprintf("Error count: %d", count), "AntiCrash")
}

// HandlePanic handles a recovered panic
func (h *ErrorHandler) HandlePanic(recovered interface{}) {
	h.IncrementError()
	logger.Debug("Unhandled Panic/Catch", "AntiCrash")
	logger.Error(fmt.Sprintf("%v", recovered), "SYS")
}

// Report sends an error report to the Discord webhook
func (h *ErrorHandler) Report(data ReportErrorOptions) {
	if h.webhookURL == "" {
		return
	}

	payload := map[string]interface{}{
		"embeds": []interface{}{
			map[string]interface{}{
				"author":      map[string]string{"name": fmt.Sprintf("Error %s", data.Error)},
				"description": data.Message,
				"color":       0xFF0000,
				"footer":      map[string]string{"text": "PancyGuard Go"},
				"timestamp":   time.Now().Format(time.RFC3339),
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to marshal error report: %v", err), "AntiCrash")
		return
	}

	resp, err := h.client.Post(h.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to send error report: %v", err), "AntiCrash")
		return
	}
	defer resp.Body.Close()

	logger.Warn(fmt.Sprintf("Sent ErrorReport to Webhook, Status: %d", resp.StatusCode), "AntiCrash")
}

// RecoverMiddleware returns a recovery function for use in deferred calls
func RecoverMiddleware() func() {
	return func() {
		if r := recover(); r != nil {
			if handler != nil {
				handler.HandlePanic(r)
			} else {
				logger.Error(fmt.Sprintf("Panic recovered (no handler): %v", r), "AntiCrash")
			}
		}
	}
}
