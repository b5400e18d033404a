package http

import (
	"net/http"

	"github.com/aburtocampos/taskmanager/internal/common/constants"
	"github.com/aburtocampos/taskmanager/internal/common/httpmetrics"
	"github.com/aburtocampos/taskmanager/internal/common/logger"
)

// BuildBaseHandler wires the middleware every endpoint shares. Order is
// outermost first: security headers run before recovery so panic responses
// still carry them.
func BuildBaseHandler(log *logger.Logger, handler http.Handler) http.Handler {
	metrics := httpmetrics.New()
	recovery := RecoveryMiddleware(log)
	traceID := TraceIDMiddleware
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)
	securityHeaders := SecurityHeadersMiddleware

	return securityHeaders(recovery(traceID(maxRequestSize(metrics.Wrap(handler)))))
}
