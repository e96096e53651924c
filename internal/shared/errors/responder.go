package errors

import (
	"errors"
	"log/slog"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key under which the request id is stored.
const RequestIDKey = "request_id"

// Responder writes Problem values as JSON error envelopes.
type Responder struct {
	logger *slog.Logger
}

// NewResponder creates a responder. Unmapped errors are logged through logger.
func NewResponder(logger *slog.Logger) *Responder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Responder{logger: logger}
}

// DefaultResponder logs through slog's default logger.
var DefaultResponder = NewResponder(nil)

// Respond aborts the request with problem.
func (r *Responder) Respond(c *gin.Context, problem Problem) {
	c.AbortWithStatusJSON(problem.Status, Body{Success: false, Error: problem.Message})
}

// RespondError sends err as is when it is a Problem and as a generic 500
// otherwise. The underlying error is only logged.
func (r *Responder) RespondError(c *gin.Context, err error) {
	var problem Problem
	if errors.As(err, &problem) {
		r.Respond(c, problem)
		return
	}
	r.logger.ErrorContext(c.Request.Context(), "request failed",
		slog.String("request_id", c.GetString(RequestIDKey)),
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("error", errString(err)),
	)
	r.Respond(c, ErrInternal)
}

// NoRoute is the catch-all for unmatched paths.
func (r *Responder) NoRoute(c *gin.Context) {
	r.Respond(c, ErrRouteNotFound)
}

// Recovery converts a handler panic into a 500 envelope. The stack trace is
// logged and never returned to the client.
func (r *Responder) Recovery(c *gin.Context, recovered any) {
	r.logger.ErrorContext(c.Request.Context(), "panic recovered",
		slog.String("request_id", c.GetString(RequestIDKey)),
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.Any("panic", recovered),
		slog.String("stack", string(debug.Stack())),
	)
	if c.Writer.Written() {
		c.Abort()
		return
	}
	r.Respond(c, ErrInternal)
}

// Respond is a convenience function using the default responder.
func Respond(c *gin.Context, problem Problem) {
	DefaultResponder.Respond(c, problem)
}

// ErrorMapper maps domain/application errors to a Problem.
type ErrorMapper func(err error) (Problem, bool)

// ChainedResponder supports custom error mapping.
type ChainedResponder struct {
	*Responder
	mappers []ErrorMapper
}

// NewChainedResponder creates a responder with custom error mappers.
func NewChainedResponder(logger *slog.Logger, mappers ...ErrorMapper) *ChainedResponder {
	return &ChainedResponder{
		Responder: NewResponder(logger),
		mappers:   mappers,
	}
}

// RespondError tries each mapper before falling back to default handling.
func (r *ChainedResponder) RespondError(c *gin.Context, err error) {
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			r.Respond(c, problem)
			return
		}
	}
	r.Responder.RespondError(c, err)
}

// Match builds a mapper that answers with problem whenever errors.Is(err, target).
func Match(target error, problem Problem) ErrorMapper {
	return func(err error) (Problem, bool) {
		if errors.Is(err, target) {
			return problem, true
		}
		return Problem{}, false
	}
}

func errString(err error) string {
	if err == nil {
		return "<nil>"
	}
	return err.Error()
}
