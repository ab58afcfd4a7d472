package internal

// Handler declares routes on a router.
//
// Example:
//
//	type MessageHandler struct {
//	    pipeline *admission.Pipeline
//	}
//
//	func (h *MessageHandler) Routes(r internal.Router) {
//	    r.POST("/send-message", h.send)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// Returning a non-nil error hands the error to the app's ErrorHandler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler renders errors returned from handlers and middleware.
type ErrorHandler func(Context, error) error
