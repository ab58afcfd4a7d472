// Package handlers exposes the admission pipeline over HTTP.
//
//	app := internal.New(
//	    internal.WithErrorHandler(handlers.ErrorHandler),
//	    internal.WithHandlers(handlers.NewMessage(pipeline)),
//	)
package handlers
