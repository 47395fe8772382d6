// Package server provides the local HTTP listener, routing, middleware and OAuth callback handling used by
// `ytxl auth login`.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
// [Middleware] wraps handlers in reverse order (last added executes first).
// The [BasicRouter] implementation registers method-qualified [http.ServeMux] patterns.
//
// # OAuth Callback Handler
//
// [OAuthHandler] implements the OAuth2 authorization code callback of Google's installed-app flow.
// It validates the state parameter (CSRF protection), exchanges the authorization code for tokens
// and sends the result through a channel. Only one callback is processed.
//
// # Listener
//
// [Listen] binds the callback address (server.host and server.port in the config) before returning,
// then serves in the background until [Listener.Shutdown].
package server
