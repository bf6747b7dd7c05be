// Package server provides HTTP routing, middleware, and the task CRUD
// handlers for the dashboard API.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Middleware Stack
//
// The serve command composes, outermost first: [Logging], [CORS],
// [RateLimit], [Auth]. CORS headers therefore appear on every response,
// including 401s and 500s, and OPTIONS preflights are answered before the
// auth check runs, so a browser can always complete a preflight.
//
// Auth is a single shared-secret bearer comparison. When no secret is
// configured every request passes (dev mode).
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
// [TaskHandler] registers both /api/tasks and the /api/tasks/ subtree and
// owns its own method dispatch so unsupported verbs produce a JSON 405.
package server
