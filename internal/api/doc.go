// Package api exposes the container gateway over HTTP.
//
// Routes
//
//   - GET  /containers              list all containers, stopped ones included
//   - POST /containers/{id}/start   start one container
//   - POST /containers/{id}/stop    stop one container
//   - GET  /containers/{id}/logs    recent log tail
//   - GET  /config.js               front-end configuration script
//   - GET  /healthz                 liveness, does not touch Docker
//   - GET  /openapi.json, /docs, /redoc when docs are enabled
//
// Anything else is served from the front-end bundle when one exists.
//
// Error Model
//
// Error bodies are {"detail": "..."}. Identifiers failing the hex pattern get
// 422 before Docker is called. Docker failures map to 404 (no such container),
// 502 (daemon reported an error) and 503 (daemon unreachable or timed out).
// Bodies never carry the identifier or the underlying error; those go to the
// server log.
//
// Middleware
//
// Outermost first: request id, access log, security headers, CORS, trusted
// hosts, public prefix stripping.
package api
