package api

// errorResponse is the body of every non-2xx response produced by the gateway
type errorResponse struct {
	Detail string `json:"detail"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// Client-facing failure messages. They never include request specific detail.
const (
	msgInvalidID        = "Invalid container identifier"
	msgNotFound         = "Container not found"
	msgAPIFailed        = "Docker API request failed"
	msgUnavailable      = "Docker API unavailable"
	msgStartFailed      = "Failed to start container"
	msgStopFailed       = "Failed to stop container"
	msgLogsFailed       = "Failed to fetch container logs"
	msgInvalidHost      = "Invalid host header"
	msgRouteNotFound    = "Not Found"
	msgMethodNotAllowed = "Method Not Allowed"
)
