package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/gorilla/mux"
	"github.com/rusenback/docker-gateway/internal/docker"
	"github.com/rusenback/docker-gateway/internal/model"
)

var containerIDPattern = regexp.MustCompile(`^[a-fA-F0-9]{12,64}$`)

// handleListContainers returns every container, running or not.
func (s *Server) handleListContainers(w http.ResponseWriter, r *http.Request) {
	containers, err := s.runtime.ListContainers(r.Context())
	if err != nil {
		s.runtimeFailure(w, r, err, "listing containers", "", msgAPIFailed)
		return
	}
	if containers == nil {
		containers = []model.ContainerSummary{}
	}
	writeJSON(w, http.StatusOK, containers)
}

// handleStartContainer starts one container.
// Response (200): {"message": "Started <name>"}
func (s *Server) handleStartContainer(w http.ResponseWriter, r *http.Request) {
	ref, ok := s.resolveContainer(w, r)
	if !ok {
		return
	}

	err := s.runtime.StartContainer(r.Context(), ref)
	s.record(r, model.ActionStart, ref, err)
	if err != nil {
		s.runtimeFailure(w, r, err, "starting container", mux.Vars(r)["id"], msgStartFailed)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Started " + ref.Name})
}

// handleStopContainer stops one container.
// Response (200): {"message": "Stopped <name>"}
func (s *Server) handleStopContainer(w http.ResponseWriter, r *http.Request) {
	ref, ok := s.resolveContainer(w, r)
	if !ok {
		return
	}

	err := s.runtime.StopContainer(r.Context(), ref)
	s.record(r, model.ActionStop, ref, err)
	if err != nil {
		s.runtimeFailure(w, r, err, "stopping container", mux.Vars(r)["id"], msgStopFailed)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Stopped " + ref.Name})
}

// handleContainerLogs returns the last LogTailLines lines of combined output.
func (s *Server) handleContainerLogs(w http.ResponseWriter, r *http.Request) {
	ref, ok := s.resolveContainer(w, r)
	if !ok {
		return
	}

	raw, err := s.runtime.ContainerLogs(r.Context(), ref, s.cfg.LogTailLines)
	if err != nil {
		s.runtimeFailure(w, r, err, "fetching logs", mux.Vars(r)["id"], msgLogsFailed)
		return
	}
	writeJSON(w, http.StatusOK, model.LogTail{Logs: docker.DecodeLogs(raw, s.cfg.LogTailLines)})
}

// resolveContainer validates the {id} path variable and looks the container
// up. On failure the response has been written and ok is false.
func (s *Server) resolveContainer(w http.ResponseWriter, r *http.Request) (model.ContainerRef, bool) {
	id := mux.Vars(r)["id"]
	if !containerIDPattern.MatchString(id) {
		writeDetail(w, http.StatusUnprocessableEntity, msgInvalidID)
		return model.ContainerRef{}, false
	}

	ref, err := s.runtime.InspectContainer(r.Context(), id)
	if err != nil {
		if docker.IsNotFound(err) {
			writeDetail(w, http.StatusNotFound, msgNotFound)
			return model.ContainerRef{}, false
		}
		s.runtimeFailure(w, r, err, "resolving container", id, msgAPIFailed)
		return model.ContainerRef{}, false
	}
	return ref, true
}

// runtimeFailure logs a Docker failure with full detail and answers with a
// generic message: 503 when the daemon was unreachable, 502 otherwise.
func (s *Server) runtimeFailure(w http.ResponseWriter, r *http.Request, err error, action, containerID, apiMessage string) {
	logger := loggerFrom(r.Context(), s.logger)
	if containerID != "" {
		logger = logger.With("container_id", containerID)
	}

	if docker.IsUnavailable(err) {
		logger.Error("Docker connection error while "+action, "err", err)
		writeDetail(w, http.StatusServiceUnavailable, msgUnavailable)
		return
	}

	logger.Error("Docker API error while "+action, "err", err)
	writeDetail(w, http.StatusBadGateway, apiMessage)
}

// record forwards a start/stop outcome to the audit trail, if one is configured
func (s *Server) record(r *http.Request, action string, ref model.ContainerRef, err error) {
	if s.opts.Audit == nil {
		return
	}

	outcome := "ok"
	if err != nil {
		outcome = docker.KindOf(err).String()
	}

	s.opts.Audit.Record(model.AuditEntry{
		Action:        action,
		ContainerID:   model.ShortID(ref.ID),
		ContainerName: ref.Name,
		Outcome:       outcome,
		RequestID:     requestIDFrom(r.Context()),
		Timestamp:     time.Now().UTC(),
	})
}

// handleConfigJS serves the front-end configuration script. Not part of the API schema.
func (s *Server) handleConfigJS(w http.ResponseWriter, r *http.Request) {
	// json.Marshal escapes <, > and & so the value cannot close a script tag
	payload, err := json.Marshal(s.cfg.APIBasePath)
	if err != nil {
		payload = []byte(`""`)
	}

	w.Header().Set("Content-Type", "application/javascript")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "window.API_BASE_PATH = %s;", payload)
}

// handleHealthz is a liveness endpoint. It does not call Docker.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
