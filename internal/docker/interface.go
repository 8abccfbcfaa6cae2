// internal/docker/interface.go
package docker

import (
	"context"

	"github.com/rusenback/docker-gateway/internal/model"
)

// Runtime is the container runtime as seen by the gateway. Tests substitute a fake.
type Runtime interface {
	ListContainers(ctx context.Context) ([]model.ContainerSummary, error)
	InspectContainer(ctx context.Context, id string) (model.ContainerRef, error)
	StartContainer(ctx context.Context, ref model.ContainerRef) error
	StopContainer(ctx context.Context, ref model.ContainerRef) error
	ContainerLogs(ctx context.Context, ref model.ContainerRef, tail int) ([]byte, error)
	Ping(ctx context.Context) error
	Close() error
}

// Varmista että Client toteuttaa interfacen
var _ Runtime = (*Client)(nil)
