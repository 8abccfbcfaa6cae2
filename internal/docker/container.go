// internal/docker/container.go
package docker

import (
	"context"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/rusenback/docker-gateway/internal/model"
)

// ListContainers palauttaa kaikki containerit (running + stopped)
func (c *Client) ListContainers(ctx context.Context) ([]model.ContainerSummary, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	containers, err := c.cli.ContainerList(ctx, container.ListOptions{
		All: true,
	})
	if err != nil {
		return nil, classify("list", "", err)
	}

	// Several containers usually share an image, inspect each one once
	tags := make(map[string]string)

	result := make([]model.ContainerSummary, 0, len(containers))
	for _, cont := range containers {
		name := ""
		if len(cont.Names) > 0 {
			name = strings.TrimPrefix(cont.Names[0], "/")
		}

		image, ok := tags[cont.ImageID]
		if !ok {
			image = c.imageTag(ctx, cont.ImageID)
			tags[cont.ImageID] = image
		}

		result = append(result, model.ContainerSummary{
			ID:     model.ShortID(cont.ID),
			Name:   name,
			Status: cont.State,
			Image:  image,
		})
	}

	return result, nil
}

// imageTag returns the first tag of an image. Any failure yields UnknownImage.
func (c *Client) imageTag(ctx context.Context, imageID string) string {
	if imageID == "" {
		return model.UnknownImage
	}

	img, _, err := c.cli.ImageInspectWithRaw(ctx, imageID)
	if err != nil || len(img.RepoTags) == 0 || img.RepoTags[0] == "" {
		return model.UnknownImage
	}
	return img.RepoTags[0]
}

// InspectContainer resolves an identifier (full or prefix id, or name) to a container
func (c *Client) InspectContainer(ctx context.Context, id string) (model.ContainerRef, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	info, err := c.cli.ContainerInspect(ctx, id)
	if err != nil {
		return model.ContainerRef{}, classify("inspect", id, err)
	}

	ref := model.ContainerRef{ID: id}
	if info.ContainerJSONBase != nil {
		ref.ID = info.ID
		ref.Name = strings.TrimPrefix(info.Name, "/")
	}
	if info.Config != nil {
		ref.TTY = info.Config.Tty
	}
	return ref, nil
}

// StartContainer käynnistää containerin
func (c *Client) StartContainer(ctx context.Context, ref model.ContainerRef) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	return classify("start", ref.ID, c.cli.ContainerStart(ctx, ref.ID, container.StartOptions{}))
}

// StopContainer pysäyttää containerin. The deadline covers the grace period too.
func (c *Client) StopContainer(ctx context.Context, ref model.ContainerRef) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout+stopGracePeriod)
	defer cancel()

	timeout := int(stopGracePeriod.Seconds())
	return classify("stop", ref.ID, c.cli.ContainerStop(ctx, ref.ID, container.StopOptions{
		Timeout: &timeout,
	}))
}
