// internal/docker/logs.go
package docker

import (
	"bytes"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/rusenback/docker-gateway/internal/model"
	"golang.org/x/text/encoding/unicode"
)

// ContainerLogs returns the last tail lines of combined stdout and stderr
func (c *Client) ContainerLogs(ctx context.Context, ref model.ContainerRef, tail int) ([]byte, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	options := container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Tail:       strconv.Itoa(tail), // Get last N lines
	}

	reader, err := c.cli.ContainerLogs(ctx, ref.ID, options)
	if err != nil {
		return nil, classify("logs", ref.ID, err)
	}
	defer reader.Close()

	// Without a TTY the daemon multiplexes both streams behind 8-byte frame headers
	var buf bytes.Buffer
	if ref.TTY {
		_, err = io.Copy(&buf, reader)
	} else {
		_, err = stdcopy.StdCopy(&buf, &buf, reader)
	}
	if err != nil {
		return nil, classify("logs", ref.ID, err)
	}

	return buf.Bytes(), nil
}

// DecodeLogs decodes raw log output as UTF-8, replacing invalid bytes with
// U+FFFD, and keeps at most tail lines.
func DecodeLogs(raw []byte, tail int) string {
	decoded, err := unicode.UTF8.NewDecoder().Bytes(raw)
	if err != nil {
		decoded = []byte(strings.ToValidUTF8(string(raw), "�"))
	}
	return lastLines(string(decoded), tail)
}

// lastLines keeps the final n lines of text. A trailing newline does not
// start a new line.
func lastLines(text string, n int) string {
	if n <= 0 || text == "" {
		return text
	}

	body := strings.TrimSuffix(text, "\n")
	idx := len(body)
	for i := 0; i < n; i++ {
		j := strings.LastIndexByte(body[:idx], '\n')
		if j < 0 {
			return text
		}
		idx = j
	}
	return text[idx+1:]
}
