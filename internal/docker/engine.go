package docker

import (
	"context"
	"time"

	"github.com/docker/docker/client"
	"github.com/pkg/errors"
)

// pingTimeout bounds the daemon liveness probe; generous enough for
// Docker Desktop, which responds slower than native Linux.
const pingTimeout = 5 * time.Second

// Engine wraps the Docker Engine SDK client for the operations that are
// cheaper and safer through the API than through the CLI: inspecting
// local images and applying tags. DOCKER_HOST is honored via FromEnv.
type Engine struct {
	inner *client.Client
}

// NewEngine creates an SDK client with API version negotiation, so we
// do not pin an API version the local daemon may not speak.
func NewEngine() (*Engine, error) {
	c, err := client.NewClientWithOpts(
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create docker engine client")
	}
	return &Engine{inner: c}, nil
}

// Ping verifies the daemon is reachable before we rely on it.
func (e *Engine) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if _, err := e.inner.Ping(pingCtx); err != nil {
		return errors.Wrap(err, "docker daemon is not responding — is docker running?")
	}
	return nil
}

// ImageExists reports whether the ref resolves to a local image.
func (e *Engine) ImageExists(ctx context.Context, ref string) (bool, error) {
	_, _, err := e.inner.ImageInspectWithRaw(ctx, ref)
	if err != nil {
		if client.IsErrNotFound(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "failed to inspect image %q", ref)
	}
	return true, nil
}

// Tag applies target as an additional tag on the image source points to.
func (e *Engine) Tag(ctx context.Context, source, target string) error {
	if err := e.inner.ImageTag(ctx, source, target); err != nil {
		return errors.Wrapf(err, "failed to tag %q as %q", source, target)
	}
	return nil
}

// Close releases the SDK client's resources.
func (e *Engine) Close() error {
	if e.inner != nil {
		return e.inner.Close()
	}
	return nil
}
