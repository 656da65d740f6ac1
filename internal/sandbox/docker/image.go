package docker

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/docker/docker/api/types/image"

	"github.com/olxver2025/Inline/internal/model"
)

// EnsureImage makes sure the execution image is present locally. With pull
// disabled a missing image reports model.ErrImageUnavailable.
func (e *Engine) EnsureImage(ctx context.Context, pull bool) error {
	_, err := e.client.ImageInspect(ctx, e.image)
	if err == nil {
		return nil
	}
	if !isNoSuchImage(err) {
		return fmt.Errorf("could not inspect image %s: %w", e.image, err)
	}

	if !pull {
		return fmt.Errorf("image %s not present locally and pulling is disabled: %w", e.image, model.ErrImageUnavailable)
	}

	e.logger.Infof("Pulling image: %s", e.image)
	rc, err := e.client.ImagePull(ctx, e.image, image.PullOptions{})
	if err != nil {
		return fmt.Errorf("could not pull image %s: %w", e.image, err)
	}
	defer rc.Close()

	// Consume the pull response to ensure it completes.
	if _, err := io.Copy(io.Discard, rc); err != nil {
		return fmt.Errorf("could not pull image %s: %w", e.image, err)
	}

	e.logger.Infof("Image ready: %s", e.image)

	return nil
}

func isNoSuchImage(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "no such image")
}
