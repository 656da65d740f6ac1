package docker

import (
	"context"
	"fmt"

	"github.com/olxver2025/Inline/internal/model"
)

// Check performs the engine preflight checks: daemon reachability and local
// presence of the execution image.
func (e *Engine) Check(ctx context.Context) []model.CheckResult {
	results := []model.CheckResult{}

	if _, err := e.client.Ping(ctx); err != nil {
		results = append(results, model.CheckResult{
			ID:      "docker_daemon",
			Status:  model.CheckStatusError,
			Message: fmt.Sprintf("Docker daemon not reachable: %s", err),
		})
		return results
	}
	results = append(results, model.CheckResult{
		ID:      "docker_daemon",
		Status:  model.CheckStatusOK,
		Message: "Docker daemon reachable",
	})

	if _, err := e.client.ImageInspect(ctx, e.image); err != nil {
		if isNoSuchImage(err) {
			results = append(results, model.CheckResult{
				ID:      "image_present",
				Status:  model.CheckStatusWarning,
				Message: fmt.Sprintf("Image %s not present locally, first run will pull it", e.image),
			})
		} else {
			results = append(results, model.CheckResult{
				ID:      "image_present",
				Status:  model.CheckStatusError,
				Message: fmt.Sprintf("Could not inspect image %s: %s", e.image, err),
			})
		}
		return results
	}
	results = append(results, model.CheckResult{
		ID:      "image_present",
		Status:  model.CheckStatusOK,
		Message: fmt.Sprintf("Image present: %s", e.image),
	})

	return results
}
