package handlers

import (
	"context"
	"net/http"

	"github.com/cliptube/backend/internal/models"
)

// requireOwner enforces the mutate-only-your-own rule. It runs after the
// resource has been loaded, so a missing resource already produced 404 and a
// failed check here is always 403. Returns true when the caller may proceed.
func requireOwner(ctx context.Context, w http.ResponseWriter, resource models.Owned, userID string) bool {
	if resource.OwnedBy() != userID {
		respondError(ctx, w, http.StatusForbidden, "you do not own this resource")
		return false
	}
	return true
}
