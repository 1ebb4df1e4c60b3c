package handlers

import (
	"context"
	"net/http"

	"archival-transform-service/internal/api/dto"
	"archival-transform-service/internal/ports"
	"archival-transform-service/internal/services"
)

// UpdateHandler exposes the endpoints that report transformation
// outcomes back to the workflow system.
type UpdateHandler struct {
	Repo     ports.PackageRepository
	Workflow ports.WorkflowClient
}

func (h *UpdateHandler) SendUpdate(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, services.SendTransferUpdates)
}

func (h *UpdateHandler) SendAccessionUpdate(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, services.SendAccessionUpdates)
}

type updateFunc func(context.Context, ports.PackageRepository, ports.WorkflowClient) (services.RoutineResult, error)

func (h *UpdateHandler) run(w http.ResponseWriter, r *http.Request, update updateFunc) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	result, err := update(r.Context(), h.Repo, h.Workflow)
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.RoutineResponse{
		Detail:    result.Summary,
		Processed: result.Processed,
		Count:     result.Created,
	})
}
