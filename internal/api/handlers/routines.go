package handlers

import (
	"context"
	"net/http"

	"archival-transform-service/internal/api/dto"
	"archival-transform-service/internal/ports"
	"archival-transform-service/internal/services"
)

// RoutineHandler exposes one POST endpoint per transformation routine.
// Each invocation processes every package sitting in the routine's
// input status; failures are terminal for the request.
type RoutineHandler struct {
	Repo        ports.PackageRepository
	Description ports.DescriptionRepository
}

func (h *RoutineHandler) Accessions(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, services.ProcessAccessions)
}

func (h *RoutineHandler) GroupingComponents(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, services.ProcessGroupingComponents)
}

func (h *RoutineHandler) TransferComponents(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, services.ProcessTransferComponents)
}

func (h *RoutineHandler) DigitalObjects(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, services.ProcessDigitalObjects)
}

type routineFunc func(context.Context, ports.PackageRepository, ports.DescriptionRepository) (services.RoutineResult, error)

func (h *RoutineHandler) run(w http.ResponseWriter, r *http.Request, routine routineFunc) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	result, err := routine(r.Context(), h.Repo, h.Description)
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
