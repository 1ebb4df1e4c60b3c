package api

import (
	"net/http"

	"archival-transform-service/internal/api/handlers"
	"archival-transform-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	repo ports.PackageRepository,
	description ports.DescriptionRepository,
	workflow ports.WorkflowClient,
	db handlers.Pinger,
) http.Handler {
	mux := http.NewServeMux()

	pkgHandler := &handlers.PackageHandler{Repo: repo}
	routineHandler := &handlers.RoutineHandler{
		Repo:        repo,
		Description: description,
	}
	updateHandler := &handlers.UpdateHandler{
		Repo:     repo,
		Workflow: workflow,
	}
	statusHandler := &handlers.StatusHandler{DB: db}

	mux.HandleFunc("/packages", pkgHandler.Collection)
	mux.HandleFunc("/packages/", pkgHandler.Get)
	mux.HandleFunc("/accessions", routineHandler.Accessions)
	mux.HandleFunc("/grouping-components", routineHandler.GroupingComponents)
	mux.HandleFunc("/transfer-components", routineHandler.TransferComponents)
	mux.HandleFunc("/digital-objects", routineHandler.DigitalObjects)
	mux.HandleFunc("/send-update", updateHandler.SendUpdate)
	mux.HandleFunc("/send-accession-update", updateHandler.SendAccessionUpdate)
	mux.HandleFunc("/status", statusHandler.Status)

	return requestIDMiddleware(loggingMiddleware(mux))
}
