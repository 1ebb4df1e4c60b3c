package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"archival-transform-service/internal/api/dto"
	"archival-transform-service/internal/domain"
	"archival-transform-service/internal/ports"
)

// PackageHandler exposes package storage and retrieval endpoints.
type PackageHandler struct {
	Repo ports.PackageRepository
}

// Collection handles POST (store) and GET (list) on /packages.
func (h *PackageHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.create(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *PackageHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePackageRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	identifier := strings.TrimSpace(req.Identifier)
	if identifier == "" {
		writeError(w, r, http.StatusBadRequest, "identifier is required")
		return
	}
	if strings.TrimSpace(req.PackageType) == "" {
		writeError(w, r, http.StatusBadRequest, "package_type is required")
		return
	}

	origin := req.Origin
	if origin == "" {
		origin = domain.OriginAurora
	}

	pkg := &domain.Package{
		Identifier:    identifier,
		Type:          req.PackageType,
		Origin:        origin,
		ProcessStatus: domain.InitialStatus(origin),
		StorageURI:    req.StorageURI,
		Data:          req.Data,
	}
	if pkg.Data != nil {
		pkg.AuroraAccession, _ = pkg.Data["accession"].(string)
		pkg.AuroraTransfer, _ = pkg.Data["url"].(string)
	}
	// Non-Aurora packages already exist in the description system as a
	// component, so they carry its URI from the start.
	if origin != domain.OriginAurora {
		pkg.ArchivesSpaceTransfer = req.ArchivesSpaceURI
	}

	if err := h.Repo.Save(r.Context(), pkg); err != nil {
		writeFailure(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, packageResponse(pkg))
}

func (h *PackageHandler) list(w http.ResponseWriter, r *http.Request) {
	pkgs, err := h.Repo.List(r.Context())
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	res := dto.ListPackagesResponse{
		Packages: make([]dto.PackageResponse, 0, len(pkgs)),
	}
	for _, p := range pkgs {
		res.Packages = append(res.Packages, packageResponse(p))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Get handles GET /packages/{id}.
func (h *PackageHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/packages/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "package not found")
		return
	}

	pkg, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, packageResponse(pkg))
}

func packageResponse(p *domain.Package) dto.PackageResponse {
	return dto.PackageResponse{
		ID:                         p.ID,
		Identifier:                 p.Identifier,
		PackageType:                p.Type,
		Origin:                     p.Origin,
		ProcessStatus:              int(p.ProcessStatus),
		ProcessStatusDisplay:       p.ProcessStatus.String(),
		StorageURI:                 p.StorageURI,
		Data:                       p.Data,
		AuroraAccession:            p.AuroraAccession,
		AuroraTransfer:             p.AuroraTransfer,
		ArchivesSpaceAccession:     p.ArchivesSpaceAccession,
		ArchivesSpaceGroup:         p.ArchivesSpaceGroup,
		ArchivesSpaceTransfer:      p.ArchivesSpaceTransfer,
		ArchivesSpaceDigitalObject: p.ArchivesSpaceDigitalObject,
		Created:                    p.Created,
		LastModified:               p.LastModified,
	}
}
