package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"archival-transform-service/internal/domain"
	"archival-transform-service/internal/ports"

	"github.com/google/uuid"
)

// In-memory implementation of the PackageRepository port, used by
// handler and routine tests.
type MemoryPackageRepository struct {
	mu       sync.Mutex
	packages map[string]*domain.Package
}

func NewMemoryPackageRepository() *MemoryPackageRepository {
	return &MemoryPackageRepository{packages: make(map[string]*domain.Package)}
}

func (m *MemoryPackageRepository) Save(ctx context.Context, pkg *domain.Package) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	pkg.ID = uuid.NewString()
	pkg.Created = now
	pkg.LastModified = now

	stored := *pkg
	m.packages[pkg.ID] = &stored
	return nil
}

func (m *MemoryPackageRepository) Get(ctx context.Context, id string) (*domain.Package, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pkg, ok := m.packages[id]
	if !ok {
		return nil, ports.ErrNotFound
	}

	out := *pkg
	return &out, nil
}

func (m *MemoryPackageRepository) List(ctx context.Context) ([]*domain.Package, error) {
	return m.filter(func(*domain.Package) bool { return true }), nil
}

func (m *MemoryPackageRepository) ListByStatus(ctx context.Context, status domain.Status) ([]*domain.Package, error) {
	return m.filter(func(p *domain.Package) bool { return p.ProcessStatus == status }), nil
}

func (m *MemoryPackageRepository) ListByIdentifier(ctx context.Context, identifier string) ([]*domain.Package, error) {
	return m.filter(func(p *domain.Package) bool { return p.Identifier == identifier }), nil
}

func (m *MemoryPackageRepository) ListByAccession(ctx context.Context, auroraAccession string) ([]*domain.Package, error) {
	return m.filter(func(p *domain.Package) bool { return p.AuroraAccession == auroraAccession }), nil
}

func (m *MemoryPackageRepository) Update(ctx context.Context, pkg *domain.Package) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.packages[pkg.ID]; !ok {
		return ports.ErrNotFound
	}

	pkg.LastModified = time.Now().UTC()
	stored := *pkg
	m.packages[pkg.ID] = &stored
	return nil
}

func (m *MemoryPackageRepository) filter(keep func(*domain.Package) bool) []*domain.Package {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.Package, 0, len(m.packages))
	for _, pkg := range m.packages {
		if keep(pkg) {
			cp := *pkg
			out = append(out, &cp)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Created.Before(out[j].Created) })
	return out
}
