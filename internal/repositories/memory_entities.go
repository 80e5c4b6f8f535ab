package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gustavowmarques/work-logix-v2/internal/models"
	"github.com/gustavowmarques/work-logix-v2/internal/utils"
)

// In-memory implementations of the entity repositories, for tests and
// DB-disabled runs.

// ---------------------------------------------------------------- companies

type MemoryCompanyRepo struct {
	mu        sync.RWMutex
	companies map[uuid.UUID]*models.Company
}

func NewMemoryCompanyRepo() *MemoryCompanyRepo {
	return &MemoryCompanyRepo{companies: map[uuid.UUID]*models.Company{}}
}

func (r *MemoryCompanyRepo) Create(_ context.Context, c *models.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now().UTC()
	}
	r.companies[c.ID] = &cp
	return nil
}

func (r *MemoryCompanyRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.companies[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *MemoryCompanyRepo) Find(_ context.Context, filter CompanyFilter) ([]*models.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*models.Company
	for _, c := range r.companies {
		if filter.IsContractor != nil && c.IsContractor != *filter.IsContractor {
			continue
		}
		if filter.IsPropertyManager != nil && c.IsPropertyManager != *filter.IsPropertyManager {
			continue
		}
		if filter.IsClient != nil && c.IsClient != *filter.IsClient {
			continue
		}
		if filter.BusinessTypeID != nil {
			if c.BusinessTypeID == nil || *c.BusinessTypeID != *filter.BusinessTypeID {
				continue
			}
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryCompanyRepo) Update(_ context.Context, c *models.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[c.ID]; !ok {
		return utils.ErrNotFound
	}
	cp := *c
	r.companies[c.ID] = &cp
	return nil
}

func (r *MemoryCompanyRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[id]; !ok {
		return utils.ErrNotFound
	}
	delete(r.companies, id)
	return nil
}

// ---------------------------------------------------------------- clients

type MemoryClientRepo struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]*models.Client
}

func NewMemoryClientRepo() *MemoryClientRepo {
	return &MemoryClientRepo{clients: map[uuid.UUID]*models.Client{}}
}

func (r *MemoryClientRepo) Create(_ context.Context, c *models.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now().UTC()
	}
	r.clients[c.ID] = &cp
	return nil
}

func (r *MemoryClientRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *MemoryClientRepo) ListAll(_ context.Context) ([]*models.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*models.Client
	for _, c := range r.clients {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryClientRepo) ListByCompanyID(_ context.Context, companyID uuid.UUID) ([]*models.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*models.Client
	for _, c := range r.clients {
		if c.CompanyID != companyID {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryClientRepo) Update(_ context.Context, c *models.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[c.ID]; !ok {
		return utils.ErrNotFound
	}
	cp := *c
	r.clients[c.ID] = &cp
	return nil
}

func (r *MemoryClientRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[id]; !ok {
		return utils.ErrNotFound
	}
	delete(r.clients, id)
	return nil
}

// ---------------------------------------------------------------- units

type MemoryUnitRepo struct {
	mu    sync.RWMutex
	units map[uuid.UUID]*models.Unit
}

func NewMemoryUnitRepo() *MemoryUnitRepo {
	return &MemoryUnitRepo{units: map[uuid.UUID]*models.Unit{}}
}

func (r *MemoryUnitRepo) Create(_ context.Context, u *models.Unit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now().UTC()
	}
	r.units[u.ID] = &cp
	return nil
}

func (r *MemoryUnitRepo) CreateBatch(ctx context.Context, units []*models.Unit) error {
	for _, u := range units {
		if err := r.Create(ctx, u); err != nil {
			return err
		}
	}
	return nil
}

func (r *MemoryUnitRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Unit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.units[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *MemoryUnitRepo) ListByClientID(_ context.Context, clientID uuid.UUID) ([]*models.Unit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*models.Unit
	for _, u := range r.units {
		if u.ClientID != clientID {
			continue
		}
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryUnitRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.units[id]; !ok {
		return utils.ErrNotFound
	}
	delete(r.units, id)
	return nil
}

// ---------------------------------------------------------------- users

type MemoryUserRepo struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*models.User
}

func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{users: map[uuid.UUID]*models.User{}}
}

func (r *MemoryUserRepo) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now().UTC()
	}
	r.users[u.ID] = &cp
	return nil
}

func (r *MemoryUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *MemoryUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemoryUserRepo) ListByCompanyID(_ context.Context, companyID uuid.UUID) ([]*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*models.User
	for _, u := range r.users {
		if u.CompanyID == nil || *u.CompanyID != companyID {
			continue
		}
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

// ---------------------------------------------------------------- unit drafts

type MemoryUnitDraftRepo struct {
	mu     sync.Mutex
	drafts map[uuid.UUID]*models.UnitDraft
}

func NewMemoryUnitDraftRepo() *MemoryUnitDraftRepo {
	return &MemoryUnitDraftRepo{drafts: map[uuid.UUID]*models.UnitDraft{}}
}

func (r *MemoryUnitDraftRepo) Create(_ context.Context, d *models.UnitDraft) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *d
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now().UTC()
	}
	r.drafts[d.ID] = &cp
	return nil
}

func (r *MemoryUnitDraftRepo) GetByID(_ context.Context, id uuid.UUID) (*models.UnitDraft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.drafts[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *MemoryUnitDraftRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drafts, id)
	return nil
}

func (r *MemoryUnitDraftRepo) DeleteExpired(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, d := range r.drafts {
		if d.ExpiresAt.Before(cutoff) {
			delete(r.drafts, id)
			n++
		}
	}
	return n, nil
}
