package testutil

import (
	"cmp"
	"context"
	"encoding/json"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"seodash/internal/db"
	"seodash/internal/models"
)

// MemoryStore is an in-memory stand-in for the database in handler and job tests.
type MemoryStore struct {
	mu        sync.Mutex
	sites     map[string]models.Site
	keywords  map[string][]models.KeywordRecord
	snapshots []*models.Snapshot
	users     map[string]*models.User
	PingErr   error
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sites:    make(map[string]models.Site),
		keywords: make(map[string][]models.KeywordRecord),
		users:    make(map[string]*models.User),
	}
}

// AddSite registers site with records. The first site added with tracked set
// becomes the tracked site.
func (m *MemoryStore) AddSite(name string, tracked bool, records []models.KeywordRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sites[name] = models.Site{Name: name, DisplayName: name, Tracked: tracked}
	m.keywords[name] = slices.Clone(records)
}

// AddUser registers a session user.
func (m *MemoryStore) AddUser(u *models.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.Sub] = u
}

// Keywords implements keywords.Store.
func (m *MemoryStore) Keywords(_ context.Context, site string) ([]models.KeywordRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.keywords[site]), nil
}

// Sites implements keywords.Store, tracked site first then by name.
func (m *MemoryStore) Sites(context.Context) ([]models.Site, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Site, 0, len(m.sites))
	for _, s := range m.sites {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b models.Site) int {
		if a.Tracked != b.Tracked {
			if a.Tracked {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out, nil
}

// Site implements keywords.Store.
func (m *MemoryStore) Site(_ context.Context, name string) (*models.Site, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sites[name]
	if !ok {
		return nil, db.ErrSiteNotFound
	}
	return &s, nil
}

// Ping reports PingErr.
func (m *MemoryStore) Ping(context.Context) error {
	return m.PingErr
}

// CountKeywordsBySite returns the number of keywords held per site.
func (m *MemoryStore) CountKeywordsBySite(context.Context) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int, len(m.keywords))
	for site, records := range m.keywords {
		out[site] = len(records)
	}
	return out, nil
}

// ReplaceSiteKeywords swaps the site's collection, creating the site if needed.
func (m *MemoryStore) ReplaceSiteKeywords(_ context.Context, site string, records []models.KeywordRecord) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sites[site]; !ok {
		m.sites[site] = models.Site{Name: site, DisplayName: site}
	}
	m.keywords[site] = slices.Clone(records)
	return uuid.New(), nil
}

// SaveSnapshot records a snapshot.
func (m *MemoryStore) SaveSnapshot(_ context.Context, site, kind string, payload any) (*models.Snapshot, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := &models.Snapshot{ID: uuid.New(), Site: site, Kind: kind, Payload: data, CreatedAt: time.Now()}
	m.snapshots = append(m.snapshots, snap)
	return snap, nil
}

// Snapshots returns every saved snapshot in save order.
func (m *MemoryStore) Snapshots() []*models.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.snapshots)
}

// GetUserBySub returns a user added with AddUser.
func (m *MemoryStore) GetUserBySub(_ context.Context, sub string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[sub]
	if !ok {
		return nil, db.ErrUserNotFound
	}
	return u, nil
}
