package memory

import (
	"sync"

	"github.com/omarshaarawi/scorebot/internal/view"
)

// Repository keeps each chat's filter selections for the lifetime of the
// process.
type Repository struct {
	filters map[int64]view.Filters
	mu      sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{filters: make(map[int64]view.Filters)}
}

func (r *Repository) SaveFilters(chatID int64, f view.Filters) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filters[chatID] = f
}

// GetFilters returns the chat's filters, or the defaults if it never set any.
func (r *Repository) GetFilters(chatID int64) view.Filters {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if f, ok := r.filters[chatID]; ok {
		return f
	}
	return view.DefaultFilters()
}

func (r *Repository) ResetFilters(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.filters, chatID)
}
