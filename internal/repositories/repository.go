package repositories

import (
	"errors"

	"tourhub_backend/internal/query"

	"gorm.io/gorm"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicate      = errors.New("record already exists")
)

// Scope is a set of column equality constraints, used for parent-scoped
// collections (e.g. reviews of one tour) and default scopes (e.g. hiding
// secret tours).
type Scope map[string]interface{}

// Repository is the generic persistence layer the CRUD factory is built on.
// One instance per entity type, sharing a single gorm pool.
type Repository[T any] struct {
	db           *gorm.DB
	defaultScope Scope
	preloads     []string
}

func NewRepository[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// WithDefaultScope adds constraints applied to every list query.
func (r *Repository[T]) WithDefaultScope(scope Scope) *Repository[T] {
	r.defaultScope = scope
	return r
}

// WithPreloads adds relations resolved on single-record reads.
func (r *Repository[T]) WithPreloads(preloads ...string) *Repository[T] {
	r.preloads = preloads
	return r
}

func (r *Repository[T]) scoped(db *gorm.DB) *gorm.DB {
	for col, val := range r.defaultScope {
		db = db.Where(col+" = ?", val)
	}
	return db
}

// FindAll lists entities constrained by the optional parent scope with the
// parsed query features applied.
func (r *Repository[T]) FindAll(features *query.Features, parent Scope) ([]T, error) {
	var items []T

	db := r.scoped(r.db.Model(new(T)))
	for col, val := range parent {
		db = db.Where(col+" = ?", val)
	}
	if features != nil {
		db = features.Apply(db)
	}

	if err := db.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID resolves a single entity, preloading the configured relations.
// The default scope intentionally does not apply here: direct-id reads can
// reach records hidden from listings.
func (r *Repository[T]) FindByID(id string) (*T, error) {
	var item T

	db := r.db
	for _, preload := range r.preloads {
		db = db.Preload(preload)
	}

	err := db.First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *Repository[T]) Create(item *T) error {
	if err := r.db.Create(item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// Save persists the full entity state.
func (r *Repository[T]) Save(item *T) error {
	if err := r.db.Save(item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *Repository[T]) Delete(id string) error {
	res := r.db.Delete(new(T), "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Count counts entities under the default scope plus the given constraints.
func (r *Repository[T]) Count(parent Scope) (int64, error) {
	var count int64
	db := r.scoped(r.db.Model(new(T)))
	for col, val := range parent {
		db = db.Where(col+" = ?", val)
	}
	err := db.Count(&count).Error
	return count, err
}
