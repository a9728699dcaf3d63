package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tourhub_backend/internal/query"
	"tourhub_backend/internal/repositories"
	"tourhub_backend/pkg/apperrors"
)

// CRUD is the generic handler factory: one instance serves the full
// create/read/update/delete surface for an entity, so resource handlers
// only add their domain-specific routes.
type CRUD[T any] struct {
	BaseHandler
	repo *repositories.Repository[T]

	// entity names the resource in error messages ("tour", "review", ...).
	entity string

	// idParam is the path param naming the record id. Resources that nest
	// children rename it (tours use :tourID so the nested review routes
	// can share the segment).
	idParam string

	// parentParam/parentColumn scope nested collections, e.g. reviews
	// listed under /tours/:tourID map the tourID path param onto the
	// tour_id column.
	parentParam  string
	parentColumn string

	// beforeCreate runs after binding and before validation. Nested
	// resources use it to fill ids from the path and the session.
	beforeCreate func(c *gin.Context, item *T) error
}

func NewCRUD[T any](base BaseHandler, repo *repositories.Repository[T], entity string) *CRUD[T] {
	return &CRUD[T]{BaseHandler: base, repo: repo, entity: entity, idParam: "id"}
}

// WithIDParam renames the id path param.
func (h *CRUD[T]) WithIDParam(param string) *CRUD[T] {
	h.idParam = param
	return h
}

// WithParent maps a path param onto a column for nested listings.
func (h *CRUD[T]) WithParent(param, column string) *CRUD[T] {
	h.parentParam = param
	h.parentColumn = column
	return h
}

// WithBeforeCreate installs the pre-validation create hook.
func (h *CRUD[T]) WithBeforeCreate(hook func(c *gin.Context, item *T) error) *CRUD[T] {
	h.beforeCreate = hook
	return h
}

// GetAll lists the collection with filtering, sorting, projection and
// pagination taken from the query string.
func (h *CRUD[T]) GetAll(c *gin.Context) {
	features := query.Parse(c.Request.URL.Query())

	var parent repositories.Scope
	if h.parentParam != "" {
		if id := c.Param(h.parentParam); id != "" {
			parent = repositories.Scope{h.parentColumn: id}
		}
	}

	items, err := h.repo.FindAll(features, parent)
	if err != nil {
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}
	SuccessList(c, len(items), gin.H{h.entity + "s": items})
}

// GetOne fetches a single record by id.
func (h *CRUD[T]) GetOne(c *gin.Context) {
	item, err := h.repo.FindByID(c.Param(h.idParam))
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			apperrors.HandleError(c, apperrors.NewNotFoundError(h.entity, "No "+h.entity+" found with that ID"))
			return
		}
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}
	Success(c, http.StatusOK, gin.H{h.entity: item})
}

// CreateOne binds, validates and persists a new record.
func (h *CRUD[T]) CreateOne(c *gin.Context) {
	item := new(T)
	if err := c.ShouldBindJSON(item); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body"))
		return
	}

	if h.beforeCreate != nil {
		if err := h.beforeCreate(c, item); err != nil {
			apperrors.HandleError(c, err)
			return
		}
	}

	if !h.Validate(c, item) {
		return
	}

	if err := h.repo.Create(item); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			apperrors.HandleError(c, apperrors.NewConflictError(h.entity, "Duplicate "+h.entity))
			return
		}
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}
	Success(c, http.StatusCreated, gin.H{h.entity: item})
}

// UpdateOne patches a record: the body is bound over the stored state, so
// omitted fields keep their values, then the whole record is re-validated.
func (h *CRUD[T]) UpdateOne(c *gin.Context) {
	item, err := h.repo.FindByID(c.Param(h.idParam))
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			apperrors.HandleError(c, apperrors.NewNotFoundError(h.entity, "No "+h.entity+" found with that ID"))
			return
		}
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}

	if err := c.ShouldBindJSON(item); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body"))
		return
	}

	if !h.Validate(c, item) {
		return
	}

	if err := h.repo.Save(item); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			apperrors.HandleError(c, apperrors.NewConflictError(h.entity, "Duplicate "+h.entity))
			return
		}
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}
	Success(c, http.StatusOK, gin.H{h.entity: item})
}

// DeleteOne removes a record.
func (h *CRUD[T]) DeleteOne(c *gin.Context) {
	if err := h.repo.Delete(c.Param(h.idParam)); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			apperrors.HandleError(c, apperrors.NewNotFoundError(h.entity, "No "+h.entity+" found with that ID"))
			return
		}
		apperrors.HandleError(c, apperrors.InternalError(err))
		return
	}
	NoContent(c)
}
