// Package crud generates list/get/create/update/delete handlers from a small
// per-entity configuration, so every collection shares one pagination,
// filtering and error-envelope contract.
package crud

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/manyinyire/Outleads-sub001/pkg/util"
)

// Store is the persistence contract the factory drives. List applies the
// store's configured search columns and default ordering.
type Store[T any] interface {
	List(ctx context.Context, q ListQuery) ([]T, int64, error)
	GetByID(ctx context.Context, id string) (*T, error)
	Insert(ctx context.Context, row *T) error
	Save(ctx context.Context, row *T) error
	Delete(ctx context.Context, id string) error
}

// Hook runs after a successful mutation, e.g. cache invalidation.
type Hook[T any] func(ctx context.Context, row *T)

// Config drives handler generation for one entity.
type Config[T any] struct {
	// EntityName is the display label used in error messages.
	EntityName string
	Store      Store[T]

	// DecodeCreate parses and validates the request body into a new row.
	DecodeCreate func(c *fiber.Ctx) (*T, error)
	// DecodeUpdate parses a partial body and applies it to the loaded row.
	DecodeUpdate func(c *fiber.Ctx, row *T) error

	// Present shapes a row for responses. Defaults to the row itself.
	Present func(row *T) any

	// FilterFields are query parameters passed through to the store as
	// equality filters.
	FilterFields []string

	AfterCreate Hook[T]
	AfterUpdate Hook[T]
	AfterDelete Hook[T]
}

// Handlers bundles the generated fiber handlers for one entity.
type Handlers[T any] struct {
	cfg Config[T]
}

// New builds handlers from the configuration.
func New[T any](cfg Config[T]) *Handlers[T] {
	if cfg.Present == nil {
		cfg.Present = func(row *T) any { return row }
	}
	return &Handlers[T]{cfg: cfg}
}

// List handles GET /<entity> with page/limit/sortBy/sortOrder/search.
func (h *Handlers[T]) List(c *fiber.Ctx) error {
	q := ParseListQuery(c, h.cfg.FilterFields)

	rows, total, err := h.cfg.Store.List(c.UserContext(), q)
	if err != nil {
		return apperrors.MapError(err)
	}

	items := make([]any, 0, len(rows))
	for i := range rows {
		items = append(items, h.cfg.Present(&rows[i]))
	}
	return c.JSON(fiber.Map{
		"data": items,
		"meta": NewMeta(total, q.Page, q.Limit),
	})
}

// Get handles GET /<entity>/:id.
func (h *Handlers[T]) Get(c *fiber.Ctx) error {
	row, err := h.load(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": h.cfg.Present(row)})
}

// Create handles POST /<entity>.
func (h *Handlers[T]) Create(c *fiber.Ctx) error {
	row, err := h.cfg.DecodeCreate(c)
	if err != nil {
		return err
	}
	if err := h.cfg.Store.Insert(c.UserContext(), row); err != nil {
		return apperrors.MapError(err)
	}
	if h.cfg.AfterCreate != nil {
		h.cfg.AfterCreate(c.UserContext(), row)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": h.cfg.Present(row)})
}

// Update handles PUT /<entity>/:id with optional fields.
func (h *Handlers[T]) Update(c *fiber.Ctx) error {
	row, err := h.load(c)
	if err != nil {
		return err
	}
	if err := h.cfg.DecodeUpdate(c, row); err != nil {
		return err
	}
	if err := h.cfg.Store.Save(c.UserContext(), row); err != nil {
		return apperrors.MapError(err)
	}
	if h.cfg.AfterUpdate != nil {
		h.cfg.AfterUpdate(c.UserContext(), row)
	}
	return c.JSON(fiber.Map{"data": h.cfg.Present(row)})
}

// Delete handles DELETE /<entity>/:id. Rows still referenced elsewhere
// surface as 409 via foreign-key mapping.
func (h *Handlers[T]) Delete(c *fiber.Ctx) error {
	row, err := h.load(c)
	if err != nil {
		return err
	}
	if err := h.cfg.Store.Delete(c.UserContext(), c.Params("id")); err != nil {
		return apperrors.MapError(err)
	}
	if h.cfg.AfterDelete != nil {
		h.cfg.AfterDelete(c.UserContext(), row)
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *Handlers[T]) load(c *fiber.Ctx) (*T, error) {
	id := c.Params("id")
	if id == "" {
		return nil, apperrors.NewValidationError("id required", nil)
	}
	row, err := h.cfg.Store.GetByID(c.UserContext(), id)
	if err != nil {
		domainErr := apperrors.ToDomainError(err)
		if domainErr.HTTPStatus == http.StatusNotFound {
			return nil, apperrors.NewNotFound(h.cfg.EntityName, nil)
		}
		return nil, domainErr
	}
	return row, nil
}
