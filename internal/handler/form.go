package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/tripform/internal/form"
	"github.com/dharmasatrya/tripform/internal/models"
	"github.com/dharmasatrya/tripform/internal/ratelimit"
	"github.com/dharmasatrya/tripform/internal/session"
	"github.com/dharmasatrya/tripform/internal/store"
)

// FormHandler turns UI events into calls on a session's form and answers
// with the form's current view.
type FormHandler struct {
	registry *session.Registry
	store    store.Store
	limiter  *ratelimit.SessionLimiter
}

func NewFormHandler(registry *session.Registry, s store.Store, limiter *ratelimit.SessionLimiter) *FormHandler {
	return &FormHandler{
		registry: registry,
		store:    s,
		limiter:  limiter,
	}
}

// Register mounts the form routes on g.
func (h *FormHandler) Register(g *echo.Group) {
	g.POST("/forms", h.Create)

	forms := g.Group("/forms/:id", h.limit)
	forms.GET("", h.Get)
	forms.DELETE("", h.Delete)
	forms.PUT("/fields/:name", h.SetField)
	forms.POST("/fields/:name/touch", h.TouchField)
	forms.PUT("/passengers/:index/fields/:name", h.SetPassengerField)
	forms.POST("/passengers/:index/fields/:name/touch", h.TouchPassengerField)
	forms.DELETE("/passengers/:index", h.RemovePassenger)
	forms.PUT("/search", h.Search)
	forms.POST("/submit", h.Submit)
	forms.POST("/reset", h.Reset)
}

func (h *FormHandler) limit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")
		if h.limiter != nil && h.registry.Has(id) && !h.limiter.Allow(id) {
			return errorJSON(c, http.StatusTooManyRequests, "rate_limited", "Too many events for this form, slow down")
		}
		return next(c)
	}
}

func (h *FormHandler) Create(c echo.Context) error {
	_, view := h.registry.Create()
	return c.JSON(http.StatusCreated, view)
}

func (h *FormHandler) Get(c echo.Context) error {
	return h.apply(c, func(*form.Form) error { return nil })
}

func (h *FormHandler) Delete(c echo.Context) error {
	if err := h.registry.Delete(c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *FormHandler) SetField(c echo.Context) error {
	var req models.FieldChangeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	return h.apply(c, func(f *form.Form) error {
		return f.SetFieldValue(req.Name, req.Value)
	})
}

func (h *FormHandler) TouchField(c echo.Context) error {
	var req models.FieldTouchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	return h.apply(c, func(f *form.Form) error {
		return f.MarkTouched(req.Name)
	})
}

func (h *FormHandler) SetPassengerField(c echo.Context) error {
	var req models.PassengerFieldRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	return h.apply(c, func(f *form.Form) error {
		return f.SetPassengerField(req.Index, req.Name, req.Value)
	})
}

func (h *FormHandler) TouchPassengerField(c echo.Context) error {
	var req models.PassengerFieldRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	return h.apply(c, func(f *form.Form) error {
		return f.MarkPassengerTouched(req.Index, req.Name)
	})
}

func (h *FormHandler) RemovePassenger(c echo.Context) error {
	var req models.PassengerRemoveRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	return h.apply(c, func(f *form.Form) error {
		return f.RemovePassenger(req.Index)
	})
}

func (h *FormHandler) Search(c echo.Context) error {
	var req models.SearchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	return h.apply(c, func(f *form.Form) error {
		f.SetSearchQuery(req.Query)
		return nil
	})
}

func (h *FormHandler) Reset(c echo.Context) error {
	return h.apply(c, func(f *form.Form) error {
		f.Reset()
		return nil
	})
}

// Submit hands a valid form's snapshot to the store. An invalid form is
// answered with 422 and its current view so the UI can show every error.
func (h *FormHandler) Submit(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	var (
		sub     models.Submission
		view    models.FormView
		invalid bool
	)
	err := h.registry.Do(id, func(f *form.Form) error {
		snapshot, err := f.Submit()
		if errors.Is(err, models.ErrFormInvalid) {
			invalid = true
			view = f.View()
			return nil
		}
		if err != nil {
			return err
		}
		sub, err = h.store.Save(ctx, snapshot)
		return err
	})
	if err != nil {
		return respondError(c, err)
	}
	if invalid {
		view.ID = id
		return c.JSON(http.StatusUnprocessableEntity, view)
	}

	log.Printf("Reservation %s submitted from form %s", sub.ID, id)
	return c.JSON(http.StatusCreated, sub)
}

// apply runs fn against the form named in the path and answers with its view.
func (h *FormHandler) apply(c echo.Context, fn func(*form.Form) error) error {
	id := c.Param("id")

	var view models.FormView
	err := h.registry.Do(id, func(f *form.Form) error {
		if err := fn(f); err != nil {
			return err
		}
		view = f.View()
		return nil
	})
	if err != nil {
		return respondError(c, err)
	}
	view.ID = id
	return c.JSON(http.StatusOK, view)
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}
