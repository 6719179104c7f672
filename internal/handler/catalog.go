package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/tripform/internal/catalog"
	"github.com/dharmasatrya/tripform/internal/models"
	"github.com/dharmasatrya/tripform/internal/store"
)

// LookupHandler serves the read-only collaborators: the catalog, the
// existing-email lookup and stored reservations.
type LookupHandler struct {
	catalog *catalog.Catalog
	store   store.Store
}

func NewLookupHandler(cat *catalog.Catalog, s store.Store) *LookupHandler {
	return &LookupHandler{
		catalog: cat,
		store:   s,
	}
}

func (h *LookupHandler) Register(g *echo.Group) {
	g.GET("/catalog", h.Catalog)
	g.GET("/emails/exists", h.EmailExists)
	g.GET("/reservations/:id", h.Reservation)
}

func (h *LookupHandler) Catalog(c echo.Context) error {
	return c.JSON(http.StatusOK, h.catalog.Response())
}

func (h *LookupHandler) EmailExists(c echo.Context) error {
	var req models.EmailExistsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, models.EmailExistsResponse{
		Address: strings.TrimSpace(req.Address),
		Exists:  h.catalog.EmailExists(req.Address),
	})
}

func (h *LookupHandler) Reservation(c echo.Context) error {
	sub, err := h.store.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, sub)
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
