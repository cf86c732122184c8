package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/ticket-storefront/internal/catalog"
	"github.com/iliyamo/ticket-storefront/internal/model"
	"github.com/iliyamo/ticket-storefront/internal/seating"
)

// CatalogHandler serves read-only catalog data.  These routes sit behind
// the Redis response cache.
type CatalogHandler struct {
	Source catalog.Source
	Log    *zap.Logger
}

func NewCatalogHandler(src catalog.Source, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{Source: src, Log: log.Named("catalog")}
}

// ListEvents handles GET /v1/events?page&pageSize&categoryId&location&date&search.
func (h *CatalogHandler) ListEvents(c echo.Context) error {
	page, ok1 := queryInt(c, "page")
	size, ok2 := queryInt(c, "pageSize")
	if !ok1 || !ok2 {
		return badRequest(c, "page and pageSize must be non-negative integers")
	}
	f := catalog.EventFilter{
		Page:     page,
		PageSize: size,
		Location: c.QueryParam("location"),
		Date:     c.QueryParam("date"),
		Search:   c.QueryParam("search"),
	}
	if s := c.QueryParam("categoryId"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil || id <= 0 {
			return badRequest(c, "invalid categoryId")
		}
		f.CategoryID = id
	}

	res, err := h.Source.ListEvents(c.Request().Context(), f)
	if err != nil {
		return catalogError(c, h.Log, err)
	}
	events := make([]eventJSON, 0, len(res.Events))
	for _, e := range res.Events {
		events = append(events, toEvent(e, false))
	}
	return c.JSON(http.StatusOK, echo.Map{"data": events, "pagination": toPage(res.Pagination)})
}

// GetEvent handles GET /v1/events/:id.
func (h *CatalogHandler) GetEvent(c echo.Context) error {
	e, ok, err := h.event(c)
	if !ok {
		return err
	}
	return c.JSON(http.StatusOK, toEvent(e, true))
}

// Seating handles GET /v1/events/:id/performances/:idx/seating and returns
// the padded seat grid of a seat-map performance.
func (h *CatalogHandler) Seating(c echo.Context) error {
	e, ok, err := h.event(c)
	if !ok {
		return err
	}
	idx, err := strconv.Atoi(c.Param("idx"))
	if err != nil || idx < 0 || idx >= len(e.Performances) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "performance not found"})
	}
	m, isSeatMap := e.Performances[idx].Mode().(model.SeatMapMode)
	if !isSeatMap {
		return c.JSON(http.StatusConflict, echo.Map{"error": "performance is not sold by seat"})
	}
	return c.JSON(http.StatusOK, toLayout(seating.Build(m.Sectors), nil))
}

// ListCategories handles GET /v1/categories?page&pageSize&name.
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	page, ok1 := queryInt(c, "page")
	size, ok2 := queryInt(c, "pageSize")
	if !ok1 || !ok2 {
		return badRequest(c, "page and pageSize must be non-negative integers")
	}
	res, err := h.Source.ListCategories(c.Request().Context(), catalog.CategoryFilter{
		Page: page, PageSize: size, Name: c.QueryParam("name"),
	})
	if err != nil {
		return catalogError(c, h.Log, err)
	}
	cats := make([]categoryJSON, 0, len(res.Categories))
	for _, cat := range res.Categories {
		cats = append(cats, toCategory(cat))
	}
	return c.JSON(http.StatusOK, echo.Map{"data": cats, "pagination": toPage(res.Pagination)})
}

// GetCategory handles GET /v1/categories/:id.
func (h *CatalogHandler) GetCategory(c echo.Context) error {
	id, ok := pathInt64(c, "id")
	if !ok {
		return badRequest(c, "invalid category id")
	}
	cat, err := h.Source.GetCategory(c.Request().Context(), id)
	if err != nil {
		return catalogError(c, h.Log, err)
	}
	return c.JSON(http.StatusOK, toCategory(cat))
}

// event loads the event named by the :id path parameter.  When ok is false
// the response has been written and err is what the handler returns.
func (h *CatalogHandler) event(c echo.Context) (model.Event, bool, error) {
	id, ok := pathInt64(c, "id")
	if !ok {
		return model.Event{}, false, badRequest(c, "invalid event id")
	}
	e, err := h.Source.GetEvent(c.Request().Context(), id)
	if err != nil {
		return model.Event{}, false, catalogError(c, h.Log, err)
	}
	return e, true, nil
}
