package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jiahongggg/Skyworld-UserAPI/internal/middleware"
	"github.com/jiahongggg/Skyworld-UserAPI/internal/repository"
	"github.com/jiahongggg/Skyworld-UserAPI/internal/service"
)

// respondErr maps domain errors onto HTTP responses. Anything unmapped
// bubbles to the global error handler as a 500.
func respondErr(c echo.Context, err error) error {
	var fkErr *service.ForeignKeyError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Record not found"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"message": "Record already exists"})
	case errors.Is(err, repository.ErrEmptyUpdate):
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "No updatable fields"})
	case errors.As(err, &fkErr):
		return c.JSON(http.StatusBadRequest, echo.Map{"message": fkErr.Error()})
	default:
		return err
	}
}

// listQueryFrom parses the shared pagination/filter/sort query params.
// Clamping against the entity whitelists happens in the handler.
func listQueryFrom(c echo.Context) repository.ListQuery {
	page, _ := strconv.Atoi(c.QueryParam("pageNumber"))
	size, _ := strconv.Atoi(c.QueryParam("pageSize"))
	return repository.ListQuery{
		Page:      page,
		PageSize:  size,
		FilterCol: c.QueryParam("filterBy"),
		FilterVal: c.QueryParam("filterValue"),
		SortCol:   c.QueryParam("sortBy"),
		SortDesc:  c.QueryParam("sortDir") == "desc",
	}
}

func actorFrom(c echo.Context) string {
	if v, ok := c.Get(middleware.CtxUsername).(string); ok && v != "" {
		return v
	}
	return "system"
}
