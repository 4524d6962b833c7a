package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jiahongggg/Skyworld-UserAPI/internal/model"
	"github.com/jiahongggg/Skyworld-UserAPI/internal/repository"
	"github.com/jiahongggg/Skyworld-UserAPI/internal/service"
)

// EmergencyHandler serves customer emergency contacts. The contact
// number and email, when supplied, must already exist in their global
// reference tables; the write coordinator enforces that.
type EmergencyHandler struct {
	repo   *repository.EmergencyRepo
	writer *service.Writer
}

func NewEmergencyHandler(repo *repository.EmergencyRepo, writer *service.Writer) *EmergencyHandler {
	return &EmergencyHandler{repo: repo, writer: writer}
}

type createEmergencyRequest struct {
	EmergencyName      string  `json:"EmergencyName" validate:"required,min=2,max=255"`
	EmergencyContactNo *string `json:"EmergencyContactNo"`
	EmergencyEmail     *string `json:"EmergencyEmail" validate:"omitempty,email"`
	Remark             *string `json:"Remark"`
}

func (h *EmergencyHandler) Create(c echo.Context) error {
	var req createEmergencyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if req.EmergencyContactNo == nil && req.EmergencyEmail == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "either EmergencyContactNo or EmergencyEmail is required")
	}

	e := model.EmergencyContact{
		EmergencyName:      req.EmergencyName,
		EmergencyContactNo: req.EmergencyContactNo,
		EmergencyEmail:     req.EmergencyEmail,
		Remark:             req.Remark,
	}
	if _, err := h.writer.CreateEmergency(c.Request().Context(), actorFrom(c), &e); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, e)
}

func emergencyID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid emergency contact id")
	}
	return id, nil
}

func (h *EmergencyHandler) Get(c echo.Context) error {
	id, err := emergencyID(c)
	if err != nil {
		return err
	}
	e, err := h.repo.Get(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, e)
}

// List pages through emergency contacts. The table has no filterable or
// sortable columns exposed, so only pagination applies.
func (h *EmergencyHandler) List(c echo.Context) error {
	q := listQueryFrom(c)
	q.Clamp(nil, nil)
	contacts, err := h.repo.List(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"page": q.Page, "pageSize": q.PageSize, "data": contacts})
}

type updateEmergencyRequest struct {
	EmergencyName      *string `json:"EmergencyName" validate:"omitempty,min=2,max=255"`
	EmergencyContactNo *string `json:"EmergencyContactNo"`
	EmergencyEmail     *string `json:"EmergencyEmail" validate:"omitempty,email"`
	Remark             *string `json:"Remark"`
}

func (h *EmergencyHandler) Update(c echo.Context) error {
	id, err := emergencyID(c)
	if err != nil {
		return err
	}
	var req updateEmergencyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	cols := map[string]any{}
	putStrCol(cols, "EmergencyName", req.EmergencyName)
	putStrCol(cols, "EmergencyContactNo", req.EmergencyContactNo)
	putStrCol(cols, "EmergencyEmail", req.EmergencyEmail)
	putStrCol(cols, "Remark", req.Remark)

	if err := h.writer.UpdateEmergency(c.Request().Context(), actorFrom(c), id, cols); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Emergency contact updated"})
}

func (h *EmergencyHandler) Delete(c echo.Context) error {
	id, err := emergencyID(c)
	if err != nil {
		return err
	}
	if err := h.writer.DeleteEmergency(c.Request().Context(), actorFrom(c), id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Emergency contact deleted"})
}
