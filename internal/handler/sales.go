package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/jiahongggg/Skyworld-UserAPI/internal/cache"
	"github.com/jiahongggg/Skyworld-UserAPI/internal/model"
	"github.com/jiahongggg/Skyworld-UserAPI/internal/repository"
	"github.com/jiahongggg/Skyworld-UserAPI/internal/service"
)

// SalesHandler serves sales-agent CRUD.
type SalesHandler struct {
	repo   *repository.SalesRepo
	writer *service.Writer
	cache  *cache.Store
	log    zerolog.Logger
}

func NewSalesHandler(repo *repository.SalesRepo, writer *service.Writer, store *cache.Store, log zerolog.Logger) *SalesHandler {
	return &SalesHandler{repo: repo, writer: writer, cache: store, log: log}
}

type createSalesRequest struct {
	AgentName         string              `json:"AgentName" validate:"required,min=2,max=255"`
	AgentAge          *int                `json:"AgentAge" validate:"omitempty,gte=18,lte=100"`
	AgentGender       *string             `json:"AgentGender"`
	AgentEmail        *string             `json:"AgentEmail" validate:"omitempty,email"`
	AgentICPassportNo *string             `json:"AgentICPassportNo"`
	AgentSalutation   *string             `json:"AgentSalutation"`
	AgentNationality  *string             `json:"AgentNationality"`
	AgentContactNo    *string             `json:"AgentContactNo"`
	AgentAddress      *model.AddressInput `json:"AgentAddress"`
	SalesGroupingID   *int                `json:"SalesGroupingID"`
	SalesTeamID       *int                `json:"SalesTeamID"`
	SalesTypeID       *int                `json:"SalesTypeID"`
	Remark            *string             `json:"Remark"`
}

func (h *SalesHandler) Create(c echo.Context) error {
	var req createSalesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	agent := model.SalesAgent{
		AgentName:         req.AgentName,
		AgentAge:          req.AgentAge,
		AgentGender:       req.AgentGender,
		AgentEmail:        req.AgentEmail,
		AgentICPassportNo: req.AgentICPassportNo,
		AgentSalutation:   req.AgentSalutation,
		AgentNationality:  req.AgentNationality,
		AgentContactNo:    req.AgentContactNo,
		SalesGroupingID:   req.SalesGroupingID,
		SalesTeamID:       req.SalesTeamID,
		SalesTypeID:       req.SalesTypeID,
		Remark:            req.Remark,
	}
	if err := h.writer.CreateSalesAgent(c.Request().Context(), actorFrom(c), &agent, req.AgentAddress); err != nil {
		return respondErr(c, err)
	}
	h.log.Info().Str("sales_agent_id", agent.SalesAgentID).Msg("sales agent created")
	return c.JSON(http.StatusCreated, agent)
}

func (h *SalesHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	var agent model.SalesAgent
	if err := h.cache.Get(ctx, service.EntitySales, "id:"+id, &agent); err == nil {
		return c.JSON(http.StatusOK, agent)
	}

	agent, err := h.repo.Get(ctx, id)
	if err != nil {
		return respondErr(c, err)
	}
	h.cache.Set(ctx, service.EntitySales, "id:"+id, agent)
	return c.JSON(http.StatusOK, agent)
}

func (h *SalesHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	q := listQueryFrom(c)
	q.Clamp(repository.SalesFilterable, repository.SalesSortable)

	var agents []model.SalesAgent
	if err := h.cache.Get(ctx, service.EntitySales, q.CacheKey(), &agents); err != nil {
		var dbErr error
		agents, dbErr = h.repo.List(ctx, q)
		if dbErr != nil {
			return dbErr
		}
		h.cache.Set(ctx, service.EntitySales, q.CacheKey(), agents)
	}
	return c.JSON(http.StatusOK, echo.Map{"page": q.Page, "pageSize": q.PageSize, "data": agents})
}

type updateSalesRequest struct {
	AgentName         *string `json:"AgentName" validate:"omitempty,min=2,max=255"`
	AgentAge          *int    `json:"AgentAge" validate:"omitempty,gte=18,lte=100"`
	AgentGender       *string `json:"AgentGender"`
	AgentEmail        *string `json:"AgentEmail" validate:"omitempty,email"`
	AgentICPassportNo *string `json:"AgentICPassportNo"`
	AgentSalutation   *string `json:"AgentSalutation"`
	AgentNationality  *string `json:"AgentNationality"`
	AgentContactNo    *string `json:"AgentContactNo"`
	AgentAddress      *string `json:"AgentAddress"`
	SalesGroupingID   *int    `json:"SalesGroupingID"`
	SalesTeamID       *int    `json:"SalesTeamID"`
	SalesTypeID       *int    `json:"SalesTypeID"`
	Remark            *string `json:"Remark"`
}

func (r *updateSalesRequest) cols() map[string]any {
	m := map[string]any{}
	putStrCol(m, "AgentName", r.AgentName)
	putIntCol(m, "AgentAge", r.AgentAge)
	putStrCol(m, "AgentGender", r.AgentGender)
	putStrCol(m, "AgentEmail", r.AgentEmail)
	putStrCol(m, "AgentICPassportNo", r.AgentICPassportNo)
	putStrCol(m, "AgentSalutation", r.AgentSalutation)
	putStrCol(m, "AgentNationality", r.AgentNationality)
	putStrCol(m, "AgentContactNo", r.AgentContactNo)
	putStrCol(m, "AgentAddress", r.AgentAddress)
	putIntCol(m, "SalesGroupingID", r.SalesGroupingID)
	putIntCol(m, "SalesTeamID", r.SalesTeamID)
	putIntCol(m, "SalesTypeID", r.SalesTypeID)
	putStrCol(m, "Remark", r.Remark)
	return m
}

func (h *SalesHandler) Update(c echo.Context) error {
	var req updateSalesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.writer.UpdateSalesAgent(c.Request().Context(), actorFrom(c), c.Param("id"), req.cols()); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Sales agent updated"})
}

func (h *SalesHandler) Delete(c echo.Context) error {
	if err := h.writer.DeleteSalesAgent(c.Request().Context(), actorFrom(c), c.Param("id")); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Sales agent deleted"})
}
