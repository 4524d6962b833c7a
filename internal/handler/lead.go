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

// LeadHandler serves lead CRUD with the same cache/write split as
// customers.
type LeadHandler struct {
	repo   *repository.LeadRepo
	writer *service.Writer
	cache  *cache.Store
	log    zerolog.Logger
}

func NewLeadHandler(repo *repository.LeadRepo, writer *service.Writer, store *cache.Store, log zerolog.Logger) *LeadHandler {
	return &LeadHandler{repo: repo, writer: writer, cache: store, log: log}
}

type createLeadRequest struct {
	LeadName            string              `json:"LeadName" validate:"required,min=2,max=255"`
	LeadEmail           *string             `json:"LeadEmail" validate:"omitempty,email"`
	LeadContactNo       *string             `json:"LeadContactNo"`
	LeadICPassportNo    *string             `json:"LeadICPassportNo"`
	LeadGender          *string             `json:"LeadGender"`
	LeadSalutation      *string             `json:"LeadSalutation"`
	LeadOccupation      *string             `json:"LeadOccupation"`
	LeadNationality     *string             `json:"LeadNationality"`
	LeadAddress         *model.AddressInput `json:"LeadAddress"`
	LeadStatus          *int                `json:"LeadStatus"`
	LeadDateOfBirth     *string             `json:"LeadDateOfBirth"`
	LeadIncome          *float64            `json:"LeadIncome" validate:"omitempty,gte=0"`
	LeadMaritalStatus   *string             `json:"LeadMaritalStatus"`
	LeadRace            *string             `json:"LeadRace"`
	LeadIsBumi          *int                `json:"LeadIsBumi"`
	LeadInterestedType1 *string             `json:"LeadInterestedType1"`
	LeadInterestedType2 *string             `json:"LeadInterestedType2"`
	LeadIsExistingBuyer *int                `json:"LeadIsExistingBuyer"`
	LeadTag             *int                `json:"LeadTag"`
	Remark              *string             `json:"Remark"`
}

func (h *LeadHandler) Create(c echo.Context) error {
	var req createLeadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	lead := model.Lead{
		LeadName:            req.LeadName,
		LeadEmail:           req.LeadEmail,
		LeadContactNo:       req.LeadContactNo,
		LeadICPassportNo:    req.LeadICPassportNo,
		LeadGender:          req.LeadGender,
		LeadSalutation:      req.LeadSalutation,
		LeadOccupation:      req.LeadOccupation,
		LeadNationality:     req.LeadNationality,
		LeadStatus:          req.LeadStatus,
		LeadDateOfBirth:     req.LeadDateOfBirth,
		LeadIncome:          req.LeadIncome,
		LeadMaritalStatus:   req.LeadMaritalStatus,
		LeadRace:            req.LeadRace,
		LeadIsBumi:          req.LeadIsBumi,
		LeadInterestedType1: req.LeadInterestedType1,
		LeadInterestedType2: req.LeadInterestedType2,
		LeadIsExistingBuyer: req.LeadIsExistingBuyer,
		LeadTag:             req.LeadTag,
		Remark:              req.Remark,
	}
	if err := h.writer.CreateLead(c.Request().Context(), actorFrom(c), &lead, req.LeadAddress); err != nil {
		return respondErr(c, err)
	}
	h.log.Info().Str("lead_uuid", lead.LeadUUID).Msg("lead created")
	return c.JSON(http.StatusCreated, lead)
}

func (h *LeadHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("uuid")

	var lead model.Lead
	if err := h.cache.Get(ctx, service.EntityLead, "id:"+id, &lead); err == nil {
		return c.JSON(http.StatusOK, lead)
	}

	lead, err := h.repo.Get(ctx, id)
	if err != nil {
		return respondErr(c, err)
	}
	h.cache.Set(ctx, service.EntityLead, "id:"+id, lead)
	return c.JSON(http.StatusOK, lead)
}

func (h *LeadHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	q := listQueryFrom(c)
	q.Clamp(repository.LeadFilterable, repository.LeadSortable)

	var leads []model.Lead
	if err := h.cache.Get(ctx, service.EntityLead, q.CacheKey(), &leads); err != nil {
		var dbErr error
		leads, dbErr = h.repo.List(ctx, q)
		if dbErr != nil {
			return dbErr
		}
		h.cache.Set(ctx, service.EntityLead, q.CacheKey(), leads)
	}
	return c.JSON(http.StatusOK, echo.Map{"page": q.Page, "pageSize": q.PageSize, "data": leads})
}

type updateLeadRequest struct {
	LeadName            *string  `json:"LeadName" validate:"omitempty,min=2,max=255"`
	LeadEmail           *string  `json:"LeadEmail" validate:"omitempty,email"`
	LeadContactNo       *string  `json:"LeadContactNo"`
	LeadICPassportNo    *string  `json:"LeadICPassportNo"`
	LeadGender          *string  `json:"LeadGender"`
	LeadSalutation      *string  `json:"LeadSalutation"`
	LeadOccupation      *string  `json:"LeadOccupation"`
	LeadNationality     *string  `json:"LeadNationality"`
	LeadAddress         *string  `json:"LeadAddress"`
	LeadStatus          *int     `json:"LeadStatus"`
	LeadDateOfBirth     *string  `json:"LeadDateOfBirth"`
	LeadIncome          *float64 `json:"LeadIncome" validate:"omitempty,gte=0"`
	LeadMaritalStatus   *string  `json:"LeadMaritalStatus"`
	LeadRace            *string  `json:"LeadRace"`
	LeadIsBumi          *int     `json:"LeadIsBumi"`
	LeadInterestedType1 *string  `json:"LeadInterestedType1"`
	LeadInterestedType2 *string  `json:"LeadInterestedType2"`
	LeadIsExistingBuyer *int     `json:"LeadIsExistingBuyer"`
	LeadTag             *int     `json:"LeadTag"`
	Remark              *string  `json:"Remark"`
}

func (r *updateLeadRequest) cols() map[string]any {
	m := map[string]any{}
	putStrCol(m, "LeadName", r.LeadName)
	putStrCol(m, "LeadEmail", r.LeadEmail)
	putStrCol(m, "LeadContactNo", r.LeadContactNo)
	putStrCol(m, "LeadICPassportNo", r.LeadICPassportNo)
	putStrCol(m, "LeadGender", r.LeadGender)
	putStrCol(m, "LeadSalutation", r.LeadSalutation)
	putStrCol(m, "LeadOccupation", r.LeadOccupation)
	putStrCol(m, "LeadNationality", r.LeadNationality)
	putStrCol(m, "LeadAddress", r.LeadAddress)
	putIntCol(m, "LeadStatus", r.LeadStatus)
	putStrCol(m, "LeadDateOfBirth", r.LeadDateOfBirth)
	if r.LeadIncome != nil {
		m["LeadIncome"] = *r.LeadIncome
	}
	putStrCol(m, "LeadMaritalStatus", r.LeadMaritalStatus)
	putStrCol(m, "LeadRace", r.LeadRace)
	putIntCol(m, "LeadIsBumi", r.LeadIsBumi)
	putStrCol(m, "LeadInterestedType1", r.LeadInterestedType1)
	putStrCol(m, "LeadInterestedType2", r.LeadInterestedType2)
	putIntCol(m, "LeadIsExistingBuyer", r.LeadIsExistingBuyer)
	putIntCol(m, "LeadTag", r.LeadTag)
	putStrCol(m, "Remark", r.Remark)
	return m
}

func (h *LeadHandler) Update(c echo.Context) error {
	var req updateLeadRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.writer.UpdateLead(c.Request().Context(), actorFrom(c), c.Param("uuid"), req.cols()); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Lead updated"})
}

func (h *LeadHandler) Delete(c echo.Context) error {
	if err := h.writer.DeleteLead(c.Request().Context(), actorFrom(c), c.Param("uuid")); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Lead deleted"})
}
