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

// CustomerHandler serves customer CRUD. Reads go through the cache;
// writes go through the write coordinator, which invalidates the cache
// after commit.
type CustomerHandler struct {
	repo   *repository.CustomerRepo
	writer *service.Writer
	cache  *cache.Store
	log    zerolog.Logger
}

func NewCustomerHandler(repo *repository.CustomerRepo, writer *service.Writer, store *cache.Store, log zerolog.Logger) *CustomerHandler {
	return &CustomerHandler{repo: repo, writer: writer, cache: store, log: log}
}

type createCustomerRequest struct {
	CustomerName          string              `json:"CustomerName" validate:"required,min=2,max=255"`
	CustomerEmail         *string             `json:"CustomerEmail" validate:"omitempty,email"`
	CustomerContactNo     *string             `json:"CustomerContactNo"`
	CustomerICPassportNo  *string             `json:"CustomerICPassportNo"`
	CustomerGender        *string             `json:"CustomerGender"`
	CustomerSalutation    *string             `json:"CustomerSalutation"`
	CustomerOccupation    *string             `json:"CustomerOccupation"`
	CustomerNationality   *string             `json:"CustomerNationality"`
	CustomerAddress       *model.AddressInput `json:"CustomerAddress"`
	CustomerStatus        *int                `json:"CustomerStatus"`
	CustomerDateOfBirth   *string             `json:"CustomerDateOfBirth"`
	CustomerIncome        *float64            `json:"CustomerIncome" validate:"omitempty,gte=0"`
	CustomerMaritalStatus *string             `json:"CustomerMaritalStatus"`
	CustomerRace          *string             `json:"CustomerRace"`
	CustomerIsBumi        *int                `json:"CustomerIsBumi"`
	CustomerLanguage      *string             `json:"CustomerLanguage"`
	CustomerTag           *int                `json:"CustomerTag"`
	Remark                *string             `json:"Remark"`
}

func (h *CustomerHandler) Create(c echo.Context) error {
	var req createCustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	cust := model.Customer{
		CustomerName:          req.CustomerName,
		CustomerEmail:         req.CustomerEmail,
		CustomerContactNo:     req.CustomerContactNo,
		CustomerICPassportNo:  req.CustomerICPassportNo,
		CustomerGender:        req.CustomerGender,
		CustomerSalutation:    req.CustomerSalutation,
		CustomerOccupation:    req.CustomerOccupation,
		CustomerNationality:   req.CustomerNationality,
		CustomerStatus:        req.CustomerStatus,
		CustomerDateOfBirth:   req.CustomerDateOfBirth,
		CustomerIncome:        req.CustomerIncome,
		CustomerMaritalStatus: req.CustomerMaritalStatus,
		CustomerRace:          req.CustomerRace,
		CustomerIsBumi:        req.CustomerIsBumi,
		CustomerLanguage:      req.CustomerLanguage,
		CustomerTag:           req.CustomerTag,
		Remark:                req.Remark,
	}
	if err := h.writer.CreateCustomer(c.Request().Context(), actorFrom(c), &cust, req.CustomerAddress); err != nil {
		return respondErr(c, err)
	}
	h.log.Info().Str("customer_uuid", cust.CustomerUUID).Msg("customer created")
	return c.JSON(http.StatusCreated, cust)
}

func (h *CustomerHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("uuid")

	var cust model.Customer
	if err := h.cache.Get(ctx, service.EntityCustomer, "id:"+id, &cust); err == nil {
		return c.JSON(http.StatusOK, cust)
	}

	cust, err := h.repo.Get(ctx, id)
	if err != nil {
		return respondErr(c, err)
	}
	h.cache.Set(ctx, service.EntityCustomer, "id:"+id, cust)
	return c.JSON(http.StatusOK, cust)
}

func (h *CustomerHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	q := listQueryFrom(c)
	q.Clamp(repository.CustomerFilterable, repository.CustomerSortable)

	var customers []model.Customer
	if err := h.cache.Get(ctx, service.EntityCustomer, q.CacheKey(), &customers); err != nil {
		var dbErr error
		customers, dbErr = h.repo.List(ctx, q)
		if dbErr != nil {
			return dbErr
		}
		h.cache.Set(ctx, service.EntityCustomer, q.CacheKey(), customers)
	}
	return c.JSON(http.StatusOK, echo.Map{"page": q.Page, "pageSize": q.PageSize, "data": customers})
}

type updateCustomerRequest struct {
	CustomerName          *string  `json:"CustomerName" validate:"omitempty,min=2,max=255"`
	CustomerEmail         *string  `json:"CustomerEmail" validate:"omitempty,email"`
	CustomerContactNo     *string  `json:"CustomerContactNo"`
	CustomerICPassportNo  *string  `json:"CustomerICPassportNo"`
	CustomerGender        *string  `json:"CustomerGender"`
	CustomerSalutation    *string  `json:"CustomerSalutation"`
	CustomerOccupation    *string  `json:"CustomerOccupation"`
	CustomerNationality   *string  `json:"CustomerNationality"`
	CustomerAddress       *string  `json:"CustomerAddress"`
	CustomerStatus        *int     `json:"CustomerStatus"`
	CustomerDateOfBirth   *string  `json:"CustomerDateOfBirth"`
	CustomerIncome        *float64 `json:"CustomerIncome" validate:"omitempty,gte=0"`
	CustomerMaritalStatus *string  `json:"CustomerMaritalStatus"`
	CustomerRace          *string  `json:"CustomerRace"`
	CustomerIsBumi        *int     `json:"CustomerIsBumi"`
	CustomerLanguage      *string  `json:"CustomerLanguage"`
	CustomerTag           *int     `json:"CustomerTag"`
	Remark                *string  `json:"Remark"`
}

func (r *updateCustomerRequest) cols() map[string]any {
	m := map[string]any{}
	putStrCol(m, "CustomerName", r.CustomerName)
	putStrCol(m, "CustomerEmail", r.CustomerEmail)
	putStrCol(m, "CustomerContactNo", r.CustomerContactNo)
	putStrCol(m, "CustomerICPassportNo", r.CustomerICPassportNo)
	putStrCol(m, "CustomerGender", r.CustomerGender)
	putStrCol(m, "CustomerSalutation", r.CustomerSalutation)
	putStrCol(m, "CustomerOccupation", r.CustomerOccupation)
	putStrCol(m, "CustomerNationality", r.CustomerNationality)
	putStrCol(m, "CustomerAddress", r.CustomerAddress)
	putIntCol(m, "CustomerStatus", r.CustomerStatus)
	putStrCol(m, "CustomerDateOfBirth", r.CustomerDateOfBirth)
	if r.CustomerIncome != nil {
		m["CustomerIncome"] = *r.CustomerIncome
	}
	putStrCol(m, "CustomerMaritalStatus", r.CustomerMaritalStatus)
	putStrCol(m, "CustomerRace", r.CustomerRace)
	putIntCol(m, "CustomerIsBumi", r.CustomerIsBumi)
	putStrCol(m, "CustomerLanguage", r.CustomerLanguage)
	putIntCol(m, "CustomerTag", r.CustomerTag)
	putStrCol(m, "Remark", r.Remark)
	return m
}

func (h *CustomerHandler) Update(c echo.Context) error {
	var req updateCustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.writer.UpdateCustomer(c.Request().Context(), actorFrom(c), c.Param("uuid"), req.cols()); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Customer updated"})
}

func (h *CustomerHandler) Delete(c echo.Context) error {
	if err := h.writer.DeleteCustomer(c.Request().Context(), actorFrom(c), c.Param("uuid")); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Customer deleted"})
}

func putStrCol(m map[string]any, col string, v *string) {
	if v != nil {
		m[col] = *v
	}
}

func putIntCol(m map[string]any, col string, v *int) {
	if v != nil {
		m[col] = *v
	}
}
