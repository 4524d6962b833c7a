package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/jiahongggg/Skyworld-UserAPI/internal/config"
	"github.com/jiahongggg/Skyworld-UserAPI/internal/model"
	"github.com/jiahongggg/Skyworld-UserAPI/internal/repository"
	"github.com/jiahongggg/Skyworld-UserAPI/internal/utils"
)

// UserHandler serves user CRUD and permission-group management. User
// responses rely on the model's JSON tags to keep the password hash and
// refresh token out of the payload.
type UserHandler struct {
	users  *repository.UserRepo
	groups *repository.GroupRepo
	cfg    config.Config
	log    zerolog.Logger
}

func NewUserHandler(users *repository.UserRepo, groups *repository.GroupRepo, cfg config.Config, log zerolog.Logger) *UserHandler {
	return &UserHandler{users: users, groups: groups, cfg: cfg, log: log}
}

type createUserRequest struct {
	Username string  `json:"Username" validate:"required,min=3,max=64"`
	Password string  `json:"Password" validate:"required,min=8"`
	Role     string  `json:"Role" validate:"required"`
	Remark   *string `json:"Remark"`
}

func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if !model.ValidRole(req.Role) {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown role")
	}

	u := model.User{
		UserUUID: uuid.NewString(),
		Username: req.Username,
		Role:     req.Role,
		Remark:   req.Remark,
	}
	u.StampCreate(actorFrom(c), time.Now().UTC())

	if err := h.users.Create(c.Request().Context(), &u, req.Password, h.cfg.BcryptCost); err != nil {
		return respondErr(c, err)
	}
	h.log.Info().Str("username", u.Username).Str("role", u.Role).Msg("user created")
	return c.JSON(http.StatusCreated, u)
}

func (h *UserHandler) Get(c echo.Context) error {
	u, err := h.users.GetByID(c.Request().Context(), c.Param("uuid"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *UserHandler) List(c echo.Context) error {
	q := listQueryFrom(c)
	q.Clamp(repository.UserFilterable, repository.UserSortable)
	users, err := h.users.List(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"page": q.Page, "pageSize": q.PageSize, "data": users})
}

type updateUserRequest struct {
	Username *string `json:"Username" validate:"omitempty,min=3,max=64"`
	Password *string `json:"Password" validate:"omitempty,min=8"`
	Role     *string `json:"Role"`
	Remark   *string `json:"Remark"`
}

func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	cols := map[string]any{}
	if req.Username != nil {
		cols["Username"] = *req.Username
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password, h.cfg.BcryptCost)
		if err != nil {
			return err
		}
		cols["Password"] = hash
	}
	if req.Role != nil {
		if !model.ValidRole(*req.Role) {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown role")
		}
		cols["Role"] = *req.Role
	}
	if req.Remark != nil {
		cols["Remark"] = *req.Remark
	}

	if err := h.users.Update(c.Request().Context(), c.Param("uuid"), cols, actorFrom(c)); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User updated"})
}

func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.users.SoftDelete(c.Request().Context(), c.Param("uuid"), actorFrom(c)); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User deleted"})
}

type createGroupRequest struct {
	Name string `json:"Name" validate:"required,min=2,max=64"`
}

func (h *UserHandler) CreateGroup(c echo.Context) error {
	var req createGroupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.groups.CreateGroup(c.Request().Context(), req.Name); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Group created"})
}

func (h *UserHandler) ListGroups(c echo.Context) error {
	groups, err := h.groups.ListGroups(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, groups)
}

type assignGroupRequest struct {
	ApiCollectionGroupID int `json:"ApiCollectionGroupID" validate:"required,gt=0"`
}

// AssignGroup grants a user membership in an API collection group.
func (h *UserHandler) AssignGroup(c echo.Context) error {
	var req assignGroupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	userUUID := c.Param("uuid")
	if _, err := h.users.GetByID(c.Request().Context(), userUUID); err != nil {
		return respondErr(c, err)
	}

	a := model.UserApiCollectionGroup{
		UUID:                 uuid.NewString(),
		UserUUID:             userUUID,
		ApiCollectionGroupID: req.ApiCollectionGroupID,
	}
	if err := h.groups.AssignGroupToUser(c.Request().Context(), a); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "Group assigned"})
}

func (h *UserHandler) ListUserGroups(c echo.Context) error {
	names, err := h.groups.ListGroupNamesForUser(c.Request().Context(), c.Param("uuid"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"groups": names})
}
