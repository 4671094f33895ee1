package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"loan-ledger/internal/usecase/user"
)

type AuthHandler struct{ uc *user.Usecase }

func NewAuthHandler(uc *user.Usecase) *AuthHandler { return &AuthHandler{uc: uc} }

type registerReq struct {
	FullName        string `json:"fullname"         validate:"required,max=150"`
	Email           string `json:"email"            validate:"required,email,max=150"`
	Password        string `json:"password"         validate:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

type loginReq struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateProfileReq struct {
	FullName *string `json:"fullname" validate:"omitempty,min=1,max=150"`
	Email    *string `json:"email"    validate:"omitempty,email,max=150"`
	Password *string `json:"password" validate:"omitempty,min=8,max=72"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Register(c.Request().Context(), user.RegisterInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	res, err := h.uc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) Me(c echo.Context) error {
	dto, err := h.uc.Me(c.Request().Context(), principal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AuthHandler) UpdateMe(c echo.Context) error {
	var req updateProfileReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.UpdateProfile(c.Request().Context(), principal(c), user.UpdateProfileInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// GetUser shows an account to its owner or an admin.
func (h *AuthHandler) GetUser(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badPathID(c, "id")
	}
	dto, err := h.uc.Get(c.Request().Context(), principal(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
