package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"loan-ledger/internal/usecase/post"
)

type PostHandler struct{ uc *post.Usecase }

func NewPostHandler(uc *post.Usecase) *PostHandler { return &PostHandler{uc: uc} }

type postReq struct {
	Content string `json:"content" validate:"required,max=5000"`
}

func (h *PostHandler) List(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), principal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PostHandler) Create(c echo.Context) error {
	var req postReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	p, err := h.uc.Create(c.Request().Context(), principal(c), req.Content)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *PostHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badPathID(c, "id")
	}
	var req postReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	p, err := h.uc.Update(c.Request().Context(), principal(c), id, req.Content)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *PostHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badPathID(c, "id")
	}
	if err := h.uc.Delete(c.Request().Context(), principal(c), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
