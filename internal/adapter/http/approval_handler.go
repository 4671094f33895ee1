package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	domainApproval "loan-ledger/internal/domain/approval"
	"loan-ledger/internal/usecase/approval"
	"loan-ledger/internal/usecase/user"
)

// ApprovalHandler serves the admin console.
type ApprovalHandler struct {
	uc    *approval.Usecase
	users *user.Usecase
}

func NewApprovalHandler(uc *approval.Usecase, users *user.Usecase) *ApprovalHandler {
	return &ApprovalHandler{uc: uc, users: users}
}

type decisionReq struct {
	Note string `json:"note" validate:"max=500"`
}

type createAdminReq struct {
	FullName string `json:"fullname" validate:"required,max=150"`
	Email    string `json:"email"    validate:"required,email,max=150"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// decision reads the path id and the optional note body.
func decision(c echo.Context) (approval.DecisionInput, bool, error) {
	id, ok := pathID(c, "id")
	if !ok {
		return approval.DecisionInput{}, false, badPathID(c, "id")
	}
	var req decisionReq
	if c.Request().ContentLength > 0 {
		if ok, err := bindAndValidate(c, &req); !ok {
			return approval.DecisionInput{}, false, err
		}
	}
	return approval.DecisionInput{ID: id, Note: req.Note}, true, nil
}

func (h *ApprovalHandler) ListUsers(c echo.Context) error {
	out, err := h.users.List(c.Request().Context(), principal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ApprovalHandler) CreateAdmin(c echo.Context) error {
	var req createAdminReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.users.CreateAdmin(c.Request().Context(), principal(c), user.CreateAdminInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ApprovalHandler) ApproveUser(c echo.Context) error {
	in, ok, err := decision(c)
	if !ok {
		return err
	}
	dto, err := h.uc.ApproveUser(c.Request().Context(), principal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApprovalHandler) DenyUser(c echo.Context) error {
	in, ok, err := decision(c)
	if !ok {
		return err
	}
	if err := h.uc.DenyUser(c.Request().Context(), principal(c), in); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ApprovalHandler) ApproveLoan(c echo.Context) error {
	in, ok, err := decision(c)
	if !ok {
		return err
	}
	dto, err := h.uc.ApproveLoan(c.Request().Context(), principal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApprovalHandler) DenyLoan(c echo.Context) error {
	in, ok, err := decision(c)
	if !ok {
		return err
	}
	dto, err := h.uc.DenyLoan(c.Request().Context(), principal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApprovalHandler) ApprovePayment(c echo.Context) error {
	in, ok, err := decision(c)
	if !ok {
		return err
	}
	dto, err := h.uc.ApprovePayment(c.Request().Context(), principal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// History lists recent admin decisions; ?limit=N caps the result and
// ?subject=loan&subject_id=7 narrows it to one entity.
func (h *ApprovalHandler) History(c echo.Context) error {
	if subject := c.QueryParam("subject"); subject != "" {
		sid, err := strconv.ParseUint(c.QueryParam("subject_id"), 10, 64)
		if err != nil || sid == 0 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid subject_id query param"})
		}
		out, err := h.uc.HistoryFor(c.Request().Context(), principal(c), domainApproval.Subject(subject), sid)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, out)
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit query param"})
		}
		limit = n
	}
	out, err := h.uc.History(c.Request().Context(), principal(c), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
