package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	domain "loan-ledger/internal/domain/payment"
	"loan-ledger/internal/usecase/payment"
)

type PaymentHandler struct{ uc *payment.Usecase }

func NewPaymentHandler(uc *payment.Usecase) *PaymentHandler { return &PaymentHandler{uc: uc} }

type submitPaymentReq struct {
	LoanID uint64          `json:"loan_id" validate:"required"`
	Amount decimal.Decimal `json:"amount"  validate:"money"`
	Method string          `json:"method"  validate:"required,paymethod"`
}

func (h *PaymentHandler) Submit(c echo.Context) error {
	var req submitPaymentReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Submit(c.Request().Context(), principal(c), payment.SubmitInput{
		LoanID: req.LoanID,
		Amount: req.Amount,
		Method: domain.Method(req.Method),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *PaymentHandler) ListMine(c echo.Context) error {
	out, err := h.uc.ListMine(c.Request().Context(), principal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PaymentHandler) ListPending(c echo.Context) error {
	out, err := h.uc.ListPending(c.Request().Context(), principal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PaymentHandler) ListForLoan(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badPathID(c, "id")
	}
	out, err := h.uc.ListForLoan(c.Request().Context(), principal(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
