package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"loan-ledger/internal/domain/access"
	"loan-ledger/internal/domain/user"
)

var (
	testBorrower = access.Principal{UserID: 10, Role: user.RoleBorrower, IsApproved: true}
	testAdmin    = access.Principal{UserID: 1, Role: user.RoleAdmin, IsApproved: true}
)

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) io.Reader {
	if s, ok := v.(string); ok {
		return strings.NewReader(s)
	}
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

// newCtx builds an echo context carrying p, with optional path params as name/value pairs.
func newCtx(e *echo.Echo, method, target string, body any, p access.Principal, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	var r io.Reader
	if body != nil {
		r = mustJSON(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	req = req.WithContext(access.WithPrincipal(context.Background(), p))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(params) > 0 {
		var names, values []string
		for i := 0; i+1 < len(params); i += 2 {
			names = append(names, params[i])
			values = append(values, params[i+1])
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	return c, rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var er ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("bad error json %q: %v", rec.Body.String(), err)
	}
	return er
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d (body=%s)", rec.Code, want, rec.Body.String())
	}
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

type fakeHasher struct{}

func (fakeHasher) Hash(pw string) (string, error) { return "h:" + pw, nil }
func (fakeHasher) Verify(hash, pw string) bool    { return hash == "h:"+pw }

type fakeTokens struct{}

func (fakeTokens) Issue(u *user.User) (string, time.Time, error) {
	return "tok-" + strconv.FormatUint(u.ID, 10), time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
}

func contains(s, sub string) bool { return strings.Contains(s, sub) }

func echoNoValidator() *echo.Echo { return echo.New() }

type accessCase int

const (
	asBorrower accessCase = iota
	asAdmin
	asStranger
)

func (a accessCase) principal() access.Principal {
	switch a {
	case asAdmin:
		return testAdmin
	case asStranger:
		return access.Principal{UserID: 99, Role: user.RoleBorrower, IsApproved: true}
	}
	return testBorrower
}
