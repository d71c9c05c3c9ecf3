// Package handler implements the HTTP endpoints. Handlers bind the request
// body into a per-endpoint struct, check authorization, call exactly one
// repository operation per step and shape the JSON response; entities are
// returned raw (no envelope) and failures are {"error": message}.
package handler

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// dbTimeout bounds every database round trip issued from a handler.
const dbTimeout = 5 * time.Second

// currentUserID extracts the authenticated user's id from the context, where
// JWTAuth stored the token claims. JWT numeric claims decode as float64.
func currentUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// isAdmin reports whether the request carries the admin role.
func isAdmin(c echo.Context) bool {
	role, _ := c.Get("role").(string)
	return role == "admin"
}

// paramID parses a numeric path parameter.
func paramID(c echo.Context, name string) (uint64, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	return n, err == nil
}

// flexID unmarshals an id that clients send either as a number, a numeric
// string, or the empty string. "" and null both normalize to a nil value
// (the owner_id column convention).
type flexID struct{ Value *uint64 }

func (f *flexID) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		f.Value = nil
		return nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return err
	}
	f.Value = &n
	return nil
}
