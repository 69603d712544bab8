// Package response fixes the wire shapes handlers reply with.
package response

import "github.com/labstack/echo/v4"

// Body is the message-bearing shape every failure (and the few message-only
// successes) use on the wire.
type Body struct {
	Message string `json:"message"`
}

// JSON writes the payload as-is with the given status. Success responses are
// the bare resource, not an envelope.
func JSON(c echo.Context, statusCode int, payload any) error {
	return c.JSON(statusCode, payload)
}

// Message writes a {"message": ...} body with the given status.
func Message(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, Body{Message: message})
}
