package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

func (s *Server) requireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" {
			logrus.Debug("Missing session cookie")
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: "not signed in"})
		}

		claims, err := s.gate.validate(cookie.Value)
		if err != nil {
			logrus.Debug("Invalid or expired session cookie")
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: ErrInvalidSession.Error()})
		}

		c.Set("session_id", claims.ID)

		return next(c)
	}
}
