package http

import (
	"net/http"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// CreateProfile handles POST /api/v1/profiles. The caller registers their
// own profile.
func (s *Server) CreateProfile(c echo.Context) error {
	var req CreateProfileRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateDriverProfileCommand(id, callerFrom(c), req.Name, req.Contact)
	if err != nil {
		return writeError(c, err)
	}

	if err = s.h.Profiles.Create(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, CreatedResponse{ID: id.String()})
}

func (s *Server) GetProfile(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	query, err := queries.NewGetDriverProfileQuery(id)
	if err != nil {
		return writeError(c, err)
	}

	p, err := s.h.DriverProfile.Handle(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, DriverProfileResponse{
		ID:      p.ID.String(),
		Driver:  p.Driver.String(),
		Name:    p.Name,
		Contact: p.Contact,
		Rating:  p.Rating,
	})
}

func (s *Server) SetRating(c echo.Context) error {
	var req SetRatingRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	return s.rate(c, func(id kernel.UUID, caller kernel.Address) (commands.RateDriverCommand, error) {
		return commands.NewSetRatingCommand(id, caller, req.Value)
	})
}

func (s *Server) AddRating(c echo.Context) error {
	var req AddRatingRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	return s.rate(c, func(id kernel.UUID, caller kernel.Address) (commands.RateDriverCommand, error) {
		return commands.NewAddRatingCommand(id, caller, req.Delta)
	})
}

func (s *Server) rate(
	c echo.Context,
	build func(id kernel.UUID, caller kernel.Address) (commands.RateDriverCommand, error),
) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	cmd, err := build(id, callerFrom(c))
	if err != nil {
		return writeError(c, err)
	}

	if err = s.h.Profiles.Rate(c.Request().Context(), cmd); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
