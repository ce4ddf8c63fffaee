package commands

import (
	"context"

	"logistics/internal/core/domain/model/profile"
)

// DriverProfileCommandHandler creates driver profiles and changes ratings.
type DriverProfileCommandHandler struct {
	uowFactory ProfileUoWFactory
}

func NewDriverProfileCommandHandler(uowFactory ProfileUoWFactory) DriverProfileCommandHandler {
	return DriverProfileCommandHandler{uowFactory: uowFactory}
}

func (h DriverProfileCommandHandler) Create(ctx context.Context, cmd CreateDriverProfileCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	p, err := profile.NewDriverProfile(cmd.ProfileID(), cmd.Driver(), cmd.Name(), cmd.Contact())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DriverProfileRepository().Add(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h DriverProfileCommandHandler) Rate(ctx context.Context, cmd RateDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	profileRepo := uow.DriverProfileRepository()
	p, err := profileRepo.Get(ctx, cmd.ProfileID())
	if err != nil {
		return err
	}

	if cmd.IsAdditive() {
		err = p.AddRating(cmd.Caller(), cmd.Value())
	} else {
		err = p.SetRating(cmd.Caller(), cmd.Value())
	}
	if err != nil {
		return err
	}

	if err = profileRepo.Update(ctx, p); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
