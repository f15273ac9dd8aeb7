package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-session-keeper/internal/logger"
	"github.com/MKhiriev/go-session-keeper/internal/store"
	"github.com/MKhiriev/go-session-keeper/models"
)

// userService is the concrete implementation of UserService. It is a thin
// flow layer over the repository: the interesting authorization decisions
// (who may delete whom) happen in the transport middleware, not here.
type userService struct {
	userRepository store.UserRepository
	logger         *logger.Logger
}

// NewUserService constructs a UserService wired to the given UserRepository.
func NewUserService(userRepository store.UserRepository, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		logger:         logger,
	}
}

// ListUsers returns all accounts with secrets excluded.
func (u *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	users, err := u.userRepository.ListUsers(ctx)
	if err != nil {
		log.Err(err).Msg("listing users failed")
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return users, nil
}

// DeleteUser removes the account with the given ID. A missing account is a
// no-op: the zero user and nil error come back from the repository untouched.
func (u *userService) DeleteUser(ctx context.Context, id int64) (models.User, error) {
	log := logger.FromContext(ctx)

	deleted, err := u.userRepository.DeleteUserByID(ctx, id)
	if err != nil {
		log.Err(err).Int64("id", id).Msg("deleting user failed")
		return models.User{}, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return deleted, nil
}
