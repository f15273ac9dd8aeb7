package service

import (
	"github.com/MKhiriev/go-session-keeper/internal/crypto"
	"github.com/MKhiriev/go-session-keeper/internal/logger"
	"github.com/MKhiriev/go-session-keeper/internal/store"
)

// Services aggregates all application services handed to the transport layer.
type Services struct {
	AuthService AuthService
	UserService UserService
}

// NewServices wires the service layer on top of the user repository and the
// keyed hasher.
func NewServices(userRepository store.UserRepository, hasher *crypto.Hasher, logger *logger.Logger) *Services {
	return &Services{
		AuthService: NewAuthService(userRepository, hasher, logger),
		UserService: NewUserService(userRepository, logger),
	}
}
