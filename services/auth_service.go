package services

import (
	"context"
	"log"

	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/utils"
)

type LoginInput struct {
	Password string `json:"password"`
}

// Principal identifies an authenticated caller.
type Principal struct {
	Subject string
	Role    models.UserRole
}

type AuthService interface {
	Login(ctx context.Context, input LoginInput) (*Principal, error)
}

type authService struct {
	organizerPasswordHash string
}

// NewAuthService checks organizer logins against a bcrypt hash. An empty hash
// disables login, leaving every mutating endpoint unreachable.
func NewAuthService(organizerPasswordHash string) AuthService {
	return &authService{organizerPasswordHash: organizerPasswordHash}
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*Principal, error) {
	if s.organizerPasswordHash == "" {
		return nil, ErrAuthNotConfigured
	}
	if input.Password == "" || !utils.CheckPasswordHash(input.Password, s.organizerPasswordHash) {
		log.Printf("Organizer login rejected")
		return nil, ErrAuthenticationFailed
	}
	return &Principal{Subject: string(models.RoleOrganizer), Role: models.RoleOrganizer}, nil
}
