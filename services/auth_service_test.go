package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Dosada05/swiss-tournament/models"
	"golang.org/x/crypto/bcrypt"
)

func TestOrganizerLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("swordfish"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("GenerateFromPassword: %v", err)
	}
	svc := NewAuthService(string(hash))

	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"correct password", "swordfish", nil},
		{"wrong password", "hunter2", ErrAuthenticationFailed},
		{"empty password", "", ErrAuthenticationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := svc.Login(context.Background(), LoginInput{Password: tt.password})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && p.Role != models.RoleOrganizer {
				t.Errorf("role = %q, want organizer", p.Role)
			}
		})
	}
}

func TestOrganizerLoginDisabled(t *testing.T) {
	_, err := NewAuthService("").Login(context.Background(), LoginInput{Password: "anything"})
	if !errors.Is(err, ErrAuthNotConfigured) {
		t.Errorf("err = %v, want %v", err, ErrAuthNotConfigured)
	}
}
