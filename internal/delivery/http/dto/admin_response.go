package dto

import (
	"time"

	"hireflow/internal/domain/admin"

	"github.com/google/uuid"
)

type AdminResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

func NewAdminResponse(a admin.User) AdminResponse {
	return AdminResponse{ID: a.ID, Username: a.Username, CreatedAt: a.CreatedAt}
}

type TokenResponse struct {
	Admin        *AdminResponse `json:"admin,omitempty"`
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
}
