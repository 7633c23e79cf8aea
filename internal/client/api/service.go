package api

import (
	"context"

	"github.com/echowave/echowave/internal/client/models"
)

// Service is the surface the session manager and the UI layer depend on.
// *Client is the production implementation; tests provide fakes.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) error
	Login(ctx context.Context, creds Credentials) error
	Logout(ctx context.Context) error
	IsAuthenticated() bool
	CurrentUser(ctx context.Context) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error)
	ListPosts(ctx context.Context, skip, limit int) ([]models.Post, error)
	ListMyPosts(ctx context.Context, skip, limit int) ([]models.Post, error)
	GetPost(ctx context.Context, id string) (*models.Post, error)
	DeletePost(ctx context.Context, id string) error
}
