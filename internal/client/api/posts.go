package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/echowave/echowave/internal/client/models"
)

// CreatePostRequest is a multipart echo submission. At least one of
// TextContent or VoiceFile should be meaningful; the backend is the authority
// and this layer enforces nothing.
type CreatePostRequest struct {
	TextContent   string
	VoiceFileName string
	VoiceFile     io.Reader
}

// CreatePost submits a new echo as multipart form data (fields text_content
// and voice_file).
func (c *Client) CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if req.TextContent != "" {
		if err := w.WriteField("text_content", req.TextContent); err != nil {
			return nil, fmt.Errorf("write text_content field: %w", err)
		}
	}
	if req.VoiceFile != nil {
		name := req.VoiceFileName
		if name == "" {
			name = "echo.m4a"
		}
		part, err := w.CreateFormFile("voice_file", name)
		if err != nil {
			return nil, fmt.Errorf("create voice_file part: %w", err)
		}
		if _, err := io.Copy(part, req.VoiceFile); err != nil {
			return nil, fmt.Errorf("copy voice file: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", err)
	}

	var post models.Post
	if err := c.do(ctx, http.MethodPost, "/api/posts/", &buf, w.FormDataContentType(), &post); err != nil {
		return nil, err
	}
	post.Tags = models.NormalizeTags(post.Tags)
	return &post, nil
}

// ListPosts returns a page of the public feed.
func (c *Client) ListPosts(ctx context.Context, skip, limit int) ([]models.Post, error) {
	return c.listPosts(ctx, "/api/posts/", skip, limit)
}

// ListMyPosts returns a page of the authenticated user's own posts.
func (c *Client) ListMyPosts(ctx context.Context, skip, limit int) ([]models.Post, error) {
	return c.listPosts(ctx, "/api/posts/my-posts", skip, limit)
}

func (c *Client) listPosts(ctx context.Context, path string, skip, limit int) ([]models.Post, error) {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))

	var posts []models.Post
	if err := c.do(ctx, http.MethodGet, path+"?"+q.Encode(), nil, "", &posts); err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].Tags = models.NormalizeTags(posts[i].Tags)
	}
	return posts, nil
}

// GetPost fetches a single echo by id.
func (c *Client) GetPost(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := c.do(ctx, http.MethodGet, "/api/posts/"+url.PathEscape(id), nil, "", &post); err != nil {
		return nil, err
	}
	post.Tags = models.NormalizeTags(post.Tags)
	return &post, nil
}

// DeletePost removes one of the caller's echoes.
func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/posts/"+url.PathEscape(id), nil, "", nil)
}
