// Package blogapi holds the typed resource access functions for the blog
// backend. Each method is a thin wrapper: build the path and query, delegate
// to the shared API client, hand back the decoded body. Errors pass through
// untranslated; there are no retries here.
package blogapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/mkoller-dev/quillpress/internal/shared/apiclient"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

type Client struct {
	api *apiclient.Client
}

func NewClient(api *apiclient.Client) *Client {
	return &Client{api: api}
}

func pageQuery(page, limit int) url.Values {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	return q
}

// ListPosts returns one page of all posts, newest first.
func (c *Client) ListPosts(ctx context.Context, page, limit int) (*PostList, error) {
	out := new(PostList)
	if err := c.api.Get(ctx, "/posts", pageQuery(page, limit), out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPostsByCategory returns one page of posts in the given category.
func (c *Client) ListPostsByCategory(ctx context.Context, categoryID, page, limit int) (*PostList, error) {
	out := new(PostList)
	path := fmt.Sprintf("/posts/category/%d", categoryID)
	if err := c.api.Get(ctx, path, pageQuery(page, limit), out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetPost(ctx context.Context, id int) (*Post, error) {
	out := new(Post)
	if err := c.api.Get(ctx, fmt.Sprintf("/posts/%d", id), nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListOwnPosts returns all posts belonging to the session user. The backend
// derives the user from the bearer token; the response is a bare array.
func (c *Client) ListOwnPosts(ctx context.Context) ([]Post, error) {
	var out []Post
	if err := c.api.Get(ctx, "/posts/user", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreatePost(ctx context.Context, in PostInput) (*Post, error) {
	out := new(Post)
	if err := c.api.Post(ctx, "/posts", in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UpdatePost(ctx context.Context, id int, in PostInput) (*Post, error) {
	out := new(Post)
	if err := c.api.Put(ctx, fmt.Sprintf("/posts/%d", id), in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeletePost(ctx context.Context, id int) error {
	return c.api.Delete(ctx, fmt.Sprintf("/posts/%d", id))
}

// SearchPosts runs a full-text search. The backend answers with the same
// paginated shape as the list endpoints.
func (c *Client) SearchPosts(ctx context.Context, query string) (*PostList, error) {
	out := new(PostList)
	q := url.Values{}
	q.Set("q", query)
	if err := c.api.Get(ctx, "/posts/search", q, out); err != nil {
		return nil, err
	}
	return out, nil
}
