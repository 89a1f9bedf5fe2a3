// Package posts holds the reader- and author-facing post views: browsing
// with category/search/sort filters, the post page, the author dashboard and
// the create/edit/delete flows. Every view fetches fresh through the blog API
// client; nothing is cached between requests.
package posts

import (
	"context"

	"github.com/mkoller-dev/quillpress/internal/blogapi"
)

type (
	postAPI interface {
		ListPosts(ctx context.Context, page, limit int) (*blogapi.PostList, error)
		ListPostsByCategory(ctx context.Context, categoryID, page, limit int) (*blogapi.PostList, error)
		SearchPosts(ctx context.Context, query string) (*blogapi.PostList, error)
		GetPost(ctx context.Context, id int) (*blogapi.Post, error)
		ListOwnPosts(ctx context.Context) ([]blogapi.Post, error)
		CreatePost(ctx context.Context, in blogapi.PostInput) (*blogapi.Post, error)
		UpdatePost(ctx context.Context, id int, in blogapi.PostInput) (*blogapi.Post, error)
		DeletePost(ctx context.Context, id int) error
		ListCategories(ctx context.Context) ([]blogapi.Category, error)
	}

	servicer interface {
		Browse(ctx context.Context, query BrowseQuery) (*blogapi.PostList, error)
		Categories(ctx context.Context) ([]blogapi.Category, error)
		GetPost(ctx context.Context, id int) (*blogapi.Post, error)
		OwnPosts(ctx context.Context) ([]blogapi.Post, error)
		Create(ctx context.Context, in blogapi.PostInput) (*blogapi.Post, error)
		Update(ctx context.Context, id int, in blogapi.PostInput) (*blogapi.Post, error)
		Delete(ctx context.Context, id int) error
	}

	service struct {
		api postAPI
	}
)

func NewService(api *blogapi.Client) servicer {
	return &service{api: api}
}

// Browse picks the fetch that matches the filter state: search wins over
// category, category over the plain list. Sorting happens here, after the
// fetch, since the backend only orders newest-first.
func (s *service) Browse(ctx context.Context, query BrowseQuery) (*blogapi.PostList, error) {
	var (
		list *blogapi.PostList
		err  error
	)

	switch {
	case query.Search != "":
		list, err = s.api.SearchPosts(ctx, query.Search)
	case query.CategoryID > 0:
		list, err = s.api.ListPostsByCategory(ctx, query.CategoryID, query.Page, query.Limit)
	default:
		list, err = s.api.ListPosts(ctx, query.Page, query.Limit)
	}
	if err != nil {
		return nil, err
	}

	if query.Sort != "" {
		sortPosts(list.Posts, query.Sort)
	}
	return list, nil
}

func (s *service) Categories(ctx context.Context) ([]blogapi.Category, error) {
	return s.api.ListCategories(ctx)
}

func (s *service) GetPost(ctx context.Context, id int) (*blogapi.Post, error) {
	return s.api.GetPost(ctx, id)
}

func (s *service) OwnPosts(ctx context.Context) ([]blogapi.Post, error) {
	return s.api.ListOwnPosts(ctx)
}

func (s *service) Create(ctx context.Context, in blogapi.PostInput) (*blogapi.Post, error) {
	return s.api.CreatePost(ctx, in)
}

func (s *service) Update(ctx context.Context, id int, in blogapi.PostInput) (*blogapi.Post, error) {
	return s.api.UpdatePost(ctx, id, in)
}

func (s *service) Delete(ctx context.Context, id int) error {
	return s.api.DeletePost(ctx, id)
}
