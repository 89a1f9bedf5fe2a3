package posts

import (
	"context"
	"testing"
	"time"

	"github.com/mkoller-dev/quillpress/internal/blogapi"
)

type fakePostAPI struct {
	listCalls     int
	categoryCalls int
	searchCalls   int
	lastCategory  int
	lastQuery     string
	list          *blogapi.PostList

	deleted []int
	err     error
}

func (f *fakePostAPI) ListPosts(ctx context.Context, page, limit int) (*blogapi.PostList, error) {
	f.listCalls++
	return f.list, f.err
}

func (f *fakePostAPI) ListPostsByCategory(ctx context.Context, categoryID, page, limit int) (*blogapi.PostList, error) {
	f.categoryCalls++
	f.lastCategory = categoryID
	return f.list, f.err
}

func (f *fakePostAPI) SearchPosts(ctx context.Context, query string) (*blogapi.PostList, error) {
	f.searchCalls++
	f.lastQuery = query
	return f.list, f.err
}

func (f *fakePostAPI) GetPost(ctx context.Context, id int) (*blogapi.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &blogapi.Post{ID: id}, nil
}

func (f *fakePostAPI) ListOwnPosts(ctx context.Context) ([]blogapi.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.list == nil {
		return nil, nil
	}
	return f.list.Posts, nil
}

func (f *fakePostAPI) CreatePost(ctx context.Context, in blogapi.PostInput) (*blogapi.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &blogapi.Post{ID: 99, Title: in.Title}, nil
}

func (f *fakePostAPI) UpdatePost(ctx context.Context, id int, in blogapi.PostInput) (*blogapi.Post, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &blogapi.Post{ID: id, Title: in.Title}, nil
}

func (f *fakePostAPI) DeletePost(ctx context.Context, id int) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakePostAPI) ListCategories(ctx context.Context) ([]blogapi.Category, error) {
	return []blogapi.Category{{ID: 3, Name: "Go"}}, f.err
}

func TestBrowseSearchWinsOverCategory(t *testing.T) {
	api := &fakePostAPI{list: &blogapi.PostList{}}
	s := &service{api: api}

	_, err := s.Browse(context.Background(), BrowseQuery{Search: "go", CategoryID: 3})
	if err != nil {
		t.Fatalf("browse: %v", err)
	}
	if api.searchCalls != 1 || api.categoryCalls != 0 || api.listCalls != 0 {
		t.Fatalf("wrong fetch: search=%d category=%d list=%d", api.searchCalls, api.categoryCalls, api.listCalls)
	}
	if api.lastQuery != "go" {
		t.Fatalf("got query %q", api.lastQuery)
	}
}

func TestBrowseCategoryFetchThenClientSort(t *testing.T) {
	api := &fakePostAPI{list: &blogapi.PostList{Posts: []blogapi.Post{
		{ID: 1, CreatedAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2, CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}}}
	s := &service{api: api}

	list, err := s.Browse(context.Background(), BrowseQuery{CategoryID: 3, Sort: "oldest"})
	if err != nil {
		t.Fatalf("browse: %v", err)
	}
	if api.categoryCalls != 1 || api.lastCategory != 3 {
		t.Fatalf("category fetch not used: %+v", api)
	}
	if list.Posts[0].ID != 2 || list.Posts[1].ID != 1 {
		t.Fatalf("not ascending by created_at: %v", ids(list.Posts))
	}
}

func TestBrowseDefaultListsAll(t *testing.T) {
	api := &fakePostAPI{list: &blogapi.PostList{}}
	s := &service{api: api}

	if _, err := s.Browse(context.Background(), BrowseQuery{}); err != nil {
		t.Fatalf("browse: %v", err)
	}
	if api.listCalls != 1 {
		t.Fatalf("plain list not used: %+v", api)
	}
}
