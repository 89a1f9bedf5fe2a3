package posts

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/mkoller-dev/quillpress/internal/blogapi"
	"github.com/mkoller-dev/quillpress/internal/shared/apiclient"
	"github.com/mkoller-dev/quillpress/internal/shared/middleware"
)

type (
	Router struct {
		service servicer
	}
)

func NewRouter(service servicer) chi.Router {
	router := &Router{service: service}
	return router.Routes()
}

func (r *Router) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.HomePage)
	router.Get("/posts/{id}", r.PostPage)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)

		protected.Get("/dashboard", r.Dashboard)
		protected.Get("/dashboard/table", r.DashboardTable)
		protected.Get("/posts/new", r.NewPostForm)
		protected.Post("/posts", r.CreatePost)
		protected.Get("/posts/{id}/edit", r.EditPostForm)
		protected.Put("/posts/{id}", r.UpdatePost)
		protected.Delete("/posts/{id}", r.DeletePost)
	})

	router.NotFound(r.NotFoundPage)

	return router
}

// expired reports whether err means the backend rejected our session token.
// When it does, the session is torn down globally, no matter which view
// triggered the call.
func expired(w http.ResponseWriter, req *http.Request, err error) bool {
	if errors.Is(err, apiclient.ErrUnauthorized) {
		middleware.ExpireSession(w, req)
		return true
	}
	return false
}

// HomePage renders the browse view: all posts, a category's posts or search
// results, client-sorted when a sort key is present.
func (r *Router) HomePage(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	query := BrowseQuery{
		Page:  blogapi.DefaultPage,
		Limit: blogapi.DefaultLimit,
		Sort:  req.URL.Query().Get("sort"),
	}

	if p := req.URL.Query().Get("page"); p != "" {
		if page, err := strconv.Atoi(p); err == nil && page > 0 {
			query.Page = page
		}
	}
	if c := req.URL.Query().Get("category"); c != "" {
		if id, err := strconv.Atoi(c); err == nil && id > 0 {
			query.CategoryID = id
		}
	}
	query.Search = req.URL.Query().Get("search")

	data := homeTemplateData{
		Search:     query.Search,
		Sort:       query.Sort,
		CategoryID: query.CategoryID,
		Page:       query.Page,
		User:       middleware.CurrentUser(ctx),
	}

	list, err := r.service.Browse(ctx, query)
	if err != nil {
		if expired(w, req, err) {
			return
		}
		logger.Error().Err(err).Msg("Error loading posts")
		data.Error = "Failed to load posts. Please try again later."
	} else {
		data.Posts = toCards(list.Posts)
		data.TotalPages = list.TotalPages
		data.NextPage = min(query.Page+1, max(list.TotalPages, 1))
		data.PrevPage = max(query.Page-1, 1)
	}

	// The category filter is independent of the post fetch; losing it
	// degrades the page but does not fail it.
	categories, err := r.service.Categories(ctx)
	if err != nil {
		if expired(w, req, err) {
			return
		}
		logger.Warn().Err(err).Msg("Error loading categories")
	}
	data.Categories = categories

	r.renderPage(w, req, "templates/home.html", data)
}

func (r *Router) PostPage(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	id, err := strconv.Atoi(chi.URLParam(req, "id"))
	if err != nil {
		r.NotFoundPage(w, req)
		return
	}

	user := middleware.CurrentUser(ctx)
	data := postTemplateData{User: user}

	post, err := r.service.GetPost(ctx, id)
	if err != nil {
		if expired(w, req, err) {
			return
		}
		logger.Error().Err(err).Int("id", id).Msg("Error loading post")
		data.Error = "Failed to load the blog post. It may have been removed or you do not have permission to view it."
		r.renderPage(w, req, "templates/post.html", data)
		return
	}

	data.Post = post
	// Post content is authored HTML served by the backend.
	data.Content = template.HTML(post.Content)
	data.Date = post.CreatedAt.Format(dateLayout)
	data.IsAuthor = post.IsAuthor(user)

	r.renderPage(w, req, "templates/post.html", data)
}

func (r *Router) Dashboard(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	data := dashboardTemplateData{
		User:    middleware.CurrentUser(ctx),
		Message: req.URL.Query().Get("message"),
	}

	userPosts, err := r.service.OwnPosts(ctx)
	if err != nil {
		if expired(w, req, err) {
			return
		}
		logger.Error().Err(err).Msg("Error loading user posts")
		data.Error = "Failed to load your posts. Please try again."
	} else {
		data.Posts = toCards(userPosts)
	}

	r.renderPage(w, req, "templates/dashboard.html", data)
}

// DashboardTable re-renders the dashboard's posts table. The delete handler
// triggers it through the refreshPosts event, so a successful delete drops
// the row and a failed one leaves the list untouched.
func (r *Router) DashboardTable(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	data := dashboardTemplateData{User: middleware.CurrentUser(ctx)}

	userPosts, err := r.service.OwnPosts(ctx)
	if err != nil {
		if expired(w, req, err) {
			return
		}
		logger.Error().Err(err).Msg("Error refreshing user posts")
		data.Error = "Failed to load your posts. Please try again."
	} else {
		data.Posts = toCards(userPosts)
	}

	r.renderPage(w, req, "templates/dashboard_table.html", data)
}

func (r *Router) NewPostForm(w http.ResponseWriter, req *http.Request) {
	r.postForm(w, req, formTemplateData{})
}

func (r *Router) EditPostForm(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	id, err := strconv.Atoi(chi.URLParam(req, "id"))
	if err != nil {
		r.NotFoundPage(w, req)
		return
	}

	post, err := r.service.GetPost(ctx, id)
	if err != nil {
		if expired(w, req, err) {
			return
		}
		logger.Error().Err(err).Int("id", id).Msg("Error loading post for edit")
		r.NotFoundPage(w, req)
		return
	}

	// Display-level gate only; the backend rejects foreign updates anyway.
	if !post.IsAuthor(middleware.CurrentUser(ctx)) {
		middleware.Redirect(w, req, "/dashboard")
		return
	}

	r.postForm(w, req, formTemplateData{
		Title:         post.Title,
		Content:       post.Content,
		CategoryID:    post.CategoryID,
		FeaturedImage: post.FeaturedImage,
		PostID:        post.ID,
		IsEdit:        true,
	})
}

func (r *Router) postForm(w http.ResponseWriter, req *http.Request, data formTemplateData) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	categories, err := r.service.Categories(ctx)
	if err != nil {
		if expired(w, req, err) {
			return
		}
		logger.Warn().Err(err).Msg("Error loading categories for editor")
	}
	data.Categories = categories

	r.renderPage(w, req, "templates/post_form.html", data)
}

func parsePostInput(req *http.Request) (blogapi.PostInput, string) {
	in := blogapi.PostInput{
		Title:         req.FormValue("title"),
		Content:       req.FormValue("content"),
		FeaturedImage: req.FormValue("featured_image"),
	}
	if c := req.FormValue("category_id"); c != "" {
		if id, err := strconv.Atoi(c); err == nil {
			in.CategoryID = id
		}
	}

	if in.Title == "" || in.Content == "" {
		return in, "Title and content are required"
	}
	return in, ""
}

func (r *Router) CreatePost(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	in, problem := parsePostInput(req)
	if problem != "" {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprintf(w, `<div class="error">%s</div>`, template.HTMLEscapeString(problem))
		return
	}

	post, err := r.service.Create(ctx, in)
	if err != nil {
		if expired(w, req, err) {
			return
		}
		logger.Error().Err(err).Msg("Error creating post")
		msg := apiclient.UserMessage(err, "Failed to create post. Please try again.")
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, `<div class="error">%s</div>`, template.HTMLEscapeString(msg))
		return
	}

	logger.Debug().Int("id", post.ID).Msg("Post created")
	middleware.Redirect(w, req, "/dashboard?message=Post+created+successfully")
}

func (r *Router) UpdatePost(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	id, err := strconv.Atoi(chi.URLParam(req, "id"))
	if err != nil {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<div class="error">Invalid post ID</div>`)
		return
	}

	in, problem := parsePostInput(req)
	if problem != "" {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprintf(w, `<div class="error">%s</div>`, template.HTMLEscapeString(problem))
		return
	}

	post, err := r.service.Update(ctx, id, in)
	if err != nil {
		if expired(w, req, err) {
			return
		}
		logger.Error().Err(err).Int("id", id).Msg("Error updating post")
		msg := apiclient.UserMessage(err, "Failed to update post. Please try again.")
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, `<div class="error">%s</div>`, template.HTMLEscapeString(msg))
		return
	}

	logger.Debug().Int("id", post.ID).Msg("Post updated")
	middleware.Redirect(w, req, fmt.Sprintf("/posts/%d", post.ID))
}

// DeletePost removes a post and reports back as an HTMX fragment. The
// confirmation step happens client-side (hx-confirm) before this request
// ever fires.
func (r *Router) DeletePost(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	id, err := strconv.Atoi(chi.URLParam(req, "id"))
	if err != nil {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<div class="error">Invalid post ID</div>`)
		return
	}

	if err := r.service.Delete(ctx, id); err != nil {
		if expired(w, req, err) {
			return
		}
		logger.Error().Err(err).Int("id", id).Msg("Error deleting post")
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<div class="error">Failed to delete the post. Please try again.</div>`)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	w.Header().Set("HX-Trigger", "refreshPosts")
	fmt.Fprint(w, `<div class="success">Post deleted successfully</div>`)
}

func (r *Router) NotFoundPage(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusNotFound)
	r.render(w, req, "templates/not_found.html", nil)
}

func (r *Router) renderPage(w http.ResponseWriter, req *http.Request, file string, data any) {
	w.Header().Set("Content-Type", "text/html")
	r.render(w, req, file, data)
}

func (r *Router) render(w http.ResponseWriter, req *http.Request, file string, data any) {
	logger := hlog.FromRequest(req)

	tmpl, err := template.ParseFiles(file)
	if err != nil {
		logger.Error().Err(err).Str("template", file).Msg("Failed to parse template")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := tmpl.Execute(w, data); err != nil {
		logger.Error().Err(err).Str("template", file).Msg("Failed to execute template")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
