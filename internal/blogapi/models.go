package blogapi

import "time"

type (
	User struct {
		ID       int    `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	}

	Category struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}

	// Author is the post-embedded slice of the owning user.
	Author struct {
		Username string `json:"username"`
	}

	Post struct {
		ID            int       `json:"id"`
		Title         string    `json:"title"`
		Content       string    `json:"content"` // HTML
		FeaturedImage string    `json:"featured_image,omitempty"`
		CreatedAt     time.Time `json:"created_at"`
		UserID        int       `json:"user_id"`
		User          Author    `json:"user"`
		Category      *Category `json:"category,omitempty"`
		CategoryID    int       `json:"category_id"`
	}

	// PostList is the paginated list shape returned by the collection
	// endpoints.
	PostList struct {
		Posts      []Post `json:"posts"`
		Total      int    `json:"total"`
		Page       int    `json:"page"`
		Limit      int    `json:"limit"`
		TotalPages int    `json:"total_pages"`
	}

	PostInput struct {
		Title         string `json:"title"`
		Content       string `json:"content"`
		CategoryID    int    `json:"category_id"`
		FeaturedImage string `json:"featured_image,omitempty"`
	}

	// Session is the login/register response: a usable bearer token plus the
	// identity it resolves to.
	Session struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}

	loginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	registerRequest struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
)

// IsAuthor reports whether the given user owns the post. This is a display
// hint only; the backend enforces the real authorization rule.
func (p *Post) IsAuthor(u *User) bool {
	return u != nil && p.UserID == u.ID
}
