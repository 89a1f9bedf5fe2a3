package posts

import (
	"html/template"
	"sort"
	"strings"

	"github.com/mkoller-dev/quillpress/internal/blogapi"
)

type (
	// BrowseQuery is the home page's filter state, straight from the URL:
	// ?category=3&search=...&sort=oldest&page=2
	BrowseQuery struct {
		CategoryID int
		Search     string
		Sort       string
		Page       int
		Limit      int
	}

	postCard struct {
		ID            int
		Title         string
		Excerpt       string
		Author        string
		CategoryName  string
		Date          string
		FeaturedImage string
	}

	homeTemplateData struct {
		Posts      []postCard
		Categories []blogapi.Category
		Search     string
		Sort       string
		CategoryID int
		Page       int
		TotalPages int
		NextPage   int
		PrevPage   int
		Error      string
		User       *blogapi.User
	}

	postTemplateData struct {
		Post     *blogapi.Post
		Content  template.HTML
		Date     string
		IsAuthor bool
		User     *blogapi.User
		Error    string
	}

	dashboardTemplateData struct {
		User    *blogapi.User
		Posts   []postCard
		Message string
		Error   string
	}

	formTemplateData struct {
		Title         string
		Content       string
		CategoryID    int
		FeaturedImage string
		Categories    []blogapi.Category
		PostID        int
		IsEdit        bool
	}
)

const dateLayout = "January 02, 2006"

// sortPosts orders posts in place by the given key.
func sortPosts(posts []blogapi.Post, key string) {
	switch key {
	case "oldest":
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].CreatedAt.Before(posts[j].CreatedAt)
		})
	case "title":
		sort.SliceStable(posts, func(i, j int) bool {
			return strings.ToLower(posts[i].Title) < strings.ToLower(posts[j].Title)
		})
	case "popular":
		// Alias for newest until the backend exposes view counts.
		fallthrough
	default:
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		})
	}
}

// excerpt strips HTML tags from post content and truncates it for card
// display.
func excerpt(html string, max int) string {
	var b strings.Builder
	inTag := false
	for _, r := range html {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}

	text := strings.Join(strings.Fields(b.String()), " ")
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return strings.TrimSpace(string(runes[:max])) + "..."
}

func toCard(p blogapi.Post) postCard {
	card := postCard{
		ID:            p.ID,
		Title:         p.Title,
		Excerpt:       excerpt(p.Content, 150),
		Author:        p.User.Username,
		Date:          p.CreatedAt.Format(dateLayout),
		FeaturedImage: p.FeaturedImage,
	}
	if card.Author == "" {
		card.Author = "Anonymous"
	}
	if p.Category != nil {
		card.CategoryName = p.Category.Name
	}
	return card
}

func toCards(posts []blogapi.Post) []postCard {
	cards := make([]postCard, 0, len(posts))
	for _, p := range posts {
		cards = append(cards, toCard(p))
	}
	return cards
}
