package session

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/mkoller-dev/quillpress/internal/shared/apiclient"
	"github.com/mkoller-dev/quillpress/internal/shared/middleware"
	"github.com/mkoller-dev/quillpress/internal/shared/token"
)

type (
	Router struct {
		service servicer
	}
)

func NewRouter(service servicer) *Router {
	return &Router{service: service}
}

func (r *Router) LoginPage(w http.ResponseWriter, req *http.Request) {
	if middleware.CurrentUser(req.Context()) != nil {
		middleware.Redirect(w, req, "/")
		return
	}
	r.renderPage(w, req, "templates/login.html", loginPageData{})
}

func (r *Router) HandleLogin(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	email := req.FormValue("email")
	password := req.FormValue("password")

	logger.Debug().Str("email", email).Msg("Login attempt")

	sess, err := r.service.Login(ctx, email, password)
	if err != nil {
		logger.Warn().Err(err).Str("email", email).Msg("Login failed")

		msg := apiclient.UserMessage(err, "Login failed. Please try again.")
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprintf(w, `<div id="error" class="error">%s</div>`, template.HTMLEscapeString(msg))
		return
	}

	if err := token.Set(w, sess.Token, r.service.SecretKey()); err != nil {
		logger.Error().Err(err).Str("email", email).Msg("Login failed: could not set cookie")

		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`<div id="error" class="error">Login failed. Please try again.</div>`))
		return
	}

	logger.Debug().Str("email", email).Int("user_id", sess.User.ID).Msg("Login successful")

	middleware.Redirect(w, req, "/")
}

func (r *Router) RegisterPage(w http.ResponseWriter, req *http.Request) {
	if middleware.CurrentUser(req.Context()) != nil {
		middleware.Redirect(w, req, "/")
		return
	}
	r.renderPage(w, req, "templates/register.html", registerPageData{})
}

func (r *Router) HandleRegister(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	in := RegisterInput{
		Username:        req.FormValue("username"),
		Email:           req.FormValue("email"),
		Password:        req.FormValue("password"),
		ConfirmPassword: req.FormValue("confirm_password"),
	}

	sess, issues, err := r.service.Register(ctx, in)
	if err != nil {
		if errors.Is(err, errValidation) {
			// Rejected locally, the backend was never called.
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(http.StatusUnprocessableEntity)
			fmt.Fprint(w, `<div id="error" class="error"><ul>`)
			for _, issue := range issues {
				fmt.Fprintf(w, `<li>%s</li>`, template.HTMLEscapeString(issue))
			}
			fmt.Fprint(w, `</ul></div>`)
			return
		}

		logger.Warn().Err(err).Str("username", in.Username).Msg("Registration failed")

		msg := apiclient.UserMessage(err, "Registration failed. Please try again.")
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, `<div id="error" class="error">%s</div>`, template.HTMLEscapeString(msg))
		return
	}

	if err := token.Set(w, sess.Token, r.service.SecretKey()); err != nil {
		logger.Error().Err(err).Str("username", in.Username).Msg("Registration failed: could not set cookie")

		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`<div id="error" class="error">Registration failed. Please try again.</div>`))
		return
	}

	logger.Debug().Str("username", in.Username).Int("user_id", sess.User.ID).Msg("Registration successful")

	middleware.Redirect(w, req, "/")
}

// HandleLogout clears the session cookie and sends the user home. It always
// succeeds and never talks to the backend.
func (r *Router) HandleLogout(w http.ResponseWriter, req *http.Request) {
	token.Clear(w)
	middleware.Redirect(w, req, "/")
}

func (r *Router) renderPage(w http.ResponseWriter, req *http.Request, file string, data any) {
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
