package session

import "strings"

type (
	// RegisterInput is the raw registration form. It is validated locally
	// before any backend call; the backend never sees a request that fails
	// these checks.
	RegisterInput struct {
		Username        string
		Email           string
		Password        string
		ConfirmPassword string
	}

	loginPageData struct {
		Email string
		Error string
	}

	registerPageData struct {
		Username string
		Email    string
		Errors   []string
	}
)

const passwordSymbols = "!@#$%^&*"

// passwordIssues returns every policy rule the password fails: at least 8
// characters, an uppercase letter, a lowercase letter, a digit and a symbol.
func passwordIssues(password string) []string {
	var issues []string
	if len(password) < 8 {
		issues = append(issues, "Password must be at least 8 characters long")
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= 'A' && r <= 'Z' }) {
		issues = append(issues, "Password must include an uppercase letter")
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= 'a' && r <= 'z' }) {
		issues = append(issues, "Password must include a lowercase letter")
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= '0' && r <= '9' }) {
		issues = append(issues, "Password must include at least one number")
	}
	if !strings.ContainsAny(password, passwordSymbols) {
		issues = append(issues, "Password must include at least one symbol (!@#$%^&*)")
	}
	return issues
}

// Validate checks the whole form and returns every user-facing problem.
func (in RegisterInput) Validate() []string {
	if strings.TrimSpace(in.Username) == "" ||
		strings.TrimSpace(in.Email) == "" ||
		in.Password == "" || in.ConfirmPassword == "" {
		return []string{"All fields are required"}
	}

	var issues []string
	if !strings.Contains(in.Email, "@") {
		issues = append(issues, "Enter a valid email address")
	}
	issues = append(issues, passwordIssues(in.Password)...)
	if in.Password != in.ConfirmPassword {
		issues = append(issues, "Passwords do not match")
	}
	return issues
}
