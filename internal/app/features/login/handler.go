// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	userstore "github.com/dalemusser/mentorhub/internal/app/store/users"
	"github.com/dalemusser/mentorhub/internal/app/system/auditlog"
	"github.com/dalemusser/mentorhub/internal/app/system/auth"
	"github.com/dalemusser/mentorhub/internal/app/system/timeouts"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Handler struct {
	Users  *userstore.Store
	Audit  *auditlog.Logger
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(users *userstore.Store, audit *auditlog.Logger, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Audit: audit, ErrLog: errLog, Log: logger}
}

type loginFormData struct {
	Title     string
	Error     string
	Email     string
	ReturnURL string
}

// badCredentialsMsg is deliberately the same whether the email is unknown or
// the password is wrong.
const badCredentialsMsg = "Email or password is incorrect."

// safeReturnURL only accepts same-site paths so the login redirect can't be
// pointed at another host.
func safeReturnURL(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return "/events"
	}
	return raw
}

// ServeLogin handles GET /login.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/events", http.StatusSeeOther)
		return
	}
	templates.Render(w, r, "login", loginFormData{
		Title:     "Sign In",
		ReturnURL: safeReturnURL(r.URL.Query().Get("return")),
	})
}

// HandleLogin handles POST /login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "login: bad form", err,
			"The form could not be read. Please try again.", "/login")
		return
	}
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	returnURL := safeReturnURL(r.FormValue("return"))

	renderError := func(msg string) {
		templates.Render(w, r, "login", loginFormData{
			Title:     "Sign In",
			Error:     msg,
			Email:     email,
			ReturnURL: returnURL,
		})
	}

	if email == "" || password == "" {
		renderError("Enter your email and password.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		h.Audit.LoginFailedUserNotFound(ctx, r, email)
		renderError(badCredentialsMsg)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "login: lookup user failed", err,
			"Could not sign you in. Please try again.", "/login")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		h.Audit.LoginFailedWrongPassword(ctx, r, u.ID, u.Email)
		renderError(badCredentialsMsg)
		return
	}

	if u.Status == models.UserStatusDisabled {
		h.Audit.LoginFailedUserDisabled(ctx, r, u.ID, u.Email)
		renderError("This account has been disabled. Contact an administrator.")
		return
	}

	su := &auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.FullName,
		Email: u.Email,
		Role:  u.Role,
	}
	if err := auth.SignIn(w, r, su); err != nil {
		h.ErrLog.LogServerError(w, r, "login: write session failed", err,
			"Could not sign you in. Please try again.", "/login")
		return
	}

	h.Audit.LoginSuccess(ctx, r, u.ID, u.Email)
	h.Log.Info("user signed in",
		zap.String("user_id", u.ID.Hex()),
		zap.String("role", u.Role),
	)
	http.Redirect(w, r, returnURL, http.StatusSeeOther)
}
