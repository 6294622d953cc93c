package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/example/member-portal/internal/errors"
	"github.com/example/member-portal/internal/service"
)

// JoinHandlers serves the registration form and processes sign-ups.
type JoinHandlers struct {
	Users  *service.UserService
	T      *TemplateRenderer
	Logger *slog.Logger
}

// JoinPage renders the registration form.
func (h *JoinHandlers) JoinPage(w http.ResponseWriter, r *http.Request) {
	data := newViewData(r)
	data.Fields = map[string]string{}
	h.T.renderOr500(w, "join", data)
}

// JoinSubmit registers a new account. Validation and duplicate-username
// failures re-render the form with the problem attached to its field;
// success redirects to the home page.
func (h *JoinHandlers) JoinSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	err := h.Users.Register(r.Context(), username, password)
	if err == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := newViewData(r)
	data.FormUsername = username
	data.Fields = map[string]string{}

	switch {
	case apperrors.IsValidation(err):
		if field := apperrors.GetField(err); field != "" {
			data.Fields[field] = appErrorMessage(err)
		} else {
			data.Error = appErrorMessage(err)
		}
	case apperrors.IsConflict(err):
		data.Fields["username"] = "That username is already taken."
	default:
		h.Logger.ErrorContext(r.Context(), "registration failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.T.renderOr500(w, "join", data)
}

// appErrorMessage extracts the user-facing message from an AppError chain.
func appErrorMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Invalid input."
}
