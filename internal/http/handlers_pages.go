package httpx

import "net/http"

// viewData is the payload handed to every page template.
type viewData struct {
	CSRFToken     string
	Authenticated bool
	Username      string
	Role          string
	Message       string
	Error         string
	FormUsername  string
	Fields        map[string]string
}

// newViewData seeds the common fields from the request context.
func newViewData(r *http.Request) viewData {
	data := viewData{CSRFToken: GetCSRFToken(r)}
	if session, ok := GetSessionFromContext(r.Context()); ok {
		data.Authenticated = true
		data.Username = session.Username
		data.Role = string(session.Role)
	}
	return data
}

// PageHandlers serves the portal's HTML pages.
type PageHandlers struct {
	T *TemplateRenderer
}

// Home renders the index page. An optional message query parameter is
// echoed back; html/template escapes it.
func (h *PageHandlers) Home(w http.ResponseWriter, r *http.Request) {
	data := newViewData(r)
	data.Message = r.URL.Query().Get("message")
	h.T.renderOr500(w, "home", data)
}

// LoginPage renders the sign-in form. The presence of the error query
// parameter selects the merged failure message; it never distinguishes
// unknown-user from bad-password.
func (h *PageHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	data := newViewData(r)
	if r.URL.Query().Has("error") {
		data.Error = "Invalid username or password."
	}
	h.T.renderOr500(w, "login", data)
}

// UserPage renders the members-only page.
func (h *PageHandlers) UserPage(w http.ResponseWriter, r *http.Request) {
	h.T.renderOr500(w, "user", newViewData(r))
}

// AdminPage renders the administrators-only page.
func (h *PageHandlers) AdminPage(w http.ResponseWriter, r *http.Request) {
	h.T.renderOr500(w, "admin", newViewData(r))
}

// ChatPage renders the chat page.
func (h *PageHandlers) ChatPage(w http.ResponseWriter, r *http.Request) {
	h.T.renderOr500(w, "chat", newViewData(r))
}
