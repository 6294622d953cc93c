package httpx

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func csrfTestConfig() CSRFConfig {
	return CSRFConfig{
		CookieName:    DefaultCSRFCookieName,
		HeaderName:    DefaultCSRFHeaderName,
		FormFieldName: DefaultCSRFCookieName,
		TokenLength:   DefaultCSRFTokenLength,
	}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("success"))
	})
}

func issueCSRFToken(t *testing.T, handler http.Handler) *http.Cookie {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()
	for _, c := range resp.Cookies() {
		if c.Name == DefaultCSRFCookieName {
			return c
		}
	}
	t.Fatal("CSRF cookie not set")
	return nil
}

func TestCSRFProtection_GetRequestsAllowed(t *testing.T) {
	handler := CSRFProtection(csrfTestConfig())(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	cookie := issueCSRFToken(t, handler)
	if cookie.Value == "" {
		t.Error("CSRF token is empty")
	}
}

func TestCSRFProtection_PostWithoutTokenFails(t *testing.T) {
	handler := CSRFProtection(csrfTestConfig())(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", w.Code)
	}
}

func TestCSRFProtection_PostWithValidHeaderToken(t *testing.T) {
	handler := CSRFProtection(csrfTestConfig())(okHandler())
	cookie := issueCSRFToken(t, handler)

	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	req.AddCookie(cookie)
	req.Header.Set(DefaultCSRFHeaderName, cookie.Value)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
}

func TestCSRFProtection_PostWithValidFormToken(t *testing.T) {
	handler := CSRFProtection(csrfTestConfig())(okHandler())
	cookie := issueCSRFToken(t, handler)

	form := url.Values{DefaultCSRFCookieName: {cookie.Value}}
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
}

func TestCSRFProtection_PostWithMismatchedTokenFails(t *testing.T) {
	handler := CSRFProtection(csrfTestConfig())(okHandler())
	cookie := issueCSRFToken(t, handler)

	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	req.AddCookie(cookie)
	req.Header.Set(DefaultCSRFHeaderName, "not-the-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected status 403, got %d", w.Code)
	}
}

func TestCSRFProtection_ExemptPathSkipsValidation(t *testing.T) {
	cfg := csrfTestConfig()
	cfg.ExemptPaths = []string{"/logout"}
	handler := CSRFProtection(cfg)(okHandler())

	// No cookie, no token: an exempt path still passes.
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200 for exempt path, got %d", w.Code)
	}

	// A non-exempt path with the same shape is still rejected.
	req = httptest.NewRequest(http.MethodPost, "/other", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected status 403 for non-exempt path, got %d", w.Code)
	}
}
