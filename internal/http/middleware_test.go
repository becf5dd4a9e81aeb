package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func sessionProbe(got *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = getSessionID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestSessionMiddleware_HeaderWins(t *testing.T) {
	var got string
	request := httptest.NewRequest("GET", "/", nil)
	request.Header.Set("X-Session-ID", "from-header")
	request.AddCookie(&http.Cookie{Name: SessionCookie, Value: "from-cookie"})

	SessionMiddleware(sessionProbe(&got)).ServeHTTP(httptest.NewRecorder(), request)

	if got != "from-header" {
		t.Errorf("Expected session 'from-header', got '%s'", got)
	}
}

func TestSessionMiddleware_CookieFallback(t *testing.T) {
	var got string
	request := httptest.NewRequest("GET", "/", nil)
	request.AddCookie(&http.Cookie{Name: SessionCookie, Value: "from-cookie"})

	SessionMiddleware(sessionProbe(&got)).ServeHTTP(httptest.NewRecorder(), request)

	if got != "from-cookie" {
		t.Errorf("Expected session 'from-cookie', got '%s'", got)
	}
}

func TestSessionMiddleware_MintsAndSetsCookie(t *testing.T) {
	var got string
	recorder := httptest.NewRecorder()

	SessionMiddleware(sessionProbe(&got)).ServeHTTP(recorder, httptest.NewRequest("GET", "/", nil))

	if got == "" {
		t.Fatal("Expected a minted session id")
	}

	cookies := recorder.Result().Cookies()
	found := false
	for _, c := range cookies {
		if c.Name == SessionCookie && c.Value == got {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected minted session id set as cookie, got %v", cookies)
	}
}
