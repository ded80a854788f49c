package logout_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/mentorhub/internal/app/features/logout"
	"github.com/dalemusser/mentorhub/internal/testutil"
	"go.uber.org/zap"
)

func TestServeLogout_Redirects(t *testing.T) {
	h := logout.NewHandler(nil, zap.NewNop())

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/logout", testutil.MentorSession())
	rec := httptest.NewRecorder()
	h.ServeLogout(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/" {
		t.Errorf("redirect: got %q, want %q", got, "/")
	}
}

func TestServeLogout_HTMX(t *testing.T) {
	h := logout.NewHandler(nil, zap.NewNop())

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/logout", testutil.MentorSession())
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	h.ServeLogout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if got := rec.Header().Get("HX-Redirect"); got != "/" {
		t.Errorf("HX-Redirect: got %q, want %q", got, "/")
	}
}

func TestServeLogout_AnonymousStillRedirects(t *testing.T) {
	h := logout.NewHandler(nil, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	rec := httptest.NewRecorder()
	h.ServeLogout(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
}
