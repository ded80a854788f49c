package login_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	"github.com/dalemusser/mentorhub/internal/app/features/login"
	userstore "github.com/dalemusser/mentorhub/internal/app/store/users"
	"github.com/dalemusser/mentorhub/internal/app/system/auth"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/dalemusser/mentorhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var initSessionOnce sync.Once

func newTestHandler(t *testing.T) (*login.Handler, *testutil.Fixtures) {
	t.Helper()
	initSessionOnce.Do(func() {
		if err := auth.InitSessionStore("test-session-key-0123456789abcdef", "", false, zap.NewNop()); err != nil {
			t.Fatalf("init session store: %v", err)
		}
	})
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)
	h := login.NewHandler(userstore.New(db), nil, errLog, logger)
	return h, testutil.NewFixtures(t, db)
}

func setPassword(t *testing.T, fixtures *testutil.Fixtures, userID primitive.ObjectID, password string) {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if _, err := fixtures.DB().Collection("users").UpdateByID(ctx, userID,
		bson.M{"$set": bson.M{"password_hash": string(hash)}}); err != nil {
		t.Fatalf("set password: %v", err)
	}
}

func postLogin(h *login.Handler, form string) *httptest.ResponseRecorder {
	req := testutil.NewFormRequest("/login", form)
	rec := httptest.NewRecorder()
	h.HandleLogin(rec, req)
	return rec
}

func TestHandleLogin_Success(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	mentor := fixtures.CreateMentor(ctx, "Mia Mentor", "mia@test.com")
	setPassword(t, fixtures, mentor.ID, "correct horse")

	rec := postLogin(h, "email=mia%40test.com&password=correct+horse")

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/events" {
		t.Errorf("redirect: got %q, want %q", got, "/events")
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("expected a session cookie to be set")
	}
}

func TestHandleLogin_CaseInsensitiveEmail(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	mentor := fixtures.CreateMentor(ctx, "Mia Mentor", "mia@test.com")
	setPassword(t, fixtures, mentor.ID, "correct horse")

	rec := postLogin(h, "email=MIA%40TEST.COM&password=correct+horse")

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
}

func TestHandleLogin_WrongPassword(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	mentor := fixtures.CreateMentor(ctx, "Mia Mentor", "mia@test.com")
	setPassword(t, fixtures, mentor.ID, "correct horse")

	rec := postLogin(h, "email=mia%40test.com&password=wrong")

	if rec.Code == http.StatusSeeOther {
		t.Fatal("expected wrong password to be rejected")
	}
}

func TestHandleLogin_UnknownEmail(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := postLogin(h, "email=nobody%40test.com&password=whatever")

	if rec.Code == http.StatusSeeOther {
		t.Fatal("expected unknown email to be rejected")
	}
}

func TestHandleLogin_DisabledUser(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	mentor := fixtures.CreateMentor(ctx, "Mia Mentor", "mia@test.com")
	setPassword(t, fixtures, mentor.ID, "correct horse")
	if _, err := fixtures.DB().Collection("users").UpdateByID(ctx, mentor.ID,
		bson.M{"$set": bson.M{"status": models.UserStatusDisabled}}); err != nil {
		t.Fatalf("disable user: %v", err)
	}

	rec := postLogin(h, "email=mia%40test.com&password=correct+horse")

	if rec.Code == http.StatusSeeOther {
		t.Fatal("expected disabled user to be rejected even with the right password")
	}
}

func TestHandleLogin_ReturnURLMustBeLocal(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	mentor := fixtures.CreateMentor(ctx, "Mia Mentor", "mia@test.com")
	setPassword(t, fixtures, mentor.ID, "correct horse")

	rec := postLogin(h, "email=mia%40test.com&password=correct+horse&return=https%3A%2F%2Fevil.example%2F")

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/events" {
		t.Errorf("expected off-site return URL replaced with /events, got %q", got)
	}
}
