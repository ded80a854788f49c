package auditlog_test

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/mentorhub/internal/app/store/audit"
	"github.com/dalemusser/mentorhub/internal/app/system/auditlog"
	"github.com/dalemusser/mentorhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestLogger_NilLogger(t *testing.T) {
	// nil logger should be a no-op (not panic)
	var logger *auditlog.Logger
	ctx, cancel := testutil.TestContext()
	defer cancel()
	req := httptest.NewRequest("GET", "/", nil)

	logger.Log(ctx, audit.Event{EventType: "test"})
	logger.LoginSuccess(ctx, req, primitive.NewObjectID(), "test@example.com")
	logger.Logout(ctx, req, primitive.NewObjectID().Hex())
}

func TestLogger_Log_ConfigOff(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger := auditlog.New(store, zap.NewNop(), auditlog.Config{
		Auth:  "off",
		Admin: "off",
	})

	logger.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLoginSuccess,
		Success:   true,
	})

	events, err := store.GetRecent(ctx, 10)
	if err != nil {
		t.Fatalf("GetRecent failed: %v", err)
	}
	if len(events) != 0 {
		t.Error("expected no events when config is 'off'")
	}
}

func TestLogger_Log_ConfigDB(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	logger := auditlog.New(store, zap.NewNop(), auditlog.Config{
		Auth:  "db",
		Admin: "db",
	})

	logger.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLoginSuccess,
		UserID:    &userID,
		Success:   true,
	})

	events, err := store.GetByUser(ctx, userID, 10)
	if err != nil {
		t.Fatalf("GetByUser failed: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("expected 1 event, got %d", len(events))
	}
}

func TestLogger_Log_ConfigLogOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger := auditlog.New(store, zap.NewNop(), auditlog.Config{
		Auth:  "log",
		Admin: "log",
	})

	logger.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventLoginSuccess,
		Success:   true,
	})

	events, err := store.GetRecent(ctx, 10)
	if err != nil {
		t.Fatalf("GetRecent failed: %v", err)
	}
	if len(events) != 0 {
		t.Error("expected no DB events when config is 'log'")
	}
}

func TestLogger_MentorRequestDecided(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	logger := auditlog.New(store, zap.NewNop(), auditlog.Config{
		Auth:  "all",
		Admin: "all",
	})

	actorID := primitive.NewObjectID()
	mentorID := primitive.NewObjectID()
	eventID := primitive.NewObjectID()
	req := httptest.NewRequest("POST", "/events/"+eventID.Hex()+"/requests/"+mentorID.Hex()+"/approve", nil)

	logger.MentorRequestDecided(ctx, req, actorID, mentorID, eventID, "staff", true)
	logger.MentorRequestDecided(ctx, req, actorID, mentorID, eventID, "staff", false)

	approved, err := store.Query(ctx, audit.QueryFilter{EventType: audit.EventMentorRequestApproved})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(approved) != 1 {
		t.Fatalf("expected 1 approved event, got %d", len(approved))
	}
	if approved[0].UserID == nil || *approved[0].UserID != mentorID {
		t.Error("expected affected user to be the mentor")
	}
	if approved[0].ActorID == nil || *approved[0].ActorID != actorID {
		t.Error("expected actor to be the staff member")
	}

	declined, err := store.Query(ctx, audit.QueryFilter{EventType: audit.EventMentorRequestDeclined})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(declined) != 1 {
		t.Fatalf("expected 1 declined event, got %d", len(declined))
	}
}
