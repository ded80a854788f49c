package eventpolicy_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/mentorhub/internal/app/policy/eventpolicy"
	"github.com/dalemusser/mentorhub/internal/app/system/auth"
	"github.com/dalemusser/mentorhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCanStaffEvent_ActiveEvent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	event := fixtures.CreateEvent(ctx, "Science Fair", time.Now().Add(24*time.Hour))
	staff := fixtures.CreateStaff(ctx, "Staff", "staff@example.com")

	req := httptest.NewRequest("POST", "/events/"+event.ID.Hex()+"/mentors/assign", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{
		ID: staff.ID.Hex(), Name: staff.FullName, Email: staff.Email, Role: "staff",
	})

	ok, err := eventpolicy.CanStaffEvent(ctx, db, req, event.ID)
	if err != nil {
		t.Fatalf("CanStaffEvent failed: %v", err)
	}
	if !ok {
		t.Error("expected staff to be allowed on an active event")
	}
}

func TestCanStaffEvent_ArchivedEvent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	event := fixtures.CreateArchivedEvent(ctx, "Old Gala", time.Now().Add(-24*time.Hour))
	staff := fixtures.CreateStaff(ctx, "Staff", "staff@example.com")

	req := httptest.NewRequest("POST", "/events/"+event.ID.Hex()+"/mentors/assign", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{
		ID: staff.ID.Hex(), Name: staff.FullName, Email: staff.Email, Role: "staff",
	})

	ok, err := eventpolicy.CanStaffEvent(ctx, db, req, event.ID)
	if err != nil {
		t.Fatalf("CanStaffEvent failed: %v", err)
	}
	if ok {
		t.Error("archived events are read-only, staffing must be denied")
	}
}

func TestCanStaffEvent_MentorDenied(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	event := fixtures.CreateEvent(ctx, "Science Fair", time.Now().Add(24*time.Hour))
	mentor := fixtures.CreateMentor(ctx, "Mentor", "mentor@example.com")

	req := httptest.NewRequest("POST", "/events/"+event.ID.Hex()+"/mentors/assign", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{
		ID: mentor.ID.Hex(), Name: mentor.FullName, Email: mentor.Email, Role: "mentor",
	})

	ok, err := eventpolicy.CanStaffEvent(ctx, db, req, event.ID)
	if err != nil {
		t.Fatalf("CanStaffEvent failed: %v", err)
	}
	if ok {
		t.Error("mentors must not staff events")
	}
}

func TestCanStaffEvent_MissingEvent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	staff := fixtures.CreateStaff(ctx, "Staff", "staff@example.com")

	req := httptest.NewRequest("POST", "/events/x/mentors/assign", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{
		ID: staff.ID.Hex(), Name: staff.FullName, Email: staff.Email, Role: "staff",
	})

	ok, err := eventpolicy.CanStaffEvent(ctx, db, req, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("CanStaffEvent failed: %v", err)
	}
	if ok {
		t.Error("missing events must be denied")
	}
}

func TestCanRequestEvent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	active := fixtures.CreateEvent(ctx, "Science Fair", time.Now().Add(24*time.Hour))
	archived := fixtures.CreateArchivedEvent(ctx, "Old Gala", time.Now().Add(-24*time.Hour))
	mentor := fixtures.CreateMentor(ctx, "Mentor", "mentor@example.com")

	req := httptest.NewRequest("POST", "/events/"+active.ID.Hex()+"/request", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{
		ID: mentor.ID.Hex(), Name: mentor.FullName, Email: mentor.Email, Role: "mentor",
	})

	ok, err := eventpolicy.CanRequestEvent(ctx, db, req, active.ID)
	if err != nil {
		t.Fatalf("CanRequestEvent failed: %v", err)
	}
	if !ok {
		t.Error("expected mentor to be allowed to request an active event")
	}

	ok, err = eventpolicy.CanRequestEvent(ctx, db, req, archived.ID)
	if err != nil {
		t.Fatalf("CanRequestEvent failed: %v", err)
	}
	if ok {
		t.Error("archived events must not accept requests")
	}

	// Staff can't self-request.
	staff := fixtures.CreateStaff(ctx, "Staff", "staff@example.com")
	sreq := httptest.NewRequest("POST", "/events/"+active.ID.Hex()+"/request", nil)
	sreq = auth.WithTestUser(sreq, &auth.SessionUser{
		ID: staff.ID.Hex(), Name: staff.FullName, Email: staff.Email, Role: "staff",
	})
	ok, err = eventpolicy.CanRequestEvent(ctx, db, sreq, active.ID)
	if err != nil {
		t.Fatalf("CanRequestEvent failed: %v", err)
	}
	if ok {
		t.Error("staff must not submit mentor requests")
	}
}
