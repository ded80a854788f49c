package userstore_test

import (
	"errors"
	"testing"

	userstore "github.com/dalemusser/mentorhub/internal/app/store/users"
	"github.com/dalemusser/mentorhub/internal/app/system/indexes"
	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/dalemusser/mentorhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := models.User{
		FullName: "Admin User",
		Email:    "Admin@Example.com",
		Role:     "admin",
	}

	created, err := store.Create(ctx, user)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Email != "admin@example.com" {
		t.Errorf("expected normalized email, got %q", created.Email)
	}
	if created.FullNameCI == "" {
		t.Error("expected FullNameCI to be set")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
	if created.Status != "active" {
		t.Errorf("expected status 'active', got %q", created.Status)
	}
}

func TestStore_Create_RejectsBadRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.User{
		FullName: "Bad Role",
		Email:    "bad@example.com",
		Role:     "superuser",
	})
	if err == nil {
		t.Fatal("expected error for invalid role")
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// The unique index enforces duplicates; ensure it exists first.
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	u := models.User{FullName: "First", Email: "dup@example.com", Role: "mentor"}
	if _, err := store.Create(ctx, u); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	u2 := models.User{FullName: "Second", Email: "DUP@example.com", Role: "mentor"}
	_, err := store.Create(ctx, u2)
	if !errors.Is(err, userstore.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestStore_GetByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		FullName: "Mentor User",
		Email:    "mentor@example.com",
		Role:     "mentor",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.GetByEmail(ctx, "  MENTOR@example.com ")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.ID != created.ID {
		t.Error("expected to find the created user")
	}

	_, err = store.GetByEmail(ctx, "missing@example.com")
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected mongo.ErrNoDocuments, got %v", err)
	}
}

func TestStore_GetMentorByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	staff, err := store.Create(ctx, models.User{
		FullName: "Staff User",
		Email:    "staff@example.com",
		Role:     "staff",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Staff user is not a mentor.
	if _, err := store.GetMentorByID(ctx, staff.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected mongo.ErrNoDocuments for staff user, got %v", err)
	}
}

func TestStore_ListMentors(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, u := range []models.User{
		{FullName: "Zoe Mentor", Email: "zoe@example.com", Role: "mentor"},
		{FullName: "Alice Mentor", Email: "alice@example.com", Role: "mentor"},
		{FullName: "Staff Person", Email: "staff2@example.com", Role: "staff"},
		{FullName: "Disabled Mentor", Email: "disabled@example.com", Role: "mentor", Status: "disabled"},
	} {
		if _, err := store.Create(ctx, u); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	mentors, err := store.ListMentors(ctx, "")
	if err != nil {
		t.Fatalf("ListMentors failed: %v", err)
	}
	if len(mentors) != 2 {
		t.Fatalf("expected 2 active mentors, got %d", len(mentors))
	}
	if mentors[0].FullName != "Alice Mentor" || mentors[1].FullName != "Zoe Mentor" {
		t.Errorf("expected sort by folded name, got %q then %q", mentors[0].FullName, mentors[1].FullName)
	}

	// Prefix search on folded name.
	mentors, err = store.ListMentors(ctx, "zoe")
	if err != nil {
		t.Fatalf("ListMentors with query failed: %v", err)
	}
	if len(mentors) != 1 || mentors[0].FullName != "Zoe Mentor" {
		t.Errorf("expected only Zoe Mentor, got %v", mentors)
	}
}

func TestStore_ListByIDs_PreservesOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, err := store.Create(ctx, models.User{FullName: "A", Email: "a@example.com", Role: "mentor"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	b, err := store.Create(ctx, models.User{FullName: "B", Email: "b@example.com", Role: "mentor"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	users, err := store.ListByIDs(ctx, []primitive.ObjectID{b.ID, primitive.NewObjectID(), a.ID})
	if err != nil {
		t.Fatalf("ListByIDs failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].ID != b.ID || users[1].ID != a.ID {
		t.Error("expected input order to be preserved")
	}
}

func TestStore_SetStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := store.Create(ctx, models.User{FullName: "M", Email: "m@example.com", Role: "mentor"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.SetStatus(ctx, u.ID, "disabled"); err != nil {
		t.Fatalf("SetStatus failed: %v", err)
	}

	got, err := store.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != "disabled" {
		t.Errorf("status: got %q, want %q", got.Status, "disabled")
	}

	if err := store.SetStatus(ctx, primitive.NewObjectID(), "active"); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("expected mongo.ErrNoDocuments for missing user, got %v", err)
	}
}
