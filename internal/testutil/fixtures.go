package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/mentorhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) createUser(ctx context.Context, name, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   name,
		FullNameCI: text.Fold(name),
		Email:      email,
		Role:       role,
		Status:     models.UserStatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test %s: %v", role, err)
	}
	return u
}

// CreateAdmin creates a test admin user.
func (f *Fixtures) CreateAdmin(ctx context.Context, name, email string) models.User {
	return f.createUser(ctx, name, email, models.RoleAdmin)
}

// CreateStaff creates a test staff user.
func (f *Fixtures) CreateStaff(ctx context.Context, name, email string) models.User {
	return f.createUser(ctx, name, email, models.RoleStaff)
}

// CreateMentor creates a test mentor user.
func (f *Fixtures) CreateMentor(ctx context.Context, name, email string) models.User {
	return f.createUser(ctx, name, email, models.RoleMentor)
}

// CreateEvent creates an active test event with empty membership sets.
func (f *Fixtures) CreateEvent(ctx context.Context, title string, startsAt time.Time) models.Event {
	f.t.Helper()

	now := time.Now().UTC()
	e := models.Event{
		ID:                primitive.NewObjectID(),
		Title:             title,
		TitleCI:           text.Fold(title),
		StartsAt:          startsAt,
		EndsAt:            startsAt.Add(2 * time.Hour),
		Status:            models.EventStatusActive,
		RequestingMentors: []primitive.ObjectID{},
		AcceptedMentors:   []primitive.ObjectID{},
		DeclinedMentors:   []primitive.ObjectID{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if _, err := f.db.Collection("events").InsertOne(ctx, e); err != nil {
		f.t.Fatalf("failed to create test event: %v", err)
	}
	return e
}

// CreateArchivedEvent creates a test event in archived status.
func (f *Fixtures) CreateArchivedEvent(ctx context.Context, title string, startsAt time.Time) models.Event {
	f.t.Helper()

	e := f.CreateEvent(ctx, title, startsAt)
	if _, err := f.db.Collection("events").UpdateByID(ctx, e.ID,
		map[string]interface{}{"$set": map[string]interface{}{"status": models.EventStatusArchived}}); err != nil {
		f.t.Fatalf("failed to archive test event: %v", err)
	}
	e.Status = models.EventStatusArchived
	return e
}

// SetMembership overwrites an event's membership sets directly. Tests use
// this to arrange states; production code goes through the store's
// transition operations only.
func (f *Fixtures) SetMembership(ctx context.Context, eventID primitive.ObjectID, requesting, accepted, declined []primitive.ObjectID) {
	f.t.Helper()

	if requesting == nil {
		requesting = []primitive.ObjectID{}
	}
	if accepted == nil {
		accepted = []primitive.ObjectID{}
	}
	if declined == nil {
		declined = []primitive.ObjectID{}
	}
	_, err := f.db.Collection("events").UpdateByID(ctx, eventID, map[string]interface{}{
		"$set": map[string]interface{}{
			"requesting_mentors": requesting,
			"accepted_mentors":   accepted,
			"declined_mentors":   declined,
		},
	})
	if err != nil {
		f.t.Fatalf("failed to set test membership: %v", err)
	}
}
