// internal/app/store/events/eventstore.go
package eventstore

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/dalemusser/mentorhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// listCacheTTL bounds how stale the cached event list may get when no
// mutation invalidates it first.
const listCacheTTL = 30 * time.Second

var ErrDuplicateEventTitle = errors.New("an event with this title already exists")

type Store struct {
	c *mongo.Collection

	// Cached copy of the full active-event list used by list views.
	// Any successful mutation calls InvalidateListCache so dependent
	// views refetch committed state.
	mu         sync.Mutex
	cachedList []models.Event
	cachedAt   time.Time
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("events")}
}

func (s *Store) Create(ctx context.Context, e models.Event) (models.Event, error) {
	now := time.Now().UTC()
	e.ID = primitive.NewObjectID()
	e.TitleCI = text.Fold(e.Title)
	if e.Status == "" {
		e.Status = models.EventStatusActive
	}
	// Membership sets are created empty with the event and owned by it.
	if e.RequestingMentors == nil {
		e.RequestingMentors = []primitive.ObjectID{}
	}
	if e.AcceptedMentors == nil {
		e.AcceptedMentors = []primitive.ObjectID{}
	}
	if e.DeclinedMentors == nil {
		e.DeclinedMentors = []primitive.ObjectID{}
	}
	e.CreatedAt = now
	e.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, e); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Event{}, ErrDuplicateEventTitle
		}
		return models.Event{}, err
	}
	s.InvalidateListCache()
	return e, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Event, error) {
	var e models.Event
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		return models.Event{}, err
	}
	return e, nil
}

// UpdateInfo modifies an event's descriptive fields. Membership sets are
// never touched here; they belong to the transition operations.
func (s *Store) UpdateInfo(ctx context.Context, id primitive.ObjectID, title, desc, location string, startsAt, endsAt time.Time) error {
	set := bson.M{
		"updated_at":  time.Now().UTC(),
		"description": desc,
		"location":    location,
	}
	if strings.TrimSpace(title) != "" {
		set["title"] = title
		set["title_ci"] = text.Fold(title)
	}
	if !startsAt.IsZero() {
		set["starts_at"] = startsAt
	}
	if !endsAt.IsZero() {
		set["ends_at"] = endsAt
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateEventTitle
		}
		return err
	}
	s.InvalidateListCache()
	return nil
}

// SetStatus moves an event between active and archived.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	if status != models.EventStatusActive && status != models.EventStatusArchived {
		return mongo.CommandError{Message: "status must be active or archived"}
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	s.InvalidateListCache()
	return nil
}

// Delete removes an event by ID. The embedded membership sets cascade with
// the document. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	s.InvalidateListCache()
	return res.DeletedCount, nil
}

// List returns events sorted by start time, optionally filtered by status
// and a folded-title search query.
func (s *Store) List(ctx context.Context, status, q string) ([]models.Event, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	if q = strings.TrimSpace(q); q != "" {
		filter["title_ci"] = bson.M{"$regex": text.Fold(q)}
	}
	opts := options.Find().SetSort(bson.D{{Key: "starts_at", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var events []models.Event
	if err := cur.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// ListActiveCached returns the active-event list, serving a cached copy when
// one is fresh. Mutations invalidate the cache so views re-read committed
// membership sets on the next render.
func (s *Store) ListActiveCached(ctx context.Context) ([]models.Event, error) {
	s.mu.Lock()
	if s.cachedList != nil && time.Since(s.cachedAt) < listCacheTTL {
		cached := s.cachedList
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	events, err := s.List(ctx, models.EventStatusActive, "")
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cachedList = events
	s.cachedAt = time.Now()
	s.mu.Unlock()
	return events, nil
}

// InvalidateListCache drops the cached event list.
func (s *Store) InvalidateListCache() {
	s.mu.Lock()
	s.cachedList = nil
	s.mu.Unlock()
}

// ListAcceptedFor returns the IDs of events whose accepted set contains the
// mentor, sorted by start time. This is the read-side projection the
// acceptance tracker diffs against its snapshot.
func (s *Store) ListAcceptedFor(ctx context.Context, mentorID primitive.ObjectID) ([]primitive.ObjectID, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "starts_at", Value: 1}}).
		SetProjection(bson.M{"_id": 1})
	cur, err := s.c.Find(ctx, bson.M{"accepted_mentors": mentorID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ids []primitive.ObjectID
	for cur.Next(ctx) {
		var row struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		ids = append(ids, row.ID)
	}
	return ids, cur.Err()
}

// CountPendingRequests returns the total number of pending mentor requests
// across all active events, for the staff dashboard badge.
func (s *Store) CountPendingRequests(ctx context.Context) (int64, error) {
	cur, err := s.c.Aggregate(ctx, []bson.M{
		{"$match": bson.M{"status": models.EventStatusActive}},
		{"$project": bson.M{"n": bson.M{"$size": "$requesting_mentors"}}},
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$n"}}},
	})
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	if cur.Next(ctx) {
		var row struct {
			Total int64 `bson:"total"`
		}
		if err := cur.Decode(&row); err != nil {
			return 0, err
		}
		return row.Total, nil
	}
	return 0, cur.Err()
}
