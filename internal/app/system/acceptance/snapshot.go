// internal/app/system/acceptance/snapshot.go
package acceptance

import (
	"net/http"

	"github.com/gorilla/securecookie"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const cookiePrefix = "acceptedEvents_"

// SnapshotStore persists the per-viewer accepted-events snapshot in a
// signed browser cookie. The snapshot is client-owned and advisory only;
// it is never a source of truth for membership state.
type SnapshotStore struct {
	codec  *securecookie.SecureCookie
	secure bool
}

// NewSnapshotStore builds a snapshot store signing cookies with hashKey.
// blockKey may be nil to skip encryption (values are event IDs, not
// secrets; signing prevents tampering). secure controls the cookie's
// Secure attribute.
func NewSnapshotStore(hashKey, blockKey []byte, secure bool) *SnapshotStore {
	codec := securecookie.New(hashKey, blockKey)
	codec.SetSerializer(securecookie.JSONEncoder{})
	return &SnapshotStore{codec: codec, secure: secure}
}

func cookieName(viewerID primitive.ObjectID) string {
	return cookiePrefix + viewerID.Hex()
}

// Load returns the previously persisted accepted event IDs for viewerID.
// A missing or unreadable cookie reports found=false, which callers treat
// as an empty previous snapshot (cold start).
func (s *SnapshotStore) Load(r *http.Request, viewerID primitive.ObjectID) (ids []primitive.ObjectID, found bool) {
	c, err := r.Cookie(cookieName(viewerID))
	if err != nil {
		return nil, false
	}

	var hexIDs []string
	if err := s.codec.Decode(cookieName(viewerID), c.Value, &hexIDs); err != nil {
		return nil, false
	}

	ids = make([]primitive.ObjectID, 0, len(hexIDs))
	for _, h := range hexIDs {
		id, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, true
}

// Save overwrites the viewer's snapshot with ids. Overwrite is
// unconditional; the snapshot always reflects the latest observed
// accepted set.
func (s *SnapshotStore) Save(w http.ResponseWriter, viewerID primitive.ObjectID, ids []primitive.ObjectID) error {
	hexIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		hexIDs = append(hexIDs, id.Hex())
	}

	encoded, err := s.codec.Encode(cookieName(viewerID), hexIDs)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName(viewerID),
		Value:    encoded,
		Path:     "/",
		MaxAge:   60 * 60 * 24 * 365,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
