// internal/app/features/events/handler.go
package events

import (
	uierrors "github.com/dalemusser/mentorhub/internal/app/features/errors"
	eventstore "github.com/dalemusser/mentorhub/internal/app/store/events"
	userstore "github.com/dalemusser/mentorhub/internal/app/store/users"
	"github.com/dalemusser/mentorhub/internal/app/system/acceptance"
	"github.com/dalemusser/mentorhub/internal/app/system/auditlog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the event workflow surface: the role-aware list and detail
// pages, mentor self-service requests, staff decisions, direct
// assignments, and staff event CRUD.
//
// It is constructed once at startup in bootstrap, using the shared Mongo
// database handle and logger.
type Handler struct {
	DB      *mongo.Database
	Events  *eventstore.Store
	Users   *userstore.Store
	Tracker *acceptance.Tracker
	Audit   *auditlog.Logger
	ErrLog  *uierrors.ErrorLogger
	Log     *zap.Logger
}

// NewHandler constructs an events Handler bound to the given stores and
// collaborators.
func NewHandler(db *mongo.Database, events *eventstore.Store, users *userstore.Store, tracker *acceptance.Tracker, audit *auditlog.Logger, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:      db,
		Events:  events,
		Users:   users,
		Tracker: tracker,
		Audit:   audit,
		ErrLog:  errLog,
		Log:     logger,
	}
}
