package handler

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"mindwell-api/internal/booking"
	"mindwell-api/internal/middleware"
	"mindwell-api/internal/model"
	"mindwell-api/internal/mood"
	"mindwell-api/internal/store"
)

// Store is the slice of the persistence layer the handler touches directly;
// appointment and mood access goes through the services.
type Store interface {
	CreateUser(ctx context.Context, u *model.User) error
	UserByEmail(ctx context.Context, email string) (*model.User, error)
	ListTherapists(ctx context.Context) ([]model.Therapist, error)
	Therapist(ctx context.Context, id string) (*model.Therapist, error)
	Connect(ctx context.Context, userID, therapistID string) error
	CreateRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) (string, error)
	RefreshTokenByHash(ctx context.Context, tokenHash string) (*store.RefreshToken, error)
	RotateRefreshToken(ctx context.Context, oldID, newID, userID, newHash string, newExpiry time.Time) error
	RevokeAllRefreshTokens(ctx context.Context, userID string) error
}

type Handler struct {
	store   Store
	booking *booking.Service
	moods   *mood.Engine
	secret  string
	log     *zap.Logger
}

func New(st Store, bk *booking.Service, eng *mood.Engine, secret string, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{store: st, booking: bk, moods: eng, secret: secret, log: log}
}

func uid(ctx context.Context) (string, error) {
	id, _ := ctx.Value(middleware.UserIDKey).(string)
	if id == "" {
		return "", status.Error(codes.Unauthenticated, "no user in context")
	}
	return id, nil
}

// rpcError converts service failures into status codes. Anything unexpected is
// logged and flattened into a stable internal-error message (never surfaced
// raw to the caller).
func (h *Handler) rpcError(op string, err error) error {
	switch {
	case errors.Is(err, booking.ErrNotFound) || errors.Is(err, store.ErrNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, booking.ErrSlotTaken):
		return status.Error(codes.AlreadyExists, "slot is already booked")
	case errors.Is(err, booking.ErrNotConnected):
		return status.Error(codes.FailedPrecondition, "connect with this therapist before booking")
	case errors.Is(err, booking.ErrAlreadyCancelled):
		return status.Error(codes.FailedPrecondition, "appointment is already cancelled")
	case errors.Is(err, booking.ErrNotConfirmed):
		return status.Error(codes.FailedPrecondition, "appointment can no longer change")
	case errors.Is(err, booking.ErrInvalidSlot) ||
		errors.Is(err, mood.ErrInvalidMood) ||
		errors.Is(err, mood.ErrInvalidIntensity) ||
		errors.Is(err, mood.ErrInvalidDate):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		h.log.Error("operation failed", zap.String("op", op), zap.Error(err))
		return status.Error(codes.Internal, "internal error")
	}
}
