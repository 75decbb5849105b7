package ledger_service_api

import (
	"context"
	"errors"
	"strings"

	"github.com/Domenick1991/gymbooking/internal/domain"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type TokenParser interface {
	Parse(token string) (domain.Actor, error)
}

type actorCtxKey struct{}

func actorFromContext(ctx context.Context) domain.Actor {
	actor, _ := ctx.Value(actorCtxKey{}).(domain.Actor)
	return actor
}

// AuthInterceptor reads "authorization: Bearer <jwt>" metadata and puts the
// actor into the handler context.
func AuthInterceptor(tokens TokenParser) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		md, _ := metadata.FromIncomingContext(ctx)
		values := md.Get("authorization")
		if len(values) == 0 || !strings.HasPrefix(values[0], "Bearer ") {
			return nil, status.Error(codes.Unauthenticated, "missing bearer token")
		}
		actor, err := tokens.Parse(strings.TrimPrefix(values[0], "Bearer "))
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}
		return handler(context.WithValue(ctx, actorCtxKey{}, actor), req)
	}
}

// ErrorInterceptor turns domain errors into gRPC status errors.
func ErrorInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	resp, err := handler(ctx, req)
	if err != nil {
		return nil, toStatus(err)
	}
	return resp, nil
}

// errorDomain is the ErrorInfo domain attached to ledger errors. Reasons
// match the HTTP error codes.
const errorDomain = "gym.ledger.v1"

func toStatus(err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, domain.ErrInvalidCapacity),
		errors.Is(err, domain.ErrInvalidSchedule),
		errors.Is(err, domain.ErrInvalidKind),
		errors.Is(err, domain.ErrInvalidID):
		return withReason(codes.InvalidArgument, "INVALID_INPUT", err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return withReason(codes.PermissionDenied, "FORBIDDEN", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return withReason(codes.NotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrScheduleConflict):
		return withReason(codes.AlreadyExists, "SCHEDULE_CONFLICT", err.Error())
	case errors.Is(err, domain.ErrDuplicateBooking):
		return withReason(codes.AlreadyExists, "DUPLICATE_BOOKING", err.Error())
	case errors.Is(err, domain.ErrBookingInProgress):
		return withReason(codes.Aborted, "BOOKING_IN_PROGRESS", err.Error())
	case errors.Is(err, domain.ErrCapacityExceeded):
		return withReason(codes.FailedPrecondition, "CAPACITY_EXCEEDED", err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return withReason(codes.Internal, "INTERNAL", "internal error")
	}
}

func withReason(code codes.Code, reason, msg string) error {
	st := status.New(code, msg)
	detailed, err := st.WithDetails(&errdetails.ErrorInfo{Reason: reason, Domain: errorDomain})
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}

// ReasonOf returns the ErrorInfo reason carried by a status error, or "".
func ReasonOf(err error) string {
	st, ok := status.FromError(err)
	if !ok {
		return ""
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.GetDomain() == errorDomain {
			return info.GetReason()
		}
	}
	return ""
}
