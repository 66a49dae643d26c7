package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lampara23/dise-o-web/internal/app/dto"
	"github.com/lampara23/dise-o-web/internal/domain"
	"github.com/lampara23/dise-o-web/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// UserService exposes the read-only user listing
type UserService struct {
	repo   domain.UserRepository
	tracer trace.Tracer
	logger *slog.Logger
}

func NewUserService(repo domain.UserRepository, tracer trace.Tracer, logger *slog.Logger) *UserService {
	return &UserService{repo: repo, tracer: tracer, logger: logger}
}

// ListUsers retrieves every stored user
func (s *UserService) ListUsers(ctx context.Context) ([]*dto.UserResponse, error) {
	ctx, span := s.tracer.Start(ctx, "UserService.ListUsers")
	defer span.End()

	users, err := s.repo.FindAll(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to retrieve users")
		s.logger.ErrorContext(ctx, "Failed to list users", telemetry.Err(err))
		return nil, fmt.Errorf("error fetching users: %w", err)
	}

	span.SetAttributes(attribute.Int("user.count", len(users)))
	span.SetStatus(codes.Ok, "Users listed successfully")
	return dto.ToUserResponseList(users), nil
}
