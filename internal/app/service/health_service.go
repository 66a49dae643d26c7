package service

import (
	"context"
	"log/slog"

	"github.com/lampara23/dise-o-web/internal/app/dto"
	"github.com/lampara23/dise-o-web/internal/domain"
	"github.com/lampara23/dise-o-web/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const healthyMessage = "🚀 Doggy's API with MongoDB is up and running!"

// HealthService reports whether the product store answers.
type HealthService struct {
	repo   domain.ProductRepository
	tracer trace.Tracer
	logger *slog.Logger
}

func NewHealthService(repo domain.ProductRepository, tracer trace.Tracer, logger *slog.Logger) *HealthService {
	return &HealthService{repo: repo, tracer: tracer, logger: logger}
}

// Check never fails: a store error is reported in the response body.
func (s *HealthService) Check(ctx context.Context) dto.HealthResponse {
	ctx, span := s.tracer.Start(ctx, "HealthService.Check")
	defer span.End()

	total, err := s.repo.Count(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Store unreachable")
		s.logger.WarnContext(ctx, "Health check failed", telemetry.Err(err))
		return dto.HealthResponse{
			Status:  dto.HealthStatusError,
			Message: "connection error: " + err.Error(),
		}
	}

	s.logger.DebugContext(ctx, "Health check passed", slog.Int64("total_products", total))
	span.SetStatus(codes.Ok, "Healthy")
	return dto.HealthResponse{
		Status:        dto.HealthStatusHealthy,
		Message:       healthyMessage,
		TotalProducts: &total,
	}
}
