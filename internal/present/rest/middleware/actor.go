package middleware

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/regulaworks/vendorcomply/internal/domain"
)

var tracer = otel.Tracer("actor")

// ActorMiddleware lifts the identity headers set by the upstream
// gateway into the request context. Authentication itself is the
// gateway's job; the engine only enforces ownership guards downstream.
type ActorMiddleware struct{}

func NewActorMiddleware() *ActorMiddleware {
	return &ActorMiddleware{}
}

func (m *ActorMiddleware) IdentifyActor(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := tracer.Start(c.Request().Context(), "Actor.Middleware.IdentifyActor")
		defer span.End()

		actorID := c.Request().Header.Get(domain.ActorIdHeader)
		if actorID != "" {
			ctx = context.WithValue(ctx, domain.ActorIdCtxKey, actorID)
			span.SetAttributes(attribute.String("ActorId", actorID))
		}

		role := c.Request().Header.Get(domain.ActorRoleHeader)
		if role != "" {
			ctx = context.WithValue(ctx, domain.ActorRoleCtxKey, role)
			span.SetAttributes(attribute.String("ActorRole", role))
		}

		vendor := c.Request().Header.Get(domain.ActorVendorHeader)
		if vendor != "" {
			ctx = context.WithValue(ctx, domain.ActorVendorCtxKey, vendor)
		}

		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}
