// Package secctx propagates the per-request SecurityContext through
// context.Context. The authentication boundary binds exactly one context per
// request and clears it when the request ends; everything downstream reads
// through From and the accessors, which derive purely from the bound value.
package secctx

import (
	"context"

	"authcore/internal/domain"
)

type contextKey struct{}

// With returns a child context carrying sc.
func With(ctx context.Context, sc domain.SecurityContext) context.Context {
	return context.WithValue(ctx, contextKey{}, sc)
}

// From returns the bound SecurityContext, or the anonymous context when
// nothing was bound. Never returns a "null" context.
func From(ctx context.Context) domain.SecurityContext {
	if sc, ok := ctx.Value(contextKey{}).(domain.SecurityContext); ok {
		return sc
	}
	return domain.Anonymous()
}

// Cleared returns a context with any binding removed. Idempotent.
func Cleared(ctx context.Context) context.Context {
	if _, ok := ctx.Value(contextKey{}).(domain.SecurityContext); !ok {
		return ctx
	}
	return With(ctx, domain.Anonymous())
}

func IsAuthenticated(ctx context.Context) bool {
	return From(ctx).IsAuthenticated()
}

func CurrentUserID(ctx context.Context) string {
	return From(ctx).UserID
}

func CurrentTenantID(ctx context.Context) string {
	return From(ctx).TenantID
}

func CurrentOrganizationID(ctx context.Context) string {
	return From(ctx).OrganizationID
}

func HasPermission(ctx context.Context, code string) bool {
	return From(ctx).HasPermission(code)
}

func HasAnyRole(ctx context.Context, roles ...string) bool {
	return From(ctx).HasAnyRole(roles...)
}

func IsSuperAdmin(ctx context.Context) bool {
	return From(ctx).IsSuperAdmin()
}
