package mid

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jcpaschoal/smartroom/app/sdk/auth"
	"github.com/jcpaschoal/smartroom/app/sdk/errs"
	"github.com/jcpaschoal/smartroom/business/sdk/web"
	"github.com/jcpaschoal/smartroom/business/types/role"
)

// Authenticate valida o token JWT contido no header Authorization e coloca
// o usuário, o tenant e a role do token no contexto.
func Authenticate(a *auth.Auth) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			authStr := r.Header.Get("authorization")
			if authStr == "" {
				return errs.New(errs.Unauthenticated, errors.New("missing authorization header"))
			}

			parts := strings.Split(authStr, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return errs.New(errs.Unauthenticated, errors.New("expected authorization header format: Bearer <token>"))
			}

			claims, err := a.Authenticate(ctx, "Bearer "+parts[1])
			if err != nil {
				return errs.New(errs.Unauthenticated, err)
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				return errs.New(errs.Unauthenticated, fmt.Errorf("invalid user id: %w", err))
			}

			tenantID, err := uuid.Parse(claims.TenantID)
			if err != nil {
				return errs.New(errs.Unauthenticated, fmt.Errorf("invalid tenant id: %w", err))
			}

			rle, err := role.Parse(claims.Role)
			if err != nil {
				return errs.New(errs.Unauthenticated, fmt.Errorf("invalid role: %w", err))
			}

			ctx = setUserID(ctx, userID)
			ctx = setTenantID(ctx, tenantID)
			ctx = setRole(ctx, rle)
			ctx = setClaims(ctx, claims)

			tagIdentity(ctx, userID, tenantID, rle)

			return next(ctx, r)
		}

		return h
	}

	return m
}
