package mid

import (
	"context"
	"net/http"

	"github.com/jcpaschoal/smartroom/app/sdk/errs"
	"github.com/jcpaschoal/smartroom/business/domain/aclbus"
	"github.com/jcpaschoal/smartroom/business/sdk/web"
	"github.com/jcpaschoal/smartroom/business/types/actions"
	"github.com/jcpaschoal/smartroom/business/types/resource"
)

// Authorize valida se o usuário autenticado tem permissão para executar a
// ação sobre o recurso. Deve rodar depois de Authenticate.
func Authorize(acl *aclbus.Core, res resource.Resource, act actions.Action) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			rle, err := GetRole(ctx)
			if err != nil {
				return errs.New(errs.Unauthenticated, err)
			}

			if err := acl.Authorize(ctx, rle, res, act); err != nil {
				return errs.New(errs.PermissionDenied, err)
			}

			return next(ctx, r)
		}

		return h
	}

	return m
}

// AuthorizeMethod is Authorize with the action derived from the HTTP method
// of the request.
func AuthorizeMethod(acl *aclbus.Core, res resource.Resource) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			act, err := actions.FromHTTPMethod(r.Method)
			if err != nil {
				return errs.New(errs.FailedPrecondition, err)
			}

			return Authorize(acl, res, act)(next)(ctx, r)
		}

		return h
	}

	return m
}
