package service

import (
	"context"
	"errors"

	"tagnotes/cmd/internal/domain/page"
	"tagnotes/cmd/internal/utils/apierror"

	"github.com/labstack/gommon/log"
)

// Transactor runs a unit of work atomically.
type Transactor interface {
	RunInTx(ctx context.Context, f func(context.Context) error) error
}

var errAborted = errors.New("unit of work aborted")

// inTx runs f inside one transaction. When f returns an API error the
// transaction is rolled back and the error is handed back untouched.
func inTx(ctx context.Context, tx Transactor, f func(context.Context) apierror.ErrorResponse) apierror.ErrorResponse {
	var apierr apierror.ErrorResponse
	err := tx.RunInTx(ctx, func(ctx context.Context) error {
		apierr = f(ctx)
		if apierr != nil {
			return errAborted
		}
		return nil
	})

	if apierr != nil {
		return apierr
	}
	if err != nil {
		log.Errorf("transaction failed: %v", err)
		return apierror.InternalServerError
	}
	return nil
}

func validationError(err error) apierror.ErrorResponse {
	if serr := apierror.FromValidationError(err); serr != nil {
		return serr
	}
	log.Errorf("failed to validate request: %v", err)
	return apierror.InternalServerError
}

func pageError(err error) apierror.ErrorResponse {
	if errors.Is(err, page.ErrUnknownProperty) {
		return apierror.NewInvalidParamError("sort", err)
	}
	log.Errorf("failed to fetch page: %v", err)
	return apierror.InternalServerError
}
