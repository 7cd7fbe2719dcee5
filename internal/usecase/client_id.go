package usecase

import (
	"context"

	"github.com/longkey1/exnota/internal/log"
	"github.com/longkey1/exnota/internal/result"
	"github.com/longkey1/exnota/internal/service"
)

// GetClientIDKinds is the kind set of GetClientIDInteractor.GetClientID
var GetClientIDKinds = service.GetClientIDKinds

// GetClientIDInteractor fetches the public OAuth client id used to build the
// authorization URL
type GetClientIDInteractor struct {
	service ClientIDService
	logger  *log.Logger
}

// NewGetClientIDInteractor creates a get-client-id interactor
func NewGetClientIDInteractor(svc ClientIDService, logger *log.Logger) *GetClientIDInteractor {
	return &GetClientIDInteractor{service: svc, logger: logger.Named("GetClientIdUsecase")}
}

// GetClientID returns the client id
func (i *GetClientIDInteractor) GetClientID(ctx context.Context) result.Result[string] {
	step := i.logger.Trace("Calling service.getClientId")
	res := i.service.GetClientID(ctx)
	step.Outcome(res.Err())
	return res
}
