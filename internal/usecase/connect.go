package usecase

import (
	"context"

	"github.com/longkey1/exnota/internal/exnota"
	"github.com/longkey1/exnota/internal/log"
	"github.com/longkey1/exnota/internal/repo"
	"github.com/longkey1/exnota/internal/result"
	"github.com/longkey1/exnota/internal/service"
)

// KindNoPagesGranted is returned when the user granted the integration no pages
const KindNoPagesGranted result.Kind = "no-pages-granted"

// ConnectKinds is the kind set of ConnectInteractor.Connect
var ConnectKinds = result.Union(
	repo.AuthGetConfigKinds,
	repo.AuthSaveConfigKinds,
	exnota.AuthConfigKinds,
	service.GetTokenKinds,
	service.GetPagesKinds,
	repo.OptionsGetConfigKinds,
	repo.OptionsSaveConfigKinds,
	result.NewKindSet(KindNoPagesGranted),
)

// ConnectStatus tells the caller what to do after a successful connect
type ConnectStatus string

const (
	// StatusPageSet means the single granted page was saved as destination
	StatusPageSet ConnectStatus = "page-set"
	// StatusMultiplePages means the user has to pick one of Pages
	StatusMultiplePages ConnectStatus = "multiple-pages"
)

// ConnectResponse is the success value of Connect
type ConnectResponse struct {
	Status ConnectStatus `json:"status" msgpack:"status"`
	Pages  []exnota.Page `json:"pages,omitempty" msgpack:"pages,omitempty"`
}

// ConnectService is what Connect needs from the proxy
type ConnectService interface {
	TokenService
	PagesService
}

// ConnectInteractor connects a Notion workspace from an OAuth code
type ConnectInteractor struct {
	auth    repo.AuthConfigRepo
	options repo.OptionsConfigRepo
	service ConnectService
	logger  *log.Logger
}

// NewConnectInteractor creates a connect interactor
func NewConnectInteractor(auth repo.AuthConfigRepo, options repo.OptionsConfigRepo, svc ConnectService, logger *log.Logger) *ConnectInteractor {
	return &ConnectInteractor{
		auth:    auth,
		options: options,
		service: svc,
		logger:  logger.Named("ConnectUsecase"),
	}
}

// Connect stores code, exchanges it for a grant, stores the grant and looks
// at the granted pages. A single page becomes the destination right away;
// several are returned for the user to choose from.
//
// Every step is attempted once. The code is stored before any network call,
// so a failed exchange can be retried without asking the user again.
func (i *ConnectInteractor) Connect(ctx context.Context, code, redirectURL string) result.Result[ConnectResponse] {
	step := i.logger.Trace("Calling repo.getAuthConfig")
	loaded := i.auth.GetConfig(ctx)
	step.Outcome(loaded.Err())
	if !loaded.IsOk() {
		return result.Forward[ConnectResponse](loaded)
	}

	// a new code invalidates any token issued for the old one
	var authConfig exnota.AuthConfig
	if existing := loaded.Value(); existing != nil {
		cleared := existing.WithCode(code).WithTokenResponse(nil)
		if !cleared.IsOk() {
			return result.Forward[ConnectResponse](cleared)
		}
		authConfig = cleared.Value()
	} else {
		created := exnota.NewAuthConfig(code, nil)
		if !created.IsOk() {
			return result.Forward[ConnectResponse](created)
		}
		authConfig = created.Value()
	}

	step = i.logger.Trace("Calling repo.saveAuthConfig")
	saved := i.auth.SaveConfig(ctx, authConfig)
	step.Outcome(saved.Err())
	if !saved.IsOk() {
		return result.Forward[ConnectResponse](saved)
	}

	step = i.logger.Trace("Calling service.getToken")
	token := i.service.GetToken(ctx, code, redirectURL)
	step.Outcome(token.Err())
	if !token.IsOk() {
		return result.Forward[ConnectResponse](token)
	}

	tokenResponse := token.Value()
	withToken := authConfig.WithTokenResponse(&tokenResponse)
	if !withToken.IsOk() {
		return result.Forward[ConnectResponse](withToken)
	}

	step = i.logger.Trace("Calling repo.saveAuthConfig")
	saved = i.auth.SaveConfig(ctx, withToken.Value())
	step.Outcome(saved.Err())
	if !saved.IsOk() {
		return result.Forward[ConnectResponse](saved)
	}

	step = i.logger.Trace("Calling service.getPages")
	pages := i.service.GetPages(ctx)
	step.Outcome(pages.Err())
	if !pages.IsOk() {
		return result.Forward[ConnectResponse](pages)
	}

	granted := pages.Value()
	switch {
	case len(granted) == 0:
		i.logger.Info("No pages granted access", nil)
		return result.Fail[ConnectResponse](KindNoPagesGranted, "No pages granted access", nil, nil)
	case len(granted) > 1:
		i.logger.Info("More than one page granted access", map[string]any{"count": len(granted)})
		return result.Ok(ConnectResponse{Status: StatusMultiplePages, Pages: granted})
	}

	step = i.logger.Trace("Calling repo.getOptionsConfig")
	current := i.options.GetConfig(ctx)
	step.Outcome(current.Err())
	if !current.IsOk() {
		return result.Forward[ConnectResponse](current)
	}

	// the page replaces any previous selection; an integration token is kept
	optionsConfig := exnota.NewOptionsConfig(granted[0])
	if existing := current.Value(); existing != nil {
		optionsConfig = existing.WithPage(granted[0])
	}

	step = i.logger.Trace("Calling repo.saveOptionsConfig")
	saved = i.options.SaveConfig(ctx, optionsConfig)
	step.Outcome(saved.Err())
	if !saved.IsOk() {
		return result.Forward[ConnectResponse](saved)
	}

	i.logger.Info("One page granted access", map[string]any{"page_id": granted[0].ID})
	return result.Ok(ConnectResponse{Status: StatusPageSet})
}
