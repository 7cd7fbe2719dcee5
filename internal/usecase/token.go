package usecase

import (
	"context"

	"github.com/longkey1/exnota/internal/exnota"
	"github.com/longkey1/exnota/internal/log"
	"github.com/longkey1/exnota/internal/repo"
	"github.com/longkey1/exnota/internal/result"
	"github.com/longkey1/exnota/internal/service"
)

var (
	// GetTokenKinds is the kind set of GetTokenInteractor.GetToken
	GetTokenKinds = repo.OptionsGetConfigKinds

	// SetTokenKinds is the kind set of SetTokenInteractor.SetToken
	SetTokenKinds = result.Union(
		service.ValidateTokenKinds,
		repo.OptionsGetConfigKinds,
		repo.OptionsSaveConfigKinds,
	)
)

// GetTokenInteractor reads the stored integration token
type GetTokenInteractor struct {
	options repo.OptionsConfigRepo
	logger  *log.Logger
}

// NewGetTokenInteractor creates a get-token interactor
func NewGetTokenInteractor(options repo.OptionsConfigRepo, logger *log.Logger) *GetTokenInteractor {
	return &GetTokenInteractor{options: options, logger: logger.Named("GetTokenUsecase")}
}

// GetToken returns the integration token, empty when none is stored
func (i *GetTokenInteractor) GetToken(ctx context.Context) result.Result[string] {
	step := i.logger.Trace("Calling repo.getOptionsConfig")
	current := i.options.GetConfig(ctx)
	step.Outcome(current.Err())
	if !current.IsOk() {
		return result.Forward[string](current)
	}
	if current.Value() == nil {
		return result.Ok("")
	}
	return result.Ok(current.Value().Token())
}

// SetTokenInteractor stores an integration token after Notion accepted it
type SetTokenInteractor struct {
	options   repo.OptionsConfigRepo
	validator TokenValidator
	logger    *log.Logger
}

// NewSetTokenInteractor creates a set-token interactor
func NewSetTokenInteractor(options repo.OptionsConfigRepo, validator TokenValidator, logger *log.Logger) *SetTokenInteractor {
	return &SetTokenInteractor{options: options, validator: validator, logger: logger.Named("SetTokenUsecase")}
}

// SetToken validates token with Notion and, only if it is accepted, saves it
// into the options. It returns the updated options.
func (i *SetTokenInteractor) SetToken(ctx context.Context, token string) result.Result[exnota.OptionsConfig] {
	step := i.logger.Trace("Calling service.validateToken")
	valid := i.validator.ValidateToken(ctx, token)
	step.Outcome(valid.Err())
	if !valid.IsOk() {
		return result.Forward[exnota.OptionsConfig](valid)
	}

	step = i.logger.Trace("Calling repo.getOptionsConfig")
	current := i.options.GetConfig(ctx)
	step.Outcome(current.Err())
	if !current.IsOk() {
		return result.Forward[exnota.OptionsConfig](current)
	}

	optionsConfig := exnota.RestoreOptionsConfig(nil, token)
	if existing := current.Value(); existing != nil {
		optionsConfig = existing.WithToken(token)
	}

	step = i.logger.Trace("Calling repo.saveOptionsConfig")
	saved := i.options.SaveConfig(ctx, optionsConfig)
	step.Outcome(saved.Err())
	if !saved.IsOk() {
		return result.Forward[exnota.OptionsConfig](saved)
	}
	return result.Ok(optionsConfig)
}
