package usecase

import (
	"context"

	"github.com/longkey1/exnota/internal/exnota"
	"github.com/longkey1/exnota/internal/log"
	"github.com/longkey1/exnota/internal/repo"
	"github.com/longkey1/exnota/internal/result"
)

// SetPageKinds is the kind set of SetPageInteractor.SetPage
var SetPageKinds = result.Union(
	exnota.NewPageKinds,
	repo.OptionsGetConfigKinds,
	repo.OptionsSaveConfigKinds,
)

// SetPageInteractor stores the destination page the user picked
type SetPageInteractor struct {
	options repo.OptionsConfigRepo
	logger  *log.Logger
}

// NewSetPageInteractor creates a set-page interactor
func NewSetPageInteractor(options repo.OptionsConfigRepo, logger *log.Logger) *SetPageInteractor {
	return &SetPageInteractor{options: options, logger: logger.Named("SetPageUsecase")}
}

// SetPage validates the page and saves it into the options, creating them
// when none are stored
func (i *SetPageInteractor) SetPage(ctx context.Context, id, title, url string) result.Result[result.Void] {
	page := exnota.NewPage(id, title, url)
	if !page.IsOk() {
		i.logger.Warn("Invalid page", map[string]any{"error_type": string(page.Kind())})
		return result.Forward[result.Void](page)
	}

	step := i.logger.Trace("Calling repo.getOptionsConfig")
	current := i.options.GetConfig(ctx)
	step.Outcome(current.Err())
	if !current.IsOk() {
		return result.Forward[result.Void](current)
	}

	var optionsConfig exnota.OptionsConfig
	if existing := current.Value(); existing != nil {
		optionsConfig = existing.WithPage(page.Value())
	} else {
		optionsConfig = exnota.NewOptionsConfig(page.Value())
	}

	step = i.logger.Trace("Calling repo.saveOptionsConfig")
	saved := i.options.SaveConfig(ctx, optionsConfig)
	step.Outcome(saved.Err())
	return saved
}
