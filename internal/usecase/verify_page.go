package usecase

import (
	"context"

	"github.com/longkey1/exnota/internal/exnota"
	"github.com/longkey1/exnota/internal/log"
	"github.com/longkey1/exnota/internal/repo"
	"github.com/longkey1/exnota/internal/result"
	"github.com/longkey1/exnota/internal/service"
)

// KindVerifyPageOther is returned when the health of the connection cannot
// be determined
const KindVerifyPageOther result.Kind = "usecase--verify-page--other"

// VerifyPageKinds is the kind set of VerifyPageInteractor.VerifyPage
var VerifyPageKinds = result.Union(
	repo.OptionsGetConfigKinds,
	result.NewKindSet(KindVerifyPageOther),
)

// VerifyStatus is the state of the connection and page selection
type VerifyStatus string

const (
	VerifySuccess      VerifyStatus = "success"
	VerifyNoAuth       VerifyStatus = "no-auth"
	VerifyNoPage       VerifyStatus = "no-page"
	VerifyNoPageAccess VerifyStatus = "no-page-access"
	VerifyInvalidAuth  VerifyStatus = "invalid-auth"
)

// VerifyPageResponse is the success value of VerifyPage. Page is set for
// VerifySuccess only.
type VerifyPageResponse struct {
	Status VerifyStatus `json:"status" msgpack:"status"`
	Page   *exnota.Page `json:"page,omitempty" msgpack:"page,omitempty"`
}

// verifyOutcome is what a service failure means for verification: either a
// status to report, or a failure when status is empty
type verifyOutcome struct {
	status VerifyStatus
}

var (
	getPagesOutcomes = result.Exhaustive(service.GetPagesKinds, map[result.Kind]verifyOutcome{
		service.KindGetPagesInvalidAuth: {status: VerifyInvalidAuth},
		service.KindGetPagesRateLimit:   {},
		service.KindGetPagesOther:       {},
	})
	getPageOutcomes = result.Exhaustive(service.GetPageKinds, map[result.Kind]verifyOutcome{
		service.KindGetPageInvalidAuth:  {status: VerifyInvalidAuth},
		service.KindGetPageNoPageAccess: {status: VerifyNoPageAccess},
		service.KindGetPageRateLimit:    {},
		service.KindGetPageOther:        {},
	})
)

// VerifyPageService is what VerifyPage needs from the proxy
type VerifyPageService interface {
	PageService
	PagesService
}

// VerifyPageInteractor reports whether the stored destination is usable.
// It never writes.
type VerifyPageInteractor struct {
	options repo.OptionsConfigRepo
	service VerifyPageService
	logger  *log.Logger
}

// NewVerifyPageInteractor creates a verify-page interactor
func NewVerifyPageInteractor(options repo.OptionsConfigRepo, svc VerifyPageService, logger *log.Logger) *VerifyPageInteractor {
	return &VerifyPageInteractor{options: options, service: svc, logger: logger.Named("VerifyPageUsecase")}
}

// VerifyPage projects the stored options and the proxy's answers onto a
// VerifyStatus
func (i *VerifyPageInteractor) VerifyPage(ctx context.Context) result.Result[VerifyPageResponse] {
	step := i.logger.Trace("Calling repo.getOptionsConfig")
	current := i.options.GetConfig(ctx)
	step.Outcome(current.Err())
	if !current.IsOk() {
		return result.Forward[VerifyPageResponse](current)
	}

	optionsConfig := current.Value()
	if optionsConfig == nil {
		return result.Ok(VerifyPageResponse{Status: VerifyNoAuth})
	}

	page := optionsConfig.Page()
	if page == nil || page.ID == "" {
		// listing pages tells whether the auth still holds
		step = i.logger.Trace("Calling service.getPages")
		pages := i.service.GetPages(ctx)
		step.Outcome(pages.Err())
		if pages.IsOk() {
			return result.Ok(VerifyPageResponse{Status: VerifyNoPage})
		}
		return i.fromFailure(getPagesOutcomes, pages.Err(), "Could not verify auth")
	}

	step = i.logger.Trace("Calling service.getPage")
	retrieved := i.service.GetPage(ctx, page.ID)
	step.Outcome(retrieved.Err())
	if retrieved.IsOk() {
		p := retrieved.Value()
		return result.Ok(VerifyPageResponse{Status: VerifySuccess, Page: &p})
	}
	return i.fromFailure(getPageOutcomes, retrieved.Err(), "Could not verify page access")
}

func (i *VerifyPageInteractor) fromFailure(outcomes result.Matcher[verifyOutcome], err *result.Error, message string) result.Result[VerifyPageResponse] {
	outcome, ok := outcomes.Match(err.Kind)
	if ok && outcome.status != "" {
		return result.Ok(VerifyPageResponse{Status: outcome.status})
	}
	return result.Fail[VerifyPageResponse](KindVerifyPageOther, message, err, result.Metadata{
		"error_type": string(err.Kind),
	})
}
