package repo

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/longkey1/exnota/internal/exnota"
	"github.com/longkey1/exnota/internal/log"
	"github.com/longkey1/exnota/internal/result"
	"github.com/longkey1/exnota/internal/store"
)

// OptionsConfigRepo persists the options config
type OptionsConfigRepo interface {
	// GetConfig returns the stored config, or nil when there is none
	GetConfig(ctx context.Context) result.Result[*exnota.OptionsConfig]
	// SaveConfig replaces the stored config
	SaveConfig(ctx context.Context, cfg exnota.OptionsConfig) result.Result[result.Void]
}

// optionsRecord is the stored shape under KeyOptionsConfig
type optionsRecord struct {
	Page  *exnota.Page `json:"page,omitempty"`
	Token string       `json:"notion_integration_token,omitempty"`
}

type optionsRepo struct {
	store  store.Store
	logger *log.Logger
}

// NewOptionsRepo creates an options repository over s
func NewOptionsRepo(s store.Store, logger *log.Logger) OptionsConfigRepo {
	return &optionsRepo{store: s, logger: logger.Named("OptionsRepo")}
}

// GetConfig decodes the stored record. A page that fails validation is
// logged and dropped; the integration token is kept.
func (r *optionsRepo) GetConfig(ctx context.Context) result.Result[*exnota.OptionsConfig] {
	step := r.logger.Trace("Calling storage.getItem")
	raw, err := r.store.Get(ctx, KeyOptionsConfig)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			step.Finish()
			return result.Ok[*exnota.OptionsConfig](nil)
		}
		res := result.Fail[*exnota.OptionsConfig](KindStorageGet, "Could not get options config", err, result.Metadata{"key": KeyOptionsConfig})
		step.Outcome(res.Err())
		return res
	}
	step.Finish()

	var rec optionsRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		r.logger.Warn("Stored options config is malformed, treating as absent", log.ErrorFields(err))
		return result.Ok[*exnota.OptionsConfig](nil)
	}

	if rec.Page == nil && rec.Token == "" {
		return result.Ok[*exnota.OptionsConfig](nil)
	}

	var page *exnota.Page
	if rec.Page != nil {
		validated := exnota.NewPage(rec.Page.ID, rec.Page.Title, rec.Page.URL)
		if validated.IsOk() {
			p := validated.Value()
			page = &p
		} else {
			r.logger.Warn("Stored options page is invalid, dropping it", log.ErrorFields(validated.Err()))
		}
	}
	if page == nil && rec.Token == "" {
		return result.Ok[*exnota.OptionsConfig](nil)
	}

	cfg := exnota.RestoreOptionsConfig(page, rec.Token)
	return result.Ok(&cfg)
}

func (r *optionsRepo) SaveConfig(ctx context.Context, cfg exnota.OptionsConfig) result.Result[result.Void] {
	rec := optionsRecord{Page: cfg.Page(), Token: cfg.Token()}

	step := r.logger.Trace("Calling storage.setItem")
	data, err := json.Marshal(rec)
	if err == nil {
		err = r.store.Set(ctx, KeyOptionsConfig, data)
	}
	if err != nil {
		res := result.Fail[result.Void](KindStorageSet, "Could not set options config", err, result.Metadata{"key": KeyOptionsConfig})
		step.Outcome(res.Err())
		return res
	}
	step.Finish()
	return result.Ok(result.Void{})
}
