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

// AuthConfigRepo persists the auth config
type AuthConfigRepo interface {
	// GetConfig returns the stored config, or nil when there is none
	GetConfig(ctx context.Context) result.Result[*exnota.AuthConfig]
	// SaveConfig replaces the stored config
	SaveConfig(ctx context.Context, cfg exnota.AuthConfig) result.Result[result.Void]
}

// authRecord is the stored shape under KeyAuthConfig
type authRecord struct {
	Code          *string               `json:"code,omitempty"`
	TokenResponse *exnota.TokenResponse `json:"token_response,omitempty"`
}

type authRepo struct {
	store  store.Store
	logger *log.Logger
}

// NewAuthRepo creates an auth repository over s
func NewAuthRepo(s store.Store, logger *log.Logger) AuthConfigRepo {
	return &authRepo{store: s, logger: logger.Named("AuthRepo")}
}

func (r *authRepo) GetConfig(ctx context.Context) result.Result[*exnota.AuthConfig] {
	step := r.logger.Trace("Calling storage.getItem")
	raw, err := r.store.Get(ctx, KeyAuthConfig)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			step.Finish()
			return result.Ok[*exnota.AuthConfig](nil)
		}
		res := result.Fail[*exnota.AuthConfig](KindStorageGet, "Could not get auth config", err, result.Metadata{"key": KeyAuthConfig})
		step.Outcome(res.Err())
		return res
	}
	step.Finish()

	var rec authRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		r.logger.Warn("Stored auth config is malformed, treating as absent", log.ErrorFields(err))
		return result.Ok[*exnota.AuthConfig](nil)
	}

	var code string
	if rec.Code != nil {
		code = *rec.Code
	}
	cfg := exnota.NewAuthConfig(code, rec.TokenResponse)
	if !cfg.IsOk() {
		r.logger.Warn("Stored auth config is invalid, treating as absent", log.ErrorFields(cfg.Err()))
		return result.Ok[*exnota.AuthConfig](nil)
	}
	v := cfg.Value()
	return result.Ok(&v)
}

func (r *authRepo) SaveConfig(ctx context.Context, cfg exnota.AuthConfig) result.Result[result.Void] {
	rec := authRecord{TokenResponse: cfg.TokenResponse()}
	if code := cfg.Code(); code != "" {
		rec.Code = &code
	}

	step := r.logger.Trace("Calling storage.setItem")
	data, err := json.Marshal(rec)
	if err == nil {
		err = r.store.Set(ctx, KeyAuthConfig, data)
	}
	if err != nil {
		res := result.Fail[result.Void](KindStorageSet, "Could not set auth config", err, result.Metadata{"key": KeyAuthConfig})
		step.Outcome(res.Err())
		return res
	}
	step.Finish()
	return result.Ok(result.Void{})
}
