package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/longkey1/exnota/internal/log"
	"github.com/longkey1/exnota/internal/store"
)

// KeySession is the store key of the proxy session cookies
const KeySession = "session"

// SessionRepo keeps the proxy's HTTP-only cookies between invocations, the
// way a browser keeps them for the extension
type SessionRepo interface {
	// Cookies returns the stored cookies sorted by name, none when nothing is stored
	Cookies(ctx context.Context) ([]*http.Cookie, error)
	// Update merges cookies set by a response. Expired cookies are removed
	// and the session key is deleted once no cookie is left.
	Update(ctx context.Context, set []*http.Cookie) error
}

type sessionRepo struct {
	store  store.Store
	logger *log.Logger
}

// NewSessionRepo creates a session repository over s
func NewSessionRepo(s store.Store, logger *log.Logger) SessionRepo {
	return &sessionRepo{store: s, logger: logger.Named("SessionRepo")}
}

func (r *sessionRepo) Cookies(ctx context.Context) ([]*http.Cookie, error) {
	values, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	cookies := make([]*http.Cookie, 0, len(names))
	for _, name := range names {
		cookies = append(cookies, &http.Cookie{Name: name, Value: values[name]})
	}
	return cookies, nil
}

func (r *sessionRepo) Update(ctx context.Context, set []*http.Cookie) error {
	if len(set) == 0 {
		return nil
	}

	values, err := r.load(ctx)
	if err != nil {
		return err
	}
	for _, c := range set {
		if c.MaxAge < 0 || c.Value == "" {
			delete(values, c.Name)
			continue
		}
		values[c.Name] = c.Value
	}

	if len(values) == 0 {
		step := r.logger.Trace("Calling storage.removeItem")
		if err := r.store.Delete(ctx, KeySession); err != nil {
			step.Fail(err)
			return fmt.Errorf("failed to clear session: %w", err)
		}
		step.Finish()
		return nil
	}

	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	step := r.logger.Trace("Calling storage.setItem")
	if err := r.store.Set(ctx, KeySession, data); err != nil {
		step.Fail(err)
		return fmt.Errorf("failed to save session: %w", err)
	}
	step.Finish()
	return nil
}

func (r *sessionRepo) load(ctx context.Context) (map[string]string, error) {
	raw, err := r.store.Get(ctx, KeySession)
	if errors.Is(err, store.ErrNotFound) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	values := map[string]string{}
	if err := json.Unmarshal(raw, &values); err != nil {
		// an unreadable session is the same as being signed out
		r.logger.Warn("Stored session is malformed, treating as empty", log.ErrorFields(err))
		return map[string]string{}, nil
	}
	if values == nil {
		return map[string]string{}, nil
	}
	return values, nil
}
