package usecase

import (
	"context"
	"errors"

	"github.com/longkey1/exnota/internal/exnota"
	"github.com/longkey1/exnota/internal/log"
	"github.com/longkey1/exnota/internal/repo"
	"github.com/longkey1/exnota/internal/result"
	"github.com/longkey1/exnota/internal/store"
)

var (
	pageNotes = exnota.Page{ID: "p1", Title: "Notes", URL: "https://notion.so/p1"}
	pageTasks = exnota.Page{ID: "p2", Title: "Tasks", URL: "https://notion.so/p2"}
)

// fakeService answers every proxy call with a preset result and records calls
type fakeService struct {
	token    result.Result[exnota.TokenResponse]
	pages    result.Result[[]exnota.Page]
	page     result.Result[exnota.Page]
	clientID result.Result[string]
	valid    result.Result[result.Void]

	calls []string
}

func newFakeService() *fakeService {
	return &fakeService{
		token:    result.Ok(exnota.TokenResponse{BotID: "bot-1", WorkspaceID: "ws-1", WorkspaceName: "WS"}),
		pages:    result.Ok([]exnota.Page{pageNotes}),
		page:     result.Ok(pageNotes),
		clientID: result.Ok("client-id"),
		valid:    result.Ok(result.Void{}),
	}
}

func (f *fakeService) GetToken(ctx context.Context, code, redirectURL string) result.Result[exnota.TokenResponse] {
	f.calls = append(f.calls, "getToken:"+code)
	return f.token
}

func (f *fakeService) GetPages(ctx context.Context) result.Result[[]exnota.Page] {
	f.calls = append(f.calls, "getPages")
	return f.pages
}

func (f *fakeService) GetPage(ctx context.Context, id string) result.Result[exnota.Page] {
	f.calls = append(f.calls, "getPage:"+id)
	return f.page
}

func (f *fakeService) GetClientID(ctx context.Context) result.Result[string] {
	f.calls = append(f.calls, "getClientId")
	return f.clientID
}

func (f *fakeService) ValidateToken(ctx context.Context, token string) result.Result[result.Void] {
	f.calls = append(f.calls, "validateToken:"+token)
	return f.valid
}

// flakyStore wraps a store and fails reads or writes of chosen keys
type flakyStore struct {
	store.Store
	failGet map[string]bool
	failSet map[string]bool
	sets    []string
}

func newFlakyStore() *flakyStore {
	return &flakyStore{Store: store.NewMemoryStore(), failGet: map[string]bool{}, failSet: map[string]bool{}}
}

func (s *flakyStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s.failGet[key] {
		return nil, errors.New("get failed")
	}
	return s.Store.Get(ctx, key)
}

func (s *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	if s.failSet[key] {
		return errors.New("set failed")
	}
	s.sets = append(s.sets, key)
	return s.Store.Set(ctx, key, value)
}

type fixture struct {
	store   *flakyStore
	auth    repo.AuthConfigRepo
	options repo.OptionsConfigRepo
	service *fakeService
}

func newFixture() *fixture {
	s := newFlakyStore()
	return &fixture{
		store:   s,
		auth:    repo.NewAuthRepo(s, log.Nop()),
		options: repo.NewOptionsRepo(s, log.Nop()),
		service: newFakeService(),
	}
}

func (f *fixture) storedAuth(ctx context.Context) *exnota.AuthConfig {
	return f.auth.GetConfig(ctx).Value()
}

func (f *fixture) storedOptions(ctx context.Context) *exnota.OptionsConfig {
	return f.options.GetConfig(ctx).Value()
}
