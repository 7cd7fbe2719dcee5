// Package bridge is the request/response channel between the CLI (sender)
// and the background context that runs the interactors (listener).
//
// Every response is a serialized result.Result. A failure of the channel
// itself, as opposed to a failure reported by an interactor, surfaces as
// messaging-error.
package bridge

import (
	"github.com/longkey1/exnota/internal/result"
	"github.com/longkey1/exnota/internal/usecase"
)

// Method names a bridge operation
type Method string

const (
	MethodGetClientID Method = "auth.getClientId"
	MethodConnect     Method = "auth.connect"
	MethodSetPage     Method = "options.setPage"
	MethodVerifyPage  Method = "options.verifyPage"
	MethodGetToken    Method = "notion.getToken"
	MethodSetToken    Method = "notion.setToken"
)

// Methods lists every bridge method
var Methods = []Method{
	MethodGetClientID,
	MethodConnect,
	MethodSetPage,
	MethodVerifyPage,
	MethodGetToken,
	MethodSetToken,
}

// KindMessagingError is returned when a message could not be delivered or
// its response could not be read
const KindMessagingError result.Kind = "messaging-error"

var (
	// MessagingKinds is the kind set added by the bridge to every method
	MessagingKinds = result.NewKindSet(KindMessagingError)

	// GetClientIDKinds is the kind set of Client.GetClientID
	GetClientIDKinds = result.Union(usecase.GetClientIDKinds, MessagingKinds)
	// ConnectKinds is the kind set of Client.Connect
	ConnectKinds = result.Union(usecase.ConnectKinds, MessagingKinds)
	// SetPageKinds is the kind set of Client.SetPage
	SetPageKinds = result.Union(usecase.SetPageKinds, MessagingKinds)
	// VerifyPageKinds is the kind set of Client.VerifyPage
	VerifyPageKinds = result.Union(usecase.VerifyPageKinds, MessagingKinds)
	// GetTokenKinds is the kind set of Client.GetToken
	GetTokenKinds = result.Union(usecase.GetTokenKinds, MessagingKinds)
	// SetTokenKinds is the kind set of Client.SetToken
	SetTokenKinds = result.Union(usecase.SetTokenKinds, MessagingKinds)
)

// ConnectRequest is the payload of auth.connect
type ConnectRequest struct {
	Code        string `json:"code" msgpack:"code"`
	RedirectURL string `json:"redirectURL" msgpack:"redirectURL"`
}

// SetPageRequest is the payload of options.setPage
type SetPageRequest struct {
	ID    string `json:"id" msgpack:"id"`
	Title string `json:"title" msgpack:"title"`
	URL   string `json:"url" msgpack:"url"`
}

// SetTokenRequest is the payload of notion.setToken
type SetTokenRequest struct {
	Token string `json:"token" msgpack:"token"`
}

// empty is the payload of methods without arguments
type empty struct{}
