// Package service calls the remote services the use cases depend on: the
// Notion proxy and, for integration tokens, the Notion API itself.
//
// Every remote failure is classified into a small closed set of kinds per
// operation. Transport failures and unclassified responses become the
// operation's "other" kind with the cause attached.
package service

import (
	"github.com/longkey1/exnota/internal/result"
)

// Client id kinds
const (
	KindFetchingClientID result.Kind = "fetching-client-id"
)

// Token exchange kinds
const (
	KindGetTokenInvalidAuth result.Kind = "service--get-token--invalid-auth"
	KindGetTokenRateLimit   result.Kind = "service--get-token--rate-limit"
	KindGetTokenOther       result.Kind = "service--get-token--other"
)

// Page listing kinds
const (
	KindGetPagesInvalidAuth result.Kind = "service--get-pages--invalid-auth"
	KindGetPagesRateLimit   result.Kind = "service--get-pages--rate-limit"
	KindGetPagesOther       result.Kind = "service--get-pages--other"
)

// Page retrieval kinds
const (
	KindGetPageInvalidAuth  result.Kind = "service--get-page--invalid-auth"
	KindGetPageNoPageAccess result.Kind = "service--get-page--no-page-access"
	KindGetPageRateLimit    result.Kind = "service--get-page--rate-limit"
	KindGetPageOther        result.Kind = "service--get-page--other"
)

// Token validation kinds
const (
	KindValidateTokenInvalidAuth result.Kind = "service--validate-token--invalid-auth"
	KindValidateTokenRateLimit   result.Kind = "service--validate-token--rate-limit"
	KindValidateTokenOther       result.Kind = "service--validate-token--other"
)

var (
	// GetClientIDKinds is the kind set of ProxyClient.GetClientID
	GetClientIDKinds = result.NewKindSet(KindFetchingClientID)
	// GetTokenKinds is the kind set of ProxyClient.GetToken
	GetTokenKinds = result.NewKindSet(KindGetTokenInvalidAuth, KindGetTokenRateLimit, KindGetTokenOther)
	// GetPagesKinds is the kind set of ProxyClient.GetPages
	GetPagesKinds = result.NewKindSet(KindGetPagesInvalidAuth, KindGetPagesRateLimit, KindGetPagesOther)
	// GetPageKinds is the kind set of ProxyClient.GetPage
	GetPageKinds = result.NewKindSet(KindGetPageInvalidAuth, KindGetPageNoPageAccess, KindGetPageRateLimit, KindGetPageOther)
	// ValidateTokenKinds is the kind set of TokenValidator.ValidateToken
	ValidateTokenKinds = result.NewKindSet(KindValidateTokenInvalidAuth, KindValidateTokenRateLimit, KindValidateTokenOther)
)
