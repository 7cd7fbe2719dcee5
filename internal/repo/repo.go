// Package repo persists the auth and options aggregates, and the proxy
// session cookies, in a key-value store.
//
// Repositories are the only code that touches the store. Storage failures
// become storage-get or storage-set failures; absence is a success carrying nil.
package repo

import (
	"github.com/longkey1/exnota/internal/result"
)

// Storage kinds
const (
	KindStorageGet result.Kind = "storage-get"
	KindStorageSet result.Kind = "storage-set"
)

// Store keys
const (
	KeyAuthConfig    = "auth"
	KeyOptionsConfig = "options"
)

var (
	// StorageGetKinds is the kind set of a failed read
	StorageGetKinds = result.NewKindSet(KindStorageGet)
	// StorageSetKinds is the kind set of a failed write
	StorageSetKinds = result.NewKindSet(KindStorageSet)

	// AuthGetConfigKinds is the kind set of AuthConfigRepo.GetConfig
	AuthGetConfigKinds = StorageGetKinds
	// AuthSaveConfigKinds is the kind set of AuthConfigRepo.SaveConfig
	AuthSaveConfigKinds = StorageSetKinds

	// OptionsGetConfigKinds is the kind set of OptionsConfigRepo.GetConfig
	OptionsGetConfigKinds = StorageGetKinds
	// OptionsSaveConfigKinds is the kind set of OptionsConfigRepo.SaveConfig
	OptionsSaveConfigKinds = StorageSetKinds
)
