package securestore

import (
	"github.com/dmitrijs2005/gophguard/internal/common"
	"github.com/dmitrijs2005/gophguard/internal/filex"
)

// DeviceSecretSize is the length of a freshly generated device secret.
const DeviceSecretSize = 32

// LoadDeviceSecret reads the device secret at path, generating one on first run.
// The file is created with mode 0600; it plays the role of the platform keychain.
func LoadDeviceSecret(path string) ([]byte, error) {
	return filex.ReadOrCreate(path, func() ([]byte, error) {
		return common.GenerateRandByteArray(DeviceSecretSize), nil
	})
}
