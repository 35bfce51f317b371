// ==================================================================================
//
// Work of the U.S. Department of the Navy, Naval Information Warfare Center Pacific.
// Released as open source under the MIT License.  See LICENSE file.
//
// ==================================================================================

package fs

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"fmt"
	"hash"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// HashType names the digest used to decide whether two files have equal content.
type HashType string

const (
	HashMD5     HashType = "md5"
	HashSHA1    HashType = "sha1"
	HashSHA256  HashType = "sha256"
	HashBLAKE2b HashType = "blake2b"
)

const DefaultHash = HashSHA256

// HashTypes lists the supported digests.
var HashTypes = []HashType{
	HashMD5,
	HashSHA1,
	HashSHA256,
	HashBLAKE2b,
}

// New returns a fresh hash for the type.
func (h HashType) New() (hash.Hash, error) {
	switch h {
	case HashMD5:
		return md5.New(), nil
	case HashSHA1:
		return sha1.New(), nil
	case HashSHA256:
		return sha256.New(), nil
	case HashBLAKE2b:
		return blake2b.New256(nil)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownHash, string(h))
}

func (h HashType) String() string {
	return string(h)
}

// ParseHashType returns the hash type with the given name, ignoring case.
// An empty string returns the default hash type.
func ParseHashType(str string) (HashType, error) {
	if len(str) == 0 {
		return DefaultHash, nil
	}
	for _, h := range HashTypes {
		if strings.EqualFold(str, string(h)) {
			return h, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownHash, str)
}
