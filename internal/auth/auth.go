package auth

import (
	"crypto/subtle"
	"net/http"
)

// HeaderName carries the admin credential on mutating requests.
const HeaderName = "X-Admin-Key"

// QueryParam is the fallback location of the admin credential.
const QueryParam = "key"

// Verifier decides whether a presented credential grants admin rights.
type Verifier interface {
	Verify(credential string) bool
}

// StaticKey accepts exactly one configured key. An empty key accepts nothing.
type StaticKey struct {
	key []byte
}

func NewStaticKey(key string) *StaticKey {
	return &StaticKey{key: []byte(key)}
}

func (k *StaticKey) Verify(credential string) bool {
	if len(k.key) == 0 || credential == "" {
		return false
	}
	return subtle.ConstantTimeCompare(k.key, []byte(credential)) == 1
}

// CredentialFromRequest returns the X-Admin-Key header, or the "key" query
// parameter when the header is absent.
func CredentialFromRequest(r *http.Request) string {
	if v := r.Header.Get(HeaderName); v != "" {
		return v
	}
	return r.URL.Query().Get(QueryParam)
}
