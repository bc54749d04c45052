package services

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/bcrypt"
)

// MaxSenhaLength is the longest senha a client may choose.
const MaxSenhaLength = 19

// SenhaHasher hashes senhas for verification and fingerprints them so
// duplicate senhas can be rejected without storing them in clear text.
type SenhaHasher struct {
	key  []byte
	cost int
}

// NewSenhaHasher derives the fingerprint key from pepper. A cost of zero
// selects bcrypt.DefaultCost.
func NewSenhaHasher(pepper string, cost int) *SenhaHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	key := blake2b.Sum256([]byte(pepper))
	return &SenhaHasher{key: key[:], cost: cost}
}

func (h *SenhaHasher) Hash(senha string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(senha), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash senha: %w", err)
	}
	return string(hashed), nil
}

func (h *SenhaHasher) Compare(hash, senha string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(senha)) == nil
}

// Digest returns the hex keyed BLAKE2b-256 fingerprint of senha.
func (h *SenhaHasher) Digest(senha string) string {
	mac, err := blake2b.New256(h.key)
	if err != nil {
		// only possible for keys longer than 64 bytes
		panic(err)
	}
	mac.Write([]byte(senha))
	return hex.EncodeToString(mac.Sum(nil))
}
