// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements the keyed derivation primitives behind account
// credentials: password digests, session tokens, and the random salts mixed
// into both.
package crypto

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"io"
)

// tokenByteLength is the amount of CSPRNG entropy behind every value returned
// by [Hasher.RandomToken].
const tokenByteLength = 32

// Hasher derives one-way keyed digests with HMAC-SHA256. A single Hasher is
// constructed at startup from the process-wide secret key and shared by all
// request handlers; it carries no mutable state and is safe for concurrent use.
type Hasher struct {
	// secretKey is the long-lived HMAC key. It is distinct from the
	// per-account salts that are fed into Derive as data.
	secretKey []byte
}

// NewHasher constructs a Hasher keyed with the given process-wide secret.
// The secret is injected explicitly (never read from a global) so tests can
// run with fixed keys.
func NewHasher(secretKey string) *Hasher {
	return &Hasher{secretKey: []byte(secretKey)}
}

// Derive computes a deterministic keyed digest over (salt, material) and
// returns it hex-encoded.
//
// Both inputs are length-prefixed (8-byte big-endian) before being written to
// the MAC, so the pair boundary is unambiguous: ("a/b", "c") and ("a", "b/c")
// produce different digests. A plain delimiter join would not give that
// guarantee for inputs containing the delimiter.
//
// The same construction serves both uses of the hasher: password digests
// (salt = stored account salt, material = password) and session tokens
// (salt = fresh random value, material = account ID).
func (h *Hasher) Derive(salt, material string) string {
	mac := hmac.New(sha256.New, h.secretKey)

	var prefix [8]byte
	binary.BigEndian.PutUint64(prefix[:], uint64(len(salt)))
	mac.Write(prefix[:])
	mac.Write([]byte(salt))

	binary.BigEndian.PutUint64(prefix[:], uint64(len(material)))
	mac.Write(prefix[:])
	mac.Write([]byte(material))

	return hex.EncodeToString(mac.Sum(nil))
}

// RandomToken reads tokenByteLength bytes from the OS CSPRNG and returns them
// base64-URL-encoded without padding. Used for fresh account salts and for
// session-token entropy. Returns an error only if the random read fails.
func (h *Hasher) RandomToken() (string, error) {
	buf := make([]byte, tokenByteLength)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Equal reports whether two derived digests match. The comparison runs in
// constant time to avoid leaking the position of the first differing byte.
func Equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
