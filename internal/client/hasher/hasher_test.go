package hasher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastParams = Argon2Params{Memory: 1024, Time: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func TestSHA256_KnownDigest(t *testing.T) {
	d, err := SHA256{}.Hash("password")
	require.NoError(t, err)
	assert.Equal(t, "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8", d)
}

func TestSHA256_Deterministic(t *testing.T) {
	a, _ := SHA256{}.Hash("Passw0rd!")
	b, _ := SHA256{}.Hash("Passw0rd!")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
	assert.Equal(t, strings.ToLower(a), a)
}

func TestSHA256_Verify(t *testing.T) {
	d, _ := SHA256{}.Hash("Passw0rd!")

	ok, err := SHA256{}.Verify("Passw0rd!", d)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = SHA256{}.Verify("passw0rd!", d)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = SHA256{}.Verify("x", "not-hex")
	require.ErrorIs(t, err, ErrMalformedDigest)
}

func TestArgon2id_HashAndVerify(t *testing.T) {
	h := NewArgon2id(fastParams)

	d, err := h.Hash("Passw0rd!")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(d, "$argon2id$v=19$m=1024,t=1,p=1$"), d)

	ok, err := h.Verify("Passw0rd!", d)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong", d)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2id_SaltedDigestsDiffer(t *testing.T) {
	h := NewArgon2id(fastParams)
	a, _ := h.Hash("same")
	b, _ := h.Hash("same")
	assert.NotEqual(t, a, b)
}

func TestArgon2id_Malformed(t *testing.T) {
	h := NewArgon2id(fastParams)

	tests := []struct {
		name   string
		digest string
	}{
		{"empty", ""},
		{"wrong algorithm", "$argon2i$v=19$m=1024,t=1,p=1$c2FsdA$aGFzaA"},
		{"bad version", "$argon2id$v=1$m=1024,t=1,p=1$c2FsdA$aGFzaA"},
		{"bad params", "$argon2id$v=19$m=x$c2FsdA$aGFzaA"},
		{"bad salt", "$argon2id$v=19$m=1024,t=1,p=1$!!$aGFzaA"},
		{"empty hash", "$argon2id$v=19$m=1024,t=1,p=1$c2FsdA$"},
		{"zero parallelism", "$argon2id$v=19$m=65536,t=1,p=0$c2FsdA$aGFzaA"},
		{"zero time", "$argon2id$v=19$m=65536,t=0,p=1$c2FsdA$aGFzaA"},
		{"zero memory", "$argon2id$v=19$m=0,t=1,p=1$c2FsdA$aGFzaA"},
		{"memory too large", "$argon2id$v=19$m=4294967295,t=1,p=1$c2FsdA$aGFzaA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := h.Verify("x", tt.digest)
			assert.False(t, ok)
			require.ErrorIs(t, err, ErrMalformedDigest)
		})
	}
}

func TestNew(t *testing.T) {
	h, err := New("")
	require.NoError(t, err)
	d, _ := h.Hash("p")
	assert.Len(t, d, 64)

	h, err = New("ARGON2ID")
	require.NoError(t, err)
	d, _ = h.Hash("p")
	assert.True(t, strings.HasPrefix(d, "$argon2id$"))

	_, err = New("md5")
	require.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestAuto_VerifiesBothFormats(t *testing.T) {
	sha, _ := SHA256{}.Hash("Passw0rd!")
	argon, _ := NewArgon2id(fastParams).Hash("Passw0rd!")

	h, err := New(AlgorithmArgon2id)
	require.NoError(t, err)

	for _, d := range []string{sha, argon} {
		ok, err := h.Verify("Passw0rd!", d)
		require.NoError(t, err)
		assert.True(t, ok, d)
	}
}

func TestAuto_RejectsZeroCostDigest(t *testing.T) {
	h, err := New("")
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		ok, err := h.Verify("x", "$argon2id$v=19$m=65536,t=1,p=0$c2FsdA$aGFzaA")
		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrMalformedDigest)
	})
}
