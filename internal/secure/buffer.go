// Package secure holds prompted secret values in protected memory
// between collection and the store call. It wraps memguard, which
// encrypts the value at rest in memory and mlocks it against swapping.
// If mlock is unavailable the library degrades to standard memory.
package secure

import (
	"errors"

	"github.com/awnumar/memguard"
)

// Buffer stores one sensitive value in an encrypted enclave. The
// plaintext only exists while WithValue runs and is wiped afterwards.
type Buffer struct {
	enclave *memguard.Enclave
}

// NewBuffer seals the given value. The caller's copy of data is wiped
// by memguard during sealing.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{enclave: memguard.NewEnclave(data)}
}

// NewBufferFromString seals a string value.
func NewBufferFromString(s string) *Buffer {
	return NewBuffer([]byte(s))
}

// WithValue decrypts the value, passes it to fn, and wipes the
// plaintext when fn returns. fn must not retain the string.
func (b *Buffer) WithValue(fn func(value string) error) error {
	if b == nil || b.enclave == nil {
		return errors.New("secure buffer is empty")
	}

	locked, err := b.enclave.Open()
	if err != nil {
		return err
	}
	defer locked.Destroy()

	return fn(locked.String())
}
