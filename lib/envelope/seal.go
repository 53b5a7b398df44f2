// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package envelope

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"filippo.io/age"
	"filippo.io/age/armor"
)

// ErrNoMatchingIdentity is returned by Open when none of the supplied
// identities is a recipient of the sealed data.
var ErrNoMatchingIdentity = errors.New("envelope: no identity matches a recipient")

// sealedPrefix starts every binary age file.
const sealedPrefix = "age-encryption.org/"

// Identity is an age X25519 keypair.
type Identity struct {
	// Secret is the private key in AGE-SECRET-KEY-1... form. It must
	// never be logged.
	Secret string

	// Recipient is the public key in age1... form.
	Recipient string
}

// GenerateIdentity creates a new age X25519 keypair.
func GenerateIdentity() (Identity, error) {
	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return Identity{}, fmt.Errorf("generating age identity: %w", err)
	}
	return Identity{
		Secret:    identity.String(),
		Recipient: identity.Recipient().String(),
	}, nil
}

// ParseRecipients validates age public keys.
func ParseRecipients(keys []string) ([]age.Recipient, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("at least one recipient is required")
	}
	recipients := make([]age.Recipient, 0, len(keys))
	for _, key := range keys {
		recipient, err := age.ParseX25519Recipient(key)
		if err != nil {
			return nil, fmt.Errorf("parsing recipient key %q: %w", key, err)
		}
		recipients = append(recipients, recipient)
	}
	return recipients, nil
}

// Seal encrypts data (normally an envelope) to every recipient. The
// result is binary age output.
func Seal(data []byte, recipientKeys []string) ([]byte, error) {
	return seal(data, recipientKeys, false)
}

// SealArmored is Seal with ASCII-armored (PEM-style) output.
func SealArmored(data []byte, recipientKeys []string) ([]byte, error) {
	return seal(data, recipientKeys, true)
}

func seal(data []byte, recipientKeys []string, armored bool) ([]byte, error) {
	recipients, err := ParseRecipients(recipientKeys)
	if err != nil {
		return nil, err
	}

	var ciphertext bytes.Buffer
	var destination io.Writer = &ciphertext
	var armorWriter io.WriteCloser
	if armored {
		armorWriter = armor.NewWriter(&ciphertext)
		destination = armorWriter
	}
	writer, err := age.Encrypt(destination, recipients...)
	if err != nil {
		return nil, fmt.Errorf("creating age encryptor: %w", err)
	}
	if _, err := writer.Write(data); err != nil {
		return nil, fmt.Errorf("writing to age encryptor: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalizing age encryption: %w", err)
	}
	if armorWriter != nil {
		if err := armorWriter.Close(); err != nil {
			return nil, fmt.Errorf("finalizing armor: %w", err)
		}
	}
	return ciphertext.Bytes(), nil
}

// IsSealed reports whether data is age output, binary or armored.
func IsSealed(data []byte) bool {
	return bytes.HasPrefix(data, []byte(sealedPrefix)) || isArmored(data)
}

func isArmored(data []byte) bool {
	return bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte(armor.Header))
}

// Open decrypts sealed data, binary or armored. identities is the text of an age identity
// file: one or more AGE-SECRET-KEY-1... lines, with # comments allowed.
func Open(sealed []byte, identities string) ([]byte, error) {
	parsed, err := age.ParseIdentities(strings.NewReader(identities))
	if err != nil {
		return nil, fmt.Errorf("parsing identities: %w", err)
	}
	var source io.Reader = bytes.NewReader(sealed)
	if isArmored(sealed) {
		source = armor.NewReader(source)
	}
	reader, err := age.Decrypt(source, parsed...)
	var noMatch *age.NoIdentityMatchError
	if errors.As(err, &noMatch) {
		return nil, fmt.Errorf("%w: %v", ErrNoMatchingIdentity, err)
	}
	if err != nil {
		return nil, fmt.Errorf("decrypting: %w", err)
	}
	plaintext, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading decrypted data: %w", err)
	}
	return plaintext, nil
}
