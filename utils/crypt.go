// Backup archive encryption: scrypt-derived keys, AES-CTR, with a trailing
// HMAC-SHA512 over everything but the version byte.
// Layout follows https://github.com/Xeoncross/go-aesctr-with-hmac

package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"errors"
	"io"

	"golang.org/x/crypto/scrypt"
)

const (
	cryptVersion byte = 0x1
	ivSize            = 16
	saltSize          = 32
)

// ErrInvalidHMAC for authentication failure
var ErrInvalidHMAC = errors.New("invalid HMAC")

func deriveKey(password, salt []byte) ([]byte, []byte, error) {
	if salt == nil {
		salt = make([]byte, saltSize)
		if _, err := rand.Read(salt); err != nil {
			return nil, nil, err
		}
	}

	key, err := scrypt.Key(password, salt, 32768, 8, 1, 32)
	if err != nil {
		return nil, nil, err
	}
	return key, salt, nil
}

// Encrypt encrypts in to out with keys derived from the passphrase.
func Encrypt(in io.Reader, out io.Writer, passphrase []byte) error {
	keyAes, saltAes, err := deriveKey(passphrase, nil)
	if err != nil {
		return err
	}
	keyHmac, saltHmac, err := deriveKey(passphrase, nil)
	if err != nil {
		return err
	}

	iv := make([]byte, ivSize)
	if _, err := rand.Read(iv); err != nil {
		return err
	}

	block, err := aes.NewCipher(keyAes)
	if err != nil {
		return err
	}
	ctr := cipher.NewCTR(block, iv)
	mac := hmac.New(sha512.New, keyHmac)

	if _, err := out.Write([]byte{cryptVersion}); err != nil {
		return err
	}

	w := io.MultiWriter(out, mac)
	for _, part := range [][]byte{iv, saltAes, saltHmac} {
		if _, err := w.Write(part); err != nil {
			return err
		}
	}

	plain, err := io.ReadAll(in)
	if err != nil {
		return err
	}
	body := make([]byte, len(plain))
	ctr.XORKeyStream(body, plain)
	if _, err := w.Write(body); err != nil {
		return err
	}

	_, err = out.Write(mac.Sum(nil))
	return err
}

// Decrypt reverses Encrypt, verifying the trailing HMAC before writing any
// plaintext.
func Decrypt(in io.Reader, out io.Writer, passphrase []byte) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}

	header := 1 + ivSize + 2*saltSize
	if len(data) < header+sha512.Size {
		return errors.New("ciphertext too short")
	}
	if data[0] != cryptVersion {
		return errors.New("unsupported format version")
	}

	iv := data[1 : 1+ivSize]
	saltAes := data[1+ivSize : 1+ivSize+saltSize]
	saltHmac := data[1+ivSize+saltSize : header]
	body := data[header : len(data)-sha512.Size]
	sum := data[len(data)-sha512.Size:]

	keyAes, _, err := deriveKey(passphrase, saltAes)
	if err != nil {
		return err
	}
	keyHmac, _, err := deriveKey(passphrase, saltHmac)
	if err != nil {
		return err
	}

	mac := hmac.New(sha512.New, keyHmac)
	mac.Write(data[1 : len(data)-sha512.Size])
	if !hmac.Equal(sum, mac.Sum(nil)) {
		return ErrInvalidHMAC
	}

	block, err := aes.NewCipher(keyAes)
	if err != nil {
		return err
	}
	plain := make([]byte, len(body))
	cipher.NewCTR(block, iv).XORKeyStream(plain, body)

	_, err = out.Write(plain)
	return err
}
