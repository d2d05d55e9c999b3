package fileutil

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadText reads the file at path as UTF-8 text. A leading byte order mark is
// dropped and invalid sequences decode to U+FFFD.
func ReadText(path string) (string, error) {
	in, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer in.Close()
	return ReadAllText(in)
}

// ReadAllText drains r and decodes it as UTF-8 text.
func ReadAllText(r io.Reader) (string, error) {
	decoded := transform.NewReader(r, unicode.UTF8BOM.NewDecoder())
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, decoded); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RequireRegular returns an error unless path names a readable regular file.
func RequireRegular(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", path)
	}
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	return in.Close()
}

// EncodeBase64 streams the file at path through a standard base64 encoder.
func EncodeBase64(path string) (string, error) {
	in, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer in.Close()

	var buf bytes.Buffer
	enc := base64.NewEncoder(base64.StdEncoding, &buf)
	if _, err := io.Copy(enc, in); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
