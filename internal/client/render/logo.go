package render

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var errUnsupportedImage = errors.New("unsupported logo format")

// loadLogo resolves a logo that is either a data URL or a file path and
// returns the bytes with a gofpdf image type ("PNG" or "JPG").
func loadLogo(src string) ([]byte, string, error) {
	if rest, ok := strings.CutPrefix(src, "data:"); ok {
		meta, payload, found := strings.Cut(rest, ",")
		if !found || !strings.HasSuffix(meta, ";base64") {
			return nil, "", fmt.Errorf("logo: malformed data URL")
		}
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, "", fmt.Errorf("logo: %w", err)
		}
		typ, err := imageType(strings.TrimSuffix(meta, ";base64"), data)
		return data, typ, err
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return nil, "", fmt.Errorf("logo: %w", err)
	}
	typ, err := imageType(filepath.Ext(src), data)
	return data, typ, err
}

func imageType(hint string, data []byte) (string, error) {
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG")):
		return "PNG", nil
	case bytes.HasPrefix(data, []byte{0xff, 0xd8}):
		return "JPG", nil
	}
	switch strings.ToLower(hint) {
	case "image/png", ".png":
		return "PNG", nil
	case "image/jpeg", "image/jpg", ".jpg", ".jpeg":
		return "JPG", nil
	}
	return "", errUnsupportedImage
}

// DataURL encodes an image file as a data URL suitable for Settings.Logo.
func DataURL(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	typ, err := imageType(filepath.Ext(path), data)
	if err != nil {
		return "", err
	}
	mime := "image/png"
	if typ == "JPG" {
		mime = "image/jpeg"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
