package fileutil

import (
	"fmt"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadSource reads a script file and decodes it to UTF-8 text. Files are
// assumed UTF-8; a leading BOM (UTF-8, UTF-16 LE/BE) overrides that, so
// sources saved by BOM-happy editors load unchanged. The BOM itself is
// stripped.
func ReadSource(fsys FileSystem, name string) (string, error) {
	raw, err := fsys.ReadFile(name)
	if err != nil {
		return "", err
	}
	return DecodeSource(raw)
}

// DecodeSource decodes raw script bytes to a UTF-8 string, honoring an
// optional leading BOM.
func DecodeSource(raw []byte) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	decoded, _, err := transform.Bytes(decoder, raw)
	if err != nil {
		return "", fmt.Errorf("failed to decode source: %w", err)
	}
	return string(decoded), nil
}
