package intake

import (
	"path/filepath"
	"strings"
)

var contentTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"pdf":  "application/pdf",
	"tif":  "image/tiff",
	"tiff": "image/tiff",
}

var extensions = map[string]string{
	"image/jpeg":      "jpg",
	"image/jpg":       "jpg",
	"image/png":       "png",
	"application/pdf": "pdf",
	"image/tiff":      "tiff",
}

// ContentTypeForExtension maps a file extension (with or without dot) to a MIME type.
// Unknown extensions are application/octet-stream.
func ContentTypeForExtension(ext string) string {
	if ct, ok := contentTypes[strings.ToLower(strings.TrimPrefix(ext, "."))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// ExtensionOf returns the lower-case extension of name without the dot.
func ExtensionOf(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

func extensionForContentType(ct string) string {
	if ext, ok := extensions[strings.ToLower(strings.TrimSpace(ct))]; ok {
		return ext
	}
	return "bin"
}
