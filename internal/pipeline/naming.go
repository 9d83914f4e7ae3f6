package pipeline

import (
	"crypto/md5" // #nosec G501 -- file naming only
	"encoding/hex"
	"strings"
)

// shortHashLength is the number of hex characters kept from the digest.
const shortHashLength = 8

// ExtensionFor maps a data URI format tag to a file extension.
// Only "svg+xml" is translated; every other tag is used as-is.
func ExtensionFor(format string) string {
	if format == "svg+xml" {
		return "svg"
	}
	return format
}

// ShortHash returns the first 8 hex characters of the MD5 digest of payload.
// The digest covers the base64 text, not the decoded bytes, so names stay
// stable with files produced by earlier versions of the tool.
func ShortHash(payload string) string {
	sum := md5.Sum([]byte(payload)) // #nosec G401 -- not a security boundary
	return hex.EncodeToString(sum[:])[:shortHashLength]
}

// ContentName builds a content-addressed file name: <prefix><hash8>.<ext>.
func ContentName(prefix, payload, ext string) string {
	return prefix + ShortHash(payload) + "." + ext
}

// JoinHref joins an href base and a file name with a forward slash.
// The base is not cleaned, so "./assets" stays "./assets/<name>".
func JoinHref(base, name string) string {
	if base == "" {
		return name
	}
	return strings.TrimSuffix(base, "/") + "/" + name
}
