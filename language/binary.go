package language

import "bytes"

// sniffSize is the number of leading bytes inspected by IsBinaryContent.
const sniffSize = 512

// IsBinaryContent reports whether data looks like binary content, i.e. it has
// a NUL byte within the first 512 bytes. Such files are never rewritten.
func IsBinaryContent(data []byte) bool {
	if len(data) > sniffSize {
		data = data[:sniffSize]
	}
	return bytes.IndexByte(data, 0) >= 0
}
