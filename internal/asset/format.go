package asset

import (
	"bytes"
	"fmt"
	"os"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
)

// Format is the container type of a downloaded payload.
type Format string

const (
	FormatGLB     Format = "glb"
	FormatGLTF    Format = "gltf"
	FormatZip     Format = "zip"
	FormatUnknown Format = "unknown"
)

var (
	typeGLB  = filetype.AddType("glb", "model/gltf-binary")
	typeGLTF = filetype.AddType("gltf", "model/gltf+json")
)

func init() {
	filetype.AddMatcher(typeGLB, func(buf []byte) bool {
		return len(buf) >= 4 && bytes.Equal(buf[:4], []byte("glTF"))
	})
	filetype.AddMatcher(typeGLTF, func(buf []byte) bool {
		trimmed := bytes.TrimLeft(buf, " \t\r\n\xef\xbb\xbf")
		return len(trimmed) > 0 && trimmed[0] == '{' && bytes.Contains(buf, []byte(`"asset"`))
	})
}

// DetectFormat sniffs the first bytes of the file at path.
func DetectFormat(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return FormatUnknown, fmt.Errorf("asset: %w", err)
	}
	defer f.Close()
	kind, err := filetype.MatchReader(f)
	if err != nil {
		return FormatUnknown, fmt.Errorf("asset: sniff %s: %w", path, err)
	}
	return formatOf(kind), nil
}

func formatOf(kind types.Type) Format {
	switch kind.Extension {
	case "glb":
		return FormatGLB
	case "gltf":
		return FormatGLTF
	case "zip":
		return FormatZip
	}
	return FormatUnknown
}

// Ext returns the file extension for a model format, including the dot.
func (f Format) Ext() string {
	switch f {
	case FormatGLB, FormatGLTF, FormatZip:
		return "." + string(f)
	}
	return ""
}
