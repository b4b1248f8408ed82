package lang

import (
	"path/filepath"
	"strings"
)

type ID string

const (
	Plain      ID = "plain"
	Go         ID = "go"
	Rust       ID = "rust"
	JavaScript ID = "javascript"
	TypeScript ID = "typescript"
	TSX        ID = "tsx"
	JSON       ID = "json"
	CPP        ID = "cpp"
)

var extMap = map[string]ID{
	".go":    Go,
	".rs":    Rust,
	".js":    JavaScript,
	".jsx":   JavaScript,
	".mjs":   JavaScript,
	".cjs":   JavaScript,
	".ts":    TypeScript,
	".mts":   TypeScript,
	".cts":   TypeScript,
	".tsx":   TSX,
	".json":  JSON,
	".jsonc": JSON,
	".cpp":   CPP,
	".cc":    CPP,
	".cxx":   CPP,
	".c++":   CPP,
	".hpp":   CPP,
	".hh":    CPP,
	".hxx":   CPP,
	".h":     CPP,

	".py":   Plain,
	".java": Plain,
	".rb":   Plain,
	".md":   Plain,
	".yaml": Plain,
	".yml":  Plain,
	".toml": Plain,
}

var fileMap = map[string]ID{
	"Makefile":          Plain,
	"Dockerfile":        Plain,
	"go.sum":            Plain,
	"package-lock.json": JSON,
	"tsconfig.json":     JSON,
}

// Detect maps a path to a language by file name first, then by extension.
func Detect(path string) ID {
	base := filepath.Base(path)
	if id, ok := fileMap[base]; ok {
		return id
	}
	ext := strings.ToLower(filepath.Ext(base))
	if id, ok := extMap[ext]; ok {
		return id
	}
	return Plain
}

func DetectWithShebang(path string, firstLine string) ID {
	if id := Detect(path); id != Plain {
		return id
	}

	if !strings.HasPrefix(firstLine, "#!") {
		return Plain
	}
	lower := strings.ToLower(firstLine)
	switch {
	case strings.Contains(lower, "ts-node") || strings.Contains(lower, "deno"):
		return TypeScript
	case strings.Contains(lower, "node"):
		return JavaScript
	default:
		return Plain
	}
}

// Parse accepts the identifiers editors commonly use for a language.
func Parse(name string) (ID, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "go", "golang":
		return Go, true
	case "rust", "rs":
		return Rust, true
	case "javascript", "js":
		return JavaScript, true
	case "typescript", "ts":
		return TypeScript, true
	case "tsx", "typescriptreact":
		return TSX, true
	case "json", "jsonc":
		return JSON, true
	case "cpp", "c++", "cxx":
		return CPP, true
	case "plain", "text", "plaintext":
		return Plain, true
	default:
		return "", false
	}
}
