package lang

import (
	sitter "github.com/smacker/go-tree-sitter"
	cpplang "github.com/smacker/go-tree-sitter/cpp"
	golang "github.com/smacker/go-tree-sitter/golang"
	rust "github.com/smacker/go-tree-sitter/rust"
	tsxlang "github.com/smacker/go-tree-sitter/typescript/tsx"
	tslang "github.com/smacker/go-tree-sitter/typescript/typescript"
	tsjson "github.com/tree-sitter/tree-sitter-json/bindings/go"
)

var grammars = map[ID]func() *sitter.Language{
	Go:         golang.GetLanguage,
	Rust:       rust.GetLanguage,
	JavaScript: tslang.GetLanguage,
	TypeScript: tslang.GetLanguage,
	TSX:        tsxlang.GetLanguage,
	CPP:        cpplang.GetLanguage,
	JSON:       func() *sitter.Language { return sitter.NewLanguage(tsjson.Language()) },
}

// Grammar returns the tree-sitter grammar for id, or nil when there is none.
func Grammar(id ID) *sitter.Language {
	fn, ok := grammars[id]
	if !ok {
		return nil
	}
	return fn()
}

func Supported() []ID {
	return []ID{Go, Rust, JavaScript, TypeScript, TSX, CPP, JSON}
}
