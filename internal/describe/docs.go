package describe

import (
	"go/ast"
	"go/token"

	"github.com/griffnb/core-raml/internal/domain"
	"golang.org/x/tools/go/packages"
)

// docInfo is the parsed doc comment of one declaration.
type docInfo struct {
	annotations domain.Annotations
	doc         string
}

// docIndex maps the position of a declared name to its doc comment. go/types
// objects report the same positions, so lookups need no AST.
type docIndex map[token.Pos]docInfo

func (idx docIndex) add(pos token.Pos, groups ...*ast.CommentGroup) {
	annotations, doc := domain.ParseCommentGroup(groups...)
	if len(annotations) == 0 && doc == "" {
		return
	}
	idx[pos] = docInfo{annotations: annotations, doc: doc}
}

func (idx docIndex) collect(pkg *packages.Package) {
	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			switch decl := decl.(type) {
			case *ast.GenDecl:
				if decl.Tok != token.TYPE {
					continue
				}
				for _, spec := range decl.Specs {
					ts, ok := spec.(*ast.TypeSpec)
					if !ok {
						continue
					}
					doc := ts.Doc
					if doc == nil && len(decl.Specs) == 1 {
						doc = decl.Doc
					}
					idx.add(ts.Name.Pos(), doc, ts.Comment)
					idx.collectMembers(ts.Type)
				}
			case *ast.FuncDecl:
				if decl.Recv != nil {
					idx.add(decl.Name.Pos(), decl.Doc)
				}
			}
		}
	}
}

func (idx docIndex) collectMembers(expr ast.Expr) {
	var fields *ast.FieldList
	switch t := expr.(type) {
	case *ast.InterfaceType:
		fields = t.Methods
	case *ast.StructType:
		fields = t.Fields
	}
	if fields == nil {
		return
	}

	for _, field := range fields.List {
		for _, name := range field.Names {
			idx.add(name.Pos(), field.Doc, field.Comment)
		}
		if st, ok := field.Type.(*ast.StructType); ok {
			idx.collectMembers(st)
		}
	}
}

func (idx docIndex) lookup(pos token.Pos) (domain.Annotations, string) {
	info := idx[pos]
	return info.annotations, info.doc
}
