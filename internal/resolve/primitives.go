package resolve

import "github.com/cwbudde/ascript/internal/ident"

var primitiveKeywords = map[string]ident.TypeHash{
	"void":   ident.Void,
	"int8":   ident.Int8,
	"int16":  ident.Int16,
	"int":    ident.Int32,
	"int32":  ident.Int32,
	"int64":  ident.Int64,
	"uint8":  ident.UInt8,
	"uint16": ident.UInt16,
	"uint":   ident.UInt32,
	"uint32": ident.UInt32,
	"uint64": ident.UInt64,
	"float":  ident.Float32,
	"double": ident.Float64,
	"bool":   ident.Bool,
	"string": ident.StringType,
}

func primitiveHash(keyword string) (ident.TypeHash, bool) {
	h, ok := primitiveKeywords[keyword]
	return h, ok
}
