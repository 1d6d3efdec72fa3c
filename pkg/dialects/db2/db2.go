// Package db2 provides the IBM DB2 dialects.
//
// db2zos covers DB2 for z/OS; db2luw covers DB2 for Linux, UNIX and Windows
// and builds on the z/OS dialect.
package db2

import (
	"github.com/leapstack-labs/sqlreflow/pkg/dialect"
	"github.com/leapstack-labs/sqlreflow/pkg/tokenizer"
)

func init() {
	dialect.Register(ZOS)
	dialect.Register(LUW)
}

const (
	// IdentChars adds the national characters $, # and @ to the SQL-92 set.
	IdentChars = tokenizer.SQL92IdentChars + "$#@"

	// NameChars is the set of characters DB2 accepts in unquoted names.
	NameChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ_$#@0123456789"
)

// ZOS is DB2 for z/OS: hex and graphic string literals, and the !, ^ and ¬
// spellings of "not".
var ZOS = dialect.NewDialect("db2zos").
	Description("IBM DB2 for z/OS").
	Keywords(zosKeywords...).
	IdentChars(IdentChars).
	NameChars(NameChars).
	HexStrings().
	GraphicStrings().
	NotOperators().
	Build()

// LUW is DB2 for Linux, UNIX and Windows. On top of z/OS it supports nested
// block comments, U&'' strings, the .. and => operators, array brackets,
// the special numbers INFINITY, NAN and SNAN, and the CLP's --#SET TERMINATOR
// directive.
var LUW = dialect.Extend("db2luw", ZOS).
	Description("IBM DB2 for Linux, UNIX and Windows").
	ReplaceKeywords(luwKeywords...).
	BlockComments(true).
	UnicodeStrings().
	MethodOperators().
	Brackets().
	Classifiers(tokenizer.SpecialNumbers{}).
	TerminatorDirective().
	Build()
