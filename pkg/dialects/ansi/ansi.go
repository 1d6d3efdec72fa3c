// Package ansi provides the ANSI SQL dialects: SQL-92, SQL-99 and SQL-2003.
//
// These dialects serve as the foundation for the vendor dialects, which
// extend them with their own reserved words and lexical extensions.
package ansi

import "github.com/leapstack-labs/sqlreflow/pkg/dialect"

func init() {
	dialect.Register(SQL92)
	dialect.Register(SQL99)
	dialect.Register(SQL2003)
}

// SQL92 is ANSI SQL-92: -- comments, single and double quoted strings and
// identifiers, nothing else.
var SQL92 = dialect.NewDialect("sql92").
	Description("ANSI SQL-92").
	Keywords(sql92Keywords...).
	Build()

// SQL99 is ANSI SQL-99.
var SQL99 = dialect.Extend("sql99", SQL92).
	Description("ANSI SQL-99").
	ReplaceKeywords(sql99Keywords...).
	Build()

// SQL2003 is ANSI SQL-2003.
var SQL2003 = dialect.Extend("sql2003", SQL92).
	Description("ANSI SQL-2003").
	ReplaceKeywords(sql2003Keywords...).
	Build()
