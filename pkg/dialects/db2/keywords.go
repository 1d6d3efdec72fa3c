package db2

// zosKeywords are the reserved words of DB2 for z/OS.
var zosKeywords = []string{
	"ADD", "AFTER", "ALL", "ALLOCATE", "ALLOW", "ALTER", "AND", "ANY", "AS",
	"ASENSITIVE", "ASSOCIATE", "ASUTIME", "AUDIT", "AUX", "AUXILIARY", "BEFORE",
	"BEGIN", "BETWEEN", "BUFFERPOOL", "BY", "CALL", "CAPTURE", "CASCADED",
	"CASE", "CAST", "CCSID", "CHAR", "CHARACTER", "CHECK", "CLOSE", "CLUSTER",
	"COLLECTION", "COLLID", "COLUMN", "COMMENT", "COMMIT", "CONCAT", "CONDITION",
	"CONNECT", "CONNECTION", "CONSTRAINT", "CONTAINS", "CONTINUE", "CREATE",
	"CURRENT", "CURRENT_DATE", "CURRENT_LC_CTYPE", "CURRENT_PATH",
	"CURRENT_TIME", "CURRENT_TIMESTAMP", "CURSOR", "DATA", "DATABASE", "DAY",
	"DAYS", "DBINFO", "DECLARE", "DEFAULT", "DELETE", "DESCRIPTOR",
	"DETERMINISTIC", "DISALLOW", "DISTINCT", "DO", "DOUBLE", "DROP", "DSSIZE",
	"DYNAMIC", "EDITPROC", "ELSE", "ELSEIF", "ENCODING", "ENCRYPTION", "END",
	"END-EXEC", "ENDING", "ERASE", "ESCAPE", "EXCEPT", "EXCEPTION", "EXECUTE",
	"EXISTS", "EXIT", "EXPLAIN", "EXTERNAL", "FENCED", "FETCH", "FIELDPROC",
	"FINAL", "FOR", "FREE", "FROM", "FULL", "FUNCTION", "GENERATED", "GET",
	"GLOBAL", "GO", "GOTO", "GRANT", "GROUP", "HANDLER", "HAVING", "HOLD",
	"HOUR", "HOURS", "IF", "IMMEDIATE", "IN", "INCLUSIVE", "INDEX", "INHERIT",
	"INNER", "INOUT", "INSENSITIVE", "INSERT", "INTO", "IS", "ISOBID", "ITERATE",
	"JAR", "JOIN", "KEY", "LABEL", "LANGUAGE", "LC_CTYPE", "LEAVE", "LEFT",
	"LIKE", "LOCAL", "LOCALE", "LOCATOR", "LOCATORS", "LOCK", "LOCKMAX",
	"LOCKSIZE", "LONG", "LOOP", "MAINTAINED", "MATERIALIZED", "MICROSECOND",
	"MICROSECONDS", "MINUTE", "MINUTES", "MODIFIES", "MONTH", "MONTHS",
	"NEXTVAL", "NO", "NONE", "NOT", "NULL", "NULLS", "NUMPARTS", "OBID", "OF",
	"ON", "OPEN", "OPTIMIZATION", "OPTIMIZE", "OR", "ORDER", "OUT", "OUTER",
	"PACKAGE", "PADDED", "PARAMETER", "PART", "PARTITION", "PARTITIONED",
	"PARTITIONING", "PATH", "PIECESIZE", "PLAN", "PRECISION", "PREPARE",
	"PREVVAL", "PRIQTY", "PRIVILEGES", "PROCEDURE", "PROGRAM", "PSID", "QUERY",
	"QUERYNO", "READS", "REFERENCES", "REFRESH", "RELEASE", "RENAME", "REPEAT",
	"RESIGNAL", "RESTRICT", "RESULT", "RESULT_SET_LOCATOR", "RETURN", "RETURNS",
	"REVOKE", "RIGHT", "ROLLBACK", "ROWSET", "RUN", "SAVEPOINT", "SCHEMA",
	"SCRATCHPAD", "SECOND", "SECONDS", "SECQTY", "SECURITY", "SELECT",
	"SENSITIVE", "SEQUENCE", "SET", "SIGNAL", "SIMPLE", "SOME", "SOURCE",
	"SPECIFIC", "STANDARD", "STATIC", "STAY", "STOGROUP", "STORES", "STYLE",
	"SUMMARY", "SYNONYM", "SYSFUN", "SYSIBM", "SYSPROC", "SYSTEM", "TABLE",
	"TABLESPACE", "THEN", "TO", "TRIGGER", "UNDO", "UNION", "UNIQUE", "UNTIL",
	"UPDATE", "USER", "USING", "VALIDPROC", "VALUE", "VALUES", "VARIABLE",
	"VARIANT", "VCAT", "VIEW", "VOLATILE", "VOLUMES", "WHEN", "WHENEVER",
	"WHERE", "WHILE", "WITH", "WLM", "XMLELEMENT", "YEAR", "YEARS",
}

// luwKeywords are the reserved words of DB2 for Linux, UNIX and Windows.
var luwKeywords = []string{
	"ADD", "AFTER", "ALIAS", "ALL", "ALLOCATE", "ALLOW", "ALTER", "AND", "ANY",
	"APPLICATION", "AS", "ASSOCIATE", "ASUTIME", "AUDIT", "AUTHORIZATION", "AUX",
	"AUXILIARY", "BEFORE", "BEGIN", "BETWEEN", "BINARY", "BUFFERPOOL", "BY",
	"CACHE", "CALL", "CALLED", "CAPTURE", "CARDINALITY", "CASCADED", "CASE",
	"CAST", "CCSID", "CHAR", "CHARACTER", "CHECK", "CLOSE", "CLUSTER",
	"COLLECTION", "COLLID", "COLUMN", "COMMENT", "COMMIT", "CONCAT", "CONDITION",
	"CONNECT", "CONNECTION", "CONSTRAINT", "CONTAINS", "CONTINUE", "COUNT",
	"COUNT_BIG", "CREATE", "CROSS", "CURRENT", "CURRENT_DATE",
	"CURRENT_LC_CTYPE", "CURRENT_PATH", "CURRENT_SERVER", "CURRENT_TIME",
	"CURRENT_TIMESTAMP", "CURRENT_TIMEZONE", "CURRENT_USER", "CURSOR", "CYCLE",
	"DATA", "DATABASE", "DAY", "DAYS", "DB2GENERAL", "DB2GENRL", "DB2SQL",
	"DBINFO", "DECLARE", "DEFAULT", "DEFAULTS", "DEFINITION", "DELETE",
	"DESCRIPTOR", "DETERMINISTIC", "DISALLOW", "DISCONNECT", "DISTINCT", "DO",
	"DOUBLE", "DROP", "DSNHATTR", "DSSIZE", "DYNAMIC", "EACH", "EDITPROC",
	"ELSE", "ELSEIF", "ENCODING", "END", "END-EXEC", "END-EXEC1", "ERASE",
	"ESCAPE", "EXCEPT", "EXCEPTION", "EXCLUDING", "EXECUTE", "EXISTS", "EXIT",
	"EXTERNAL", "FENCED", "FETCH", "FIELDPROC", "FILE", "FINAL", "FOR",
	"FOREIGN", "FREE", "FROM", "FULL", "FUNCTION", "GENERAL", "GENERATED", "GET",
	"GLOBAL", "GO", "GOTO", "GRANT", "GRAPHIC", "GROUP", "HANDLER", "HAVING",
	"HOLD", "HOUR", "HOURS", "IDENTITY", "IF", "IMMEDIATE", "IN", "INCLUDING",
	"INCREMENT", "INDEX", "INDICATOR", "INHERIT", "INNER", "INOUT",
	"INSENSITIVE", "INSERT", "INTEGRITY", "INTO", "IS", "ISOBID", "ISOLATION",
	"ITERATE", "JAR", "JAVA", "JOIN", "KEY", "LABEL", "LANGUAGE", "LC_CTYPE",
	"LEAVE", "LEFT", "LIKE", "LINKTYPE", "LOCAL", "LOCALE", "LOCATOR",
	"LOCATORS", "LOCK", "LOCKMAX", "LOCKSIZE", "LONG", "LOOP", "MAXVALUE",
	"MICROSECOND", "MICROSECONDS", "MINUTE", "MINUTES", "MINVALUE", "MODE",
	"MODIFIES", "MONTH", "MONTHS", "NEW", "NEW_TABLE", "NO", "NOCACHE",
	"NOCYCLE", "NODENAME", "NODENUMBER", "NOMAXVALUE", "NOMINVALUE", "NOORDER",
	"NOT", "NULL", "NULLS", "NUMPARTS", "OBID", "OF", "OLD", "OLD_TABLE", "ON",
	"OPEN", "OPTIMIZATION", "OPTIMIZE", "OPTION", "OR", "ORDER", "OUT", "OUTER",
	"OVERRIDING", "PACKAGE", "PARAMETER", "PART", "PARTITION", "PATH",
	"PIECESIZE", "PLAN", "POSITION", "PRECISION", "PREPARE", "PRIMARY", "PRIQTY",
	"PRIVILEGES", "PROCEDURE", "PROGRAM", "PSID", "QUERYNO", "READ", "READS",
	"RECOVERY", "REFERENCES", "REFERENCING", "RELEASE", "RENAME", "REPEAT",
	"RESET", "RESIGNAL", "RESTART", "RESTRICT", "RESULT", "RESULT_SET_LOCATOR",
	"RETURN", "RETURNS", "REVOKE", "RIGHT", "ROLLBACK", "ROUTINE", "ROW", "ROWS",
	"RRN", "RUN", "SAVEPOINT", "SCHEMA", "SCRATCHPAD", "SECOND", "SECONDS",
	"SECQTY", "SECURITY", "SELECT", "SENSITIVE", "SET", "SIGNAL", "SIMPLE",
	"SOME", "SOURCE", "SPECIFIC", "SQL", "SQLID", "STANDARD", "START", "STATIC",
	"STAY", "STOGROUP", "STORES", "STYLE", "SUBPAGES", "SUBSTRING", "SYNONYM",
	"SYSFUN", "SYSIBM", "SYSPROC", "SYSTEM", "TABLE", "TABLESPACE", "THEN", "TO",
	"TRANSACTION", "TRIGGER", "TRIM", "TYPE", "UNDO", "UNION", "UNIQUE", "UNTIL",
	"UPDATE", "USAGE", "USER", "USING", "VALIDPROC", "VALUES", "VARIABLE",
	"VARIANT", "VCAT", "VIEW", "VOLUMES", "WHEN", "WHERE", "WHILE", "WITH",
	"WLM", "WRITE", "YEAR", "YEARS",
}
