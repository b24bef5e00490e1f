package hstrade

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	_ "github.com/jackc/pgx/stdlib"
)

const (
	ch = "clickhouse"
	pg = "postgres"
)

// Dialect loads query results from a database into a DF.
type Dialect struct {
	db      *sql.DB
	dialect string
}

func NewDialect(dialect string, db *sql.DB) (*Dialect, error) {
	dialect = strings.ToLower(dialect)

	switch dialect {
	case ch, pg:
	default:
		return nil, fmt.Errorf("unsupported database %s", dialect)
	}

	if db == nil {
		return nil, fmt.Errorf("nil *sql.DB to NewDialect")
	}

	return &Dialect{db: db, dialect: dialect}, nil
}

// ***************** Methods *****************

func (d *Dialect) Close() error {
	return d.db.Close()
}

func (d *Dialect) DB() *sql.DB {
	return d.db
}

func (d *Dialect) DialectName() string {
	return d.dialect
}

// Load runs qry and returns the result as a DF. NULLs are missing values; column types are
// inferred from the values returned.
func (d *Dialect) Load(qry string) (*DF, error) {
	var (
		rows *sql.Rows
		e    error
	)
	if rows, e = d.db.Query(qry); e != nil {
		return nil, e
	}
	defer func() { _ = rows.Close() }()

	var fieldNames []string
	if fieldNames, e = rows.Columns(); e != nil {
		return nil, e
	}

	row2read := make([]any, len(fieldNames))
	for ind := range row2read {
		var x any
		row2read[ind] = &x
	}

	vals := make([][]any, len(fieldNames))
	for rows.Next() {
		if e1 := rows.Scan(row2read...); e1 != nil {
			return nil, e1
		}

		for ind := 0; ind < len(fieldNames); ind++ {
			vals[ind] = append(vals[ind], dbValue(*row2read[ind].(*any)))
		}
	}

	if e = rows.Err(); e != nil {
		return nil, e
	}

	var cols []Column
	for ind, name := range fieldNames {
		var (
			v   *Vector
			col *Col
			e1  error
		)
		asString := false
		for _, x := range vals[ind] {
			if _, ok := x.(string); ok {
				asString = true
				break
			}
		}

		if v, e1 = inferVector(vals[ind], asString); e1 != nil {
			return nil, fmt.Errorf("column %s: %w", name, e1)
		}

		if col, e1 = NewColVector(v, ColName(name)); e1 != nil {
			return nil, e1
		}

		cols = append(cols, col)
	}

	return NewDF(cols...)
}

// RowCount returns the number of rows qry returns.
func (d *Dialect) RowCount(qry string) (int, error) {
	const skeleton = "SELECT count(*) AS n FROM (%s) AS q"

	var n int
	row := d.db.QueryRow(fmt.Sprintf(skeleton, qry))
	if e := row.Scan(&n); e != nil {
		return 0, e
	}

	return n, nil
}

// dbValue converts a value scanned from the database to int, float64, string or nil.
// Text is not parsed: a column holding any text is loaded as DTstring.
func dbValue(x any) any {
	x = deref(x)
	switch v := x.(type) {
	case nil:
		return nil
	case []byte:
		return string(v)
	case time.Time:
		return v.Format("2006-01-02")
	case bool:
		if v {
			return 1
		}
		return 0
	case string, float64, int:
		return v
	}

	if i, ok := toInt(x); ok {
		if _, isFloat := x.(float32); !isFloat {
			return i
		}
	}

	if f, ok := toFloat(x); ok {
		return f
	}

	if s, ok := toString(x); ok {
		return s
	}

	return fmt.Sprint(x)
}

// ***************** Connections *****************

// NewConnectCH opens a ClickHouse connection. host is the IP address; the native port 9000 is assumed.
func NewConnectCH(host, user, password, database string) (*sql.DB, error) {
	if database == "" {
		database = "default"
	}

	db := clickhouse.OpenDB(
		&clickhouse.Options{
			Addr: []string{host + ":9000"},
			Auth: clickhouse.Auth{
				Database: database,
				Username: user,
				Password: password,
			},
			DialTimeout: 300 * time.Second,
			Compression: &clickhouse.Compression{
				Method: clickhouse.CompressionLZ4,
				Level:  0,
			},
		})

	if e := db.Ping(); e != nil {
		_ = db.Close()
		return nil, e
	}

	return db, nil
}

// NewConnectPG opens a Postgres connection through the pgx driver.
func NewConnectPG(host, user, password, database string) (*sql.DB, error) {
	connectionStr := fmt.Sprintf("postgres://%s:%s@%s:5432/%s", user, password, host, database)

	var (
		db *sql.DB
		e  error
	)
	if db, e = sql.Open("pgx", connectionStr); e != nil {
		return nil, e
	}

	if e := db.Ping(); e != nil {
		_ = db.Close()
		return nil, e
	}

	return db, nil
}

// DBLoad connects to the named database and loads qry.
func DBLoad(dialect, host, user, password, database, qry string) (*DF, error) {
	var (
		db *sql.DB
		e  error
	)

	switch strings.ToLower(dialect) {
	case ch:
		db, e = NewConnectCH(host, user, password, database)
	case pg:
		db, e = NewConnectPG(host, user, password, database)
	default:
		return nil, fmt.Errorf("unsupported database %s", dialect)
	}

	if e != nil {
		return nil, e
	}

	var dlct *Dialect
	if dlct, e = NewDialect(dialect, db); e != nil {
		_ = db.Close()
		return nil, e
	}
	defer func() { _ = dlct.Close() }()

	return dlct.Load(qry)
}
