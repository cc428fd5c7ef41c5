package datarecording

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"strings"
)

// QueryParams encapsulates all query parameters
type QueryParams struct {
	// Where holds the WHERE clause without the "WHERE" keyword
	// Example: "Policy = ? AND Faults > ?"
	Where string

	// Args holds the arguments for the placeholders in Where
	Args []any

	// Limit is the maximum number of records to return. 0 means no limit.
	// Offset applies with or without a limit.
	Limit int

	// Offset is the number of records to skip
	Offset int

	// OrderBy specifies sorting, without the "ORDER BY" keywords
	OrderBy string
}

// DataReader can read recorded data back
type DataReader interface {
	// MapTable establishes a mapping between a database table and a Go struct
	// type. This mapping is required before querying a table.
	MapTable(tableName string, sampleEntry any)

	// ListTables returns a list of all tables that have been mapped.
	ListTables() []string

	// Query executes a query on a table and returns pointers to the
	// mapped struct type.
	Query(ctx context.Context, tableName string, params QueryParams) (
		results []any,
		totalCount int,
		err error,
	)

	// Close closes the reader
	Close() error
}

type sqliteReader struct {
	*sql.DB

	typeMap map[string]reflect.Type
}

// NewReader opens the SQLite file for reading.
func NewReader(dbFilename string) DataReader {
	db, err := sql.Open("sqlite3", dbFilename)
	if err != nil {
		panic(err)
	}

	return NewReaderWithDB(db)
}

// NewReaderWithDB creates a new DataReader with a given database
func NewReaderWithDB(db *sql.DB) DataReader {
	return &sqliteReader{
		DB:      db,
		typeMap: make(map[string]reflect.Type),
	}
}

func (r *sqliteReader) MapTable(tableName string, sampleEntry any) {
	r.typeMap[tableName] = reflect.TypeOf(sampleEntry)
}

func (r *sqliteReader) ListTables() []string {
	tables := make([]string, 0, len(r.typeMap))
	for table := range r.typeMap {
		tables = append(tables, table)
	}

	return tables
}

func (r *sqliteReader) Query(
	ctx context.Context,
	tableName string,
	params QueryParams,
) ([]any, int, error) {
	structType, ok := r.typeMap[tableName]
	if !ok {
		return nil, 0, fmt.Errorf("table %s is not mapped", tableName)
	}

	selectSQL, countSQL := params.build(tableName)

	var total int

	err := r.QueryRowContext(ctx, countSQL, params.Args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("counting %s: %w", tableName, err)
	}

	rows, err := r.QueryContext(ctx, selectSQL, params.Args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying %s: %w", tableName, err)
	}
	defer rows.Close()

	results, err := scanRowsToSlice(rows, structType)
	if err != nil {
		return nil, 0, err
	}

	return results, total, nil
}

// build returns the SELECT statement and the matching COUNT statement.
func (p QueryParams) build(tableName string) (selectSQL, countSQL string) {
	var where strings.Builder
	if p.Where != "" {
		where.WriteString(" WHERE ")
		where.WriteString(p.Where)
	}

	countSQL = "SELECT COUNT(*) FROM " + tableName + where.String()

	var q strings.Builder
	q.WriteString("SELECT * FROM ")
	q.WriteString(tableName)
	q.WriteString(where.String())

	if p.OrderBy != "" {
		q.WriteString(" ORDER BY ")
		q.WriteString(p.OrderBy)
	}

	// SQLite only accepts OFFSET after LIMIT; a negative limit means none.
	switch {
	case p.Limit > 0:
		fmt.Fprintf(&q, " LIMIT %d", p.Limit)
	case p.Offset > 0:
		q.WriteString(" LIMIT -1")
	}

	if p.Offset > 0 {
		fmt.Fprintf(&q, " OFFSET %d", p.Offset)
	}

	return q.String(), countSQL
}

// scanRowsToSlice scans every row into a new *structType. Columns without a
// matching field are discarded.
func scanRowsToSlice(rows *sql.Rows, structType reflect.Type) ([]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var results []any

	for rows.Next() {
		entry := reflect.New(structType)
		targets := make([]any, len(columns))

		for i, col := range columns {
			if field := entry.Elem().FieldByName(col); field.IsValid() {
				targets[i] = field.Addr().Interface()
				continue
			}

			targets[i] = new(any)
		}

		if err := rows.Scan(targets...); err != nil {
			return nil, err
		}

		results = append(results, entry.Interface())
	}

	return results, rows.Err()
}

func (r *sqliteReader) Close() error {
	return r.DB.Close()
}
