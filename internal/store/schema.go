package store

import (
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// blobs is the single table backing the SQL Blob implementations.
const (
	blobTable       = "blobs"
	columnName      = "name"
	columnValue     = "value"
	columnUpdatedAt = "updated_at"
)

// blobQueries renders the statements for one SQL dialect. Queries go
// through ent's builder so placeholders match the dialect.
type blobQueries struct {
	dialect string
}

// createTableDDL is shared by SQLite and Postgres; both accept it verbatim.
const createTableDDL = "CREATE TABLE IF NOT EXISTS " + blobTable + " (" +
	columnName + " varchar(255) NOT NULL PRIMARY KEY, " +
	columnValue + " text NOT NULL, " +
	columnUpdatedAt + " bigint NOT NULL)"

// createTable returns the DDL for the blob table. ent's builder only covers
// DML, so the statement is written out by hand.
func (q blobQueries) createTable() (string, []any) {
	return createTableDDL, nil
}

func (q blobQueries) get(key string) (string, []any) {
	b := entsql.Dialect(q.dialect)
	return b.Select(columnValue).
		From(b.Table(blobTable)).
		Where(entsql.EQ(columnName, key)).
		Query()
}

func (q blobQueries) upsert(key string, value []byte, now time.Time) (string, []any) {
	return entsql.Dialect(q.dialect).
		Insert(blobTable).
		Columns(columnName, columnValue, columnUpdatedAt).
		Values(key, string(value), now.UnixMilli()).
		OnConflict(
			entsql.ConflictColumns(columnName),
			entsql.ResolveWithNewValues(),
		).
		Query()
}

func (q blobQueries) remove(key string) (string, []any) {
	return entsql.Dialect(q.dialect).
		Delete(blobTable).
		Where(entsql.EQ(columnName, key)).
		Query()
}
