package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// kvTable implements kv.Store on the kv table.
type kvTable struct {
	drv *entsql.Driver
}

func (t *kvTable) Get(ctx context.Context, key string) (string, bool, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("value").
		From(entsql.Table("kv")).
		Where(entsql.EQ("key", key)).
		Limit(1).
		Query()

	var rows entsql.Rows
	if err := t.drv.Query(ctx, query, args, &rows); err != nil {
		return "", false, fmt.Errorf("query kv %s: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return "", false, rows.Err()
	}
	var value string
	if err := rows.Scan(&value); err != nil {
		return "", false, fmt.Errorf("scan kv %s: %w", key, err)
	}
	return value, true, nil
}

func (t *kvTable) Set(ctx context.Context, key, value string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert("kv").
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if err := t.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("upsert kv %s: %w", key, err)
	}
	return nil
}
