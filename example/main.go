package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/hwangq/pgframe"
	"github.com/hwangq/pgframe/pkg/config"
	"github.com/hwangq/pgframe/pkg/frame"
)

func main() {
	ctx := context.Background()

	// 1) Connect using config.yaml
	cfg, err := config.Load("config.yaml")
	if err != nil {
		panic(fmt.Errorf("load config: %w", err))
	}
	db, err := pgframe.Open(*cfg, pgframe.WithQueryLog())
	if err != nil {
		panic(fmt.Errorf("connect: %w", err))
	}

	// 2) Create a scratch table
	if err := db.Exec(ctx, "DROP TABLE IF EXISTS pgframe_demo"); err != nil {
		panic(fmt.Errorf("drop table: %w", err))
	}
	if err := db.Exec(ctx, "CREATE TABLE pgframe_demo (id text, name varchar(30), age int)"); err != nil {
		panic(fmt.Errorf("create table: %w", err))
	}
	fmt.Println("✅ Table created")

	// 3) Insert via plain SQL
	if err := db.Exec(ctx, "INSERT INTO pgframe_demo (id, name) VALUES ($1, $2)", uuid.NewString(), "alice"); err != nil {
		panic(fmt.Errorf("insert: %w", err))
	}

	// 4) Bulk insert from a frame
	f, err := frame.New(
		[]string{"id", "name", "age"},
		[][]interface{}{
			{uuid.NewString(), "황구", 25},
			{uuid.NewString(), "빡구", 26},
		},
	)
	if err != nil {
		panic(fmt.Errorf("build frame: %w", err))
	}
	if err := db.InsertFrame(ctx, "INSERT INTO pgframe_demo VALUES %s", f); err != nil {
		panic(fmt.Errorf("bulk insert frame: %w", err))
	}

	// 5) Bulk insert from raw tuples
	tuples := [][]interface{}{{uuid.NewString(), "mang"}}
	if err := db.InsertRows(ctx, "INSERT INTO pgframe_demo (id, name) VALUES %s", tuples); err != nil {
		panic(fmt.Errorf("bulk insert tuples: %w", err))
	}
	fmt.Println("✅ Rows inserted")

	// 6) Read back as tuples and as a frame
	rows, columns, err := db.Select(ctx, "SELECT * FROM pgframe_demo", pgframe.All)
	if err != nil {
		panic(fmt.Errorf("select: %w", err))
	}
	fmt.Printf("✅ Fetched %d rows, columns %v\n", len(rows), columns)

	out, err := db.SelectFrame(ctx, "SELECT name, age FROM pgframe_demo", 3)
	if err != nil {
		panic(fmt.Errorf("select frame: %w", err))
	}
	fmt.Println(out)

	// 7) Parameterized update, then delete
	if err := db.Exec(ctx, "UPDATE pgframe_demo SET name=$1 WHERE name=$2", "망", "mang"); err != nil {
		panic(fmt.Errorf("update: %w", err))
	}
	if err := db.Exec(ctx, "DELETE FROM pgframe_demo WHERE name=$1", "alice"); err != nil {
		panic(fmt.Errorf("delete: %w", err))
	}

	one, _, err := db.SelectOne(ctx, "SELECT count(*) FROM pgframe_demo")
	if err != nil {
		panic(fmt.Errorf("count: %w", err))
	}
	fmt.Printf("✅ %v rows remain\n", one[0])

	// 8) Close the connection
	if err := db.Close(); err != nil {
		panic(fmt.Errorf("close: %w", err))
	}
}
