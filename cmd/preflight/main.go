// cmd/preflight/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	pg "upwatch/internal/repo/postgres"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	db := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	addr := strings.TrimSpace(os.Getenv("API_ADDR"))

	if secret == "" {
		if os.Getenv("APP_ENV") == "production" {
			fail("JWT_SECRET is empty — required in production.")
		}
		warn("JWT_SECRET empty — API will sign tokens with the dev default.")
	} else {
		ok("JWT_SECRET present")
	}

	if addr == "" {
		warn("API_ADDR is empty; the app default will be used.")
	} else {
		ok("API_ADDR=" + addr)
	}

	if db == "" {
		warn("DATABASE_URL empty — API will use the in-memory store; nothing survives a restart.")
		ok("preflight passed")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, db)
	if err != nil {
		fail("DATABASE_URL invalid: " + err.Error())
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		fail("Postgres unreachable: " + err.Error())
	}
	ok("Postgres reachable")

	if err := pg.RunMigrations(ctx, db); err != nil {
		fail("migrations failed: " + err.Error())
	}
	ok("schema up to date")

	ok("preflight passed")
}
