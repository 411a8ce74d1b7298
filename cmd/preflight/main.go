// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strings"
)

func main() {
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	addr := strings.TrimSpace(os.Getenv("ADDR"))
	db := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	endpoints := strings.TrimSpace(os.Getenv("ENDPOINTS_FILE"))
	admin := strings.TrimSpace(os.Getenv("ADMIN_API_KEYS"))
	interval := strings.TrimSpace(os.Getenv("CHECK_INTERVAL_MS"))

	if addr == "" {
		warn("ADDR is empty; the API will bind its default address.")
	} else {
		ok("ADDR=" + addr)
	}

	if db == "" {
		warn("DATABASE_URL empty — histories live in memory and reset on restart.")
	} else {
		ok("DATABASE_URL present")
	}

	if endpoints == "" {
		warn("ENDPOINTS_FILE empty — the built-in archive registry will be used.")
	} else if _, err := os.Stat(endpoints); err != nil {
		warn("ENDPOINTS_FILE set but unreadable: " + err.Error())
	} else {
		ok("ENDPOINTS_FILE=" + endpoints)
	}

	if admin == "" {
		warn("ADMIN_API_KEYS empty — POST /api/check is open (dev mode).")
	} else if strings.Contains(admin, " ") {
		warn("ADMIN_API_KEYS contains spaces; use comma-separated with no spaces, e.g. key1,key2")
	} else {
		ok("ADMIN_API_KEYS present")
	}

	if interval == "" {
		warn("CHECK_INTERVAL_MS empty — no background cycles; trigger checks via POST /api/check.")
	} else {
		ok("CHECK_INTERVAL_MS=" + interval)
	}

	ok("preflight passed")
}
