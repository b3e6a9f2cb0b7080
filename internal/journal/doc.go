// Package journal records every normalization run in a small SQLite
// database so past runs can be listed with the history command.
//
// The schema lives in numbered files under migrations/ and the newest
// applied number is kept in PRAGMA user_version.
package journal
