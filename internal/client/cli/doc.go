// Package cli implements the interactive FocusFlow terminal client: a small
// REPL that signs up or logs in against the server and then lists, adds,
// edits, completes and deletes the account's tasks.
package cli
