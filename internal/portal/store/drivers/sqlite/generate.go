package sqlite

//go:generate sqlc generate -f sqlc.yaml
