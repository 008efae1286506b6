package repository

import (
	"testing"
)

func TestLikeOperatorByDialect(t *testing.T) {
	if got := likeOperatorByDialect("postgres"); got != "ILIKE" {
		t.Fatalf("postgres like operator want ILIKE got %s", got)
	}
	if got := likeOperatorByDialect("postgresql"); got != "ILIKE" {
		t.Fatalf("postgresql like operator want ILIKE got %s", got)
	}
	if got := likeOperatorByDialect("sqlite"); got != "LIKE" {
		t.Fatalf("sqlite like operator want LIKE got %s", got)
	}
	if got := likeOperatorByDialect(""); got != "LIKE" {
		t.Fatalf("empty dialect like operator want LIKE got %s", got)
	}
}

func TestJSONArrayContainsConditionSQLite(t *testing.T) {
	condition, arg := jsonArrayContainsConditionByDialect("sqlite", "colors", "Red")
	want := "EXISTS (SELECT 1 FROM json_each(colors) WHERE json_each.value = ?)"
	if condition != want {
		t.Fatalf("sqlite contains condition mismatch, want %s got %s", want, condition)
	}
	if arg != "Red" {
		t.Fatalf("sqlite contains arg want Red got %v", arg)
	}
}

func TestJSONArrayContainsConditionPostgres(t *testing.T) {
	condition, arg := jsonArrayContainsConditionByDialect("postgres", "colors", "Red")
	want := "(colors::jsonb @> ?::jsonb)"
	if condition != want {
		t.Fatalf("postgres contains condition mismatch, want %s got %s", want, condition)
	}
	if arg != `["Red"]` {
		t.Fatalf("postgres contains arg want [\"Red\"] got %v", arg)
	}
}
