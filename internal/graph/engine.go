// Package graph implements the idempotent upsert engine for candidate
// and role records. Each upsert is compiled into a mutation plan (an
// ordered list of SurrealQL statements over one parameter set) and
// executed as a single BEGIN/COMMIT transaction, so a failure partway
// through never leaves a half-built entity visible to readers.
package graph

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/khajiev13/cv-agent-fiilterer/internal/db"
)

// Engine executes graph mutations against the store.
type Engine struct {
	db  *db.Client
	log *slog.Logger
}

// NewEngine creates an upsert engine backed by the given client.
func NewEngine(client *db.Client, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{db: client, log: log}
}

// plan accumulates the statements and parameters for one transaction.
//
// Node merges and edge creations are deduplicated while building: a
// record naming the same skill twice, or an alternate equal to its
// canonical name, produces one statement, not a unique-index violation
// mid-transaction.
type plan struct {
	statements []string
	vars       map[string]any
	nextVar    int

	seenNodes map[string]bool // table:key
	seenEdges map[string]bool // relTable|from|to
}

func newPlan() *plan {
	return &plan{
		vars:      map[string]any{},
		seenNodes: map[string]bool{},
		seenEdges: map[string]bool{},
	}
}

// bind registers a parameter value and returns its $name reference.
func (p *plan) bind(value any) string {
	name := fmt.Sprintf("v%d", p.nextVar)
	p.nextVar++
	p.vars[name] = value
	return "$" + name
}

func (p *plan) add(stmt string) {
	p.statements = append(p.statements, stmt)
}

// record returns a SurrealQL expression resolving to table:key.
func (p *plan) record(table, key string) string {
	return fmt.Sprintf("type::record(%q, %s)", table, p.bind(key))
}

// mergeNode upserts a canonical node by its normalized key, once per
// plan. Returns the bound key parameter name for later RELATE use.
func (p *plan) mergeNode(table, key, displayName string) {
	nodeID := table + ":" + key
	if p.seenNodes[nodeID] {
		return
	}
	p.seenNodes[nodeID] = true
	p.add(fmt.Sprintf("UPSERT %s SET name = %s", p.record(table, key), p.bind(displayName)))
}

// relate creates one edge between two records, once per plan. props are
// literal "field = $var" assignments already bound against the plan.
func (p *plan) relate(relTable, fromTable, fromKey, toTable, toKey string, props ...string) {
	edgeID := relTable + "|" + fromTable + ":" + fromKey + "|" + toTable + ":" + toKey
	if p.seenEdges[edgeID] {
		return
	}
	p.seenEdges[edgeID] = true

	stmt := fmt.Sprintf("RELATE %s->%s->%s",
		p.record(fromTable, fromKey), relTable, p.record(toTable, toKey))
	if len(props) > 0 {
		stmt += " SET " + strings.Join(props, ", ")
	}
	p.add(stmt)
}

// deleteOwnedEdges removes every outbound edge of the given relation
// tables for one record. Run before recreating edges so re-processing
// refreshes properties and never accumulates stale relationships.
func (p *plan) deleteOwnedEdges(table, key string, relTables ...string) {
	for _, rel := range relTables {
		p.add(fmt.Sprintf("DELETE %s->%s", p.record(table, key), rel))
	}
}

// mergeAlternates fans out alternate names as separate nodes of the
// same table, each linked to the canonical node by an alternative_of
// edge. Alternates that normalize to the canonical key are skipped.
func (p *plan) mergeAlternates(table, canonicalKey string, alternates []string, normalize func(string) string) {
	for _, alt := range alternates {
		altKey := normalize(alt)
		if altKey == "" || altKey == canonicalKey {
			continue
		}
		p.mergeNode(table, altKey, alt)
		p.relate("alternative_of", table, altKey, table, canonicalKey)
	}
}

// sql assembles the plan into one atomic SurrealQL transaction.
func (p *plan) sql() string {
	var b strings.Builder
	b.WriteString("BEGIN TRANSACTION;\n")
	for _, stmt := range p.statements {
		b.WriteString(stmt)
		b.WriteString(";\n")
	}
	b.WriteString("COMMIT TRANSACTION;")
	return b.String()
}

// execute runs the plan as a single transaction.
func (e *Engine) execute(ctx context.Context, p *plan) error {
	_, err := e.db.Query(ctx, p.sql(), p.vars)
	return err
}
