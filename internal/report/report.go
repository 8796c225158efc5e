// Package report builds the plain-text exclusion report: the audit trail of
// every record a run removed and why. A Builder is scoped to one run and
// passed explicitly through the pipeline phases.
package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
)

// Section records one exclusion cause and the identities it removed.
type Section struct {
	Table  string
	Reason string
	IDs    []string
}

// Builder accumulates exclusion sections in insertion order.
type Builder struct {
	RunID   uuid.UUID
	Started time.Time

	sections []Section
}

// New creates a Builder for a fresh run.
func New() *Builder {
	return &Builder{RunID: uuid.New(), Started: time.Now().UTC()}
}

// Add appends one section. Empty removals are recorded too: the report
// states that a filter ran even when it removed nothing.
func (b *Builder) Add(table, reason string, ids []string) {
	b.sections = append(b.sections, Section{Table: table, Reason: reason, IDs: ids})
}

// Sections returns the accumulated sections in insertion order.
func (b *Builder) Sections() []Section {
	return b.sections
}

// Write renders the report.
func (b *Builder) Write(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "exclusion report\nrun: %s\ngenerated: %s\n",
		b.RunID, b.Started.Format(time.RFC3339)); err != nil {
		return err
	}
	for _, s := range b.sections {
		if _, err := fmt.Fprintf(w, "\n[%s] %s: %d removed\n", s.Table, s.Reason, len(s.IDs)); err != nil {
			return err
		}
		for _, id := range s.IDs {
			if _, err := fmt.Fprintf(w, "  id: %s\n", id); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteFile renders the report to a file.
func (b *Builder) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	if err := b.Write(f); err != nil {
		f.Close()
		return fmt.Errorf("write report: %w", err)
	}
	return f.Close()
}
