// Package migration runs and tracks schema migrations.
//
// Migrations register themselves from init() in database/migrations:
//
//	func init() {
//	    migration.Register("20260101000000_create_roles_and_users", &CreateRolesAndUsers{})
//	}
//
// and run from the CLI:
//
//	orderservice migrate
//	orderservice migrate:rollback
//	orderservice migrate:status
package migration

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/orderservice/pkg/logger"
)

// Migration is the interface every migration must implement.
type Migration interface {
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

// migrationRecord is one row of the tracking table.
type migrationRecord struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (migrationRecord) TableName() string { return "schema_migrations" }

type registered struct {
	name string
	m    Migration
}

var registry []registered

// Register adds a migration. Names are timestamp-prefixed and run in
// lexical order regardless of registration order.
func Register(name string, m Migration) {
	registry = append(registry, registered{name: name, m: m})
}

func sortedRegistry() []registered {
	out := append([]registered(nil), registry...)
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// Runner executes and tracks migrations.
type Runner struct {
	db  *gorm.DB
	out io.Writer
}

// New creates a Runner. Progress lines go to out.
func New(db *gorm.DB, out io.Writer) *Runner {
	if out == nil {
		out = io.Discard
	}
	return &Runner{db: db, out: out}
}

func (r *Runner) ensureTable() error {
	if err := r.db.AutoMigrate(&migrationRecord{}); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}
	return nil
}

func (r *Runner) ran() (map[string]migrationRecord, error) {
	var rows []migrationRecord
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	m := make(map[string]migrationRecord, len(rows))
	for _, rec := range rows {
		m[rec.Name] = rec
	}
	return m, nil
}

// Pending returns the names of migrations not yet applied.
func (r *Runner) Pending() ([]string, error) {
	if err := r.ensureTable(); err != nil {
		return nil, err
	}
	done, err := r.ran()
	if err != nil {
		return nil, err
	}
	var names []string
	for _, reg := range sortedRegistry() {
		if _, ok := done[reg.name]; !ok {
			names = append(names, reg.name)
		}
	}
	return names, nil
}

// Run applies every pending migration as one batch. Each migration and its
// tracking row commit together.
func (r *Runner) Run() error {
	if err := r.ensureTable(); err != nil {
		return err
	}
	done, err := r.ran()
	if err != nil {
		return fmt.Errorf("migration: fetch applied: %w", err)
	}

	batch := r.lastBatch() + 1
	count := 0
	for _, reg := range sortedRegistry() {
		if _, ok := done[reg.name]; ok {
			continue
		}
		fmt.Fprintf(r.out, "  ▶ Migrating: %s\n", reg.name)

		err := r.db.Transaction(func(tx *gorm.DB) error {
			if err := reg.m.Up(tx); err != nil {
				return err
			}
			return tx.Create(&migrationRecord{Name: reg.name, Batch: batch}).Error
		})
		if err != nil {
			return fmt.Errorf("migration: %s up: %w", reg.name, err)
		}
		count++
		fmt.Fprintf(r.out, "  ✅ Migrated:  %s\n", reg.name)
	}

	if count == 0 {
		fmt.Fprintln(r.out, "Nothing to migrate.")
		return nil
	}
	logger.Info("migration: done", "ran", count, "batch", batch)
	return nil
}

// Rollback reverses every migration of the latest batch, newest first.
func (r *Runner) Rollback() error {
	if err := r.ensureTable(); err != nil {
		return err
	}

	batch := r.lastBatch()
	if batch == 0 {
		fmt.Fprintln(r.out, "Nothing to roll back.")
		return nil
	}

	var records []migrationRecord
	if err := r.db.Where("batch = ?", batch).Order("name desc").Find(&records).Error; err != nil {
		return err
	}

	byName := make(map[string]Migration, len(registry))
	for _, reg := range registry {
		byName[reg.name] = reg.m
	}

	for _, rec := range records {
		m, ok := byName[rec.Name]
		if !ok {
			return fmt.Errorf("migration: cannot roll back %s: not registered", rec.Name)
		}
		fmt.Fprintf(r.out, "  ◀ Rolling back: %s\n", rec.Name)

		rec := rec
		err := r.db.Transaction(func(tx *gorm.DB) error {
			if err := m.Down(tx); err != nil {
				return err
			}
			return tx.Delete(&rec).Error
		})
		if err != nil {
			return fmt.Errorf("migration: %s down: %w", rec.Name, err)
		}
		fmt.Fprintf(r.out, "  ✅ Rolled back: %s\n", rec.Name)
	}

	logger.Info("migration: rolled back", "batch", batch, "count", len(records))
	return nil
}

// Status prints every registered migration and whether it has run.
func (r *Runner) Status() error {
	if err := r.ensureTable(); err != nil {
		return err
	}
	done, err := r.ran()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MIGRATION\tSTATUS\tBATCH")
	for _, reg := range sortedRegistry() {
		if rec, ok := done[reg.name]; ok {
			fmt.Fprintf(tw, "%s\tRan\t%d\n", reg.name, rec.Batch)
		} else {
			fmt.Fprintf(tw, "%s\tPending\t-\n", reg.name)
		}
	}
	return tw.Flush()
}

func (r *Runner) lastBatch() int {
	var max struct{ Max int }
	r.db.Model(&migrationRecord{}).Select("COALESCE(MAX(batch), 0) as max").Scan(&max)
	return max.Max
}
