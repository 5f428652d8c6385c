// Package orm is a thin chainable wrapper over *gorm.DB used by the
// repositories. Every builder call returns a new Query, so a base Query can
// be shared safely.
package orm

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shashiranjanraj/orderservice/pkg/database"
)

// ErrNotFound is returned by First when no row matches.
var ErrNotFound = errors.New("record not found")

type Query struct {
	db *gorm.DB
}

// New wraps an explicit connection.
func New(db *gorm.DB) *Query {
	return &Query{db: db}
}

// DB wraps the process-wide connection opened by database.Connect.
func DB() *Query {
	return &Query{db: database.DB}
}

// Gorm exposes the underlying handle for migrations and tests.
func (q *Query) Gorm() *gorm.DB { return q.db }

func (q *Query) WithContext(ctx context.Context) *Query {
	return &Query{db: q.db.WithContext(ctx)}
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query interface{}, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

// WhereIf adds the condition only when ok is true. Used for optional filters.
func (q *Query) WhereIf(ok bool, query interface{}, args ...interface{}) *Query {
	if !ok {
		return q
	}
	return q.Where(query, args...)
}

func (q *Query) Preload(assoc string, conds ...interface{}) *Query {
	return &Query{db: q.db.Preload(assoc, conds...)}
}

func (q *Query) Order(value interface{}) *Query {
	return &Query{db: q.db.Order(value)}
}

// ForUpdate locks selected rows until the surrounding transaction ends on
// databases that support it. SQLite ignores the clause.
func (q *Query) ForUpdate() *Query {
	if q.db.Dialector.Name() == "sqlite" {
		return q
	}
	return &Query{db: q.db.Clauses(clause.Locking{Strength: "UPDATE"})}
}

func (q *Query) Get(dest interface{}) error {
	return q.db.Find(dest).Error
}

func (q *Query) First(dest interface{}) error {
	err := q.db.First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (q *Query) Create(v interface{}) error {
	return q.db.Create(v).Error
}

// FirstOrCreate loads the row matching dest's non-zero fields or inserts it.
func (q *Query) FirstOrCreate(dest interface{}) error {
	return q.db.Where(dest).FirstOrCreate(dest).Error
}

// Association returns gorm's association helper for many-to-many edits.
func (q *Query) Association(model interface{}, name string) *gorm.Association {
	return q.db.Model(model).Association(name)
}

// Save writes every column of v without touching associations.
func (q *Query) Save(v interface{}) error {
	return q.db.Omit(clause.Associations).Save(v).Error
}

// Updates applies column values to the rows matched by the query.
func (q *Query) Updates(values map[string]interface{}) (int64, error) {
	res := q.db.Updates(values)
	return res.RowsAffected, res.Error
}

// Delete removes the rows matched by the query.
func (q *Query) Delete(model interface{}) (int64, error) {
	res := q.db.Delete(model)
	return res.RowsAffected, res.Error
}

// Transaction runs fn inside a database transaction. fn's error rolls back.
func (q *Query) Transaction(fn func(tx *Query) error) error {
	return q.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Query{db: tx})
	})
}
