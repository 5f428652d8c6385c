package migration

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/orderservice/pkg/database"
)

type sqlMigration struct{ up, down string }

func (m sqlMigration) Up(db *gorm.DB) error   { return db.Exec(m.up).Error }
func (m sqlMigration) Down(db *gorm.DB) error { return db.Exec(m.down).Error }

func withRegistry(t *testing.T, regs ...registered) {
	saved := registry
	registry = regs
	t.Cleanup(func() { registry = saved })
}

func openDB(t *testing.T) *gorm.DB {
	db, err := database.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func TestRunAndRollback(t *testing.T) {
	withRegistry(t,
		registered{"0002_gadgets", sqlMigration{"CREATE TABLE gadgets (id integer)", "DROP TABLE gadgets"}},
		registered{"0001_widgets", sqlMigration{"CREATE TABLE widgets (id integer)", "DROP TABLE widgets"}},
	)
	db := openDB(t)
	var out bytes.Buffer
	r := New(db, &out)

	pending, err := r.Pending()
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_widgets", "0002_gadgets"}, pending)

	require.NoError(t, r.Run())
	assert.True(t, db.Migrator().HasTable("widgets"))
	assert.True(t, db.Migrator().HasTable("gadgets"))
	assert.Equal(t, 1, r.lastBatch())

	out.Reset()
	require.NoError(t, r.Run())
	assert.Contains(t, out.String(), "Nothing to migrate.")

	out.Reset()
	require.NoError(t, r.Status())
	assert.Contains(t, out.String(), "0001_widgets")
	assert.Contains(t, out.String(), "Ran")

	require.NoError(t, r.Rollback())
	assert.False(t, db.Migrator().HasTable("widgets"))
	assert.False(t, db.Migrator().HasTable("gadgets"))

	pending, err = r.Pending()
	require.NoError(t, err)
	assert.Len(t, pending, 2)
}

func TestRun_FailureRollsBackThatMigration(t *testing.T) {
	withRegistry(t,
		registered{"0001_ok", sqlMigration{"CREATE TABLE ok_table (id integer)", "DROP TABLE ok_table"}},
		registered{"0002_bad", sqlMigration{"CREATE TABLE nope (", ""}},
	)
	db := openDB(t)
	r := New(db, nil)

	err := r.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "0002_bad")

	pending, err := r.Pending()
	require.NoError(t, err)
	assert.Equal(t, []string{"0002_bad"}, pending)
}
