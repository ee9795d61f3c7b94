package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDSN(t *testing.T) {
	dsn := buildDSN("app", "s3cret", "db.local", "3306", "berberi")
	assert.Equal(t,
		"app:s3cret@tcp(db.local:3306)/berberi?charset=utf8mb4&parseTime=true&loc=UTC&clientFoundRows=true",
		dsn)
}

func TestBuildDSNEmptyPassword(t *testing.T) {
	dsn := buildDSN("app", "", "localhost", "3306", "berberi")
	assert.Equal(t,
		"app@tcp(localhost:3306)/berberi?charset=utf8mb4&parseTime=true&loc=UTC&clientFoundRows=true",
		dsn)
}

// A same-values UPDATE must still count the row, or moving a reservation
// onto its own slot reads as a missing row. clientFoundRows selects matched
// rather than changed row counting in the driver.
func TestBuildDSNCountsMatchedRows(t *testing.T) {
	assert.Contains(t, buildDSN("u", "", "h", "3306", "d"), "clientFoundRows=true")
}
