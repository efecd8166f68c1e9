package postgresql

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_InvalidDSN(t *testing.T) {
	_, err := New(context.Background(), "postgres://%zz")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "storage.postgresql.New")
}

func TestSchema(t *testing.T) {
	for _, table := range []string{"users", "posts", "tags", "posts_tags", "projects", "technologies", "project_technologies"} {
		assert.True(t, strings.Contains(schema, "CREATE TABLE IF NOT EXISTS "+table+" ("), table)
	}
}
