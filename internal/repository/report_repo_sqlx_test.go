package repository

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func TestNewReportRepository(t *testing.T) {
	repo := NewReportRepository(&sqlx.DB{})
	assert.NotNil(t, repo)
}
