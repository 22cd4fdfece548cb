package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pq.Error{Code: "23505", Constraint: "chat_ratings_chat_evaluator_key"}

	assert.True(t, IsUniqueViolation(dup, ""))
	assert.True(t, IsUniqueViolation(dup, "chat_ratings_chat_evaluator_key"))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", dup), "chat_ratings_chat_evaluator_key"))
	assert.False(t, IsUniqueViolation(dup, "students_email_key"))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}, ""))
	assert.False(t, IsUniqueViolation(errors.New("boom"), ""))
	assert.False(t, IsUniqueViolation(nil, ""))
}
