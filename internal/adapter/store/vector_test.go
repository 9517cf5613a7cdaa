package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestVectorToString(t *testing.T) {
	assert.Equal(t, "[0.1,0.25,-3]", vectorToString([]float32{0.1, 0.25, -3}))
	assert.Equal(t, "[]", vectorToString(nil))
}

func TestIsVectorUnavailable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"missing operator", &pq.Error{Code: "42883"}, true},
		{"missing vector type", &pq.Error{Code: "42704"}, true},
		{"missing table", &pq.Error{Code: "42P01"}, true},
		{"wrapped", fmt.Errorf("query: %w", &pq.Error{Code: "0A000"}), true},
		{"ordinary query failure", &pq.Error{Code: "22P02"}, false},
		{"non-postgres error", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isVectorUnavailable(tt.err))
		})
	}
}
