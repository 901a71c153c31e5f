package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalRecord_Changes(t *testing.T) {
	r := NewLocalRecord(1, map[string]any{"Title": "E1", "Name": "Alice"})
	assert.Empty(t, r.Changes())

	r.Set("Name", "Bob")
	r.Set("Email", "bob@example.com")

	assert.Equal(t, map[string]any{"Name": "Bob", "Email": "bob@example.com"}, r.Changes())
	assert.Equal(t, []string{"Email", "Name"}, r.ChangedFields())
	assert.Equal(t, "Bob", r.Get("Name"))

	r.ClearChanges()
	assert.Empty(t, r.Changes())
	assert.Equal(t, "Bob", r.Get("Name"))
}

func TestLocalRecord_SetOnZeroValue(t *testing.T) {
	var r LocalRecord
	r.Set("Title", "E9")
	assert.Equal(t, "E9", r.Title())
}

func TestLocalRecord_IsActive(t *testing.T) {
	tests := []struct {
		name   string
		status any
		want   bool
	}{
		{"Nil status", nil, true},
		{"Empty status", "", true},
		{"Active", "A", true},
		{"Terminated", "Terminated", false},
		{"Left with trailing space", "Left ", false},
		{"Left without trailing space", "Left", true},
		{"Bytes terminated", []byte("Terminated"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewLocalRecord(1, map[string]any{"Status": tt.status})
			assert.Equal(t, tt.want, r.IsActive())
		})
	}
}

func TestLocalRecord_Title(t *testing.T) {
	assert.Equal(t, "E1", NewLocalRecord(1, map[string]any{"Title": []byte("E1")}).Title())
	assert.Equal(t, "", NewLocalRecord(1, nil).Title())
}
