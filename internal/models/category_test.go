package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryMapOrderAndOverwrite(t *testing.T) {
	m := NewCategoryMap()
	m.Set("Rent", 1500)
	m.Set("Food", 500)
	m.Set("Transport", 200)
	m.Set("Food", 600) // overwrite keeps position

	assert.Equal(t, []string{"Rent", "Food", "Transport"}, m.Keys())
	v, ok := m.Get("Food")
	assert.True(t, ok)
	assert.Equal(t, 600.0, v)
	assert.Equal(t, 2300.0, m.Sum())
	assert.Equal(t, 3, m.Len())
}

func TestCategoryMapNilSafe(t *testing.T) {
	var m *CategoryMap
	assert.Equal(t, 0.0, m.Sum())
	assert.Equal(t, 0, m.Len())
	_, ok := m.Get("anything")
	assert.False(t, ok)
}

func TestCategoryMapJSONRoundTrip(t *testing.T) {
	m := NewCategoryMap()
	m.Set("Zeta", 1)
	m.Set("Alpha", 2)
	m.Set("Mid", 3)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	// Insertion order survives marshaling, not lexical order
	assert.Equal(t, `{"Zeta":1,"Alpha":2,"Mid":3}`, string(data))

	var back CategoryMap
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, []string{"Zeta", "Alpha", "Mid"}, back.Keys())
	assert.Equal(t, 6.0, back.Sum())
}

func TestCategoryMapUnmarshalRejectsNonObject(t *testing.T) {
	var m CategoryMap
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &m))
	assert.Error(t, json.Unmarshal([]byte(`{"a":"x"}`), &m))
}

func TestCategoryMapEmptyMarshal(t *testing.T) {
	data, err := json.Marshal(NewCategoryMap())
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}
