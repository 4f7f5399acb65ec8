package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseContactMethod(t *testing.T) {
	for _, m := range ContactMethods {
		got, err := ParseContactMethod(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseContactMethod("email")
	assert.Error(t, err)
}

func TestSensoryPrefs_SetGet(t *testing.T) {
	var p SensoryPrefs
	for _, k := range SensoryKeys {
		v, ok := p.Get(k)
		require.True(t, ok, k)
		assert.False(t, v)

		require.True(t, p.Set(k, true))
		v, _ = p.Get(k)
		assert.True(t, v, k)
	}
	assert.Equal(t, SensoryKeys, p.Selected())

	assert.False(t, p.Set("unknown", true))
	_, ok := p.Get("unknown")
	assert.False(t, ok)
}

func TestSensoryPrefs_SelectedOrder(t *testing.T) {
	var p SensoryPrefs
	p.Set("companion", true)
	p.Set("quiet", true)
	assert.Equal(t, []string{"quiet", "companion"}, p.Selected())
	assert.Empty(t, SensoryPrefs{}.Selected())
}

func TestSensoryKeysMatchJSON(t *testing.T) {
	raw, err := json.Marshal(SensoryPrefs{})
	require.NoError(t, err)

	var fields map[string]bool
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Len(t, fields, len(SensoryKeys))
	for _, k := range SensoryKeys {
		assert.Contains(t, fields, k)
	}
}

func TestNewWizardSession(t *testing.T) {
	s := NewWizardSession("id-1")
	assert.Equal(t, StepAboutYou, s.CurrentStep)
	assert.Equal(t, ContactEmail, s.FormData.ContactMethod)
	assert.True(t, s.CurrentStep.Valid())
	assert.False(t, StepID(0).Valid())
	assert.False(t, StepID(6).Valid())
}
