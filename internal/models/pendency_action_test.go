package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveActionExactKey(t *testing.T) {
	action := ResolveAction("patient_data")
	require.NotNil(t, action)
	assert.Equal(t, ActionScroll, action.Type)
	assert.Equal(t, "#paciente", action.Target)
}

func TestResolveActionDocumentPrefix(t *testing.T) {
	for _, key := range []string{
		DocumentKeyMedicalReport,
		DocumentKeyAuthForm,
		"document_anything_else",
	} {
		action := ResolveAction(key)
		require.NotNil(t, action, key)
		assert.Equal(t, ActionModal, action.Type, key)
		assert.Equal(t, "anexos", action.Target, key)
	}
}

func TestResolveActionNumericKey(t *testing.T) {
	// Clinic-defined requirements use bare numeric ids as keys
	for _, key := range []string{"1", "42", "1077"} {
		action := ResolveAction(key)
		require.NotNil(t, action, key)
		assert.Equal(t, ActionModal, action.Type, key)
	}
}

func TestResolveActionUnknownKeyIsInert(t *testing.T) {
	for _, key := range []string{"", "unknown_rule", "12abc", "doc_report", "1.5"} {
		assert.Nil(t, ResolveAction(key), key)
	}
}
