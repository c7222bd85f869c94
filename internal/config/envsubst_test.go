package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstituteEnvVars_Simple(t *testing.T) {
	t.Setenv("TEST_VAR_SIMPLE", "hello")

	content, missing := substituteEnvVars("value = ${TEST_VAR_SIMPLE}")
	assert.Equal(t, "value = hello", content)
	assert.Empty(t, missing)
}

func TestSubstituteEnvVars_Missing(t *testing.T) {
	// t.Setenv cannot truly unset, so use a name that is never set
	content, missing := substituteEnvVars("value = ${EPSYNC_TEST_NONEXISTENT_VAR_12345}")
	assert.Equal(t, "value = ${EPSYNC_TEST_NONEXISTENT_VAR_12345}", content)
	assert.Equal(t, []string{"EPSYNC_TEST_NONEXISTENT_VAR_12345"}, missing)
}

func TestSubstituteEnvVars_MissingReportedOnce(t *testing.T) {
	_, missing := substituteEnvVars("a = ${EPSYNC_TEST_DUP_9876}\nb = ${EPSYNC_TEST_DUP_9876}")
	assert.Equal(t, []string{"EPSYNC_TEST_DUP_9876"}, missing)
}

func TestSubstituteEnvVars_Default(t *testing.T) {
	// empty counts as unset for :-
	t.Setenv("UNSET_VAR_DEFAULT", "")

	content, missing := substituteEnvVars("value = ${UNSET_VAR_DEFAULT:-default_value}")
	assert.Equal(t, "value = default_value", content)
	assert.Empty(t, missing)
}

func TestSubstituteEnvVars_EmptyDefault(t *testing.T) {
	content, missing := substituteEnvVars(`key = "${EPSYNC_TEST_EMPTY_DEFAULT_4242:-}"`)
	assert.Equal(t, `key = ""`, content)
	assert.Empty(t, missing)
}

func TestSubstituteEnvVars_DefaultOverriddenByEnv(t *testing.T) {
	t.Setenv("SET_VAR_OVERRIDE", "from_env")

	content, missing := substituteEnvVars("value = ${SET_VAR_OVERRIDE:-default}")
	assert.Equal(t, "value = from_env", content)
	assert.Empty(t, missing)
}

func TestSubstituteEnvVars_Multiple(t *testing.T) {
	t.Setenv("VAR_A", "a")
	t.Setenv("VAR_B", "b")

	content, missing := substituteEnvVars("${VAR_A}/${VAR_B}/${VAR_C_UNSET_777:-c}")
	assert.Equal(t, "a/b/c", content)
	assert.Empty(t, missing)
}
