package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"reconcile"},
		{"recurring", "run"},
		{"migrate", "up"},
		{"migrate", "down"},
		{"migrate", "version"},
		{"token"},
	} {
		cmd, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}

func TestReconcileCmd_Flags(t *testing.T) {
	cmd := reconcileCmd()

	user := cmd.Flags().Lookup("user")
	require.NotNil(t, user)
	assert.Equal(t, []string{"true"}, user.Annotations["cobra_annotation_bash_completion_one_required_flag"])

	repair, err := cmd.Flags().GetBool("repair")
	require.NoError(t, err)
	assert.False(t, repair)
}
