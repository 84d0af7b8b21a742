package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommands(t *testing.T) {
	root := newRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"play", "serve", "migrate"})

	serve, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)
	assert.NotNil(t, serve.Flags().Lookup("addr"))
	assert.NotNil(t, root.PersistentFlags().Lookup("log-file"))
}

func TestNewSourceIsDeterministicWithSeed(t *testing.T) {
	a, b := newSource(42), newSource(42)
	for range 10 {
		assert.Equal(t, a.IntN(1000), b.IntN(1000))
	}
}
