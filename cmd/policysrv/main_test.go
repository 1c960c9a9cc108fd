package main

import (
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWritePortFile(t *testing.T) {
	dir := t.TempDir()
	addr := &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 50123}

	path := filepath.Join(dir, "port")
	require.NoError(t, writePortFile(path, addr))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "50123", string(data))

	err = writePortFile(filepath.Join(dir, "missing", "port"), addr)
	require.Error(t, err)
}
