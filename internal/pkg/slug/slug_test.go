package slug

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDerive(t *testing.T) {
	for _, tc := range []struct {
		name string
		want string
	}{
		{"Apple iPhone 15", "apple-iphone-15"},
		{"  Trimmed Name  ", "trimmed-name"},
		{"Multi   Space", "multi-space"},
		{"Caps & Symbols!", "caps-symbols"},
		{"already-sluggy", "already-sluggy"},
		{"", ""},
	} {
		require.Equal(t, tc.want, Derive(tc.name), "name=%q", tc.name)
	}
}

func TestDeriveIsStable(t *testing.T) {
	once := Derive("Gaming Laptop Pro")
	require.Equal(t, once, Derive(once))
}
