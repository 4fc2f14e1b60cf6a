package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate flag and value",
			args:    []string{"-d", "snaps", "-x", "other"},
			allowed: []string{"-d"},
			want:    []string{"-d", "snaps"},
		},
		{
			name:    "flag=value form",
			args:    []string{"--config=conf.json", "-d=snaps", "-x=1"},
			allowed: []string{"--config", "-d"},
			want:    []string{"--config=conf.json", "-d=snaps"},
		},
		{
			name:    "flag without value",
			args:    []string{"-d", "-k", "5"},
			allowed: []string{"-d", "-k"},
			want:    []string{"-d", "-k", "5"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-d", "snaps"},
			allowed: nil,
			want:    []string{},
		},
		{
			name:    "empty args",
			args:    nil,
			allowed: []string{"-d"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cbom", "-c", "conf.json", "-n", "proj"}
	require.Equal(t, "conf.json", JsonConfigFlags())

	os.Args = []string{"cbom", "-config=other.json"}
	require.Equal(t, "other.json", JsonConfigFlags())

	os.Args = []string{"cbom", "-n", "proj"}
	require.Equal(t, "", JsonConfigFlags())
}
