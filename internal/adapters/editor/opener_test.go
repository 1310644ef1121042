package editor

import (
	"errors"
	"testing"
)

func fakeOpener(env map[string]string, installed ...string) *Opener {
	return &Opener{
		getenv: func(k string) string { return env[k] },
		lookPath: func(name string) (string, error) {
			for _, in := range installed {
				if in == name {
					return "/usr/bin/" + name, nil
				}
			}
			return "", errors.New("not found")
		},
	}
}

func TestCommand(t *testing.T) {
	tests := []struct {
		name      string
		opener    *Opener
		wantArgs  []string
		wantError bool
	}{
		{
			name:     "visual wins over editor",
			opener:   fakeOpener(map[string]string{"VISUAL": "code --wait", "EDITOR": "vim"}),
			wantArgs: []string{"code", "--wait", "catalog.csv"},
		},
		{
			name:     "editor",
			opener:   fakeOpener(map[string]string{"EDITOR": "nano"}),
			wantArgs: []string{"nano", "catalog.csv"},
		},
		{
			name:     "fallback to installed editor",
			opener:   fakeOpener(nil, "vi", "nano"),
			wantArgs: []string{"/usr/bin/vi", "catalog.csv"},
		},
		{
			name:      "nothing available",
			opener:    fakeOpener(map[string]string{"EDITOR": "   "}),
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := tt.opener.Command("catalog.csv")
			if (err != nil) != tt.wantError {
				t.Fatalf("Command() error = %v, wantErr %v", err, tt.wantError)
			}
			if err != nil {
				return
			}
			if len(cmd.Args) != len(tt.wantArgs) {
				t.Fatalf("args = %q, want %q", cmd.Args, tt.wantArgs)
			}
			for i := range tt.wantArgs {
				if cmd.Args[i] != tt.wantArgs[i] {
					t.Errorf("args = %q, want %q", cmd.Args, tt.wantArgs)
				}
			}
		})
	}
}
