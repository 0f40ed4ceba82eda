package editor

import (
	"errors"
	"reflect"
	"testing"
)

func fakeOpener(env map[string]string, installed ...string) *Opener {
	return &Opener{
		getenv: func(k string) string { return env[k] },
		lookPath: func(name string) (string, error) {
			for _, p := range installed {
				if p == name {
					return "/usr/bin/" + name, nil
				}
			}
			return "", errors.New("not found")
		},
	}
}

func TestOpener_Command(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		installed []string
		path      string
		wantArgs  []string
		wantErr   bool
	}{
		{
			name:     "visual wins over editor",
			env:      map[string]string{"VISUAL": "code -w", "EDITOR": "vim"},
			path:     "/logs/app.log",
			wantArgs: []string{"code", "-w", "/logs/app.log"},
		},
		{
			name:     "editor",
			env:      map[string]string{"EDITOR": "nano"},
			path:     "/logs/app.log",
			wantArgs: []string{"nano", "/logs/app.log"},
		},
		{
			name:      "plain fallback",
			installed: []string{"vi", "less"},
			path:      "/logs/app.log",
			wantArgs:  []string{"/usr/bin/less", "/logs/app.log"},
		},
		{
			name:      "compressed ignores editor",
			env:       map[string]string{"EDITOR": "vim"},
			installed: []string{"less", "zless"},
			path:      "/logs/app.log.gz",
			wantArgs:  []string{"/usr/bin/zless", "/logs/app.log.gz"},
		},
		{
			name:    "nothing available",
			path:    "/logs/app.log",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := fakeOpener(tt.env, tt.installed...).Command(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(cmd.Args, tt.wantArgs) {
				t.Errorf("Args = %v, want %v", cmd.Args, tt.wantArgs)
			}
		})
	}
}
