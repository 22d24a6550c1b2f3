package naming

import "testing"

func TestProjectName(t *testing.T) {
	tests := []struct {
		name string
		dir  string
		want string
	}{
		{
			name: "plain basename",
			dir:  "/home/user/myapp",
			want: "myapp",
		},
		{
			name: "trailing slash",
			dir:  "/home/user/myapp/",
			want: "myapp",
		},
		{
			name: "uppercase normalized",
			dir:  "/srv/MyApp",
			want: "myapp",
		},
		{
			name: "unsafe characters collapsed",
			dir:  "/srv/my app (old)",
			want: "my-app-old",
		},
		{
			name: "dots and dashes kept",
			dir:  "/srv/my-app.v2",
			want: "my-app.v2",
		},
		{
			name: "root falls back",
			dir:  "/",
			want: "project",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProjectName(tt.dir); got != tt.want {
				t.Errorf("ProjectName(%q) = %q, want %q", tt.dir, got, tt.want)
			}
		})
	}
}

func TestUniqueKeyOrderIndependent(t *testing.T) {
	a, err := UniqueKey(map[string]any{"a": 1, "b": 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := UniqueKey(map[string]any{"b": 2, "a": 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Errorf("keys differ for structurally equal mappings: %s vs %s", a, b)
	}
}

func TestUniqueKeyNestedMaps(t *testing.T) {
	a, err := UniqueKey(map[string]any{
		"language": "ruby",
		"env":      map[string]string{"A": "B", "C": "D"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := UniqueKey(map[string]any{
		"env":      map[string]string{"C": "D", "A": "B"},
		"language": "ruby",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Errorf("keys differ for structurally equal nested mappings: %s vs %s", a, b)
	}
}

func TestUniqueKeyDistinguishesValues(t *testing.T) {
	a, err := UniqueKey(map[string]any{"language": "ruby", "version": "3.2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := UniqueKey(map[string]any{"language": "ruby", "version": "3.3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a == b {
		t.Error("different parameter values produced identical keys")
	}
}

func TestUniqueKeyStable(t *testing.T) {
	params := map[string]any{"language": "php", "version": "8.3"}
	first, err := UniqueKey(params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := UniqueKey(params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("repeated calls returned different keys: %s vs %s", first, second)
	}
}
