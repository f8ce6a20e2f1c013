package route

import (
	"testing"
)

func TestName_Segments(t *testing.T) {
	tests := []struct {
		name     Name
		expected []string
	}{
		{Name("admin.settings.theme"), []string{"admin", "settings", "theme"}},
		{Name("users.detail"), []string{"users", "detail"}},
		{Name("home"), []string{"home"}},
		{Name(""), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name.String(), func(t *testing.T) {
			got := tt.name.Segments()
			if len(got) != len(tt.expected) {
				t.Errorf("Name.Segments() = %v, want %v", got, tt.expected)
				return
			}
			for i, seg := range got {
				if seg != tt.expected[i] {
					t.Errorf("Name.Segments()[%d] = %v, want %v", i, seg, tt.expected[i])
				}
			}
		})
	}
}

func TestName_SegmentCount(t *testing.T) {
	tests := []struct {
		name     Name
		expected int
	}{
		{Name("admin.settings.theme"), 3},
		{Name("users.detail"), 2},
		{Name("home"), 1},
		{Name(""), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name.String(), func(t *testing.T) {
			if got := tt.name.SegmentCount(); got != tt.expected {
				t.Errorf("Name.SegmentCount() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestName_Parent(t *testing.T) {
	tests := []struct {
		name     Name
		expected Name
	}{
		{Name("admin.settings.theme"), Name("admin.settings")},
		{Name("users.detail"), Name("users")},
		{Name("home"), Name("")},
		{Name(""), Name("")},
	}

	for _, tt := range tests {
		t.Run(tt.name.String(), func(t *testing.T) {
			if got := tt.name.Parent(); got != tt.expected {
				t.Errorf("Name.Parent() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestName_Child(t *testing.T) {
	tests := []struct {
		name     Name
		segment  string
		expected Name
	}{
		{Name("users"), "detail", Name("users.detail")},
		{Name("admin.settings"), "theme", Name("admin.settings.theme")},
		{Name(""), "home", Name("home")},
	}

	for _, tt := range tests {
		t.Run(tt.expected.String(), func(t *testing.T) {
			if got := tt.name.Child(tt.segment); got != tt.expected {
				t.Errorf("Name.Child(%q) = %v, want %v", tt.segment, got, tt.expected)
			}
		})
	}
}

func TestName_Base(t *testing.T) {
	tests := []struct {
		name     Name
		expected string
	}{
		{Name("admin.settings.theme"), "theme"},
		{Name("users.detail"), "detail"},
		{Name("home"), "home"},
		{Name(""), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name.String(), func(t *testing.T) {
			if got := tt.name.Base(); got != tt.expected {
				t.Errorf("Name.Base() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestName_HasPrefix(t *testing.T) {
	tests := []struct {
		name     Name
		prefix   Name
		expected bool
	}{
		{Name("users.detail"), Name("users"), true},
		{Name("users.detail"), Name("users.detail"), true},
		{Name("users"), Name("users.detail"), false},
		{Name("userspace"), Name("users"), false},
		{Name("users.detail"), Name(""), true},
		{Name("users.detail"), Name("admin"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name.String()+"/"+tt.prefix.String(), func(t *testing.T) {
			if got := tt.name.HasPrefix(tt.prefix); got != tt.expected {
				t.Errorf("Name(%q).HasPrefix(%q) = %v, want %v", tt.name, tt.prefix, got, tt.expected)
			}
		})
	}
}

func TestName_IsAncestorOf(t *testing.T) {
	tests := []struct {
		name     Name
		other    Name
		expected bool
	}{
		{Name("users"), Name("users.detail"), true},
		{Name("users"), Name("users.detail.edit"), true},
		{Name("users"), Name("users"), false},
		{Name("users"), Name("userspace"), false},
		{Name("users.detail"), Name("users"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name.String()+"/"+tt.other.String(), func(t *testing.T) {
			if got := tt.name.IsAncestorOf(tt.other); got != tt.expected {
				t.Errorf("Name(%q).IsAncestorOf(%q) = %v, want %v", tt.name, tt.other, got, tt.expected)
			}
		})
	}
}

func TestName_Ancestry(t *testing.T) {
	tests := []struct {
		name     Name
		expected []Name
	}{
		{Name("a.b.c"), []Name{"a", "a.b", "a.b.c"}},
		{Name("home"), []Name{"home"}},
		{Name(""), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name.String(), func(t *testing.T) {
			got := tt.name.Ancestry()
			if len(got) != len(tt.expected) {
				t.Fatalf("Name.Ancestry() = %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("Name.Ancestry()[%d] = %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestName_IsValid(t *testing.T) {
	tests := []struct {
		name     Name
		expected bool
	}{
		{Name("users.detail"), true},
		{Name("home"), true},
		{Name(""), false},
		{Name(".users"), false},
		{Name("users."), false},
		{Name("users..detail"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name.String(), func(t *testing.T) {
			if got := tt.name.IsValid(); got != tt.expected {
				t.Errorf("Name(%q).IsValid() = %v, want %v", tt.name, got, tt.expected)
			}
		})
	}
}

func TestJoin(t *testing.T) {
	if got := Join("admin", "settings", "theme"); got != Name("admin.settings.theme") {
		t.Errorf("Join() = %v, want admin.settings.theme", got)
	}
}
