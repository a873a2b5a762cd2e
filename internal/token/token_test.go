package token

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/park285/westeros-chess/internal/identity"
)

func TestInitials(t *testing.T) {
	cases := map[string]string{
		"Jon Snow":                     "JS",
		"Petyr Baelish (Littlefinger)": "PB",
		"Melisandre":                   "M",
		"  grenn  ":                    "G",
		"":                             "",
		"   ":                          "",
		"ärya stark":                   "ÄS",
	}
	for in, want := range cases {
		if got := Initials(in); got != want {
			t.Errorf("Initials(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRender_Character(t *testing.T) {
	got := Render(identity.IdentityOf(identity.White, identity.King))
	want := Token{Label: "JS", Background: "#1e293b", Tooltip: "Jon Snow • King (Trắng)"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_SentinelHasNoLabel(t *testing.T) {
	for _, accent := range []string{"", "#a21caf", "#000000"} {
		for _, name := range []string{"", "(empty)", "  "} {
			got := Render(identity.Identity{DisplayName: name, RoleLabel: "Knight", AccentColor: accent})
			if got.Label != "" || got.Tooltip != "" {
				t.Fatalf("sentinel %q/%q rendered %+v", name, accent, got)
			}
			if got.Background != accent {
				t.Fatalf("background = %q, want %q", got.Background, accent)
			}
		}
	}
}

func TestRender_Pure(t *testing.T) {
	id := identity.IdentityOf(identity.Black, identity.Pawn2)
	if Render(id) != Render(id) {
		t.Fatalf("Render not deterministic")
	}
}
