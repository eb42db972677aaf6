package service

import "testing"

func TestSlugify(t *testing.T) {
	casos := []struct {
		nombre string
		want   string
	}{
		{"La Esquina", "la-esquina"},
		{"Café París", "cafe-paris"},
		{"El Ñandú 24/7", "el-nandu-24-7"},
		{"  Pollería   Doña Juana  ", "polleria-dona-juana"},
		{"Façade Café", "facade-cafe"},
		{"Crème Brûlée", "creme-brulee"},
		{"Bistró Łódź", "bistro-od"},
		{"---", ""},
	}

	for _, c := range casos {
		if got := Slugify(c.nombre); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.nombre, got, c.want)
		}
	}
}

func TestHashTokenEstable(t *testing.T) {
	a := HashToken("token")
	b := HashToken("token")
	if a != b {
		t.Error("hash must be deterministic")
	}
	if a == HashToken("otro") {
		t.Error("different tokens must not collide")
	}
	if len(a) != 64 {
		t.Errorf("expected hex sha256, got length %d", len(a))
	}
}
