package booking

import "testing"

func TestResolveSpace(t *testing.T) {
	spaces := []Space{
		{ID: "401", Name: "Chapel"},
		{ID: "402", Name: "Room 402"},
		{ID: "b1", Name: "Small Room B1"},
	}

	cases := []struct {
		id, name string
		want     string
		found    bool
	}{
		{id: "402", want: "402", found: true},
		{name: "chapel", want: "401", found: true},
		{id: "CHAPEL", want: "401", found: true},
		{name: "b1", want: "b1", found: true},
		{name: "room", want: "402", found: true},
		{id: "999", found: false},
		{id: "1", found: false},
		{id: "room", found: false},
		{id: "999", name: "chapel", found: false},
		{found: false},
	}
	for _, tc := range cases {
		got, ok := ResolveSpace(spaces, tc.id, tc.name)
		if ok != tc.found {
			t.Fatalf("id=%q name=%q: expected found=%v", tc.id, tc.name, tc.found)
		}
		if ok && got.ID != tc.want {
			t.Fatalf("id=%q name=%q: expected %q, got %q", tc.id, tc.name, tc.want, got.ID)
		}
	}
}
