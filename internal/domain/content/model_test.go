package content

import (
	"errors"
	"math/rand/v2"
	"reflect"
	"testing"
)

func sampleContent() Content {
	return Content{
		Contacts: Contact{Address: "a", Phone: "p", Email: "e", Hours: "h"},
		Sports: []Sport{
			{ID: "basketball", Name: "B", Rules: []string{"r1", "r2", "r3"}, Safety: []string{"s1"}},
			{ID: "futsal", Name: "F", Rules: []string{}, Safety: nil},
		},
	}
}

// TestDraft_UpdateContactField_OnlyNamedFieldChanges verifies field-level merge.
func TestDraft_UpdateContactField_OnlyNamedFieldChanges(t *testing.T) {
	d := NewDraft(sampleContent())
	if err := d.UpdateContactField(FieldPhone, "+7 000"); err != nil {
		t.Fatalf("UpdateContactField: %v", err)
	}
	want := Contact{Address: "a", Phone: "+7 000", Email: "e", Hours: "h"}
	if got := d.Contacts(); got != want {
		t.Errorf("contacts = %+v, want %+v", got, want)
	}
	if err := d.UpdateContactField(FieldEmail, ""); err != nil {
		t.Errorf("empty value must be permitted, got %v", err)
	}
	if err := d.UpdateContactField("fax", "x"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("err = %v, want ErrUnknownField", err)
	}
}

// TestDraft_UpdateSportField verifies name/image/video edits and rejection of unknown fields.
func TestDraft_UpdateSportField(t *testing.T) {
	d := NewDraft(sampleContent())
	if err := d.UpdateSportField(1, FieldVideo, "https://v"); err != nil {
		t.Fatalf("UpdateSportField: %v", err)
	}
	if got := d.Sports()[1].Video; got != "https://v" {
		t.Errorf("video = %q", got)
	}
	if err := d.UpdateSportField(0, "id", "x"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("id must not be editable, err = %v", err)
	}
	if err := d.UpdateSportField(5, FieldName, "x"); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("err = %v, want ErrIndexOutOfRange", err)
	}
}

// TestDraft_OutOfRangeIsNoop verifies bounds checking leaves the draft untouched.
func TestDraft_OutOfRangeIsNoop(t *testing.T) {
	d := NewDraft(sampleContent())
	before := d.Snapshot()

	ops := []func() error{
		func() error { return d.RemoveRule(0, 3) },
		func() error { return d.RemoveRule(0, -1) },
		func() error { return d.RemoveSafety(1, 0) },
		func() error { return d.UpdateRule(2, 0, "x") },
		func() error { return d.UpdateSafety(0, 1, "x") },
		func() error { return d.AddRule(-1) },
		func() error { return d.AddSafety(2) },
	}
	for i, op := range ops {
		if err := op(); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("op %d: err = %v, want ErrIndexOutOfRange", i, err)
		}
	}
	if !reflect.DeepEqual(before, d.Snapshot()) {
		t.Errorf("draft mutated by out-of-range operations")
	}
}

// TestDraft_SnapshotIsolation verifies earlier snapshots do not see later edits.
func TestDraft_SnapshotIsolation(t *testing.T) {
	d := NewDraft(sampleContent())
	snap := d.Snapshot()
	_ = d.UpdateRule(0, 0, "changed")
	_ = d.AddRule(0)
	if snap.Sports[0].Rules[0] != "r1" || len(snap.Sports[0].Rules) != 3 {
		t.Errorf("snapshot changed: %v", snap.Sports[0].Rules)
	}
}

// TestDraft_AddRemoveRule_LengthAndOrder checks the add/remove length law over random sequences.
func TestDraft_AddRemoveRule_LengthAndOrder(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for trial := 0; trial < 200; trial++ {
		d := NewDraft(sampleContent())
		initial := len(d.Sports()[0].Rules)
		adds, removes := 0, 0
		for step := 0; step < 20; step++ {
			rules := d.Sports()[0].Rules
			if rng.IntN(2) == 0 || len(rules) == 0 {
				if err := d.AddRule(0); err != nil {
					t.Fatalf("AddRule: %v", err)
				}
				adds++
				continue
			}
			j := rng.IntN(len(rules))
			before := d.Sports()[0].Rules
			if err := d.RemoveRule(0, j); err != nil {
				t.Fatalf("RemoveRule: %v", err)
			}
			removes++
			after := d.Sports()[0].Rules
			want := append(append([]string{}, before[:j]...), before[j+1:]...)
			if !reflect.DeepEqual(after, want) {
				t.Fatalf("order not preserved: before=%v j=%d after=%v", before, j, after)
			}
		}
		if got := len(d.Sports()[0].Rules); got != initial+adds-removes {
			t.Fatalf("len = %d, want %d", got, initial+adds-removes)
		}
	}
}

// TestValidateSports verifies unique non-empty ids.
func TestValidateSports(t *testing.T) {
	if err := ValidateSports(Defaults().Sports); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
	dup := []Sport{{ID: "a"}, {ID: "a"}}
	if err := ValidateSports(dup); !errors.Is(err, ErrDuplicateSport) {
		t.Errorf("err = %v, want ErrDuplicateSport", err)
	}
	if err := ValidateSports([]Sport{{ID: ""}}); !errors.Is(err, ErrEmptySportID) {
		t.Errorf("err = %v, want ErrEmptySportID", err)
	}
}
