package record

import (
	"encoding/json"
	"testing"
)

func TestNew_PadsAndTruncates(t *testing.T) {
	header := []string{"a", "b", "c"}

	short := New(header, []string{"1"})
	if short.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", short.Len())
	}
	if short.Get("b") != "" || short.Get("c") != "" {
		t.Errorf("missing fields should be empty, got b=%q c=%q", short.Get("b"), short.Get("c"))
	}
	if _, ok := short.values["c"]; !ok {
		t.Error("padded field should be present")
	}

	long := New(header, []string{"1", "2", "3", "4", "5"})
	if long.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", long.Len())
	}
	if long.Get("c") != "3" {
		t.Errorf("Get(c) = %q, want 3", long.Get("c"))
	}
}

func TestNew_DuplicateHeader(t *testing.T) {
	r := New([]string{"name", "city", "name"}, []string{"first", "x", "second"})

	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	fields := r.Fields()
	if fields[0] != "name" || fields[1] != "city" {
		t.Errorf("Fields() = %v", fields)
	}
	if r.Get("name") != "second" {
		t.Errorf("Get(name) = %q, want second", r.Get("name"))
	}
}

func TestGet_Absent(t *testing.T) {
	r := pairs("a", "1")
	if r.Get("zzz") != "" {
		t.Errorf("Get(absent) = %q", r.Get("zzz"))
	}
	if _, ok := r.values["zzz"]; ok {
		t.Error("absent field should not be stored")
	}
}

func TestFields_ReturnsCopy(t *testing.T) {
	r := pairs("a", "1", "b", "2")
	f := r.Fields()
	f[0] = "mutated"
	if r.Fields()[0] != "a" {
		t.Error("Fields() leaked internal slice")
	}
}

func TestAll_HeaderOrder(t *testing.T) {
	r := pairs("z", "1", "a", "2", "m", "3")
	var got []string
	for k, v := range r.All() {
		got = append(got, k+"="+v)
	}
	want := []string{"z=1", "a=2", "m=3"}
	if len(got) != len(want) {
		t.Fatalf("All() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("All()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMarshalJSON_PreservesOrder(t *testing.T) {
	r := pairs("name", `Joe's "Cafe"`, "city", "Springfield", "zip", "")
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"name":"Joe's \"Cafe\"","city":"Springfield","zip":""}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestMarshalJSON_Empty(t *testing.T) {
	data, err := json.Marshal(Record{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("got %s, want {}", data)
	}
}

func pairs(kv ...string) Record {
	var header, row []string
	for i := 0; i+1 < len(kv); i += 2 {
		header = append(header, kv[i])
		row = append(row, kv[i+1])
	}
	return New(header, row)
}
