package state

import (
	"testing"

	"google.golang.org/protobuf/types/known/structpb"
)

func change(updates map[string]*structpb.Value) Change {
	return Change{Updates: updates}
}

func TestFoldNullDeletes(t *testing.T) {
	changes := []Change{
		change(map[string]*structpb.Value{"a": structpb.NewNumberValue(1)}),
		change(map[string]*structpb.Value{"b": structpb.NewNumberValue(2)}),
		change(map[string]*structpb.Value{"a": structpb.NewNullValue()}),
	}

	acc := Snapshot{}
	var got []Snapshot
	for _, c := range changes {
		acc = Fold(acc, c)
		got = append(got, acc.Clone())
	}

	if len(got[0]) != 1 || got[0]["a"].GetNumberValue() != 1 {
		t.Fatalf("snapshot 1 = %v", got[0])
	}
	if len(got[1]) != 2 || got[1]["b"].GetNumberValue() != 2 {
		t.Fatalf("snapshot 2 = %v", got[1])
	}
	if _, present := got[2]["a"]; present {
		t.Fatalf("a still present after null update: %v", got[2])
	}
	if len(got[2]) != 1 || got[2]["b"].GetNumberValue() != 2 {
		t.Fatalf("snapshot 3 = %v", got[2])
	}
}

func TestFoldIgnoresRemovalsSet(t *testing.T) {
	acc := Fold(Snapshot{}, change(map[string]*structpb.Value{"a": structpb.NewBoolValue(true)}))
	acc = Fold(acc, Change{Removals: []string{"a"}})
	if _, present := acc["a"]; !present {
		t.Fatalf("explicit removals must not be applied by the fold")
	}
}

func TestFoldOverwrites(t *testing.T) {
	acc := Fold(Snapshot{}, change(map[string]*structpb.Value{"k": structpb.NewStringValue("v1")}))
	acc = Fold(acc, change(map[string]*structpb.Value{"k": structpb.NewStringValue("v2")}))
	if acc["k"].GetStringValue() != "v2" {
		t.Fatalf("k = %v", acc["k"])
	}
}
