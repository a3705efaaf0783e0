package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"SeqStats/pkg/simReads"
)

func TestLoadSpecs(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "spec.csv")
	if err := os.WriteFile(path, []byte("length,count\n150,4\n-1,3\n3000,1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	specs, err := loadSpecs(path)
	if err != nil {
		t.Fatal(err)
	}
	var want = []simReads.ReadSpec{{Count: 4, Size: 150}, {Count: 1, Size: 3000}}
	if !reflect.DeepEqual(specs, want) {
		t.Errorf("loadSpecs = %+v; want %+v", specs, want)
	}
}
