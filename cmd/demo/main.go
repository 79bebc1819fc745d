// Command demo replays a YAML script of vector operations and persists
// the final contents as a snapshot.
//
// Usage: demo [script.yaml]
//
// Without an argument a built-in script is replayed.
package main

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/comalice/vectorx"
	"github.com/comalice/vectorx/internal/production"
)

const defaultScript = `
name: demo
ops:
  - {op: push, value: 1}
  - {op: push, value: 2}
  - {op: push, value: 3}
  - {op: insert, pos: 1, value: 42}
  - {op: erase, pos: 0}
  - {op: resize, n: 5}
  - {op: reserve, n: 16}
  - {op: pop}
`

type scriptOp struct {
	Op    string `yaml:"op"`
	Value int    `yaml:"value"`
	Pos   int    `yaml:"pos"`
	N     int    `yaml:"n"`
}

type script struct {
	Name string     `yaml:"name"`
	Ops  []scriptOp `yaml:"ops"`
}

func main() {
	data := []byte(defaultScript)
	if len(os.Args) > 1 {
		var err error
		data, err = os.ReadFile(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "read script: %v\n", err)
			os.Exit(1)
		}
	}

	var s script
	if err := yaml.Unmarshal(data, &s); err != nil {
		fmt.Fprintf(os.Stderr, "parse script: %v\n", err)
		os.Exit(1)
	}
	if s.Name == "" {
		s.Name = "demo"
	}

	v := vectorx.New[int]()
	defer v.Destroy()

	for i, op := range s.Ops {
		if err := apply(v, op); err != nil {
			fmt.Fprintf(os.Stderr, "step %d (%s): %v\n", i+1, op.Op, err)
			os.Exit(1)
		}
		fmt.Printf("step %2d %-8s len=%d cap=%d %v\n", i+1, op.Op, v.Len(), v.Cap(), v.Slice())
	}

	persister, err := production.NewJSONPersister("/tmp")
	if err != nil {
		fmt.Fprintf(os.Stderr, "persister: %v\n", err)
		os.Exit(1)
	}
	snap := production.Capture(s.Name, v)
	if err := production.SaveJSON(context.Background(), persister, snap); err != nil {
		fmt.Fprintf(os.Stderr, "save snapshot: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("snapshot %q saved (%d elements)\n", s.Name, len(snap.Elements))
}

func apply(v *vectorx.Vector[int], op scriptOp) error {
	switch op.Op {
	case "push":
		_, err := v.PushBack(op.Value)
		return err
	case "pop":
		v.PopBack()
		return nil
	case "insert":
		_, err := v.Insert(op.Pos, op.Value)
		return err
	case "erase":
		v.Erase(op.Pos)
		return nil
	case "resize":
		return v.Resize(op.N)
	case "reserve":
		return v.Reserve(op.N)
	default:
		return fmt.Errorf("unknown op %q", op.Op)
	}
}
