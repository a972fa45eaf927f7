package normalize

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type record struct {
	Name  string
	Value string
}

func TestPipeline_Run(t *testing.T) {
	trim := func(_ context.Context, r *record) error {
		r.Name = strings.TrimSpace(r.Name)
		return nil
	}
	requireName := func(_ context.Context, r *record) error {
		if r.Name == "" {
			return errors.New("empty name")
		}
		return nil
	}
	defaultValue := func(_ context.Context, r *record) error {
		if r.Value == "" {
			r.Value = "N/A"
		}
		return nil
	}

	tests := []struct {
		name  string
		steps []Step[record]
		in    []record
		want  []record
	}{
		{
			name:  "steps applied in order to every record",
			steps: []Step[record]{trim, requireName, defaultValue},
			in:    []record{{Name: "  a  "}, {Name: "b", Value: "set"}},
			want:  []record{{Name: "a", Value: "N/A"}, {Name: "b", Value: "set"}},
		},
		{
			name:  "failing step drops only that record",
			steps: []Step[record]{trim, requireName, defaultValue},
			in:    []record{{Name: "a"}, {Name: "   "}, {Name: "c"}},
			want:  []record{{Name: "a", Value: "N/A"}, {Name: "c", Value: "N/A"}},
		},
		{
			name:  "no steps passes records through",
			steps: nil,
			in:    []record{{Name: "x"}},
			want:  []record{{Name: "x"}},
		},
		{
			name:  "empty input",
			steps: []Step[record]{requireName},
			in:    nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPipeline(tt.steps...).Run(context.Background(), tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("unexpected count: got %d want %d (values: %v)", len(got), len(tt.want), got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("idx %d: got %+v want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPipeline_RunDoesNotMutateInput(t *testing.T) {
	upper := func(_ context.Context, r *record) error {
		r.Name = strings.ToUpper(r.Name)
		return nil
	}
	in := []record{{Name: "keep"}}
	out := NewPipeline(upper).Run(context.Background(), in)

	if in[0].Name != "keep" {
		t.Errorf("input slice was mutated: %+v", in[0])
	}
	if out[0].Name != "KEEP" {
		t.Errorf("step not applied to output: %+v", out[0])
	}
}
