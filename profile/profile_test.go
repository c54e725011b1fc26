package profile_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/veldt/tap/profile"
)

// rawUser mimics a backend-shaped related record.
type rawUser struct {
	id   string
	name string
}

func testSteps() profile.Steps[rawUser] {
	return profile.Steps[rawUser]{
		ParseIdentity: func(_ context.Context, locator string) (string, error) {
			return strings.TrimPrefix(locator, "https://arcadia.example/"), nil
		},
		DisplayName: func(_ context.Context, identity string) (string, error) {
			return "name-of-" + identity, nil
		},
		FetchRelated: func(_ context.Context, _ string) ([]rawUser, error) {
			return []rawUser{{"u1", "Ann"}, {"u2", "Ben"}, {"u3", "Cleo"}}, nil
		},
		Convert: func(raw []rawUser) ([]profile.Profile, error) {
			out := make([]profile.Profile, 0, len(raw))
			for _, r := range raw {
				out = append(out, profile.Profile{Identity: r.id, Name: r.name})
			}
			return out, nil
		},
	}
}

func TestLoad(t *testing.T) {
	p, err := profile.Load(context.Background(), testSteps(), "https://arcadia.example/user42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Identity != "user42" {
		t.Errorf("expected identity %q, got %q", "user42", p.Identity)
	}
	if p.Name != "name-of-user42" {
		t.Errorf("expected name %q, got %q", "name-of-user42", p.Name)
	}
	if len(p.Friends) != 3 {
		t.Fatalf("expected 3 friends, got %d", len(p.Friends))
	}
}

func TestLoad_ConvertPreservesOrder(t *testing.T) {
	p, err := profile.Load(context.Background(), testSteps(), "https://arcadia.example/user42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"Ann", "Ben", "Cleo"}
	for i, w := range want {
		if p.Friends[i].Name != w {
			t.Errorf("friends[%d] = %q, want %q", i, p.Friends[i].Name, w)
		}
	}
}

func TestLoad_EmptyRelated(t *testing.T) {
	steps := testSteps()
	steps.FetchRelated = func(_ context.Context, _ string) ([]rawUser, error) {
		return nil, nil
	}

	p, err := profile.Load(context.Background(), steps, "https://arcadia.example/user42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Friends) != 0 {
		t.Errorf("expected no friends, got %d", len(p.Friends))
	}
}

func TestLoad_StepFailureAborts(t *testing.T) {
	boom := errors.New("backend down")

	tests := []struct {
		name   string
		mutate func(*profile.Steps[rawUser])
		step   profile.Step
	}{
		{
			"parse identity",
			func(s *profile.Steps[rawUser]) {
				s.ParseIdentity = func(_ context.Context, _ string) (string, error) { return "", boom }
			},
			profile.StepParseIdentity,
		},
		{
			"display name",
			func(s *profile.Steps[rawUser]) {
				s.DisplayName = func(_ context.Context, _ string) (string, error) { return "", boom }
			},
			profile.StepDisplayName,
		},
		{
			"fetch related",
			func(s *profile.Steps[rawUser]) {
				s.FetchRelated = func(_ context.Context, _ string) ([]rawUser, error) { return nil, boom }
			},
			profile.StepFetchRelated,
		},
		{
			"convert",
			func(s *profile.Steps[rawUser]) {
				s.Convert = func(_ []rawUser) ([]profile.Profile, error) { return nil, boom }
			},
			profile.StepConvert,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps := testSteps()
			tt.mutate(&steps)

			p, err := profile.Load(context.Background(), steps, "https://arcadia.example/user42")
			if p != nil {
				t.Error("expected no partial result")
			}

			var stepErr *profile.StepError
			if !errors.As(err, &stepErr) {
				t.Fatalf("expected *StepError, got %v", err)
			}
			if stepErr.Step != tt.step {
				t.Errorf("expected step %q, got %q", tt.step, stepErr.Step)
			}
			if !errors.Is(err, boom) {
				t.Error("expected underlying cause to be preserved")
			}
		})
	}
}

func TestLoad_NilStepRejected(t *testing.T) {
	steps := testSteps()
	steps.Convert = nil

	_, err := profile.Load(context.Background(), steps, "x")
	var stepErr *profile.StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("expected *StepError, got %v", err)
	}
	if stepErr.Step != profile.StepConvert {
		t.Errorf("expected step %q, got %q", profile.StepConvert, stepErr.Step)
	}
}
