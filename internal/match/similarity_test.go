// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"reflect"
	"testing"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"identical", "neural networks", "neural networks", 100},
		{"both empty", "", "", 100},
		{"one empty", "neural", "", 0},
		{"disjoint", "abc", "xyz", 0},
		{"single edit", "kitten", "sitten", 83},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ratio(tt.a, tt.b); got != tt.want {
				t.Errorf("ratio(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestRatioBounds(t *testing.T) {
	pairs := [][2]string{
		{"a", "completely different text"},
		{"short", "sho"},
		{"the quick brown fox", "the slow brown dog"},
	}
	for _, p := range pairs {
		got := ratio(p[0], p[1])
		if got < 0 || got > 100 {
			t.Errorf("ratio(%q, %q) = %d, out of [0,100]", p[0], p[1], got)
		}
	}
}

func TestPartialRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"substring scores 100", "j smith", "j smith and friends", 100},
		{"order independent of args", "j smith and friends", "j smith", 100},
		{"equal strings", "ashish vaswani", "ashish vaswani", 100},
		{"empty side", "", "j smith", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := partialRatio(tt.a, tt.b); got != tt.want {
				t.Errorf("partialRatio(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestPartialRatioUnrelatedNamesStayLow(t *testing.T) {
	if got := partialRatio("j smith", "a jones"); got >= 80 {
		t.Errorf("partialRatio(unrelated names) = %d, want < 80", got)
	}
}

func TestTokenSetRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"identical", "attention is all you need", "attention is all you need", 100},
		{"reordered tokens", "nets neural vision", "vision neural nets", 100},
		{"subset scores 100", "neural nets for vision", "vision: neural nets", 100},
		{"repetition ignored", "data data data analysis", "analysis data", 100},
		{"empty side", "", "anything", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tokenSetRatio(tt.a, tt.b); got != tt.want {
				t.Errorf("tokenSetRatio(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestTokenSetRatioDisjointStaysLow(t *testing.T) {
	if got := tokenSetRatio("alpha beta", "gamma delta"); got >= 50 {
		t.Errorf("tokenSetRatio(disjoint) = %d, want < 50", got)
	}
}

func TestTokenSet(t *testing.T) {
	got := tokenSet("Vision: neural nets, neural!")
	want := []string{"Vision", "nets", "neural"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tokenSet() = %v, want %v", got, want)
	}
}
