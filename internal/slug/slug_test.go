package slug

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Jane Smith":         "jane-smith",
		"  Jane   Smith  ":   "jane-smith",
		"José Álvarez-Núñez": "jose-alvarez-nunez",
		"Zoë O'Brien":        "zoe-o-brien",
		"R2-D2 / C-3PO":      "r2-d2-c-3po",
		"___":                "",
		"":                   "",
		"Straße":             "stra-e",
	}
	for in, want := range cases {
		require.Equal(t, want, Slugify(in), "Slugify(%q)", in)
	}
}

func TestBaseFallback(t *testing.T) {
	require.Equal(t, "cv", Base(""))
	require.Equal(t, "cv", Base("!!!"))
	require.Equal(t, "ada", Base("Ada"))
}

func TestAllocateSkipsTaken(t *testing.T) {
	taken := map[string]bool{"jane-smith": true, "jane-smith-1": true}
	got := Allocate("Jane Smith", func(c string) bool { return taken[c] })
	require.Equal(t, "jane-smith-2", got)
}

func TestAllocateFreeBase(t *testing.T) {
	var probes []string
	got := Allocate("", func(c string) bool {
		probes = append(probes, c)
		return false
	})
	require.Equal(t, "cv", got)
	require.Equal(t, []string{"cv"}, probes)
}

func TestClaim(t *testing.T) {
	owned := map[string]bool{"ada": true}
	create := func(_ context.Context, c string) error {
		if owned[c] {
			return fmt.Errorf("create %s: %w", c, ErrTaken)
		}
		owned[c] = true
		return nil
	}

	got, collisions, err := Claim(context.Background(), "Ada", create)
	require.NoError(t, err)
	require.Equal(t, "ada-1", got)
	require.Equal(t, 1, collisions)

	got, _, err = Claim(context.Background(), "Ada", create)
	require.NoError(t, err)
	require.Equal(t, "ada-2", got)
}

func TestClaimStopsOnOtherErrors(t *testing.T) {
	boom := errors.New("disk full")
	_, _, err := Claim(context.Background(), "Ada", func(context.Context, string) error { return boom })
	require.ErrorIs(t, err, boom)
}

func TestClaimHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := Claim(ctx, "Ada", func(context.Context, string) error { return ErrTaken })
	require.ErrorIs(t, err, context.Canceled)
}

func TestValid(t *testing.T) {
	require.True(t, Valid("jane-smith-2"))
	require.False(t, Valid(""))
	require.False(t, Valid("../etc/passwd"))
	require.False(t, Valid("Jane"))
	require.False(t, Valid("-x"))
}
