package usecase

import (
	"testing"
	"time"

	"github.com/aymenbt/fantasy-ligue/internal/domain/player"
	"github.com/aymenbt/fantasy-ligue/internal/infrastructure/repository/memory"
	"github.com/aymenbt/fantasy-ligue/internal/platform/cache"
	"github.com/aymenbt/fantasy-ligue/internal/platform/logging"
)

func newTestResolver(t *testing.T) *PlayerResolver {
	t.Helper()

	return NewPlayerResolver(
		memory.NewTeamRepository(memory.SeedTeams()),
		memory.NewPlayerRepository(memory.SeedPlayers()),
		cache.NewStore(time.Minute),
		logging.NewNop(),
	)
}

func TestPlayerResolver_Resolve_CaseInsensitive(t *testing.T) {
	t.Parallel()

	resolver := newTestResolver(t)

	p, ok, err := resolver.Resolve(t.Context(), "a. JOUINI", 7594)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !ok || p.ID != "egs-fwd-01" {
		t.Fatalf("expected egs-fwd-01, got ok=%t player=%+v", ok, p)
	}
}

func TestPlayerResolver_Resolve_UnknownTeam(t *testing.T) {
	t.Parallel()

	resolver := newTestResolver(t)

	_, ok, err := resolver.Resolve(t.Context(), "A. Jouini", 424242)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if ok {
		t.Fatal("expected miss for unregistered team")
	}
}

func TestPlayerResolver_Resolve_WrongTeam(t *testing.T) {
	t.Parallel()

	resolver := newTestResolver(t)

	// A. Jouini plays for EGS Gafsa; looked up against Bizertin he is absent.
	_, ok, err := resolver.Resolve(t.Context(), "A. Jouini", 7623)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if ok {
		t.Fatal("expected miss when name belongs to the other team")
	}
}

func TestPlayerResolver_Resolve_EmptyName(t *testing.T) {
	t.Parallel()

	resolver := newTestResolver(t)

	_, ok, err := resolver.Resolve(t.Context(), "   ", 7594)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if ok {
		t.Fatal("expected miss for blank name")
	}
}

func TestPlayerResolver_Resolve_MetacharactersStayLiteral(t *testing.T) {
	t.Parallel()

	teams := memory.NewTeamRepository(memory.SeedTeams())
	players := memory.NewPlayerRepository([]player.Player{
		{ID: "p-dot", TeamID: memory.TeamIDEGSGafsa, Name: "A. Jouini", Position: player.PositionForward},
		{ID: "p-plain", TeamID: memory.TeamIDEGSGafsa, Name: "Ax Jouini", Position: player.PositionForward},
	})
	resolver := NewPlayerResolver(teams, players, cache.NewStore(time.Minute), logging.NewNop())

	// The dot must not act as a wildcard matching "Ax Jouini".
	p, ok, err := resolver.Resolve(t.Context(), "A. Jouini", 7594)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !ok || p.ID != "p-dot" {
		t.Fatalf("expected exact literal match, got ok=%t player=%+v", ok, p)
	}
}

func TestPlayerResolver_Resolve_CachesLookups(t *testing.T) {
	t.Parallel()

	resolver := newTestResolver(t)

	first, ok, err := resolver.Resolve(t.Context(), "R. Jeridi", 7594)
	if err != nil || !ok {
		t.Fatalf("first resolve failed: ok=%t err=%v", ok, err)
	}
	second, ok, err := resolver.Resolve(t.Context(), "R. Jeridi", 7594)
	if err != nil || !ok {
		t.Fatalf("second resolve failed: ok=%t err=%v", ok, err)
	}
	if first.ID != second.ID {
		t.Fatalf("cached resolve diverged: %s != %s", first.ID, second.ID)
	}
}


