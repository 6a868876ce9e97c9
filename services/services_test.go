package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
	"github.com/Dosada05/swiss-tournament/storage"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []brackets.WebSocketMessage
}

func (p *recordingPublisher) BroadcastToRoom(roomID string, message interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if msg, ok := message.(brackets.WebSocketMessage); ok && roomID == models.TournamentRoom {
		p.events = append(p.events, msg)
	}
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	store     *repositories.MemoryStore
	publisher *recordingPublisher
	players   PlayerService
	matches   MatchService
	standings StandingsService
	pairings  PairingService
	admin     AdminService
}

func newFixture(t *testing.T, uploader storage.FileUploader) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := repositories.NewMemoryStore()
	pub := &recordingPublisher{}

	standings := NewStandingsService(store.Players(), store.Matches())
	return &fixture{
		store:     store,
		publisher: pub,
		players:   NewPlayerService(store.Players(), pub, logger),
		matches:   NewMatchService(store.Players(), store.Matches(), standings, pub, logger),
		standings: standings,
		pairings:  NewPairingService(standings, brackets.NewSwissGenerator(), logger),
		admin:     NewAdminService(store, store.Players(), store.Matches(), standings, uploader, pub, logger),
	}
}

func (f *fixture) register(t *testing.T, names ...string) []int {
	t.Helper()
	ids := make([]int, 0, len(names))
	for _, name := range names {
		p, err := f.players.RegisterPlayer(context.Background(), name)
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}
	return ids
}

func (f *fixture) report(t *testing.T, winner, loser int) {
	t.Helper()
	_, err := f.matches.ReportMatch(context.Background(), winner, loser)
	require.NoError(t, err)
}

func TestRegisterPlayer(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	p, err := f.players.RegisterPlayer(ctx, "  Chandra Nalaar ")
	require.NoError(t, err)
	assert.Equal(t, "Chandra Nalaar", p.Name)
	assert.Positive(t, p.ID)

	_, err = f.players.RegisterPlayer(ctx, "   ")
	assert.ErrorIs(t, err, ErrPlayerNameRequired)

	long := make([]rune, maxPlayerNameLength+1)
	for i := range long {
		long[i] = 'x'
	}
	_, err = f.players.RegisterPlayer(ctx, string(long))
	assert.ErrorIs(t, err, ErrPlayerNameTooLong)

	count, err := f.players.CountPlayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, []string{models.EventPlayerRegistered}, f.publisher.types())
}

func TestListPlayersEmpty(t *testing.T) {
	f := newFixture(t, nil)
	players, err := f.players.ListPlayers(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, players)
	assert.Empty(t, players)
}

func TestReportMatchValidation(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	ids := f.register(t, "A", "B")

	_, err := f.matches.ReportMatch(ctx, ids[0], ids[0])
	assert.ErrorIs(t, err, ErrMatchSelfPlay)

	_, err = f.matches.ReportMatch(ctx, ids[0], 999)
	assert.ErrorIs(t, err, ErrPlayerNotFound)

	_, err = f.matches.ReportMatch(ctx, 0, ids[1])
	assert.ErrorIs(t, err, ErrValidationFailed)

	count, err := f.matches.CountMatches(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestReportMatchPublishesStandings(t *testing.T) {
	f := newFixture(t, nil)
	ids := f.register(t, "A", "B")

	m, err := f.matches.ReportMatch(context.Background(), ids[1], ids[0])
	require.NoError(t, err)
	assert.Equal(t, ids[1], m.WinnerID)

	assert.Equal(t, []string{
		models.EventPlayerRegistered,
		models.EventPlayerRegistered,
		models.EventMatchReported,
		models.EventStandingsUpdated,
	}, f.publisher.types())

	last := f.publisher.events[len(f.publisher.events)-1]
	standings, ok := last.Payload.([]models.StandingEntry)
	require.True(t, ok)
	assert.Equal(t, ids[1], standings[0].PlayerID)
}

func TestCheckMatch(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	ids := f.register(t, "A", "B", "C")
	f.report(t, ids[0], ids[1])

	played, err := f.matches.CheckMatch(ctx, ids[1], ids[0])
	require.NoError(t, err)
	assert.True(t, played)

	played, err = f.matches.CheckMatch(ctx, ids[0], ids[2])
	require.NoError(t, err)
	assert.False(t, played)
}

func TestStandingsOrder(t *testing.T) {
	f := newFixture(t, nil)
	ids := f.register(t, "A", "B", "C", "D", "E")
	a, b, c, d, e := ids[0], ids[1], ids[2], ids[3], ids[4]
	f.report(t, a, d)
	f.report(t, b, d)
	f.report(t, a, e)
	f.report(t, b, e)
	f.report(t, c, e)

	standings, err := f.standings.Standings(context.Background())
	require.NoError(t, err)
	require.Len(t, standings, 5)

	got := make([]int, 0, len(standings))
	for _, s := range standings {
		got = append(got, s.PlayerID)
	}
	assert.Equal(t, []int{a, b, c, d, e}, got)
	assert.Equal(t, models.StandingEntry{PlayerID: c, Name: "C", Wins: 1, Matches: 1}, standings[2])
	assert.Equal(t, models.StandingEntry{PlayerID: e, Name: "E", Wins: 0, Matches: 3}, standings[4])
}

func TestSwissPairingsRoundTrip(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	ids := f.register(t, "Twilight Sparkle", "Fluttershy", "Applejack", "Pinkie Pie")
	a, b, c, d := ids[0], ids[1], ids[2], ids[3]

	round, err := f.pairings.SwissPairings(ctx)
	require.NoError(t, err)
	assert.True(t, round.Completed)
	assert.Empty(t, round.Unpaired)
	assert.Equal(t, []models.Pairing{
		{Player1ID: a, Player1Name: "Twilight Sparkle", Player2ID: b, Player2Name: "Fluttershy"},
		{Player1ID: c, Player1Name: "Applejack", Player2ID: d, Player2Name: "Pinkie Pie"},
	}, round.Pairings)

	f.report(t, a, b)
	f.report(t, c, d)

	round, err = f.pairings.SwissPairings(ctx)
	require.NoError(t, err)
	require.Len(t, round.Pairings, 2)
	// Winners meet winners, losers meet losers.
	assert.Equal(t, [2]int{a, c}, [2]int{round.Pairings[0].Player1ID, round.Pairings[0].Player2ID})
	assert.Equal(t, [2]int{b, d}, [2]int{round.Pairings[1].Player1ID, round.Pairings[1].Player2ID})
}

func TestSwissPairingsReportsOmittedPlayer(t *testing.T) {
	f := newFixture(t, nil)
	ids := f.register(t, "A", "B", "C")

	round, err := f.pairings.SwissPairings(context.Background())
	require.NoError(t, err)
	assert.False(t, round.Completed)
	require.Len(t, round.Pairings, 1)
	require.Len(t, round.Unpaired, 1)
	assert.Equal(t, ids[2], round.Unpaired[0].PlayerID)
}

func TestResetAll(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	ids := f.register(t, "A", "B")
	f.report(t, ids[0], ids[1])

	require.NoError(t, f.admin.ResetAll(ctx))

	players, err := f.players.CountPlayers(ctx)
	require.NoError(t, err)
	matches, err := f.matches.CountMatches(ctx)
	require.NoError(t, err)
	assert.Zero(t, players)
	assert.Zero(t, matches)
	assert.Contains(t, f.publisher.types(), models.EventTournamentReset)
}

func TestDeleteMatchesKeepsPlayers(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	ids := f.register(t, "A", "B")
	f.report(t, ids[0], ids[1])

	require.NoError(t, f.admin.DeleteMatches(ctx))

	players, err := f.players.CountPlayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, players)

	played, err := f.matches.CheckMatch(ctx, ids[0], ids[1])
	require.NoError(t, err)
	assert.False(t, played)
}

type memoryUploader struct {
	key         string
	contentType string
	body        []byte
}

func (u *memoryUploader) Upload(_ context.Context, key, contentType string, r io.Reader) (*storage.UploadResult, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	u.key, u.contentType, u.body = key, contentType, body
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *memoryUploader) GetPublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

func TestExportStandings(t *testing.T) {
	uploader := &memoryUploader{}
	f := newFixture(t, uploader)
	ids := f.register(t, "A", "B")
	f.report(t, ids[1], ids[0])

	admin := f.admin.(*adminService)
	admin.now = func() time.Time { return time.Date(2026, 10, 17, 12, 30, 0, 0, time.UTC) }

	res, err := f.admin.ExportStandings(context.Background())
	require.NoError(t, err)
	assert.Regexp(t, `^standings/20261017T123000Z-[0-9a-f-]{36}\.json$`, res.Key)
	assert.Equal(t, "application/json", uploader.contentType)
	assert.JSONEq(t, `{
		"generated_at": "2026-10-17T12:30:00Z",
		"players": 2,
		"matches": 1,
		"standings": [
			{"id": 2, "name": "B", "wins": 1, "matches": 1},
			{"id": 1, "name": "A", "wins": 0, "matches": 1}
		]
	}`, string(uploader.body))
}

func TestExportStandingsDisabled(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.admin.ExportStandings(context.Background())
	assert.ErrorIs(t, err, ErrExportDisabled)
}

type failingMatches struct {
	repositories.MatchRepository
	err error
}

func (f failingMatches) List(context.Context) ([]*models.Match, error) { return nil, f.err }

func TestPairingsSurfaceStorageFailure(t *testing.T) {
	store := repositories.NewMemoryStore()
	boom := errors.New("connection refused")
	standings := NewStandingsService(store.Players(), failingMatches{MatchRepository: store.Matches(), err: boom})
	pairings := NewPairingService(standings, brackets.NewSwissGenerator(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := pairings.SwissPairings(context.Background())
	assert.ErrorIs(t, err, ErrStorageFailure)
	assert.ErrorIs(t, err, boom)
}
