package payoutlog

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/hoopsquares/squares/internal/models"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	// Create a Redis client connected to the miniredis server
	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	// Create the repository
	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	// Set up test time
	s.testNow = time.Date(2026, 2, 1, 18, 30, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) newEntry(id, gameID, label, winnerID string, ts time.Time) *models.PayoutLogEntry {
	return &models.PayoutLogEntry{
		ID:           id,
		GameID:       gameID,
		GameName:     "Big Game Squares",
		Label:        label,
		WinnerUserID: winnerID,
		WinnerName:   "Winner " + winnerID,
		Amount:       250,
		TeamAScore:   27,
		TeamBScore:   14,
		Period:       4,
		Timestamp:    ts,
	}
}

func (s *RedisRepositoryTestSuite) TestAddAndGetEntriesForGame() {
	entry := s.newEntry("entry-1", "game-1", "Final", "user-1", s.testNow)

	err := s.repo.AddEntry(context.Background(), &AddEntryInput{Entry: entry})
	s.Require().NoError(err)

	out, err := s.repo.GetEntriesForGame(context.Background(), &GetEntriesForGameInput{
		GameID: "game-1",
	})
	s.Require().NoError(err)
	s.Require().Len(out.Entries, 1)

	got := out.Entries[0]
	s.Equal("entry-1", got.ID)
	s.Equal("game-1", got.GameID)
	s.Equal("Final", got.Label)
	s.Equal("user-1", got.WinnerUserID)
	s.Equal(int64(250), got.Amount)
	s.Equal(27, got.TeamAScore)
	s.Equal(14, got.TeamBScore)
}

func (s *RedisRepositoryTestSuite) TestEntriesOrderedNewestFirst() {
	for i := 1; i <= 3; i++ {
		entry := s.newEntry(
			fmt.Sprintf("entry-%d", i),
			"game-1",
			fmt.Sprintf("Q%d", i),
			"user-1",
			s.testNow.Add(time.Duration(i)*time.Hour),
		)
		err := s.repo.AddEntry(context.Background(), &AddEntryInput{Entry: entry})
		s.Require().NoError(err)
	}

	out, err := s.repo.GetEntriesForGame(context.Background(), &GetEntriesForGameInput{
		GameID: "game-1",
	})
	s.Require().NoError(err)
	s.Require().Len(out.Entries, 3)

	s.Equal("entry-3", out.Entries[0].ID)
	s.Equal("entry-2", out.Entries[1].ID)
	s.Equal("entry-1", out.Entries[2].ID)
}

func (s *RedisRepositoryTestSuite) TestDuplicateTierRejected() {
	first := s.newEntry("entry-1", "game-1", "Final", "user-1", s.testNow)
	err := s.repo.AddEntry(context.Background(), &AddEntryInput{Entry: first})
	s.Require().NoError(err)

	// A second attempt for the same (game, tier) must be rejected even with
	// a fresh entry ID and a different winner
	second := s.newEntry("entry-2", "game-1", "Final", "user-2", s.testNow.Add(time.Minute))
	err = s.repo.AddEntry(context.Background(), &AddEntryInput{Entry: second})
	s.Require().Error(err)
	s.ErrorIs(err, ErrDuplicatePayout)

	out, err := s.repo.GetEntriesForGame(context.Background(), &GetEntriesForGameInput{
		GameID: "game-1",
	})
	s.Require().NoError(err)
	s.Require().Len(out.Entries, 1)
	s.Equal("entry-1", out.Entries[0].ID)
}

func (s *RedisRepositoryTestSuite) TestSameTierDifferentGamesAllowed() {
	err := s.repo.AddEntry(context.Background(), &AddEntryInput{
		Entry: s.newEntry("entry-1", "game-1", "Final", "user-1", s.testNow),
	})
	s.Require().NoError(err)

	err = s.repo.AddEntry(context.Background(), &AddEntryInput{
		Entry: s.newEntry("entry-2", "game-2", "Final", "user-1", s.testNow),
	})
	s.Require().NoError(err)
}

func (s *RedisRepositoryTestSuite) TestGetEntriesForWinner() {
	err := s.repo.AddEntry(context.Background(), &AddEntryInput{
		Entry: s.newEntry("entry-1", "game-1", "Q1", "user-1", s.testNow),
	})
	s.Require().NoError(err)

	err = s.repo.AddEntry(context.Background(), &AddEntryInput{
		Entry: s.newEntry("entry-2", "game-2", "Final", "user-1", s.testNow.Add(time.Hour)),
	})
	s.Require().NoError(err)

	err = s.repo.AddEntry(context.Background(), &AddEntryInput{
		Entry: s.newEntry("entry-3", "game-1", "Final", "user-2", s.testNow),
	})
	s.Require().NoError(err)

	out, err := s.repo.GetEntriesForWinner(context.Background(), &GetEntriesForWinnerInput{
		WinnerUserID: "user-1",
	})
	s.Require().NoError(err)
	s.Require().Len(out.Entries, 2)
	s.Equal("entry-2", out.Entries[0].ID)
	s.Equal("entry-1", out.Entries[1].ID)
}

func (s *RedisRepositoryTestSuite) TestGetRecentEntriesWithLimit() {
	for i := 1; i <= 5; i++ {
		entry := s.newEntry(
			fmt.Sprintf("entry-%d", i),
			fmt.Sprintf("game-%d", i),
			"Final",
			"user-1",
			s.testNow.Add(time.Duration(i)*time.Minute),
		)
		err := s.repo.AddEntry(context.Background(), &AddEntryInput{Entry: entry})
		s.Require().NoError(err)
	}

	out, err := s.repo.GetRecentEntries(context.Background(), &GetRecentEntriesInput{
		Limit: 3,
	})
	s.Require().NoError(err)
	s.Require().Len(out.Entries, 3)
	s.Equal("entry-5", out.Entries[0].ID)
	s.Equal("entry-4", out.Entries[1].ID)
	s.Equal("entry-3", out.Entries[2].ID)

	// Limit 0 returns everything
	out, err = s.repo.GetRecentEntries(context.Background(), &GetRecentEntriesInput{})
	s.Require().NoError(err)
	s.Len(out.Entries, 5)
}

func (s *RedisRepositoryTestSuite) TestHasEntriesForGame() {
	has, err := s.repo.HasEntriesForGame(context.Background(), &HasEntriesForGameInput{
		GameID: "game-1",
	})
	s.Require().NoError(err)
	s.False(has)

	err = s.repo.AddEntry(context.Background(), &AddEntryInput{
		Entry: s.newEntry("entry-1", "game-1", "Final", "user-1", s.testNow),
	})
	s.Require().NoError(err)

	has, err = s.repo.HasEntriesForGame(context.Background(), &HasEntriesForGameInput{
		GameID: "game-1",
	})
	s.Require().NoError(err)
	s.True(has)
}

func (s *RedisRepositoryTestSuite) TestEmptyIndexes() {
	out, err := s.repo.GetEntriesForGame(context.Background(), &GetEntriesForGameInput{
		GameID: "game-1",
	})
	s.Require().NoError(err)
	s.NotNil(out.Entries)
	s.Empty(out.Entries)

	winnerOut, err := s.repo.GetEntriesForWinner(context.Background(), &GetEntriesForWinnerInput{
		WinnerUserID: "user-1",
	})
	s.Require().NoError(err)
	s.Empty(winnerOut.Entries)
}
