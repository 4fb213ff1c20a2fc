package sqlite

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/tomasrivera/gaming-platform/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	storage, err := New(":memory:")
	s.Require().NoError(err)
	s.storage = storage
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
}

// Game tests

func (s *StorageSuite) TestCreateAndGetGame() {
	game := &model.Game{ID: "game-1", Title: "Battle Quest", Code: "BQ101"}

	err := s.storage.CreateGame(s.ctx, game)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(game.Title, retrieved.Title)
	s.Equal(game.Code, retrieved.Code)
}

func (s *StorageSuite) TestGetGameNotFound() {
	_, err := s.storage.GetGame(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestCreateGameDuplicateCode() {
	_ = s.storage.CreateGame(s.ctx, &model.Game{ID: "game-1", Title: "Battle Quest", Code: "BQ101"})

	err := s.storage.CreateGame(s.ctx, &model.Game{ID: "game-2", Title: "Other Quest", Code: "BQ101"})
	s.ErrorIs(err, model.ErrGameCodeExists)
}

func (s *StorageSuite) TestGetGameByCode() {
	_ = s.storage.CreateGame(s.ctx, &model.Game{ID: "game-1", Title: "Battle Quest", Code: "BQ101"})

	retrieved, err := s.storage.GetGameByCode(s.ctx, "BQ101")
	s.Require().NoError(err)
	s.Equal(model.GameID("game-1"), retrieved.ID)

	_, err = s.storage.GetGameByCode(s.ctx, "NOPE")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestUpdateGame() {
	_ = s.storage.CreateGame(s.ctx, &model.Game{ID: "game-1", Title: "Battle Quest", Code: "BQ101"})

	err := s.storage.UpdateGame(s.ctx, &model.Game{ID: "game-1", Title: "Battle Quest II", Code: "BQ102"})
	s.Require().NoError(err)

	retrieved, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal("Battle Quest II", retrieved.Title)
	s.Equal("BQ102", retrieved.Code)
}

func (s *StorageSuite) TestUpdateGameCodeConflict() {
	_ = s.storage.CreateGame(s.ctx, &model.Game{ID: "game-1", Title: "Battle Quest", Code: "BQ101"})
	_ = s.storage.CreateGame(s.ctx, &model.Game{ID: "game-2", Title: "Space Raiders", Code: "SR202"})

	err := s.storage.UpdateGame(s.ctx, &model.Game{ID: "game-2", Title: "Space Raiders", Code: "BQ101"})
	s.ErrorIs(err, model.ErrGameCodeExists)
}

func (s *StorageSuite) TestUpdateGameNotFound() {
	err := s.storage.UpdateGame(s.ctx, &model.Game{ID: "nonexistent", Title: "X", Code: "X1"})
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestListGames() {
	_ = s.storage.CreateGame(s.ctx, &model.Game{ID: "game-1", Title: "Battle Quest", Code: "BQ101"})
	_ = s.storage.CreateGame(s.ctx, &model.Game{ID: "game-2", Title: "Space Raiders", Code: "SR202"})

	games, err := s.storage.ListGames(s.ctx)
	s.Require().NoError(err)
	s.Len(games, 2)
}

func (s *StorageSuite) TestDeleteGameFreesCode() {
	_ = s.storage.CreateGame(s.ctx, &model.Game{ID: "game-1", Title: "Battle Quest", Code: "BQ101"})

	err := s.storage.DeleteGame(s.ctx, "game-1")
	s.Require().NoError(err)

	err = s.storage.CreateGame(s.ctx, &model.Game{ID: "game-3", Title: "New Quest", Code: "BQ101"})
	s.Require().NoError(err)
}

func (s *StorageSuite) TestDeleteGameNotFound() {
	err := s.storage.DeleteGame(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

// Player tests

func (s *StorageSuite) TestCreateAndGetPlayer() {
	player := &model.Player{
		ID:          "player-1",
		Name:        "Alex Rivera",
		Email:       "alex@example.com",
		JoinedGames: []model.MembershipRecord{},
	}

	err := s.storage.CreatePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.Name, retrieved.Name)
	s.Equal(player.Email, retrieved.Email)
	s.Empty(retrieved.JoinedGames)
}

func (s *StorageSuite) TestCreatePlayerNilLedger() {
	err := s.storage.CreatePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alex Rivera"})
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Empty(retrieved.JoinedGames)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestUpdatePlayerProfilePreservesLedger() {
	_ = s.storage.CreatePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alex Rivera"})
	_, err := s.storage.AppendMembership(s.ctx, "player-1", model.MembershipRecord{
		GameID: "game-1", Title: "Battle Quest", Code: "BQ101", RegisteredAt: time.Now().UTC(),
	})
	s.Require().NoError(err)

	updated, err := s.storage.UpdatePlayerProfile(s.ctx, "player-1", "Alex R.", "alex@example.com")
	s.Require().NoError(err)
	s.Equal("Alex R.", updated.Name)
	s.Len(updated.JoinedGames, 1)
}

func (s *StorageSuite) TestListPlayersNameFilter() {
	_ = s.storage.CreatePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alex Rivera"})
	_ = s.storage.CreatePlayer(s.ctx, &model.Player{ID: "player-2", Name: "Jamie Chen"})

	players, err := s.storage.ListPlayers(s.ctx, "")
	s.Require().NoError(err)
	s.Len(players, 2)

	players, err = s.storage.ListPlayers(s.ctx, "RIV")
	s.Require().NoError(err)
	s.Require().Len(players, 1)
	s.Equal("Alex Rivera", players[0].Name)
}

func (s *StorageSuite) TestDeletePlayer() {
	_ = s.storage.CreatePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alex Rivera"})

	err := s.storage.DeletePlayer(s.ctx, "player-1")
	s.Require().NoError(err)

	_, err = s.storage.GetPlayer(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Membership ledger tests

func (s *StorageSuite) TestAppendMembership() {
	_ = s.storage.CreatePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alex Rivera"})

	rec := model.MembershipRecord{
		GameID: "game-1", Title: "Battle Quest", Code: "BQ101",
		RegisteredAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	updated, err := s.storage.AppendMembership(s.ctx, "player-1", rec)
	s.Require().NoError(err)
	s.Require().Len(updated.JoinedGames, 1)
	s.Equal(rec.GameID, updated.JoinedGames[0].GameID)
	s.True(rec.RegisteredAt.Equal(updated.JoinedGames[0].RegisteredAt))
}

func (s *StorageSuite) TestAppendMembershipDuplicate() {
	_ = s.storage.CreatePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alex Rivera"})
	rec := model.MembershipRecord{GameID: "game-1", Title: "Battle Quest", Code: "BQ101"}

	_, err := s.storage.AppendMembership(s.ctx, "player-1", rec)
	s.Require().NoError(err)

	_, err = s.storage.AppendMembership(s.ctx, "player-1", rec)
	s.ErrorIs(err, model.ErrAlreadyJoined)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Len(retrieved.JoinedGames, 1)
}

func (s *StorageSuite) TestAppendMembershipPlayerNotFound() {
	_, err := s.storage.AppendMembership(s.ctx, "nonexistent", model.MembershipRecord{GameID: "game-1"})
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestRemoveMembership() {
	_ = s.storage.CreatePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alex Rivera"})
	_, _ = s.storage.AppendMembership(s.ctx, "player-1", model.MembershipRecord{GameID: "game-1", Title: "Battle Quest", Code: "BQ101"})
	_, _ = s.storage.AppendMembership(s.ctx, "player-1", model.MembershipRecord{GameID: "game-2", Title: "Space Raiders", Code: "SR202"})

	updated, removed, err := s.storage.RemoveMembership(s.ctx, "player-1", "game-1")
	s.Require().NoError(err)
	s.True(removed)
	s.Require().Len(updated.JoinedGames, 1)
	s.Equal(model.GameID("game-2"), updated.JoinedGames[0].GameID)
}

func (s *StorageSuite) TestRemoveMembershipAbsentIsNoOp() {
	_ = s.storage.CreatePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alex Rivera"})

	_, removed, err := s.storage.RemoveMembership(s.ctx, "player-1", "game-1")
	s.Require().NoError(err)
	s.False(removed)
}

func (s *StorageSuite) TestRemoveMembershipPlayerNotFound() {
	_, _, err := s.storage.RemoveMembership(s.ctx, "nonexistent", "game-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// An in-memory database must stay visible when the connection pool is
// under concurrent load; a per-connection private database would fail
// here with "no such table"
func (s *StorageSuite) TestInMemoryDatabaseSharedAcrossPool() {
	_ = s.storage.CreateGame(s.ctx, &model.Game{ID: "game-1", Title: "Battle Quest", Code: "BQ101"})
	_ = s.storage.CreatePlayer(s.ctx, &model.Player{ID: "player-1", Name: "Alex Rivera"})

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_, errs[i] = s.storage.GetPlayer(s.ctx, "player-1")
			} else {
				_, errs[i] = s.storage.GetGame(s.ctx, "game-1")
			}
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		s.NoError(err)
	}
}
