package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/tomasrivera/gaming-platform/internal/model"
	"github.com/tomasrivera/gaming-platform/internal/storage"
)

var schema = `CREATE TABLE IF NOT EXISTS games (
  id    TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  code  TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS players (
  id           TEXT PRIMARY KEY,
  name         TEXT NOT NULL,
  email        TEXT NOT NULL DEFAULT '',
  joined_games TEXT NOT NULL DEFAULT '[]'
);`

// Storage is a SQLite-backed implementation of the storage interface.
// The membership ledger is stored as a JSON column on the player row to
// keep the embedded-snapshot semantics identical across backends.
type Storage struct {
	db *sqlx.DB
}

// New opens (or creates) the database at path and applies the schema.
// _txlock=immediate makes write transactions take the write lock up
// front, so the join check-then-append cannot interleave.
func New(path string) (*Storage, error) {
	dsn := fmt.Sprintf("file:%s?_txlock=immediate&_foreign_keys=on", path)
	if path == ":memory:" {
		// Without a shared cache every pool connection gets its own
		// private in-memory database, and only the connection that ran
		// the schema would see the tables.
		dsn = "file::memory:?cache=shared&_txlock=immediate&_foreign_keys=on"
	}

	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if path == ":memory:" {
		// Pin the pool to one long-lived connection: the shared
		// in-memory database is dropped once its last connection
		// closes, and a single writer avoids shared-cache table locks.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

type gameRow struct {
	ID    string `db:"id"`
	Title string `db:"title"`
	Code  string `db:"code"`
}

func (r gameRow) toModel() *model.Game {
	return &model.Game{
		ID:    model.GameID(r.ID),
		Title: r.Title,
		Code:  r.Code,
	}
}

type playerRow struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Email       string `db:"email"`
	JoinedGames string `db:"joined_games"`
}

func (r playerRow) toModel() (*model.Player, error) {
	var ledger []model.MembershipRecord
	if err := json.Unmarshal([]byte(r.JoinedGames), &ledger); err != nil {
		return nil, fmt.Errorf("decode ledger for player %s: %w", r.ID, err)
	}
	return &model.Player{
		ID:          model.PlayerID(r.ID),
		Name:        r.Name,
		Email:       r.Email,
		JoinedGames: ledger,
	}, nil
}

func isUniqueViolation(err error) bool {
	var serr sqlite3.Error
	return errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintUnique
}

// Game operations

func (s *Storage) CreateGame(ctx context.Context, game *model.Game) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO games (id, title, code) VALUES (?, ?, ?)`,
		string(game.ID), game.Title, game.Code)
	if isUniqueViolation(err) {
		return model.ErrGameCodeExists
	}
	return err
}

func (s *Storage) UpdateGame(ctx context.Context, game *model.Game) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE games SET title = ?, code = ? WHERE id = ?`,
		game.Title, game.Code, string(game.ID))
	if isUniqueViolation(err) {
		return model.ErrGameCodeExists
	}
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrGameNotFound
	}
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	var row gameRow
	err := s.db.GetContext(ctx, &row, `SELECT * FROM games WHERE id = ?`, string(id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.toModel(), nil
}

func (s *Storage) GetGameByCode(ctx context.Context, code string) (*model.Game, error) {
	var row gameRow
	err := s.db.GetContext(ctx, &row, `SELECT * FROM games WHERE code = ?`, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.toModel(), nil
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	var rows []gameRow
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM games`); err != nil {
		return nil, err
	}
	games := make([]*model.Game, 0, len(rows))
	for _, row := range rows {
		games = append(games, row.toModel())
	}
	return games, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, string(id))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrGameNotFound
	}
	return nil
}

// Player operations

func (s *Storage) CreatePlayer(ctx context.Context, player *model.Player) error {
	ledger, err := marshalLedger(player.JoinedGames)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO players (id, name, email, joined_games) VALUES (?, ?, ?, ?)`,
		string(player.ID), player.Name, player.Email, ledger)
	return err
}

func (s *Storage) UpdatePlayerProfile(ctx context.Context, id model.PlayerID, name, email string) (*model.Player, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE players SET name = ?, email = ? WHERE id = ?`,
		name, email, string(id))
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, model.ErrPlayerNotFound
	}
	return s.GetPlayer(ctx, id)
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	var row playerRow
	err := s.db.GetContext(ctx, &row, `SELECT * FROM players WHERE id = ?`, string(id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrPlayerNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.toModel()
}

func (s *Storage) ListPlayers(ctx context.Context, nameFilter string) ([]*model.Player, error) {
	var (
		rows []playerRow
		err  error
	)
	if nameFilter == "" {
		err = s.db.SelectContext(ctx, &rows, `SELECT * FROM players`)
	} else {
		err = s.db.SelectContext(ctx, &rows,
			`SELECT * FROM players WHERE instr(lower(name), lower(?)) > 0`, nameFilter)
	}
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(rows))
	for _, row := range rows {
		player, err := row.toModel()
		if err != nil {
			return nil, err
		}
		players = append(players, player)
	}
	return players, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM players WHERE id = ?`, string(id))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrPlayerNotFound
	}
	return nil
}

// Membership ledger operations

func (s *Storage) AppendMembership(ctx context.Context, playerID model.PlayerID, rec model.MembershipRecord) (*model.Player, error) {
	var result *model.Player

	err := s.updateLedger(ctx, playerID, func(player *model.Player) error {
		if player.Membership(rec.GameID) != nil {
			return model.ErrAlreadyJoined
		}
		player.JoinedGames = append(player.JoinedGames, rec)
		result = player
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Storage) RemoveMembership(ctx context.Context, playerID model.PlayerID, gameID model.GameID) (*model.Player, bool, error) {
	var (
		result  *model.Player
		removed bool
	)

	err := s.updateLedger(ctx, playerID, func(player *model.Player) error {
		kept := player.JoinedGames[:0]
		for _, r := range player.JoinedGames {
			if r.GameID == gameID {
				removed = true
				continue
			}
			kept = append(kept, r)
		}
		player.JoinedGames = kept
		result = player
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return result, removed, nil
}

// updateLedger applies mutate to the player's ledger inside a write
// transaction, so the duplicate check and the write are one atomic step
func (s *Storage) updateLedger(ctx context.Context, id model.PlayerID, mutate func(*model.Player) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var row playerRow
	err = tx.GetContext(ctx, &row, `SELECT * FROM players WHERE id = ?`, string(id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrPlayerNotFound
	}
	if err != nil {
		return err
	}

	player, err := row.toModel()
	if err != nil {
		return err
	}

	if err := mutate(player); err != nil {
		return err
	}

	ledger, err := marshalLedger(player.JoinedGames)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE players SET joined_games = ? WHERE id = ?`,
		ledger, string(id)); err != nil {
		return err
	}

	return tx.Commit()
}

func marshalLedger(ledger []model.MembershipRecord) (string, error) {
	if ledger == nil {
		ledger = []model.MembershipRecord{}
	}
	data, err := json.Marshal(ledger)
	if err != nil {
		return "", fmt.Errorf("encode ledger: %w", err)
	}
	return string(data), nil
}
