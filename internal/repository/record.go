package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/vancomm/minesweeper/internal/mines"
)

type Record struct {
	RecordId  int64     `db:"game_record_id"`
	PlayerId  *int64    `db:"player_id"`
	Width     int       `db:"width"`
	Height    int       `db:"height"`
	MineCount int       `db:"mine_count"`
	Won       bool      `db:"won"`
	Moves     int       `db:"moves"`
	StartedAt time.Time `db:"started_at"`
	EndedAt   time.Time `db:"ended_at"`
	CreatedAt time.Time `db:"created_at"`
}

type CreateRecordParams struct {
	PlayerId  *int64
	Params    mines.GameParams
	Won       bool
	Moves     int
	StartedAt time.Time
	EndedAt   time.Time
}

func (p CreateRecordParams) Args() pgx.NamedArgs {
	return pgx.NamedArgs{
		"player_id":  p.PlayerId,
		"width":      p.Params.Width,
		"height":     p.Params.Height,
		"mine_count": p.Params.MineCount,
		"won":        p.Won,
		"moves":      p.Moves,
		"started_at": p.StartedAt,
		"ended_at":   p.EndedAt,
	}
}

func (q *Queries) CreateRecord(ctx context.Context, params CreateRecordParams) (*Record, error) {
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO game_record (
			player_id, width, height, mine_count, won, moves, started_at, ended_at
		)
		VALUES (
			@player_id, @width, @height, @mine_count, @won, @moves, @started_at, @ended_at
		)
		RETURNING *`,
		params.Args(),
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Record])
}

type Highscore struct {
	RecordId   int64   `db:"game_record_id" json:"record_id"`
	Username   *string `db:"username" json:"username"`
	Width      int     `db:"width" json:"width"`
	Height     int     `db:"height" json:"height"`
	MineCount  int     `db:"mine_count" json:"mine_count"`
	Moves      int     `db:"moves" json:"moves"`
	PlaytimeMs float64 `db:"playtime_ms" json:"playtime_ms"`
}

type HighscoreFilter struct {
	Username   *string
	GameParams *mines.GameParams
	Limit      int
}

func (f HighscoreFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Username != nil {
		clauses = append(clauses, "username = @username")
		args["username"] = *f.Username
	}
	if f.GameParams != nil {
		clauses = append(
			clauses,
			"width = @width",
			"height = @height",
			"mine_count = @mine_count",
		)
		args["width"] = f.GameParams.Width
		args["height"] = f.GameParams.Height
		args["mine_count"] = f.GameParams.MineCount
	}
	return strings.Join(clauses, " AND "), args
}

const defaultHighscoreLimit = 100

func (q *Queries) GetHighscores(
	ctx context.Context, filter HighscoreFilter,
) ([]Highscore, error) {
	query := `
	SELECT
		game_record_id,
		username,
		width,
		height,
		mine_count,
		moves,
		(
			extract('epoch' from ended_at) -
			extract('epoch' from started_at)
		) * 1000 playtime_ms
	FROM game_record
		LEFT OUTER JOIN player USING (player_id)
	WHERE won = true`

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " AND " + whereClause
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultHighscoreLimit
	}
	args["limit"] = limit

	query += " ORDER BY playtime_ms, moves LIMIT @limit"

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Highscore])
}
