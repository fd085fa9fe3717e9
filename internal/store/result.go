package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/talentquiz/internal/talent"
)

// resultRepo implements ResultRepo with plain SQL shared by both drivers.
type resultRepo struct {
	db     *sql.DB
	driver Driver
	seq    *sequenceCounter
}

const resultColumns = `id, sequence, respondent, variant, answers_json, scores_json, started_at, submitted_at`

func (r *resultRepo) Save(ctx context.Context, res *Result) error {
	if res.ID == "" {
		return errors.New("save result: empty id")
	}
	answers, err := json.Marshal(res.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	scores, err := json.Marshal(res.Scores)
	if err != nil {
		return fmt.Errorf("marshal scores: %w", err)
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, rebind(r.driver,
		`INSERT INTO results (`+resultColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		res.ID, seqNum, res.Respondent, string(res.Variant),
		string(answers), string(scores),
		res.StartedAt.UnixMilli(), res.SubmittedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	res.Sequence = seqNum
	return nil
}

func (r *resultRepo) Get(ctx context.Context, id string) (*Result, error) {
	row := r.db.QueryRowContext(ctx, rebind(r.driver,
		`SELECT `+resultColumns+` FROM results WHERE id = ?`), id)
	res, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get result %s: %w", id, err)
	}
	return res, nil
}

func (r *resultRepo) List(ctx context.Context, opts QueryOpts) ([]Result, error) {
	var (
		where []string
		args  []any
	)
	if opts.Variant != "" {
		where = append(where, "variant = ?")
		args = append(args, string(opts.Variant))
	}
	if !opts.From.IsZero() {
		where = append(where, "submitted_at >= ?")
		args = append(args, opts.From.UnixMilli())
	}
	if !opts.To.IsZero() {
		where = append(where, "submitted_at <= ?")
		args = append(args, opts.To.UnixMilli())
	}

	q := `SELECT ` + resultColumns + ` FROM results`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY submitted_at DESC, sequence DESC`
	if opts.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, opts.Limit)
		if opts.Offset > 0 {
			q += ` OFFSET ?`
			args = append(args, opts.Offset)
		}
	}

	rows, err := r.db.QueryContext(ctx, rebind(r.driver, q), args...)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("list results: %w", err)
		}
		out = append(out, *res)
	}
	return out, rows.Err()
}

func (r *resultRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM results`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count results: %w", err)
	}
	return n, nil
}

func (r *resultRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM results`)
	if err != nil {
		return 0, fmt.Errorf("delete results: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete results: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResult(row rowScanner) (*Result, error) {
	var (
		res                    Result
		variant                string
		answers, scores        string
		startedAt, submittedAt int64
	)
	err := row.Scan(&res.ID, &res.Sequence, &res.Respondent, &variant,
		&answers, &scores, &startedAt, &submittedAt)
	if err != nil {
		return nil, err
	}
	res.Variant = talent.Variant(variant)
	if err := json.Unmarshal([]byte(answers), &res.Answers); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	if err := json.Unmarshal([]byte(scores), &res.Scores); err != nil {
		return nil, fmt.Errorf("decode scores: %w", err)
	}
	res.StartedAt = time.UnixMilli(startedAt).UTC()
	res.SubmittedAt = time.UnixMilli(submittedAt).UTC()
	return &res, nil
}
