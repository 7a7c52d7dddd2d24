package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"topcv-crawler/internal/crawler"
	"topcv-crawler/internal/store/db"

	"github.com/mazen160/go-random"
)

// Store keeps a history of crawl runs with every record they produced.
type Store struct {
	db  *sql.DB
	qry *db.Queries
}

func NewStore(database *sql.DB) Store {
	return Store{
		db:  database,
		qry: db.New(database),
	}
}

func NewRunId() (string, error) {
	return random.String(12)
}

// SaveRun persists a run and its records in a single transaction.
func (s Store) SaveRun(ctx context.Context, runId string, result crawler.Result) error {
	stats, err := json.Marshal(result.Stats)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	err = txqry.CreateRun(ctx, db.CreateRunParams{
		ID:          runId,
		CrawlDate:   result.CrawlDate,
		StartedAt:   result.StartedAt.Unix(),
		FinishedAt:  result.FinishedAt.Unix(),
		RecordCount: int64(len(result.Records)),
		Stats:       string(stats),
	})
	if err != nil {
		return fmt.Errorf("create run: %w", err)
	}

	for i, kw := range result.Keywords {
		var kwErr sql.NullString
		if kw.Err != nil {
			kwErr = sql.NullString{String: kw.Err.Error(), Valid: true}
		}
		err = txqry.CreateKeyword(ctx, db.CreateKeywordParams{
			RunID:       runId,
			Position:    int64(i),
			Keyword:     kw.Keyword,
			Slug:        kw.Slug,
			RecordCount: int64(len(kw.Records)),
			Error:       kwErr,
		})
		if err != nil {
			return fmt.Errorf("create keyword %s: %w", kw.Keyword, err)
		}
	}

	for i, record := range result.Records {
		err = txqry.CreateJobRecord(ctx, recordParams(runId, int64(i), record))
		if err != nil {
			return fmt.Errorf("create record %s: %w", record.JobUrl, err)
		}
	}

	return tx.Commit()
}

type Run struct {
	Id          string
	CrawlDate   string
	StartedAt   time.Time
	FinishedAt  time.Time
	RecordCount int64
	Stats       crawler.Stats
	Keywords    []KeywordSummary
}

type KeywordSummary struct {
	Keyword     string
	Slug        string
	RecordCount int64
	Error       string
}

// ListRuns returns the most recent runs first.
func (s Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.qry.ListRuns(ctx, int64(limit))
	if err != nil {
		return nil, err
	}

	runs := make([]Run, len(rows))
	for i, row := range rows {
		run := Run{
			Id:          row.ID,
			CrawlDate:   row.CrawlDate,
			StartedAt:   time.Unix(row.StartedAt, 0),
			FinishedAt:  time.Unix(row.FinishedAt, 0),
			RecordCount: row.RecordCount,
		}
		err = json.Unmarshal([]byte(row.Stats), &run.Stats)
		if err != nil {
			return nil, fmt.Errorf("run %s stats: %w", row.ID, err)
		}

		keywords, err := s.qry.GetRunKeywords(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		for _, kw := range keywords {
			run.Keywords = append(run.Keywords, KeywordSummary{
				Keyword:     kw.Keyword,
				Slug:        kw.Slug,
				RecordCount: kw.RecordCount,
				Error:       kw.Error.String,
			})
		}
		runs[i] = run
	}
	return runs, nil
}

// Records returns the records of a run in the order they were crawled.
func (s Store) Records(ctx context.Context, runId string) ([]crawler.JobRecord, error) {
	rows, err := s.qry.GetRunRecords(ctx, runId)
	if err != nil {
		return nil, err
	}
	records := make([]crawler.JobRecord, len(rows))
	for i, row := range rows {
		records[i] = fromRow(row)
	}
	return records, nil
}
