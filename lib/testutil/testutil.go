package testutil

import (
	"context"
	"database/sql"
	"net/http"
	"sync"
	"testing"

	"topcv-crawler/internal/fetch"
	"topcv-crawler/lib/htmlutil"
	"topcv-crawler/lib/sqliteutil"

	_ "modernc.org/sqlite"
)

// OpenMemoryDB opens an in-memory sqlite database with the schema applied,
// it is closed when the test ends.
func OpenMemoryDB(t testing.TB, schema string) *sql.DB {
	db, err := sqliteutil.Config{File: ":memory:"}.OpenDB()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	if schema != "" {
		err = sqliteutil.Migrate(context.Background(), db, schema)
		if err != nil {
			t.Fatal(err)
		}
	}
	return db
}

// FakePage is a canned answer for one url.
type FakePage struct {
	Body    string
	Outcome fetch.Outcome
	Err     error
}

// FakeFetcher serves canned pages from memory, urls it does not know answer
// with a 404 FetchError.
type FakeFetcher struct {
	Pages map[string]FakePage
	// OnFetch runs before every fetch, tests use it to cancel mid-run.
	OnFetch func(url string)

	mutex  sync.Mutex
	calls  []string
	pauses int
}

func NewFakeFetcher() *FakeFetcher {
	return &FakeFetcher{Pages: map[string]FakePage{}}
}

func (f *FakeFetcher) Fetch(ctx context.Context, url string) (fetch.Page, error) {
	if err := ctx.Err(); err != nil {
		return fetch.Page{}, err
	}
	if f.OnFetch != nil {
		f.OnFetch(url)
	}

	f.mutex.Lock()
	f.calls = append(f.calls, url)
	page, ok := f.Pages[url]
	f.mutex.Unlock()

	if !ok {
		return fetch.Page{}, &fetch.FetchError{
			Url:      url,
			Attempts: 1,
			Status:   http.StatusNotFound,
			Err:      fetch.ErrUnexpectedStatus,
		}
	}
	if page.Err != nil {
		return fetch.Page{}, page.Err
	}
	if page.Outcome == fetch.OutcomeBlocked {
		return fetch.Page{
			Url:     url,
			Status:  http.StatusForbidden,
			Doc:     htmlutil.Empty(),
			Outcome: fetch.OutcomeBlocked,
		}, nil
	}
	doc, err := htmlutil.Parse([]byte(page.Body))
	if err != nil {
		return fetch.Page{}, err
	}
	return fetch.Page{
		Url:     url,
		Status:  http.StatusOK,
		Doc:     doc,
		Outcome: fetch.OutcomeOK,
	}, nil
}

func (f *FakeFetcher) Pause(ctx context.Context) error {
	f.mutex.Lock()
	f.pauses++
	f.mutex.Unlock()
	return ctx.Err()
}

// Calls returns every fetched url in order.
func (f *FakeFetcher) Calls() []string {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *FakeFetcher) Pauses() int {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.pauses
}
